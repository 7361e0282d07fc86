// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package solver

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/consensys/go-boxsolve/pkg/smt"
	log "github.com/sirupsen/logrus"
)

// Retry is a procedure which retries another when it fails to launch (e.g.
// because the system is temporarily out of processes).  All other failures are
// returned immediately, since re-running a solver on the same query will not
// change its answer.
type Retry struct {
	inner    Procedure
	attempts uint
	initial  time.Duration
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Procedure = (*Retry)(nil)

// NewRetry wraps a procedure such that launch failures are retried, up to a
// given number of attempts in total, with exponential backoff starting from a
// given interval.
func NewRetry(inner Procedure, attempts uint, initial time.Duration) *Retry {
	return &Retry{inner, max(attempts, 1), initial}
}

// Name returns the name of the underlying procedure.
func (p *Retry) Name() string {
	return p.inner.Name()
}

// Check answers a given query, retrying launch failures.
func (p *Retry) Check(ctx context.Context, req Request) (smt.Answer, error) {
	policy := backoff.NewExponentialBackOff()
	//
	if p.initial > 0 {
		policy.InitialInterval = p.initial
	}
	//
	operation := func() (smt.Answer, error) {
		answer, err := p.inner.Check(ctx, req)
		//
		var launch *smt.LaunchError
		//
		if err != nil && !errors.As(err, &launch) {
			return answer, backoff.Permanent(err)
		}
		//
		return answer, err
	}
	//
	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(p.attempts),
		backoff.WithNotify(func(err error, wait time.Duration) {
			log.Debugf("retrying %s in %s: %v", p.inner.Name(), wait, err)
		}),
	)
}
