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
	"time"

	"github.com/consensys/go-boxsolve/pkg/smt"
)

// DEFAULT_TOLERANCE is used for numeric tolerances which are not positive.
const DEFAULT_TOLERANCE = 1e-6

// DEFAULT_TIMEOUT is used when no time budget is given.
const DEFAULT_TIMEOUT = 6000 * time.Second

// DEFAULT_GRACE is the default time allowed for a decision procedure to
// terminate beyond its budget, before it is killed.
const DEFAULT_GRACE = 5 * time.Second

// Budget bounds the effort a decision procedure may spend on a query.  The
// timeout is advisory: it is passed to the procedure, which is expected to give
// up within it.
type Budget struct {
	// Time limit for the query.
	Timeout time.Duration
	// Absolute tolerance used by numeric procedures.
	AbsTolerance float64
	// Relative tolerance used by numeric procedures.
	RelTolerance float64
}

// Normalise replaces missing or non-positive values in this budget with their
// defaults.
func (b Budget) Normalise() Budget {
	if b.AbsTolerance <= 0 {
		b.AbsTolerance = DEFAULT_TOLERANCE
	}
	//
	if b.RelTolerance <= 0 {
		b.RelTolerance = DEFAULT_TOLERANCE
	}
	//
	if b.Timeout <= 0 {
		b.Timeout = DEFAULT_TIMEOUT
	}
	//
	return b
}

// Request is a single query for a decision procedure.
type Request struct {
	// Text of the SMT-LIB script.
	Text string
	// Budget for answering.
	Budget Budget
}

// Procedure is a decision procedure for nonlinear real arithmetic.  A
// procedure accepts a textual query and determines whether its assertions are
// satisfiable.  Check blocks until an answer is available, the procedure fails,
// or the context is cancelled.
type Procedure interface {
	// Name identifies this procedure (e.g. in logs and cache entries).
	Name() string
	// Check answers a given query.
	Check(ctx context.Context, req Request) (smt.Answer, error)
}
