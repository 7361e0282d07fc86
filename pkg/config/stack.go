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
package config

import (
	"fmt"
	"time"

	"github.com/consensys/go-boxsolve/pkg/interval"
	"github.com/consensys/go-boxsolve/pkg/solver"
	"github.com/consensys/go-boxsolve/pkg/store"
)

// DEFAULT_ATTEMPTS determines how many times launching a solver is attempted.
const DEFAULT_ATTEMPTS = 3

// Initial delay before retrying a failed launch.
const retryInterval = 100 * time.Millisecond

// Stack is an assembled decision procedure, along with the resources it holds.
type Stack struct {
	// Procedure to which queries should be passed.
	Procedure solver.Procedure
	// Memo is the memoising layer, or nil if caching is disabled.
	Memo *solver.Memo
	// Persistent answer store, or nil.
	store *store.Store
}

// Close releases any resources held by the stack.
func (s *Stack) Close() error {
	return s.store.Close()
}

// Build assembles the decision procedure described by a solver configuration.
// External backends are retried on launch failure.  Answers are memoised
// whenever a cache is given, and queries dumped whenever a dump directory is
// given.
func (c Solver) Build(engine interval.Engine) (*Stack, error) {
	var (
		stack Stack
		proc  solver.Procedure
	)
	//
	switch c.Backend {
	case "z3":
		proc = solver.NewRetry(solver.NewZ3(c.Path, c.Grace), c.Attempts, retryInterval)
	case "dreal":
		proc = solver.NewRetry(solver.NewDReal(c.Path, c.Grace), c.Attempts, retryInterval)
	case "interval", "":
		proc = solver.NewIntervalBackend(engine, c.MaxBoxes)
	default:
		return nil, fmt.Errorf("unknown backend %q (expected z3, dreal or interval)", c.Backend)
	}
	//
	if c.Dump != "" {
		dump, err := solver.NewDump(proc, c.Dump)
		//
		if err != nil {
			return nil, err
		}
		//
		proc = dump
	}
	//
	if c.Cache != "" {
		answers, err := store.Open(c.Cache)
		//
		if err != nil {
			return nil, fmt.Errorf("cannot open cache: %w", err)
		}
		//
		stack.store = answers
		stack.Memo = solver.NewMemo(proc, answers)
		proc = stack.Memo
	}
	//
	stack.Procedure = proc
	//
	return &stack, nil
}
