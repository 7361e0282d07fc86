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
	"fmt"
	"time"

	"github.com/consensys/go-boxsolve/pkg/box"
	"github.com/consensys/go-boxsolve/pkg/eval"
	"github.com/consensys/go-boxsolve/pkg/interval"
	"github.com/consensys/go-boxsolve/pkg/smt"
	"github.com/consensys/go-boxsolve/pkg/util/source"
	"github.com/consensys/go-boxsolve/pkg/util/source/sexp"
	log "github.com/sirupsen/logrus"
)

// DEFAULT_MAX_BOXES bounds the number of boxes examined by the interval backend
// for a single query.
const DEFAULT_MAX_BOXES = 100_000

// How often (in boxes) the deadline is checked.
const deadlineCheckInterval = 256

// IntervalBackend is an in-process decision procedure based on interval
// bisection, which requires no external executable.  Starting from the box
// given by the bounds asserted in a query, boxes on which the assertions are
// definitely false are discarded and the remainder bisected.  The answer is
// sat if some box (or point) definitely satisfies the assertions, unsat once
// every box has been discarded, and delta-sat if a box is reached which is
// tight enough (according to the absolute tolerance of the budget) but could
// not be refuted.  Running out of boxes or time gives unknown.
type IntervalBackend struct {
	engine   interval.Engine
	maxBoxes int
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Procedure = (*IntervalBackend)(nil)

// NewIntervalBackend constructs an in-process backend using a given engine.  A
// non-positive limit on the number of boxes selects the default.
func NewIntervalBackend(engine interval.Engine, maxBoxes int) *IntervalBackend {
	if maxBoxes <= 0 {
		maxBoxes = DEFAULT_MAX_BOXES
	}
	//
	return &IntervalBackend{engine, maxBoxes}
}

// Name returns the name of this procedure.
func (p *IntervalBackend) Name() string {
	return "interval"
}

// Check answers a given query.  Unsupported commands or sorts produce a
// BackendError, mirroring how an external solver would respond.
func (p *IntervalBackend) Check(ctx context.Context, req Request) (smt.Answer, error) {
	var (
		budget  = req.Budget.Normalise()
		srcfile = source.NewSourceFile("query", []byte(req.Text))
		names   []string
		asserts []eval.Node
		start   = time.Now()
	)
	//
	commands, srcmap, serr := sexp.ParseAll(srcfile)
	//
	if serr != nil {
		return smt.Unknown, smt.NewBackendError(serr.Error())
	}
	//
	ctx, cancel := context.WithTimeout(ctx, budget.Timeout)
	defer cancel()
	//
	for _, command := range commands {
		cmd := command.AsList()
		//
		if cmd == nil {
			return smt.Unknown, smt.NewBackendError("invalid command " + command.String(true))
		}
		//
		switch cmd.Head() {
		case "declare-fun", "declare-const":
			name, err := declaration(cmd)
			//
			if err != nil {
				return smt.Unknown, err
			}
			//
			names = append(names, name)
		case "assert":
			if cmd.Len() != 2 {
				return smt.Unknown, smt.NewBackendError("invalid assertion")
			}
			//
			node, err := eval.Compile(cmd.Get(1), srcmap, names, p.engine)
			//
			if err != nil {
				return smt.Unknown, smt.NewBackendError(err.Error())
			}
			//
			asserts = append(asserts, node)
		case "check-sat":
			answer := p.search(ctx, asserts, len(names), budget.AbsTolerance)
			//
			log.Debugf("interval answered %s in %s", answer, time.Since(start))
			//
			return answer, nil
		case "exit", "set-logic", "set-option", "set-info":
			// ignore
		default:
			return smt.Unknown, smt.NewBackendError("unsupported command " + cmd.Head())
		}
	}
	//
	return smt.Unknown, smt.NewBackendError("missing check-sat")
}

// Extract the name from a declaration of a real constant.
func declaration(cmd *sexp.List) (string, error) {
	var name, sort *sexp.Symbol
	//
	switch {
	case cmd.Head() == "declare-const" && cmd.Len() == 3:
		name, sort = cmd.Get(1).AsSymbol(), cmd.Get(2).AsSymbol()
	case cmd.Head() == "declare-fun" && cmd.Len() == 4:
		if params := cmd.Get(2).AsList(); params == nil || params.Len() != 0 {
			return "", smt.NewBackendError("unsupported function declaration")
		}
		//
		name, sort = cmd.Get(1).AsSymbol(), cmd.Get(3).AsSymbol()
	}
	//
	if name == nil || sort == nil {
		return "", smt.NewBackendError("invalid declaration " + cmd.String(true))
	} else if sort.Value != "Real" {
		return "", smt.NewBackendError(fmt.Sprintf("unsupported sort %s", sort.Value))
	}
	//
	return name.Value, nil
}

// Search for a box on which the assertions hold.
func (p *IntervalBackend) search(ctx context.Context, asserts []eval.Node, n int, tol float64) smt.Answer {
	var (
		evaluator = eval.NewEvaluator(p.engine)
		splitter  = box.NewSplitter(p.engine)
		formula   = conjunction(asserts)
		root      = box.New(evaluator.Bounds(formula, n)...)
		worklist  = []box.Box{root}
	)
	//
	for count := 0; len(worklist) > 0; count++ {
		if count >= p.maxBoxes {
			return smt.Unknown
		} else if count%deadlineCheckInterval == 0 && ctx.Err() != nil {
			return smt.Unknown
		}
		// Depth-first
		b := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		//
		if b.IsEmpty() {
			continue
		}
		//
		switch evaluator.Truth(formula, b.Intervals()) {
		case eval.False:
			continue
		case eval.True:
			return smt.Sat
		}
		// Try the midpoint, since any witness suffices
		if evaluator.Truth(formula, b.Midpoint(p.engine).Intervals()) == eval.True {
			return smt.Sat
		} else if box.IsTightEnough(b, tol) {
			return smt.DeltaSat
		}
		//
		children, progressed := splitter.Split(b)
		//
		if !progressed {
			return smt.DeltaSat
		}
		// Push in reverse so the lower child is examined first
		for i := len(children) - 1; i >= 0; i-- {
			worklist = append(worklist, children[i])
		}
	}
	//
	return smt.Unsat
}

func conjunction(asserts []eval.Node) eval.Node {
	if len(asserts) == 1 {
		return asserts[0]
	}
	//
	return eval.And(asserts...)
}
