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
package eval

import (
	"math"

	"github.com/consensys/go-boxsolve/pkg/interval"
)

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
)

// Bounds determines, for each of n variables, an interval enclosing every value
// that variable can take whenever a formula holds.  Only simple bounds are
// recognised, i.e. comparisons between a variable and a variable-free term
// occurring within (possibly nested) conjunctions.  Variables which are not
// bounded in this way range over the entire real line.
func (p Evaluator) Bounds(formula Node, n int) []interval.Interval {
	bounds := make([]interval.Interval, n)
	//
	for i := range bounds {
		bounds[i] = interval.ENTIRE
	}
	//
	p.narrow(formula, bounds)
	//
	return bounds
}

func (p Evaluator) narrow(formula Node, bounds []interval.Interval) {
	switch f := formula.(type) {
	case *Logical:
		if f.connective == AND {
			for _, arg := range f.args {
				p.narrow(arg, bounds)
			}
		}
	case *Compare:
		if len(f.args) == 2 {
			p.narrowCompare(f.cmp, f.args[0], f.args[1], bounds)
		}
	}
}

func (p Evaluator) narrowCompare(cmp Cmp, lhs Node, rhs Node, bounds []interval.Interval) {
	var (
		upper = interval.ENTIRE
		lower = interval.ENTIRE
	)
	// Normalise so the variable is on the left
	if _, ok := rhs.(*Var); ok && isClosed(lhs) {
		lhs, rhs = rhs, lhs
		cmp = flip(cmp)
	}
	//
	v, ok := lhs.(*Var)
	//
	if !ok || !isClosed(rhs) {
		return
	}
	//
	c := p.Real(rhs, nil)
	//
	if c.IsEmpty() {
		return
	}
	// Strict comparisons are widened to their non-strict form
	switch cmp {
	case LT, LEQ:
		upper = p.engine.New(negInf, c.Upper())
	case GT, GEQ:
		lower = p.engine.New(c.Lower(), posInf)
	case EQ:
		upper = p.engine.New(c.Lower(), c.Upper())
	}
	//
	bounds[v.index] = bounds[v.index].Intersect(upper).Intersect(lower)
}

// Flip a comparison so its operands can be swapped.
func flip(cmp Cmp) Cmp {
	switch cmp {
	case LT:
		return GT
	case LEQ:
		return GEQ
	case GT:
		return LT
	case GEQ:
		return LEQ
	default:
		return cmp
	}
}

// Check whether a term contains no variables.
func isClosed(node Node) bool {
	switch n := node.(type) {
	case *Const:
		return true
	case *Apply:
		for _, arg := range n.args {
			if !isClosed(arg) {
				return false
			}
		}
		//
		return true
	}
	//
	return false
}
