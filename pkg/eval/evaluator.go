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
	"github.com/consensys/go-boxsolve/pkg/interval"
)

// Evaluator evaluates compiled terms and formulas over boxes using interval
// arithmetic.  The environment supplies, for each variable position, the
// interval of values that variable ranges over.
type Evaluator struct {
	engine interval.Engine
}

// NewEvaluator constructs an evaluator for a given engine.
func NewEvaluator(engine interval.Engine) Evaluator {
	return Evaluator{engine}
}

// Real returns an enclosure of the values a term takes over a given
// environment.  The result is empty when the term is undefined everywhere (e.g.
// the logarithm of a negative interval).
func (p Evaluator) Real(node Node, env []interval.Interval) interval.Interval {
	switch n := node.(type) {
	case *Const:
		return n.value
	case *Var:
		return env[n.index]
	case *Apply:
		return p.apply(n, env)
	}
	//
	panic("unknown term " + node.String())
}

// Truth determines whether a formula holds everywhere, nowhere or only
// somewhere within a given environment.  Comparisons involving terms which are
// undefined (i.e. evaluate to empty) are Unknown.
func (p Evaluator) Truth(node Node, env []interval.Interval) Truth {
	switch n := node.(type) {
	case *Literal:
		if n.value {
			return True
		}
		//
		return False
	case *Compare:
		return p.compare(n, env)
	case *Logical:
		return p.logical(n, env)
	}
	//
	panic("unknown formula " + node.String())
}

func (p Evaluator) apply(n *Apply, env []interval.Interval) interval.Interval {
	e := p.engine
	args := make([]interval.Interval, len(n.args))
	//
	for i, arg := range n.args {
		args[i] = p.Real(arg, env)
	}
	//
	switch n.op {
	case ADD:
		return fold(args, e.Add)
	case SUB:
		return fold(args, e.Sub)
	case MUL:
		return fold(args, e.Mul)
	case DIV:
		return fold(args, e.Div)
	case MIN:
		return fold(args, func(x, y interval.Interval) interval.Interval {
			return e.New(min(x.Lower(), y.Lower()), min(x.Upper(), y.Upper()))
		})
	case MAX:
		return fold(args, func(x, y interval.Interval) interval.Interval {
			return e.New(max(x.Lower(), y.Lower()), max(x.Upper(), y.Upper()))
		})
	case NEG:
		return e.Neg(args[0])
	case POW:
		return e.Pow(args[0], args[1])
	case POWN:
		return e.PowInt(args[0], n.n)
	}
	//
	return unary(e, n.op)(args[0])
}

func unary(e interval.Engine, op Op) func(interval.Interval) interval.Interval {
	switch op {
	case ABS:
		return e.Abs
	case EXP:
		return e.Exp
	case LOG:
		return e.Log
	case SQRT:
		return e.Sqrt
	case SIN:
		return e.Sin
	case COS:
		return e.Cos
	case TAN:
		return e.Tan
	case ASIN:
		return e.Asin
	case ACOS:
		return e.Acos
	case ATAN:
		return e.Atan
	case SINH:
		return e.Sinh
	case COSH:
		return e.Cosh
	case TANH:
		return e.Tanh
	case ASINH:
		return e.Asinh
	case ACOSH:
		return e.Acosh
	case ATANH:
		return e.Atanh
	}
	//
	panic("unknown operator")
}

// Combine arguments from left to right, with empty operands (i.e. undefined
// terms) absorbing everything.
func fold(args []interval.Interval, fn func(interval.Interval, interval.Interval) interval.Interval) interval.Interval {
	acc := args[0]
	//
	for _, arg := range args[1:] {
		if acc.IsEmpty() || arg.IsEmpty() {
			return interval.EMPTY
		}
		//
		acc = fn(acc, arg)
	}
	//
	return acc
}

func (p Evaluator) compare(n *Compare, env []interval.Interval) Truth {
	var (
		result = True
		prev   = p.Real(n.args[0], env)
	)
	//
	for _, arg := range n.args[1:] {
		next := p.Real(arg, env)
		result = result.And(compare(n.cmp, prev, next))
		prev = next
	}
	//
	return result
}

func compare(cmp Cmp, a, b interval.Interval) Truth {
	if a.IsEmpty() || b.IsEmpty() {
		return Unknown
	}
	//
	switch cmp {
	case LT:
		return decide(a.Upper() < b.Lower(), a.Lower() >= b.Upper())
	case LEQ:
		return decide(a.Upper() <= b.Lower(), a.Lower() > b.Upper())
	case GT:
		return compare(LT, b, a)
	case GEQ:
		return compare(LEQ, b, a)
	default:
		equal := a.IsPoint() && b.IsPoint() && a.Lower() == b.Lower()
		return decide(equal, a.Upper() < b.Lower() || b.Upper() < a.Lower())
	}
}

func decide(always bool, never bool) Truth {
	switch {
	case always:
		return True
	case never:
		return False
	default:
		return Unknown
	}
}

func (p Evaluator) logical(n *Logical, env []interval.Interval) Truth {
	switch n.connective {
	case NOT:
		return p.Truth(n.args[0], env).Not()
	case AND:
		result := True
		//
		for _, arg := range n.args {
			// Short circuit once decided
			if result = result.And(p.Truth(arg, env)); result == False {
				break
			}
		}
		//
		return result
	case OR:
		result := False
		//
		for _, arg := range n.args {
			if result = result.Or(p.Truth(arg, env)); result == True {
				break
			}
		}
		//
		return result
	case IMPLIES:
		// Right associative: a => b => c is a => (b => c)
		result := p.Truth(n.args[len(n.args)-1], env)
		//
		for i := len(n.args) - 2; i >= 0; i-- {
			result = p.Truth(n.args[i], env).Not().Or(result)
		}
		//
		return result
	default:
		return p.Truth(n.args[0], env).Xor(p.Truth(n.args[1], env))
	}
}
