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
package smt

import (
	"math"
	"math/big"
	"strings"

	"github.com/consensys/go-boxsolve/pkg/interval"
	"github.com/consensys/go-boxsolve/pkg/util/source/sexp"
)

// Script is a sequence of SMT-LIB commands which is sent to a decision
// procedure as a single query.
type Script struct {
	commands []sexp.SExp
}

// NewScript constructs an initially empty script.
func NewScript() *Script {
	return &Script{}
}

// Commands returns the commands making up this script.
func (p *Script) Commands() []sexp.SExp {
	return p.commands
}

// DeclareReal declares a real-valued constant of the given name.
func (p *Script) DeclareReal(name string) *Script {
	return p.add(sexp.NewSymbol("declare-fun"), sexp.NewSymbol(name), sexp.NewList(), sexp.NewSymbol("Real"))
}

// Assert adds an assertion of a given formula.
func (p *Script) Assert(formula sexp.SExp) *Script {
	return p.add(sexp.NewSymbol("assert"), formula)
}

// CheckSat asks whether the assertions made so far are satisfiable.
func (p *Script) CheckSat() *Script {
	return p.add(sexp.NewSymbol("check-sat"))
}

// Exit terminates the session.
func (p *Script) Exit() *Script {
	return p.add(sexp.NewSymbol("exit"))
}

// String renders this script as text, with one command per line.
func (p *Script) String() string {
	var builder strings.Builder
	//
	for _, cmd := range p.commands {
		builder.WriteString(cmd.String(true))
		builder.WriteString("\n")
	}
	//
	return builder.String()
}

func (p *Script) add(elements ...sexp.SExp) *Script {
	p.commands = append(p.commands, sexp.NewList(elements...))
	return p
}

// Query constructs the script which checks whether a given formula can hold
// anywhere within a given box.  Specifically, each variable is declared, the
// formula asserted, and each variable then constrained by the lower and upper
// bounds of its interval.  Infinite bounds impose no constraint, and are
// therefore omitted.
func Query(formula sexp.SExp, names []string, bounds []interval.Interval) *Script {
	script := NewScript()
	//
	for _, name := range names {
		script.DeclareReal(name)
	}
	//
	script.Assert(formula)
	//
	for i, name := range names {
		if lo := bounds[i].Lower(); !math.IsInf(lo, 0) {
			script.Assert(LessEq(Real(lo), Var(name)))
		}
	}
	//
	for i, name := range names {
		if hi := bounds[i].Upper(); !math.IsInf(hi, 0) {
			script.Assert(LessEq(Var(name), Real(hi)))
		}
	}
	//
	return script.CheckSat().Exit()
}

// Var constructs a reference to a declared constant.
func Var(name string) sexp.SExp {
	return sexp.NewSymbol(name)
}

// Not constructs the negation of a formula.
func Not(formula sexp.SExp) sexp.SExp {
	return sexp.NewList(sexp.NewSymbol("not"), formula)
}

// LessEq constructs the formula lhs <= rhs.
func LessEq(lhs sexp.SExp, rhs sexp.SExp) sexp.SExp {
	return sexp.NewList(sexp.NewSymbol("<="), lhs, rhs)
}

// Real constructs a decimal literal denoting exactly the given (finite) double.
// Since every double is a dyadic rational, its decimal expansion is always
// finite.  Negative values are written as (- d), as SMT-LIB decimals are
// unsigned.
func Real(x float64) sexp.SExp {
	r := new(big.Rat).SetFloat64(math.Abs(x))
	// Denominator is 2^k, hence k decimal digits suffice
	digits := r.Denom().BitLen() - 1
	text := r.FloatString(max(digits, 1))
	//
	if x < 0 {
		return sexp.NewList(sexp.NewSymbol("-"), sexp.NewSymbol(text))
	}
	//
	return sexp.NewSymbol(text)
}
