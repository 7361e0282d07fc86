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
	"fmt"
	"strings"

	"github.com/consensys/go-boxsolve/pkg/interval"
)

// Kind distinguishes real-valued terms from formulas.
type Kind uint8

const (
	// REAL is the kind of real-valued terms.
	REAL Kind = iota
	// BOOL is the kind of formulas.
	BOOL
)

func (k Kind) String() string {
	if k == REAL {
		return "Real"
	}
	//
	return "Bool"
}

// Node is a compiled term or formula.
type Node interface {
	// Kind returns the kind of this node.
	Kind() Kind
	// String returns this node in SMT-LIB syntax.
	String() string
}

// Const is a numeric literal, held as the tightest interval enclosing it.
type Const struct {
	text  string
	value interval.Interval
}

// Kind implementation for Node interface.
func (p *Const) Kind() Kind { return REAL }

func (p *Const) String() string { return p.text }

// Value returns the enclosure of this constant.
func (p *Const) Value() interval.Interval { return p.value }

// Var is a reference to the variable at a given position in the environment.
type Var struct {
	name  string
	index int
}

// Kind implementation for Node interface.
func (p *Var) Kind() Kind { return REAL }

func (p *Var) String() string { return p.name }

// Index returns the position of this variable in the environment.
func (p *Var) Index() int { return p.index }

// Op identifies an arithmetic operator or elementary function.
type Op uint8

// Supported arithmetic operators and functions.
const (
	ADD Op = iota
	SUB
	NEG
	MUL
	DIV
	POW
	POWN
	ABS
	MIN
	MAX
	EXP
	LOG
	SQRT
	SIN
	COS
	TAN
	ASIN
	ACOS
	ATAN
	SINH
	COSH
	TANH
	ASINH
	ACOSH
	ATANH
)

// Unary elementary functions, by their SMT-LIB name.
var unaryFunctions = map[string]Op{
	"abs": ABS, "exp": EXP, "log": LOG, "sqrt": SQRT,
	"sin": SIN, "cos": COS, "tan": TAN, "asin": ASIN, "acos": ACOS, "atan": ATAN,
	"sinh": SINH, "cosh": COSH, "tanh": TANH, "asinh": ASINH, "acosh": ACOSH, "atanh": ATANH,
	"arcsin": ASIN, "arccos": ACOS, "arctan": ATAN,
}

// Apply is the application of an operator to one or more terms.
type Apply struct {
	op   Op
	name string
	args []Node
	// Exponent for POWN
	n int
}

// Kind implementation for Node interface.
func (p *Apply) Kind() Kind { return REAL }

func (p *Apply) String() string { return format(p.name, p.args) }

// Op returns the operator being applied.
func (p *Apply) Op() Op { return p.op }

// Literal is the constant formula true or false.
type Literal struct {
	value bool
}

// Kind implementation for Node interface.
func (p *Literal) Kind() Kind { return BOOL }

func (p *Literal) String() string { return fmt.Sprintf("%t", p.value) }

// Cmp identifies a comparison.
type Cmp uint8

// Supported comparisons.
const (
	LT Cmp = iota
	LEQ
	GT
	GEQ
	EQ
)

// Compare is a (chained) comparison between two or more terms, such as
// (< a b c) which holds when a < b and b < c.
type Compare struct {
	cmp  Cmp
	name string
	args []Node
}

// Kind implementation for Node interface.
func (p *Compare) Kind() Kind { return BOOL }

func (p *Compare) String() string { return format(p.name, p.args) }

// Connective identifies a logical connective.
type Connective uint8

// Supported connectives.
const (
	NOT Connective = iota
	AND
	OR
	IMPLIES
	XOR
)

// Logical combines one or more formulas with a logical connective.
type Logical struct {
	connective Connective
	name       string
	args       []Node
}

// Kind implementation for Node interface.
func (p *Logical) Kind() Kind { return BOOL }

func (p *Logical) String() string { return format(p.name, p.args) }

func format(name string, args []Node) string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	builder.WriteString(name)
	//
	for _, arg := range args {
		builder.WriteString(" ")
		builder.WriteString(arg.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

// And constructs the conjunction of zero or more formulas.
func And(args ...Node) Node {
	return &Logical{AND, "and", args}
}

// Not constructs the negation of a formula.
func Not(arg Node) Node {
	return &Logical{NOT, "not", []Node{arg}}
}
