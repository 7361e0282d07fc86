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
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/consensys/go-boxsolve/pkg/interval"
	"github.com/consensys/go-boxsolve/pkg/util/source"
	"github.com/consensys/go-boxsolve/pkg/util/source/sexp"
)

// Error reports one or more problems found whilst compiling a formula, such as
// references to undeclared variables or unsupported operators.
type Error struct {
	errors []source.SyntaxError
}

// Errors returns the individual syntax errors.
func (e *Error) Errors() []source.SyntaxError {
	return e.errors
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.errors))
	//
	for i := range e.errors {
		msgs[i] = e.errors[i].Error()
	}
	//
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual syntax errors.
func (e *Error) Unwrap() []error {
	errs := make([]error, len(e.errors))
	//
	for i := range e.errors {
		errs[i] = &e.errors[i]
	}
	//
	return errs
}

// Compile translates an S-expression into a formula over a given ordered set of
// variables.  Numeric literals are enclosed using the given engine.
func Compile(formula sexp.SExp, srcmap *source.Map[sexp.SExp], names []string,
	engine interval.Engine) (Node, error) {
	translator := newTranslator(srcmap, names, engine)
	//
	node, errs := translator.Translate(formula)
	//
	if len(errs) > 0 {
		return nil, &Error{errs}
	} else if node.Kind() != BOOL {
		return nil, &Error{translator.SyntaxErrors(formula, "expected formula")}
	}
	//
	return node, nil
}

// CompileTerm translates an S-expression into a real-valued term over a given
// ordered set of variables.
func CompileTerm(term sexp.SExp, srcmap *source.Map[sexp.SExp], names []string,
	engine interval.Engine) (Node, error) {
	translator := newTranslator(srcmap, names, engine)
	//
	node, errs := translator.Translate(term)
	//
	if len(errs) > 0 {
		return nil, &Error{errs}
	} else if node.Kind() != REAL {
		return nil, &Error{translator.SyntaxErrors(term, "expected term")}
	}
	//
	return node, nil
}

func newTranslator(srcmap *source.Map[sexp.SExp], names []string, engine interval.Engine) *sexp.Translator[Node] {
	var (
		t         = sexp.NewTranslator[Node](srcmap)
		variables = make(map[string]int)
	)
	//
	for i, n := range names {
		variables[n] = i
	}
	// Literals
	t.AddSymbolRule(func(s string) (Node, bool, error) {
		switch s {
		case "true":
			return &Literal{true}, true, nil
		case "false":
			return &Literal{false}, true, nil
		}
		//
		return nil, false, nil
	})
	t.AddSymbolRule(func(s string) (Node, bool, error) {
		if !isNumeral(s) {
			return nil, false, nil
		}
		//
		value, err := engine.ParseSingle(s)
		//
		return &Const{s, value}, true, err
	})
	t.AddSymbolRule(func(s string) (Node, bool, error) {
		if index, ok := variables[s]; ok {
			return &Var{s, index}, true, nil
		}
		//
		return nil, false, nil
	})
	// Arithmetic
	t.AddRecursiveListRule("+", nary(ADD, 1))
	t.AddRecursiveListRule("*", nary(MUL, 1))
	t.AddRecursiveListRule("/", nary(DIV, 2))
	t.AddRecursiveListRule("-", func(name string, args []Node) (Node, error) {
		if err := checkArgs(name, args, REAL, 1, math.MaxInt); err != nil {
			return nil, err
		} else if len(args) == 1 {
			return &Apply{op: NEG, name: name, args: args}, nil
		}
		//
		return &Apply{op: SUB, name: name, args: args}, nil
	})
	t.AddRecursiveListRule("^", translatePow)
	t.AddRecursiveListRule("pow", translatePow)
	t.AddRecursiveListRule("min", nary(MIN, 1))
	t.AddRecursiveListRule("max", nary(MAX, 1))
	//
	for name, op := range unaryFunctions {
		t.AddRecursiveListRule(name, func(name string, args []Node) (Node, error) {
			if err := checkArgs(name, args, REAL, 1, 1); err != nil {
				return nil, err
			}
			//
			return &Apply{op: op, name: name, args: args}, nil
		})
	}
	// Comparisons
	t.AddRecursiveListRule("<", comparison(LT))
	t.AddRecursiveListRule("<=", comparison(LEQ))
	t.AddRecursiveListRule(">", comparison(GT))
	t.AddRecursiveListRule(">=", comparison(GEQ))
	t.AddRecursiveListRule("=", comparison(EQ))
	// Connectives
	t.AddRecursiveListRule("not", connective(NOT, 1, 1))
	t.AddRecursiveListRule("and", connective(AND, 1, math.MaxInt))
	t.AddRecursiveListRule("or", connective(OR, 1, math.MaxInt))
	t.AddRecursiveListRule("=>", connective(IMPLIES, 2, math.MaxInt))
	t.AddRecursiveListRule("xor", connective(XOR, 2, 2))
	//
	return t
}

func nary(op Op, minArgs int) sexp.RecursiveRule[Node] {
	return func(name string, args []Node) (Node, error) {
		if err := checkArgs(name, args, REAL, minArgs, math.MaxInt); err != nil {
			return nil, err
		}
		//
		return &Apply{op: op, name: name, args: args}, nil
	}
}

// Powers with a constant integer exponent are evaluated more precisely (and
// over negative bases) than general powers.
func translatePow(name string, args []Node) (Node, error) {
	if err := checkArgs(name, args, REAL, 2, 2); err != nil {
		return nil, err
	}
	//
	if c, ok := args[1].(*Const); ok {
		if v := c.value; v.IsPoint() && v.Lower() == math.Trunc(v.Lower()) && math.Abs(v.Lower()) <= math.MaxInt32 {
			return &Apply{op: POWN, name: name, args: args, n: int(v.Lower())}, nil
		}
	}
	//
	return &Apply{op: POW, name: name, args: args}, nil
}

func comparison(cmp Cmp) sexp.RecursiveRule[Node] {
	return func(name string, args []Node) (Node, error) {
		if err := checkArgs(name, args, REAL, 2, math.MaxInt); err != nil {
			return nil, err
		}
		//
		return &Compare{cmp, name, args}, nil
	}
}

func connective(c Connective, minArgs int, maxArgs int) sexp.RecursiveRule[Node] {
	return func(name string, args []Node) (Node, error) {
		if err := checkArgs(name, args, BOOL, minArgs, maxArgs); err != nil {
			return nil, err
		}
		//
		return &Logical{c, name, args}, nil
	}
}

func checkArgs(name string, args []Node, kind Kind, minArgs int, maxArgs int) error {
	switch {
	case len(args) < minArgs:
		return fmt.Errorf("%s expects at least %d argument(s)", name, minArgs)
	case len(args) > maxArgs:
		return fmt.Errorf("%s expects at most %d argument(s)", name, maxArgs)
	}
	//
	for _, arg := range args {
		if arg.Kind() != kind {
			return errors.New(name + " expects " + kind.String() + " argument(s)")
		}
	}
	//
	return nil
}

func isNumeral(s string) bool {
	s = strings.TrimPrefix(s, "-")
	//
	return len(s) > 0 && (unicode.IsDigit(rune(s[0])) || (s[0] == '.' && len(s) > 1))
}
