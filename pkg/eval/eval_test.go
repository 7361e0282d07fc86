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
	"testing"

	"github.com/consensys/go-boxsolve/pkg/interval"
	"github.com/consensys/go-boxsolve/pkg/util/source"
	"github.com/consensys/go-boxsolve/pkg/util/source/sexp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var engine = interval.NewOutward()

func Test_Eval_01(t *testing.T) {
	checkTruth(t, "(> x 1)", Unknown, engine.New(0, 10))
	checkTruth(t, "(> x 1)", True, engine.New(2, 10))
	checkTruth(t, "(> x 1)", False, engine.New(0, 1))
	checkTruth(t, "(>= x 1)", True, engine.New(1, 10))
	checkTruth(t, "(< x 1)", False, engine.New(1, 10))
	checkTruth(t, "(<= x 1)", Unknown, engine.New(1, 10))
}

func Test_Eval_02(t *testing.T) {
	checkTruth(t, "(> 2 1)", True, engine.New(0, 10))
	checkTruth(t, "(> 1 2)", False, engine.New(0, 10))
	checkTruth(t, "true", True)
	checkTruth(t, "false", False)
}

func Test_Eval_03(t *testing.T) {
	x, y := engine.New(0, 10), engine.New(0, 10)
	//
	checkTruth(t, "(> (* (^ x 2) y) 99)", Unknown, x, y)
	checkTruth(t, "(> (* (^ x 2) y) 99)", True, engine.New(4, 10), engine.New(7, 10))
	checkTruth(t, "(> (* (^ x 2) y) 99)", False, engine.New(0, 3), engine.New(0, 10))
}

func Test_Eval_04(t *testing.T) {
	// Chained comparisons
	checkTruth(t, "(< 0 x 10)", True, engine.New(1, 2))
	checkTruth(t, "(< 0 x 10)", False, engine.New(11, 12))
	checkTruth(t, "(< 0 x 10)", Unknown, engine.New(5, 12))
}

func Test_Eval_05(t *testing.T) {
	checkTruth(t, "(= x 2)", True, engine.Point(2))
	checkTruth(t, "(= x 2)", False, engine.New(3, 4))
	checkTruth(t, "(= x 2)", Unknown, engine.New(1, 4))
}

func Test_Eval_06(t *testing.T) {
	// Kleene connectives
	unknown := "(> x 1)"
	//
	checkTruth(t, "(not "+unknown+")", Unknown, engine.New(0, 10))
	checkTruth(t, "(and false "+unknown+")", False, engine.New(0, 10))
	checkTruth(t, "(and true "+unknown+")", Unknown, engine.New(0, 10))
	checkTruth(t, "(or true "+unknown+")", True, engine.New(0, 10))
	checkTruth(t, "(or false "+unknown+")", Unknown, engine.New(0, 10))
	checkTruth(t, "(=> false "+unknown+")", True, engine.New(0, 10))
	checkTruth(t, "(=> true false)", False)
	checkTruth(t, "(=> true true false)", False)
	checkTruth(t, "(=> false true false)", True)
	checkTruth(t, "(xor true false)", True)
	checkTruth(t, "(xor true true)", False)
	checkTruth(t, "(xor true "+unknown+")", Unknown, engine.New(0, 10))
}

func Test_Eval_07(t *testing.T) {
	// Undefined terms
	checkTruth(t, "(> (sqrt x) 1)", Unknown, engine.New(-2, -1))
	checkTruth(t, "(> (sqrt x) 3)", False, engine.New(-2, 4))
	checkTruth(t, "(< (log x) 0)", True, engine.New(0.1, 0.5))
}

func Test_Eval_08(t *testing.T) {
	checkTerm(t, "(- x)", engine.New(-2, -1), engine.New(1, 2))
	checkTerm(t, "(- x 1 1)", engine.New(-1, 0), engine.New(1, 2))
	checkTerm(t, "(+ x x x)", engine.New(3, 6), engine.New(1, 2))
	checkTerm(t, "(/ x 2)", engine.New(0.5, 1), engine.New(1, 2))
	checkTerm(t, "(min x 1.5)", engine.New(1, 1.5), engine.New(1, 2))
	checkTerm(t, "(max x 1.5)", engine.New(1.5, 2), engine.New(1, 2))
	checkTerm(t, "(abs x)", engine.New(0, 2), engine.New(-2, 1))
	checkTerm(t, "(pow x 3)", engine.New(-8, 1), engine.New(-2, 1))
	checkTerm(t, "(^ x (- 1))", engine.New(0.5, 1), engine.New(1, 2))
}

func Test_Eval_09(t *testing.T) {
	// Elementary functions enclose their point values
	node := compileTerm(t, "(+ (sin x) (cos x) (tan x) (exp x) (atan x) (sinh x) (cosh x) (tanh x) (asinh x))", "x")
	iv := NewEvaluator(engine).Real(node, []interval.Interval{engine.Point(0.5)})
	//
	assert.False(t, iv.IsEmpty())
	assert.Less(t, iv.Width(), 1e-12)
	//
	node = compileTerm(t, "(+ (asin x) (acos x) (atanh x) (acosh (+ x 1)) (arctan x))", "x")
	iv = NewEvaluator(engine).Real(node, []interval.Interval{engine.Point(0.5)})
	assert.False(t, iv.IsEmpty())
}

func Test_Eval_10(t *testing.T) {
	node := compile(t, "(and (<= 0 x) (< (+ x |y z|) 1.5))", "x", "y z")
	//
	assert.Equal(t, "(and (<= 0 x) (< (+ x y z) 1.5))", node.String())
	assert.Equal(t, BOOL, node.Kind())
}

// ============================================================================
// Negative Tests
// ============================================================================

func Test_Compile_Err1(t *testing.T) {
	checkCompileErr(t, "(> z 1)", "unknown symbol z")
}

func Test_Compile_Err2(t *testing.T) {
	checkCompileErr(t, "(> (foo x) 1)", "unknown operator foo")
}

func Test_Compile_Err3(t *testing.T) {
	checkCompileErr(t, "(+ x 1)", "expected formula")
}

func Test_Compile_Err4(t *testing.T) {
	checkCompileErr(t, "(> (+ x (> x 1)) 1)", "+ expects Real argument(s)")
}

func Test_Compile_Err5(t *testing.T) {
	checkCompileErr(t, "(not x)", "not expects Bool argument(s)")
}

func Test_Compile_Err6(t *testing.T) {
	checkCompileErr(t, "(> (sqrt x x) 1)", "sqrt expects at most 1 argument(s)")
}

func Test_Compile_Err7(t *testing.T) {
	checkCompileErr(t, "(> x 1..2)", "invalid interval literal")
}

func Test_Compile_Err8(t *testing.T) {
	// All errors are reported
	_, err := compileErr(t, "(and (> z 1) (< w 2))", "x")
	//
	var eerr *Error
	//
	require.ErrorAs(t, err, &eerr)
	assert.Len(t, eerr.Errors(), 2)
	//
	var serr *source.SyntaxError
	//
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "unknown symbol z", serr.Message())
}

func Test_Truth_01(t *testing.T) {
	for _, a := range []Truth{True, False, Unknown} {
		assert.Equal(t, a, a.Not().Not())
		//
		for _, b := range []Truth{True, False, Unknown} {
			// De Morgan
			assert.Equal(t, a.And(b).Not(), a.Not().Or(b.Not()))
			assert.Equal(t, a.And(b), b.And(a))
		}
	}
	//
	assert.Equal(t, "unknown", Unknown.String())
}

// ============================================================================
// Helpers
// ============================================================================

var varNames = []string{"x", "y"}

func checkTruth(t *testing.T, formula string, expected Truth, env ...interval.Interval) {
	t.Helper()
	//
	node := compile(t, formula, varNames[:len(env)]...)
	actual := NewEvaluator(engine).Truth(node, env)
	//
	assert.Equal(t, expected, actual, "%s over %v", formula, env)
}

func checkTerm(t *testing.T, term string, expected interval.Interval, env ...interval.Interval) {
	t.Helper()
	//
	node := compileTerm(t, term, varNames[:len(env)]...)
	actual := NewEvaluator(engine).Real(node, env)
	//
	assert.Equal(t, expected, actual, "%s over %v", term, env)
}

func checkCompileErr(t *testing.T, formula string, msg string) {
	t.Helper()
	//
	_, err := compileErr(t, formula, "x")
	//
	require.Error(t, err)
	assert.Contains(t, err.Error(), msg)
}

func compile(t *testing.T, formula string, names ...string) Node {
	t.Helper()
	//
	node, err := compileErr(t, formula, names...)
	require.NoError(t, err)
	//
	return node
}

func compileErr(t *testing.T, formula string, names ...string) (Node, error) {
	t.Helper()
	//
	term, srcmap, err := sexp.Parse(source.NewSourceFile("formula", []byte(formula)))
	require.Nil(t, err)
	//
	return Compile(term, srcmap, names, engine)
}

func compileTerm(t *testing.T, text string, names ...string) Node {
	t.Helper()
	//
	term, srcmap, serr := sexp.Parse(source.NewSourceFile("term", []byte(text)))
	require.Nil(t, serr)
	//
	node, err := CompileTerm(term, srcmap, names, engine)
	require.NoError(t, err)
	//
	return node
}
