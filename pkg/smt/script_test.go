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
	"testing"

	"github.com/consensys/go-boxsolve/pkg/interval"
	"github.com/consensys/go-boxsolve/pkg/util/source"
	"github.com/consensys/go-boxsolve/pkg/util/source/sexp"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var engine = interval.NewOutward()

func Test_Real_01(t *testing.T) {
	assert.Equal(t, "10.0", Real(10).String(true))
	assert.Equal(t, "0.0", Real(0).String(true))
	assert.Equal(t, "0.0", Real(math.Copysign(0, -1)).String(true))
	assert.Equal(t, "0.5", Real(0.5).String(true))
	assert.Equal(t, "0.25", Real(0.25).String(true))
	assert.Equal(t, "(- 2.5)", Real(-2.5).String(true))
}

func Test_Real_02(t *testing.T) {
	assert.Equal(t, "0.1000000000000000055511151231257827021181583404541015625", Real(0.1).String(true))
	assert.Equal(t, "10000000000.0", Real(1e10).String(true))
}

func Test_Script_01(t *testing.T) {
	script := NewScript().DeclareReal("x").Assert(LessEq(Var("x"), Real(1))).CheckSat().Exit()
	//
	assert.Equal(t, "(declare-fun x () Real)\n(assert (<= x 1.0))\n(check-sat)\n(exit)\n", script.String())
	assert.Len(t, script.Commands(), 4)
}

func Test_Script_02(t *testing.T) {
	// Symbols which need it are quoted
	script := NewScript().DeclareReal("x y").Assert(Not(LessEq(Var("x y"), Real(-1))))
	//
	assert.Equal(t, "(declare-fun |x y| () Real)\n(assert (not (<= |x y| (- 1.0))))\n", script.String())
}

func Test_Query_01(t *testing.T) {
	checkQuery(t, "query_01", "(> x 1)", []string{"x"}, engine.New(0, 10))
}

func Test_Query_02(t *testing.T) {
	checkQuery(t, "query_02", "(not (> (* (^ x 2) y) 99))", []string{"x", "y"}, engine.New(-2.5, 0.1),
		engine.New(0, 10))
}

func Test_Query_03(t *testing.T) {
	// Unbounded dimensions impose no constraints
	checkQuery(t, "query_03", "(<= (+ x y) 0)", []string{"x", "y"}, engine.New(math.Inf(-1), 1),
		interval.ENTIRE)
}

func checkQuery(t *testing.T, name string, constraint string, names []string, bounds ...interval.Interval) {
	t.Helper()
	//
	formula, _, err := sexp.Parse(source.NewSourceFile("constraint", []byte(constraint)))
	require.Nil(t, err)
	//
	script := Query(formula, names, bounds)
	//
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(script.String()))
}
