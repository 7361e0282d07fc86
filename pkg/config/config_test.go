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
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/consensys/go-boxsolve/pkg/interval"
	"github.com/consensys/go-boxsolve/pkg/pave"
	"github.com/consensys/go-boxsolve/pkg/smt"
	"github.com/consensys/go-boxsolve/pkg/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var engine = interval.NewOutward()

func Test_Config_01(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "mixed.yaml"))
	require.NoError(t, err)
	//
	assert.Equal(t, "(> (* (^ x 2) y) 99)", p.Constraint)
	assert.Equal(t, []string{"x", "y"}, p.Names())
	assert.Equal(t, "dreal", p.Solver.Backend)
	assert.Equal(t, "/opt/dreal/bin/dreal", p.Solver.Path)
	assert.Equal(t, 0.001, p.Solver.AbsTolerance)
	assert.Equal(t, 30*time.Second, p.Solver.Timeout)
	// Defaults
	assert.Equal(t, solver.DEFAULT_TOLERANCE, p.Solver.RelTolerance)
	assert.Equal(t, solver.DEFAULT_GRACE, p.Solver.Grace)
	assert.Equal(t, uint(DEFAULT_ATTEMPTS), p.Solver.Attempts)
	assert.Equal(t, uint(pave.DEFAULT_MAX_BOXES), p.Search.MaxBoxes)
	//
	cfg, err := p.PaveConfig()
	require.NoError(t, err)
	assert.Equal(t, pave.Config{Tolerance: 0.01, Workers: 8, MaxBoxes: pave.DEFAULT_MAX_BOXES, Policy: pave.Skip}, cfg)
}

func Test_Config_02(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "mixed.yaml"))
	require.NoError(t, err)
	//
	b, err := p.Box(engine)
	require.NoError(t, err)
	//
	assert.Equal(t, engine.New(0, 10), b.Get(0))
	// One tenth is not representable, hence enclosed
	assert.True(t, b.Get(1).Contains(0.1))
	assert.Equal(t, 0.0, b.Get(1).Lower())
}

func Test_Config_03(t *testing.T) {
	t.Setenv("BOXSOLVE_BACKEND", "z3")
	t.Setenv("BOXSOLVE_TIMEOUT", "2m")
	t.Setenv("BOXSOLVE_WORKERS", "2")
	//
	p, err := Load(filepath.Join("testdata", "mixed.yaml"))
	require.NoError(t, err)
	//
	assert.Equal(t, "z3", p.Solver.Backend)
	assert.Equal(t, 2*time.Minute, p.Solver.Timeout)
	assert.Equal(t, uint(2), p.Search.Workers)
	// Untouched
	assert.Equal(t, "/opt/dreal/bin/dreal", p.Solver.Path)
}

func Test_Config_04(t *testing.T) {
	t.Setenv("BOXSOLVE_TIMEOUT", "soon")
	//
	_, err := Load(filepath.Join("testdata", "mixed.yaml"))
	assert.Error(t, err)
}

func Test_Config_05(t *testing.T) {
	checkInvalid(t, "constraint: true\nvariable:\n  - name: x\n")
	checkInvalid(t, "variables:\n  - name: x\n  - name: x\n")
	checkInvalid(t, "variables:\n  - lower: 0\n")
	checkInvalid(t, "search:\n  policy: ignore\n")
	checkInvalid(t, "solver: [1, 2]\n")
}

func Test_Config_06(t *testing.T) {
	// Empty problems are permitted
	p, err := Parse(nil)
	require.NoError(t, err)
	p.Normalise()
	//
	assert.Equal(t, "interval", p.Solver.Backend)
	assert.Equal(t, *Default(), *p)
}

func Test_Config_07(t *testing.T) {
	p, err := Parse([]byte("variables:\n  - name: x\n  - name: y\n    lower: 2\n    upper: 1\n"))
	require.NoError(t, err)
	//
	_, err = p.Box(engine)
	assert.ErrorContains(t, err, "variable y has empty bounds")
	// Missing bounds are unbounded
	p.Variables = p.Variables[:1]
	b, err := p.Box(engine)
	require.NoError(t, err)
	assert.Equal(t, interval.ENTIRE, b.Get(0))
	//
	p.Variables[0].Lower = "zero"
	_, err = p.Box(engine)
	//
	var perr *interval.ParseError
	//
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "zero", perr.Text())
}

func Test_Stack_01(t *testing.T) {
	stack, err := Default().Solver.Build(engine)
	require.NoError(t, err)
	defer stack.Close()
	//
	assert.Equal(t, "interval", stack.Procedure.Name())
	assert.Nil(t, stack.Memo)
	//
	_, err = Solver{Backend: "cvc5"}.Build(engine)
	assert.ErrorContains(t, err, "unknown backend")
}

func Test_Stack_02(t *testing.T) {
	dir := t.TempDir()
	cfg := Default().Solver
	cfg.Cache = filepath.Join(dir, "answers.db")
	cfg.Dump = filepath.Join(dir, "queries")
	//
	stack, err := cfg.Build(engine)
	require.NoError(t, err)
	defer stack.Close()
	//
	req := solver.Request{Text: "(declare-fun x () Real)\n(assert (> x 1))\n(check-sat)\n"}
	//
	for range 2 {
		answer, err := stack.Procedure.Check(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, smt.Sat, answer)
	}
	//
	assert.Equal(t, uint64(1), stack.Memo.Hits())
	// Only the first query reaches the backend
	files, err := filepath.Glob(filepath.Join(dir, "queries", "*.smt2"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func Test_Stack_03(t *testing.T) {
	for _, backend := range []string{"z3", "dreal"} {
		stack, err := Solver{Backend: backend, Attempts: 1}.Build(engine)
		require.NoError(t, err)
		assert.Equal(t, backend, stack.Procedure.Name())
	}
}

func checkInvalid(t *testing.T, text string) {
	t.Helper()
	//
	_, err := Parse([]byte(text))
	assert.Error(t, err, text)
}
