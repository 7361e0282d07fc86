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
package oracle

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/consensys/go-boxsolve/pkg/box"
	"github.com/consensys/go-boxsolve/pkg/interval"
	"github.com/consensys/go-boxsolve/pkg/smt"
	"github.com/consensys/go-boxsolve/pkg/solver"
	"github.com/consensys/go-boxsolve/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"
)

var engine = interval.NewOutward()

func Test_Oracle_01(t *testing.T) {
	// Trivial constraints never query
	for _, constraint := range []string{"", "true", "  true\n"} {
		stub := &stub{answer: smt.Unsat}
		oracle := newOracle(t, constraint, []string{"x"}, stub)
		b := box.New(engine.New(0, 10))
		//
		checkOracle(t, oracle, b, true, false, true)
		assert.True(t, oracle.IsTrivial())
		assert.Equal(t, uint64(0), oracle.Queries())
		assert.Empty(t, stub.texts())
	}
}

func Test_Oracle_02(t *testing.T) {
	oracle := newOracle(t, "(> x 1)", []string{"x"}, solver.NewIntervalBackend(engine, 0))
	//
	checkOracle(t, oracle, box.New(engine.New(0, 10)), true, true, false)
	checkOracle(t, oracle, box.New(engine.New(2, 10)), true, false, true)
	checkOracle(t, oracle, box.New(engine.New(-5, 1)), false, true, false)
}

func Test_Oracle_03(t *testing.T) {
	names := []string{"x", "y"}
	backend := solver.NewIntervalBackend(engine, 0)
	b := box.New(engine.New(0, 10), engine.New(0, 10))
	//
	checkOracle(t, newOracle(t, "(> 2 1)", names, backend), b, true, false, true)
	checkOracle(t, newOracle(t, "(> 1 2)", names, backend), b, false, true, false)
	checkOracle(t, newOracle(t, "(> (* (^ x 2) y) 99)", names, backend), b, true, true, false)
}

func Test_Oracle_04(t *testing.T) {
	stub := &stub{answer: smt.Sat}
	oracle := newOracle(t, "(> x 1)", []string{"x"}, stub)
	b := box.New(engine.New(0, 10))
	//
	_, err := oracle.May(context.Background(), b)
	require.NoError(t, err)
	_, err = oracle.MayNot(context.Background(), b)
	require.NoError(t, err)
	_, err = oracle.Must(context.Background(), b)
	require.NoError(t, err)
	// Must requires two queries
	assert.Equal(t, uint64(4), oracle.Queries())
	//
	texts := stub.texts()
	require.Len(t, texts, 4)
	assert.Equal(t, "(declare-fun x () Real)\n(assert (> x 1))\n(assert (<= 0.0 x))\n(assert (<= x 10.0))\n"+
		"(check-sat)\n(exit)\n", texts[0])
	assert.True(t, strings.Contains(texts[1], "(assert (not (> x 1)))"))
}

func Test_Oracle_05(t *testing.T) {
	// Approximate answers count as satisfiable
	for _, answer := range []smt.Answer{smt.Sat, smt.DeltaSat} {
		oracle := newOracle(t, "(> x 1)", []string{"x"}, &stub{answer: answer})
		checkOracle(t, oracle, box.New(engine.New(0, 10)), true, true, false)
	}
	//
	oracle := newOracle(t, "(> x 1)", []string{"x"}, &stub{answer: smt.Unsat})
	checkOracle(t, oracle, box.New(engine.New(0, 10)), false, false, false)
}

func Test_Oracle_06(t *testing.T) {
	// Errors are propagated
	failure := smt.NewBackendError("unknown constant z")
	oracle := newOracle(t, "(> x 1)", []string{"x"}, &stub{err: failure})
	b := box.New(engine.New(0, 10))
	//
	_, err := oracle.May(context.Background(), b)
	assert.ErrorIs(t, err, failure)
	_, _, err = oracle.Classify(context.Background(), b)
	assert.ErrorIs(t, err, failure)
}

func Test_Oracle_07(t *testing.T) {
	stub := &stub{answer: smt.Sat}
	oracle := newOracle(t, "(> x y)", []string{"x", "y"}, stub)
	//
	_, err := oracle.May(context.Background(), box.New(engine.New(0, 10)))
	assert.ErrorIs(t, err, ErrArity)
	// Empty boxes are never delegated
	empty := box.New(engine.Empty(), engine.New(0, 1))
	checkOracle(t, oracle, empty, false, false, false)
	assert.Equal(t, uint64(0), oracle.Queries())
}

func Test_Oracle_08(t *testing.T) {
	for _, constraint := range []string{"(> x 1", "(> x 1))", ")", "(> x |y"} {
		_, err := New(constraint, []string{"x"}, DefaultConfig(), &stub{})
		//
		var serr *source.SyntaxError
		//
		assert.ErrorAs(t, err, &serr, constraint)
	}
	// A procedure is required for non-trivial constraints
	_, err := New("(> x 1)", []string{"x"}, DefaultConfig(), nil)
	assert.Error(t, err)
}

func Test_Oracle_09(t *testing.T) {
	stub := &stub{answer: smt.Sat}
	cfg := Config{AbsTolerance: 0.01, Timeout: 0}
	oracle := newOracleWith(t, "(> x 1)", []string{"x"}, cfg, stub)
	//
	_, err := oracle.May(context.Background(), box.New(engine.New(0, 10)))
	require.NoError(t, err)
	//
	budget := stub.budgets()[0]
	assert.Equal(t, 0.01, budget.AbsTolerance)
	assert.Equal(t, solver.DEFAULT_TOLERANCE, budget.RelTolerance)
	assert.Equal(t, solver.DEFAULT_TIMEOUT, budget.Timeout)
}

func Test_Oracle_10(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(noop.NewTracerProvider()) })
	//
	b := box.New(engine.New(0, 10))
	ok := newOracle(t, "(> x 1)", []string{"x"}, &stub{answer: smt.Unsat})
	_, _, err := ok.Classify(context.Background(), b)
	require.NoError(t, err)
	//
	failure := smt.NewBackendError("oops")
	bad := newOracle(t, "(> x 1)", []string{"x"}, &stub{err: failure})
	_, err = bad.May(context.Background(), b)
	require.Error(t, err)
	//
	spans := recorder.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "oracle.may", spans[0].Name())
	assert.Equal(t, "oracle.may-not", spans[1].Name())
	assert.Equal(t, codes.Unset, spans[1].Status().Code)
	assert.Equal(t, codes.Error, spans[2].Status().Code)
}

func Test_Oracle_11(t *testing.T) {
	// Constraints are passed through as written
	for _, constraint := range []string{"(ite (> x 0) (> x 1) (< x (- 1)))", "(let ((y (* x x))) (> y 2))",
		"(> (to_real 1) x)", "(frob x)"} {
		stub := &stub{answer: smt.Sat}
		oracle := newOracle(t, constraint, []string{"x"}, stub)
		//
		may, err := oracle.May(context.Background(), box.New(engine.New(0, 10)))
		require.NoError(t, err)
		assert.True(t, may)
		//
		texts := stub.texts()
		require.Len(t, texts, 1)
		assert.Contains(t, texts[0], "(assert "+constraint+")")
	}
}

func Test_Oracle_12(t *testing.T) {
	// Unsupported operators are reported by the in-process backend
	oracle := newOracle(t, "(frob x)", []string{"x"}, solver.NewIntervalBackend(engine, 0))
	_, err := oracle.May(context.Background(), box.New(engine.New(0, 10)))
	//
	var berr *smt.BackendError
	//
	assert.ErrorAs(t, err, &berr)
}

func Test_Oracle_13(t *testing.T) {
	// Undecided queries are errors, not answers
	oracle := newOracle(t, "(> x 1)", []string{"x"}, &stub{answer: smt.Unknown})
	b := box.New(engine.New(0, 10))
	ctx := context.Background()
	//
	var uerr *smt.UndecidedError
	//
	may, err := oracle.May(ctx, b)
	assert.False(t, may)
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "stub", uerr.Procedure())
	//
	_, err = oracle.MayNot(ctx, b)
	assert.ErrorAs(t, err, &uerr)
	//
	_, verdict, err := oracle.Classify(ctx, b)
	assert.ErrorAs(t, err, &uerr)
	assert.Equal(t, Undetermined, verdict)
	//
	_, err = oracle.Must(ctx, b)
	assert.ErrorAs(t, err, &uerr)
}

func Test_Result_01(t *testing.T) {
	assert.Equal(t, Holds, Result{true, false}.Verdict())
	assert.Equal(t, Fails, Result{false, true}.Verdict())
	assert.Equal(t, Fails, Result{false, false}.Verdict())
	assert.Equal(t, Undetermined, Result{true, true}.Verdict())
	assert.Equal(t, "holds", Holds.String())
}

// ============================================================================
// Helpers
// ============================================================================

type stub struct {
	mux      sync.Mutex
	answer   smt.Answer
	err      error
	requests []solver.Request
}

func (p *stub) Name() string {
	return "stub"
}

func (p *stub) Check(_ context.Context, req solver.Request) (smt.Answer, error) {
	p.mux.Lock()
	defer p.mux.Unlock()
	//
	p.requests = append(p.requests, req)
	//
	return p.answer, p.err
}

func (p *stub) texts() []string {
	p.mux.Lock()
	defer p.mux.Unlock()
	//
	var texts []string
	//
	for _, req := range p.requests {
		texts = append(texts, req.Text)
	}
	//
	return texts
}

func (p *stub) budgets() []solver.Budget {
	p.mux.Lock()
	defer p.mux.Unlock()
	//
	var budgets []solver.Budget
	//
	for _, req := range p.requests {
		budgets = append(budgets, req.Budget)
	}
	//
	return budgets
}

func newOracle(t *testing.T, constraint string, names []string, proc solver.Procedure) *Oracle {
	return newOracleWith(t, constraint, names, DefaultConfig(), proc)
}

func newOracleWith(t *testing.T, constraint string, names []string, cfg Config, proc solver.Procedure) *Oracle {
	t.Helper()
	//
	oracle, err := New(constraint, names, cfg, proc)
	require.NoError(t, err)
	//
	return oracle
}

func checkOracle(t *testing.T, oracle *Oracle, b box.Box, may bool, mayNot bool, must bool) {
	t.Helper()
	//
	ctx := context.Background()
	//
	actual, err := oracle.May(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, may, actual, "may %s", b)
	//
	actual, err = oracle.MayNot(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, mayNot, actual, "may-not %s", b)
	//
	actual, err = oracle.Must(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, must, actual, "must %s", b)
	//
	result, _, err := oracle.Classify(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, must, result.Must())
}
