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
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/consensys/go-boxsolve/pkg/box"
	"github.com/consensys/go-boxsolve/pkg/smt"
	"github.com/consensys/go-boxsolve/pkg/solver"
	"github.com/consensys/go-boxsolve/pkg/util/source"
	"github.com/consensys/go-boxsolve/pkg/util/source/sexp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrArity indicates a box whose length does not match the number of variables.
var ErrArity = errors.New("box does not match variables")

// Config determines the budget given to each delegated query.
type Config struct {
	// Absolute tolerance passed to numeric procedures.
	AbsTolerance float64
	// Relative tolerance passed to numeric procedures.
	RelTolerance float64
	// Time limit for each query.
	Timeout time.Duration
}

// DefaultConfig returns the default oracle configuration.
func DefaultConfig() Config {
	return Config{solver.DEFAULT_TOLERANCE, solver.DEFAULT_TOLERANCE, solver.DEFAULT_TIMEOUT}
}

// Oracle answers three-valued questions about a constraint over boxes, by
// delegating satisfiability queries to a decision procedure.  An oracle is
// immutable after construction, and safe for concurrent use provided the
// underlying procedure is.
type Oracle struct {
	// Constraint, or nil if trivial.
	constraint sexp.SExp
	// Ordered variable names.
	names []string
	// Budget for each query.
	budget solver.Budget
	// Procedure to which queries are delegated.
	proc solver.Procedure
	// Number of queries delegated.
	queries atomic.Uint64
}

// New constructs an oracle for a given constraint over a given set of
// variables.  The constraint is an SMT-LIB formula, where an empty constraint
// (or "true") is trivial and never requires the procedure.  Only the syntax of
// the constraint is checked here, since what it may contain is determined by
// the procedure.
func New(constraint string, names []string, cfg Config, proc solver.Procedure) (*Oracle, error) {
	budget := solver.Budget{
		Timeout:      cfg.Timeout,
		AbsTolerance: cfg.AbsTolerance,
		RelTolerance: cfg.RelTolerance,
	}.Normalise()
	//
	o := &Oracle{names: append([]string(nil), names...), budget: budget, proc: proc}
	//
	if text := strings.TrimSpace(constraint); text == "" || text == "true" {
		return o, nil
	}
	//
	srcfile := source.NewSourceFile("constraint", []byte(constraint))
	term, _, serr := sexp.Parse(srcfile)
	//
	if serr != nil {
		return nil, serr
	} else if proc == nil {
		return nil, fmt.Errorf("no decision procedure for constraint")
	}
	//
	o.constraint = term
	//
	return o, nil
}

// IsTrivial determines whether this oracle's constraint is trivially true.
func (o *Oracle) IsTrivial() bool {
	return o.constraint == nil
}

// Names returns the variables of this oracle, in order.
func (o *Oracle) Names() []string {
	return append([]string(nil), o.names...)
}

// Queries returns the number of queries delegated so far.
func (o *Oracle) Queries() uint64 {
	return o.queries.Load()
}

// May determines whether the constraint possibly holds somewhere in a given box.
// That is, whether the procedure reports it satisfiable (or delta-satisfiable)
// within the box.  A procedure which cannot decide gives an UndecidedError.
func (o *Oracle) May(ctx context.Context, b box.Box) (bool, error) {
	if err := o.check(b); err != nil {
		return false, err
	} else if o.IsTrivial() {
		return true, nil
	} else if b.IsEmpty() {
		return false, nil
	}
	//
	return o.possibly(ctx, "may", o.constraint, b)
}

// MayNot determines whether the negation of the constraint possibly holds
// somewhere in a given box.
func (o *Oracle) MayNot(ctx context.Context, b box.Box) (bool, error) {
	if err := o.check(b); err != nil {
		return false, err
	} else if o.IsTrivial() || b.IsEmpty() {
		return false, nil
	}
	//
	return o.possibly(ctx, "may-not", smt.Not(o.constraint), b)
}

// Must determines whether the constraint holds everywhere in a given box.
// Observe this may be false, even when the constraint does hold, when the
// procedure cannot refute the negation.
func (o *Oracle) Must(ctx context.Context, b box.Box) (bool, error) {
	result, _, err := o.Classify(ctx, b)
	//
	return result.Must(), err
}

// Classify answers both questions about a box at once.
func (o *Oracle) Classify(ctx context.Context, b box.Box) (Result, Verdict, error) {
	may, err := o.May(ctx, b)
	//
	if err != nil {
		return Result{}, Undetermined, err
	}
	//
	mayNot, err := o.MayNot(ctx, b)
	//
	if err != nil {
		return Result{}, Undetermined, err
	}
	//
	result := Result{may, mayNot}
	//
	return result, result.Verdict(), nil
}

func (o *Oracle) check(b box.Box) error {
	if b.Len() != len(o.names) {
		return fmt.Errorf("%w (expected %d dimensions, found %d)", ErrArity, len(o.names), b.Len())
	}
	//
	return nil
}

func (o *Oracle) possibly(ctx context.Context, kind string, formula sexp.SExp, b box.Box) (bool, error) {
	ctx, span := otel.Tracer("oracle").Start(ctx, "oracle."+kind,
		trace.WithAttributes(attribute.String("box", b.String())))
	defer span.End()
	//
	text := smt.Query(formula, o.names, b.Intervals()).String()
	//
	o.queries.Add(1)
	//
	answer, err := o.proc.Check(ctx, solver.Request{Text: text, Budget: o.budget})
	//
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		//
		return false, err
	}
	//
	log.Debugf("%s %s: %s", kind, b.String(), answer)
	span.SetAttributes(attribute.String("answer", answer.String()))
	//
	if answer == smt.Unknown {
		err = smt.NewUndecidedError(o.proc.Name())
		span.SetStatus(codes.Error, err.Error())
		//
		return false, err
	}
	//
	return answer.Satisfiable(), nil
}
