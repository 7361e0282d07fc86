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
package solver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/consensys/go-boxsolve/pkg/smt"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Time allowed for output to be drained after the process is killed.
const waitDelay = time.Second

// ArgumentsFn determines the command-line arguments passed to a decision
// procedure for a given budget.
type ArgumentsFn func(Budget) []string

// Process is a decision procedure implemented by an external executable, which
// reads the query on its standard input and writes the answer to its standard
// output.  A fresh process is started for every query.  The process is given
// its budget plus a grace period, after which it is killed.
type Process struct {
	name  string
	path  string
	args  ArgumentsFn
	grace time.Duration
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Procedure = (*Process)(nil)

// NewProcess constructs a procedure backed by a given executable.
func NewProcess(name string, path string, args ArgumentsFn, grace time.Duration) *Process {
	if grace <= 0 {
		grace = DEFAULT_GRACE
	}
	//
	return &Process{name, path, args, grace}
}

// NewZ3 constructs a procedure backed by the z3 solver.  If no path is given,
// z3 is looked up on the PATH.
func NewZ3(path string, grace time.Duration) *Process {
	if path == "" {
		path = "z3"
	}
	//
	return NewProcess("z3", path, func(b Budget) []string {
		return []string{"-smt2", "-in", "-T:" + strconv.Itoa(seconds(b.Timeout))}
	}, grace)
}

// NewDReal constructs a procedure backed by the dReal solver.  If no path is
// given, dreal is looked up on the PATH.
func NewDReal(path string, grace time.Duration) *Process {
	if path == "" {
		path = "dreal"
	}
	//
	return NewProcess("dreal", path, func(b Budget) []string {
		return []string{
			"--in",
			"--nlopt-ftol-abs", formatFloat(b.AbsTolerance),
			"--nlopt-ftol-rel", formatFloat(b.RelTolerance),
			"--nlopt-maxtime", strconv.Itoa(seconds(b.Timeout)),
		}
	}, grace)
}

// Name returns the name of this procedure.
func (p *Process) Name() string {
	return p.name
}

// Check runs the executable on a given query.  Failure to start the process
// gives a LaunchError, whilst exceeding the budget (plus grace) gives a
// TimeoutError.  Otherwise, the answer is parsed from standard output.
func (p *Process) Check(ctx context.Context, req Request) (smt.Answer, error) {
	var (
		budget         = req.Budget.Normalise()
		limit          = budget.Timeout + p.grace
		stdout, stderr bytes.Buffer
		start          = time.Now()
	)
	//
	ctx, span := otel.Tracer("solver").Start(ctx, "solver.Process.Check",
		trace.WithAttributes(
			attribute.String("backend", p.name),
			attribute.Int("query.bytes", len(req.Text)),
		),
	)
	defer span.End()
	//
	runCtx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()
	//
	cmd := exec.CommandContext(runCtx, p.path, p.args(budget)...)
	cmd.Stdin = strings.NewReader(req.Text)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	//
	if err := cmd.Start(); err != nil {
		return smt.Unknown, failed(span, smt.NewLaunchError(p.path, err))
	}
	// Solvers report errors on standard output, hence exit status is only logged
	waitErr := cmd.Wait()
	//
	switch {
	case ctx.Err() != nil:
		return smt.Unknown, failed(span, ctx.Err())
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		return smt.Unknown, failed(span, smt.NewTimeoutError(limit))
	}
	//
	answer, err := smt.ParseAnswer(stdout.Bytes())
	//
	log.Debugf("%s answered %s in %s", p.name, answer, time.Since(start))
	//
	if err != nil {
		if stderr.Len() > 0 || waitErr != nil {
			log.Debugf("%s exited with %v: %s", p.name, waitErr, strings.TrimSpace(stderr.String()))
		}
		//
		return smt.Unknown, failed(span, fmt.Errorf("%s: %w", p.name, err))
	}
	//
	span.SetAttributes(attribute.String("answer", answer.String()))
	//
	return answer, nil
}

func failed(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	//
	return err
}

// Convert a duration into whole seconds, rounding up.
func seconds(d time.Duration) int {
	return max(1, int(math.Ceil(d.Seconds())))
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
