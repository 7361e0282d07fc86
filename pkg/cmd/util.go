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
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-boxsolve/pkg/box"
	"github.com/consensys/go-boxsolve/pkg/config"
	"github.com/consensys/go-boxsolve/pkg/interval"
	"github.com/consensys/go-boxsolve/pkg/oracle"
	"github.com/consensys/go-boxsolve/pkg/telemetry"
	"github.com/consensys/go-boxsolve/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetFloat gets an expected float, or exits if an error arises.
func GetFloat(cmd *cobra.Command, flag string) float64 {
	r, err := cmd.Flags().GetFloat64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Printer used for reporting counts.
var counts = message.NewPrinter(language.English)

// Load the problem file given on the command line, applying any overrides given
// as flags.
func loadProblem(cmd *cobra.Command, args []string) *config.Problem {
	if len(args) != 1 {
		fmt.Println(cmd.UsageString())
		os.Exit(1)
	}
	// Configure log level
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	//
	problem, err := config.Load(args[0])
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	// Apply flags
	if backend := GetString(cmd, "backend"); backend != "" {
		problem.Solver.Backend = backend
	}

	if path := GetString(cmd, "solver-path"); path != "" {
		problem.Solver.Path = path
	}

	if timeout, err := cmd.Flags().GetDuration("timeout"); err == nil && timeout > 0 {
		problem.Solver.Timeout = timeout
	}

	if tol := GetFloat(cmd, "abs-tolerance"); tol > 0 {
		problem.Solver.AbsTolerance = tol
	}

	if tol := GetFloat(cmd, "rel-tolerance"); tol > 0 {
		problem.Solver.RelTolerance = tol
	}

	if cache := GetString(cmd, "cache"); cache != "" {
		problem.Solver.Cache = cache
	}

	if dump := GetString(cmd, "dump"); dump != "" {
		problem.Solver.Dump = dump
	}

	if GetFlag(cmd, "drop-constraints") {
		problem.Constraint = ""
	}
	//
	return problem
}

// Assemble the oracle for a given problem.  The returned function releases any
// resources held.
func buildOracle(problem *config.Problem, engine interval.Engine) (*oracle.Oracle, func()) {
	stack, err := problem.Solver.Build(engine)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	o, err := oracle.New(problem.Constraint, problem.Names(), problem.OracleConfig(), stack.Procedure)
	if err != nil {
		_ = stack.Close()
		reportError(err)
		os.Exit(2)
	}
	//
	return o, func() {
		if stack.Memo != nil {
			log.Debugf("%s answers reused", counts.Sprintf("%d", stack.Memo.Hits()))
		}

		if err := stack.Close(); err != nil {
			log.Warnf("closing solver: %v", err)
		}
	}
}

// Construct the root box of a given problem.
func buildBox(problem *config.Problem, engine interval.Engine) box.Box {
	root, err := problem.Box(engine)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return root
}

// Start exporting traces, if requested.  The returned function flushes any
// pending spans.
func startTelemetry(cmd *cobra.Command) func() {
	endpoint := GetString(cmd, "otel-endpoint")
	//
	if endpoint == "" {
		if e, err := config.ParseEnv(); err == nil {
			endpoint = e.OtelEndpoint
		}
	}
	//
	shutdown, err := telemetry.Setup(context.Background(), endpoint, "boxsolve")
	if err != nil {
		log.Warnf("telemetry disabled: %v", err)
	}
	//
	return func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warnf("flushing traces: %v", err)
		}
	}
}

// Report an error, highlighting syntax errors in their source.
func reportError(err error) {
	var serr *source.SyntaxError
	//
	if errors.As(err, &serr) {
		printSyntaxError(serr)
	} else {
		fmt.Println(err)
	}
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := max(1, min(line.Length()-lineOffset, span.Length()))
	// Print error + line number
	fmt.Printf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
	// Print separator line
	fmt.Println()
	// Print line
	fmt.Println(line.String())
	// Print indent (todo: account for tabs)
	fmt.Print(strings.Repeat(" ", lineOffset))
	// Print highlight
	fmt.Println(strings.Repeat("^", length))
}
