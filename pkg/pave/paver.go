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
package pave

import (
	"context"
	"fmt"

	"github.com/consensys/go-boxsolve/pkg/box"
	"github.com/consensys/go-boxsolve/pkg/interval"
	"github.com/consensys/go-boxsolve/pkg/oracle"
	"github.com/consensys/go-boxsolve/pkg/util"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DEFAULT_WORKERS determines the number of boxes classified concurrently.
const DEFAULT_WORKERS = 4

// DEFAULT_MAX_BOXES bounds the number of boxes classified in one run.
const DEFAULT_MAX_BOXES = 10_000

// Policy determines how a paver responds to a failed query.
type Policy uint8

const (
	// Halt aborts the run on the first failure.
	Halt Policy = iota
	// Skip records the box as failed and continues.
	Skip
)

// ParsePolicy converts a policy name (as used in configuration) into a policy.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "halt":
		return Halt, nil
	case "skip":
		return Skip, nil
	default:
		return Halt, fmt.Errorf("unknown error policy %q", name)
	}
}

func (p Policy) String() string {
	if p == Skip {
		return "skip"
	}
	//
	return "halt"
}

// Config determines how a paver searches.
type Config struct {
	// Boxes which are tight enough are not split further.
	Tolerance float64
	// Maximum number of boxes classified concurrently.
	Workers uint
	// Maximum number of boxes classified overall.
	MaxBoxes uint
	// Response to failed queries.
	Policy Policy
}

// DefaultConfig returns the default paving configuration.
func DefaultConfig() Config {
	return Config{1e-3, DEFAULT_WORKERS, DEFAULT_MAX_BOXES, Halt}
}

// Result holds the outcome of paving a box.  Together, the inner, outer,
// boundary and failed boxes cover the root box.
type Result struct {
	// Boxes where the constraint holds throughout.
	Inner []box.Box
	// Boxes where the constraint holds nowhere.
	Outer []box.Box
	// Boxes which remained undetermined, either because they were tight enough
	// or because the search was cut short.
	Boundary []box.Box
	// Boxes whose classification failed (only under the Skip policy).
	Failed []box.Box
	// Number of boxes classified.
	Boxes uint
	// Number of queries delegated to the decision procedure.
	SolverCalls uint64
	// Whether the search was cut short by the box limit.
	Exhausted bool
}

// Paver classifies a box with respect to a constraint by branch-and-bound.
// Boxes are processed in waves: every box on the frontier is classified
// concurrently, then undetermined boxes are split to form the next frontier.
// Results are collected by position, hence the outcome does not depend on the
// order in which queries complete.
type Paver struct {
	oracle   *oracle.Oracle
	splitter box.Splitter
	config   Config
}

// NewPaver constructs a paver for a given oracle.
func NewPaver(o *oracle.Oracle, engine interval.Engine, cfg Config) *Paver {
	if cfg.Workers == 0 {
		cfg.Workers = DEFAULT_WORKERS
	}
	//
	if cfg.MaxBoxes == 0 {
		cfg.MaxBoxes = DEFAULT_MAX_BOXES
	}
	//
	return &Paver{o, box.NewSplitter(engine), cfg}
}

type outcome struct {
	verdict oracle.Verdict
	err     error
}

// Pave classifies a given root box.
func (p *Paver) Pave(ctx context.Context, root box.Box) (*Result, error) {
	var (
		result   Result
		frontier = []box.Box{root}
		queries  = p.oracle.Queries()
		stats    = util.NewPerfStats()
	)
	//
	for wave := 0; len(frontier) > 0; wave++ {
		remaining := p.config.MaxBoxes - result.Boxes
		//
		if remaining < uint(len(frontier)) {
			result.Boundary = append(result.Boundary, frontier[remaining:]...)
			frontier = frontier[:remaining]
			result.Exhausted = true
		}
		//
		waveStats := util.NewPerfStats()
		outcomes, err := p.classify(ctx, frontier)
		//
		if err != nil {
			return nil, err
		}
		//
		result.Boxes += uint(len(frontier))
		frontier = p.refine(&result, frontier, outcomes)
		//
		waveStats.Log(fmt.Sprintf("Wave %d (%d boxes)", wave, len(outcomes)))
	}
	//
	result.SolverCalls = p.oracle.Queries() - queries
	stats.Log("Paving")
	//
	return &result, nil
}

// Classify every box on the frontier concurrently.
func (p *Paver) classify(ctx context.Context, frontier []box.Box) ([]outcome, error) {
	outcomes := make([]outcome, len(frontier))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(int(p.config.Workers))
	//
	for i, b := range frontier {
		g.Go(func() error {
			_, verdict, err := p.oracle.Classify(ctx, b)
			//
			if err != nil && p.config.Policy == Halt {
				return fmt.Errorf("classifying %s: %w", b.String(), err)
			}
			//
			outcomes[i] = outcome{verdict, err}
			//
			return nil
		})
	}
	//
	if err := g.Wait(); err != nil {
		return nil, err
	}
	//
	return outcomes, nil
}

// Record the outcome of each box, returning those to be examined next.
func (p *Paver) refine(result *Result, frontier []box.Box, outcomes []outcome) []box.Box {
	var next []box.Box
	//
	for i, b := range frontier {
		switch {
		case outcomes[i].err != nil:
			log.Debugf("skipping %s: %v", b.String(), outcomes[i].err)
			result.Failed = append(result.Failed, b)
		case outcomes[i].verdict == oracle.Holds:
			result.Inner = append(result.Inner, b)
		case outcomes[i].verdict == oracle.Fails:
			result.Outer = append(result.Outer, b)
		case box.IsTightEnough(b, p.config.Tolerance):
			result.Boundary = append(result.Boundary, b)
		default:
			children, progressed := p.splitter.Split(b)
			//
			if progressed {
				next = append(next, children...)
			} else {
				result.Boundary = append(result.Boundary, b)
			}
		}
	}
	//
	return next
}
