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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/consensys/go-boxsolve/pkg/box"
	"github.com/consensys/go-boxsolve/pkg/interval"
	"github.com/consensys/go-boxsolve/pkg/oracle"
	"github.com/consensys/go-boxsolve/pkg/pave"
	"github.com/consensys/go-boxsolve/pkg/solver"
	"gopkg.in/yaml.v3"
)

// Problem describes a constraint over a bounded domain, along with how it
// should be solved.
type Problem struct {
	// Constraint is an SMT-LIB formula over the variables.  An empty
	// constraint holds everywhere.
	Constraint string `yaml:"constraint"`

	// Variables lists the variables in order, along with their bounds.
	Variables []Variable `yaml:"variables"`

	// Solver determines the decision procedure.
	Solver Solver `yaml:"solver"`

	// Search determines how boxes are paved.
	Search Search `yaml:"search"`
}

// Variable is a named real variable with textual bounds.  Bounds are parsed
// exactly, and rounded outwards, hence "0.1" gives the smallest enclosing
// interval of one tenth.
type Variable struct {
	Name  string `yaml:"name"`
	Lower string `yaml:"lower"`
	Upper string `yaml:"upper"`
}

// Solver configures the decision procedure.
type Solver struct {
	// Backend is one of "z3", "dreal" or "interval".
	Backend string `yaml:"backend"`
	// Path of the solver binary (when not on the PATH).
	Path string `yaml:"path"`
	// Tolerances passed to numeric backends.
	AbsTolerance float64 `yaml:"abs-tolerance"`
	RelTolerance float64 `yaml:"rel-tolerance"`
	// Time limit per query.
	Timeout time.Duration `yaml:"timeout"`
	// Additional time allowed before a solver is killed.
	Grace time.Duration `yaml:"grace"`
	// Number of attempts at launching a solver.
	Attempts uint `yaml:"attempts"`
	// Maximum boxes examined per query (interval backend only).
	MaxBoxes int `yaml:"max-boxes"`
	// Path of a persistent answer cache (empty for none).
	Cache string `yaml:"cache"`
	// Directory into which queries are dumped (empty for none).
	Dump string `yaml:"dump"`
}

// Search configures paving.
type Search struct {
	Tolerance float64 `yaml:"tolerance"`
	Workers   uint    `yaml:"workers"`
	MaxBoxes  uint    `yaml:"max-boxes"`
	Policy    string  `yaml:"policy"`
}

// Default returns a problem with no constraint or variables, and all settings
// at their defaults.
func Default() *Problem {
	p := &Problem{}
	p.Normalise()
	//
	return p
}

// Load reads a problem file, applies environment overrides and fills in
// defaults.
func Load(path string) (*Problem, error) {
	bytes, err := os.ReadFile(path)
	//
	if err != nil {
		return nil, err
	}
	//
	p, err := Parse(bytes)
	//
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	} else if err = ApplyEnv(p); err != nil {
		return nil, err
	}
	//
	p.Normalise()
	//
	return p, nil
}

// Parse a problem from its YAML text.  Unknown fields are rejected, since they
// most likely indicate a typo.
func Parse(text []byte) (*Problem, error) {
	var p Problem
	//
	decoder := yaml.NewDecoder(bytes.NewReader(text))
	decoder.KnownFields(true)
	//
	if err := decoder.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse problem: %w", err)
	}
	//
	if err := p.Validate(); err != nil {
		return nil, err
	}
	//
	return &p, nil
}

// Validate checks variables are well-formed.
func (p *Problem) Validate() error {
	seen := make(map[string]bool)
	//
	for i, v := range p.Variables {
		switch {
		case v.Name == "":
			return fmt.Errorf("variable %d has no name", i)
		case seen[v.Name]:
			return fmt.Errorf("duplicate variable %s", v.Name)
		}
		//
		seen[v.Name] = true
	}
	//
	if _, err := pave.ParsePolicy(p.Search.Policy); err != nil {
		return err
	}
	//
	return nil
}

// Normalise fills in defaults for any unset settings.
func (p *Problem) Normalise() {
	if p.Solver.Backend == "" {
		p.Solver.Backend = "interval"
	}
	//
	budget := solver.Budget{
		Timeout:      p.Solver.Timeout,
		AbsTolerance: p.Solver.AbsTolerance,
		RelTolerance: p.Solver.RelTolerance,
	}.Normalise()
	//
	p.Solver.Timeout, p.Solver.AbsTolerance, p.Solver.RelTolerance = budget.Timeout, budget.AbsTolerance,
		budget.RelTolerance
	//
	if p.Solver.Grace <= 0 {
		p.Solver.Grace = solver.DEFAULT_GRACE
	}
	//
	if p.Solver.Attempts == 0 {
		p.Solver.Attempts = DEFAULT_ATTEMPTS
	}
	//
	defaults := pave.DefaultConfig()
	//
	if p.Search.Tolerance <= 0 {
		p.Search.Tolerance = defaults.Tolerance
	}
	//
	if p.Search.Workers == 0 {
		p.Search.Workers = defaults.Workers
	}
	//
	if p.Search.MaxBoxes == 0 {
		p.Search.MaxBoxes = defaults.MaxBoxes
	}
	//
	if p.Search.Policy == "" {
		p.Search.Policy = defaults.Policy.String()
	}
}

// Names returns the variable names, in order.
func (p *Problem) Names() []string {
	names := make([]string, len(p.Variables))
	//
	for i, v := range p.Variables {
		names[i] = v.Name
	}
	//
	return names
}

// Box constructs the root box from the variable bounds.  Missing bounds are
// taken as unbounded.
func (p *Problem) Box(engine interval.Engine) (box.Box, error) {
	dims := make([]interval.Interval, len(p.Variables))
	//
	for i, v := range p.Variables {
		lower, upper := v.Lower, v.Upper
		//
		if lower == "" {
			lower = "-inf"
		}
		//
		if upper == "" {
			upper = "inf"
		}
		//
		iv, err := engine.Parse(lower, upper)
		//
		if err != nil {
			return box.Box{}, fmt.Errorf("variable %s: %w", v.Name, err)
		} else if iv.IsEmpty() {
			return box.Box{}, fmt.Errorf("variable %s has empty bounds [%s, %s]", v.Name, lower, upper)
		}
		//
		dims[i] = iv
	}
	//
	return box.New(dims...), nil
}

// OracleConfig returns the oracle settings.
func (p *Problem) OracleConfig() oracle.Config {
	return oracle.Config{
		AbsTolerance: p.Solver.AbsTolerance,
		RelTolerance: p.Solver.RelTolerance,
		Timeout:      p.Solver.Timeout,
	}
}

// PaveConfig returns the paving settings.
func (p *Problem) PaveConfig() (pave.Config, error) {
	policy, err := pave.ParsePolicy(p.Search.Policy)
	//
	return pave.Config{
		Tolerance: p.Search.Tolerance,
		Workers:   p.Search.Workers,
		MaxBoxes:  p.Search.MaxBoxes,
		Policy:    policy,
	}, err
}
