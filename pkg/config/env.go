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
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Environment holds settings which can be overridden from the environment.
// Unset variables leave the corresponding setting untouched.
type Environment struct {
	Backend      string        `env:"BOXSOLVE_BACKEND"`
	SolverPath   string        `env:"BOXSOLVE_SOLVER_PATH"`
	Timeout      time.Duration `env:"BOXSOLVE_TIMEOUT"`
	Grace        time.Duration `env:"BOXSOLVE_GRACE"`
	AbsTolerance float64       `env:"BOXSOLVE_ABS_TOLERANCE"`
	RelTolerance float64       `env:"BOXSOLVE_REL_TOLERANCE"`
	Workers      uint          `env:"BOXSOLVE_WORKERS"`
	Cache        string        `env:"BOXSOLVE_CACHE"`
	Dump         string        `env:"BOXSOLVE_DUMP"`
	OtelEndpoint string        `env:"BOXSOLVE_OTEL_ENDPOINT"`
}

// ParseEnv loads the environment overrides.
func ParseEnv() (Environment, error) {
	var e Environment
	//
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("parse env: %w", err)
	}
	//
	return e, nil
}

// ApplyEnv overrides the settings of a problem from the environment.
func ApplyEnv(p *Problem) error {
	e, err := ParseEnv()
	//
	if err != nil {
		return err
	}
	//
	override(&p.Solver.Backend, e.Backend)
	override(&p.Solver.Path, e.SolverPath)
	override(&p.Solver.Timeout, e.Timeout)
	override(&p.Solver.Grace, e.Grace)
	override(&p.Solver.AbsTolerance, e.AbsTolerance)
	override(&p.Solver.RelTolerance, e.RelTolerance)
	override(&p.Search.Workers, e.Workers)
	override(&p.Solver.Cache, e.Cache)
	override(&p.Solver.Dump, e.Dump)
	//
	return nil
}

func override[T comparable](setting *T, value T) {
	var zero T
	//
	if value != zero {
		*setting = value
	}
}
