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
package util

import (
	"context"
	"fmt"
	"testing"

	"github.com/consensys/go-boxsolve/pkg/box"
	"github.com/consensys/go-boxsolve/pkg/config"
	"github.com/consensys/go-boxsolve/pkg/interval"
	"github.com/consensys/go-boxsolve/pkg/oracle"
	"github.com/consensys/go-boxsolve/pkg/pave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the problem files are found.
const TestDir = "../../testdata"

// Check a given problem using the in-process backend.  The root box must have
// the expected verdict and, furthermore, paving the root box must give a
// consistent result.  That is, every inner (resp. outer) box is classified as
// holding (resp. failing), and all boxes together cover the root box.
func Check(t *testing.T, test string, expected oracle.Verdict) {
	var (
		filename = fmt.Sprintf("%s/problems/%s.yaml", TestDir, test)
		engine   = interval.NewOutward()
		ctx      = context.Background()
	)
	// Enable testing each problem in parallel
	t.Parallel()
	//
	problem, err := config.Load(filename)
	require.NoError(t, err)
	// Force the in-process backend
	problem.Solver.Backend = "interval"
	//
	stack, err := problem.Solver.Build(engine)
	require.NoError(t, err)
	//
	defer stack.Close()
	//
	o, err := oracle.New(problem.Constraint, problem.Names(), problem.OracleConfig(), stack.Procedure)
	require.NoError(t, err)
	//
	root, err := problem.Box(engine)
	require.NoError(t, err)
	// Check the root box
	_, verdict, err := o.Classify(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, expected, verdict, "verdict of %s", test)
	// Check the paving
	cfg, err := problem.PaveConfig()
	require.NoError(t, err)
	//
	result, err := pave.NewPaver(o, engine, cfg).Pave(ctx, root)
	require.NoError(t, err)
	//
	checkPaving(t, o, root, result)
}

func checkPaving(t *testing.T, o *oracle.Oracle, root box.Box, result *pave.Result) {
	ctx := context.Background()
	//
	for _, b := range result.Inner {
		_, verdict, err := o.Classify(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, oracle.Holds, verdict, "inner %s", b.String())
	}
	//
	for _, b := range result.Outer {
		_, verdict, err := o.Classify(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, oracle.Fails, verdict, "outer %s", b.String())
	}
	//
	assert.Empty(t, result.Failed)
	// Coverage (only meaningful for bounded roots)
	if expected := volume(root); !isInf(expected) {
		var actual float64
		//
		for _, boxes := range [][]box.Box{result.Inner, result.Outer, result.Boundary} {
			for _, b := range boxes {
				actual += volume(b)
			}
		}
		//
		assert.InEpsilon(t, expected, actual, 1e-9)
	}
}

// Volume of a box, ignoring dimensions of zero width.
func volume(b box.Box) float64 {
	v := 1.0
	//
	for _, iv := range b.Intervals() {
		if w := iv.Width(); w > 0 {
			v *= w
		}
	}
	//
	return v
}

func isInf(x float64) bool {
	return x > 1e308
}
