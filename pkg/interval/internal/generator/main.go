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
package main

import (
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/consensys/bavard"
)

const copyrightHolder = "Consensys Software Inc."

// monotoneFn describes an elementary function which is monotone over its
// (possibly restricted) domain.  Such functions are enclosed by evaluating them
// at the interval bounds, then widening outwards by a number of ulps which
// covers the error of the library implementation.
type monotoneFn struct {
	// Name of the generated method
	Name string
	// Mathematical description for the doc comment
	Doc string
	// Library function implementing the point evaluation
	Fn string
	// Whether the function is decreasing (rather than increasing)
	Decreasing bool
	// Domain restriction (empty strings indicate none)
	DomainLo, DomainHi string
	// Range clamp (empty strings indicate none)
	RangeLo, RangeHi string
	// Outward widening applied to each bound
	Ulps uint
}

// Restricted determines whether a domain restriction applies.
func (f monotoneFn) Restricted() bool {
	return f.DomainLo != "" || f.DomainHi != ""
}

// Clamped determines whether the result is clamped to a known range.
func (f monotoneFn) Clamped() bool {
	return f.RangeLo != "" || f.RangeHi != ""
}

type config struct {
	Functions []monotoneFn
}

var functions = []monotoneFn{
	{Name: "Exp", Doc: "e^x", Fn: "math.Exp", RangeLo: "0", RangeHi: "posInf", Ulps: 2},
	{Name: "Log", Doc: "the natural logarithm of x", Fn: "math.Log", DomainLo: "0", DomainHi: "posInf", Ulps: 2},
	{Name: "Sqrt", Doc: "the square root of x", Fn: "math.Sqrt", DomainLo: "0", DomainHi: "posInf",
		RangeLo: "0", RangeHi: "posInf", Ulps: 1},
	{Name: "Asin", Doc: "the arcsine of x", Fn: "math.Asin", DomainLo: "-1", DomainHi: "1", Ulps: 2},
	{Name: "Acos", Doc: "the arccosine of x", Fn: "math.Acos", Decreasing: true, DomainLo: "-1", DomainHi: "1",
		RangeLo: "0", RangeHi: "posInf", Ulps: 2},
	{Name: "Atan", Doc: "the arctangent of x", Fn: "math.Atan", Ulps: 2},
	{Name: "Sinh", Doc: "the hyperbolic sine of x", Fn: "math.Sinh", Ulps: 3},
	{Name: "Tanh", Doc: "the hyperbolic tangent of x", Fn: "math.Tanh", RangeLo: "-1", RangeHi: "1", Ulps: 3},
	{Name: "Asinh", Doc: "the inverse hyperbolic sine of x", Fn: "math.Asinh", Ulps: 3},
	{Name: "Acosh", Doc: "the inverse hyperbolic cosine of x", Fn: "math.Acosh", DomainLo: "1", DomainHi: "posInf",
		RangeLo: "0", RangeHi: "posInf", Ulps: 3},
	{Name: "Atanh", Doc: "the inverse hyperbolic tangent of x", Fn: "math.Atanh", DomainLo: "-1", DomainHi: "1",
		Ulps: 3},
}

//go:generate go run main.go
func main() {
	bgen := bavard.NewBatchGenerator(copyrightHolder, 2025, "go-boxsolve")
	// Generate all monotone functions in one file.
	assertNoError(bgen.Generate(config{functions}, "interval", "templates",
		bavard.Entry{
			File:      "../../monotone.go",
			Templates: []string{"monotone.go.tmpl"},
		},
	), "for monotone functions")
	// run gofmt on the interval package
	runCmd("gofmt", "-w", "../../")
}

func runCmd(name string, arg ...string) {
	fmt.Println(name, strings.Join(arg, " "))
	cmd := exec.Command(name, arg...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	assertNoError(cmd.Run(), "")
}

func assertNoError(err error, contextAndArgs ...any) {
	if err != nil {
		msg := err.Error()

		if len(contextAndArgs) > 0 {
			allArgs := append(slices.Clone(contextAndArgs[1:]), err)
			msg = fmt.Sprintf(contextAndArgs[0].(string)+": %v", allArgs...)
		}

		fmt.Println(msg)
		os.Exit(1)
	}
}
