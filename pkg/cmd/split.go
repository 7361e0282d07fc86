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
	"fmt"

	"github.com/consensys/go-boxsolve/pkg/box"
	"github.com/consensys/go-boxsolve/pkg/interval"
	"github.com/spf13/cobra"
)

// splitCmd represents the split command
var splitCmd = &cobra.Command{
	Use:   "split [flags] problem_file",
	Short: "Split a problem's box, without consulting the constraint.",
	Long: `Split a problem's box a given number of times, without consulting the
	constraint, and print the resulting boxes.  Boxes which are tight enough are
	not split further.  This is useful for understanding how a domain is
	explored.`,
	Run: func(cmd *cobra.Command, args []string) {
		problem := loadProblem(cmd, args)
		depth := GetUint(cmd, "depth")
		tolerance := GetFloat(cmd, "tolerance")
		//
		if tolerance <= 0 {
			tolerance = problem.Search.Tolerance
		}
		//
		engine := interval.NewOutward()
		splitter := box.NewSplitter(engine)
		boxes := []box.Box{buildBox(problem, engine)}
		//
		for range depth {
			var next []box.Box
			//
			for _, b := range boxes {
				if box.IsTightEnough(b, tolerance) {
					next = append(next, b)
				} else {
					children, _ := splitter.Split(b)
					next = append(next, children...)
				}
			}
			//
			boxes = next
		}
		//
		for _, b := range boxes {
			fmt.Printf("%s midpoint=%s tight=%t\n", b.String(), b.Midpoint(engine).String(),
				box.IsTightEnough(b, tolerance))
		}
	},
}

func init() {
	splitCmd.Flags().Uint("depth", 1, "number of times to split")
	splitCmd.Flags().Float64("tolerance", 0, "boxes narrower than this are not split")
	rootCmd.AddCommand(splitCmd)
}
