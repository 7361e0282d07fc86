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
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is filled via -ldflags when building releases, but *not* when
// installing via "go install".
var Version string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "boxsolve",
	Short: "A box paver for nonlinear real constraints.",
	Long: `A box paver for nonlinear real constraints.
	Determines where a constraint may hold, may not hold or must hold over boxes
	of real intervals, by delegating satisfiability queries to an SMT solver.`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("boxsolve ")
			if Version != "" {
				// Built with -ldflags
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				// Built via "go install"
				fmt.Printf("%s", info.Main.Version)
			} else {
				// Unknown, perhaps "go run"
				fmt.Printf("(unknown version)")
			}
			fmt.Println()
		} else {
			fmt.Println(cmd.UsageString())
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().StringP("backend", "b", "", "decision procedure (z3, dreal or interval)")
	rootCmd.PersistentFlags().String("solver-path", "", "path of the solver binary")
	rootCmd.PersistentFlags().Duration("timeout", 0, "time limit for each query")
	rootCmd.PersistentFlags().Float64("abs-tolerance", 0, "absolute tolerance for numeric solvers")
	rootCmd.PersistentFlags().Float64("rel-tolerance", 0, "relative tolerance for numeric solvers")
	rootCmd.PersistentFlags().String("cache", "", "persist solver answers in a given database")
	rootCmd.PersistentFlags().String("dump", "", "write every query into a given directory")
	rootCmd.PersistentFlags().String("otel-endpoint", "", "export traces to a given OTLP/HTTP endpoint")
	rootCmd.PersistentFlags().Bool("drop-constraints", false, "ignore the constraint (i.e. treat it as true)")
}
