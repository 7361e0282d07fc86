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

	"github.com/consensys/go-boxsolve/pkg/interval"
	"github.com/consensys/go-boxsolve/pkg/smt"
	"github.com/consensys/go-boxsolve/pkg/util/source"
	"github.com/consensys/go-boxsolve/pkg/util/source/sexp"
	"github.com/spf13/cobra"
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query [flags] problem_file",
	Short: "Print the solver query for a problem's box.",
	Long: `Print the solver query for a problem's box, without running it.
	By default, this is the query determining whether the constraint may hold.
	With --negate, it is the query determining whether it may not hold.`,
	Run: func(cmd *cobra.Command, args []string) {
		problem := loadProblem(cmd, args)
		engine := interval.NewOutward()
		root := buildBox(problem, engine)
		constraint := problem.Constraint
		//
		if constraint == "" {
			constraint = "true"
		}
		//
		srcfile := source.NewSourceFile(args[0], []byte(constraint))
		formula, _, err := sexp.Parse(srcfile)
		//
		if err != nil {
			printSyntaxError(err)
			os.Exit(2)
		}
		//
		if GetFlag(cmd, "negate") {
			formula = smt.Not(formula)
		}
		//
		fmt.Print(smt.Query(formula, problem.Names(), root.Intervals()).String())
	},
}

func init() {
	queryCmd.Flags().Bool("negate", false, "print the query for the negated constraint")
	rootCmd.AddCommand(queryCmd)
}
