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
	"fmt"
	"os"

	"github.com/consensys/go-boxsolve/pkg/interval"
	"github.com/consensys/go-boxsolve/pkg/util"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] problem_file",
	Short: "Determine whether a constraint may, may not or must hold over a problem's box.",
	Long: `Determine whether a constraint may, may not or must hold over a problem's box.
	Each question is answered with (at most) one query to the decision procedure.
	The exit code is 0 when the constraint must hold, 1 when it cannot hold and
	2 when neither could be shown.`,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runCheckCmd(cmd, args))
	},
}

func runCheckCmd(cmd *cobra.Command, args []string) int {
	problem := loadProblem(cmd, args)
	flush := startTelemetry(cmd)
	defer flush()
	//
	engine := interval.NewOutward()
	root := buildBox(problem, engine)
	o, release := buildOracle(problem, engine)
	defer release()
	//
	stats := util.NewPerfStats()
	result, verdict, err := o.Classify(context.Background(), root)
	//
	if err != nil {
		reportError(err)
		return 3
	}
	//
	stats.Log("Checking")
	//
	fmt.Printf("box:     %s\n", root.String())
	fmt.Printf("may:     %t\n", result.MayHold)
	fmt.Printf("may-not: %t\n", result.MayNotHold)
	fmt.Printf("must:    %t\n", result.Must())
	fmt.Printf("verdict: %s\n", verdict)
	counts.Printf("Solver calls: %d\n", o.Queries())
	//
	switch {
	case result.Must():
		return 0
	case !result.MayHold:
		return 1
	default:
		return 2
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
