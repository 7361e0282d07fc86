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

	"github.com/consensys/go-boxsolve/pkg/box"
	"github.com/consensys/go-boxsolve/pkg/interval"
	"github.com/consensys/go-boxsolve/pkg/pave"
	"github.com/consensys/go-boxsolve/pkg/util"
	"github.com/consensys/go-boxsolve/pkg/util/termio"
	"github.com/spf13/cobra"
)

// paveCmd represents the pave command
var paveCmd = &cobra.Command{
	Use:   "pave [flags] problem_file",
	Short: "Pave a problem's box into inner, outer and boundary boxes.",
	Long: `Pave a problem's box into inner, outer and boundary boxes.
	Boxes are classified by the decision procedure and undetermined boxes split,
	until they are tight enough or the box limit is reached.`,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runPaveCmd(cmd, args))
	},
}

func runPaveCmd(cmd *cobra.Command, args []string) int {
	problem := loadProblem(cmd, args)
	flush := startTelemetry(cmd)
	defer flush()
	// Apply flags
	if tol := GetFloat(cmd, "tolerance"); tol > 0 {
		problem.Search.Tolerance = tol
	}

	if workers := GetUint(cmd, "workers"); workers > 0 {
		problem.Search.Workers = workers
	}

	if limit := GetUint(cmd, "max-boxes"); limit > 0 {
		problem.Search.MaxBoxes = limit
	}

	if policy := GetString(cmd, "policy"); policy != "" {
		problem.Search.Policy = policy
	}
	//
	cfg, err := problem.PaveConfig()
	if err != nil {
		fmt.Println(err)
		return 2
	}
	//
	engine := interval.NewOutward()
	root := buildBox(problem, engine)
	o, release := buildOracle(problem, engine)
	defer release()
	//
	stats := util.NewPerfStats()
	result, err := pave.NewPaver(o, engine, cfg).Pave(context.Background(), root)
	//
	if err != nil {
		reportError(err)
		return 3
	}
	//
	stats.Log("Paving")
	//
	if GetFlag(cmd, "boxes") {
		printBoxes("inner", result.Inner)
		printBoxes("outer", result.Outer)
		printBoxes("boundary", result.Boundary)
		printBoxes("failed", result.Failed)
	}
	//
	printPaving(result)
	//
	if result.Exhausted {
		fmt.Println("Box limit reached")
	}
	//
	counts.Printf("Solver calls: %d\n", result.SolverCalls)
	//
	return 0
}

func printBoxes(kind string, boxes []box.Box) {
	for _, b := range boxes {
		fmt.Printf("%s %s\n", kind, b.String())
	}
}

// Print a summary table of the paving.
func printPaving(result *pave.Result) {
	rows := []struct {
		kind   string
		boxes  []box.Box
		colour uint
	}{
		{"inner", result.Inner, termio.TERM_GREEN},
		{"outer", result.Outer, termio.TERM_RED},
		{"boundary", result.Boundary, termio.TERM_YELLOW},
		{"failed", result.Failed, termio.TERM_BLUE},
	}
	//
	table := termio.NewTablePrinter(3, uint(len(rows)+1))
	table.SetRow(0, "", "boxes", "volume")
	table.AnsiEscapes(termio.IsTerminal(os.Stdout))
	//
	for i, row := range rows {
		table.SetRow(uint(i+1), row.kind, counts.Sprintf("%d", len(row.boxes)), fmt.Sprintf("%.6g", volume(row.boxes)))
		table.SetEscape(0, uint(i+1), termio.NewAnsiEscape().FgColour(row.colour))
	}
	//
	table.SetMaxWidths(termio.Width(os.Stdout) / 3)
	//
	if err := table.Print(os.Stdout); err != nil {
		fmt.Println(err)
	}
}

// Total volume of a set of boxes.  Dimensions of zero width are ignored, such
// that boxes over fixed variables still contribute.
func volume(boxes []box.Box) float64 {
	var total float64
	//
	for _, b := range boxes {
		v := 1.0
		//
		for _, iv := range b.Intervals() {
			if w := iv.Width(); w > 0 {
				v *= w
			}
		}
		//
		total += v
	}
	//
	return total
}

func init() {
	paveCmd.Flags().Float64("tolerance", 0, "boxes narrower than this are not split")
	paveCmd.Flags().Uint("workers", 0, "number of boxes classified concurrently")
	paveCmd.Flags().Uint("max-boxes", 0, "maximum number of boxes classified")
	paveCmd.Flags().String("policy", "", "response to failed queries (halt or skip)")
	paveCmd.Flags().Bool("boxes", false, "print every box")
	rootCmd.AddCommand(paveCmd)
}
