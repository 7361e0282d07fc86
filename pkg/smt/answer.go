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
package smt

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/consensys/go-boxsolve/pkg/util/source"
	"github.com/consensys/go-boxsolve/pkg/util/source/sexp"
)

// Answer is the response of a decision procedure to a (check-sat) command.
type Answer uint8

const (
	// Unknown indicates the procedure could not decide the query (e.g. because
	// it ran out of time).
	Unknown Answer = iota
	// Sat indicates the assertions are satisfiable.
	Sat
	// Unsat indicates the assertions are unsatisfiable.
	Unsat
	// DeltaSat indicates the assertions are satisfiable up to a given numerical
	// tolerance, as reported by numeric decision procedures.
	DeltaSat
)

// Satisfiable determines whether an answer reports the assertions satisfiable,
// possibly only up to a numerical tolerance.
func (a Answer) Satisfiable() bool {
	return a == Sat || a == DeltaSat
}

func (a Answer) String() string {
	switch a {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	case DeltaSat:
		return "delta-sat"
	default:
		return "unknown"
	}
}

// ParseAnswer parses the output of a decision procedure.  The first non-blank
// line must be exactly one of "sat", "unsat", "unknown" (or "timeout"), a
// "delta-sat" marker (optionally followed by " with delta = ..."), or an
// (error "...") response.  The latter gives a BackendError, whilst anything
// else gives a ProtocolError.  Output following the first line (e.g. a model)
// is ignored.
func ParseAnswer(output []byte) (Answer, error) {
	if !utf8.Valid(output) {
		return Unknown, NewProtocolError(output, "output is not valid text")
	}
	//
	line := firstLine(output)
	//
	switch {
	case line == "sat":
		return Sat, nil
	case line == "unsat":
		return Unsat, nil
	case line == "unknown" || line == "timeout":
		return Unknown, nil
	case line == "delta-sat" || strings.HasPrefix(line, "delta-sat with "):
		return DeltaSat, nil
	case strings.HasPrefix(line, "(error"):
		if msg, ok := parseError(line); ok {
			return Unknown, NewBackendError(msg)
		}
	case line == "":
		return Unknown, NewProtocolError(output, "no answer")
	}
	//
	return Unknown, NewProtocolError(output, fmt.Sprintf("unrecognised answer %q", line))
}

func firstLine(output []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	//
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line
		}
	}
	//
	return ""
}

// Extract the message from an (error "...") response.
func parseError(line string) (string, bool) {
	term, _, err := sexp.Parse(source.NewSourceFile("answer", []byte(line)))
	//
	if err != nil {
		return "", false
	} else if list := term.AsList(); list == nil || list.Len() != 2 || list.Head() != "error" {
		return "", false
	} else if msg := list.Get(1).AsString(); msg != nil {
		return msg.Value, true
	}
	//
	return "", false
}
