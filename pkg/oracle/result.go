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
package oracle

// Result holds the answers to both oracle questions for a single box.
type Result struct {
	// Whether the constraint possibly holds somewhere in the box.
	MayHold bool
	// Whether the negation possibly holds somewhere in the box.
	MayNotHold bool
}

// Must determines whether the constraint was shown to hold everywhere.
func (r Result) Must() bool {
	return r.MayHold && !r.MayNotHold
}

// Verdict summarises the result.
func (r Result) Verdict() Verdict {
	switch {
	case r.Must():
		return Holds
	case !r.MayHold:
		return Fails
	default:
		return Undetermined
	}
}

// Verdict classifies a box with respect to a constraint.
type Verdict uint8

const (
	// Undetermined indicates the box may contain points both satisfying and
	// violating the constraint.
	Undetermined Verdict = iota
	// Holds indicates the constraint holds throughout the box.
	Holds
	// Fails indicates the constraint holds nowhere in the box.
	Fails
)

func (v Verdict) String() string {
	switch v {
	case Holds:
		return "holds"
	case Fails:
		return "fails"
	default:
		return "undetermined"
	}
}
