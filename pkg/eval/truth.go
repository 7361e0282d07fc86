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
package eval

// Truth is the outcome of evaluating a formula over a box, following Kleene's
// three-valued logic.  A formula is True (resp. False) over a box when it holds
// (resp. fails) at every point within, and Unknown otherwise.
type Truth uint8

const (
	// Unknown indicates the formula may hold at some points, and fail at others.
	Unknown Truth = iota
	// False indicates the formula fails everywhere.
	False
	// True indicates the formula holds everywhere.
	True
)

// Not negates a truth value.
func (t Truth) Not() Truth {
	switch t {
	case True:
		return False
	case False:
		return True
	default:
		return Unknown
	}
}

// And returns the conjunction of two truth values.
func (t Truth) And(o Truth) Truth {
	switch {
	case t == False || o == False:
		return False
	case t == True && o == True:
		return True
	default:
		return Unknown
	}
}

// Or returns the disjunction of two truth values.
func (t Truth) Or(o Truth) Truth {
	return t.Not().And(o.Not()).Not()
}

// Xor returns the exclusive-or of two truth values.
func (t Truth) Xor(o Truth) Truth {
	if t == Unknown || o == Unknown {
		return Unknown
	} else if t != o {
		return True
	}
	//
	return False
}

func (t Truth) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}
