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
package box

import (
	"github.com/consensys/go-boxsolve/pkg/util/math"
)

// IsTightEnough determines whether a box has been refined far enough.  This
// holds when the width of its widest dimension is within the given absolute
// tolerance or, alternatively, when it is no wider than the resolution of
// doubles at the magnitude of that dimension's bounds.  The latter ensures
// refinement stops once the width reaches the rounding floor, where a fixed
// absolute tolerance would either be far too loose (near zero) or unreachable
// (far from zero).  A box without dimensions is trivially tight.
func IsTightEnough(b Box, tol float64) bool {
	k := b.WidestIndex()
	//
	if k < 0 {
		return true
	}
	//
	var (
		widest = b.Get(k)
		width  = widest.Width()
	)
	//
	return width <= tol || width <= math.Resolution(widest.Lower(), widest.Upper())
}
