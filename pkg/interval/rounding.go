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
package interval

import (
	"math"
)

// Below this magnitude the residuals computed via FMA are no longer guaranteed
// to be exact, hence results are widened unconditionally.
const tiny = 0x1p-969

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
)

func down(x float64) float64 {
	return math.Nextafter(x, negInf)
}

func up(x float64) float64 {
	return math.Nextafter(x, posInf)
}

// Widen a value downwards by a given number of ulps.
func downN(x float64, ulps uint) float64 {
	for range ulps {
		x = down(x)
	}
	//
	return x
}

// Widen a value upwards by a given number of ulps.
func upN(x float64, ulps uint) float64 {
	for range ulps {
		x = up(x)
	}
	//
	return x
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return false
		}
	}
	//
	return true
}

// Compute the error of a+b using Knuth's TwoSum, such that a+b = s+err holds
// exactly (for finite s).
func sumError(a, b, s float64) float64 {
	bb := s - a
	return (a - (s - bb)) + (b - bb)
}

func addDown(a, b float64) float64 {
	s := a + b
	//
	if !finite(s) {
		if finite(a, b) && s > 0 {
			// overflow of a finite sum
			return math.MaxFloat64
		}
		//
		return s
	} else if sumError(a, b, s) < 0 {
		return down(s)
	}
	//
	return s
}

func addUp(a, b float64) float64 {
	s := a + b
	//
	if !finite(s) {
		if finite(a, b) && s < 0 {
			return -math.MaxFloat64
		}
		//
		return s
	} else if sumError(a, b, s) > 0 {
		return up(s)
	}
	//
	return s
}

func subDown(a, b float64) float64 {
	return addDown(a, -b)
}

func subUp(a, b float64) float64 {
	return addUp(a, -b)
}

// Multiply two values, rounding towards -Inf.  Observe that 0 * Inf is taken to
// be 0, as is standard for interval arithmetic.
func mulDown(a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	//
	p := a * b
	//
	switch {
	case math.IsInf(p, 0):
		if finite(a, b) && p > 0 {
			return math.MaxFloat64
		}
		//
		return p
	case math.Abs(p) < tiny:
		return down(p)
	case math.FMA(a, b, -p) < 0:
		return down(p)
	}
	//
	return p
}

// Multiply two values, rounding towards +Inf.
func mulUp(a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	//
	p := a * b
	//
	switch {
	case math.IsInf(p, 0):
		if finite(a, b) && p < 0 {
			return -math.MaxFloat64
		}
		//
		return p
	case math.Abs(p) < tiny:
		return up(p)
	case math.FMA(a, b, -p) > 0:
		return up(p)
	}
	//
	return p
}

// Determine the direction in which a/b was rounded.  A negative return
// indicates the quotient is too large, a positive that it is too small.
func quotientError(a, b, q float64) float64 {
	r := math.FMA(-q, b, a)
	//
	if b < 0 {
		return -r
	}
	//
	return r
}

// Divide two values, rounding towards -Inf.  The divisor must be non-zero.
func divDown(a, b float64) float64 {
	if a == 0 {
		return 0
	}
	//
	q := a / b
	//
	switch {
	case math.IsInf(q, 0):
		if finite(a, b) && q > 0 {
			return math.MaxFloat64
		}
		//
		return q
	case math.IsInf(b, 0):
		// finite / infinite is exactly zero
		return q
	case math.Abs(q) < tiny || math.Abs(a) < tiny:
		return down(q)
	case quotientError(a, b, q) < 0:
		return down(q)
	}
	//
	return q
}

// Divide two values, rounding towards +Inf.  The divisor must be non-zero.
func divUp(a, b float64) float64 {
	if a == 0 {
		return 0
	}
	//
	q := a / b
	//
	switch {
	case math.IsInf(q, 0):
		if finite(a, b) && q < 0 {
			return -math.MaxFloat64
		}
		//
		return q
	case math.IsInf(b, 0):
		return q
	case math.Abs(q) < tiny || math.Abs(a) < tiny:
		return up(q)
	case quotientError(a, b, q) > 0:
		return up(q)
	}
	//
	return q
}
