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

// Outward is the default Engine.  Arithmetic is rounded outwards using
// error-free transformations (i.e. the error of each rounded operation is
// computed exactly, and the result nudged by one ulp when it lies on the wrong
// side).  Elementary functions are evaluated using the standard library and
// then widened by an ulp budget covering its documented error.
type Outward struct{}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Engine = Outward{}

// NewOutward constructs the default outward-rounding engine.
func NewOutward() Outward {
	return Outward{}
}

// New constructs an interval from two bounds.
func (e Outward) New(lower float64, upper float64) Interval {
	if math.IsNaN(lower) || math.IsNaN(upper) || lower > upper {
		return EMPTY
	}
	//
	return Interval{lower, upper}
}

// Point constructs the degenerate interval [x, x].
func (e Outward) Point(x float64) Interval {
	return e.New(x, x)
}

// Empty returns the empty interval.
func (e Outward) Empty() Interval {
	return EMPTY
}

// Add returns an enclosure of x + y.
func (e Outward) Add(x Interval, y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return EMPTY
	}
	//
	return normalise(addDown(x.lo, y.lo), addUp(x.hi, y.hi))
}

// Sub returns an enclosure of x - y.
func (e Outward) Sub(x Interval, y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return EMPTY
	}
	//
	return normalise(subDown(x.lo, y.hi), subUp(x.hi, y.lo))
}

// Neg returns -x, which is always exact.
func (e Outward) Neg(x Interval) Interval {
	if x.IsEmpty() {
		return EMPTY
	}
	//
	return Interval{-x.hi, -x.lo}
}

// Mul returns an enclosure of x * y.
func (e Outward) Mul(x Interval, y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return EMPTY
	}
	//
	lo := min(mulDown(x.lo, y.lo), mulDown(x.lo, y.hi), mulDown(x.hi, y.lo), mulDown(x.hi, y.hi))
	hi := max(mulUp(x.lo, y.lo), mulUp(x.lo, y.hi), mulUp(x.hi, y.lo), mulUp(x.hi, y.hi))
	//
	return normalise(lo, hi)
}

// Div returns an enclosure of x / y.  When y contains zero, the result is
// the entire real line (or empty, when y is exactly zero).
func (e Outward) Div(x Interval, y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() || (y.lo == 0 && y.hi == 0) {
		return EMPTY
	} else if y.StraddlesZero() {
		return ENTIRE
	}
	//
	lo := min(divDown(x.lo, y.lo), divDown(x.lo, y.hi), divDown(x.hi, y.lo), divDown(x.hi, y.hi))
	hi := max(divUp(x.lo, y.lo), divUp(x.lo, y.hi), divUp(x.hi, y.lo), divUp(x.hi, y.hi))
	//
	return normalise(lo, hi)
}

// Midpoint returns the point interval at the centre of x.  For unbounded
// intervals, the midpoint is chosen as zero (for the entire line) or the
// largest finite double on the unbounded side.
func (e Outward) Midpoint(x Interval) Interval {
	var m float64
	//
	switch {
	case x.IsEmpty():
		return EMPTY
	case x.lo == x.hi:
		return Interval{x.lo, x.hi}
	case math.IsInf(x.lo, -1) && math.IsInf(x.hi, 1):
		m = 0
	case math.IsInf(x.lo, -1):
		m = -math.MaxFloat64
	case math.IsInf(x.hi, 1):
		m = math.MaxFloat64
	default:
		// Halving first avoids overflow
		m = 0.5*x.lo + 0.5*x.hi
		// Rounding (or underflow) can push m outside of x
		m = min(max(m, x.lo), x.hi)
	}
	//
	return Interval{m, m}
}

// Split halves x at its midpoint.  If the midpoint does not lie strictly within
// x (e.g. x is canonical), then no split is possible and x is returned twice.
func (e Outward) Split(x Interval) (Interval, Interval) {
	if x.IsEmpty() {
		return x, x
	}
	//
	m := e.Midpoint(x).lo
	//
	if m <= x.lo || m >= x.hi {
		return x, x
	}
	//
	return Interval{x.lo, m}, Interval{m, x.hi}
}
