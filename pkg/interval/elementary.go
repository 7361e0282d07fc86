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

// Beyond this magnitude, argument reduction for the trigonometric functions is
// not trusted and the full range is returned instead.
const maxTrigArgument = 0x1p26

// Ulp budget used for the trigonometric functions.
const trigUlps = 2

// UNIT is the interval [-1, 1].
var UNIT = Interval{-1, 1}

// Sin returns an enclosure of the sine of x.
func (e Outward) Sin(x Interval) Interval {
	if x.IsEmpty() {
		return EMPTY
	} else if !boundedTrig(x, 2*math.Pi) {
		return UNIT
	}
	// sin(x) is +1 at pi/2 + 2k.pi and -1 at -pi/2 + 2k.pi
	return periodic(math.Sin, x, containsPhase(x, math.Pi/2, 2*math.Pi), containsPhase(x, -math.Pi/2, 2*math.Pi))
}

// Cos returns an enclosure of the cosine of x.
func (e Outward) Cos(x Interval) Interval {
	if x.IsEmpty() {
		return EMPTY
	} else if !boundedTrig(x, 2*math.Pi) {
		return UNIT
	}
	// cos(x) is +1 at 2k.pi and -1 at pi + 2k.pi
	return periodic(math.Cos, x, containsPhase(x, 0, 2*math.Pi), containsPhase(x, math.Pi, 2*math.Pi))
}

// Tan returns an enclosure of the tangent of x.  Any interval which contains
// (or may contain) a pole gives the entire real line.
func (e Outward) Tan(x Interval) Interval {
	if x.IsEmpty() {
		return EMPTY
	} else if !boundedTrig(x, math.Pi) || containsPhase(x, math.Pi/2, math.Pi) {
		return ENTIRE
	}
	//
	return normalise(downN(math.Tan(x.lo), trigUlps+1), upN(math.Tan(x.hi), trigUlps+1))
}

// Cosh returns an enclosure of the hyperbolic cosine of x.
func (e Outward) Cosh(x Interval) Interval {
	if x.IsEmpty() {
		return EMPTY
	}
	//
	a := e.Abs(x)
	lo := downN(math.Cosh(a.lo), 3)
	hi := upN(math.Cosh(a.hi), 3)
	//
	return normalise(max(lo, 1), hi)
}

// Abs returns the absolute value of x.
func (e Outward) Abs(x Interval) Interval {
	switch {
	case x.IsEmpty():
		return EMPTY
	case x.lo >= 0:
		return x
	case x.hi <= 0:
		return e.Neg(x)
	default:
		return Interval{0, max(-x.lo, x.hi)}
	}
}

// DAbs returns an enclosure of the derivative of |x|, which is -1 for negative
// values, +1 for positive values and anything in between at zero.
func (e Outward) DAbs(x Interval) Interval {
	switch {
	case x.IsEmpty():
		return EMPTY
	case x.hi < 0:
		return Interval{-1, -1}
	case x.lo > 0:
		return Interval{1, 1}
	default:
		return UNIT
	}
}

// PowInt returns an enclosure of x^n for a fixed integer n.  Negative
// exponents are computed as 1 / x^-n.
func (e Outward) PowInt(x Interval, n int) Interval {
	switch {
	case x.IsEmpty():
		return EMPTY
	case n == 0:
		return Interval{1, 1}
	case n == 1:
		return x
	case n < 0:
		return e.Div(Interval{1, 1}, e.PowInt(x, -n))
	case n%2 == 0:
		// Even powers are symmetric about zero
		a := e.Abs(x)
		return normalise(powDown(a.lo, uint(n)), powUp(a.hi, uint(n)))
	default:
		// Odd powers are increasing, and odd about zero
		return normalise(oddPowDown(x.lo, uint(n)), oddPowUp(x.hi, uint(n)))
	}
}

// Pow returns an enclosure of x^y.  When y is a (small) integer point this is
// equivalent to PowInt.  Otherwise, x is restricted to the non-negative reals
// and the result computed as exp(y * log(x)).
func (e Outward) Pow(x Interval, y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return EMPTY
	} else if y.IsPoint() && y.lo == math.Trunc(y.lo) && math.Abs(y.lo) <= math.MaxInt32 {
		return e.PowInt(x, int(y.lo))
	}
	//
	x = x.Intersect(Interval{0, posInf})
	//
	if x.IsEmpty() {
		return EMPTY
	}
	//
	return e.Exp(e.Mul(y, e.Log(x)))
}

// Check the interval is small enough for the trigonometric functions to be
// evaluated pointwise (rather than returning their full range).
func boundedTrig(x Interval, period float64) bool {
	return finite(x.lo, x.hi) && math.Abs(x.lo) <= maxTrigArgument && math.Abs(x.hi) <= maxTrigArgument &&
		x.hi-x.lo < period
}

// Determine whether x may contain a point phase + k*period, for some integer k.
// A small slack is applied so that points lying within rounding error of the
// bounds are always included.
func containsPhase(x Interval, phase float64, period float64) bool {
	slack := 0x1p-40 * max(1, math.Abs(x.lo), math.Abs(x.hi))
	k := math.Ceil((x.lo - slack - phase) / period)
	//
	return phase+k*period <= x.hi+slack
}

// Enclose a periodic function with range [-1, 1] given which extrema x contains.
func periodic(fn func(float64) float64, x Interval, hasMax bool, hasMin bool) Interval {
	a, b := fn(x.lo), fn(x.hi)
	lo := downN(min(a, b), trigUlps)
	hi := upN(max(a, b), trigUlps)
	//
	if hasMax {
		hi = 1
	}
	//
	if hasMin {
		lo = -1
	}
	//
	return normalise(max(lo, -1), min(hi, 1))
}

// Compute a lower bound of b^n, for b >= 0, by repeated squaring.  Since all
// intermediate values are non-negative, rounding every step down preserves the
// bound.
func powDown(b float64, n uint) float64 {
	acc := 1.0
	//
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			acc = mulDown(acc, b)
		}
		//
		b = mulDown(b, b)
	}
	//
	return acc
}

// Compute an upper bound of b^n, for b >= 0.
func powUp(b float64, n uint) float64 {
	acc := 1.0
	//
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			acc = mulUp(acc, b)
		}
		//
		b = mulUp(b, b)
	}
	//
	return acc
}

// Lower bound of b^n for odd n and arbitrary b.
func oddPowDown(b float64, n uint) float64 {
	if b < 0 {
		return -powUp(-b, n)
	}
	//
	return powDown(b, n)
}

// Upper bound of b^n for odd n and arbitrary b.
func oddPowUp(b float64, n uint) float64 {
	if b < 0 {
		return -powDown(-b, n)
	}
	//
	return powUp(b, n)
}
