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

// Engine captures the capabilities of an interval arithmetic implementation.
// Every operation returns a sound enclosure of the true result under outward
// rounding.  Operations never fail: division by an interval containing zero, or
// evaluation outside the domain of a function, produce either a
// domain-restricted enclosure or the empty interval.
type Engine interface {
	// New constructs an interval from two bounds.  Inverted (or NaN) bounds
	// give the empty interval.
	New(lower float64, upper float64) Interval
	// Point constructs the degenerate interval holding exactly x.
	Point(x float64) Interval
	// Parse constructs an interval from two textual bounds, each rounded
	// outwards to the nearest enclosing double.
	Parse(lower string, upper string) (Interval, error)
	// ParseSingle constructs an interval from a single textual literal, which
	// is either a number (enclosed as tightly as possible) or a bracketed pair
	// "[lower, upper]".
	ParseSingle(text string) (Interval, error)
	// Empty returns the empty interval.
	Empty() Interval
	// Arithmetic
	Add(x Interval, y Interval) Interval
	Sub(x Interval, y Interval) Interval
	Mul(x Interval, y Interval) Interval
	Div(x Interval, y Interval) Interval
	Neg(x Interval) Interval
	// Elementary functions
	Exp(x Interval) Interval
	Log(x Interval) Interval
	Sqrt(x Interval) Interval
	Sin(x Interval) Interval
	Cos(x Interval) Interval
	Tan(x Interval) Interval
	Asin(x Interval) Interval
	Acos(x Interval) Interval
	Atan(x Interval) Interval
	Sinh(x Interval) Interval
	Cosh(x Interval) Interval
	Tanh(x Interval) Interval
	Asinh(x Interval) Interval
	Acosh(x Interval) Interval
	Atanh(x Interval) Interval
	// PowInt raises x to a fixed integer exponent.
	PowInt(x Interval, n int) Interval
	// Pow raises x to an interval exponent, restricting x to be non-negative.
	Pow(x Interval, y Interval) Interval
	// Abs returns the absolute value of x.
	Abs(x Interval) Interval
	// DAbs encloses the derivative of |x|, i.e. the sign of x.
	DAbs(x Interval) Interval
	// Midpoint returns the (degenerate) interval holding the midpoint of x.
	Midpoint(x Interval) Interval
	// Split halves x into two intervals which cover it with no gap, and which
	// overlap only on their shared bound.  When x cannot be split any further,
	// both halves are x itself.
	Split(x Interval) (Interval, Interval)
}
