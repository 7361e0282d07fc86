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
	"strconv"
)

// Interval represents a closed range of real numbers [lo, hi] whose bounds are
// doubles.  Intervals produced by an Engine are enclosures, meaning they are
// guaranteed to contain every real value the corresponding operation could have
// produced.  The empty interval is represented by any pair where lo > hi
// (canonically [+Inf, -Inf]).  Observe the zero value is the point [0, 0].
// Intervals are values and are never shared or mutated in place.
type Interval struct {
	lo float64
	hi float64
}

// EMPTY is the canonical empty interval.
var EMPTY = Interval{math.Inf(1), math.Inf(-1)}

// ENTIRE is the interval enclosing the entire real line.
var ENTIRE = Interval{math.Inf(-1), math.Inf(1)}

// Lower returns the lower bound of this interval.  For the empty interval, this
// returns +Inf.
func (p Interval) Lower() float64 {
	return p.lo
}

// Upper returns the upper bound of this interval.  For the empty interval, this
// returns -Inf.
func (p Interval) Upper() float64 {
	return p.hi
}

// IsEmpty checks whether this interval contains no values.
func (p Interval) IsEmpty() bool {
	return !(p.lo <= p.hi)
}

// Width returns the width of this interval, rounded upwards.  The width of a
// degenerate (i.e. point) interval is 0, whilst the width of the empty interval
// is -Inf.  Hence, the empty interval is always narrower than any other.
func (p Interval) Width() float64 {
	if p.IsEmpty() {
		return math.Inf(-1)
	}
	//
	return subUp(p.hi, p.lo)
}

// Contains checks whether a given value lies within this interval.
func (p Interval) Contains(x float64) bool {
	return p.lo <= x && x <= p.hi
}

// StraddlesZero checks whether this interval is non-empty and includes zero.
func (p Interval) StraddlesZero() bool {
	return p.lo <= 0 && 0 <= p.hi
}

// IsCanonical checks whether no double lies strictly between the bounds of
// this interval.  Such intervals cannot be split any further.
func (p Interval) IsCanonical() bool {
	return !p.IsEmpty() && p.hi <= math.Nextafter(p.lo, math.Inf(1))
}

// IsPoint checks whether this interval contains exactly one value.
func (p Interval) IsPoint() bool {
	return p.lo == p.hi
}

// Equal checks whether two intervals are bitwise identical.  Observe that this
// distinguishes, for example, [-0, 0] from [0, 0].
func (p Interval) Equal(other Interval) bool {
	return math.Float64bits(p.lo) == math.Float64bits(other.lo) &&
		math.Float64bits(p.hi) == math.Float64bits(other.hi)
}

// Hull returns the smallest interval enclosing both this and another interval.
func (p Interval) Hull(other Interval) Interval {
	if p.IsEmpty() {
		return other
	} else if other.IsEmpty() {
		return p
	}
	//
	return Interval{min(p.lo, other.lo), max(p.hi, other.hi)}
}

// Intersect returns the intersection of this interval with another, which may
// be empty.
func (p Interval) Intersect(other Interval) Interval {
	lo := max(p.lo, other.lo)
	hi := min(p.hi, other.hi)
	//
	if lo > hi || p.IsEmpty() || other.IsEmpty() {
		return EMPTY
	}
	//
	return Interval{lo, hi}
}

func (p Interval) String() string {
	if p.IsEmpty() {
		return "[empty]"
	}
	//
	return "[" + formatBound(p.lo) + ", " + formatBound(p.hi) + "]"
}

func formatBound(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// Construct an interval from bounds which are already known to be sound.  NaN
// bounds (e.g. arising from Inf - Inf) are widened to the corresponding
// infinity, whilst inverted bounds give the empty interval.
func normalise(lo float64, hi float64) Interval {
	if math.IsNaN(lo) {
		lo = math.Inf(-1)
	}
	//
	if math.IsNaN(hi) {
		hi = math.Inf(1)
	}
	//
	if lo > hi {
		return EMPTY
	}
	//
	return Interval{lo, hi}
}
