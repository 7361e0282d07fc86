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
package math

import (
	"math"
)

// SIGN_MASK selects the sign bit of an IEEE-754 double.
const SIGN_MASK uint64 = 0x8000000000000000

// EXPONENT_MASK selects the (biased) exponent field of an IEEE-754 double.
const EXPONENT_MASK uint64 = 0x7FF0000000000000

// MANTISSA_MASK selects the fraction field of an IEEE-754 double.
const MANTISSA_MASK uint64 = 0x000FFFFFFFFFFFFF

// EXPONENT_BIAS is the bias applied to the exponent field of a double.
const EXPONENT_BIAS = 1023

// MANTISSA_BITS is the number of explicitly stored fraction bits.
const MANTISSA_BITS = 52

// ExponentField extracts the raw (biased) exponent field of a given double.
// This operates on the logical bit pattern, hence is independent of the byte
// order of the host.
func ExponentField(x float64) uint64 {
	return (math.Float64bits(x) & EXPONENT_MASK) >> MANTISSA_BITS
}

// IntegerExponent decodes the exponent e such that x = m * 2^e, where m is the
// 53-bit integer significand of x.  Zero and subnormal values share the
// exponent of the smallest normal binade (i.e. -1074).
func IntegerExponent(x float64) int {
	field := int(ExponentField(x))
	// Subnormals are scaled as though their exponent field was one.
	if field == 0 {
		field = 1
	}
	//
	return field - EXPONENT_BIAS - MANTISSA_BITS
}

// PowerOfTwo constructs 2^e directly from its bit representation, i.e. with a
// positive sign and an all-zero fraction.  Exponents below the normal range
// produce the corresponding subnormal power (and zero once even that
// underflows), whilst exponents above the normal range produce +Inf.
func PowerOfTwo(e int) float64 {
	biased := e + EXPONENT_BIAS
	//
	switch {
	case biased >= 0x7FF:
		return math.Inf(1)
	case biased >= 1:
		return math.Float64frombits(uint64(biased) << MANTISSA_BITS)
	case biased > -MANTISSA_BITS:
		// Subnormal range, where the single set bit sits in the fraction.
		return math.Float64frombits(1 << uint(biased+MANTISSA_BITS-1))
	default:
		return 0
	}
}

// Resolution returns the spacing of doubles (i.e. one unit in the last place)
// within the binade of the larger of the two given values.  This is used as a
// scale-relative measure of the smallest meaningful width at that magnitude.
func Resolution(lower float64, upper float64) float64 {
	return PowerOfTwo(max(IntegerExponent(lower), IntegerExponent(upper)))
}

// NextBinadeTowardZero returns the largest power of two which is strictly
// smaller in magnitude than x, carrying the sign of x.  Zero and subnormal
// values saturate at (positive) zero, rather than wrapping around the
// exponent range.  Likewise, infinities step down to the largest finite
// power of two.
func NextBinadeTowardZero(x float64) float64 {
	var (
		bits     = math.Float64bits(x)
		sign     = bits & SIGN_MASK
		field    = (bits & EXPONENT_MASK) >> MANTISSA_BITS
		fraction = bits & MANTISSA_MASK
	)
	// Check for zero and subnormals (which saturate).
	if field <= 1 && (field == 0 || fraction == 0) {
		return 0
	} else if field == 0x7FF && fraction != 0 {
		// NaN has no binade
		return x
	}
	// Clearing the fraction gives the bottom of the current binade, which is
	// strictly closer to zero unless x is itself a power of two.
	if fraction == 0 || field == 0x7FF {
		field--
	}
	//
	return math.Float64frombits(sign | (field << MANTISSA_BITS))
}
