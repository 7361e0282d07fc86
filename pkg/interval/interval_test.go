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
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var engine = NewOutward()

// ============================================================================
// Queries
// ============================================================================

func Test_Interval_01(t *testing.T) {
	iv := engine.New(1, 3)
	//
	assert.Equal(t, 1.0, iv.Lower())
	assert.Equal(t, 3.0, iv.Upper())
	assert.Equal(t, 2.0, iv.Width())
	assert.False(t, iv.IsEmpty())
	assert.False(t, iv.StraddlesZero())
	assert.Equal(t, "[1, 3]", iv.String())
}

func Test_Interval_02(t *testing.T) {
	// Inverted and NaN bounds give the empty interval
	for _, iv := range []Interval{engine.New(3, 1), engine.New(math.NaN(), 1), engine.Empty(), EMPTY} {
		assert.True(t, iv.IsEmpty())
		assert.True(t, math.IsInf(iv.Width(), -1))
		assert.False(t, iv.StraddlesZero())
		assert.False(t, iv.IsCanonical())
		assert.Equal(t, "[empty]", iv.String())
	}
}

func Test_Interval_03(t *testing.T) {
	// Degenerate intervals have zero width, which is distinct from empty
	iv := engine.Point(42)
	//
	assert.Equal(t, 0.0, iv.Width())
	assert.True(t, iv.IsPoint())
	assert.True(t, iv.IsCanonical())
	assert.False(t, iv.IsEmpty())
}

func Test_Interval_04(t *testing.T) {
	assert.True(t, engine.New(-1, 1).StraddlesZero())
	assert.True(t, engine.New(0, 1).StraddlesZero())
	assert.True(t, engine.New(-1, 0).StraddlesZero())
	assert.False(t, engine.New(0.5, 1).StraddlesZero())
}

func Test_Interval_05(t *testing.T) {
	assert.True(t, engine.New(1, math.Nextafter(1, 2)).IsCanonical())
	assert.False(t, engine.New(1, math.Nextafter(math.Nextafter(1, 2), 2)).IsCanonical())
}

func Test_Interval_06(t *testing.T) {
	// Width is rounded upwards
	iv := engine.New(-0.1, 1e16)
	assert.GreaterOrEqual(t, iv.Width(), 1e16)
	//
	iv = engine.New(-math.MaxFloat64, math.MaxFloat64)
	assert.True(t, math.IsInf(iv.Width(), 1))
}

func Test_Interval_07(t *testing.T) {
	a, b := engine.New(0, 2), engine.New(1, 3)
	//
	assert.Equal(t, engine.New(1, 2), a.Intersect(b))
	assert.Equal(t, engine.New(0, 3), a.Hull(b))
	assert.True(t, a.Intersect(engine.New(5, 6)).IsEmpty())
	assert.Equal(t, a, a.Hull(EMPTY))
}

func Test_Interval_08(t *testing.T) {
	assert.True(t, engine.New(0, 0).Equal(engine.Point(0)))
	assert.False(t, engine.New(math.Copysign(0, -1), 0).Equal(engine.Point(0)))
}

// ============================================================================
// Width and midpoint
// ============================================================================

func Test_Midpoint_01(t *testing.T) {
	for _, iv := range sampleIntervals() {
		m := engine.Midpoint(iv)
		//
		assert.GreaterOrEqual(t, iv.Width(), 0.0, "width of %s", iv)
		assert.LessOrEqual(t, m.Lower(), m.Upper(), "midpoint of %s", iv)
		assert.True(t, iv.Contains(m.Lower()), "midpoint %s of %s", m, iv)
	}
}

func Test_Midpoint_02(t *testing.T) {
	assert.Equal(t, engine.Point(0), engine.Midpoint(ENTIRE))
	assert.Equal(t, engine.Point(math.MaxFloat64), engine.Midpoint(engine.New(1, math.Inf(1))))
	assert.Equal(t, engine.Point(-math.MaxFloat64), engine.Midpoint(engine.New(math.Inf(-1), 1)))
	assert.Equal(t, engine.Point(0), engine.Midpoint(engine.New(-math.MaxFloat64, math.MaxFloat64)))
	assert.True(t, engine.Midpoint(EMPTY).IsEmpty())
}

func Test_Split_01(t *testing.T) {
	for _, iv := range sampleIntervals() {
		l, r := engine.Split(iv)
		//
		if l.Equal(iv) && r.Equal(iv) {
			assert.True(t, iv.IsCanonical(), "%s not split", iv)
			continue
		}
		// No gap, and no overlap beyond the shared point
		assert.Equal(t, iv.Lower(), l.Lower())
		assert.Equal(t, iv.Upper(), r.Upper())
		assert.Equal(t, l.Upper(), r.Lower())
	}
}

func Test_Split_02(t *testing.T) {
	iv := engine.New(1, math.Nextafter(1, 2))
	l, r := engine.Split(iv)
	//
	assert.True(t, l.Equal(iv))
	assert.True(t, r.Equal(iv))
}

// ============================================================================
// Arithmetic
// ============================================================================

func Test_Arithmetic_01(t *testing.T) {
	a, b := engine.New(1, 2), engine.New(-3, 4)
	//
	assert.Equal(t, engine.New(-2, 6), engine.Add(a, b))
	assert.Equal(t, engine.New(-3, 5), engine.Sub(a, b))
	assert.Equal(t, engine.New(-6, 8), engine.Mul(a, b))
	assert.Equal(t, engine.New(-2, -1), engine.Neg(a))
}

func Test_Arithmetic_02(t *testing.T) {
	// Inexact results are widened outwards
	third := engine.Div(engine.Point(1), engine.Point(3))
	//
	assert.Less(t, third.Lower(), third.Upper())
	assert.True(t, ratContains(third, big.NewRat(1, 3)))
	//
	tenth := engine.Add(engine.Point(0.1), engine.Point(0.2))
	assert.True(t, ratContains(tenth, new(big.Rat).Add(exact(0.1), exact(0.2))))
}

func Test_Arithmetic_03(t *testing.T) {
	// Division by an interval containing zero
	assert.Equal(t, ENTIRE, engine.Div(engine.New(1, 2), engine.New(-1, 1)))
	assert.Equal(t, ENTIRE, engine.Div(engine.New(1, 2), engine.New(0, 1)))
	assert.True(t, engine.Div(engine.New(1, 2), engine.Point(0)).IsEmpty())
}

func Test_Arithmetic_04(t *testing.T) {
	// 0 * Inf is 0
	iv := engine.Mul(engine.Point(0), ENTIRE)
	assert.Equal(t, engine.Point(0), iv)
	// Overflow is sound
	huge := engine.Mul(engine.Point(math.MaxFloat64), engine.Point(2))
	assert.Equal(t, math.MaxFloat64, huge.Lower())
	assert.True(t, math.IsInf(huge.Upper(), 1))
}

func Test_Arithmetic_05(t *testing.T) {
	// Empty propagates
	a := engine.New(1, 2)
	//
	assert.True(t, engine.Add(a, EMPTY).IsEmpty())
	assert.True(t, engine.Sub(EMPTY, a).IsEmpty())
	assert.True(t, engine.Mul(a, EMPTY).IsEmpty())
	assert.True(t, engine.Div(EMPTY, a).IsEmpty())
	assert.True(t, engine.Neg(EMPTY).IsEmpty())
}

func Test_Arithmetic_06(t *testing.T) {
	// Randomised enclosure check against exact rational arithmetic
	rnd := rand.New(rand.NewSource(1))
	//
	for range 2000 {
		x, y := randomFloat(rnd), randomFloat(rnd)
		a, b := engine.Point(x), engine.Point(y)
		rx, ry := exact(x), exact(y)
		//
		assert.True(t, ratContains(engine.Add(a, b), new(big.Rat).Add(rx, ry)), "%g + %g", x, y)
		assert.True(t, ratContains(engine.Sub(a, b), new(big.Rat).Sub(rx, ry)), "%g - %g", x, y)
		assert.True(t, ratContains(engine.Mul(a, b), new(big.Rat).Mul(rx, ry)), "%g * %g", x, y)
		//
		if y != 0 {
			assert.True(t, ratContains(engine.Div(a, b), new(big.Rat).Quo(rx, ry)), "%g / %g", x, y)
		}
	}
}

// ============================================================================
// Elementary functions
// ============================================================================

func Test_Elementary_01(t *testing.T) {
	// Outside the domain gives empty, partially outside is restricted
	assert.True(t, engine.Sqrt(engine.New(-2, -1)).IsEmpty())
	assert.True(t, engine.Log(engine.New(-2, -1)).IsEmpty())
	assert.True(t, engine.Asin(engine.New(2, 3)).IsEmpty())
	//
	s := engine.Sqrt(engine.New(-1, 4))
	assert.Equal(t, 0.0, s.Lower())
	assert.True(t, s.Contains(2))
}

func Test_Elementary_02(t *testing.T) {
	for _, x := range []float64{0.1, 1, 2.5, 10, 100} {
		p := engine.Point(x)
		//
		assert.True(t, engine.Exp(p).Contains(math.Exp(x)))
		assert.True(t, engine.Log(p).Contains(math.Log(x)))
		assert.True(t, engine.Sqrt(p).Contains(math.Sqrt(x)))
		assert.True(t, engine.Atan(p).Contains(math.Atan(x)))
		assert.True(t, engine.Sinh(p).Contains(math.Sinh(x)))
		assert.True(t, engine.Cosh(p).Contains(math.Cosh(x)))
		assert.True(t, engine.Tanh(p).Contains(math.Tanh(x)))
	}
}

func Test_Elementary_03(t *testing.T) {
	// Trigonometric ranges
	assert.Equal(t, UNIT, engine.Sin(engine.New(0, 7)))
	assert.Equal(t, UNIT, engine.Cos(engine.New(-1e300, 1e300)))
	assert.Equal(t, UNIT, engine.Sin(ENTIRE))
	//
	s := engine.Sin(engine.New(0, 2))
	assert.Equal(t, 1.0, s.Upper())
	assert.LessOrEqual(t, s.Lower(), 0.0)
	assert.Greater(t, s.Lower(), -1e-300)
	//
	c := engine.Cos(engine.New(3, 3.5))
	assert.Equal(t, -1.0, c.Lower())
	assert.Less(t, c.Upper(), -0.9)
}

func Test_Elementary_04(t *testing.T) {
	for _, iv := range sampleIntervals() {
		for _, r := range []Interval{engine.Sin(iv), engine.Cos(iv)} {
			assert.GreaterOrEqual(t, r.Lower(), -1.0)
			assert.LessOrEqual(t, r.Upper(), 1.0)
			assert.False(t, r.IsEmpty())
		}
	}
}

func Test_Elementary_05(t *testing.T) {
	assert.Equal(t, ENTIRE, engine.Tan(engine.New(1, 2)))
	assert.Equal(t, ENTIRE, engine.Tan(engine.New(0, 4)))
	//
	tn := engine.Tan(engine.New(-1, 1))
	assert.True(t, tn.Contains(math.Tan(1)))
	assert.True(t, tn.Contains(math.Tan(-1)))
	assert.Less(t, tn.Upper(), 2.0)
}

func Test_Elementary_06(t *testing.T) {
	assert.Equal(t, engine.New(0, 3), engine.Abs(engine.New(-3, 2)))
	assert.Equal(t, engine.New(2, 3), engine.Abs(engine.New(-3, -2)))
	assert.Equal(t, engine.New(-1, -1), engine.DAbs(engine.New(-3, -2)))
	assert.Equal(t, engine.New(1, 1), engine.DAbs(engine.New(2, 3)))
	assert.Equal(t, UNIT, engine.DAbs(engine.New(-3, 2)))
}

func Test_Elementary_07(t *testing.T) {
	c := engine.Cosh(engine.New(-1, 2))
	//
	assert.Equal(t, 1.0, c.Lower())
	assert.True(t, c.Contains(math.Cosh(2)))
}

func Test_Pow_01(t *testing.T) {
	assert.Equal(t, engine.New(0, 9), engine.PowInt(engine.New(-3, 2), 2))
	assert.Equal(t, engine.New(-27, 8), engine.PowInt(engine.New(-3, 2), 3))
	assert.Equal(t, engine.Point(1), engine.PowInt(engine.New(-3, 2), 0))
	assert.Equal(t, engine.New(4, 9), engine.PowInt(engine.New(-3, -2), 2))
}

func Test_Pow_02(t *testing.T) {
	r := engine.PowInt(engine.New(2, 4), -1)
	//
	assert.Equal(t, engine.New(0.25, 0.5), r)
	assert.Equal(t, ENTIRE, engine.PowInt(engine.New(-1, 1), -1))
}

func Test_Pow_03(t *testing.T) {
	// Integer point exponents agree with PowInt
	x := engine.New(-2, 3)
	assert.Equal(t, engine.PowInt(x, 3), engine.Pow(x, engine.Point(3)))
	// Otherwise the base is restricted to non-negative values
	r := engine.Pow(engine.New(-4, 4), engine.Point(0.5))
	assert.True(t, r.Contains(0))
	assert.True(t, r.Contains(2))
	assert.True(t, engine.Pow(engine.New(-4, -1), engine.Point(0.5)).IsEmpty())
}

// ============================================================================
// Parsing
// ============================================================================

func Test_Parse_01(t *testing.T) {
	// Exactly representable bounds are preserved
	iv, err := engine.Parse("0.5", "-1e-1")
	require.NoError(t, err)
	assert.True(t, iv.IsEmpty())
	//
	iv, err = engine.Parse("-0.5", "3/4")
	require.NoError(t, err)
	assert.Equal(t, engine.New(-0.5, 0.75), iv)
}

func Test_Parse_02(t *testing.T) {
	// Inexact bounds are rounded outwards
	iv, err := engine.Parse("0.1", "0.1")
	require.NoError(t, err)
	//
	assert.False(t, iv.IsPoint())
	assert.True(t, iv.IsCanonical())
	assert.True(t, ratContains(iv, big.NewRat(1, 10)))
	//
	iv, err = engine.ParseSingle("1/3")
	require.NoError(t, err)
	assert.True(t, ratContains(iv, big.NewRat(1, 3)))
	assert.True(t, iv.IsCanonical())
}

func Test_Parse_03(t *testing.T) {
	iv, err := engine.ParseSingle("[-inf, 1e400]")
	require.NoError(t, err)
	//
	assert.True(t, math.IsInf(iv.Lower(), -1))
	assert.True(t, math.IsInf(iv.Upper(), 1))
	//
	iv, err = engine.ParseSingle(" [ 1e400, inf ] ")
	require.NoError(t, err)
	assert.Equal(t, math.MaxFloat64, iv.Lower())
}

func Test_Parse_04(t *testing.T) {
	for _, text := range []string{"", "abc", "1..2", "[1, 2", "[1 2]", "nan"} {
		_, err := engine.ParseSingle(text)
		//
		var perr *ParseError
		//
		require.ErrorAs(t, err, &perr, "parsing %q", text)
		assert.NotEmpty(t, perr.Error())
	}
}

func Test_Parse_05(t *testing.T) {
	_, err := engine.Parse("1", "two")
	//
	var perr *ParseError
	//
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "two", perr.Text())
}

func Test_Parse_06(t *testing.T) {
	// Exponents far outside the range of a double are rejected
	for _, text := range []string{"1e99999999", "-1e-99999999", "1E5000", "1e99999999999999999999", "0x1p99999"} {
		_, err := engine.ParseSingle(text)
		//
		var perr *ParseError
		//
		assert.ErrorAs(t, err, &perr, "parsing %q", text)
	}
	// Whilst those near it are still rounded outwards
	iv, err := engine.ParseSingle("[-1e4000, 1e-4000]")
	require.NoError(t, err)
	assert.True(t, math.IsInf(iv.Lower(), -1))
	assert.True(t, iv.Upper() > 0)
}

func Test_RoundTrip_01(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	//
	for range 500 {
		a, b := randomFloat(rnd), randomFloat(rnd)
		lo, hi := min(a, b), max(a, b)
		iv := engine.New(lo, hi)
		// Never narrower than the given bounds
		assert.LessOrEqual(t, iv.Lower(), lo)
		assert.GreaterOrEqual(t, iv.Upper(), hi)
		// Nor through text
		txt, err := engine.Parse(exact(lo).FloatString(400), exact(hi).FloatString(400))
		require.NoError(t, err)
		assert.LessOrEqual(t, txt.Lower(), lo)
		assert.GreaterOrEqual(t, txt.Upper(), hi)
	}
}

// ============================================================================
// Helpers
// ============================================================================

func sampleIntervals() []Interval {
	return []Interval{
		engine.New(0, 1),
		engine.New(-1, 1),
		engine.New(-5, -2),
		engine.New(1e10, 1e10+1),
		engine.New(0, 1e-7),
		engine.New(-1e300, 1e300),
		engine.New(1, math.Nextafter(1, 2)),
		engine.New(math.Inf(-1), 0),
		engine.New(0, math.Inf(1)),
		ENTIRE,
		engine.Point(3),
	}
}

// Generate a double with a widely varying exponent.
func randomFloat(rnd *rand.Rand) float64 {
	x := math.Ldexp(rnd.Float64()+0.5, rnd.Intn(200)-100)
	//
	if rnd.Intn(2) == 0 {
		return -x
	}
	//
	return x
}

func exact(x float64) *big.Rat {
	return new(big.Rat).SetFloat64(x)
}

// Check whether an interval contains an exact rational value.
func ratContains(iv Interval, r *big.Rat) bool {
	if iv.IsEmpty() {
		return false
	}
	//
	lo, hi := iv.Lower(), iv.Upper()
	//
	return (math.IsInf(lo, -1) || exact(lo).Cmp(r) <= 0) && (math.IsInf(hi, 1) || exact(hi).Cmp(r) >= 0)
}
