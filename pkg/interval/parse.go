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
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Literals with an exponent beyond this magnitude are rejected rather than
// expanded exactly.  This is far outside the range of a double.
const maxExponent = 4096

// ParseError is returned when a textual bound cannot be understood.
type ParseError struct {
	// Text which could not be parsed.
	text string
}

// Text returns the offending text.
func (e *ParseError) Text() string {
	return e.text
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid interval literal %q", e.text)
}

// Parse constructs an interval from two textual bounds.  The lower bound is
// rounded down and the upper bound rounded up, such that the result encloses the
// exact (decimal or rational) values given.  Bounds may also be "inf", "+inf" or
// "-inf".  Inverted bounds give the empty interval.
func (e Outward) Parse(lower string, upper string) (Interval, error) {
	lo, err := parseBound(lower, false)
	//
	if err != nil {
		return EMPTY, err
	}
	//
	hi, err := parseBound(upper, true)
	//
	if err != nil {
		return EMPTY, err
	}
	//
	return e.New(lo, hi), nil
}

// ParseSingle constructs an interval from a single literal, which is either a
// bracketed pair "[lower, upper]" or a single number.  In the latter case, the
// result is the tightest interval enclosing that number (which is a point
// interval only if the number is exactly representable).
func (e Outward) ParseSingle(text string) (Interval, error) {
	trimmed := strings.TrimSpace(text)
	//
	if strings.HasPrefix(trimmed, "[") {
		inner, ok := strings.CutSuffix(trimmed[1:], "]")
		lower, upper, found := strings.Cut(inner, ",")
		//
		if !ok || !found {
			return EMPTY, &ParseError{text}
		}
		//
		return e.Parse(lower, upper)
	}
	//
	return e.Parse(trimmed, trimmed)
}

// Parse a single bound, rounding it in the given direction.
func parseBound(text string, roundUp bool) (float64, error) {
	var (
		trimmed = strings.TrimSpace(text)
		r       big.Rat
	)
	//
	switch strings.ToLower(trimmed) {
	case "inf", "+inf", "infinity", "+infinity", "oo":
		return posInf, nil
	case "-inf", "-infinity", "-oo":
		return negInf, nil
	}
	//
	if exponentOutOfRange(trimmed) {
		return 0, &ParseError{text}
	} else if _, ok := r.SetString(trimmed); !ok {
		return 0, &ParseError{text}
	}
	//
	return roundRat(&r, roundUp), nil
}

// Round a rational value to a double in the given direction.
func roundRat(r *big.Rat, roundUp bool) float64 {
	f, exact := r.Float64()
	//
	if exact {
		return f
	} else if math.IsInf(f, 1) {
		// overflow: value lies above the largest finite double
		if roundUp {
			return f
		}
		//
		return math.MaxFloat64
	} else if math.IsInf(f, -1) {
		if roundUp {
			return -math.MaxFloat64
		}
		//
		return f
	}
	// f is the nearest double, so at most one step is required
	cmp := new(big.Rat).SetFloat64(f).Cmp(r)
	//
	switch {
	case roundUp && cmp < 0:
		return up(f)
	case !roundUp && cmp > 0:
		return down(f)
	}
	//
	return f
}

// Check whether the exponent of a literal (decimal "e", or binary "p" for
// hexadecimal literals) exceeds maxExponent in magnitude.
func exponentOutOfRange(text string) bool {
	markers := "eE"
	//
	if digits := strings.TrimLeft(text, "+-"); strings.HasPrefix(strings.ToLower(digits), "0x") {
		markers = "pP"
	}
	//
	i := strings.LastIndexAny(text, markers)
	//
	if i < 0 {
		return false
	}
	//
	exp, err := strconv.Atoi(text[i+1:])
	//
	if err != nil {
		// Overflow is out of range, anything else is left to the parser
		return errors.Is(err, strconv.ErrRange)
	}
	//
	return exp > maxExponent || exp < -maxExponent
}
