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
	"github.com/consensys/go-boxsolve/pkg/interval"
	"github.com/consensys/go-boxsolve/pkg/util/math"
)

// Splitter bisects boxes along their widest dimension.  Where possible, a split
// is aligned with a binade boundary (i.e. a power of two) rather than the
// midpoint.  Such boundaries are where the spacing of doubles changes, and
// aligning subdivisions with them prevents long chains of ever narrower halves
// accumulating towards zero before the rounding floor is reached.
type Splitter struct {
	engine interval.Engine
}

// NewSplitter constructs a splitter which uses a given engine for computing
// midpoints and for generic halving.
func NewSplitter(engine interval.Engine) Splitter {
	return Splitter{engine}
}

// Split bisects the widest dimension of a given box.  This returns either two
// children (which together cover the box and overlap only on the split point),
// or the box itself when no further progress is possible at double precision.
// The boolean return indicates which of these occurred.  Only the split
// dimension differs between the box and its children.
func (p Splitter) Split(b Box) ([]Box, bool) {
	k := b.WidestIndex()
	//
	if k < 0 || b.IsEmpty() {
		return []Box{b}, false
	}
	//
	var (
		iv    = b.Get(k)
		left  interval.Interval
		right interval.Interval
	)
	//
	m := p.engine.Midpoint(iv).Lower()
	nb := math.NextBinadeTowardZero(m)
	// Prefer the binade boundary, if it lies strictly within the interval.
	if iv.Lower() < nb && nb < iv.Upper() {
		left = p.engine.New(iv.Lower(), nb)
		right = p.engine.New(nb, iv.Upper())
	} else {
		left, right = p.engine.Split(iv)
	}
	// Check whether any progress was made
	if left.Equal(right) {
		return []Box{b}, false
	}
	//
	return []Box{b.With(k, left), b.With(k, right)}, true
}
