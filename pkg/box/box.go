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
	"math"
	"strings"

	"github.com/consensys/go-boxsolve/pkg/interval"
)

// Box is an ordered sequence of intervals, one per problem variable.  The
// position of each interval is meaningful, in that position i always refers to
// the same variable across every box derived from another by splitting.  Boxes
// are immutable values: operations which "modify" a box return a new box,
// leaving the original untouched.
type Box struct {
	dims []interval.Interval
}

// New constructs a box from a given sequence of intervals.  The intervals are
// copied, hence subsequent changes to the given slice are not reflected in the
// box.
func New(dims ...interval.Interval) Box {
	return Box{append([]interval.Interval(nil), dims...)}
}

// Len returns the number of dimensions in this box.
func (b Box) Len() int {
	return len(b.dims)
}

// Get returns the interval for the ith dimension.
func (b Box) Get(i int) interval.Interval {
	return b.dims[i]
}

// With returns a copy of this box where the ith dimension is replaced by a given
// interval.
func (b Box) With(i int, iv interval.Interval) Box {
	nb := New(b.dims...)
	nb.dims[i] = iv
	//
	return nb
}

// Intervals returns a copy of the dimensions of this box.
func (b Box) Intervals() []interval.Interval {
	return append([]interval.Interval(nil), b.dims...)
}

// IsEmpty checks whether any dimension of this box is empty, in which case the
// box contains no points at all.
func (b Box) IsEmpty() bool {
	for _, iv := range b.dims {
		if iv.IsEmpty() {
			return true
		}
	}
	//
	return false
}

// Equal checks whether two boxes are bitwise identical in every dimension.
func (b Box) Equal(other Box) bool {
	if len(b.dims) != len(other.dims) {
		return false
	}
	//
	for i, iv := range b.dims {
		if !iv.Equal(other.dims[i]) {
			return false
		}
	}
	//
	return true
}

// WidestIndex returns the index of the dimension with the largest width, where
// the first such dimension is chosen in the event of a tie.  For a box with no
// dimensions, this returns -1.
func (b Box) WidestIndex() int {
	var (
		index = -1
		width = math.Inf(-1)
	)
	//
	for i, iv := range b.dims {
		// NOTE: empty intervals have width -Inf, hence can only be selected
		// when every dimension is empty.
		if w := iv.Width(); w > width || index < 0 {
			index, width = i, w
		}
	}
	//
	return index
}

// Midpoint returns the box of (degenerate) midpoints for each dimension.
func (b Box) Midpoint(engine interval.Engine) Box {
	mids := make([]interval.Interval, len(b.dims))
	//
	for i, iv := range b.dims {
		mids[i] = engine.Midpoint(iv)
	}
	//
	return Box{mids}
}

func (b Box) String() string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	for i, iv := range b.dims {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(iv.String())
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}
