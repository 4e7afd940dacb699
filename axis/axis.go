/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package axis provides invertible affine transforms between value domains
// and display coordinate ranges.
//
// A Transform maps a value domain onto a coordinate range via `y = m·x + c`.
// Transforms are value objects: they are constructed fresh for each render
// pass and never mutated.  A data-space Transform built with FromRange maps
// its domain onto the unit interval; composing it with a device-space
// Transform via ApplyDisplay yields a single Transform carrying raw domain
// values directly to device pixels, so each plotted point costs one
// multiply-add rather than two Transform applications.
//
// Map performs no bounds clamping.  Callers may legitimately map values
// outside the constructing range (overlay cursors, for instance) and receive
// coordinates outside the unit interval or the device viewport.
package axis

import (
	"fmt"
	"math"
)

// DegenerateRangeError reports an attempt to build a Transform over a
// zero-width value range.
type DegenerateRangeError struct {
	Value float64
}

func (e *DegenerateRangeError) Error() string {
	return fmt.Sprintf("axis range [%g, %g] is degenerate", e.Value, e.Value)
}

// Transform is an invertible affine mapping `Map(x) = m·x + c`.
type Transform struct {
	m, c float64
}

// FromRange returns the Transform mapping min to 0 and max to 1.  It returns
// a *DegenerateRangeError if min == max, since such a range admits no
// invertible mapping.  min > max is permitted and yields a descending
// mapping, which device-space callers use for the inverted SVG y axis.
func FromRange(min, max float64) (Transform, error) {
	if min == max {
		return Transform{}, &DegenerateRangeError{Value: min}
	}
	m := 1 / (max - min)
	return Transform{
		m: m,
		c: -min * m,
	}, nil
}

// Map carries the provided domain value into the receiver's coordinate
// range.  It is pure and total for all finite inputs.
func (t Transform) Map(v float64) float64 {
	return t.m*v + t.c
}

// Unmap is the exact inverse of Map for the same Transform:
// Unmap(Map(x)) == x up to floating-point tolerance.
func (t Transform) Unmap(v float64) float64 {
	return (v - t.c) / t.m
}

// ApplyDisplay composes the receiving data-space Transform with the inverse
// of the provided device-space Transform, returning a new Transform mapping
// raw domain values directly to device coordinates:
//
//	t.ApplyDisplay(device).Map(x) == device.Unmap(t.Map(x))
//
// for all finite x.
func (t Transform) ApplyDisplay(device Transform) Transform {
	return Transform{
		m: t.m / device.m,
		c: (t.c - device.c) / device.m,
	}
}

// DivisionInterval returns the gridline interval for an axis whose values
// span [0, max].  Candidate intervals are `1·i`, `0.5·i`, and `0.2·i` for
// descending powers of ten `i`, starting at the ceiling power of ten of max;
// the chosen interval is the last candidate dividing max into no more than
// desired divisions.  max must be positive and desired at least 1.
func DivisionInterval(max float64, desired int) float64 {
	i := math.Pow(10, math.Ceil(math.Log10(max)))
	prev := i
	for {
		for _, scale := range []float64{1, 0.5, 0.2} {
			t := i * scale
			if max/t > float64(desired) {
				return prev
			}
			prev = t
		}
		i /= 10
	}
}
