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

// Package division generates calendar-aligned breakpoints for shading chart
// background intervals.
//
// A generator covers a (periodStart, periodEnd) timestamp range with an
// ordered, finite, produce-once sequence of boundaries: the first boundary
// lies at or before periodStart, and the sequence continues until one
// boundary falls strictly past periodEnd, so consecutive boundary pairs
// always tile the full range.
package division

import (
	"fmt"
	"time"
)

// Division is one calendar-aligned breakpoint with its display label.
type Division struct {
	// Boundary is the breakpoint, in unix seconds.
	Boundary int64
	Label    string
}

// Kind selects a calendar interval.
type Kind string

// Supported calendar intervals.
const (
	FourHours Kind = "four_hours"
	Days      Kind = "days"
	Weeks     Kind = "weeks"
	Months    Kind = "months"
)

// Iterator is a finite, non-restartable boundary sequence.
type Iterator struct {
	next func() (Division, bool)
}

// Next produces the next boundary, returning false once one boundary
// strictly past the covered range has been produced.
func (it *Iterator) Next() (Division, bool) {
	return it.next()
}

// Collect drains the receiver into a slice.
func (it *Iterator) Collect() []Division {
	ret := []Division{}
	for {
		d, ok := it.Next()
		if !ok {
			return ret
		}
		ret = append(ret, d)
	}
}

// Boundaries returns an Iterator over the boundaries of the provided kind
// covering [periodStart, periodEnd], labeled in the provided location.
func Boundaries(kind Kind, periodStart, periodEnd time.Time, loc *time.Location) (*Iterator, error) {
	var align func(time.Time) time.Time
	var step func(time.Time) time.Time
	var label func(time.Time) string
	switch kind {
	case FourHours:
		align = func(t time.Time) time.Time {
			t = t.In(loc)
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour()-t.Hour()%4, 0, 0, 0, loc)
		}
		step = func(t time.Time) time.Time { return t.Add(4 * time.Hour) }
		label = func(t time.Time) string { return t.Format("15:04") }
	case Days:
		align = func(t time.Time) time.Time {
			t = t.In(loc)
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		}
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
		label = func(t time.Time) string { return t.Format("Monday") }
	case Weeks:
		align = func(t time.Time) time.Time {
			t = t.In(loc)
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
			// Weeks start on Monday.
			offset := (int(t.Weekday()) + 6) % 7
			return t.AddDate(0, 0, -offset)
		}
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 7) }
		label = func(t time.Time) string { return t.Format("2 Jan") }
	case Months:
		align = func(t time.Time) time.Time {
			t = t.In(loc)
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
		}
		step = func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
		label = func(t time.Time) string { return t.Format("January") }
	default:
		return nil, fmt.Errorf("unknown division kind %q", kind)
	}
	cur := align(periodStart)
	done := false
	return &Iterator{next: func() (Division, bool) {
		if done {
			return Division{}, false
		}
		d := Division{
			Boundary: cur.Unix(),
			Label:    label(cur),
		}
		if cur.After(periodEnd) {
			// This boundary lies strictly past the covered range; it is the
			// last one produced.
			done = true
		}
		cur = step(cur)
		return d, true
	}}, nil
}
