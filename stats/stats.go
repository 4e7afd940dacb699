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

// Package stats aggregates a flat, over-fetched series of timestamped
// samples into per-bucket summary statistics aligned across multiple
// historical periods.
//
// The caller supplies samples covering desiredBucketCount × lookback periods
// at a fixed cadence, ordered oldest to newest as an upstream source would
// return them.  Aggregation indexes the series newest-first and builds one
// bucket per requested slot from a strided window: bucket i collects every
// sample at newest-first index i + k·desiredBucketCount, gathering the
// samples occupying the same relative position within each historical
// period.
//
// Each bucket reports the most recent occurrence (Current), the arithmetic
// mean (Average), and rank-based quartiles (Q1, Q3) of its window.  Average
// and the quartiles summarize the same window with different estimators, so
// Q1 ≤ Average ≤ Q3 is deliberately not guaranteed: skewed or tiny windows
// may cross.  Consumers must not "repair" such buckets.
//
// Buckets are delivered through a finite, produce-once Iterator.  An empty
// window ends production: windows are strided, so the first empty one means
// look-back history is exhausted rather than gapped.  Receiving fewer
// buckets than requested is a normal outcome, not an error.
package stats

import "sort"

// Sample is a single timestamped reading, immutable once read.  Value is an
// average-power figure: the upstream boundary normalizes cumulative
// consumption before samples reach this package.
type Sample struct {
	Timestamp int64
	Value     float64
}

// StatSample summarizes one bucket's strided window.  Its timestamp is that
// of the window's most recent sample.
type StatSample struct {
	Timestamp int64
	Current   float64
	Average   float64
	Q1        float64
	Q3        float64
}

// Iterator is a finite, non-restartable sequence of StatSamples.  It is
// produce-once: values consumed through Next are gone.
type Iterator struct {
	// Samples in newest-first order, materialized so windows can be gathered
	// by stride.
	newestFirst []Sample
	bucketCount int
	next        int
}

// Aggregate returns an Iterator producing up to desiredBucketCount
// StatSamples from the provided oldest-to-newest sample series.  The input
// slice is not retained or modified.
func Aggregate(samples []Sample, desiredBucketCount int) *Iterator {
	newestFirst := make([]Sample, len(samples))
	for i, s := range samples {
		newestFirst[len(samples)-1-i] = s
	}
	return &Iterator{
		newestFirst: newestFirst,
		bucketCount: desiredBucketCount,
	}
}

// Next produces the next bucket's StatSample.  It returns false once
// desiredBucketCount buckets have been produced or the first bucket with no
// samples is reached, whichever comes first.
func (it *Iterator) Next() (StatSample, bool) {
	if it.next >= it.bucketCount {
		return StatSample{}, false
	}
	window := []float64{}
	for idx := it.next; idx < len(it.newestFirst); idx += it.bucketCount {
		window = append(window, it.newestFirst[idx].Value)
	}
	if len(window) == 0 {
		// History is exhausted; later buckets would be empty too.
		it.next = it.bucketCount
		return StatSample{}, false
	}
	newest := it.newestFirst[it.next]
	it.next++
	sum := 0.0
	for _, v := range window {
		sum += v
	}
	sorted := append([]float64{}, window...)
	sort.Float64s(sorted)
	rank := len(sorted) / 4
	return StatSample{
		Timestamp: newest.Timestamp,
		Current:   newest.Value,
		Average:   sum / float64(len(window)),
		Q1:        sorted[rank],
		Q3:        sorted[len(sorted)-1-rank],
	}, true
}

// Collect drains the receiver into a slice.  Like any other consumption of
// the Iterator it is a one-shot operation.
func (it *Iterator) Collect() []StatSample {
	ret := []StatSample{}
	for {
		s, ok := it.Next()
		if !ok {
			return ret
		}
		ret = append(ret, s)
	}
}
