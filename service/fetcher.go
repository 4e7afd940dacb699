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

package service

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/hackhitchin/hh-wp-energy-graph/stats"
)

// sampleExtension is the filename extension of meter sample files under the
// data root.  A file `<name>.dat` backs the chart named `<name>`.
const sampleExtension = ".dat"

// sampleFetcher describes types capable of fetching meter sample series by
// chart name.
type sampleFetcher interface {
	// Charts returns the chart names this fetcher can serve.
	Charts() ([]string, error)
	// Fetch fetches the sample series backing the named chart, normalized to
	// average power in watts and ordered oldest to newest.
	Fetch(ctx context.Context, chartName string) ([]stats.Sample, error)
}

// fileFetcher reads meter sample files under a data root directory.  Each
// line of a sample file holds a whitespace-separated unix-seconds timestamp
// and the energy in watt-hours consumed over the interval ending at that
// timestamp; blank lines and lines starting with '#' are skipped.
type fileFetcher struct {
	dataRoot string
}

func newFileFetcher(dataRoot string) *fileFetcher {
	return &fileFetcher{dataRoot: dataRoot}
}

func (ff *fileFetcher) Charts() ([]string, error) {
	entries, err := os.ReadDir(ff.dataRoot)
	if err != nil {
		return nil, err
	}
	ret := []string{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != sampleExtension {
			continue
		}
		ret = append(ret, strings.TrimSuffix(entry.Name(), sampleExtension))
	}
	sort.Strings(ret)
	return ret, nil
}

func (ff *fileFetcher) Fetch(ctx context.Context, chartName string) ([]stats.Sample, error) {
	if chartName == "" || chartName != filepath.Base(chartName) {
		return nil, fmt.Errorf("invalid chart name %q", chartName)
	}
	file, err := os.Open(filepath.Join(ff.dataRoot, chartName+sampleExtension))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	samples := []stats.Sample{}
	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s%s:%d: want `timestamp value`, got %q",
				chartName, sampleExtension, lineNumber, line)
		}
		ts, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s%s:%d: bad timestamp: %w",
				chartName, sampleExtension, lineNumber, err)
		}
		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s%s:%d: bad value: %w",
				chartName, sampleExtension, lineNumber, err)
		}
		samples = append(samples, stats.Sample{
			Timestamp: ts,
			Value:     value,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	sort.Slice(samples, func(a, b int) bool {
		return samples[a].Timestamp < samples[b].Timestamp
	})
	return normalizePower(chartName, samples)
}

// normalizePower converts per-interval energy readings, in watt-hours, to
// the average power in watts drawn over each interval.  The first sample's
// interval is taken to match its successor's.  Series too short to carry an
// interval pass through unchanged.
func normalizePower(chartName string, samples []stats.Sample) ([]stats.Sample, error) {
	if len(samples) < 2 {
		return samples, nil
	}
	ret := make([]stats.Sample, len(samples))
	for i, s := range samples {
		var intervalSec int64
		if i == 0 {
			intervalSec = samples[1].Timestamp - samples[0].Timestamp
		} else {
			intervalSec = s.Timestamp - samples[i-1].Timestamp
		}
		if intervalSec <= 0 {
			return nil, fmt.Errorf("%s%s: non-increasing timestamp %d",
				chartName, sampleExtension, s.Timestamp)
		}
		ret[i] = stats.Sample{
			Timestamp: s.Timestamp,
			Value:     s.Value / (float64(intervalSec) / 3600),
		}
	}
	return ret, nil
}
