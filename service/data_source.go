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
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/simplelru"

	"github.com/hackhitchin/hh-wp-energy-graph/chart"
	"github.com/hackhitchin/hh-wp-energy-graph/division"
	"github.com/hackhitchin/hh-wp-energy-graph/stats"
)

// Collection represents a single fetched meter sample series, along with any
// metadata it requires.
type Collection struct {
	samples []stats.Sample
}

// NewCollection returns a Collection wrapping the provided normalized
// sample series.
func NewCollection(samples []stats.Sample) *Collection {
	return &Collection{
		samples: samples,
	}
}

// DataSource implements renderdispatcher.chartSource for meter sample data.
// It caches the most recently used collections and their rendered charts.
type DataSource struct {
	fetcher  sampleFetcher
	chartCfg chart.Config
	kind     division.Kind
	loc      *time.Location
	// lookbackBuckets is the number of trailing samples each chart draws on.
	lookbackBuckets int

	// mu guards both caches; simplelru is not safe for the dispatcher's
	// concurrent renders.
	mu sync.Mutex
	// An LRU cache holding the most recently-accessed collections.
	collections *simplelru.LRU
	// An LRU cache holding the most recently-rendered chart markup.
	rendered *simplelru.LRU
}

// NewDataSource returns a new DataSource serving charts per the provided
// configuration, with the specified cache capacity, and using the provided
// sample fetcher.
func NewDataSource(cfg Config, fetcher sampleFetcher, cap int) (*DataSource, error) {
	chartCfg, err := cfg.chartConfig()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.location()
	if err != nil {
		return nil, err
	}
	collections, err := simplelru.NewLRU(cap, nil /* no onEvict policy */)
	if err != nil {
		return nil, err
	}
	rendered, err := simplelru.NewLRU(cap, nil /* no onEvict policy */)
	if err != nil {
		return nil, err
	}
	return &DataSource{
		fetcher:         fetcher,
		chartCfg:        chartCfg,
		kind:            division.Kind(cfg.Chart.Division),
		loc:             loc,
		lookbackBuckets: chartCfg.BucketCount * cfg.Chart.LookbackPeriods,
		collections:     collections,
		rendered:        rendered,
	}, nil
}

// SupportedCharts returns the chart names the underlying fetcher can serve.
func (ds *DataSource) SupportedCharts() []string {
	names, err := ds.fetcher.Charts()
	if err != nil {
		return nil
	}
	return names
}

// fetchCollection returns the specified collection from the LRU if it's
// present there.  If it isn't already in the LRU, it is fetched and added to
// the LRU before being returned.
func (ds *DataSource) fetchCollection(ctx context.Context, chartName string) (*Collection, error) {
	ds.mu.Lock()
	collIf, ok := ds.collections.Get(chartName)
	ds.mu.Unlock()
	if ok {
		coll, ok := collIf.(*Collection)
		if !ok {
			return nil, fmt.Errorf("fetched collection wasn't a sample series")
		}
		return coll, nil
	}
	samples, err := ds.fetcher.Fetch(ctx, chartName)
	if err != nil {
		return nil, err
	}
	coll := NewCollection(samples)
	ds.mu.Lock()
	ds.collections.Add(chartName, coll)
	ds.mu.Unlock()
	return coll, nil
}

// RenderChart renders the named chart over its collection's trailing
// lookback window, serving from the rendered-markup cache when possible.
func (ds *DataSource) RenderChart(ctx context.Context, chartName string) (string, error) {
	ds.mu.Lock()
	markupIf, ok := ds.rendered.Get(chartName)
	ds.mu.Unlock()
	if ok {
		markup, ok := markupIf.(string)
		if !ok {
			return "", fmt.Errorf("cached chart wasn't rendered markup")
		}
		return markup, nil
	}
	coll, err := ds.fetchCollection(ctx, chartName)
	if err != nil {
		return "", err
	}
	samples := coll.samples
	if len(samples) > ds.lookbackBuckets {
		samples = samples[len(samples)-ds.lookbackBuckets:]
	}
	if len(samples) == 0 {
		return "", fmt.Errorf("chart `%s` has no samples", chartName)
	}
	periodStart := time.Unix(samples[0].Timestamp, 0)
	periodEnd := time.Unix(samples[len(samples)-1].Timestamp, 0)
	boundaries, err := division.Boundaries(ds.kind, periodStart, periodEnd, ds.loc)
	if err != nil {
		return "", err
	}
	markup, err := chart.Render(samples, boundaries.Collect(), ds.chartCfg)
	if err != nil {
		return "", err
	}
	ds.mu.Lock()
	ds.rendered.Add(chartName, markup)
	ds.mu.Unlock()
	return markup, nil
}

// Evict drops the named chart's cached collection and markup, forcing the
// next render to refetch.  Eviction of uncached names is a no-op.
func (ds *DataSource) Evict(chartName string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.collections.Remove(chartName)
	ds.rendered.Remove(chartName)
}
