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

// Package renderdispatcher provides RenderDispatcher, a type for
// multiplexing chart render requests across multiple chart sources.
package renderdispatcher

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// chartSource represents a single provider of named charts.  chartSource
// instances must support concurrent RenderChart calls; in particular, two
// concurrent renders must never share scene-graph, transform, or style
// instances.
type chartSource interface {
	// SupportedCharts returns the chart names this chartSource is able to
	// render.  Names should be unique to their chartSource.
	SupportedCharts() []string
	// RenderChart renders the named chart to a self-contained SVG document
	// string.  Any returned error cancels the entire request and surfaces to
	// the client.
	RenderChart(ctx context.Context, name string) (string, error)
}

// UnsupportedChartError is returned when no chartSource renders a requested
// chart name.
type UnsupportedChartError struct {
	Name string
}

func (ce *UnsupportedChartError) Error() string {
	return fmt.Sprintf("unsupported chart `%s`", ce.Name)
}

// RenderDispatcher multiplexes multiple chart sources, which may draw from
// entirely different datasets, allowing one request to gather charts from a
// variety of providers.
type RenderDispatcher struct {
	sources []chartSource
	// Maps chart names to indices (in sources) of the chartSources that
	// render those charts.
	chartHandlers map[string]int
}

// New returns a *RenderDispatcher wrapping the provided chartSources.
func New(srcs ...chartSource) (*RenderDispatcher, error) {
	rd := &RenderDispatcher{
		chartHandlers: map[string]int{},
	}
	for srcIdx, src := range srcs {
		rd.sources = append(rd.sources, src)
		for _, chartName := range src.SupportedCharts() {
			if _, ok := rd.chartHandlers[chartName]; ok {
				return nil, fmt.Errorf(
					"multiple chartSources render chart `%s`", chartName)
			}
			rd.chartHandlers[chartName] = srcIdx
		}
	}
	return rd, nil
}

// RenderCharts distributes the requested chart names to their appropriate
// chartSources for rendering, then assembles the rendered documents into a
// name-to-markup mapping.  Renders proceed concurrently; the first error
// cancels the rest.
func (rd *RenderDispatcher) RenderCharts(ctx context.Context, names ...string) (map[string]string, error) {
	for _, name := range names {
		if _, ok := rd.chartHandlers[name]; !ok {
			return nil, &UnsupportedChartError{Name: name}
		}
	}
	rendered := make(map[string]string, len(names))
	var mu sync.Mutex
	errg, ctx := errgroup.WithContext(ctx)
	for _, name := range names {
		name := name
		src := rd.sources[rd.chartHandlers[name]]
		errg.Go(func() error {
			markup, err := src.RenderChart(ctx, name)
			if err != nil {
				return err
			}
			mu.Lock()
			rendered[name] = markup
			mu.Unlock()
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	return rendered, nil
}
