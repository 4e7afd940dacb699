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

// Package chart assembles a complete annotated energy chart from raw
// samples.
//
// One Build call performs the full render pass strictly in order:
// aggregation, transform construction, scene-graph assembly.  Nothing is
// shared or retained across calls; each call builds its own Document from
// immutable or freshly-constructed inputs, so concurrent Build calls over
// distinct inputs are safe.
//
// The assembled z-order, bottom to top: interval blocks, gridlines, the
// interquartile shaded region, the consumption/average/q1/q3 curves, then
// one hover overlay per bucket.
package chart

import (
	"fmt"
	"sort"

	"github.com/hackhitchin/hh-wp-energy-graph/axis"
	"github.com/hackhitchin/hh-wp-energy-graph/division"
	"github.com/hackhitchin/hh-wp-energy-graph/scene"
	"github.com/hackhitchin/hh-wp-energy-graph/stats"
	"github.com/hackhitchin/hh-wp-energy-graph/style"
)

// RootClass is the fixed CSS class marker on the rendered chart's root
// element, for host styling.
const RootClass = "energy-graph"

// Config carries the device geometry and look of one chart.
type Config struct {
	WidthPx  float64
	HeightPx float64
	// BucketCount is the number of output buckets wanted from aggregation.
	BucketCount int
	// GridlineCount is the desired number of horizontal gridline divisions.
	GridlineCount int
	Palette       Palette
}

// Palette names the colors of the chart's parts.
type Palette struct {
	Consumption string
	Average     string
	Quartile    string
	Region      string
	Block       string
	Caption     string
	Gridline    string
	Guide       string
}

// DefaultConfig returns the reference chart configuration: an 840×630
// device, 48 buckets, and 4 gridline divisions.
func DefaultConfig() Config {
	return Config{
		WidthPx:       840,
		HeightPx:      630,
		BucketCount:   48,
		GridlineCount: 4,
		Palette: Palette{
			Consumption: "#205081",
			Average:     "#993333",
			Quartile:    "#999999",
			Region:      "#cccccc",
			Block:       "#000000",
			Caption:     "#f0f0f0",
			Gridline:    "#dddddd",
			Guide:       "#666666",
		},
	}
}

func lineStyle(color string, width float64) *style.Style {
	return &style.Style{
		Stroke:        color,
		Fill:          "none",
		StrokeWidth:   width,
		StrokeOpacity: 1,
		FillOpacity:   1,
	}
}

func fillStyle(color string, opacity float64) *style.Style {
	return &style.Style{
		Stroke:        "none",
		Fill:          color,
		StrokeWidth:   0,
		StrokeOpacity: 0,
		FillOpacity:   opacity,
	}
}

// Build aggregates the provided sample series and assembles the chart's
// scene graph.  The samples must be ordered oldest to newest; divisions
// come from the caller's calendar boundary generator.  Any fatal error
// (degenerate value range, unknown column, non-monotonic time axis) aborts
// the whole call with no partial result.  Receiving fewer buckets than
// cfg.BucketCount is normal and simply narrows the chart's time range.
func Build(samples []stats.Sample, divisions []division.Division, cfg Config) (*scene.Document, error) {
	buckets := stats.Aggregate(samples, cfg.BucketCount).Collect()
	if len(buckets) == 0 {
		return nil, fmt.Errorf("no buckets could be aggregated from %d samples", len(samples))
	}
	// Buckets arrive in stride-offset order, most recent first; plotting
	// wants chronological order.
	sort.Slice(buckets, func(a, b int) bool {
		return buckets[a].Timestamp < buckets[b].Timestamp
	})

	xt, yt, maxValue, err := transforms(buckets, cfg)
	if err != nil {
		return nil, err
	}

	children := []scene.Node{}
	children = append(children, intervalBlocks(divisions, xt, cfg)...)
	children = append(children, gridlines(yt, maxValue, cfg)...)

	region, err := scene.NewGraphRegion(buckets, scene.ColumnQ1, scene.ColumnQ3, xt, yt,
		fillStyle(cfg.Palette.Region, 0.5))
	if err != nil {
		return nil, err
	}
	children = append(children, region)

	for _, curve := range []struct {
		column string
		style  *style.Style
	}{
		{scene.ColumnConsumption, lineStyle(cfg.Palette.Consumption, 2)},
		{scene.ColumnAverage, lineStyle(cfg.Palette.Average, 1.5)},
		{scene.ColumnQ1, lineStyle(cfg.Palette.Quartile, 1)},
		{scene.ColumnQ3, lineStyle(cfg.Palette.Quartile, 1)},
	} {
		line, err := scene.NewGraphLine(buckets, curve.column, xt, yt, curve.style)
		if err != nil {
			return nil, err
		}
		children = append(children, line)
	}

	overlayColumns := []scene.OverlayColumn{
		{Column: scene.ColumnConsumption, Caption: "Consumption", Style: fillStyle(cfg.Palette.Consumption, 1)},
		{Column: scene.ColumnAverage, Caption: "Average", Style: fillStyle(cfg.Palette.Average, 1)},
		{Column: scene.ColumnQ1, Caption: "First quartile", Style: fillStyle(cfg.Palette.Quartile, 1)},
		{Column: scene.ColumnQ3, Caption: "Third quartile", Style: fillStyle(cfg.Palette.Quartile, 1)},
	}
	for _, bucket := range buckets {
		overlay, err := scene.NewGraphInfoOverlay(bucket, overlayColumns, xt, yt, cfg.HeightPx,
			lineStyle(cfg.Palette.Guide, 1), fillStyle(cfg.Palette.Guide, 1))
		if err != nil {
			return nil, err
		}
		children = append(children, overlay)
	}

	return scene.NewDocument(cfg.WidthPx, cfg.HeightPx, RootClass, children...), nil
}

// Render builds the chart and serializes it.  No partial SVG is ever
// returned: fatal errors abort before serialization begins.
func Render(samples []stats.Sample, divisions []division.Division, cfg Config) (string, error) {
	doc, err := Build(samples, divisions, cfg)
	if err != nil {
		return "", err
	}
	return scene.Render(doc), nil
}

// transforms derives the composed data-to-device transforms from the
// bucketed series' time and value ranges.  The value range is anchored at
// zero (or below, should a column dip negative) so that gridlines at
// multiples of the division interval stay on-chart.
func transforms(buckets []stats.StatSample, cfg Config) (xt, yt axis.Transform, maxValue float64, err error) {
	minValue, maxValue := 0.0, buckets[0].Current
	for _, b := range buckets {
		for _, v := range []float64{b.Current, b.Average, b.Q1, b.Q3} {
			if v < minValue {
				minValue = v
			}
			if v > maxValue {
				maxValue = v
			}
		}
	}
	xData, err := axis.FromRange(float64(buckets[0].Timestamp), float64(buckets[len(buckets)-1].Timestamp))
	if err != nil {
		return xt, yt, 0, err
	}
	xDevice, err := axis.FromRange(0, cfg.WidthPx)
	if err != nil {
		return xt, yt, 0, err
	}
	yData, err := axis.FromRange(minValue, maxValue)
	if err != nil {
		return xt, yt, 0, err
	}
	// The device y range descends: larger values render nearer the top.
	yDevice, err := axis.FromRange(cfg.HeightPx, 0)
	if err != nil {
		return xt, yt, 0, err
	}
	return xData.ApplyDisplay(xDevice), yData.ApplyDisplay(yDevice), maxValue, nil
}

// intervalBlocks shades each consecutive division pair, alternating between
// a tinted and an untinted block.
func intervalBlocks(divisions []division.Division, xt axis.Transform, cfg Config) []scene.Node {
	blockStyles := []*style.Style{
		fillStyle(cfg.Palette.Block, 0.06),
		fillStyle(cfg.Palette.Block, 0),
	}
	captionStyle := fillStyle(cfg.Palette.Caption, 0.8)
	labelStyle := fillStyle(cfg.Palette.Guide, 1)
	ret := []scene.Node{}
	for i := 0; i+1 < len(divisions); i++ {
		ret = append(ret, scene.NewIntervalBlock(
			xt.Map(float64(divisions[i].Boundary)),
			xt.Map(float64(divisions[i+1].Boundary)),
			cfg.HeightPx,
			divisions[i].Label,
			blockStyles[i%2],
			captionStyle,
			labelStyle,
		))
	}
	return ret
}

// gridlines places a horizontal axis at each multiple of the division
// interval from zero through the value maximum.
func gridlines(yt axis.Transform, maxValue float64, cfg Config) []scene.Node {
	ret := []scene.Node{}
	if maxValue <= 0 {
		return ret
	}
	interval := axis.DivisionInterval(maxValue, cfg.GridlineCount)
	for k := 0; ; k++ {
		v := float64(k) * interval
		if v > maxValue {
			break
		}
		ret = append(ret, scene.NewHorizontalAxis(yt.Map(v), 0, cfg.WidthPx, v,
			lineStyle(cfg.Palette.Gridline, 1), fillStyle(cfg.Palette.Guide, 1)))
	}
	return ret
}
