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

package scene

import (
	"fmt"
	"strconv"
	"time"

	"github.com/hackhitchin/hh-wp-energy-graph/axis"
	pathsegment "github.com/hackhitchin/hh-wp-energy-graph/path_segment"
	"github.com/hackhitchin/hh-wp-energy-graph/stats"
	"github.com/hackhitchin/hh-wp-energy-graph/style"
)

// DataPoint is a styled hover marker: a circle carrying a tooltip title.
type DataPoint struct {
	X, Y    float64
	Radius  float64
	Tooltip string
	Style   *style.Style
}

func (*DataPoint) node() {}

// NewDataPoint returns a DataPoint at the provided device coordinates.
func NewDataPoint(x, y, radius float64, tooltip string, st *style.Style) *DataPoint {
	return &DataPoint{
		X:       x,
		Y:       y,
		Radius:  radius,
		Tooltip: tooltip,
		Style:   st,
	}
}

const captionHeightPx = 18

// IntervalBlock shades a calendar-aligned sub-period of the chart: a
// background rectangle spanning an x-range and the full chart height, with
// a caption box and label along its lower edge.
type IntervalBlock struct {
	Group
}

// NewIntervalBlock returns an IntervalBlock covering device x-range
// [x0, x1) over the full chart height.
func NewIntervalBlock(x0, x1, heightPx float64, label string, blockStyle, captionStyle, labelStyle *style.Style) *IntervalBlock {
	return &IntervalBlock{
		Group: Group{
			Class: "interval-block",
			children: []Node{
				&Rect{
					X:      x0,
					Y:      0,
					Width:  x1 - x0,
					Height: heightPx,
					Style:  blockStyle,
				},
				&Rect{
					X:      x0,
					Y:      heightPx - captionHeightPx,
					Width:  x1 - x0,
					Height: captionHeightPx,
					Style:  captionStyle,
				},
				&Text{
					X:       (x0 + x1) / 2,
					Y:       heightPx - 5,
					Content: label,
					Anchor:  "middle",
					Style:   labelStyle,
				},
			},
		},
	}
}

// HorizontalAxis is one horizontal gridline with its numeric label.
type HorizontalAxis struct {
	Group
}

// NewHorizontalAxis returns a gridline at device y spanning [x0, x1], with
// value as its label.
func NewHorizontalAxis(y, x0, x1, value float64, lineStyle, labelStyle *style.Style) *HorizontalAxis {
	return &HorizontalAxis{
		Group: Group{
			Class: "gridline",
			children: []Node{
				&Line{
					X1:    x0,
					Y1:    y,
					X2:    x1,
					Y2:    y,
					Style: lineStyle,
				},
				&Text{
					X:       x0 + 2,
					Y:       y - 3,
					Content: strconv.FormatFloat(value, 'g', -1, 64),
					Style:   labelStyle,
				},
			},
		},
	}
}

// projectColumn maps one named column of the series through the composed
// data-to-device transforms into device points.
func projectColumn(series []stats.StatSample, column string, xt, yt axis.Transform) ([]pathsegment.Point, error) {
	value, err := columnAccessor(column)
	if err != nil {
		return nil, err
	}
	points := make([]pathsegment.Point, len(series))
	for i, ss := range series {
		points[i] = pathsegment.Point{
			X: xt.Map(float64(ss.Timestamp)),
			Y: yt.Map(value(ss)),
		}
	}
	return points, nil
}

// GraphLine is one smoothed curve: a named StatSample column projected into
// device space and wrapped in a cubic path.
type GraphLine struct {
	Group
}

// NewGraphLine builds the curve for the named column.  xt and yt must
// already map data space to device space.  The series must be in ascending
// timestamp order; a non-monotonic time axis surfaces as an
// *pathsegment.UndefinedTangentError.
func NewGraphLine(series []stats.StatSample, column string, xt, yt axis.Transform, st *style.Style) (*GraphLine, error) {
	points, err := projectColumn(series, column, xt, yt)
	if err != nil {
		return nil, err
	}
	curve, err := pathsegment.NewCubic(points)
	if err != nil {
		return nil, err
	}
	if err := curve.Validate(); err != nil {
		return nil, err
	}
	return &GraphLine{
		Group: Group{
			Class: "graph-line graph-line-" + column,
			children: []Node{
				&Path{
					Segments: []pathsegment.Segment{curve},
					Style:    st,
				},
			},
		},
	}, nil
}

// GraphRegion is a shaded band between a lower-bound column and an
// upper-bound column: the lower-bound points reversed, concatenated with the
// forward upper-bound points, as two cubic segments in one closed path.
type GraphRegion struct {
	Group
}

// NewGraphRegion builds the band between lowerColumn and upperColumn.
func NewGraphRegion(series []stats.StatSample, lowerColumn, upperColumn string, xt, yt axis.Transform, st *style.Style) (*GraphRegion, error) {
	lower, err := projectColumn(series, lowerColumn, xt, yt)
	if err != nil {
		return nil, err
	}
	upper, err := projectColumn(series, upperColumn, xt, yt)
	if err != nil {
		return nil, err
	}
	if len(lower) != len(upper) {
		return nil, &MissingFieldError{Field: lowerColumn + "/" + upperColumn}
	}
	reversed := make([]pathsegment.Point, len(lower))
	for i, p := range lower {
		reversed[len(lower)-1-i] = p
	}
	back, err := pathsegment.NewCubic(reversed)
	if err != nil {
		return nil, err
	}
	forth, err := pathsegment.NewCubic(upper)
	if err != nil {
		return nil, err
	}
	for _, curve := range []*pathsegment.Cubic{back, forth} {
		if err := curve.Validate(); err != nil {
			return nil, err
		}
	}
	return &GraphRegion{
		Group: Group{
			Class: "graph-region",
			children: []Node{
				&Path{
					Segments: []pathsegment.Segment{back, forth},
					Closed:   true,
					Style:    st,
				},
			},
		},
	}, nil
}

// OverlayColumn names one tracked column of a GraphInfoOverlay along with
// its caption and marker style.
type OverlayColumn struct {
	Column  string
	Caption string
	Style   *style.Style
}

const overlayTimestampFormat = "Mon 15:04, 2 Jan 2006"

// GraphInfoOverlay is the per-bucket hover readout: a vertical guide line, a
// timestamp label, and one marker and caption per tracked column.  It emits
// static markup plus a CSS class hook only; showing and hiding on hover is
// the embedding page's concern.
type GraphInfoOverlay struct {
	Group
}

// NewGraphInfoOverlay builds the overlay for one StatSample.
func NewGraphInfoOverlay(ss stats.StatSample, columns []OverlayColumn, xt, yt axis.Transform, heightPx float64, guideStyle, labelStyle *style.Style) (*GraphInfoOverlay, error) {
	x := xt.Map(float64(ss.Timestamp))
	when := time.Unix(ss.Timestamp, 0).UTC()
	children := []Node{
		&Line{
			X1:    x,
			Y1:    0,
			X2:    x,
			Y2:    heightPx,
			Style: guideStyle,
		},
		&Text{
			X:       x + 4,
			Y:       12,
			Content: when.Format(overlayTimestampFormat),
			Class:   "overlay-timestamp",
			Style:   labelStyle,
		},
	}
	for i, col := range columns {
		value, err := columnAccessor(col.Column)
		if err != nil {
			return nil, err
		}
		v := value(ss)
		caption := fmt.Sprintf("%s: %.1f W", col.Caption, v)
		children = append(children,
			NewDataPoint(x, yt.Map(v), 3, caption, col.Style),
			&Text{
				X:       x + 4,
				Y:       26 + float64(i)*14,
				Content: caption,
				Class:   "overlay-caption",
				Style:   labelStyle,
			},
		)
	}
	return &GraphInfoOverlay{
		Group: Group{
			Class: "hover-overlay",
			children: children,
		},
	}, nil
}
