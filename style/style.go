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

// Package style specifies SVG presentation attributes for renderable nodes.
//
// A Style is an immutable value shared by reference across many nodes; a
// render pass never mutates one.  Attribute names and values follow SVG
// conventions, e.g.
// https://developer.mozilla.org/en-US/docs/Web/SVG/Attribute.
package style

import (
	"fmt"
	"strconv"
)

// Style carries the stroke and fill presentation of a node.
type Style struct {
	Stroke        string
	Fill          string
	StrokeWidth   float64
	StrokeOpacity float64
	FillOpacity   float64
}

// Default returns the default Style: black stroke and fill, unit width and
// opacities.
func Default() *Style {
	return &Style{
		Stroke:        "black",
		Fill:          "black",
		StrokeWidth:   1,
		StrokeOpacity: 1,
		FillOpacity:   1,
	}
}

// Attr is a single SVG attribute name/value pair.
type Attr struct {
	Name, Value string
}

// Attrs returns the receiver's SVG presentation attributes in a fixed
// emission order.
func (s *Style) Attrs() []Attr {
	return []Attr{
		{Name: "stroke", Value: s.Stroke},
		{Name: "fill", Value: s.Fill},
		{Name: "stroke-width", Value: formatNumber(s.StrokeWidth)},
		{Name: "stroke-opacity", Value: formatNumber(s.StrokeOpacity)},
		{Name: "fill-opacity", Value: formatNumber(s.FillOpacity)},
	}
}

// Px formats the provided value as a pixel specifier.
func Px(valPx float64) string {
	return fmt.Sprintf("%.2fpx", valPx)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
