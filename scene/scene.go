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

// Package scene provides the renderable node hierarchy for energy charts
// and its SVG serialization.
//
// Node is a closed sum over the primitive variants (Document, Group, Rect,
// Line, Text, Path) and the chart composites (DataPoint, IntervalBlock,
// HorizontalAxis, GraphLine, GraphRegion, GraphInfoOverlay).  A scene graph
// is a strict tree: the Document is the sole root and owns all descendants
// for the lifetime of one render call.  Container variants receive their
// ordered children once at construction and never reorder or remove them;
// insertion order is z-order, so later children draw on top.
//
// Composites are pure assemblies: their constructors project data through
// axis transforms and build primitive children immediately, failing with
// *MissingFieldError or *pathsegment.UndefinedTangentError before any
// markup exists.  Render then only walks and serializes.
package scene

import (
	"fmt"

	pathsegment "github.com/hackhitchin/hh-wp-energy-graph/path_segment"
	"github.com/hackhitchin/hh-wp-energy-graph/stats"
	"github.com/hackhitchin/hh-wp-energy-graph/style"
)

// Node is implemented exactly by the scene-graph variants in this package.
type Node interface {
	node()
}

// Document is the root of a scene graph.  It renders as a self-contained
// <svg> element with explicit pixel dimensions and a matching viewBox.
type Document struct {
	WidthPx  float64
	HeightPx float64
	// Class is the fixed CSS class marker on the root for host styling.
	Class    string
	children []Node
}

// NewDocument returns a Document with the provided dimensions, root class,
// and ordered children.
func NewDocument(widthPx, heightPx float64, class string, children ...Node) *Document {
	return &Document{
		WidthPx:  widthPx,
		HeightPx: heightPx,
		Class:    class,
		children: children,
	}
}

func (*Document) node() {}

// Group is an ordered container rendering as a <g> element.
type Group struct {
	Class    string
	children []Node
}

// NewGroup returns a Group with the provided class and ordered children.
func NewGroup(class string, children ...Node) *Group {
	return &Group{
		Class:    class,
		children: children,
	}
}

func (*Group) node() {}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y          float64
	Width, Height float64
	Style         *style.Style
}

func (*Rect) node() {}

// Line is a straight stroke between two points.
type Line struct {
	X1, Y1 float64
	X2, Y2 float64
	Style  *style.Style
}

func (*Line) node() {}

// Text is a positioned text label.  Anchor, if set, becomes the SVG
// text-anchor attribute.
type Text struct {
	X, Y    float64
	Content string
	Class   string
	Anchor  string
	Style   *style.Style
}

func (*Text) node() {}

// Path renders one or more path segments as a single <path> element.  Each
// segment after the first is joined to its predecessor with a line-to; a
// closed Path appends a close-path command, producing a fillable shape.
type Path struct {
	Segments []pathsegment.Segment
	Closed   bool
	Style    *style.Style
}

func (*Path) node() {}

// MissingFieldError reports a request to plot a column that a StatSample
// series does not carry, or composite inputs whose lengths disagree.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("stat samples carry no %q field", e.Field)
}

// Column names addressing the numeric fields of a StatSample.
const (
	ColumnConsumption = "consumption"
	ColumnAverage     = "average"
	ColumnQ1          = "q1"
	ColumnQ3          = "q3"
)

// columnAccessor resolves a column name to a StatSample field accessor,
// failing with a *MissingFieldError for unknown names.
func columnAccessor(name string) (func(stats.StatSample) float64, error) {
	switch name {
	case ColumnConsumption:
		return func(ss stats.StatSample) float64 { return ss.Current }, nil
	case ColumnAverage:
		return func(ss stats.StatSample) float64 { return ss.Average }, nil
	case ColumnQ1:
		return func(ss stats.StatSample) float64 { return ss.Q1 }, nil
	case ColumnQ3:
		return func(ss stats.StatSample) float64 { return ss.Q3 }, nil
	default:
		return nil, &MissingFieldError{Field: name}
	}
}
