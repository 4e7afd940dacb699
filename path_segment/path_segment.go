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

// Package pathsegment converts ordered point lists into SVG path command
// sequences.
//
// A Segment is constructed from one or more Points in device coordinates.
// Its Start is the first point; Commands yields a finite, produce-once
// sequence of absolute drawing commands that, emitted after a move-to the
// start, draw a path visiting every remaining point in order.  Each call to
// Commands returns a fresh iterator: segments hold no external state and
// re-evaluate deterministically.
//
// Three interpolation variants are provided.  Linear emits a line-to per
// point.  Quadratic emits an initial quadratic curve whose control point is
// the midpoint of the first two points, then smooth (T) continuations that
// inherit reflected control points.  Cubic emits smooth (S) continuations
// whose incoming control handle comes from a Catmull-Rom-style tangent
// estimate over each point's neighbors; the outgoing handle is implicit in
// the smooth-continuation rule, so only one control point is computed per
// segment.  The final point reuses itself as its own "next" neighbor, which
// closes the curve without a trailing straight segment.
package pathsegment

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a position in device coordinates.
type Point struct {
	X, Y float64
}

// Command is one absolute SVG path drawing command.
type Command struct {
	// Op is the SVG command letter: 'M', 'L', 'Q', 'T', or 'S'.
	Op byte
	// Args are the command's coordinate arguments, already ordered for
	// emission (control points before endpoints).
	Args []float64
}

// String renders the receiver in SVG path syntax.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, string(c.Op))
	for _, arg := range c.Args {
		parts = append(parts, strconv.FormatFloat(arg, 'g', -1, 64))
	}
	return strings.Join(parts, " ")
}

// MoveTo returns the move-to command for the provided point.  Serialization
// emits it before a Segment's Commands.
func MoveTo(p Point) Command {
	return Command{Op: 'M', Args: []float64{p.X, p.Y}}
}

// CommandIterator is a finite, non-restartable drawing command sequence.
type CommandIterator struct {
	next func() (Command, bool)
}

// Next produces the next command, returning false when the sequence is
// exhausted.
func (it *CommandIterator) Next() (Command, bool) {
	return it.next()
}

// Segment is an ordered, non-empty run of points with a drawing-command
// rendering.
type Segment interface {
	// Start returns the segment's first point.
	Start() Point
	// Commands returns a fresh iterator over the commands connecting the
	// remaining points.
	Commands() *CommandIterator
}

// UndefinedTangentError reports a cubic tangent estimate whose neighbor
// points share an x-coordinate, leaving the gradient undefined.
type UndefinedTangentError struct {
	X float64
}

func (e *UndefinedTangentError) Error() string {
	return fmt.Sprintf("tangent undefined: neighbor points share x = %g", e.X)
}

// Linear connects its points with straight lines.
type Linear struct {
	points []Point
}

// NewLinear returns a Linear over the provided points, which must be
// non-empty.
func NewLinear(points []Point) (*Linear, error) {
	if err := checkNonEmpty(points); err != nil {
		return nil, err
	}
	return &Linear{points: points}, nil
}

// Start returns the segment's first point.
func (l *Linear) Start() Point {
	return l.points[0]
}

// Commands yields one line-to per remaining point.
func (l *Linear) Commands() *CommandIterator {
	idx := 1
	return &CommandIterator{next: func() (Command, bool) {
		if idx >= len(l.points) {
			return Command{}, false
		}
		p := l.points[idx]
		idx++
		return Command{Op: 'L', Args: []float64{p.X, p.Y}}, true
	}}
}

// Quadratic connects its points with quadratic curves, using a midpoint
// control for a smooth start and reflected controls thereafter.
type Quadratic struct {
	points []Point
}

// NewQuadratic returns a Quadratic over the provided points, which must be
// non-empty.
func NewQuadratic(points []Point) (*Quadratic, error) {
	if err := checkNonEmpty(points); err != nil {
		return nil, err
	}
	return &Quadratic{points: points}, nil
}

// Start returns the segment's first point.
func (q *Quadratic) Start() Point {
	return q.points[0]
}

// Commands yields an explicit quadratic curve to the second point, with the
// control at the midpoint of the first two points, then a smooth
// continuation per remaining point.
func (q *Quadratic) Commands() *CommandIterator {
	idx := 1
	return &CommandIterator{next: func() (Command, bool) {
		if idx >= len(q.points) {
			return Command{}, false
		}
		p := q.points[idx]
		if idx == 1 {
			ctrl := Point{
				X: (q.points[0].X + p.X) / 2,
				Y: (q.points[0].Y + p.Y) / 2,
			}
			idx++
			return Command{Op: 'Q', Args: []float64{ctrl.X, ctrl.Y, p.X, p.Y}}, true
		}
		idx++
		return Command{Op: 'T', Args: []float64{p.X, p.Y}}, true
	}}
}

// Cubic connects its points with smooth cubic curves whose incoming control
// handles derive from a Catmull-Rom-style tangent estimate.
type Cubic struct {
	points []Point
}

// NewCubic returns a Cubic over the provided points, which must be
// non-empty.
func NewCubic(points []Point) (*Cubic, error) {
	if err := checkNonEmpty(points); err != nil {
		return nil, err
	}
	return &Cubic{points: points}, nil
}

// Start returns the segment's first point.
func (c *Cubic) Start() Point {
	return c.points[0]
}

// controlPoint estimates the incoming control handle for the segment ending
// at c.points[idx].  A vertical neighbor pair leaves the tangent undefined;
// the estimate then degrades to a flat tangent so that degenerate geometry
// still renders.  Validate exposes the stricter reading.
func (c *Cubic) controlPoint(idx int) Point {
	prev := c.points[idx-1]
	cur := c.points[idx]
	next := cur
	if idx+1 < len(c.points) {
		next = c.points[idx+1]
	}
	gradient := 0.0
	if next.X != prev.X {
		gradient = 0.5 * (next.Y - prev.Y) / (next.X - prev.X)
	}
	offset := cur.X - prev.X
	return Point{
		X: cur.X - 0.5*offset,
		Y: cur.Y - 0.5*offset*gradient,
	}
}

// Commands yields one smooth cubic continuation per remaining point,
// carrying that point's incoming control handle; the outgoing handle is the
// smooth-continuation reflection.
func (c *Cubic) Commands() *CommandIterator {
	idx := 1
	return &CommandIterator{next: func() (Command, bool) {
		if idx >= len(c.points) {
			return Command{}, false
		}
		ctrl := c.controlPoint(idx)
		p := c.points[idx]
		idx++
		return Command{Op: 'S', Args: []float64{ctrl.X, ctrl.Y, p.X, p.Y}}, true
	}}
}

// Validate reports an *UndefinedTangentError if any tangent estimate's
// neighbor pair shares an x-coordinate.  Command generation itself never
// divides by zero, but callers plotting against a strictly increasing axis
// should treat such geometry as malformed input.
func (c *Cubic) Validate() error {
	for idx := 1; idx < len(c.points); idx++ {
		prev := c.points[idx-1]
		next := c.points[idx]
		if idx+1 < len(c.points) {
			next = c.points[idx+1]
		}
		if next.X == prev.X {
			return &UndefinedTangentError{X: prev.X}
		}
	}
	return nil
}

func checkNonEmpty(points []Point) error {
	if len(points) == 0 {
		return fmt.Errorf("a path segment requires at least one point")
	}
	return nil
}
