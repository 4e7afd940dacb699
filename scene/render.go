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
	"strconv"
	"strings"

	"github.com/google/safehtml"
	pathsegment "github.com/hackhitchin/hh-wp-energy-graph/path_segment"
	"github.com/hackhitchin/hh-wp-energy-graph/style"
)

// Render walks the provided scene graph depth-first and serializes it to a
// self-contained SVG document string.  Children render in insertion order,
// so later siblings draw on top.  All validation happens at node
// construction; Render itself cannot fail.
func Render(doc *Document) string {
	var b strings.Builder
	writeDocument(&b, doc)
	return b.String()
}

func writeDocument(b *strings.Builder, doc *Document) {
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg"`)
	writeNumAttr(b, "width", doc.WidthPx)
	writeNumAttr(b, "height", doc.HeightPx)
	writeAttr(b, "viewBox", "0 0 "+formatNumber(doc.WidthPx)+" "+formatNumber(doc.HeightPx))
	if doc.Class != "" {
		writeAttr(b, "class", doc.Class)
	}
	b.WriteString(">")
	for _, child := range doc.children {
		writeNode(b, child)
	}
	b.WriteString("</svg>")
}

// writeNode is the single render dispatch over the Node sum.
func writeNode(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case *Document:
		writeDocument(b, v)
	case *Group:
		writeGroup(b, v)
	case *Rect:
		b.WriteString("<rect")
		writeNumAttr(b, "x", v.X)
		writeNumAttr(b, "y", v.Y)
		writeNumAttr(b, "width", v.Width)
		writeNumAttr(b, "height", v.Height)
		writeStyle(b, v.Style)
		b.WriteString("/>")
	case *Line:
		b.WriteString("<line")
		writeNumAttr(b, "x1", v.X1)
		writeNumAttr(b, "y1", v.Y1)
		writeNumAttr(b, "x2", v.X2)
		writeNumAttr(b, "y2", v.Y2)
		writeStyle(b, v.Style)
		b.WriteString("/>")
	case *Text:
		b.WriteString("<text")
		writeNumAttr(b, "x", v.X)
		writeNumAttr(b, "y", v.Y)
		if v.Anchor != "" {
			writeAttr(b, "text-anchor", v.Anchor)
		}
		if v.Class != "" {
			writeAttr(b, "class", v.Class)
		}
		writeStyle(b, v.Style)
		b.WriteString(">")
		b.WriteString(escape(v.Content))
		b.WriteString("</text>")
	case *Path:
		b.WriteString("<path")
		writeAttr(b, "d", pathData(v))
		writeStyle(b, v.Style)
		b.WriteString("/>")
	case *DataPoint:
		b.WriteString("<circle")
		writeNumAttr(b, "cx", v.X)
		writeNumAttr(b, "cy", v.Y)
		writeNumAttr(b, "r", v.Radius)
		writeAttr(b, "class", "data-point")
		writeStyle(b, v.Style)
		b.WriteString("><title>")
		b.WriteString(escape(v.Tooltip))
		b.WriteString("</title></circle>")
	case *IntervalBlock:
		writeGroup(b, &v.Group)
	case *HorizontalAxis:
		writeGroup(b, &v.Group)
	case *GraphLine:
		writeGroup(b, &v.Group)
	case *GraphRegion:
		writeGroup(b, &v.Group)
	case *GraphInfoOverlay:
		writeGroup(b, &v.Group)
	}
}

// writeGroup is the shared container traversal: every node kind carrying an
// ordered child list delegates here.
func writeGroup(b *strings.Builder, g *Group) {
	b.WriteString("<g")
	if g.Class != "" {
		writeAttr(b, "class", g.Class)
	}
	b.WriteString(">")
	for _, child := range g.children {
		writeNode(b, child)
	}
	b.WriteString("</g>")
}

// pathData concatenates the Path's segments into one d attribute: a move-to
// the first segment's start, each segment's commands, a joining line-to
// before each subsequent segment, and a close-path when the Path is closed.
// The one-shot command iterators are consumed here; segments re-evaluate
// deterministically, so a fresh render produces identical data.
func pathData(p *Path) string {
	parts := []string{}
	for i, seg := range p.Segments {
		start := pathsegment.MoveTo(seg.Start())
		if i > 0 {
			start.Op = 'L'
		}
		parts = append(parts, start.String())
		commands := seg.Commands()
		for {
			cmd, ok := commands.Next()
			if !ok {
				break
			}
			parts = append(parts, cmd.String())
		}
	}
	if p.Closed {
		parts = append(parts, "Z")
	}
	return strings.Join(parts, " ")
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(escape(value))
	b.WriteString(`"`)
}

func writeNumAttr(b *strings.Builder, name string, v float64) {
	writeAttr(b, name, formatNumber(v))
}

func writeStyle(b *strings.Builder, st *style.Style) {
	if st == nil {
		return
	}
	for _, attr := range st.Attrs() {
		writeAttr(b, attr.Name, attr.Value)
	}
}

func escape(s string) string {
	return safehtml.HTMLEscaped(s).String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
