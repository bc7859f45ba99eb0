// pdf.js/type1 - decoding of embedded Type 1 font programs
// Copyright (C) 2026  The pdf.js Go authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package type1

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"github.com/Nirajsah/pdf.js/postscript/charstring"
)

// Glyph represents a glyph in a Type 1 font.
type Glyph struct {
	// Commands is the flattened CharString of the glyph.
	Commands []charstring.Token

	WidthX  float64
	Outline *path.Data
}

// NewGlyph creates a new glyph with the given name and width.
func (f *Font) NewGlyph(name string, width float64) *Glyph {
	g := &Glyph{
		WidthX: width,
	}
	f.Glyphs[name] = g
	return g
}

// IsBlank returns true if the glyph has no visible outline.
func (g *Glyph) IsBlank() bool {
	return g.Outline == nil || g.Outline.IsBlank()
}

// MoveTo starts a new sub-path and moves the current point to (x, y).
func (g *Glyph) MoveTo(x, y float64) {
	if g.Outline == nil {
		g.Outline = &path.Data{}
	}
	g.Outline.MoveTo(vec.Vec2{X: x, Y: y})
}

// LineTo adds a straight line to the current sub-path.
func (g *Glyph) LineTo(x, y float64) {
	if g.Outline == nil {
		g.Outline = &path.Data{}
	}
	g.Outline.LineTo(vec.Vec2{X: x, Y: y})
}

// CurveTo adds a cubic Bezier curve to the current sub-path.
func (g *Glyph) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	if g.Outline == nil {
		g.Outline = &path.Data{}
	}
	g.Outline.CubeTo(vec.Vec2{X: x1, Y: y1}, vec.Vec2{X: x2, Y: y2}, vec.Vec2{X: x3, Y: y3})
}

// ClosePath closes the current sub-path.
func (g *Glyph) ClosePath() {
	if g.Outline == nil {
		g.Outline = &path.Data{}
	}
	g.Outline.Close()
}

// Path returns the glyph outline as a path.
func (g *Glyph) Path() path.Path {
	if g.Outline == nil {
		return func(yield func(path.Command, []vec.Vec2) bool) {}
	}
	return g.Outline.Iter()
}

// setOutline constructs g.Outline from the flattened commands.
// A moveto only starts a sub-path once a segment is drawn, so that glyphs
// without segments stay blank.
func (g *Glyph) setOutline() {
	g.Outline = nil

	var x, y float64
	isOpen := false
	startSegment := func() {
		if !isOpen {
			g.MoveTo(x, y)
			isOpen = true
		}
	}
	closePath := func() {
		if isOpen {
			g.ClosePath()
			isOpen = false
		}
	}

	var args []float64
	first := true
	for _, t := range g.Commands {
		if t.IsNumber() {
			args = append(args, t.Val)
			continue
		}
		if first && hasWidthOperand(t.Op, len(args)) {
			args = args[1:]
		}
		first = false

		switch t.Op {
		case charstring.RMoveTo:
			closePath()
			if len(args) >= 2 {
				x += args[0]
				y += args[1]
			}
		case charstring.HMoveTo:
			closePath()
			if len(args) >= 1 {
				x += args[0]
			}
		case charstring.VMoveTo:
			closePath()
			if len(args) >= 1 {
				y += args[0]
			}
		case charstring.RLineTo:
			for len(args) >= 2 {
				startSegment()
				x += args[0]
				y += args[1]
				g.LineTo(x, y)
				args = args[2:]
			}
		case charstring.HLineTo:
			if len(args) >= 1 {
				startSegment()
				x += args[0]
				g.LineTo(x, y)
			}
		case charstring.VLineTo:
			if len(args) >= 1 {
				startSegment()
				y += args[0]
				g.LineTo(x, y)
			}
		case charstring.RRCurveTo:
			for len(args) >= 6 {
				startSegment()
				x1 := x + args[0]
				y1 := y + args[1]
				x2 := x1 + args[2]
				y2 := y1 + args[3]
				x = x2 + args[4]
				y = y2 + args[5]
				g.CurveTo(x1, y1, x2, y2, x, y)
				args = args[6:]
			}
		case charstring.VHCurveTo:
			if len(args) >= 4 {
				startSegment()
				x1 := x
				y1 := y + args[0]
				x2 := x1 + args[1]
				y2 := y1 + args[2]
				x = x2 + args[3]
				y = y2
				g.CurveTo(x1, y1, x2, y2, x, y)
			}
		case charstring.HVCurveTo:
			if len(args) >= 4 {
				startSegment()
				x1 := x + args[0]
				y1 := y
				x2 := x1 + args[1]
				y2 := y1 + args[2]
				x = x2
				y = y2 + args[3]
				g.CurveTo(x1, y1, x2, y2, x, y)
			}
		case charstring.EndChar:
			closePath()
		}
		args = args[:0]
	}
}

// hasWidthOperand reports whether the first operator of a flattened
// CharString is preceded by the optional width operand.
func hasWidthOperand(op charstring.Op, n int) bool {
	switch op {
	case charstring.HStem, charstring.VStem, charstring.RLineTo:
		return n%2 == 1
	case charstring.RMoveTo:
		return n > 2
	case charstring.HMoveTo, charstring.VMoveTo:
		return n > 1
	case charstring.EndChar:
		return n > 0
	}
	return false
}
