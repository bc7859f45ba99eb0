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
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"github.com/Nirajsah/pdf.js/postscript/charstring"
)

type pathSegment struct {
	cmd    path.Command
	points []vec.Vec2
}

func segments(g *Glyph) []pathSegment {
	var res []pathSegment
	for cmd, pts := range g.Path() {
		res = append(res, pathSegment{cmd: cmd, points: append([]vec.Vec2(nil), pts...)})
	}
	return res
}

func pt(x, y float64) []vec.Vec2 {
	return []vec.Vec2{{X: x, Y: y}}
}

func TestGlyphPath(t *testing.T) {
	g := &Glyph{WidthX: 500}
	if segs := segments(g); segs != nil {
		t.Errorf("empty glyph has segments %v", segs)
	}
	if !g.IsBlank() {
		t.Error("empty glyph is not blank")
	}

	g.MoveTo(0, 0)
	g.LineTo(10, 0)
	g.ClosePath()
	g.MoveTo(20, 20)
	g.CurveTo(25, 20, 30, 25, 30, 30)
	g.LineTo(20, 30)

	want := []pathSegment{
		{path.CmdMoveTo, pt(0, 0)},
		{path.CmdLineTo, pt(10, 0)},
		{path.CmdClose, nil},
		{path.CmdMoveTo, pt(20, 20)},
		{path.CmdCubeTo, []vec.Vec2{{X: 25, Y: 20}, {X: 30, Y: 25}, {X: 30, Y: 30}}},
		{path.CmdLineTo, pt(20, 30)},
	}
	if d := cmp.Diff(want, segments(g), cmp.AllowUnexported(pathSegment{})); d != "" {
		t.Error(d)
	}
}

func TestSetOutline(t *testing.T) {
	num := charstring.Num
	cmd := charstring.Cmd
	tests := []struct {
		name     string
		commands []charstring.Token
		expected []pathSegment
	}{
		{
			name: "blank",
			commands: []charstring.Token{
				num(10), num(0), cmd(charstring.RMoveTo),
				cmd(charstring.EndChar),
			},
			expected: nil,
		},
		{
			name: "line",
			commands: []charstring.Token{
				num(15), num(5), cmd(charstring.RMoveTo),
				num(20), num(0), cmd(charstring.RLineTo),
				cmd(charstring.EndChar),
			},
			expected: []pathSegment{
				{path.CmdMoveTo, pt(15, 5)},
				{path.CmdLineTo, pt(35, 5)},
				{path.CmdClose, nil},
			},
		},
		{
			name: "width and stems",
			commands: []charstring.Token{
				num(-50), num(0), num(20), num(480), num(20), cmd(charstring.HStem),
				num(100), cmd(charstring.HMoveTo),
				num(10), cmd(charstring.VLineTo),
				num(10), num(0), num(0), num(-10), cmd(charstring.RLineTo),
				cmd(charstring.EndChar),
			},
			expected: []pathSegment{
				{path.CmdMoveTo, pt(100, 0)},
				{path.CmdLineTo, pt(100, 10)},
				{path.CmdLineTo, pt(110, 10)},
				{path.CmdLineTo, pt(110, 0)},
				{path.CmdClose, nil},
			},
		},
		{
			name: "curves",
			commands: []charstring.Token{
				num(0), cmd(charstring.VMoveTo),
				num(10), num(20), num(30), num(40), cmd(charstring.VHCurveTo),
				num(1), num(2), num(3), num(4), cmd(charstring.HVCurveTo),
				cmd(charstring.EndChar),
			},
			expected: []pathSegment{
				{path.CmdMoveTo, pt(0, 0)},
				{path.CmdCubeTo, []vec.Vec2{{X: 0, Y: 10}, {X: 20, Y: 40}, {X: 60, Y: 40}}},
				{path.CmdCubeTo, []vec.Vec2{{X: 61, Y: 40}, {X: 63, Y: 43}, {X: 63, Y: 47}}},
				{path.CmdClose, nil},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Glyph{Commands: tt.commands}
			g.setOutline()

			if d := cmp.Diff(tt.expected, segments(g), cmp.AllowUnexported(pathSegment{})); d != "" {
				t.Error(d)
			}
			if tt.expected == nil && !g.IsBlank() {
				t.Error("glyph without segments is not blank")
			}
		})
	}
}
