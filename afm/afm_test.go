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

package afm

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"github.com/Nirajsah/pdf.js/postscript/type1"
)

func makeTestFont() *type1.Font {
	encoding := make([]string, 256)
	for i := range encoding {
		encoding[i] = ".notdef"
	}
	encoding[32] = "space"
	encoding[72] = "H"
	encoding[112] = "p"

	f := &type1.Font{
		FontInfo: &type1.FontInfo{
			FontName:           "Test-Regular",
			FullName:           "Test Regular",
			FamilyName:         "Test",
			Weight:             "Regular",
			ItalicAngle:        -12,
			UnderlinePosition:  -100,
			UnderlineThickness: 50,
			FontMatrix:         matrix.Matrix{0.001, 0, 0, 0.001, 0, 0},
		},
		Outlines: &type1.Outlines{
			Glyphs:   map[string]*type1.Glyph{},
			Encoding: encoding,
		},
	}
	f.NewGlyph(".notdef", 500)
	f.NewGlyph("space", 250)
	f.NewGlyph("unencoded", 100)

	h := f.NewGlyph("H", 700)
	h.MoveTo(50, 0)
	h.LineTo(650, 0)
	h.LineTo(650, 700)
	h.ClosePath()

	p := f.NewGlyph("p", 550)
	p.MoveTo(40, -200)
	p.LineTo(500, -200)
	p.LineTo(500, 480)
	p.ClosePath()

	return f
}

func TestFromFont(t *testing.T) {
	m := FromFont(makeTestFont())

	if d := cmp.Diff(rect.Rect{LLx: 40, LLy: -200, URx: 650, URy: 700}, m.FontBBox); d != "" {
		t.Error(d)
	}
	if m.CapHeight != 700 || m.XHeight != 0 || m.Ascent != 700 || m.Descent != -200 {
		t.Errorf("wrong vertical metrics %g %g %g %g", m.CapHeight, m.XHeight, m.Ascent, m.Descent)
	}
	if m.UnderlinePosition != -100 || m.UnderlineThickness != 50 {
		t.Errorf("wrong underline %g %g", m.UnderlinePosition, m.UnderlineThickness)
	}

	expected := map[string]*GlyphInfo{
		".notdef":   {WidthX: 500},
		"space":     {WidthX: 250},
		"unencoded": {WidthX: 100},
		"H":         {WidthX: 700, BBox: rect.Rect{LLx: 50, LLy: 0, URx: 650, URy: 700}},
		"p":         {WidthX: 550, BBox: rect.Rect{LLx: 40, LLy: -200, URx: 500, URy: 480}},
	}
	if d := cmp.Diff(expected, m.Glyphs); d != "" {
		t.Error(d)
	}

	glyphList := []string{".notdef", "space", "H", "p", "unencoded"}
	if d := cmp.Diff(glyphList, m.GlyphList()); d != "" {
		t.Error(d)
	}
}

func TestWrite(t *testing.T) {
	m := FromFont(makeTestFont())

	buf := &bytes.Buffer{}
	err := m.Write(buf)
	if err != nil {
		t.Fatal(err)
	}

	expected := `StartFontMetrics 4.1
FontName Test-Regular
FullName Test Regular
FamilyName Test
Weight Regular
EncodingScheme FontSpecific
FontBBox 40 -200 650 700
ItalicAngle -12
IsFixedPitch false
UnderlinePosition -100
UnderlineThickness 50
CapHeight 700
Ascender 700
Descender -200
StartCharMetrics 5
C -1 ; WX 500 ; N .notdef ; B 0 0 0 0 ;
C 32 ; WX 250 ; N space ; B 0 0 0 0 ;
C 72 ; WX 700 ; N H ; B 50 0 650 700 ;
C 112 ; WX 550 ; N p ; B 40 -200 500 480 ;
C -1 ; WX 100 ; N unencoded ; B 0 0 0 0 ;
EndCharMetrics
EndFontMetrics
`
	if d := cmp.Diff(expected, buf.String()); d != "" {
		t.Error(d)
	}
}

func TestNum(t *testing.T) {
	cases := map[float64]string{
		0:                  "0",
		-0.0001:            "0",
		12.5:               "12.5",
		420.00000000000006: "420",
		-1.23456:           "-1.235",
	}
	for x, expected := range cases {
		if got := num(x); got != expected {
			t.Errorf("num(%g) = %q, expected %q", x, got, expected)
		}
	}
}
