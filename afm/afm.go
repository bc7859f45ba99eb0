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

// Package afm builds Adobe Font Metrics for decoded Type 1 fonts.
package afm

import (
	"sort"

	"golang.org/x/exp/maps"
	"seehuhn.de/go/geom/rect"

	"github.com/Nirajsah/pdf.js/postscript/type1"
)

// Metrics contains the information written to an AFM file.
// All lengths are in PDF glyph space units, 1/1000 of the text size.
type Metrics struct {
	Glyphs   map[string]*GlyphInfo
	Encoding []string

	FontName   string
	FullName   string
	FamilyName string
	Weight     string
	Version    string
	Notice     string

	FontBBox rect.Rect

	CapHeight float64
	XHeight   float64
	Ascent    float64
	Descent   float64 // negative

	UnderlinePosition  float64
	UnderlineThickness float64

	// ItalicAngle is the angle, in degrees counterclockwise from the vertical,
	// of the dominant vertical strokes of the font.
	ItalicAngle float64

	IsFixedPitch bool
}

// GlyphInfo holds the metrics of a single glyph.
type GlyphInfo struct {
	WidthX float64
	BBox   rect.Rect
}

// FromFont collects the metrics of a decoded font.
func FromFont(f *type1.Font) *Metrics {
	m := &Metrics{
		Glyphs:   make(map[string]*GlyphInfo, len(f.Glyphs)),
		Encoding: f.Encoding,

		FontName:   f.FontName,
		FullName:   f.FullName,
		FamilyName: f.FamilyName,
		Weight:     f.Weight,
		Version:    f.Version,
		Notice:     f.Notice,

		FontBBox: f.FontBBoxPDF(),

		ItalicAngle:  f.ItalicAngle,
		IsFixedPitch: f.IsFixedPitch,
	}

	// FontInfo values are in glyph space
	q := f.FontMatrix[3] * 1000
	m.UnderlinePosition = f.UnderlinePosition * q
	m.UnderlineThickness = f.UnderlineThickness * q

	for name := range f.Glyphs {
		info := &GlyphInfo{
			WidthX: f.GlyphWidthPDF(name),
		}
		if !f.IsBlank(name) {
			info.BBox = f.GlyphBBoxPDF(name)
		}
		m.Glyphs[name] = info
	}

	if g, ok := m.Glyphs["H"]; ok {
		m.CapHeight = g.BBox.URy
	}
	if g, ok := m.Glyphs["x"]; ok {
		m.XHeight = g.BBox.URy
	}
	if g, ok := m.Glyphs["d"]; ok {
		m.Ascent = g.BBox.URy
	} else {
		m.Ascent = m.FontBBox.URy
	}
	if g, ok := m.Glyphs["p"]; ok {
		m.Descent = g.BBox.LLy
	} else {
		m.Descent = m.FontBBox.LLy
	}

	return m
}

// GlyphList returns the names of all glyphs.  The list starts with
// ".notdef", followed by the encoded glyphs in order of their first code,
// followed by the remaining glyphs in alphabetical order.
func (m *Metrics) GlyphList() []string {
	glyphNames := maps.Keys(m.Glyphs)
	codes := m.codes()
	code := func(name string) int {
		if name == ".notdef" {
			return -1
		}
		if c, ok := codes[name]; ok {
			return c
		}
		return 256
	}
	sort.Slice(glyphNames, func(i, j int) bool {
		ci, cj := code(glyphNames[i]), code(glyphNames[j])
		if ci != cj {
			return ci < cj
		}
		return glyphNames[i] < glyphNames[j]
	})
	return glyphNames
}

// codes maps each encoded glyph name to its first code.
func (m *Metrics) codes() map[string]int {
	res := make(map[string]int)
	for i, name := range m.Encoding {
		if name == ".notdef" || name == "" {
			continue
		}
		if _, seen := res[name]; !seen {
			res[name] = i
		}
	}
	return res
}
