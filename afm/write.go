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
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"seehuhn.de/go/geom/rect"
)

// Write writes the metrics to w in AFM format.
func (m *Metrics) Write(w io.Writer) error {
	out := bufio.NewWriter(w)
	line := func(format string, a ...interface{}) {
		fmt.Fprintf(out, format+"\n", a...)
	}
	optional := func(key, value string) {
		if value != "" {
			line("%s %s", key, value)
		}
	}

	line("StartFontMetrics 4.1")
	line("FontName %s", m.FontName)
	optional("FullName", m.FullName)
	optional("FamilyName", m.FamilyName)
	optional("Weight", m.Weight)
	optional("Version", m.Version)
	optional("Notice", m.Notice)
	line("EncodingScheme FontSpecific")
	line("FontBBox %s", box(m.FontBBox))
	line("ItalicAngle %s", num(m.ItalicAngle))
	line("IsFixedPitch %t", m.IsFixedPitch)
	line("UnderlinePosition %s", num(m.UnderlinePosition))
	line("UnderlineThickness %s", num(m.UnderlineThickness))
	if m.CapHeight != 0 {
		line("CapHeight %s", num(m.CapHeight))
	}
	if m.XHeight != 0 {
		line("XHeight %s", num(m.XHeight))
	}
	line("Ascender %s", num(m.Ascent))
	line("Descender %s", num(m.Descent))

	codes := m.codes()
	line("StartCharMetrics %d", len(m.Glyphs))
	for _, name := range m.GlyphList() {
		g := m.Glyphs[name]
		code, ok := codes[name]
		if !ok {
			code = -1
		}
		line("C %d ; WX %s ; N %s ; B %s ;", code, num(g.WidthX), name, box(g.BBox))
	}
	line("EndCharMetrics")
	line("EndFontMetrics")

	return out.Flush()
}

// num formats x with at most three decimal places.
func num(x float64) string {
	x = math.Round(x*1000) / 1000
	if x == 0 {
		x = 0 // avoid "-0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func box(r rect.Rect) string {
	return num(r.LLx) + " " + num(r.LLy) + " " + num(r.URx) + " " + num(r.URy)
}
