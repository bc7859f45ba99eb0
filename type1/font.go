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
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"github.com/Nirajsah/pdf.js/postscript"
	"github.com/Nirajsah/pdf.js/postscript/charstring"
)

// Font represents a decoded Type 1 font.
type Font struct {
	*FontInfo
	*Outlines

	// Dict is the font dictionary built by the font program.
	Dict postscript.Dict

	// Subrs are the decoded subroutines from the Private dictionary.
	Subrs [][]charstring.Token

	DefaultWidth float64
	NominalWidth float64

	// Errors maps the names of glyphs which could not be decoded or
	// flattened to the corresponding error.  These glyphs are not included
	// in Glyphs.
	Errors map[string]error

	decoded map[string][]charstring.Token
}

// FontInfo holds the descriptive entries of a font dictionary.
type FontInfo struct {
	FontName   string
	Version    string
	Notice     string
	Copyright  string
	FullName   string
	FamilyName string
	Weight     string

	ItalicAngle        float64
	IsFixedPitch       bool
	UnderlinePosition  float64
	UnderlineThickness float64

	FontMatrix matrix.Matrix
}

// Decoded returns the CharString of a glyph as decoded from the font file,
// before flattening.
func (f *Font) Decoded(name string) ([]charstring.Token, bool) {
	tokens, ok := f.decoded[name]
	return tokens, ok
}

// Widths returns the advance widths of all glyphs, in glyph space units.
func (f *Font) Widths() map[string]float64 {
	res := make(map[string]float64, len(f.Glyphs))
	for name, g := range f.Glyphs {
		res[name] = g.WidthX
	}
	return res
}

// pdfMatrix maps glyph space to PDF glyph space, where the em square
// has size 1000.
func (f *Font) pdfMatrix() matrix.Matrix {
	return f.FontMatrix.Mul(matrix.Scale(1000, 1000))
}

// GlyphWidthPDF returns the advance width of a glyph in PDF glyph space
// units.  Missing glyphs have the width of .notdef.
func (f *Font) GlyphWidthPDF(name string) float64 {
	g := f.glyphOrNotdef(name)
	if g == nil {
		return 0
	}

	// horizontal displacement of the point (w, 0) along the baseline
	M := f.FontMatrix
	scale := M[0]
	if math.Abs(M[3]) > 1e-6 {
		scale -= M[1] * M[2] / M[3]
	}
	return 1000 * scale * g.WidthX
}

// GlyphBBoxPDF returns the bounding box of a glyph in PDF glyph space
// units.  Missing glyphs are replaced by .notdef, and blank glyphs give the
// zero rectangle.
func (f *Font) GlyphBBoxPDF(name string) rect.Rect {
	return f.GlyphBBox(f.pdfMatrix(), name)
}

// FontBBoxPDF returns the union of all glyph bounding boxes, in PDF glyph
// space units.
func (f *Font) FontBBoxPDF() rect.Rect {
	return f.FontBBox(f.pdfMatrix())
}

// FontBBox returns the union of the glyph bounding boxes, after the matrix
// M has been applied to the outlines.  Blank glyphs are ignored.
func (f *Font) FontBBox(M matrix.Matrix) rect.Rect {
	var res rect.Rect
	for name, g := range f.Glyphs {
		if g.IsBlank() {
			continue
		}
		bbox := f.GlyphBBox(M, name)
		if res.IsZero() {
			res = bbox
		} else {
			res.Extend(bbox)
		}
	}
	return res
}
