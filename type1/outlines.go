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
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
)

// Outlines contains the flattened glyphs and the encoding of a Type 1 font.
type Outlines struct {
	Glyphs map[string]*Glyph

	// Encoding is the built-in encoding of the font, as 256 glyph names.
	Encoding []string
}

// NumGlyphs returns the number of glyphs, counting .notdef even if the font
// does not define it.
func (o *Outlines) NumGlyphs() int {
	if o.lookup(".notdef") == nil {
		return len(o.Glyphs) + 1
	}
	return len(o.Glyphs)
}

// GlyphList returns the glyph names of the font.  The list starts with
// .notdef.  Encoded glyphs follow in order of their first code, and the
// remaining glyphs are sorted by name.
func (o *Outlines) GlyphList() []string {
	rank := make(map[string]int, len(o.Glyphs)+1)
	for name := range o.Glyphs {
		rank[name] = len(o.Encoding)
	}
	for code := len(o.Encoding) - 1; code >= 0; code-- {
		if _, ok := rank[o.Encoding[code]]; ok {
			rank[o.Encoding[code]] = code
		}
	}
	rank[".notdef"] = -1

	names := maps.Keys(rank)
	slices.SortFunc(names, func(a, b string) int {
		if rank[a] != rank[b] {
			return rank[a] - rank[b]
		}
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	})
	return names
}

// lookup returns the named glyph, or nil.
func (o *Outlines) lookup(name string) *Glyph {
	return o.Glyphs[name]
}

// glyphOrNotdef returns the named glyph, falling back to .notdef.
func (o *Outlines) glyphOrNotdef(name string) *Glyph {
	if g := o.lookup(name); g != nil {
		return g
	}
	return o.lookup(".notdef")
}

// IsBlank reports whether the glyph leaves no marks on the page.
// Missing glyphs are drawn as .notdef.
func (o *Outlines) IsBlank(name string) bool {
	g := o.glyphOrNotdef(name)
	return g == nil || g.IsBlank()
}

// Outline returns the outline of the named glyph, or nil if the glyph is
// missing or blank.
func (o *Outlines) Outline(name string) *path.Data {
	if g := o.lookup(name); g != nil {
		return g.Outline
	}
	return nil
}

// GlyphBBox returns the bounding box of a glyph outline after the matrix M
// has been applied.  Missing glyphs are replaced by .notdef.  For blank
// glyphs, the zero rectangle is returned.
func (o *Outlines) GlyphBBox(M matrix.Matrix, name string) rect.Rect {
	g := o.glyphOrNotdef(name)
	if g == nil {
		return rect.Rect{}
	}
	return g.Path().Transform(M).BBox()
}
