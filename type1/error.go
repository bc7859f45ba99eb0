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
	"errors"
	"fmt"

	"github.com/Nirajsah/pdf.js/postscript"
	"github.com/Nirajsah/pdf.js/postscript/charstring"
)

// InvalidFontError indicates a problem with font data.  Err, if set, is
// the PostScript error kind of the problem.
type InvalidFontError struct {
	Reason string
	Err    error
}

func (err *InvalidFontError) Error() string {
	return "type1: " + err.Reason
}

func (err *InvalidFontError) Unwrap() error {
	return err.Err
}

func invalidSince(reason string) error {
	return &InvalidFontError{
		Reason: reason,
	}
}

var (
	errStackOverflow = &InvalidFontError{
		Reason: "type 1 buildchar stack overflow",
		Err:    postscript.ErrStackOverflow,
	}
	errStackUnderflow = &InvalidFontError{
		Reason: "type 1 buildchar stack underflow",
		Err:    postscript.ErrStackUnderflow,
	}
	errTooManySteps = &InvalidFontError{
		Reason: "type 1 charstring too complex",
		Err:    postscript.ErrLimitcheck,
	}
	errIncomplete = invalidSince("incomplete type 1 charstring")
)

// errDecodeAborted is stored in the registry when a decode function panics
// or returns neither a font nor an error.
var errDecodeAborted = errors.New("type1: font decoding did not complete")

// ErrInvalidHeader is returned when a font program does not start with "%!".
var ErrInvalidHeader = errors.New("type1: invalid file header")

// UnsupportedOperatorError is returned when a CharString uses an operator
// which cannot be flattened.
type UnsupportedOperatorError struct {
	Op charstring.Op
}

func (err *UnsupportedOperatorError) Error() string {
	return "type1: unsupported charstring operator " + err.Op.String()
}

// GlyphError records the failure to decode or flatten a single glyph.
type GlyphError struct {
	Glyph string
	Err   error
}

func (err *GlyphError) Error() string {
	return fmt.Sprintf("type1: glyph %q: %v", err.Glyph, err.Err)
}

func (err *GlyphError) Unwrap() error {
	return err.Err
}
