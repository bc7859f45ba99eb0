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

package postscript

import (
	"fmt"
)

// Error is a PostScript error, like "stackunderflow" or "undefined".
type Error struct {
	Type Name
	Msg  string
}

func (err *Error) Error() string {
	if err.Msg == "" {
		return "postscript: " + string(err.Type)
	}
	return "postscript: " + string(err.Type) + ": " + err.Msg
}

// Is reports whether target is a PostScript error of the same type.
// This allows errors.Is(err, ErrStackUnderflow) to match errors with any
// message.
func (err *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Type == err.Type
}

const (
	eDictstackoverflow  Name = "dictstackoverflow"
	eDictstackunderflow Name = "dictstackunderflow"
	eExecstackoverflow  Name = "execstackoverflow"
	eInvalidfont        Name = "invalidfont"
	eIoerror            Name = "ioerror"
	eLimitcheck         Name = "limitcheck"
	eRangecheck         Name = "rangecheck"
	eStackoverflow      Name = "stackoverflow"
	eStackunderflow     Name = "stackunderflow"
	eSyntaxerror        Name = "syntaxerror"
	eTypecheck          Name = "typecheck"
	eUndefined          Name = "undefined"
	eUnmatchedmark      Name = "unmatchedmark"
)

// Errors for use with errors.Is.
var (
	ErrDictStackOverflow = &Error{Type: eDictstackoverflow}
	ErrExecStackOverflow = &Error{Type: eExecstackoverflow}
	ErrInvalidFont       = &Error{Type: eInvalidfont}
	ErrIO                = &Error{Type: eIoerror}
	ErrLimitcheck        = &Error{Type: eLimitcheck}
	ErrRangecheck        = &Error{Type: eRangecheck}
	ErrStackOverflow     = &Error{Type: eStackoverflow}
	ErrStackUnderflow    = &Error{Type: eStackunderflow}
	ErrSyntaxError       = &Error{Type: eSyntaxerror}
	ErrTypecheck         = &Error{Type: eTypecheck}
	ErrUnmatchedMark     = &Error{Type: eUnmatchedmark}

	// ErrUndefined is returned when an operator name is not bound in any
	// dictionary on the dictionary stack.
	ErrUndefined = &Error{Type: eUndefined}
)

func (intp *Interpreter) e(tp Name, format string, a ...interface{}) error {
	return &Error{
		Type: tp,
		Msg:  fmt.Sprintf(format, a...),
	}
}

// KnownFontError is returned by the interpreter when the font program
// defines a FontName which is already known.  Interpretation stops at this
// point.
type KnownFontError struct {
	FontName Name
}

func (err *KnownFontError) Error() string {
	return "postscript: font " + string(err.FontName) + " already decoded"
}
