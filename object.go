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

// Package postscript implements the subset of the PostScript language
// which is used by Type 1 font programs.
//
// The interpreter runs the cleartext part of a font program, switches to the
// decrypted binary segment at "eexec", and fills the font dictionary with
// CharStrings, Subrs, Encoding and the other entries of the font.
package postscript

import (
	"fmt"
	"strings"

	"github.com/Nirajsah/pdf.js/postscript/charstring"
)

// Object is a PostScript value.
// The set of object types is closed; it consists of the types in this file.
type Object interface {
	isObject()
}

type Integer int

type Real float64

type Boolean bool

type String []byte

func (s String) String() string {
	return fmt.Sprintf("%q", string(s))
}

// PS returns the string as a PostScript literal, in the form read by the
// scanner.
func (s String) PS() string {
	var b strings.Builder
	b.WriteByte('(')
	for _, c := range []byte(s) {
		switch c {
		case '(', ')', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\r':
			b.WriteString(`\r`)
		case '\n':
			b.WriteString(`\n`)
		default:
			if c < 32 || c >= 127 {
				fmt.Fprintf(&b, "\\%03o", c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte(')')
	return b.String()
}

type Name string

func (n Name) String() string {
	return "/" + string(n)
}

// Operator is an executable name, read from the input without a leading
// slash.
type Operator string

// Array is a literal array, built by "[ ... ]" or the array operator.
type Array []Object

// Procedure is an executable array, built by "{ ... }".
type Procedure []Object

func (p Procedure) String() string {
	var ss []string
	ss = append(ss, "{")
	for i, o := range p {
		if i > 0 {
			ss = append(ss, " ")
		}
		ss = append(ss, fmt.Sprint(o))
	}
	ss = append(ss, "}")
	return strings.Join(ss, "")
}

type Dict map[Name]Object

func (d Dict) String() string {
	return fmt.Sprintf("<Dict %d>", len(d))
}

// File is the value returned by currentfile.
type File struct{}

// CharString is the result of reading a CharString from the binary segment
// of a font program using readstring.  Data holds the decrypted bytes, Tokens
// the decoded form.  If decoding failed, Err is set and Tokens is nil.
type CharString struct {
	Data   []byte
	Tokens []charstring.Token
	Err    error
}

func (cs *CharString) String() string {
	return fmt.Sprintf("<CharString %d>", len(cs.Data))
}

type mark struct{}

var theMark Object = mark{}

type builtin func(*Interpreter) error

func (Integer) isObject()     {}
func (Real) isObject()        {}
func (Boolean) isObject()     {}
func (String) isObject()      {}
func (Name) isObject()        {}
func (Operator) isObject()    {}
func (Array) isObject()       {}
func (Procedure) isObject()   {}
func (Dict) isObject()        {}
func (File) isObject()        {}
func (*CharString) isObject() {}
func (mark) isObject()        {}
func (builtin) isObject()     {}
