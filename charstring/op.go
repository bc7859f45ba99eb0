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

// Package charstring decodes and encodes Type 1 CharStrings.
//
// A CharString is the compact binary encoding of a glyph outline.  Numbers
// and operators are stored in postfix order.  The decryption of CharStrings
// is handled by the caller; this package only works on plaintext.
package charstring

import (
	"strconv"
)

// Op is a Type 1 CharString operator.
// Two-byte operators, which start with the escape byte 12, are
// represented as 0x0c00 | b.
type Op uint16

// Type 1 CharString operators.
const (
	HStem     Op = 0x0001
	VStem     Op = 0x0003
	VMoveTo   Op = 0x0004
	RLineTo   Op = 0x0005
	HLineTo   Op = 0x0006
	VLineTo   Op = 0x0007
	RRCurveTo Op = 0x0008
	ClosePath Op = 0x0009
	CallSubr  Op = 0x000a
	Return    Op = 0x000b
	HSbW      Op = 0x000d
	EndChar   Op = 0x000e
	RMoveTo   Op = 0x0015
	HMoveTo   Op = 0x0016
	VHCurveTo Op = 0x001e
	HVCurveTo Op = 0x001f

	DotSection      Op = 0x0c00
	VStem3          Op = 0x0c01
	HStem3          Op = 0x0c02
	Seac            Op = 0x0c06
	SbW             Op = 0x0c07
	Div             Op = 0x0c0c
	CallOtherSubr   Op = 0x0c10
	Pop             Op = 0x0c11
	SetCurrentPoint Op = 0x0c21
)

var opNames = map[Op]string{
	HStem:     "hstem",
	VStem:     "vstem",
	VMoveTo:   "vmoveto",
	RLineTo:   "rlineto",
	HLineTo:   "hlineto",
	VLineTo:   "vlineto",
	RRCurveTo: "rrcurveto",
	ClosePath: "closepath",
	CallSubr:  "callsubr",
	Return:    "return",
	HSbW:      "hsbw",
	EndChar:   "endchar",
	RMoveTo:   "rmoveto",
	HMoveTo:   "hmoveto",
	VHCurveTo: "vhcurveto",
	HVCurveTo: "hvcurveto",

	DotSection:      "dotsection",
	VStem3:          "vstem3",
	HStem3:          "hstem3",
	Seac:            "seac",
	SbW:             "sbw",
	Div:             "div",
	CallOtherSubr:   "callothersubr",
	Pop:             "pop",
	SetCurrentPoint: "setcurrentpoint",
}

// Valid reports whether op is a defined Type 1 operator.
func (op Op) Valid() bool {
	_, ok := opNames[op]
	return ok
}

func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	if op >= 0x0c00 {
		return "12 " + strconv.Itoa(int(op&0xff))
	}
	return "op" + strconv.Itoa(int(op))
}

// Token is an element of a decoded CharString.
// If Op is zero, the token is the number Val.  Otherwise the token is the
// operator Op and Val is unused.
type Token struct {
	Op  Op
	Val float64
}

// Num returns a number token.
func Num(x float64) Token {
	return Token{Val: x}
}

// Cmd returns an operator token.
func Cmd(op Op) Token {
	return Token{Op: op}
}

// IsNumber reports whether t is a number.
func (t Token) IsNumber() bool {
	return t.Op == 0
}

func (t Token) String() string {
	if t.Op == 0 {
		return strconv.FormatFloat(t.Val, 'g', -1, 64)
	}
	return t.Op.String()
}

// Width returns the advance width declared by the hsbw or sbw operator at
// the start of a decoded CharString.
func Width(tokens []Token) (float64, bool) {
	for i, t := range tokens {
		if t.IsNumber() {
			continue
		}
		switch t.Op {
		case HSbW:
			if i >= 2 && tokens[i-1].IsNumber() {
				return tokens[i-1].Val, true
			}
		case SbW:
			if i >= 4 && tokens[i-2].IsNumber() {
				return tokens[i-2].Val, true
			}
		}
		return 0, false
	}
	return 0, false
}
