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

package charstring

import (
	"errors"
	"fmt"
)

// InvalidByteError is returned by Decode when a CharString contains a byte
// which does not encode a number or a defined operator.
type InvalidByteError struct {
	Pos  int
	Byte byte
	Op   Op // the full operator code, for escaped operators
}

func (err *InvalidByteError) Error() string {
	if err.Op >= 0x0c00 {
		return fmt.Sprintf("charstring: invalid operator 12 %d at byte %d",
			err.Op&0xff, err.Pos)
	}
	return fmt.Sprintf("charstring: invalid byte %d at position %d", err.Byte, err.Pos)
}

// ErrIncomplete is returned when a CharString ends in the middle of a
// number or an escaped operator.
var ErrIncomplete = errors.New("charstring: incomplete number or operator")

// Decode converts a plaintext CharString into a sequence of numbers and
// operators.
func Decode(code []byte) ([]Token, error) {
	res := make([]Token, 0, len(code)/2)

	pos := 0
	for pos < len(code) {
		v := code[pos]
		switch {
		case v >= 32 && v <= 246:
			res = append(res, Num(float64(int32(v)-139)))
			pos++
		case v >= 247 && v <= 250:
			if pos+1 >= len(code) {
				return nil, ErrIncomplete
			}
			val := (int32(v)-247)*256 + int32(code[pos+1]) + 108
			res = append(res, Num(float64(val)))
			pos += 2
		case v >= 251 && v <= 254:
			if pos+1 >= len(code) {
				return nil, ErrIncomplete
			}
			val := -(int32(v)-251)*256 - int32(code[pos+1]) - 108
			res = append(res, Num(float64(val)))
			pos += 2
		case v == 255:
			if pos+4 >= len(code) {
				return nil, ErrIncomplete
			}
			val := int32(uint32(code[pos+1])<<24 | uint32(code[pos+2])<<16 |
				uint32(code[pos+3])<<8 | uint32(code[pos+4]))
			res = append(res, Num(float64(val)))
			pos += 5
		case v == 12:
			if pos+1 >= len(code) {
				return nil, ErrIncomplete
			}
			op := Op(v)<<8 | Op(code[pos+1])
			if !op.Valid() {
				return nil, &InvalidByteError{Pos: pos + 1, Byte: code[pos+1], Op: op}
			}
			res = append(res, Cmd(op))
			pos += 2
		default:
			op := Op(v)
			if !op.Valid() {
				return nil, &InvalidByteError{Pos: pos, Byte: v, Op: op}
			}
			res = append(res, Cmd(op))
			pos++
		}
	}
	return res, nil
}
