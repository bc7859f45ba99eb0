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
	"math"
)

// Encode converts a token sequence back into the binary CharString format.
// Non-integer numbers are written as a fraction followed by the div operator.
func Encode(tokens []Token) []byte {
	var buf []byte
	for _, t := range tokens {
		switch {
		case !t.IsNumber():
			buf = appendOp(buf, t.Op)
		case t.Val == math.Trunc(t.Val) && math.Abs(t.Val) <= math.MaxInt32:
			buf = appendInt(buf, int32(t.Val))
		default:
			p, q := fraction(t.Val)
			buf = appendInt(buf, p)
			buf = appendInt(buf, q)
			buf = appendOp(buf, Div)
		}
	}
	return buf
}

func appendOp(buf []byte, op Op) []byte {
	if op > 0xff {
		buf = append(buf, byte(op>>8))
	}
	return append(buf, byte(op))
}

// appendInt uses the shortest of the four integer encodings.
func appendInt(buf []byte, x int32) []byte {
	switch {
	case -107 <= x && x <= 107:
		return append(buf, byte(139+x))
	case 108 <= x && x <= 1131:
		v := x - 108
		return append(buf, byte(247+v>>8), byte(v))
	case -1131 <= x && x <= -108:
		v := -x - 108
		return append(buf, byte(251+v>>8), byte(v))
	}
	u := uint32(x)
	return append(buf, 255, byte(u>>24), byte(u>>16), byte(u>>8), byte(u))
}

// fraction returns p/q close to x, with 1 <= q <= 107 so that the
// denominator fits into a single byte.
func fraction(x float64) (int32, int32) {
	bestP, bestQ := int32(0), int32(1)
	bestErr := math.Inf(1)
	for q := 1; q <= 107; q++ {
		p := math.Round(x * float64(q))
		p = math.Max(math.Min(p, math.MaxInt32), math.MinInt32)
		if e := math.Abs(p/float64(q) - x); e < bestErr {
			bestP, bestQ, bestErr = int32(p), int32(q), e
		}
	}
	return bestP, bestQ
}
