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
	"bytes"
	"errors"
)

// ErrInvalidPFB is returned by SplitPFB for malformed PFB data.
var ErrInvalidPFB = errors.New("type1: invalid PFB file")

// SplitPFB extracts the cleartext and the binary segment from a font in PFB
// format.  Each PFB section starts with 0x80, a type byte (1 for ASCII, 2 for
// binary data, 3 for end of file) and a 32-bit little-endian length.
// ASCII sections after the first binary section form the trailer of the
// font program and are not returned.
func SplitPFB(data []byte) (clear, binary []byte, err error) {
	for len(data) > 0 {
		if len(data) < 2 || data[0] != 0x80 || data[1] == 0 || data[1] > 3 {
			return nil, nil, ErrInvalidPFB
		}
		tp := data[1]
		if tp == 3 {
			break
		}
		if len(data) < 6 {
			return nil, nil, ErrInvalidPFB
		}
		n := int(data[2]) | int(data[3])<<8 | int(data[4])<<16 | int(data[5])<<24
		data = data[6:]
		if n < 0 || n > len(data) {
			return nil, nil, ErrInvalidPFB
		}

		switch {
		case tp == 1 && binary == nil:
			clear = append(clear, data[:n]...)
		case tp == 2:
			binary = append(binary, data[:n]...)
		}
		data = data[n:]
	}
	if clear == nil {
		return nil, nil, ErrInvalidPFB
	}
	return clear, binary, nil
}

// SplitPFA splits a font program in PFA format after the "eexec" operator.
// If the program contains no eexec operator, binary is nil.
func SplitPFA(data []byte) (clear, binary []byte) {
	start := 0
	for {
		idx := bytes.Index(data[start:], eexecToken)
		if idx < 0 {
			return data, nil
		}
		end := start + idx + len(eexecToken)
		if end == len(data) || isSpace(data[end]) {
			return data[:end], data[end:]
		}
		start = end
	}
}

var eexecToken = []byte("currentfile eexec")

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

// split returns the cleartext and the binary segment of an embedded font
// program, using the Length1 and Length2 values from the font stream
// dictionary.  If length1 is not positive, the segments are located by
// searching for the eexec operator.
func split(data []byte, length1, length2 int) (clear, binary []byte, err error) {
	if len(data) > 0 && data[0] == 0x80 {
		return SplitPFB(data)
	}
	if length1 <= 0 {
		clear, binary = SplitPFA(data)
		return clear, binary, nil
	}
	if length1 > len(data) {
		return nil, nil, invalidSince("Length1 exceeds the font data")
	}
	clear = data[:length1]
	binary = data[length1:]
	if length2 > 0 && length2 < len(binary) {
		binary = binary[:length2]
	}
	return clear, binary, nil
}
