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

// Package names checks glyph names found in Type 1 fonts.
package names

// MaxLength is the maximal length of a glyph name.
const MaxLength = 31

// IsValid reports whether s is a valid glyph name.  Valid names consist of
// letters, digits, periods and underscores, do not start with a digit or a
// period, and have at most MaxLength characters.  The name ".notdef" is
// always valid.
//
// See https://github.com/adobe-type-tools/agl-specification for details.
func IsValid(s string) bool {
	if s == ".notdef" {
		return true
	}
	if len(s) == 0 || len(s) > MaxLength {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c == '_':
			// always allowed
		case c >= '0' && c <= '9', c == '.':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
