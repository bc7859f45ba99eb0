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
	"bytes"
)

// Keys for the Type 1 encryption.
const (
	EexecKey      = 55665
	CharStringKey = 4330
)

const (
	c1 = 52845
	c2 = 22719
)

// Decrypt decrypts data which has been encrypted with the Type 1 stream
// cipher.  The first discard bytes of the plaintext are random padding and
// are not included in the result.
func Decrypt(data []byte, key uint16, discard int) []byte {
	if discard < 0 {
		discard = 0
	}
	if discard >= len(data) {
		return []byte{}
	}
	res := make([]byte, 0, len(data)-discard)
	r := key
	for i, cipher := range data {
		plain := cipher ^ byte(r>>8)
		r = (uint16(cipher)+r)*c1 + c2
		if i >= discard {
			res = append(res, plain)
		}
	}
	return res
}

// Encrypt is the inverse of Decrypt.  The bytes of prefix are encrypted in
// front of the data, in place of the random padding.
func Encrypt(data []byte, key uint16, prefix []byte) []byte {
	res := make([]byte, 0, len(prefix)+len(data))
	r := key
	enc := func(plain byte) {
		cipher := plain ^ byte(r>>8)
		r = (uint16(cipher)+r)*c1 + c2
		res = append(res, cipher)
	}
	for _, b := range prefix {
		enc(b)
	}
	for _, b := range data {
		enc(b)
	}
	return res
}

// DecryptEexec decrypts the binary segment of a Type 1 font program.
// If the segment starts with four hexadecimal digits (after optional white
// space), the segment is hex-decoded first.  Only space, tab, CR and LF are
// skipped, since all other bytes can start a binary segment.
func DecryptEexec(data []byte) []byte {
	data = bytes.TrimLeft(data, " \t\r\n")
	if isHex(data) {
		data = hexDecode(data)
	}
	return Decrypt(data, EexecKey, 4)
}

func isHex(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	for _, b := range data[:4] {
		if !isHexDigit(b) {
			return false
		}
	}
	return true
}

func isHexDigit(b byte) bool {
	return '0' <= b && b <= '9' || 'a' <= b && b <= 'f' || 'A' <= b && b <= 'F'
}

// hexDecode decodes hex digits, skipping white space.  Decoding stops at the
// first byte which is neither.
func hexDecode(data []byte) []byte {
	res := make([]byte, 0, len(data)/2)
	var out byte
	odd := false
	for _, b := range data {
		var nibble byte
		switch {
		case b <= 32:
			continue
		case b >= '0' && b <= '9':
			nibble = b - '0'
		case b >= 'A' && b <= 'F':
			nibble = b - 'A' + 10
		case b >= 'a' && b <= 'f':
			nibble = b - 'a' + 10
		default:
			return res
		}
		out = out<<4 | nibble
		if odd {
			res = append(res, out)
			out = 0
		}
		odd = !odd
	}
	return res
}

func opEexec(intp *Interpreter) error {
	a, err := intp.args("eexec", 1)
	if err != nil {
		return err
	}
	if _, ok := a[0].(File); !ok {
		return intp.e(eTypecheck, "eexec: needs a file, not %T", a[0])
	}
	intp.drop(1)

	segment := intp.Binary
	if segment == nil {
		rest, err := intp.currentScanner().ReadAll()
		if err != nil {
			return intp.e(eIoerror, "eexec: %v", err)
		}
		segment = rest
	}
	intp.Binary = nil
	plain := DecryptEexec(segment)

	intp.log().WithField("bytes", len(plain)).Debug("eexec")
	intp.scanners = append(intp.scanners, NewScanner(bytes.NewReader(plain)))
	return nil
}
