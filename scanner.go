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
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Scanner splits the cleartext of a font program into tokens.
//
// Besides tokens, the scanner gives access to the raw bytes which follow a
// token, as needed by readstring and eexec.  Structured comments of the
// form "%%Key: value" which start a line are collected in DSC.
type Scanner struct {
	Line int // 0-based
	Col  int // 0-based
	DSC  []Comment

	r      *bufio.Reader
	crSeen bool
}

// Comment is a structured comment.  Continuation lines ("%%+") are joined
// to the value, separated by a single space.
type Comment struct {
	Key   string
	Value string
}

// NewScanner returns a scanner which reads from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{
		r: bufio.NewReaderSize(r, 512),
	}
}

// Next returns the next byte of input.
func (s *Scanner) Next() (byte, error) {
	b, err := s.r.ReadByte()
	if err != nil {
		return 0, err
	}

	switch {
	case b == '\n' && s.crSeen:
		// second half of CR LF
	case b == '\n' || b == '\r':
		s.Line++
		s.Col = 0
	default:
		s.Col++
	}
	s.crSeen = b == '\r'

	return b, nil
}

// SkipByte skips a single byte of input.
func (s *Scanner) SkipByte() {
	s.Next()
}

// Read reads raw bytes, bypassing the tokenizer.
func (s *Scanner) Read(p []byte) (int, error) {
	for n := range p {
		b, err := s.Next()
		if err != nil {
			return n, err
		}
		p[n] = b
	}
	return len(p), nil
}

// ReadAll returns all remaining input.
func (s *Scanner) ReadAll() ([]byte, error) {
	var res []byte
	for {
		b, err := s.Next()
		if err == io.EOF {
			return res, nil
		} else if err != nil {
			return res, err
		}
		res = append(res, b)
	}
}

func (s *Scanner) peek() (byte, error) {
	bb, err := s.r.Peek(1)
	if len(bb) == 0 {
		return 0, err
	}
	return bb[0], nil
}

func (s *Scanner) lookingAt(pat string) bool {
	bb, _ := s.r.Peek(len(pat))
	return string(bb) == pat
}

func (s *Scanner) expect(c byte) error {
	b, err := s.Next()
	if err == io.EOF {
		return syntaxError("expected %q at end of input", c)
	} else if err != nil {
		return err
	}
	if b != c {
		return syntaxError("expected %q, got %q", c, b)
	}
	return nil
}

// ScanToken returns the next token.  The result is one of Integer, Real,
// String, Name or Operator.  At the end of input, io.EOF is returned.
func (s *Scanner) ScanToken() (Object, error) {
	err := s.skipSpace()
	if err != nil {
		return nil, err
	}
	b, err := s.peek()
	if err != nil {
		return nil, err
	}

	switch {
	case b == '(':
		return s.ReadString()
	case s.lookingAt("<<") || s.lookingAt(">>"):
		s.Next()
		s.Next()
		return Operator([]byte{b, b}), nil
	case s.lookingAt("<~"):
		return s.ReadBase85String()
	case b == '<':
		return s.ReadHexString()
	case b == '>' || b == ')':
		s.Next()
		return nil, syntaxError("unexpected %q", b)
	case b == '/':
		s.Next()
		name, err := s.regular()
		if err != nil {
			return nil, err
		}
		return Name(name), nil
	case b == '[' || b == ']' || b == '{' || b == '}':
		s.Next()
		return Operator([]byte{b}), nil
	}

	word, err := s.regular()
	if err != nil {
		return nil, err
	}
	x, err := parseNumber(word)
	if errors.Is(err, ErrLimitcheck) {
		return nil, err
	} else if err != nil {
		return Operator(word), nil
	}
	return x, nil
}

// regular reads a run of regular characters.
func (s *Scanner) regular() (string, error) {
	var word []byte
	for {
		b, err := s.peek()
		if err == io.EOF {
			break
		} else if err != nil {
			return "", err
		}
		if !isRegular(b) {
			break
		}
		s.Next()
		word = append(word, b)
		if len(word) > maxNameLength {
			return "", &Error{Type: eLimitcheck, Msg: "name too long"}
		}
	}
	return string(word), nil
}

var stringEscapes = map[byte]byte{
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'b':  '\b',
	'f':  '\f',
	'(':  '(',
	')':  ')',
	'\\': '\\',
}

// ReadString reads a string literal in parentheses.  End-of-line markers
// inside the string are converted to LF.
func (s *Scanner) ReadString() (String, error) {
	err := s.expect('(')
	if err != nil {
		return nil, err
	}

	next := func() (byte, error) {
		b, err := s.Next()
		if err == io.EOF {
			return 0, syntaxError("unterminated string")
		}
		return b, err
	}

	var res []byte
	depth := 1
	for {
		b, err := next()
		if err != nil {
			return nil, err
		}

		switch b {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return String(res), nil
			}
		case '\r':
			s.skipLF()
			b = '\n'
		case '\\':
			b, err = next()
			if err != nil {
				return nil, err
			}
			if c, ok := stringEscapes[b]; ok {
				res = append(res, c)
				continue
			}
			switch {
			case b == '\n':
				continue
			case b == '\r':
				s.skipLF()
				continue
			case b >= '0' && b <= '7':
				b = s.octal(b - '0')
			}
		}
		res = append(res, b)
	}
}

// octal reads up to two more octal digits.  Values above 255 wrap around.
func (s *Scanner) octal(val byte) byte {
	for i := 0; i < 2; i++ {
		b, err := s.peek()
		if err != nil || b < '0' || b > '7' {
			break
		}
		s.Next()
		val = val<<3 | (b - '0')
	}
	return val
}

func (s *Scanner) skipLF() {
	if b, err := s.peek(); err == nil && b == '\n' {
		s.Next()
	}
}

// ReadHexString reads a string in angle brackets.  A missing final digit is
// taken to be 0.
func (s *Scanner) ReadHexString() (String, error) {
	err := s.expect('<')
	if err != nil {
		return nil, err
	}

	res := []byte{}
	var digits []byte
	for {
		b, err := s.Next()
		if err == io.EOF {
			return nil, syntaxError("unterminated hex string")
		} else if err != nil {
			return nil, err
		}
		if b == '>' {
			break
		}
		if b <= ' ' {
			continue
		}
		d, ok := hexValue(b)
		if !ok {
			return nil, syntaxError("invalid hex digit %q", b)
		}
		digits = append(digits, d)
		if len(digits) == 2 {
			res = append(res, digits[0]<<4|digits[1])
			digits = digits[:0]
		}
	}
	if len(digits) == 1 {
		res = append(res, digits[0]<<4)
	}
	return String(res), nil
}

func hexValue(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// ReadBase85String reads an ASCII85 encoded string, delimited by "<~" and
// "~>".
func (s *Scanner) ReadBase85String() (String, error) {
	err := s.expect('<')
	if err == nil {
		err = s.expect('~')
	}
	if err != nil {
		return nil, err
	}

	var res []byte
	var group [5]byte
	n := 0
	for {
		b, err := s.Next()
		if err == io.EOF {
			return nil, syntaxError("unterminated base85 string")
		} else if err != nil {
			return nil, err
		}

		if b == '~' {
			break
		}
		switch {
		case b <= ' ':
			continue
		case b == 'z' && n == 0:
			res = append(res, 0, 0, 0, 0)
			continue
		case b < '!' || b > 'u':
			return nil, syntaxError("invalid base85 digit %q", b)
		}
		group[n] = b - '!'
		n++
		if n == 5 {
			res, err = appendBase85(res, group[:], 4)
			if err != nil {
				return nil, err
			}
			n = 0
		}
	}

	switch n {
	case 0:
		// complete
	case 1:
		return nil, syntaxError("unexpected end of base85 string")
	default:
		for i := n; i < 5; i++ {
			group[i] = 84
		}
		res, _ = appendBase85(res, group[:], n-1)
	}

	err = s.expect('>')
	if err != nil {
		return nil, err
	}
	return String(res), nil
}

// appendBase85 decodes a group of five base85 digits and appends the first
// n bytes of the result.
func appendBase85(res []byte, group []byte, n int) ([]byte, error) {
	var val uint64
	for _, d := range group {
		val = val*85 + uint64(d)
	}
	if n == 4 && val > math.MaxUint32 {
		return nil, syntaxError("base85 group out of range")
	}
	out := [4]byte{byte(val >> 24), byte(val >> 16), byte(val >> 8), byte(val)}
	return append(res, out[:n]...), nil
}

// skipSpace skips white space and comments.
func (s *Scanner) skipSpace() error {
	for {
		b, err := s.peek()
		if err != nil {
			return err
		}
		switch {
		case b <= ' ':
			s.Next()
		case b == '%':
			atLineStart := s.Col == 0
			line, err := s.readLine()
			if err != nil {
				return err
			}
			if atLineStart && strings.HasPrefix(line, "%%") && !strings.HasPrefix(line, "%%+") {
				s.addComment(line[2:])
			}
		default:
			return nil
		}
	}
}

// addComment records a structured comment.  Continuation lines which
// follow directly are appended to the value.
func (s *Scanner) addComment(text string) {
	key, value, _ := strings.Cut(text, ":")
	if i := strings.IndexAny(key, " \t"); i >= 0 {
		key, value = key[:i], key[i:]
	}
	if key == "" {
		return
	}
	value = strings.TrimLeft(value, " \t")

	for s.lookingAt("%%+") {
		line, err := s.readLine()
		if err != nil {
			break
		}
		value += " " + strings.TrimLeft(line[3:], " \t")
	}

	s.DSC = append(s.DSC, Comment{Key: key, Value: value})
}

// readLine reads up to and including the next end-of-line marker.
// The marker is not included in the result.
func (s *Scanner) readLine() (string, error) {
	var line []byte
	for {
		b, err := s.Next()
		if err == io.EOF {
			return string(line), nil
		} else if err != nil {
			return "", err
		}
		switch b {
		case '\n':
			return string(line), nil
		case '\r':
			s.skipLF()
			return string(line), nil
		}
		line = append(line, b)
	}
}

func isRegular(b byte) bool {
	if b <= ' ' {
		return false
	}
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return false
	}
	return true
}

// parseNumber parses integers, reals, and radix numbers like 16#FF.
func parseNumber(word string) (Object, error) {
	if x, err := strconv.ParseInt(word, 10, 0); err == nil {
		return Integer(x), nil
	}

	if base, digits, ok := strings.Cut(word, "#"); ok {
		b, err := strconv.Atoi(base)
		if err != nil || b < 2 || b > 36 || len(base) > 2 {
			return nil, syntaxError("invalid radix number %q", word)
		}
		x, err := strconv.ParseInt(digits, b, 0)
		if err != nil || digits[0] == '-' || digits[0] == '+' {
			return nil, syntaxError("invalid radix number %q", word)
		}
		return Integer(x), nil
	}

	y, err := strconv.ParseFloat(word, 64)
	if errors.Is(err, strconv.ErrRange) && math.IsInf(y, 0) {
		return nil, &Error{Type: eLimitcheck, Msg: fmt.Sprintf("number %q out of range", word)}
	}
	if err != nil || math.IsInf(y, 0) || math.IsNaN(y) {
		return nil, syntaxError("invalid number %q", word)
	}
	return Real(y), nil
}

func syntaxError(format string, a ...interface{}) error {
	return &Error{Type: eSyntaxerror, Msg: fmt.Sprintf(format, a...)}
}
