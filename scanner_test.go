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
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScanToken(t *testing.T) {
	in := `
	% this is a comment
	123
	-9
	1e6
	-1.
	2#1000
	16#FF
	(ABC)
	ABC
	/ABC
	23A
	23E1
	23#1
	`
	exp := []Object{
		Integer(123),
		Integer(-9),
		Real(1e6),
		Real(-1),
		Integer(0b1000),
		Integer(0xFF),
		String([]byte("ABC")),
		Operator("ABC"),
		Name("ABC"),
		Operator("23A"),
		Real(23e1),
		Integer(1),
	}
	s := NewScanner(strings.NewReader(in))
	var oo []Object
	for {
		o, err := s.ScanToken()
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		}
		oo = append(oo, o)
	}
	if d := cmp.Diff(exp, oo); d != "" {
		t.Errorf("unexpected objects: %s", d)
	}
}

func TestReadString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"()", ""},
		{"(a(b)c)", "a(b)c"},
		{`(\(\)\\)`, `()\`},
		{`(\n\r\t\b\f)`, "\n\r\t\b\f"},
		{`(\q)`, "q"},
		{"(A\\\nB\nC)", "AB\nC"},
		{"(A\\\rB\rC)", "AB\nC"},
		{"(A\\\r\nB\r\nC)", "AB\nC"},
		{`(\1\02\003\0004\777)`, "\x01\x02\x03\x004\xff"},
		{"(%not a comment)", "%not a comment"},
	}
	for _, c := range cases {
		s := NewScanner(strings.NewReader(c.in))
		got, err := s.ReadString()
		if err != nil {
			t.Errorf("%q: %v", c.in, err)
			continue
		}
		if string(got) != c.want {
			t.Errorf("%q: got %q, want %q", c.in, got, c.want)
		}
	}

	_, err := NewScanner(strings.NewReader("(abc")).ReadString()
	if !errors.Is(err, ErrSyntaxError) {
		t.Errorf("unterminated string: got %v", err)
	}
}

func TestReadHexString(t *testing.T) {
	cases := []struct {
		in   string
		want []byte
	}{
		{"<>", []byte{}},
		{"<901fa>", []byte{0x90, 0x1f, 0xa0}},
		{"<DE AD\nbe ef>", []byte{0xde, 0xad, 0xbe, 0xef}},
	}
	for _, c := range cases {
		got, err := NewScanner(strings.NewReader(c.in)).ReadHexString()
		if err != nil {
			t.Errorf("%q: %v", c.in, err)
			continue
		}
		if d := cmp.Diff(c.want, []byte(got)); d != "" {
			t.Errorf("%q: %s", c.in, d)
		}
	}

	_, err := NewScanner(strings.NewReader("<12xy>")).ReadHexString()
	if !errors.Is(err, ErrSyntaxError) {
		t.Errorf("invalid digit: got %v", err)
	}
}

func TestReadBase85String(t *testing.T) {
	got, err := NewScanner(strings.NewReader(`<~z!<N?+"T~>`)).ReadBase85String()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0, 0, 0, 0, 1, 2, 3, 4, 5}
	if d := cmp.Diff(want, []byte(got)); d != "" {
		t.Error(d)
	}

	for _, in := range []string{`<~!~>`, `<~s8W-"~>`, `<~!!z~>`} {
		_, err := NewScanner(strings.NewReader(in)).ReadBase85String()
		if !errors.Is(err, ErrSyntaxError) {
			t.Errorf("%s: got %v", in, err)
		}
	}
}

func TestLineCol(t *testing.T) {
	r := strings.NewReader("1\n12\r123\r\n\n1\n")
	s := NewScanner(r)
	for {
		b, err := s.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		}
		switch b {
		case '1':
			if s.Col != 1 {
				t.Errorf("expected col 1, got %d", s.Col)
			}
		case '2':
			if s.Col != 2 {
				t.Errorf("expected col 2, got %d", s.Col)
			}
		case '3':
			if s.Col != 3 {
				t.Errorf("expected col 3, got %d", s.Col)
			}
		}
	}
	if s.Line != 5 {
		t.Errorf("expected line 5, got %d", s.Line)
	}
}

func TestReadAfterToken(t *testing.T) {
	s := NewScanner(strings.NewReader("4 RD \x00\x01\x02\x03 ND"))
	for _, exp := range []Object{Integer(4), Operator("RD")} {
		o, err := s.ScanToken()
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(exp, o); d != "" {
			t.Fatal(d)
		}
	}
	s.SkipByte()
	buf := make([]byte, 4)
	n, err := s.Read(buf)
	if err != nil || n != 4 {
		t.Fatalf("Read: %d %v", n, err)
	}
	if d := cmp.Diff(buf, []byte{0, 1, 2, 3}); d != "" {
		t.Fatal(d)
	}
	o, err := s.ScanToken()
	if err != nil {
		t.Fatal(err)
	}
	if o != Operator("ND") {
		t.Errorf("expected ND, got %v", o)
	}
}

func TestNameTooLong(t *testing.T) {
	s := NewScanner(strings.NewReader("/" + strings.Repeat("a", 200)))
	_, err := s.ScanToken()
	if !errors.Is(err, ErrLimitcheck) {
		t.Errorf("expected limitcheck, got %v", err)
	}
}

func TestNumberOutOfRange(t *testing.T) {
	s := NewScanner(strings.NewReader("1e400"))
	_, err := s.ScanToken()
	if !errors.Is(err, ErrLimitcheck) {
		t.Errorf("expected limitcheck, got %v", err)
	}

	s = NewScanner(strings.NewReader("12345678901234567890"))
	o, err := s.ScanToken()
	if err != nil {
		t.Fatal(err)
	}
	if o != Real(12345678901234567890) {
		t.Errorf("expected a real, got %v", o)
	}
}

func TestDSC(t *testing.T) {
	s := NewScanner(strings.NewReader("%!PS-AdobeFont-1.0: Test 001\n%%Title: Test\n1"))
	_, err := s.ScanToken()
	if err != nil {
		t.Fatal(err)
	}
	if len(s.DSC) != 1 || s.DSC[0].Key != "Title" || s.DSC[0].Value != "Test" {
		t.Errorf("unexpected comments %v", s.DSC)
	}
}
