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
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/Nirajsah/pdf.js/postscript"
	"github.com/Nirajsah/pdf.js/postscript/charstring"
)

const (
	hsbw            = charstring.HSbW
	sbw             = charstring.SbW
	seac            = charstring.Seac
	rmoveto         = charstring.RMoveTo
	hmoveto         = charstring.HMoveTo
	vmoveto         = charstring.VMoveTo
	rlineto         = charstring.RLineTo
	hlineto         = charstring.HLineTo
	vlineto         = charstring.VLineTo
	rrcurveto       = charstring.RRCurveTo
	vhcurveto       = charstring.VHCurveTo
	closepath       = charstring.ClosePath
	hstem           = charstring.HStem
	hstem3          = charstring.HStem3
	vstem           = charstring.VStem
	vstem3          = charstring.VStem3
	dotsection      = charstring.DotSection
	div             = charstring.Div
	callsubr        = charstring.CallSubr
	callothersubr   = charstring.CallOtherSubr
	pop             = charstring.Pop
	ret             = charstring.Return
	setcurrentpoint = charstring.SetCurrentPoint
	endchar         = charstring.EndChar
)

// tk builds a token sequence from ints, float64s and operators.
func tk(args ...interface{}) []charstring.Token {
	var res []charstring.Token
	for _, a := range args {
		switch a := a.(type) {
		case int:
			res = append(res, charstring.Num(float64(a)))
		case float64:
			res = append(res, charstring.Num(a))
		case charstring.Op:
			res = append(res, charstring.Cmd(a))
		default:
			panic(fmt.Sprintf("unexpected %T", a))
		}
	}
	return res
}

// standardSubrs are the first four subroutines found in almost every
// Type 1 font, which implement flex and hint replacement.
var standardSubrs = [][]charstring.Token{
	tk(3, 0, callothersubr, pop, pop, setcurrentpoint, ret),
	tk(0, 1, callothersubr, ret),
	tk(0, 2, callothersubr, ret),
	tk(ret),
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name     string
		nominal  float64
		subrs    [][]charstring.Token
		in       []charstring.Token
		expected []charstring.Token
	}{
		{
			name:     "simple",
			in:       tk(0, 500, hsbw, 15, 5, rmoveto, 20, 0, rlineto, endchar),
			expected: tk(15, 5, rmoveto, 20, 0, rlineto, endchar),
		},
		{
			name:     "width",
			nominal:  550,
			in:       tk(10, 600, hsbw, 5, 5, rmoveto, endchar),
			expected: tk(50, 15, 5, rmoveto, endchar),
		},
		{
			name:     "line folding",
			in:       tk(0, 500, hsbw, 0, 0, rmoveto, 30, hlineto, 40, vlineto, endchar),
			expected: tk(0, 0, rmoveto, 30, 0, 0, 40, rlineto, endchar),
		},
		{
			name:     "three lines",
			in:       tk(0, 500, hsbw, 0, 0, rmoveto, 30, hlineto, 40, vlineto, 50, hlineto, endchar),
			expected: tk(0, 0, rmoveto, 30, 0, 0, 40, 50, 0, rlineto, endchar),
		},
		{
			name:     "single hlineto",
			in:       tk(0, 500, hsbw, 0, 0, rmoveto, 30, hlineto, endchar),
			expected: tk(0, 0, rmoveto, 30, hlineto, endchar),
		},
		{
			name:     "rlineto absorbs vlineto",
			in:       tk(0, 500, hsbw, 0, 0, rmoveto, 10, 20, rlineto, 5, vlineto, endchar),
			expected: tk(0, 0, rmoveto, 10, 20, 0, 5, rlineto, endchar),
		},
		{
			name: "curves",
			in: tk(0, 500, hsbw, 0, 0, rmoveto,
				1, 2, 3, 4, 5, 6, rrcurveto,
				7, 8, 9, 10, 11, 12, rrcurveto,
				1, 2, 3, 4, vhcurveto,
				endchar),
			expected: tk(0, 0, rmoveto,
				1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, rrcurveto,
				1, 2, 3, 4, vhcurveto,
				endchar),
		},
		{
			name: "closepath and dotsection",
			in: tk(0, 500, hsbw, 0, 0, rmoveto, 10, 0, rlineto, closepath,
				dotsection, 0, 10, rmoveto, endchar),
			expected: tk(0, 0, rmoveto, 10, 0, rlineto, 0, 10, rmoveto, endchar),
		},
		{
			name: "hstem",
			in: tk(0, 500, hsbw, 0, 20, hstem, 100, 20, hstem, 30, 10, vstem,
				0, 0, rmoveto, 300, 10, hstem, endchar),
			expected: tk(0, 20, 80, 20, hstem, 30, 10, vstem,
				0, 0, rmoveto, 180, 10, hstem, endchar),
		},
		{
			name:     "hstem3",
			in:       tk(0, 500, hsbw, 0, 10, 50, 10, 100, 10, hstem3, endchar),
			expected: tk(0, 10, 40, 10, 40, 10, hstem, endchar),
		},
		{
			name:     "vstem3",
			in:       tk(0, 500, hsbw, 0, 10, 50, 10, 100, 10, vstem3, endchar),
			expected: tk(0, 10, vstem, 50, 10, vstem, 100, 10, vstem, endchar),
		},
		{
			name:     "hmoveto sidebearing",
			in:       tk(20, 500, hsbw, 30, hmoveto, endchar),
			expected: tk(50, hmoveto, endchar),
		},
		{
			name:     "vmoveto sidebearing",
			in:       tk(20, 500, hsbw, 30, vmoveto, endchar),
			expected: tk(20, 30, rmoveto, endchar),
		},
		{
			name:     "vmoveto",
			in:       tk(0, 500, hsbw, 30, vmoveto, endchar),
			expected: tk(30, vmoveto, endchar),
		},
		{
			name:     "subroutines",
			subrs:    [][]charstring.Token{tk(10, 20, rlineto, ret)},
			in:       tk(0, 500, hsbw, 0, 0, rmoveto, 0, callsubr, 0, callsubr, endchar),
			expected: tk(0, 0, rmoveto, 10, 20, 10, 20, rlineto, endchar),
		},
		{
			name:     "endchar in subroutine",
			subrs:    [][]charstring.Token{tk(10, 20, rlineto, endchar)},
			in:       tk(0, 500, hsbw, 0, 0, rmoveto, 0, callsubr),
			expected: tk(0, 0, rmoveto, 10, 20, rlineto, endchar),
		},
		{
			name:     "div",
			in:       tk(0, 500, hsbw, 0, 0, rmoveto, 7, 2, div, 0, rlineto, endchar),
			expected: tk(0, 0, rmoveto, 3.5, 0, rlineto, endchar),
		},
		{
			name:  "flex",
			subrs: standardSubrs,
			in: tk(0, 500, hsbw, 0, 0, rmoveto,
				1, callsubr,
				20, 0, rmoveto, 2, callsubr,
				-10, 10, rmoveto, 2, callsubr,
				10, 5, rmoveto, 2, callsubr,
				10, 0, rmoveto, 2, callsubr,
				10, 0, rmoveto, 2, callsubr,
				10, -5, rmoveto, 2, callsubr,
				10, -10, rmoveto, 2, callsubr,
				50, 60, 0, 0, callsubr,
				endchar),
			expected: tk(0, 0, rmoveto,
				10, 10, 10, 5, 10, 0, 10, 0, 10, -5, 10, -10, rrcurveto,
				endchar),
		},
		{
			name: "hstem after moveto",
			in: tk(0, 500, hsbw, 10, 5, hstem, 0, 0, rmoveto,
				30, 5, hstem, endchar),
			expected: tk(10, 5, hstem, 0, 0, rmoveto, 15, 5, hstem, endchar),
		},
		{
			name:  "hint replacement",
			subrs: standardSubrs,
			in: tk(0, 500, hsbw, 0, 20, hstem, 0, 0, rmoveto,
				5, 1, 3, callothersubr, pop, callsubr,
				50, 20, hstem, 10, 0, rlineto, endchar),
			expected: tk(0, 20, hstem, 0, 0, rmoveto,
				30, 20, hstem, 10, 0, rlineto, endchar),
		},
		{
			name: "unknown OtherSubr",
			in: tk(0, 500, hsbw, 0, 0, rmoveto,
				7, 8, 2, 12, callothersubr, pop, pop, rlineto, endchar),
			expected: tk(0, 0, rmoveto, 7, 8, rlineto, endchar),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Flattener{
				DefaultWidth: 500,
				NominalWidth: tt.nominal,
				Subrs:        tt.subrs,
			}
			out, err := f.Flatten(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(tt.expected, out); d != "" {
				t.Error(d)
			}
		})
	}
}

func TestFlattenShortcut(t *testing.T) {
	out, err := Flatten(tk(0, 600, hsbw, 15, 5, rmoveto, 20, 0, rlineto, endchar), 500, 500, nil)
	if err != nil {
		t.Fatal(err)
	}
	expected := tk(100, 15, 5, rmoveto, 20, 0, rlineto, endchar)
	if d := cmp.Diff(expected, out); d != "" {
		t.Error(d)
	}
}

func TestFlattenUnsupported(t *testing.T) {
	tests := []struct {
		name string
		in   []charstring.Token
		op   charstring.Op
	}{
		{"seac", tk(0, 500, hsbw, 0, 0, 0, 65, 194, seac), seac},
		{"sbw", tk(0, 0, 500, 0, sbw, endchar), sbw},
		{"setcurrentpoint", tk(0, 500, hsbw, 10, 10, setcurrentpoint, endchar), setcurrentpoint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Flatten(tt.in, 500, 500, nil)
			var unsupported *UnsupportedOperatorError
			if !errors.As(err, &unsupported) {
				t.Fatalf("expected UnsupportedOperatorError, got %v", err)
			}
			if unsupported.Op != tt.op {
				t.Errorf("wrong operator %s", unsupported.Op)
			}
		})
	}
}

func TestFlattenInvalid(t *testing.T) {
	recursive := [][]charstring.Token{tk(0, callsubr)}
	tests := []struct {
		name  string
		subrs [][]charstring.Token
		in    []charstring.Token
	}{
		{"missing endchar", nil, tk(0, 500, hsbw, 0, 0, rmoveto)},
		{"return at top level", nil, tk(0, 500, hsbw, ret, endchar)},
		{"stack underflow", nil, tk(0, 500, hsbw, 10, rlineto, endchar)},
		{"missing subroutine", nil, tk(0, 500, hsbw, 4, callsubr, endchar)},
		{"invalid subroutine", [][]charstring.Token{nil}, tk(0, callsubr, endchar)},
		{"recursion", recursive, tk(0, callsubr, endchar)},
		{"division by zero", nil, tk(1, 0, div, endchar)},
		{"pop", nil, tk(pop, endchar)},
		{"flex point", nil, tk(0, 2, callothersubr, endchar)},
		{"short flex", standardSubrs, tk(1, callsubr, 0, 0, rmoveto, 50, 0, 0, 0, callsubr, endchar)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Flatten(tt.in, 500, 500, tt.subrs)
			var invalid *InvalidFontError
			if !errors.As(err, &invalid) {
				t.Errorf("expected InvalidFontError, got %v", err)
			}
		})
	}
}

func TestFlattenErrorKinds(t *testing.T) {
	steps := tk(0, 500, hsbw)
	for i := 0; i < 100; i++ {
		steps = append(steps, tk(1, 1, rlineto)...)
	}
	overflow := tk()
	for i := 0; i < 100; i++ {
		overflow = append(overflow, charstring.Num(1))
	}
	tests := []struct {
		name string
		in   []charstring.Token
		kind error
	}{
		{"stack underflow", tk(0, 500, hsbw, 10, rlineto, endchar), postscript.ErrStackUnderflow},
		{"callothersubr underflow", tk(0, 500, hsbw, 5, 99, callothersubr, endchar), postscript.ErrStackUnderflow},
		{"stack overflow", overflow, postscript.ErrStackOverflow},
		{"step limit", steps, postscript.ErrLimitcheck},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Flattener{DefaultWidth: 500, NominalWidth: 500, MaxSteps: 200}
			_, err := f.Flatten(tt.in)
			if !errors.Is(err, tt.kind) {
				t.Errorf("got %v, want %v", err, tt.kind)
			}
			var invalid *InvalidFontError
			if !errors.As(err, &invalid) {
				t.Errorf("%v is not an InvalidFontError", err)
			}
		})
	}
}

func TestFlattenStackOverflow(t *testing.T) {
	var in []charstring.Token
	for i := 0; i < 200; i++ {
		in = append(in, charstring.Num(1))
	}
	in = append(in, charstring.Cmd(endchar))
	_, err := Flatten(in, 0, 0, nil)
	if err != errStackOverflow {
		t.Errorf("expected stack overflow, got %v", err)
	}
}

func TestFlattenSteps(t *testing.T) {
	in := tk(0, 500, hsbw, 0, 0, rmoveto)
	for i := 0; i < 20; i++ {
		in = append(in, tk(1, 1, rlineto)...)
	}
	in = append(in, tk(endchar)...)

	f := &Flattener{MaxSteps: 30}
	_, err := f.Flatten(in)
	if err != errTooManySteps {
		t.Errorf("expected step limit, got %v", err)
	}

	f.MaxSteps = 0
	_, err = f.Flatten(in)
	if err != nil {
		t.Error(err)
	}
}

func TestFlattenLog(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	f := &Flattener{Log: logger}
	_, err := f.Flatten(tk(0, 500, hsbw, 30, 10, vstem, 1, 2, 1, 99, callothersubr, endchar))
	if err != nil {
		t.Fatal(err)
	}
	entries := hook.AllEntries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Message != "vstem passed through unconverted" {
		t.Errorf("unexpected message %q", entries[0].Message)
	}
	if entries[1].Message != "unknown OtherSubr 99 with 1 arguments" {
		t.Errorf("unexpected message %q", entries[1].Message)
	}
}
