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
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"github.com/Nirajsah/pdf.js/postscript/charstring"
)

// Flattener converts decoded Type 1 CharStrings into a single sequence of
// numbers and operators, with all subroutine calls expanded.
//
// The output follows the conventions of Type 2 CharStrings: the glyph width
// is given as an optional leading operand relative to NominalWidth, the
// sidebearing is folded into the first moveto, horizontal stems are relative
// to each other, and runs of line and curve segments are merged into single
// operators.  Flex sequences are replaced by the two curves they describe.
type Flattener struct {
	DefaultWidth float64
	NominalWidth float64

	// Subrs are the decoded subroutines of the font.  A nil entry marks a
	// subroutine which could not be decoded.
	Subrs [][]charstring.Token

	// MaxSteps limits the number of tokens processed per glyph.
	// If zero, DefaultFlattenSteps is used.
	MaxSteps int

	Log *logrus.Logger
}

// DefaultFlattenSteps is the step budget used if Flattener.MaxSteps is zero.
const DefaultFlattenSteps = 1 << 16

const (
	maxSubrDepth = 10
	maxOperands  = 96
)

// Flatten flattens a single glyph.
func Flatten(glyph []charstring.Token, defaultWidth, nominalWidth float64, subrs [][]charstring.Token) ([]charstring.Token, error) {
	f := &Flattener{
		DefaultWidth: defaultWidth,
		NominalWidth: nominalWidth,
		Subrs:        subrs,
	}
	return f.Flatten(glyph)
}

type command struct {
	op   charstring.Op
	args []float64
}

// Flatten returns the flattened form of a decoded CharString.
func (f *Flattener) Flatten(glyph []charstring.Token) ([]charstring.Token, error) {
	maxSteps := f.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultFlattenSteps
	}
	log := f.log()

	var cmds []command
	emit := func(op charstring.Op, args ...float64) {
		cmds = append(cmds, command{op: op, args: args})
	}
	lastCmd := func() *command {
		if len(cmds) == 0 {
			return nil
		}
		return &cmds[len(cmds)-1]
	}

	var stack []float64
	clearStack := func() {
		stack = stack[:0]
	}
	var psStack []float64

	var width float64
	hasWidth := false
	var sb float64
	var lastPoint float64

	inFlex := false
	flexDone := false
	var flex []float64

	moveTo := func(op charstring.Op, dx, dy float64) {
		dx += sb
		sb = 0
		if inFlex {
			flex = append(flex, dx, dy)
			return
		}
		switch {
		case op == charstring.HMoveTo && dy == 0:
			emit(op, dx)
		case op == charstring.VMoveTo && dx == 0:
			emit(op, dy)
		default:
			emit(charstring.RMoveTo, dx, dy)
		}
	}
	lineTo := func(op charstring.Op, dx, dy float64) {
		if c := lastCmd(); c != nil {
			switch c.op {
			case charstring.RLineTo:
				c.args = append(c.args, dx, dy)
				return
			case charstring.HLineTo:
				c.op = charstring.RLineTo
				c.args = []float64{c.args[0], 0, dx, dy}
				return
			case charstring.VLineTo:
				c.op = charstring.RLineTo
				c.args = []float64{0, c.args[0], dx, dy}
				return
			}
		}
		switch op {
		case charstring.HLineTo:
			emit(op, dx)
		case charstring.VLineTo:
			emit(op, dy)
		default:
			emit(op, dx, dy)
		}
	}
	curveTo := func(args ...float64) {
		if c := lastCmd(); c != nil && c.op == charstring.RRCurveTo {
			c.args = append(c.args, args...)
			return
		}
		emit(charstring.RRCurveTo, args...)
	}
	// Horizontal stems are relative to the top of the previous hstem of
	// the glyph, even across other commands.
	hStem := func(y, dy float64) {
		c := lastCmd()
		if c == nil || c.op != charstring.HStem {
			emit(charstring.HStem)
			c = lastCmd()
		}
		c.args = append(c.args, y-lastPoint, dy)
		lastPoint = y + dy
	}

	steps := 0
	cmdStack := [][]charstring.Token{glyph}
	for len(cmdStack) > 0 {
		var code []charstring.Token
		cmdStack, code = cmdStack[:len(cmdStack)-1], cmdStack[len(cmdStack)-1]

	opLoop:
		for len(code) > 0 {
			steps++
			if steps > maxSteps {
				return nil, errTooManySteps
			}

			t := code[0]
			code = code[1:]

			if t.IsNumber() {
				if len(stack) >= maxOperands {
					return nil, errStackOverflow
				}
				stack = append(stack, t.Val)
				continue
			}

			op := t.Op
			if n := numArgs[op]; len(stack) < n {
				return nil, errStackUnderflow
			}
			k := len(stack) - numArgs[op]

			switch op {
			case charstring.HSbW:
				sb = stack[k]
				if w := stack[k+1]; w != f.DefaultWidth && !hasWidth {
					width = w - f.NominalWidth
					hasWidth = true
				}
				clearStack()

			case charstring.RMoveTo:
				moveTo(op, stack[k], stack[k+1])
				clearStack()
			case charstring.HMoveTo:
				moveTo(op, stack[k], 0)
				clearStack()
			case charstring.VMoveTo:
				moveTo(op, 0, stack[k])
				clearStack()

			case charstring.RLineTo:
				lineTo(op, stack[k], stack[k+1])
				clearStack()
			case charstring.HLineTo:
				lineTo(op, stack[k], 0)
				clearStack()
			case charstring.VLineTo:
				lineTo(op, 0, stack[k])
				clearStack()

			case charstring.RRCurveTo:
				curveTo(slices.Clone(stack[k:])...)
				clearStack()
			case charstring.VHCurveTo, charstring.HVCurveTo:
				emit(op, slices.Clone(stack[k:])...)
				clearStack()

			case charstring.ClosePath:
				clearStack()

			case charstring.HStem:
				hStem(stack[k], stack[k+1])
				clearStack()
			case charstring.HStem3:
				for i := k; i < len(stack); i += 2 {
					hStem(stack[i], stack[i+1])
				}
				clearStack()

			case charstring.VStem, charstring.VStem3:
				for i := k; i < len(stack); i += 2 {
					emit(charstring.VStem, stack[i], stack[i+1])
				}
				log.Debugf("%s passed through unconverted", op)
				clearStack()

			case charstring.DotSection:
				clearStack()

			case charstring.Div:
				if stack[k+1] == 0 {
					return nil, invalidSince("division by zero")
				}
				stack[k] /= stack[k+1]
				stack = stack[:k+1]

			case charstring.CallSubr:
				idx := int(stack[k])
				stack = stack[:k]
				if idx < 0 || idx >= len(f.Subrs) || f.Subrs[idx] == nil {
					return nil, invalidSince(fmt.Sprintf("invalid subroutine %d", idx))
				}
				if len(cmdStack) >= maxSubrDepth {
					return nil, invalidSince("subroutines nested too deeply")
				}
				cmdStack = append(cmdStack, code, f.Subrs[idx])
				break opLoop

			case charstring.Return:
				break opLoop

			case charstring.CallOtherSubr:
				subr := int(stack[k+1])
				n := int(stack[k])
				if n < 0 || n > k {
					return nil, errStackUnderflow
				}
				args := slices.Clone(stack[k-n : k])
				stack = stack[:k-n]

				switch subr {
				case 0: // end of flex
					if !inFlex || len(flex) != 14 || n != 3 {
						return nil, invalidSince("malformed flex")
					}
					curveTo(flex[0]+flex[2], flex[1]+flex[3],
						flex[4], flex[5],
						flex[6], flex[7])
					curveTo(flex[8], flex[9],
						flex[10], flex[11],
						flex[12], flex[13])
					inFlex = false
					flexDone = true
					psStack = append(psStack, args[2], args[1])
				case 1: // start of flex
					inFlex = true
					flex = flex[:0]
				case 2: // flex point
					if !inFlex {
						return nil, invalidSince("flex point outside flex")
					}
				case 3: // hint replacement
					psStack = append(psStack, 3)
				default:
					log.Debugf("unknown OtherSubr %d with %d arguments", subr, n)
					for i := len(args) - 1; i >= 0; i-- {
						psStack = append(psStack, args[i])
					}
				}

			case charstring.Pop:
				if len(psStack) == 0 {
					return nil, invalidSince("pop without OtherSubr result")
				}
				if len(stack) >= maxOperands {
					return nil, errStackOverflow
				}
				stack = append(stack, psStack[len(psStack)-1])
				psStack = psStack[:len(psStack)-1]

			case charstring.SetCurrentPoint:
				if !flexDone {
					return nil, &UnsupportedOperatorError{Op: op}
				}
				flexDone = false
				clearStack()

			case charstring.EndChar:
				emit(op)
				return assemble(cmds, width, hasWidth), nil

			default: // seac and sbw
				return nil, &UnsupportedOperatorError{Op: op}
			}
		}
	}
	return nil, errIncomplete
}

func assemble(cmds []command, width float64, hasWidth bool) []charstring.Token {
	n := len(cmds)
	for _, c := range cmds {
		n += len(c.args)
	}
	if hasWidth {
		n++
	}

	res := make([]charstring.Token, 0, n)
	if hasWidth {
		res = append(res, charstring.Num(width))
	}
	for _, c := range cmds {
		for _, x := range c.args {
			res = append(res, charstring.Num(x))
		}
		res = append(res, charstring.Cmd(c.op))
	}
	return res
}

// numArgs gives the number of operands each operator takes from the
// top of the stack.
var numArgs = map[charstring.Op]int{
	charstring.HStem:           2,
	charstring.VStem:           2,
	charstring.VMoveTo:         1,
	charstring.RLineTo:         2,
	charstring.HLineTo:         1,
	charstring.VLineTo:         1,
	charstring.RRCurveTo:       6,
	charstring.CallSubr:        1,
	charstring.HSbW:            2,
	charstring.RMoveTo:         2,
	charstring.HMoveTo:         1,
	charstring.VHCurveTo:       4,
	charstring.HVCurveTo:       4,
	charstring.VStem3:          6,
	charstring.HStem3:          6,
	charstring.Div:             2,
	charstring.CallOtherSubr:   2,
	charstring.SetCurrentPoint: 2,
}

func (f *Flattener) log() *logrus.Logger {
	if f.Log != nil {
		return f.Log
	}
	return discard
}

var discard = &logrus.Logger{
	Out:       io.Discard,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.PanicLevel,
}
