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
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Interpreter executes the PostScript code of a Type 1 font program.
//
// Procedures are executed through an explicit execution stack, so that the
// nesting depth of the input does not translate into native recursion.
type Interpreter struct {
	Stack     []Object
	DictStack []Dict
	ExecStack []*ExecFrame

	SystemDict    Dict
	GlobalDict    Dict
	UserDict      Dict
	FontDirectory Dict

	// FontName is the key used in the last call to definefont.
	FontName Name

	// Binary, if set, is the encrypted segment of the font program.
	// The eexec operator decrypts Binary instead of the remaining input.
	Binary []byte

	// KnownFont, if set, is called when a font program defines FontName.
	// If it returns true, the interpreter stops with a *KnownFontError.
	KnownFont func(Name) bool

	// MaxSteps limits the number of objects executed by a single call to
	// Execute.  If zero, DefaultMaxSteps is used.
	MaxSteps int

	Log *logrus.Logger

	scanners  []*Scanner
	procStart []int
	listDepth int
	steps     int
}

// ExecFrame is an entry on the execution stack.  A frame either executes
// the objects of Proc one by one, or runs a for loop.
type ExecFrame struct {
	Proc Procedure
	Pos  int

	loop *forLoop
}

type forLoop struct {
	next, inc, limit float64
	isReal           bool
	proc             Procedure
}

func (l *forLoop) done() bool {
	return l.inc > 0 && l.next > l.limit || l.inc < 0 && l.next < l.limit
}

// NewInterpreter returns a new interpreter.  The dictionary stack contains
// systemdict, globaldict and userdict.
func NewInterpreter() *Interpreter {
	systemDict := makeSystemDict()
	return &Interpreter{
		DictStack: []Dict{
			systemDict,
			systemDict["globaldict"].(Dict),
			systemDict["userdict"].(Dict),
		},
		SystemDict:    systemDict,
		GlobalDict:    systemDict["globaldict"].(Dict),
		UserDict:      systemDict["userdict"].(Dict),
		FontDirectory: systemDict["FontDirectory"].(Dict),
	}
}

// ExecuteString runs the PostScript code in code.
func (intp *Interpreter) ExecuteString(code string) error {
	return intp.Execute(strings.NewReader(code))
}

// Execute runs the PostScript code read from r.  Execution stops at the end
// of input, or when the program calls closefile.
func (intp *Interpreter) Execute(r io.Reader) error {
	base := len(intp.scanners)
	intp.scanners = append(intp.scanners, NewScanner(r))
	defer func() {
		intp.scanners = intp.scanners[:base]
	}()

	maxSteps := intp.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	intp.steps = 0

	for {
		o, err := intp.next(base)
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		intp.steps++
		if intp.steps > maxSteps {
			return intp.e(eLimitcheck, "more than %d steps", maxSteps)
		}

		err = intp.executeOne(o)
		if err == errClosefile {
			return nil
		} else if err != nil {
			return err
		}
	}
}

// ArrayDepth returns the number of array and procedure literals which have
// been opened but not yet closed.
func (intp *Interpreter) ArrayDepth() int {
	return len(intp.procStart) + intp.listDepth
}

// next returns the next object to execute.  Objects are taken from the top
// of the execution stack, or from the innermost scanner if the execution
// stack is empty.
func (intp *Interpreter) next(base int) (Object, error) {
	for len(intp.ExecStack) > 0 {
		f := intp.ExecStack[len(intp.ExecStack)-1]
		if l := f.loop; l != nil {
			if l.done() {
				intp.ExecStack = intp.ExecStack[:len(intp.ExecStack)-1]
				continue
			}
			// The loop index is returned as the next object, so that every
			// iteration counts against the step budget.
			var index Object = Integer(l.next)
			if l.isReal {
				index = Real(l.next)
			}
			l.next += l.inc
			err := intp.pushProc(l.proc)
			if err != nil {
				return nil, err
			}
			return index, nil
		}
		if f.Pos >= len(f.Proc) {
			intp.ExecStack = intp.ExecStack[:len(intp.ExecStack)-1]
			continue
		}
		o := f.Proc[f.Pos]
		f.Pos++
		return o, nil
	}

	for len(intp.scanners) > base {
		s := intp.scanners[len(intp.scanners)-1]
		o, err := s.ScanToken()
		if err == io.EOF && len(intp.scanners) > base+1 {
			// end of the decrypted segment, continue with the cleartext
			intp.scanners = intp.scanners[:len(intp.scanners)-1]
			continue
		}
		return o, err
	}
	return nil, io.EOF
}

func (intp *Interpreter) executeOne(o Object) error {
	log := intp.log()
	if log.IsLevelEnabled(logrus.TraceLevel) {
		log.Tracef("|- %s | %s", intp.stackString(), intp.objectString(o))
	}

	if len(intp.Stack) > maxOperandStackDepth {
		return intp.e(eStackoverflow, "more than %d operands", maxOperandStackDepth)
	}

	if o == Operator("}") {
		if len(intp.procStart) == 0 {
			return intp.e(eSyntaxerror, "unmatched '}'")
		}
		a := intp.procStart[len(intp.procStart)-1]
		intp.procStart = intp.procStart[:len(intp.procStart)-1]
		b := len(intp.Stack)
		proc := make(Procedure, b-a)
		copy(proc, intp.Stack[a:])
		intp.Stack = append(intp.Stack[:a], proc)
		return nil
	} else if o == Operator("{") {
		if len(intp.procStart) >= maxArrayDepth {
			return intp.e(eLimitcheck, "procedures nested too deeply")
		}
		intp.procStart = append(intp.procStart, len(intp.Stack))
		return nil
	} else if len(intp.procStart) > 0 {
		intp.Stack = append(intp.Stack, o)
		return nil
	}

	switch o := o.(type) {
	case Operator:
		val, ok := intp.load(Name(o))
		if !ok {
			return intp.e(eUndefined, "unknown operator %q", string(o))
		}
		return intp.call(val)
	case builtin:
		return o(intp)
	default:
		intp.Stack = append(intp.Stack, o)
	}
	return nil
}

// call executes the value bound to an operator name.
func (intp *Interpreter) call(val Object) error {
	switch val := val.(type) {
	case builtin:
		return val(intp)
	case Procedure:
		return intp.pushProc(val)
	default:
		intp.Stack = append(intp.Stack, val)
		return nil
	}
}

func (intp *Interpreter) pushProc(proc Procedure) error {
	if len(intp.ExecStack) >= maxExecStackDepth {
		return intp.e(eExecstackoverflow, "more than %d nested procedures", maxExecStackDepth)
	}
	intp.ExecStack = append(intp.ExecStack, &ExecFrame{Proc: proc})
	return nil
}

func (intp *Interpreter) load(name Name) (Object, bool) {
	for j := len(intp.DictStack) - 1; j >= 0; j-- {
		d := intp.DictStack[j]
		if val, ok := d[name]; ok {
			return val, true
		}
	}
	return nil, false
}

func (intp *Interpreter) currentScanner() *Scanner {
	return intp.scanners[len(intp.scanners)-1]
}

func (intp *Interpreter) log() *logrus.Logger {
	if intp.Log != nil {
		return intp.Log
	}
	return discard
}

var discard = &logrus.Logger{
	Out:       io.Discard,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.PanicLevel,
}

func (intp *Interpreter) stackString() string {
	var ss []string
	for _, o := range intp.Stack {
		ss = append(ss, intp.objectString2(o, true))
	}
	return strings.Join(ss, " ")
}

func (intp *Interpreter) objectString(o Object) string {
	return intp.objectString2(o, false)
}

func (intp *Interpreter) objectString2(o Object, short bool) string {
	switch o := o.(type) {
	case Boolean:
		return fmt.Sprintf("%t", o)
	case Integer:
		return fmt.Sprint(o)
	case Real:
		return fmt.Sprint(o)
	case Name:
		return "/" + string(o)
	case Operator:
		return string(o)
	case String:
		if short && len(o) > 8 {
			return "(...)"
		}
		return o.PS()
	case Array:
		var ss []string
		l := 1
		for _, oi := range o {
			si := intp.objectString2(oi, true)
			l += 1 + len(si)
			if short && l > 8 || l > 40 {
				ss = append(ss, "...")
				break
			}
			ss = append(ss, si)
		}
		return "[" + strings.Join(ss, " ") + "]"
	case Procedure:
		if short {
			return fmt.Sprintf("{%d}", len(o))
		}
		var ss []string
		l := 1
		for _, oi := range o {
			si := intp.objectString2(oi, true)
			l += 1 + len(si)
			if l > 40 {
				ss = append(ss, "...")
				break
			}
			ss = append(ss, si)
		}
		return "{" + strings.Join(ss, " ") + "}"
	case Dict:
		if isSameDict(o, intp.SystemDict) {
			return "*systemdict*"
		} else if isSameDict(o, intp.UserDict) {
			return "*userdict*"
		}
		return fmt.Sprintf("<Dict %d>", len(o))
	case File:
		return "currentfile"
	case *CharString:
		return o.String()
	case builtin:
		return "<builtin>"
	case mark:
		return "*"
	default:
		return fmt.Sprintf("<%T>", o)
	}
}

// DefaultMaxSteps is the step budget used if Interpreter.MaxSteps is zero.
const DefaultMaxSteps = 1 << 22

const (
	maxArrayDepth        = 100
	maxArraySize         = 65536
	maxDictSize          = 65536
	maxDictStackDepth    = 20
	maxExecStackDepth    = 250
	maxNameLength        = 127
	maxOperandStackDepth = 500
	maxStringSize        = 65535
)
