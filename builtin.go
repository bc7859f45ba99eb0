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
	"math"
	"reflect"

	"github.com/Nirajsah/pdf.js/postscript/charstring"
	"github.com/Nirajsah/pdf.js/postscript/psenc"
)

// makeSystemDict returns the operators and dictionaries needed by Type 1
// font programs.  This is a small subset of PostScript.
func makeSystemDict() Dict {
	std := make(Array, len(psenc.StandardEncoding))
	for code, glyph := range psenc.StandardEncoding {
		std[code] = Name(glyph)
	}

	ops := map[Name]builtin{
		"[":           opArrayStart,
		"]":           opArrayEnd,
		"<<":          opMark,
		">>":          opDictEnd,
		"array":       opArray,
		"begin":       opBegin,
		"bind":        opBind,
		"cleartomark": opCleartomark,
		"closefile":   opClosefile,
		"count":       opCount,
		"currentdict": opCurrentdict,
		"currentfile": opCurrentfile,
		"cvx":         opCvx,
		"def":         opDef,
		"definefont":  opDefinefont,
		"dict":        opDict,
		"dup":         opDup,
		"eexec":       opEexec,
		"end":         opEnd,
		"eq":          opEq,
		"exch":        opExch,
		"exec":        opExec,
		"executeonly": opAccess,
		"for":         opFor,
		"get":         opGet,
		"if":          opIf,
		"ifelse":      opIfelse,
		"index":       opIndex,
		"known":       opKnown,
		"length":      opLength,
		"load":        opLoad,
		"mark":        opMark,
		"ne":          opNe,
		"noaccess":    opAccess,
		"not":         opNot,
		"pop":         opPop,
		"put":         opPut,
		"readonly":    opAccess,
		"readstring":  opReadstring,
		"string":      opString,
		"where":       opWhere,
	}

	sys := make(Dict, len(ops)+8)
	for name, op := range ops {
		sys[name] = op
	}
	sys["true"] = Boolean(true)
	sys["false"] = Boolean(false)
	sys["StandardEncoding"] = std
	sys["FontDirectory"] = Dict{}
	sys["globaldict"] = Dict{}
	sys["userdict"] = Dict{}
	sys["systemdict"] = sys
	return sys
}

// args returns the top n operands, or a stackunderflow error.
func (intp *Interpreter) args(op string, n int) ([]Object, error) {
	if len(intp.Stack) < n {
		return nil, intp.e(eStackunderflow, "%s: needs %d operands", op, n)
	}
	return intp.Stack[len(intp.Stack)-n:], nil
}

func (intp *Interpreter) drop(n int) {
	intp.Stack = intp.Stack[:len(intp.Stack)-n]
}

func (intp *Interpreter) push(objs ...Object) {
	intp.Stack = append(intp.Stack, objs...)
}

// findMark returns the stack position of the topmost mark.
func (intp *Interpreter) findMark() (int, bool) {
	for i := len(intp.Stack) - 1; i >= 0; i-- {
		if intp.Stack[i] == theMark {
			return i, true
		}
	}
	return -1, false
}

// sizeArg checks the size operand of array, dict and string.
func (intp *Interpreter) sizeArg(op string, limit int) (int, error) {
	a, err := intp.args(op, 1)
	if err != nil {
		return 0, err
	}
	size, ok := a[0].(Integer)
	switch {
	case !ok:
		return 0, intp.e(eTypecheck, "%s: size must be an integer, not %T", op, a[0])
	case size < 0:
		return 0, intp.e(eRangecheck, "%s: negative size %d", op, size)
	case size > Integer(limit):
		return 0, intp.e(eLimitcheck, "%s: size %d too large", op, size)
	}
	intp.drop(1)
	return int(size), nil
}

// indexArg checks an index into an object of length n.
func (intp *Interpreter) indexArg(op string, sel Object, n int) (int, error) {
	idx, ok := sel.(Integer)
	if !ok {
		return 0, intp.e(eTypecheck, "%s: index must be an integer, not %T", op, sel)
	}
	if idx < 0 || int(idx) >= n {
		return 0, intp.e(eRangecheck, "%s: index %d out of range", op, idx)
	}
	return int(idx), nil
}

func opMark(intp *Interpreter) error {
	intp.push(theMark)
	return nil
}

func opArrayStart(intp *Interpreter) error {
	if intp.listDepth >= maxArrayDepth {
		return intp.e(eLimitcheck, "[: arrays nested too deeply")
	}
	intp.listDepth++
	return opMark(intp)
}

func opArrayEnd(intp *Interpreter) error {
	i, ok := intp.findMark()
	if !ok {
		return intp.e(eUnmatchedmark, "]: missing '['")
	}
	elems := make(Array, len(intp.Stack)-i-1)
	copy(elems, intp.Stack[i+1:])
	intp.Stack = append(intp.Stack[:i], elems)
	if intp.listDepth > 0 {
		intp.listDepth--
	}
	return nil
}

func opDictEnd(intp *Interpreter) error {
	i, ok := intp.findMark()
	if !ok {
		return intp.e(eUnmatchedmark, ">>: missing '<<'")
	}
	kv := intp.Stack[i+1:]
	if len(kv)%2 == 1 {
		return intp.e(eRangecheck, ">>: key without value")
	}
	d := make(Dict, len(kv)/2)
	for len(kv) > 0 {
		key, ok := kv[0].(Name)
		if !ok {
			return intp.e(eTypecheck, ">>: key must be a name, not %T", kv[0])
		}
		d[key] = kv[1]
		kv = kv[2:]
	}
	intp.Stack = append(intp.Stack[:i], d)
	return nil
}

func opCleartomark(intp *Interpreter) error {
	i, ok := intp.findMark()
	if !ok {
		return intp.e(eUnmatchedmark, "cleartomark: no mark found")
	}
	intp.Stack = intp.Stack[:i]
	return nil
}

func opArray(intp *Interpreter) error {
	size, err := intp.sizeArg("array", maxArraySize)
	if err != nil {
		return err
	}
	intp.push(make(Array, size))
	return nil
}

func opDict(intp *Interpreter) error {
	size, err := intp.sizeArg("dict", maxDictSize)
	if err != nil {
		return err
	}
	intp.push(make(Dict, size))
	return nil
}

func opString(intp *Interpreter) error {
	size, err := intp.sizeArg("string", maxStringSize)
	if err != nil {
		return err
	}
	intp.push(make(String, size))
	return nil
}

func opBegin(intp *Interpreter) error {
	a, err := intp.args("begin", 1)
	if err != nil {
		return err
	}
	d, ok := a[0].(Dict)
	if !ok {
		return intp.e(eTypecheck, "begin: needs a dictionary, not %T", a[0])
	}
	if len(intp.DictStack) >= maxDictStackDepth {
		return intp.e(eDictstackoverflow, "begin")
	}
	intp.drop(1)
	intp.DictStack = append(intp.DictStack, d)
	return nil
}

// opEnd never removes systemdict, globaldict or userdict.
func opEnd(intp *Interpreter) error {
	if n := len(intp.DictStack); n > 3 {
		intp.DictStack = intp.DictStack[:n-1]
	}
	return nil
}

func opBind(intp *Interpreter) error {
	a, err := intp.args("bind", 1)
	if err != nil {
		return err
	}
	proc, ok := a[0].(Procedure)
	if !ok {
		return intp.e(eTypecheck, "bind: needs a procedure, not %T", a[0])
	}
	intp.bindProc(proc, 0)
	return nil
}

// bindProc replaces operator names which refer to builtins by the builtins
// themselves.
func (intp *Interpreter) bindProc(proc Procedure, depth int) {
	if depth > maxArrayDepth {
		return
	}
	for i, elem := range proc {
		switch elem := elem.(type) {
		case Procedure:
			intp.bindProc(elem, depth+1)
		case Operator:
			if val, ok := intp.load(Name(elem)); ok {
				if b, isBuiltin := val.(builtin); isBuiltin {
					proc[i] = b
				}
			}
		}
	}
}

func opClosefile(intp *Interpreter) error {
	a, err := intp.args("closefile", 1)
	if err != nil {
		return err
	}
	if _, ok := a[0].(File); !ok {
		return intp.e(eTypecheck, "closefile: needs a file, not %T", a[0])
	}
	intp.drop(1)
	return errClosefile
}

var errClosefile = errors.New("closefile")

func opCount(intp *Interpreter) error {
	intp.push(Integer(len(intp.Stack)))
	return nil
}

func opCurrentdict(intp *Interpreter) error {
	intp.push(intp.DictStack[len(intp.DictStack)-1])
	return nil
}

func opCurrentfile(intp *Interpreter) error {
	intp.push(File{})
	return nil
}

func opCvx(intp *Interpreter) error {
	a, err := intp.args("cvx", 1)
	if err != nil {
		return err
	}
	switch x := a[0].(type) {
	case Array:
		a[0] = append(Procedure{}, x...)
	case Name:
		a[0] = Operator(x)
	case String:
		a[0] = Operator(x)
	}
	return nil
}

func opDef(intp *Interpreter) error {
	a, err := intp.args("def", 2)
	if err != nil {
		return err
	}
	key, ok := a[0].(Name)
	if !ok {
		return intp.e(eTypecheck, "def: key must be a name, not %T", a[0])
	}
	if fontName, ok := a[1].(Name); ok && key == "FontName" && intp.KnownFont != nil {
		if intp.KnownFont(fontName) {
			return &KnownFontError{FontName: fontName}
		}
	}
	intp.DictStack[len(intp.DictStack)-1][key] = a[1]
	intp.drop(2)
	return nil
}

// opDefinefont registers a font dictionary in FontDirectory.  Only
// dictionaries with a CharStrings entry are accepted.
func opDefinefont(intp *Interpreter) error {
	a, err := intp.args("definefont", 2)
	if err != nil {
		return err
	}
	name, ok := a[0].(Name)
	if !ok {
		return intp.e(eTypecheck, "definefont: key must be a name, not %T", a[0])
	}
	font, ok := a[1].(Dict)
	if !ok {
		return intp.e(eTypecheck, "definefont: needs a font dictionary, not %T", a[1])
	}
	if _, ok := font["CharStrings"].(Dict); !ok {
		return intp.e(eInvalidfont, "definefont: %s has no CharStrings", name)
	}

	intp.FontDirectory[name] = font
	intp.FontName = name
	intp.log().WithField("font", string(name)).Debug("definefont")

	intp.drop(2)
	intp.push(font)
	return nil
}

func opDup(intp *Interpreter) error {
	a, err := intp.args("dup", 1)
	if err != nil {
		return err
	}
	intp.push(a[0])
	return nil
}

func opEq(intp *Interpreter) error {
	a, err := intp.args("eq", 2)
	if err != nil {
		return err
	}
	res := Boolean(equal(a[0], a[1]))
	intp.drop(2)
	intp.push(res)
	return nil
}

func opNe(intp *Interpreter) error {
	if err := opEq(intp); err != nil {
		return err
	}
	top := len(intp.Stack) - 1
	intp.Stack[top] = !intp.Stack[top].(Boolean)
	return nil
}

func opExch(intp *Interpreter) error {
	a, err := intp.args("exch", 2)
	if err != nil {
		return err
	}
	a[0], a[1] = a[1], a[0]
	return nil
}

func opExec(intp *Interpreter) error {
	a, err := intp.args("exec", 1)
	if err != nil {
		return err
	}
	obj := a[0]
	intp.drop(1)
	if op, isOp := obj.(Operator); isOp {
		return intp.executeOne(op)
	}
	return intp.call(obj)
}

// opFor pushes a loop frame onto the execution stack.  The loop body runs
// from the main loop of the interpreter.  The limit is inclusive, so
// "0 1 2 {} for" leaves 0, 1 and 2 on the stack.
func opFor(intp *Interpreter) error {
	a, err := intp.args("for", 4)
	if err != nil {
		return err
	}
	var val [3]float64
	isReal := false
	for i, x := range a[:3] {
		switch x := x.(type) {
		case Integer:
			val[i] = float64(x)
		case Real:
			val[i] = float64(x)
			isReal = isReal || i < 2
		default:
			return intp.e(eTypecheck, "for: needs numbers, not %T", x)
		}
	}
	proc, ok := a[3].(Procedure)
	if !ok {
		return intp.e(eTypecheck, "for: needs a procedure, not %T", a[3])
	}
	intp.drop(4)

	start, inc, limit := val[0], val[1], val[2]
	if inc == 0 || math.IsNaN(start+inc+limit) {
		return nil
	}
	if len(intp.ExecStack) >= maxExecStackDepth {
		return intp.e(eExecstackoverflow, "for: too many nested procedures")
	}
	loop := &forLoop{next: start, inc: inc, limit: limit, isReal: isReal, proc: proc}
	intp.ExecStack = append(intp.ExecStack, &ExecFrame{loop: loop})
	return nil
}

func opGet(intp *Interpreter) error {
	a, err := intp.args("get", 2)
	if err != nil {
		return err
	}
	var res Object
	switch obj := a[0].(type) {
	case Dict:
		key, ok := a[1].(Name)
		if !ok {
			return intp.e(eTypecheck, "get: key must be a name, not %T", a[1])
		}
		val, ok := obj[key]
		if !ok {
			return intp.e(eUndefined, "get: key %q not found", key)
		}
		res = val
	case Array:
		i, err := intp.indexArg("get", a[1], len(obj))
		if err != nil {
			return err
		}
		res = obj[i]
	case Procedure:
		i, err := intp.indexArg("get", a[1], len(obj))
		if err != nil {
			return err
		}
		res = obj[i]
	case String:
		i, err := intp.indexArg("get", a[1], len(obj))
		if err != nil {
			return err
		}
		res = Integer(obj[i])
	default:
		return intp.e(eTypecheck, "get: cannot index %T", obj)
	}
	intp.drop(2)
	intp.push(res)
	return nil
}

func opPut(intp *Interpreter) error {
	a, err := intp.args("put", 3)
	if err != nil {
		return err
	}
	val := a[2]
	switch obj := a[0].(type) {
	case Dict:
		key, ok := a[1].(Name)
		if !ok {
			return intp.e(eTypecheck, "put: key must be a name, not %T", a[1])
		}
		obj[key] = val
	case Array:
		i, err := intp.indexArg("put", a[1], len(obj))
		if err != nil {
			return err
		}
		obj[i] = val
	case Procedure:
		i, err := intp.indexArg("put", a[1], len(obj))
		if err != nil {
			return err
		}
		obj[i] = val
	case String:
		i, err := intp.indexArg("put", a[1], len(obj))
		if err != nil {
			return err
		}
		c, ok := val.(Integer)
		if !ok {
			return intp.e(eTypecheck, "put: string elements must be integers, not %T", val)
		}
		obj[i] = byte(c)
	default:
		return intp.e(eTypecheck, "put: cannot index %T", obj)
	}
	intp.drop(3)
	return nil
}

func opIf(intp *Interpreter) error {
	a, err := intp.args("if", 2)
	if err != nil {
		return err
	}
	cond, ok := a[0].(Boolean)
	if !ok {
		return intp.e(eTypecheck, "if: condition must be a boolean, not %T", a[0])
	}
	proc, ok := a[1].(Procedure)
	if !ok {
		return intp.e(eTypecheck, "if: needs a procedure, not %T", a[1])
	}
	intp.drop(2)
	if !cond {
		return nil
	}
	return intp.pushProc(proc)
}

func opIfelse(intp *Interpreter) error {
	a, err := intp.args("ifelse", 3)
	if err != nil {
		return err
	}
	cond, ok := a[0].(Boolean)
	if !ok {
		return intp.e(eTypecheck, "ifelse: condition must be a boolean, not %T", a[0])
	}
	yes, ok1 := a[1].(Procedure)
	no, ok2 := a[2].(Procedure)
	if !ok1 || !ok2 {
		return intp.e(eTypecheck, "ifelse: needs two procedures")
	}
	intp.drop(3)
	if cond {
		return intp.pushProc(yes)
	}
	return intp.pushProc(no)
}

func opIndex(intp *Interpreter) error {
	a, err := intp.args("index", 1)
	if err != nil {
		return err
	}
	n, ok := a[0].(Integer)
	if !ok {
		return intp.e(eTypecheck, "index: needs an integer, not %T", a[0])
	}
	intp.drop(1)
	top := len(intp.Stack) - 1
	if n < 0 || int(n) > top {
		return intp.e(eRangecheck, "index: %d out of range", n)
	}
	intp.push(intp.Stack[top-int(n)])
	return nil
}

func opKnown(intp *Interpreter) error {
	a, err := intp.args("known", 2)
	if err != nil {
		return err
	}
	var known bool
	switch obj := a[0].(type) {
	case Dict:
		key, ok := a[1].(Name)
		if !ok {
			return intp.e(eTypecheck, "known: key must be a name, not %T", a[1])
		}
		_, known = obj[key]
	case Array:
		idx, ok := a[1].(Integer)
		if !ok {
			return intp.e(eTypecheck, "known: index must be an integer, not %T", a[1])
		}
		known = idx >= 0 && int(idx) < len(obj) && obj[idx] != nil
	default:
		return intp.e(eTypecheck, "known: cannot look up keys in %T", obj)
	}
	intp.drop(2)
	intp.push(Boolean(known))
	return nil
}

func opLength(intp *Interpreter) error {
	a, err := intp.args("length", 1)
	if err != nil {
		return err
	}
	var n int
	switch obj := a[0].(type) {
	case Array, Procedure, Dict, String, Name:
		n = reflect.ValueOf(obj).Len()
	default:
		return intp.e(eTypecheck, "length: invalid operand %T", obj)
	}
	a[0] = Integer(n)
	return nil
}

func opLoad(intp *Interpreter) error {
	a, err := intp.args("load", 1)
	if err != nil {
		return err
	}
	key, ok := a[0].(Name)
	if !ok {
		return intp.e(eTypecheck, "load: key must be a name, not %T", a[0])
	}
	val, ok := intp.load(key)
	if !ok {
		return intp.e(eUndefined, "load: %s not found", key)
	}
	a[0] = val
	return nil
}

func opNot(intp *Interpreter) error {
	a, err := intp.args("not", 1)
	if err != nil {
		return err
	}
	switch x := a[0].(type) {
	case Boolean:
		a[0] = !x
	case Integer:
		a[0] = ^x
	default:
		return intp.e(eTypecheck, "not: invalid operand %T", x)
	}
	return nil
}

func opPop(intp *Interpreter) error {
	if _, err := intp.args("pop", 1); err != nil {
		return err
	}
	intp.drop(1)
	return nil
}

// opAccess implements readonly, executeonly and noaccess.  Access
// attributes are not tracked, so the operand is left unchanged.
func opAccess(intp *Interpreter) error {
	_, err := intp.args("readonly", 1)
	return err
}

// opReadstring reads a CharString from the current file.  The bytes are
// decrypted using the lenIV value found on the dictionary stack, and decoded.
// The result is pushed as a *CharString, followed by a boolean which
// indicates whether the string could be filled completely.
func opReadstring(intp *Interpreter) error {
	a, err := intp.args("readstring", 2)
	if err != nil {
		return err
	}
	if _, ok := a[0].(File); !ok {
		return intp.e(eTypecheck, "readstring: needs a file, not %T", a[0])
	}
	buf, ok := a[1].(String)
	if !ok {
		return intp.e(eTypecheck, "readstring: needs a string, not %T", a[1])
	}
	intp.drop(2)

	// One white space character separates the data from the operator.
	s := intp.currentScanner()
	if _, err := s.Next(); err != nil && err != io.EOF {
		return intp.e(eIoerror, "readstring: %v", err)
	}
	n, err := s.Read(buf)
	if err != nil && err != io.EOF {
		return intp.e(eIoerror, "readstring: %v", err)
	}

	data := []byte(buf[:n])
	if lenIV := intp.lenIV(); lenIV >= 0 {
		data = Decrypt(data, CharStringKey, lenIV)
	}
	cs := &CharString{Data: data}
	cs.Tokens, cs.Err = charstring.Decode(data)

	intp.push(cs, Boolean(n == len(buf)))
	return nil
}

// lenIV returns the number of random bytes at the start of each encrypted
// CharString.  A negative value means that CharStrings are not encrypted.
func (intp *Interpreter) lenIV() int {
	if x, ok := intp.load("lenIV"); ok {
		if n, ok := x.(Integer); ok {
			return int(n)
		}
	}
	return 4
}

func opWhere(intp *Interpreter) error {
	a, err := intp.args("where", 1)
	if err != nil {
		return err
	}
	key, ok := a[0].(Name)
	if !ok {
		return intp.e(eTypecheck, "where: key must be a name, not %T", a[0])
	}
	intp.drop(1)
	for i := len(intp.DictStack) - 1; i >= 0; i-- {
		d := intp.DictStack[i]
		if _, ok := d[key]; ok {
			intp.push(d, Boolean(true))
			return nil
		}
	}
	intp.push(Boolean(false))
	return nil
}

// equal implements the comparison of eq and ne.  Numbers compare by value,
// strings and names by content, dictionaries by identity.
func equal(a, b Object) bool {
	if da, ok := a.(Dict); ok {
		db, ok := b.(Dict)
		return ok && isSameDict(da, db)
	}
	ka, kb := eqKey(a), eqKey(b)
	return ka != nil && ka == kb
}

func eqKey(obj Object) interface{} {
	switch obj := obj.(type) {
	case Integer:
		return float64(obj)
	case Real:
		return float64(obj)
	case String:
		return string(obj)
	case Name:
		return string(obj)
	case Operator:
		return string(obj)
	case Boolean, File, mark:
		return obj
	}
	return nil
}

// isSameDict reports whether a and b refer to the same dictionary.
func isSameDict(a, b Dict) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
