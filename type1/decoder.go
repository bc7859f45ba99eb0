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

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"seehuhn.de/go/geom/matrix"

	"github.com/Nirajsah/pdf.js/postscript"
	"github.com/Nirajsah/pdf.js/postscript/charstring"
	"github.com/Nirajsah/pdf.js/postscript/psenc"
	"github.com/Nirajsah/pdf.js/postscript/type1/names"
)

// Decoder decodes Type 1 font programs which are embedded in PDF files.
type Decoder struct {
	// Registry, if set, memoizes decoded fonts.  A font program which
	// declares a FontName already present in the registry is not
	// interpreted further; the registered font is returned instead.
	Registry *Registry

	// Strict makes the first glyph which cannot be decoded or flattened
	// abort the decoding of the whole font.  Otherwise such glyphs are
	// recorded in Font.Errors and left out.
	Strict bool

	// MaxSteps limits the number of objects executed by the PostScript
	// interpreter.  If zero, postscript.DefaultMaxSteps is used.
	MaxSteps int

	Log *logrus.Logger
}

// Decode decodes the font program data.  The values length1 and length2 are
// the Length1 and Length2 entries of the font stream dictionary.  If length1
// is zero, the segments are located by searching for the eexec operator.
// PFB data is recognized automatically.
//
// If the decoder has a registry, id is the key under which the font is
// memoized, and repeated calls for the same id return the first result.
func (d *Decoder) Decode(id string, data []byte, length1, length2 int) (*Font, error) {
	if d.Registry == nil {
		return d.decode(data, length1, length2)
	}
	return d.Registry.Do(id, func() (*Font, error) {
		return d.decode(data, length1, length2)
	})
}

func (d *Decoder) decode(data []byte, length1, length2 int) (*Font, error) {
	clear, binary, err := split(data, length1, length2)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(clear, []byte("%!")) {
		return nil, ErrInvalidHeader
	}

	log := d.log()

	intp := postscript.NewInterpreter()
	intp.Binary = binary
	intp.MaxSteps = d.MaxSteps
	intp.Log = d.Log
	if d.Registry != nil {
		intp.KnownFont = func(name postscript.Name) bool {
			return d.Registry.Has(string(name))
		}
	}
	err = intp.Execute(bytes.NewReader(clear))
	var known *postscript.KnownFontError
	if errors.As(err, &known) {
		font, ok := d.Registry.Lookup(string(known.FontName))
		if !ok {
			return nil, invalidSince("font " + string(known.FontName) + " disappeared")
		}
		log.WithField("font", string(known.FontName)).Debug("font already decoded")
		return font, nil
	} else if err != nil {
		return nil, err
	}

	fontDict := findFontDict(intp)
	if fontDict == nil {
		return nil, invalidSince("no font dictionary found")
	}
	charStrings, ok := fontDict["CharStrings"].(postscript.Dict)
	if !ok {
		return nil, invalidSince("missing CharStrings")
	}

	f := &Font{
		FontInfo: getFontInfo(fontDict),
		Outlines: &Outlines{
			Glyphs:   make(map[string]*Glyph),
			Encoding: getEncoding(fontDict),
		},
		Dict:    fontDict,
		Errors:  make(map[string]error),
		decoded: make(map[string][]charstring.Token),
	}
	if f.FontName == "" {
		f.FontName = string(intp.FontName)
	}

	private, _ := fontDict["Private"].(postscript.Dict)
	subrs, _ := private["Subrs"].(postscript.Array)
	f.Subrs = make([][]charstring.Token, len(subrs))
	for i, obj := range subrs {
		cs, ok := obj.(*postscript.CharString)
		if !ok || cs.Err != nil {
			log.WithFields(logrus.Fields{
				"font": f.FontName,
				"subr": i,
			}).Debug("invalid subroutine")
			continue
		}
		f.Subrs[i] = cs.Tokens
	}

	glyphFailed := func(name string, err error) error {
		err = &GlyphError{Glyph: name, Err: err}
		if d.Strict {
			return err
		}
		f.Errors[name] = err
		log.WithFields(logrus.Fields{
			"font":  f.FontName,
			"glyph": name,
		}).Warn(err)
		return nil
	}

	glyphNames := maps.Keys(charStrings)
	slices.Sort(glyphNames)

	widths := make(map[string]float64, len(glyphNames))
	var allWidths []float64
	for _, key := range glyphNames {
		name := string(key)
		cs, ok := charStrings[key].(*postscript.CharString)
		if !ok {
			err = invalidSince("CharString is not a string")
		} else {
			err = cs.Err
		}
		if err != nil {
			if err := glyphFailed(name, err); err != nil {
				return nil, err
			}
			continue
		}
		f.decoded[name] = cs.Tokens
		if w, ok := charstring.Width(cs.Tokens); ok {
			widths[name] = w
			allWidths = append(allWidths, w)
		}
	}

	f.DefaultWidth, f.NominalWidth = widthStatistics(allWidths)
	log.WithFields(logrus.Fields{
		"font":    f.FontName,
		"default": f.DefaultWidth,
		"nominal": f.NominalWidth,
	}).Debug("width statistics")

	flattener := &Flattener{
		DefaultWidth: f.DefaultWidth,
		NominalWidth: f.NominalWidth,
		Subrs:        f.Subrs,
		Log:          d.Log,
	}
	for _, key := range glyphNames {
		name := string(key)
		tokens, ok := f.decoded[name]
		if !ok {
			continue
		}
		width, ok := widths[name]
		if !ok {
			width = f.DefaultWidth
		}
		if name == ".notdef" {
			f.NewGlyph(name, width)
			continue
		}

		if !names.IsValid(name) {
			log.WithFields(logrus.Fields{
				"font":  f.FontName,
				"glyph": name,
			}).Warn("invalid glyph name")
		}

		cmds, err := flattener.Flatten(tokens)
		if err != nil {
			if err := glyphFailed(name, err); err != nil {
				return nil, err
			}
			continue
		}
		g := f.NewGlyph(name, width)
		g.Commands = cmds
		g.setOutline()

		charStrings[key] = &postscript.CharString{
			Data:   charstring.Encode(cmds),
			Tokens: cmds,
		}
	}

	return f, nil
}

// widthStatistics returns the most frequent glyph width, and a nominal
// width in the middle of the range of deviations from it.  Ties are
// resolved in favour of the smallest width.
func widthStatistics(widths []float64) (defaultWidth, nominalWidth float64) {
	count := make(map[float64]int)
	for _, w := range widths {
		count[w]++
	}

	used := 0
	for w, n := range count {
		if n > used || n == used && w < defaultWidth {
			defaultWidth = w
			used = n
		}
	}

	var maxNeg, maxPos float64
	for w := range count {
		diff := w - defaultWidth
		if diff < maxNeg {
			maxNeg = diff
		} else if diff > maxPos {
			maxPos = diff
		}
	}
	nominalWidth = defaultWidth + (maxPos+maxNeg)/2
	return defaultWidth, nominalWidth
}

// findFontDict returns the font dictionary registered by definefont.  If the
// program did not call definefont, a dictionary with CharStrings on the
// operand stack or the dictionary stack is used.
func findFontDict(intp *postscript.Interpreter) postscript.Dict {
	if intp.FontName != "" {
		if d, ok := intp.FontDirectory[intp.FontName].(postscript.Dict); ok {
			return d
		}
	}
	for i := len(intp.Stack) - 1; i >= 0; i-- {
		if d, ok := intp.Stack[i].(postscript.Dict); ok {
			if _, ok := d["CharStrings"]; ok {
				return d
			}
		}
	}
	for i := len(intp.DictStack) - 1; i >= 3; i-- {
		d := intp.DictStack[i]
		if _, ok := d["CharStrings"]; ok {
			return d
		}
	}
	return nil
}

func getFontInfo(fontDict postscript.Dict) *FontInfo {
	info := &FontInfo{
		FontName:   getString(fontDict["FontName"]),
		FontMatrix: matrix.Matrix{0.001, 0, 0, 0.001, 0, 0},
	}
	if m, ok := fontDict["FontMatrix"].(postscript.Array); ok && len(m) == 6 {
		var M matrix.Matrix
		valid := true
		for i, obj := range m {
			x, ok := getNumber(obj)
			if !ok {
				valid = false
				break
			}
			M[i] = x
		}
		if valid {
			info.FontMatrix = M
		}
	}

	fi, _ := fontDict["FontInfo"].(postscript.Dict)
	info.Version = getString(fi["version"])
	info.Notice = getString(fi["Notice"])
	info.Copyright = getString(fi["Copyright"])
	info.FullName = getString(fi["FullName"])
	info.FamilyName = getString(fi["FamilyName"])
	info.Weight = getString(fi["Weight"])
	info.ItalicAngle, _ = getNumber(fi["ItalicAngle"])
	if b, ok := fi["isFixedPitch"].(postscript.Boolean); ok {
		info.IsFixedPitch = bool(b)
	}
	info.UnderlinePosition, _ = getNumber(fi["UnderlinePosition"])
	info.UnderlineThickness, _ = getNumber(fi["UnderlineThickness"])
	return info
}

// getEncoding returns the built-in encoding of the font.  If the font has no
// encoding array, StandardEncoding is used.
func getEncoding(fontDict postscript.Dict) []string {
	res := make([]string, 256)
	enc, ok := fontDict["Encoding"].(postscript.Array)
	if !ok {
		copy(res, psenc.StandardEncoding[:])
		return res
	}
	for i := range res {
		res[i] = ".notdef"
	}
	for i, obj := range enc {
		if i >= len(res) {
			break
		}
		if name, ok := obj.(postscript.Name); ok {
			res[i] = string(name)
		}
	}
	return res
}

func getString(obj postscript.Object) string {
	switch obj := obj.(type) {
	case postscript.String:
		return string(obj)
	case postscript.Name:
		return string(obj)
	default:
		return ""
	}
}

func getNumber(obj postscript.Object) (float64, bool) {
	switch obj := obj.(type) {
	case postscript.Integer:
		return float64(obj), true
	case postscript.Real:
		return float64(obj), true
	default:
		return 0, false
	}
}

func (d *Decoder) log() *logrus.Logger {
	if d.Log != nil {
		return d.Log
	}
	return discard
}
