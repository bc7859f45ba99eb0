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

// T1flatten decodes a Type 1 font program and prints the flattened
// CharStrings of its glyphs, or the font metrics in AFM format.
//
// Usage:
//
//	t1flatten [--length1 N --length2 N] [--glyph NAME] [--afm] FILE
//
// FILE can be a PFA or PFB file, or the raw data of an embedded font stream.
// For font streams, --length1 and --length2 give the Length1 and Length2
// entries of the stream dictionary.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"github.com/speedata/optionparser"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/Nirajsah/pdf.js/postscript/afm"
	"github.com/Nirajsah/pdf.js/postscript/charstring"
	"github.com/Nirajsah/pdf.js/postscript/type1"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&nested.Formatter{
		HideKeys:    true,
		FieldsOrder: []string{"font", "glyph"},
	})
	log.SetOutput(os.Stderr)
}

func run() error {
	var length1, length2, glyphName string
	var writeAFM, strict, verbose bool

	op := optionparser.NewOptionParser()
	op.On("--length1 N", "Length1 of the font stream", &length1)
	op.On("--length2 N", "Length2 of the font stream", &length2)
	op.On("--glyph NAME", "only show the glyph NAME", &glyphName)
	op.On("--afm", "write font metrics in AFM format", &writeAFM)
	op.On("--strict", "fail on the first broken glyph", &strict)
	op.On("-v", "--verbose", "show debug messages", &verbose)
	err := op.Parse()
	if err != nil {
		return err
	}
	if len(op.Extra) != 1 {
		op.Help()
		return nil
	}
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	l1, err := parseLength("length1", length1)
	if err != nil {
		return err
	}
	l2, err := parseLength("length2", length2)
	if err != nil {
		return err
	}

	fname := op.Extra[0]
	data, err := os.ReadFile(fname)
	if err != nil {
		return err
	}

	dec := &type1.Decoder{
		Strict: strict,
		Log:    log,
	}
	font, err := dec.Decode(fname, data, l1, l2)
	if err != nil {
		return err
	}

	if writeAFM {
		return afm.FromFont(font).Write(os.Stdout)
	}

	out := bufio.NewWriter(os.Stdout)
	glyphNames := font.GlyphList()
	if glyphName != "" {
		glyphNames = []string{glyphName}
	}
	for _, name := range glyphNames {
		g, ok := font.Glyphs[name]
		if !ok {
			if err, broken := font.Errors[name]; broken {
				fmt.Fprintf(out, "%s: %v\n", name, err)
			} else if glyphName != "" {
				log.WithField("glyph", name).Warn("glyph not found")
			}
			continue
		}
		if g.Commands == nil {
			fmt.Fprintf(out, "%s: width %g\n", name, g.WidthX)
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", name, format(g.Commands))
	}

	if glyphName == "" {
		broken := maps.Keys(font.Errors)
		slices.Sort(broken)
		for _, name := range broken {
			fmt.Fprintf(out, "%s: %v\n", name, font.Errors[name])
		}
	}

	return out.Flush()
}

func parseLength(key, val string) (int, error) {
	if val == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, val)
	}
	return n, nil
}

func format(cmds []charstring.Token) string {
	parts := make([]string, len(cmds))
	for i, t := range cmds {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

func main() {
	if err := run(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
