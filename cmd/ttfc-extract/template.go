// seehuhn.de/go/ttfc - extract TrueType glyph outlines as SVG
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// nameTemplate is a compiled output file name template.
//
// Templates use python-style replacement fields: "{index}", "{gname}"
// (with "{name}" as an alias), and "{fname}".  Fields can carry a format
// specification, e.g. "{index:0>4x}".  Literal braces are written as "{{"
// and "}}".
type nameTemplate struct {
	parts []templatePart
}

type templatePart struct {
	literal string
	field   string // empty for literal text
	spec    formatSpec
}

// nameVars holds the values available in a name template.
type nameVars struct {
	Index     int
	GlyphName string
	FontName  string
}

var templateFields = map[string]bool{ // true for integer fields
	"index": true,
	"gname": false,
	"name":  false,
	"fname": false,
}

func parseTemplate(s string) (*nameTemplate, error) {
	t := &nameTemplate{}
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.parts = append(t.parts, templatePart{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '{' && i+1 < len(s) && s[i+1] == '{':
			lit.WriteByte('{')
			i++
		case c == '}' && i+1 < len(s) && s[i+1] == '}':
			lit.WriteByte('}')
			i++
		case c == '}':
			return nil, errors.New("single '}' encountered in name template")
		case c == '{':
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return nil, errors.New("single '{' encountered in name template")
			}
			field, specText, _ := strings.Cut(s[i+1:i+end], ":")
			isInt, known := templateFields[field]
			if !known {
				return nil, fmt.Errorf("unknown field %q in name template", field)
			}
			spec, err := parseFormatSpec(specText)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", field, err)
			}
			if err := spec.check(isInt); err != nil {
				return nil, fmt.Errorf("field %q: %w", field, err)
			}
			flush()
			t.parts = append(t.parts, templatePart{field: field, spec: spec})
			i += end
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return t, nil
}

// Execute expands the template.
func (t *nameTemplate) Execute(v *nameVars) string {
	var b strings.Builder
	for _, part := range t.parts {
		switch part.field {
		case "":
			b.WriteString(part.literal)
		case "index":
			b.WriteString(part.spec.formatInt(v.Index))
		case "gname", "name":
			b.WriteString(part.spec.formatString(v.GlyphName))
		case "fname":
			b.WriteString(part.spec.formatString(v.FontName))
		}
	}
	return b.String()
}

// formatSpec is a parsed python format specification of the form
// [[fill]align][sign][#][0][width][.precision][type].
type formatSpec struct {
	fill      rune
	align     byte // 0, '<', '>', '^', or '='
	sign      byte // 0, '+', '-', or ' '
	alternate bool
	width     int
	precision int // -1 if not given
	verb      byte
}

func parseFormatSpec(s string) (formatSpec, error) {
	spec := formatSpec{fill: ' ', precision: -1}
	if s == "" {
		return spec, nil
	}

	isAlign := func(c byte) bool { return strings.IndexByte("<>^=", c) >= 0 }
	if r, size := utf8.DecodeRuneInString(s); size < len(s) && isAlign(s[size]) {
		spec.fill = r
		spec.align = s[size]
		s = s[size+1:]
	} else if isAlign(s[0]) {
		spec.align = s[0]
		s = s[1:]
	}

	if s != "" && strings.IndexByte("+- ", s[0]) >= 0 {
		spec.sign = s[0]
		s = s[1:]
	}
	if s != "" && s[0] == '#' {
		spec.alternate = true
		s = s[1:]
	}
	if s != "" && s[0] == '0' {
		if spec.align == 0 {
			spec.fill = '0'
			spec.align = '='
		}
		s = s[1:]
	}

	n, s := leadingDigits(s)
	if n != "" {
		w, err := strconv.Atoi(n)
		if err != nil {
			return spec, fmt.Errorf("invalid width %q", n)
		}
		spec.width = w
	}

	if s != "" && s[0] == '.' {
		var p string
		p, s = leadingDigits(s[1:])
		if p == "" {
			return spec, errors.New("format specifier missing precision")
		}
		prec, err := strconv.Atoi(p)
		if err != nil {
			return spec, fmt.Errorf("invalid precision %q", p)
		}
		spec.precision = prec
	}

	switch {
	case s == "":
	case len(s) == 1 && strings.IndexByte("sdxXob", s[0]) >= 0:
		spec.verb = s[0]
	default:
		return spec, fmt.Errorf("invalid format specifier %q", s)
	}
	return spec, nil
}

func leadingDigits(s string) (string, string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:]
}

// check verifies that the specification can be used for a value of the
// given kind.
func (spec formatSpec) check(isInt bool) error {
	if isInt {
		if spec.verb == 's' {
			return errors.New("unknown format code 's' for an integer")
		}
		if spec.precision >= 0 {
			return errors.New("precision not allowed in integer format specifier")
		}
		return nil
	}

	if spec.verb != 0 && spec.verb != 's' {
		return fmt.Errorf("unknown format code '%c' for a string", spec.verb)
	}
	if spec.sign != 0 {
		return errors.New("sign not allowed in string format specifier")
	}
	if spec.alternate {
		return errors.New("alternate form (#) not allowed in string format specifier")
	}
	if spec.align == '=' {
		return errors.New("'=' alignment not allowed in string format specifier")
	}
	return nil
}

func (spec formatSpec) formatInt(x int) string {
	var prefix string
	switch spec.sign {
	case '+':
		prefix = "+"
	case ' ':
		prefix = " "
	}
	if x < 0 {
		prefix = "-"
	}

	abs := uint64(x)
	if x < 0 {
		abs = uint64(-x)
	}
	var digits string
	switch spec.verb {
	case 'x':
		digits = strconv.FormatUint(abs, 16)
		if spec.alternate {
			prefix += "0x"
		}
	case 'X':
		digits = strings.ToUpper(strconv.FormatUint(abs, 16))
		if spec.alternate {
			prefix += "0X"
		}
	case 'o':
		digits = strconv.FormatUint(abs, 8)
		if spec.alternate {
			prefix += "0o"
		}
	case 'b':
		digits = strconv.FormatUint(abs, 2)
		if spec.alternate {
			prefix += "0b"
		}
	default:
		digits = strconv.FormatUint(abs, 10)
	}

	align := spec.align
	if align == 0 {
		align = '>'
	}
	if align == '=' {
		pad := spec.width - len(prefix) - len(digits)
		return prefix + repeat(spec.fill, pad) + digits
	}
	return spec.pad(prefix+digits, align)
}

func (spec formatSpec) formatString(s string) string {
	if spec.precision >= 0 && utf8.RuneCountInString(s) > spec.precision {
		s = string([]rune(s)[:spec.precision])
	}
	align := spec.align
	if align == 0 {
		align = '<'
	}
	return spec.pad(s, align)
}

func (spec formatSpec) pad(s string, align byte) string {
	pad := spec.width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case '<':
		return s + repeat(spec.fill, pad)
	case '^':
		left := pad / 2
		return repeat(spec.fill, left) + s + repeat(spec.fill, pad-left)
	default:
		return repeat(spec.fill, pad) + s
	}
}

func repeat(r rune, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(string(r), n)
}
