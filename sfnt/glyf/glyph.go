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

package glyf

import (
	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/ttfc/fonterror"
)

// Glyph represents a single glyph in a TrueType font.
type Glyph struct {
	funit.Rect16
	Data any // either SimpleGlyph, CompositeGlyph or BrokenGlyph
}

// BrokenGlyph is stored in place of a glyph which could not be decoded.
// Broken glyphs have no outline.
type BrokenGlyph struct {
	Err error
}

// Note that decodeGlyph retains sub-slices of data.
func decodeGlyph(data []byte) (*Glyph, error) {
	if len(data) == 0 {
		return nil, nil
	} else if len(data) < 10 {
		return nil, fonterror.Truncated("sfnt/glyf", 0, 10, len(data))
	}

	numCont := int16(data[0])<<8 | int16(data[1])

	var glyphData any
	if numCont >= 0 {
		simple, err := decodeSimple(data[10:], int(numCont))
		if err != nil {
			return nil, err
		}
		glyphData = *simple
	} else {
		comp, err := decodeComposite(data[10:])
		if err != nil {
			return nil, err
		}
		glyphData = *comp
	}

	g := &Glyph{
		Rect16: funit.Rect16{
			LLx: funit.Int16(data[2])<<8 | funit.Int16(data[3]),
			LLy: funit.Int16(data[4])<<8 | funit.Int16(data[5]),
			URx: funit.Int16(data[6])<<8 | funit.Int16(data[7]),
			URy: funit.Int16(data[8])<<8 | funit.Int16(data[9]),
		},
		Data: glyphData,
	}
	return g, nil
}

func (g *Glyph) append(buf []byte) []byte {
	if g == nil {
		return buf
	}

	var numContours int16
	switch d := g.Data.(type) {
	case SimpleGlyph:
		numContours = int16(len(d.Contours))
	case CompositeGlyph:
		numContours = -1
	default:
		return buf
	}

	buf = append(buf,
		byte(numContours>>8),
		byte(numContours),
		byte(g.LLx>>8),
		byte(g.LLx),
		byte(g.LLy>>8),
		byte(g.LLy),
		byte(g.URx>>8),
		byte(g.URx),
		byte(g.URy>>8),
		byte(g.URy))

	switch d := g.Data.(type) {
	case SimpleGlyph:
		buf = d.append(buf)
	case CompositeGlyph:
		buf = d.append(buf)
	}

	for len(buf)%glyfAlign != 0 {
		buf = append(buf, 0)
	}
	return buf
}

// Components returns the glyph IDs of the components of a composite glyph,
// or nil if the glyph is not composite.
func (g *Glyph) Components() []int {
	if g == nil {
		return nil
	}
	d, ok := g.Data.(CompositeGlyph)
	if !ok {
		return nil
	}
	res := make([]int, len(d.Components))
	for i, comp := range d.Components {
		res[i] = int(comp.GlyphIndex)
	}
	return res
}

const glyfAlign = 2
