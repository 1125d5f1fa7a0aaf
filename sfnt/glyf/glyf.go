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

// Package glyf implements reading and writing the "glyf" and "loca" tables,
// and the conversion of glyph outlines into paths.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/glyf
// https://docs.microsoft.com/en-us/typography/opentype/spec/loca
package glyf

import (
	"fmt"

	"seehuhn.de/go/ttfc/fonterror"
)

// Glyphs contains the information from a "glyf" table, indexed by glyph ID.
// Empty glyphs are represented by nil entries.
type Glyphs []*Glyph

// Encoded contains the binary representation of a "glyf" and a "loca" table.
type Encoded struct {
	GlyfData   []byte
	LocaData   []byte
	LocaFormat int16
}

// Decode converts the data from the "glyf" table into a slice of Glyphs.
// The offsets must be obtained from the "loca" table using [DecodeLoca].
//
// Problems with individual glyphs do not cause Decode to fail.  Instead, the
// corresponding entry holds a [BrokenGlyph] and the problem is reported
// by [Glyphs.Err].
func Decode(glyfData []byte, offs []int) (Glyphs, error) {
	if len(offs) == 0 {
		return nil, fonterror.Malformed("sfnt/glyf", "missing glyph offsets")
	}

	gg := make(Glyphs, len(offs)-1)
	for i := range gg {
		start, end := offs[i], offs[i+1]
		if start < 0 || start > end || end > len(glyfData) {
			return nil, fonterror.Malformed("sfnt/glyf",
				"invalid data range %d-%d for glyph %d", start, end, i)
		}
		g, err := decodeGlyph(glyfData[start:end])
		if err != nil {
			g = &Glyph{Data: BrokenGlyph{Err: err}}
		}
		gg[i] = g
	}
	return gg, nil
}

// Err returns the problem encountered while decoding the given glyph, or nil
// if the glyph could be decoded.
func (gg Glyphs) Err(gid int) error {
	if gid < 0 || gid >= len(gg) || gg[gid] == nil {
		return nil
	}
	if b, ok := gg[gid].Data.(BrokenGlyph); ok {
		return &GlyphError{Index: gid, Err: b.Err}
	}
	return nil
}

// Encode encodes the Glyphs into a "glyf" and "loca" table.
// Broken glyphs are written as empty glyphs.
func (gg Glyphs) Encode() *Encoded {
	n := len(gg)

	offs := make([]int, n+1)
	var glyfData []byte
	for i, g := range gg {
		glyfData = g.append(glyfData)
		offs[i+1] = len(glyfData)
	}
	locaData, locaFormat := EncodeLoca(offs)

	return &Encoded{
		GlyfData:   glyfData,
		LocaData:   locaData,
		LocaFormat: locaFormat,
	}
}

// GlyphError reports a problem with an individual glyph.
type GlyphError struct {
	Index int
	Err   error
}

func (err *GlyphError) Error() string {
	return fmt.Sprintf("glyph %d: %v", err.Index, err.Err)
}

func (err *GlyphError) Unwrap() error {
	return err.Err
}
