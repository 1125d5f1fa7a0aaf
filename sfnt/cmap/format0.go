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

package cmap

import (
	"seehuhn.de/go/ttfc/fonterror"
	"seehuhn.de/go/ttfc/sfnt/parser"
)

// Format0 is a byte encoding table, mapping single-byte character codes
// to glyph IDs in the range 0-255.
type Format0 struct {
	Language     uint16
	GlyphIDArray [256]uint8
}

const format0Length = 6 + 256

// decodeFormat0 decodes a format 0 subtable.  The format number has
// already been read.
func decodeFormat0(p *parser.Parser) (*Format0, error) {
	length, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	if length != format0Length {
		return nil, fonterror.Malformed("sfnt/cmap",
			"format 0: expected length %d, got %d", format0Length, length)
	}
	language, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	glyphs, err := p.ReadBytes(256)
	if err != nil {
		return nil, err
	}

	res := &Format0{Language: language}
	copy(res.GlyphIDArray[:], glyphs)
	return res, nil
}

// Format implements the [Subtable] interface.
func (cmap *Format0) Format() uint16 {
	return 0
}

// Lookup implements the [Subtable] interface.
func (cmap *Format0) Lookup(code uint32) (int, bool) {
	if code < 256 {
		gid := int(cmap.GlyphIDArray[code])
		return gid, gid != 0
	}
	return 0, false
}

// Encode returns the binary form of the subtable.
func (cmap *Format0) Encode() []byte {
	return append([]byte{0, 0, 1, 6, byte(cmap.Language >> 8), byte(cmap.Language)},
		cmap.GlyphIDArray[:]...)
}

// CodeRange returns the smallest and largest code point in the subtable.
func (cmap *Format0) CodeRange() (low, high uint32) {
	first := true
	for i, c := range cmap.GlyphIDArray {
		if c == 0 {
			continue
		}
		if first {
			low = uint32(i)
			first = false
		}
		high = uint32(i)
	}
	return
}
