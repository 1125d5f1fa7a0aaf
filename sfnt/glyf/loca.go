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
	"fmt"

	"seehuhn.de/go/ttfc/fonterror"
)

// DecodeLoca decodes the "loca" table.  The result contains numGlyphs+1
// offsets into the "glyf" table; glyph i occupies the bytes from offs[i] to
// offs[i+1].  Equal consecutive offsets indicate an empty glyph.
//
// The value for format is specified in the indexToLocFormat entry of the
// "head" table.  Excess data at the end of the table is ignored.
func DecodeLoca(data []byte, format int16, numGlyphs, glyfLen int) ([]int, error) {
	offs := make([]int, numGlyphs+1)
	switch format {
	case 0:
		if len(data) < 2*len(offs) {
			return nil, fonterror.Truncated("sfnt/loca", 0, 2*len(offs), len(data))
		}
		for i := range offs {
			offs[i] = 2 * (int(data[2*i])<<8 | int(data[2*i+1]))
		}
	case 1:
		if len(data) < 4*len(offs) {
			return nil, fonterror.Truncated("sfnt/loca", 0, 4*len(offs), len(data))
		}
		for i := range offs {
			offs[i] = int(data[4*i])<<24 | int(data[4*i+1])<<16 |
				int(data[4*i+2])<<8 | int(data[4*i+3])
		}
	default:
		return nil, &fonterror.NotSupportedError{
			SubSystem: "sfnt/loca",
			Feature:   fmt.Sprintf("loca table format %d", format),
		}
	}

	prev := 0
	for i, pos := range offs {
		if pos < prev || pos > glyfLen {
			return nil, fonterror.Malformed("sfnt/loca",
				"invalid offset %d for glyph %d", pos, i)
		}
		prev = pos
	}
	return offs, nil
}

// EncodeLoca encodes the offsets as a "loca" table.  The short format is
// used whenever possible.  The returned format must be stored in the
// indexToLocFormat field of the "head" table.
func EncodeLoca(offs []int) ([]byte, int16) {
	var locaData []byte
	var locaFormat int16
	if offs[len(offs)-1] <= 2*0xffff && allEven(offs) {
		locaFormat = 0
		locaData = make([]byte, 2*len(offs))
		for i, off := range offs {
			x := off / 2
			locaData[2*i] = byte(x >> 8)
			locaData[2*i+1] = byte(x)
		}
	} else {
		locaFormat = 1
		locaData = make([]byte, 4*len(offs))
		for i, off := range offs {
			locaData[4*i] = byte(off >> 24)
			locaData[4*i+1] = byte(off >> 16)
			locaData[4*i+2] = byte(off >> 8)
			locaData[4*i+3] = byte(off)
		}
	}
	return locaData, locaFormat
}

func allEven(offs []int) bool {
	for _, off := range offs {
		if off%2 != 0 {
			return false
		}
	}
	return true
}
