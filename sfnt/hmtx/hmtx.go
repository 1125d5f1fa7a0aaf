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

package hmtx

import (
	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/ttfc/fonterror"
)

// Info contains the horizontal metrics from the "hmtx" table.
type Info struct {
	Widths []uint16
	LSB    []funit.Int16
}

// Decode decodes the "hmtx" table.  The number of long metrics is taken
// from the "hhea" table, the number of glyphs from the "maxp" table.
func Decode(data []byte, numLongMetrics, numGlyphs int) (*Info, error) {
	if numLongMetrics < 1 || numLongMetrics > numGlyphs {
		return nil, fonterror.Malformed("sfnt/hmtx",
			"invalid number of long metrics %d for %d glyphs",
			numLongMetrics, numGlyphs)
	}
	need := 4*numLongMetrics + 2*(numGlyphs-numLongMetrics)
	if len(data) < need {
		return nil, fonterror.Truncated("sfnt/hmtx", 0, need, len(data))
	}

	info := &Info{
		Widths: make([]uint16, numGlyphs),
		LSB:    make([]funit.Int16, numGlyphs),
	}
	var width uint16
	for i := range numGlyphs {
		if i < numLongMetrics {
			width = uint16(data[0])<<8 | uint16(data[1])
			data = data[2:]
		}
		info.Widths[i] = width
		info.LSB[i] = funit.Int16(int16(uint16(data[0])<<8 | uint16(data[1])))
		data = data[2:]
	}
	return info, nil
}

// Encode returns the binary representation of the "hmtx" table,
// together with the number of long metrics to be stored in the "hhea" table.
func (info *Info) Encode() ([]byte, int) {
	numGlyphs := len(info.Widths)
	numWidths := numGlyphs
	for numWidths > 1 && info.Widths[numWidths-1] == info.Widths[numWidths-2] {
		numWidths--
	}

	buf := make([]byte, 0, 4*numWidths+2*(numGlyphs-numWidths))
	for i := range numGlyphs {
		if i < numWidths {
			buf = append(buf, byte(info.Widths[i]>>8), byte(info.Widths[i]))
		}
		var lsb funit.Int16
		if i < len(info.LSB) {
			lsb = info.LSB[i]
		}
		buf = append(buf, byte(uint16(lsb)>>8), byte(lsb))
	}
	return buf, numWidths
}
