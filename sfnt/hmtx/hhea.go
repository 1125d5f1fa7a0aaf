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

// Package hmtx reads and writes the "hhea" and "hmtx" tables.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/hhea
// https://docs.microsoft.com/en-us/typography/opentype/spec/hmtx
package hmtx

// If a glyph has no contours, xMax/xMin are not defined. The left side bearing
// indicated in the 'hmtx' table for such glyphs should be zero.
//
// The right side bearing is always derived using advance width and left side
// bearing values from the 'hmtx' table, plus bounding-box information in the
// glyph description:
//
//     rsb = aw - (lsb + xMax - xMin)

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/ttfc/fonterror"
)

// Hhea contains the information from the "hhea" table.
type Hhea struct {
	Ascent          funit.Int16
	Descent         funit.Int16 // negative
	LineGap         funit.Int16
	AdvanceWidthMax uint16
	MinLSB          funit.Int16
	MinRSB          funit.Int16
	XMaxExtent      funit.Int16
	CaretAngle      float64 // in radians, 0 for vertical
	CaretOffset     funit.Int16

	// NumOfLongHorMetrics is the number of advance widths stored in the
	// "hmtx" table.  The last width applies to all remaining glyphs.
	NumOfLongHorMetrics int
}

const hheaLength = 36

// DecodeHhea decodes the binary representation of the "hhea" table.
func DecodeHhea(data []byte) (*Hhea, error) {
	if len(data) < hheaLength {
		return nil, fonterror.Truncated("sfnt/hhea", 0, hheaLength, len(data))
	}
	enc := &binaryHhea{}
	_ = binary.Read(bytes.NewReader(data), binary.BigEndian, enc)

	if enc.Version>>16 != 1 {
		return nil, &fonterror.NotSupportedError{
			SubSystem: "sfnt/hhea",
			Feature:   fmt.Sprintf("table version %08x", enc.Version),
		}
	}
	if enc.MetricDataFormat != 0 {
		return nil, &fonterror.NotSupportedError{
			SubSystem: "sfnt/hhea",
			Feature:   fmt.Sprintf("metric data format %d", enc.MetricDataFormat),
		}
	}

	info := &Hhea{
		Ascent:              funit.Int16(enc.Ascent),
		Descent:             funit.Int16(enc.Descent),
		LineGap:             funit.Int16(enc.LineGap),
		AdvanceWidthMax:     enc.AdvanceWidthMax,
		MinLSB:              funit.Int16(enc.MinLeftSideBearing),
		MinRSB:              funit.Int16(enc.MinRightSideBearing),
		XMaxExtent:          funit.Int16(enc.XMaxExtent),
		CaretAngle:          toAngle(enc.CaretSlopeRise, enc.CaretSlopeRun),
		CaretOffset:         funit.Int16(enc.CaretOffset),
		NumOfLongHorMetrics: int(enc.NumOfLongHorMetrics),
	}
	return info, nil
}

// Encode returns the binary representation of the "hhea" table.
func (info *Hhea) Encode() []byte {
	rise, run := fromAngle(info.CaretAngle)
	enc := &binaryHhea{
		Version:             0x00010000,
		Ascent:              int16(info.Ascent),
		Descent:             int16(info.Descent),
		LineGap:             int16(info.LineGap),
		AdvanceWidthMax:     info.AdvanceWidthMax,
		MinLeftSideBearing:  int16(info.MinLSB),
		MinRightSideBearing: int16(info.MinRSB),
		XMaxExtent:          int16(info.XMaxExtent),
		CaretSlopeRise:      rise,
		CaretSlopeRun:       run,
		CaretOffset:         int16(info.CaretOffset),
		NumOfLongHorMetrics: uint16(info.NumOfLongHorMetrics),
	}
	buf := bytes.NewBuffer(make([]byte, 0, hheaLength))
	_ = binary.Write(buf, binary.BigEndian, enc)
	return buf.Bytes()
}

func toAngle(rise, run int16) float64 {
	// slope = rise / run (rise = 1, run = 0 for vertical)
	// angle = 0 for vertical, angle<0 for italic
	return math.Atan2(float64(rise), float64(run)) - math.Pi/2
}

func fromAngle(caretAngle float64) (rise, run int16) {
	phi := caretAngle + math.Pi/2
	s := math.Sin(phi)
	c := math.Cos(phi)
	if math.Abs(c) <= 0.5/32767.0 {
		if s >= 0 {
			return 1, 0
		}
		return -1, 0
	}
	const scale = 1 << 14
	if math.Abs(s) >= math.Abs(c) {
		return int16(math.Round(scale * math.Copysign(1, s))),
			int16(math.Round(scale * c / math.Abs(s)))
	}
	return int16(math.Round(scale * s / math.Abs(c))),
		int16(math.Round(scale * math.Copysign(1, c)))
}

type binaryHhea struct {
	Version             uint32
	Ascent              int16
	Descent             int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	_                   int16
	_                   int16
	_                   int16
	_                   int16
	MetricDataFormat    int16
	NumOfLongHorMetrics uint16
}
