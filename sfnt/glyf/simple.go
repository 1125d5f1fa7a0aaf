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

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/ttfc/fonterror"
	"seehuhn.de/go/ttfc/sfnt/parser"
)

// SimpleGlyph is a glyph which is described by a list of contours.
type SimpleGlyph struct {
	Contours     []Contour
	Instructions []byte

	// Trailing holds any data found after the last y-coordinate.
	// Normally this is zero padding.
	Trailing []byte
}

// A Point is a point in a glyph outline.
type Point struct {
	X, Y    funit.Int16
	OnCurve bool
}

// A Contour describes a connected part of a glyph outline.
type Contour []Point

// NumPoints returns the total number of points in all contours.
func (glyph *SimpleGlyph) NumPoints() int {
	n := 0
	for _, cc := range glyph.Contours {
		n += len(cc)
	}
	return n
}

// HasTrailingData reports whether there are non-zero bytes after the end of
// the glyph description.
func (glyph *SimpleGlyph) HasTrailingData() bool {
	for _, b := range glyph.Trailing {
		if b != 0 {
			return true
		}
	}
	return false
}

// Bits of the per-point flags.
const (
	flagOnCurve  = 0x01
	flagXShort   = 0x02 // X_SHORT_VECTOR
	flagYShort   = 0x04 // Y_SHORT_VECTOR
	flagRepeat   = 0x08
	flagXSameOrP = 0x10 // X_IS_SAME_OR_POSITIVE_X_SHORT_VECTOR
	flagYSameOrP = 0x20 // Y_IS_SAME_OR_POSITIVE_Y_SHORT_VECTOR
)

func decodeSimple(data []byte, numContours int) (*SimpleGlyph, error) {
	p := parser.New("glyf", data)

	endPts, err := p.ReadUint16Slice(numContours)
	if err != nil {
		return nil, err
	}
	numPoints := 0
	for i, end := range endPts {
		if int(end) < numPoints {
			return nil, fonterror.Malformed("sfnt/glyf",
				"end point %d of contour %d is not increasing", end, i)
		}
		numPoints = int(end) + 1
	}

	var instructions []byte
	if numContours > 0 || p.Remaining() >= 2 {
		instructionLength, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		instructions, err = p.ReadBytes(int(instructionLength))
		if err != nil {
			return nil, err
		}
	}

	// decode the flags
	ff := make([]byte, 0, numPoints)
	for len(ff) < numPoints {
		flags, err := p.ReadUint8()
		if err != nil {
			return nil, err
		}
		ff = append(ff, flags)
		if flags&flagRepeat != 0 {
			count, err := p.ReadUint8()
			if err != nil {
				return nil, err
			}
			if left := numPoints - len(ff); int(count) > left {
				return nil, &fonterror.InvalidFontError{
					SubSystem: "sfnt/glyf",
					Kind:      fonterror.ErrTruncatedTable,
					Reason: fmt.Sprintf("flag repeat count %d exceeds the %d remaining points",
						count, left),
				}
			}
			for range count {
				ff = append(ff, flags)
			}
		}
	}

	xx, err := decodeCoordinates(p, ff, flagXShort, flagXSameOrP)
	if err != nil {
		return nil, err
	}
	yy, err := decodeCoordinates(p, ff, flagYShort, flagYSameOrP)
	if err != nil {
		return nil, err
	}

	cc := make([]Contour, numContours)
	start := 0
	for i, end := range endPts {
		pp := make(Contour, int(end)+1-start)
		for j := range pp {
			k := start + j
			pp[j] = Point{X: xx[k], Y: yy[k], OnCurve: ff[k]&flagOnCurve != 0}
		}
		cc[i] = pp
		start = int(end) + 1
	}

	res := &SimpleGlyph{
		Contours:     cc,
		Instructions: instructions,
	}
	if p.Remaining() > 0 {
		res.Trailing, _ = p.ReadBytes(p.Remaining())
	}
	return res, nil
}

// decodeCoordinates reads the delta-encoded x- or y-coordinates of all
// points and returns the absolute values.
func decodeCoordinates(p *parser.Parser, ff []byte, short, sameOrPositive byte) ([]funit.Int16, error) {
	res := make([]funit.Int16, len(ff))
	var pos funit.Int16
	for i, flags := range ff {
		if flags&short != 0 {
			delta, err := p.ReadUint8()
			if err != nil {
				return nil, err
			}
			if flags&sameOrPositive != 0 {
				pos += funit.Int16(delta)
			} else {
				pos -= funit.Int16(delta)
			}
		} else if flags&sameOrPositive == 0 {
			delta, err := p.ReadInt16()
			if err != nil {
				return nil, err
			}
			pos += funit.Int16(delta)
		}
		res[i] = pos
	}
	return res, nil
}

func (glyph *SimpleGlyph) append(buf []byte) []byte {
	end := -1
	for _, cc := range glyph.Contours {
		end += len(cc)
		buf = append(buf, byte(end>>8), byte(end))
	}

	L := len(glyph.Instructions)
	buf = append(buf, byte(L>>8), byte(L))
	buf = append(buf, glyph.Instructions...)

	numPoints := glyph.NumPoints()
	ff := make([]byte, 0, numPoints)
	var xBytes, yBytes []byte
	var prevX, prevY funit.Int16
	for _, cc := range glyph.Contours {
		for _, pt := range cc {
			var flags byte
			if pt.OnCurve {
				flags |= flagOnCurve
			}

			var f byte
			f, xBytes = appendDelta(xBytes, pt.X-prevX, flagXShort, flagXSameOrP)
			flags |= f
			f, yBytes = appendDelta(yBytes, pt.Y-prevY, flagYShort, flagYSameOrP)
			flags |= f

			ff = append(ff, flags)
			prevX, prevY = pt.X, pt.Y
		}
	}

	for i := 0; i < len(ff); {
		flags := ff[i]
		count := 0
		for i+1+count < len(ff) && ff[i+1+count] == flags && count < 255 {
			count++
		}
		if count > 1 {
			buf = append(buf, flags|flagRepeat, byte(count))
			i += 1 + count
		} else {
			buf = append(buf, flags)
			i++
		}
	}

	buf = append(buf, xBytes...)
	buf = append(buf, yBytes...)
	return buf
}

func appendDelta(buf []byte, delta funit.Int16, short, sameOrPositive byte) (byte, []byte) {
	switch {
	case delta == 0:
		return sameOrPositive, buf
	case delta > 0 && delta < 256:
		return short | sameOrPositive, append(buf, byte(delta))
	case delta < 0 && delta > -256:
		return short, append(buf, byte(-delta))
	default:
		return 0, append(buf, byte(delta>>8), byte(delta))
	}
}
