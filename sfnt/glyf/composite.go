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
	"math"
	"strings"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/ttfc/sfnt/parser"
)

// CompositeGlyph is a glyph which is assembled from transformed copies of
// other glyphs.
type CompositeGlyph struct {
	Components   []Component
	Instructions []byte
}

// Component is a single component of a composite glyph.
type Component struct {
	Flags      ComponentFlag
	GlyphIndex uint16

	// Args holds either an (x, y) offset, if FlagArgsAreXYValues is set,
	// or a pair of point numbers used for point matching.
	Args [2]int

	// Trfm is the linear part of the component transformation,
	// in the order xx, xy, yx, yy.
	Trfm [4]float64
}

// ComponentFlag controls how a component glyph is placed within a composite
// glyph.
type ComponentFlag uint16

// The flags defined for composite glyph components.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/glyf#compositeGlyphFlags
const (
	FlagArg1And2AreWords        ComponentFlag = 0x0001
	FlagArgsAreXYValues         ComponentFlag = 0x0002
	FlagRoundXYToGrid           ComponentFlag = 0x0004
	FlagWeHaveAScale            ComponentFlag = 0x0008
	FlagMoreComponents          ComponentFlag = 0x0020
	FlagWeHaveAnXAndYScale      ComponentFlag = 0x0040
	FlagWeHaveATwoByTwo         ComponentFlag = 0x0080
	FlagWeHaveInstructions      ComponentFlag = 0x0100
	FlagUseMyMetrics            ComponentFlag = 0x0200
	FlagOverlapCompound         ComponentFlag = 0x0400
	FlagScaledComponentOffset   ComponentFlag = 0x0800
	FlagUnscaledComponentOffset ComponentFlag = 0x1000
)

var flagNames = []struct {
	flag ComponentFlag
	name string
}{
	{FlagArg1And2AreWords, "ARG_1_AND_2_ARE_WORDS"},
	{FlagArgsAreXYValues, "ARGS_ARE_XY_VALUES"},
	{FlagRoundXYToGrid, "ROUND_XY_TO_GRID"},
	{FlagWeHaveAScale, "WE_HAVE_A_SCALE"},
	{FlagMoreComponents, "MORE_COMPONENTS"},
	{FlagWeHaveAnXAndYScale, "WE_HAVE_AN_X_AND_Y_SCALE"},
	{FlagWeHaveATwoByTwo, "WE_HAVE_A_TWO_BY_TWO"},
	{FlagWeHaveInstructions, "WE_HAVE_INSTRUCTIONS"},
	{FlagUseMyMetrics, "USE_MY_METRICS"},
	{FlagOverlapCompound, "OVERLAP_COMPOUND"},
	{FlagScaledComponentOffset, "SCALED_COMPONENT_OFFSET"},
	{FlagUnscaledComponentOffset, "UNSCALED_COMPONENT_OFFSET"},
}

func (f ComponentFlag) String() string {
	var res []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			res = append(res, fn.name)
		}
	}
	if rest := f & 0xE010; rest != 0 {
		res = append(res, fmt.Sprintf("0x%04x", uint16(rest)))
	}
	return strings.Join(res, "|")
}

// NewComponent returns a component which places glyph gid with the linear
// transformation trfm, followed by a shift by (dx, dy).
// The flags are chosen to give the most compact encoding.
func NewComponent(gid uint16, trfm [4]float64, dx, dy int16) Component {
	flags := FlagArgsAreXYValues
	if !fitsInt8(int(dx)) || !fitsInt8(int(dy)) {
		flags |= FlagArg1And2AreWords
	}
	switch {
	case trfm == [4]float64{1, 0, 0, 1}:
		// no transformation
	case trfm[1] == 0 && trfm[2] == 0 && trfm[0] == trfm[3]:
		flags |= FlagWeHaveAScale
	case trfm[1] == 0 && trfm[2] == 0:
		flags |= FlagWeHaveAnXAndYScale
	default:
		flags |= FlagWeHaveATwoByTwo
	}
	return Component{
		Flags:      flags,
		GlyphIndex: gid,
		Args:       [2]int{int(dx), int(dy)},
		Trfm:       trfm,
	}
}

// Matrix returns the transformation which maps the coordinates of the
// component glyph into the coordinate system of the composite glyph.
//
// Point matching is not supported; components which use point numbers
// instead of an offset are placed without a shift.
func (c *Component) Matrix() matrix.Matrix {
	var dx, dy float64
	if c.Flags&FlagArgsAreXYValues != 0 {
		dx, dy = float64(c.Args[0]), float64(c.Args[1])
		if c.Flags&FlagScaledComponentOffset != 0 && c.Flags&FlagUnscaledComponentOffset == 0 {
			dx, dy = c.Trfm[0]*dx+c.Trfm[2]*dy, c.Trfm[1]*dx+c.Trfm[3]*dy
		}
	}
	return matrix.Matrix{c.Trfm[0], c.Trfm[1], c.Trfm[2], c.Trfm[3], dx, dy}
}

func decodeComposite(data []byte) (*CompositeGlyph, error) {
	p := parser.New("glyf", data)

	var components []Component
	weHaveInstructions := false
	for {
		flags16, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		flags := ComponentFlag(flags16)
		glyphIndex, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}

		if flags&FlagWeHaveInstructions != 0 {
			weHaveInstructions = true
		}

		c := Component{
			Flags:      flags,
			GlyphIndex: glyphIndex,
			Trfm:       [4]float64{1, 0, 0, 1},
		}

		isXY := flags&FlagArgsAreXYValues != 0
		for i := range c.Args {
			if flags&FlagArg1And2AreWords != 0 {
				x, err := p.ReadUint16()
				if err != nil {
					return nil, err
				}
				if isXY {
					c.Args[i] = int(int16(x))
				} else {
					c.Args[i] = int(x)
				}
			} else {
				x, err := p.ReadUint8()
				if err != nil {
					return nil, err
				}
				if isXY {
					c.Args[i] = int(int8(x))
				} else {
					c.Args[i] = int(x)
				}
			}
		}

		var n int
		switch {
		case flags&FlagWeHaveAScale != 0:
			n = 1
		case flags&FlagWeHaveAnXAndYScale != 0:
			n = 2
		case flags&FlagWeHaveATwoByTwo != 0:
			n = 4
		}
		var vals [4]float64
		for i := range n {
			x, err := p.ReadF2Dot14()
			if err != nil {
				return nil, err
			}
			vals[i] = x.Float64()
		}
		switch n {
		case 1:
			c.Trfm = [4]float64{vals[0], 0, 0, vals[0]}
		case 2:
			c.Trfm = [4]float64{vals[0], 0, 0, vals[1]}
		case 4:
			c.Trfm = vals
		}

		components = append(components, c)

		if flags&FlagMoreComponents == 0 {
			break
		}
	}

	var instructions []byte
	if weHaveInstructions && p.Remaining() >= 2 {
		L, _ := p.ReadUint16()
		instructions, _ = p.ReadBytes(min(int(L), p.Remaining()))
	}

	res := &CompositeGlyph{
		Components:   components,
		Instructions: instructions,
	}
	return res, nil
}

func (glyph *CompositeGlyph) append(buf []byte) []byte {
	weHaveInstructions := false
	for i, c := range glyph.Components {
		flags := c.Flags &^ FlagMoreComponents
		if i < len(glyph.Components)-1 {
			flags |= FlagMoreComponents
		}
		if flags&FlagWeHaveInstructions != 0 {
			weHaveInstructions = true
		}
		buf = append(buf,
			byte(flags>>8), byte(flags),
			byte(c.GlyphIndex>>8), byte(c.GlyphIndex))

		for _, arg := range c.Args {
			if flags&FlagArg1And2AreWords != 0 {
				buf = append(buf, byte(arg>>8), byte(arg))
			} else {
				buf = append(buf, byte(arg))
			}
		}

		switch {
		case flags&FlagWeHaveAScale != 0:
			buf = appendF2Dot14(buf, c.Trfm[0])
		case flags&FlagWeHaveAnXAndYScale != 0:
			buf = appendF2Dot14(buf, c.Trfm[0], c.Trfm[3])
		case flags&FlagWeHaveATwoByTwo != 0:
			buf = appendF2Dot14(buf, c.Trfm[:]...)
		}
	}

	if weHaveInstructions {
		L := len(glyph.Instructions)
		buf = append(buf, byte(L>>8), byte(L))
		buf = append(buf, glyph.Instructions...)
	}
	return buf
}

func appendF2Dot14(buf []byte, vals ...float64) []byte {
	for _, v := range vals {
		x := math.Round(v * 16384)
		x = max(min(x, math.MaxInt16), math.MinInt16)
		u := uint16(int16(x))
		buf = append(buf, byte(u>>8), byte(u))
	}
	return buf
}

func fitsInt8(x int) bool {
	return x >= math.MinInt8 && x <= math.MaxInt8
}
