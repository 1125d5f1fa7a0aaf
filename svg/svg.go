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

// Package svg writes glyph outlines as SVG documents.
package svg

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"seehuhn.de/go/ttfc/sfnt"
)

// Options control the appearance of the generated SVG documents.
type Options struct {
	// Fill is the fill colour.  If this is nil, the outline is not filled.
	Fill *colorful.Color

	// Stroke is the colour used to draw the outline.  If this is nil,
	// the outline is not stroked.
	Stroke      *colorful.Color
	StrokeWidth float64

	// Smooth enables the use of the "T" path command where possible.
	Smooth bool

	// Digits is the number of decimal places used for coordinates.
	Digits int
}

// DefaultOptions returns the options used when nil is passed to [Write].
// Glyphs are filled black and stroked with a black line of width 2.
func DefaultOptions() *Options {
	black := colorful.Color{}
	return &Options{
		Fill:        &black,
		Stroke:      &black,
		StrokeWidth: 2,
		Digits:      4,
	}
}

// ParseColor converts a colour specification into a colour.  Accepted are
// hex colours like "#ff8000" or "#f80", the SVG 1.1 colour keywords, and
// "none", for which nil is returned.
func ParseColor(s string) (*colorful.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "none" {
		return nil, nil
	}
	if rgba, ok := colornames.Map[s]; ok {
		c, _ := colorful.MakeColor(rgba)
		return &c, nil
	}
	if len(s) == 4 && s[0] == '#' {
		s = "#" + string([]byte{s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid colour %q", s)
	}
	return &c, nil
}

// Write writes an SVG document showing the glyph.
//
// The viewport covers the font bounding box, extended by one font design
// unit in each direction.  Empty glyphs are written as an empty SVG element.
func Write(w io.Writer, g *sfnt.GlyphResult, opt *Options) error {
	if opt == nil {
		opt = DefaultOptions()
	}

	out := bufio.NewWriter(w)
	if g.Empty {
		out.WriteString("<svg/>")
		return out.Flush()
	}

	f := formatter{digits: opt.Digits}
	width := g.BBox.URx - g.BBox.LLx + g.Scale
	height := g.BBox.URy - g.BBox.LLy + g.Scale

	fmt.Fprintf(out, "<svg\n")
	fmt.Fprintf(out, "    width=%q\n", f.num(width))
	fmt.Fprintf(out, "    height=%q\n", f.num(height))
	fmt.Fprintf(out, "    viewBox=\"%s %s %s %s\"\n",
		f.num(g.BBox.LLx), f.num(-g.BBox.URy), f.num(width), f.num(height))
	fmt.Fprintf(out, "    xmlns=\"http://www.w3.org/2000/svg\"\n")
	fmt.Fprintf(out, ">\n")

	fmt.Fprintf(out, "    <path\n")
	if opt.Stroke != nil {
		fmt.Fprintf(out, "        stroke=%q\n", opt.Stroke.Clamped().Hex())
		fmt.Fprintf(out, "        stroke-width=%q\n", f.num(opt.StrokeWidth))
	} else {
		fmt.Fprintf(out, "        stroke=\"none\"\n")
	}
	if opt.Fill != nil {
		fmt.Fprintf(out, "        fill=%q\n", opt.Fill.Clamped().Hex())
		fmt.Fprintf(out, "        fill-rule=\"evenodd\"\n")
	} else {
		fmt.Fprintf(out, "        fill=\"none\"\n")
	}

	p := g.Path
	if opt.Smooth {
		p = p.Smooth()
	}
	fmt.Fprintf(out, "        d=\"%s\"\n", p.AppendSVG(nil, f.digits))
	fmt.Fprintf(out, "    />\n")
	fmt.Fprintf(out, "</svg>\n")

	return out.Flush()
}

type formatter struct {
	digits int
}

func (f formatter) num(x float64) string {
	scale := math.Pow(10, float64(f.digits))
	x = math.Round(x*scale) / scale
	if x == 0 {
		x = 0
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
