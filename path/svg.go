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

package path

import (
	"math"
	"strconv"

	"seehuhn.de/go/geom/vec"
)

// Smooth returns a copy of p where every quadratic curve whose control point
// is the reflection of the previous curve's control point is replaced by
// a SmoothQuadTo command.  The shape of the path is not changed.
func (p Path) Smooth() Path {
	const eps = 1e-9

	res := make(Path, len(p))
	copy(res, p)

	var ctrl vec.Vec2  // control point of the previous curve
	var cur vec.Vec2   // current point
	var hasCtrl bool   // whether the previous command was a curve
	for i, c := range res {
		switch c.Op {
		case QuadTo:
			if hasCtrl {
				refl := vec.Vec2{X: 2*cur.X - ctrl.X, Y: 2*cur.Y - ctrl.Y}
				if math.Abs(refl.X-c.Args[0].X) < eps && math.Abs(refl.Y-c.Args[0].Y) < eps {
					res[i] = Command{Op: SmoothQuadTo, Args: [2]vec.Vec2{c.Args[1]}}
				}
			}
			ctrl = c.Args[0]
			hasCtrl = true
		case SmoothQuadTo:
			if hasCtrl {
				ctrl = vec.Vec2{X: 2*cur.X - ctrl.X, Y: 2*cur.Y - ctrl.Y}
			} else {
				ctrl = cur
			}
			hasCtrl = true
		default:
			hasCtrl = false
		}
		if c.Op != Close {
			cur = c.End()
		}
	}
	return res
}

// Expand returns a copy of p where every SmoothQuadTo command is replaced
// by the equivalent QuadTo command.
func (p Path) Expand() Path {
	res := make(Path, len(p))
	var ctrl, cur, start vec.Vec2
	var hasCtrl bool
	for i, c := range p {
		res[i] = c
		switch c.Op {
		case MoveTo:
			start = c.Args[0]
			hasCtrl = false
		case QuadTo:
			ctrl = c.Args[0]
			hasCtrl = true
		case SmoothQuadTo:
			if hasCtrl {
				ctrl = vec.Vec2{X: 2*cur.X - ctrl.X, Y: 2*cur.Y - ctrl.Y}
			} else {
				ctrl = cur
			}
			hasCtrl = true
			res[i] = Command{Op: QuadTo, Args: [2]vec.Vec2{ctrl, c.Args[0]}}
		default:
			hasCtrl = false
		}
		if c.Op == Close {
			cur = start
		} else {
			cur = c.End()
		}
	}
	return res
}

// AppendSVG appends the path in SVG path data syntax to buf.
// Coordinates are rounded to the given number of decimal places.
func (p Path) AppendSVG(buf []byte, digits int) []byte {
	for i, c := range p {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, c.Op.String()...)
		for j := range c.Op.NumArgs() {
			buf = append(buf, ' ')
			buf = appendNumber(buf, c.Args[j].X, digits)
			buf = append(buf, ' ')
			buf = appendNumber(buf, c.Args[j].Y, digits)
		}
	}
	return buf
}

// String returns the path in SVG path data syntax.
func (p Path) String() string {
	return string(p.AppendSVG(nil, 4))
}

func appendNumber(buf []byte, x float64, digits int) []byte {
	scale := math.Pow(10, float64(digits))
	x = math.Round(x*scale) / scale
	if x == 0 {
		x = 0 // avoid "-0"
	}
	return strconv.AppendFloat(buf, x, 'f', -1, 64)
}
