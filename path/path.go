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

// Package path represents glyph outlines as sequences of drawing commands
// and converts TrueType quadratic B-spline contours into such sequences.
package path

import (
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Op is a path drawing operation.
type Op uint8

// These are the supported drawing operations.
const (
	MoveTo       Op = iota // start a new contour at Args[0]
	LineTo                 // straight line to Args[0]
	QuadTo                 // quadratic Bézier curve with control point Args[0], ending at Args[1]
	SmoothQuadTo           // quadratic Bézier curve, control point reflected from the previous curve, ending at Args[0]
	Close                  // close the current contour
)

func (op Op) String() string {
	switch op {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case QuadTo:
		return "Q"
	case SmoothQuadTo:
		return "T"
	case Close:
		return "Z"
	default:
		return fmt.Sprintf("Op(%d)", uint8(op))
	}
}

// NumArgs returns the number of points used by the operation.
func (op Op) NumArgs() int {
	switch op {
	case MoveTo, LineTo, SmoothQuadTo:
		return 1
	case QuadTo:
		return 2
	default:
		return 0
	}
}

// Command is a single drawing command.
type Command struct {
	Op   Op
	Args [2]vec.Vec2
}

// End returns the end point of the command.  For Close, the zero vector is
// returned.
func (c Command) End() vec.Vec2 {
	switch c.Op {
	case QuadTo:
		return c.Args[1]
	case MoveTo, LineTo, SmoothQuadTo:
		return c.Args[0]
	default:
		return vec.Vec2{}
	}
}

// Path is a sequence of drawing commands.  Every contour starts with a
// MoveTo command and ends with a Close command.
type Path []Command

// Transform applies the affine transformation m to all points of the path.
// The result is a new path, p is not modified.
func (p Path) Transform(m matrix.Matrix) Path {
	res := make(Path, len(p))
	for i, c := range p {
		res[i].Op = c.Op
		for j := range c.Op.NumArgs() {
			res[i].Args[j] = apply(m, c.Args[j])
		}
	}
	return res
}

// NumContours returns the number of contours in the path.
func (p Path) NumContours() int {
	n := 0
	for _, c := range p {
		if c.Op == MoveTo {
			n++
		}
	}
	return n
}

func apply(m matrix.Matrix, v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y + m[4],
		Y: m[1]*v.X + m[3]*v.Y + m[5],
	}
}

func mid(a, b vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
