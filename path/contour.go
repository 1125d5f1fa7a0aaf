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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Point is a point of a TrueType contour.  Off-curve points are control
// points of quadratic Bézier curves.  Between two consecutive off-curve
// points there is an implied on-curve point at their midpoint.
type Point struct {
	vec.Vec2
	OnCurve bool
}

// AppendContour appends the drawing commands for a closed contour to p.
//
// Each point is examined together with its two successors, wrapping around
// at the end of the contour.  On-curve points start a line or a curve,
// off-curve points only start a curve if they are followed by another
// off-curve point, in which case the curve starts at the implied on-curve
// point.  Every on-curve point, explicit or implied, is the end point of
// exactly one drawing command, and the contour is closed by a final Close
// command.
//
// Empty contours are skipped.
func AppendContour(p Path, pts []Point) Path {
	n := len(pts)
	if n == 0 {
		return p
	}

	at := func(i int) Point {
		return pts[i%n]
	}

	// Find the starting point of the contour.
	p0, p1 := pts[0], at(1)
	switch {
	case p0.OnCurve:
		p = append(p, Command{Op: MoveTo, Args: [2]vec.Vec2{p0.Vec2}})
	case p1.OnCurve:
		// The curve from p0 to p1 is drawn when the predecessor of p0 is
		// visited at the end of the contour.
		p = append(p, Command{Op: MoveTo, Args: [2]vec.Vec2{p1.Vec2}})
	default:
		p = append(p, Command{Op: MoveTo, Args: [2]vec.Vec2{mid(p0.Vec2, p1.Vec2)}})
	}

	for i := range n {
		cur, f1, f2 := at(i), at(i+1), at(i+2)
		switch {
		case cur.OnCurve && f1.OnCurve:
			p = append(p, Command{Op: LineTo, Args: [2]vec.Vec2{f1.Vec2}})
		case cur.OnCurve && f2.OnCurve:
			p = append(p, Command{Op: QuadTo, Args: [2]vec.Vec2{f1.Vec2, f2.Vec2}})
		case cur.OnCurve:
			p = append(p, Command{Op: QuadTo, Args: [2]vec.Vec2{f1.Vec2, mid(f1.Vec2, f2.Vec2)}})
		case f1.OnCurve:
			// The curve through cur was drawn when its predecessor was visited.
		case f2.OnCurve:
			p = append(p, Command{Op: QuadTo, Args: [2]vec.Vec2{f1.Vec2, f2.Vec2}})
		default:
			p = append(p, Command{Op: QuadTo, Args: [2]vec.Vec2{f1.Vec2, mid(f1.Vec2, f2.Vec2)}})
		}
	}

	return append(p, Command{Op: Close})
}

// AppendTransformed is like [AppendContour], but first applies the affine
// transformation m to all points.  Since affine maps preserve midpoints, this
// is the same as transforming the resulting path.
func AppendTransformed(p Path, pts []Point, m matrix.Matrix) Path {
	tr := make([]Point, len(pts))
	for i, pt := range pts {
		tr[i] = Point{Vec2: apply(m, pt.Vec2), OnCurve: pt.OnCurve}
	}
	return AppendContour(p, tr)
}
