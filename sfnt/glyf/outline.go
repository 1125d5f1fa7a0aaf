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
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/ttfc/fonterror"
	"seehuhn.de/go/ttfc/path"
)

// DefaultMaxDepth is the minimal nesting depth of composite glyphs which is
// always accepted by [Glyphs.Path], even if the "maxp" table of a font
// declares a smaller value.
const DefaultMaxDepth = 8

// Path returns the outline of glyph gid, transformed by m.
//
// Composite glyphs are expanded recursively.  The transformation of each
// component is applied before the transformation of the enclosing glyph.
// At most maxDepth levels of composite glyphs are expanded; if maxDepth is
// not positive, DefaultMaxDepth is used.  Components which refer back to
// one of the enclosing glyphs cause an error of kind
// [fonterror.ErrComponentDepth].
func (gg Glyphs) Path(gid int, m matrix.Matrix, maxDepth int) (path.Path, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	w := &outlineWriter{
		glyphs:   gg,
		maxDepth: maxDepth,
	}
	err := w.appendGlyph(gid, m)
	if err != nil {
		return nil, err
	}
	return w.p, nil
}

type outlineWriter struct {
	glyphs   Glyphs
	maxDepth int

	// parents holds the composite glyphs currently being expanded.
	parents []int

	p   path.Path
	pts []path.Point
}

func (w *outlineWriter) appendGlyph(gid int, m matrix.Matrix) error {
	if gid < 0 || gid >= len(w.glyphs) {
		return fonterror.Malformed("sfnt/glyf",
			"glyph %d out of range (%d glyphs)", gid, len(w.glyphs))
	}
	if slices.Contains(w.parents, gid) {
		return &fonterror.InvalidFontError{
			SubSystem: "sfnt/glyf",
			Kind:      fonterror.ErrComponentDepth,
			Reason:    fmt.Sprintf("glyph %d is a component of itself", gid),
		}
	}
	if len(w.parents) > w.maxDepth {
		return &fonterror.InvalidFontError{
			SubSystem: "sfnt/glyf",
			Kind:      fonterror.ErrComponentDepth,
			Reason: fmt.Sprintf("glyph %d is nested more than %d levels deep",
				gid, w.maxDepth),
		}
	}

	g := w.glyphs[gid]
	if g == nil {
		return nil
	}

	switch d := g.Data.(type) {
	case SimpleGlyph:
		for _, cc := range d.Contours {
			w.pts = w.pts[:0]
			for _, pt := range cc {
				w.pts = append(w.pts, path.Point{
					Vec2:    vec.Vec2{X: float64(pt.X), Y: float64(pt.Y)},
					OnCurve: pt.OnCurve,
				})
			}
			w.p = path.AppendTransformed(w.p, w.pts, m)
		}
	case CompositeGlyph:
		w.parents = append(w.parents, gid)
		for _, c := range d.Components {
			err := w.appendGlyph(int(c.GlyphIndex), c.Matrix().Mul(m))
			if err != nil {
				return err
			}
		}
		w.parents = w.parents[:len(w.parents)-1]
	case BrokenGlyph:
		return &GlyphError{Index: gid, Err: d.Err}
	}
	return nil
}
