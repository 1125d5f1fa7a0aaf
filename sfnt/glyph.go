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

package sfnt

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/ttfc/fonterror"
	"seehuhn.de/go/ttfc/path"
	"seehuhn.de/go/ttfc/sfnt/glyf"
)

// GlyphResult describes a single glyph, prepared for drawing.
type GlyphResult struct {
	Index    int
	Name     string // from the "post" table, may be empty
	FontName string // from the "name" table, may be empty

	// Scale is the factor between font design units and drawing units.
	Scale float64

	// BBox is the font bounding box from the "head" table, in drawing
	// units.  The y-axis points upwards.
	BBox rect.Rect

	// Path is the glyph outline in drawing units.  The y-axis points
	// downwards, so that the path can directly be used in SVG files.
	// The path is shared between calls and must not be modified.
	Path path.Path

	// Empty is set for glyphs without an outline.
	Empty bool
}

// Glyph returns the outline of glyph gid, scaled by the given factor.
// The result is safe for concurrent use; paths are cached inside the font.
func (f *Font) Glyph(gid int, scale float64) (*GlyphResult, error) {
	if gid < 0 || gid >= len(f.Glyphs) {
		return nil, fonterror.Malformed("sfnt",
			"glyph %d out of range (%d glyphs)", gid, len(f.Glyphs))
	}

	p, err := f.cachedPath(gid, scale)
	if err != nil {
		return nil, err
	}

	bbox := f.Head.FontBBox
	res := &GlyphResult{
		Index:    gid,
		Name:     f.GlyphName(gid),
		FontName: f.FontName(),
		Scale:    scale,
		BBox: rect.Rect{
			LLx: scale * float64(bbox.LLx),
			LLy: scale * float64(bbox.LLy),
			URx: scale * float64(bbox.URx),
			URy: scale * float64(bbox.URy),
		},
		Path:  p,
		Empty: len(p) == 0,
	}
	return res, nil
}

func (f *Font) cachedPath(gid int, scale float64) (path.Path, error) {
	key := cacheKey{gid: gid, scale: scale}

	f.mu.Lock()
	p, ok := f.cache[key]
	f.mu.Unlock()
	if ok {
		return p, nil
	}

	if err := f.Glyphs.Err(gid); err != nil {
		return nil, err
	}
	p, err := f.Glyphs.Path(gid, matrix.Matrix{scale, 0, 0, -scale, 0, 0}, f.maxDepth)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	if f.cache == nil {
		f.cache = make(map[cacheKey]path.Path)
	}
	f.cache[key] = p
	f.mu.Unlock()

	return p, nil
}

// IsBroken reports whether the outline data of a glyph could not be
// decoded.
func (f *Font) IsBroken(gid int) bool {
	if gid < 0 || gid >= len(f.Glyphs) || f.Glyphs[gid] == nil {
		return false
	}
	_, ok := f.Glyphs[gid].Data.(glyf.BrokenGlyph)
	return ok
}

// HasTrailingData reports whether the description of a simple glyph is
// followed by non-zero bytes.
func (f *Font) HasTrailingData(gid int) bool {
	if gid < 0 || gid >= len(f.Glyphs) || f.Glyphs[gid] == nil {
		return false
	}
	s, ok := f.Glyphs[gid].Data.(glyf.SimpleGlyph)
	return ok && s.HasTrailingData()
}
