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

// Package sfnt reads TrueType fonts and TrueType collections.
//
// All tables of a font are decoded when the font is read.  The glyph
// outlines can then be converted into paths using [Font.Glyph] or
// [Font.Outline].
package sfnt

import (
	"sync"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/ttfc/path"
	"seehuhn.de/go/ttfc/sfnt/cmap"
	"seehuhn.de/go/ttfc/sfnt/glyf"
	"seehuhn.de/go/ttfc/sfnt/head"
	"seehuhn.de/go/ttfc/sfnt/hmtx"
	"seehuhn.de/go/ttfc/sfnt/maxp"
	"seehuhn.de/go/ttfc/sfnt/name"
	"seehuhn.de/go/ttfc/sfnt/os2"
	"seehuhn.de/go/ttfc/sfnt/post"
	"seehuhn.de/go/ttfc/sfnt/table"
)

// Font is a decoded TrueType font.
//
// The "head", "hhea", "maxp", "loca" and "glyf" tables are required.
// The fields for the remaining tables are nil if the table is missing.
// Fonts from a collection may share decoded tables; the tables must not be
// modified.
type Font struct {
	Header *table.Header

	Head *head.Info
	Hhea *hmtx.Hhea
	Maxp *maxp.Info
	Name *name.Info
	OS2  *os2.Info
	Post *post.Info
	CMap cmap.Table
	Hmtx *hmtx.Info

	Loca   []int
	Glyphs glyf.Glyphs

	maxDepth int

	mu    sync.Mutex
	cache map[cacheKey]path.Path
}

type cacheKey struct {
	gid   int
	scale float64
}

// Options can be used to control how fonts are read.
// A nil value can be used to select the default options.
type Options struct {
	// MaxComponentDepth, if positive, limits the nesting depth of composite
	// glyphs.  Otherwise the value from the "maxp" table is used, but
	// at least [glyf.DefaultMaxDepth].
	MaxComponentDepth int
}

var defaultOptions = &Options{}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return len(f.Glyphs)
}

// FontName returns the Macintosh English PostScript name of the font,
// or the empty string if the font has no such name.
func (f *Font) FontName() string {
	return f.Name.FontName()
}

// GlyphName returns the name of a glyph from the "post" table,
// or the empty string if no name is known.
func (f *Font) GlyphName(gid int) string {
	return f.Post.GlyphName(gid)
}

// GlyphWidth returns the advance width of a glyph in font design units.
// If the font has no "hmtx" table, 0 is returned.
func (f *Font) GlyphWidth(gid int) funit.Int16 {
	if f.Hmtx == nil || gid < 0 || gid >= len(f.Hmtx.Widths) {
		return 0
	}
	return funit.Int16(f.Hmtx.Widths[gid])
}

// GlyphExtent returns the bounding box of a glyph, as stored in the "glyf"
// table.  For empty glyphs, the zero rectangle is returned.
func (f *Font) GlyphExtent(gid int) funit.Rect16 {
	if gid < 0 || gid >= len(f.Glyphs) || f.Glyphs[gid] == nil {
		return funit.Rect16{}
	}
	return f.Glyphs[gid].Rect16
}

// GlyphIndex maps a single-byte character code to a glyph index, using the
// Macintosh Roman format 0 subtable of the "cmap" table.
func (f *Font) GlyphIndex(code byte) (int, bool) {
	sub := f.CMap.Get(1, 0)
	if sub == nil {
		return 0, false
	}
	return sub.Lookup(uint32(code))
}

// Outline returns the outline of a glyph, transformed by m.
// The outline uses the coordinate system of the font, where the y-axis
// points upwards.
func (f *Font) Outline(gid int, m matrix.Matrix) (path.Path, error) {
	return f.Glyphs.Path(gid, m, f.maxDepth)
}
