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

// Package fonttest builds small TrueType fonts and collections for use in
// tests.
package fonttest

import (
	"bytes"
	"time"

	"seehuhn.de/go/postscript/funit"

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

// Font describes a synthetic TrueType font.
type Font struct {
	Glyphs glyf.Glyphs

	// Names, if non-nil, gives the glyph names for the "post" table.
	Names []string

	// PostVersion, if non-zero, forces the version of the "post" table.
	// See [post.Info.Encode].
	PostVersion uint32

	// FontName, if not empty, is stored as the Macintosh PostScript name.
	FontName string

	// CharMap, if non-nil, is stored as a Macintosh Roman format 0 subtable.
	CharMap map[byte]uint8

	BBox              funit.Rect16
	MaxComponentDepth uint16
}

// Simple returns a font with three glyphs: an empty glyph, a square and
// a composite glyph consisting of two shifted squares.
func Simple() *Font {
	square := &glyf.Glyph{
		Rect16: funit.Rect16{LLx: 0, LLy: 0, URx: 100, URy: 100},
		Data: glyf.SimpleGlyph{
			Contours: []glyf.Contour{{
				{X: 0, Y: 0, OnCurve: true},
				{X: 100, Y: 0, OnCurve: true},
				{X: 100, Y: 100, OnCurve: true},
				{X: 0, Y: 100, OnCurve: true},
			}},
		},
	}
	pair := &glyf.Glyph{
		Rect16: funit.Rect16{LLx: 0, LLy: 0, URx: 300, URy: 100},
		Data: glyf.CompositeGlyph{
			Components: []glyf.Component{
				glyf.NewComponent(1, [4]float64{1, 0, 0, 1}, 0, 0),
				glyf.NewComponent(1, [4]float64{1, 0, 0, 1}, 200, 0),
			},
		},
	}
	return &Font{
		Glyphs:            glyf.Glyphs{nil, square, pair},
		Names:             []string{".notdef", "square", "pair"},
		FontName:          "Test-Regular",
		BBox:              funit.Rect16{LLx: 0, LLy: -200, URx: 300, URy: 800},
		MaxComponentDepth: 1,
	}
}

// Tables returns the binary representation of all tables of the font.
func (f *Font) Tables() map[string][]byte {
	numGlyphs := len(f.Glyphs)
	enc := f.Glyphs.Encode()

	headInfo := &head.Info{
		FontRevision:     0x00010000,
		HasYBaseAt0:      true,
		HasXBaseAt0:      true,
		UnitsPerEm:       1000,
		Created:          time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Modified:         time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		FontBBox:         f.BBox,
		LowestRecPPEM:    7,
		DirectionHint:    2,
		IndexToLocFormat: enc.LocaFormat,
	}

	widths := make([]uint16, numGlyphs)
	lsb := make([]funit.Int16, numGlyphs)
	for i, g := range f.Glyphs {
		if g != nil {
			widths[i] = uint16(g.URx + 50)
			lsb[i] = g.LLx
		}
	}
	hmtxInfo := &hmtx.Info{Widths: widths, LSB: lsb}
	hmtxData, numLong := hmtxInfo.Encode()
	hheaInfo := &hmtx.Hhea{
		Ascent:              f.BBox.URy,
		Descent:             f.BBox.LLy,
		AdvanceWidthMax:     slicesMax(widths),
		NumOfLongHorMetrics: numLong,
	}

	maxpInfo := &maxp.Info{
		NumGlyphs: numGlyphs,
		TTF: &maxp.TTFInfo{
			MaxZones:          2,
			MaxComponentDepth: f.MaxComponentDepth,
		},
	}

	os2Info := &os2.Info{
		Version:     4,
		WeightClass: 400,
		WidthClass:  5,
		IsRegular:   true,
		Vendor:      "TEST",

		HasTypoMetrics: true,
		TypoAscender:   f.BBox.URy,
		TypoDescender:  f.BBox.LLy,
		WinAscent:      uint16(f.BBox.URy),
		WinDescent:     uint16(-f.BBox.LLy),
	}

	postInfo := &post.Info{
		Version:            f.PostVersion,
		UnderlinePosition:  -100,
		UnderlineThickness: 50,
		Names:              f.Names,
	}

	var entries []name.Entry
	if f.FontName != "" {
		entries = append(entries,
			name.Entry{PlatformID: 1, EncodingID: 0, LanguageID: 0, NameID: name.PostScriptName, Value: f.FontName},
			name.Entry{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: name.PostScriptName, Value: f.FontName},
		)
	}

	tables := map[string][]byte{
		"head": headInfo.Encode(),
		"hhea": hheaInfo.Encode(),
		"maxp": maxpInfo.Encode(),
		"hmtx": hmtxData,
		"OS/2": os2Info.Encode(),
		"post": postInfo.Encode(),
		"name": name.Encode(entries),
		"loca": enc.LocaData,
		"glyf": enc.GlyfData,
	}
	if f.CharMap != nil {
		sub := &cmap.Format0{}
		for code, gid := range f.CharMap {
			sub.GlyphIDArray[code] = gid
		}
		tables["cmap"] = cmap.Table{{PlatformID: 1, EncodingID: 0, Subtable: sub}}.Encode()
	}
	return tables
}

// Bytes returns the binary representation of the font.
func (f *Font) Bytes() []byte {
	buf := &bytes.Buffer{}
	_, err := table.Write(buf, table.ScalerTypeTrueType, f.Tables())
	if err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Collection returns the binary representation of a TrueType collection
// containing the given fonts.  Tables with identical contents are stored
// only once.
func Collection(fonts ...*Font) []byte {
	tables := make([]map[string][]byte, len(fonts))
	for i, f := range fonts {
		tables[i] = f.Tables()
	}
	buf := &bytes.Buffer{}
	_, err := table.WriteCollection(buf, tables)
	if err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func slicesMax(x []uint16) uint16 {
	var res uint16
	for _, v := range x {
		res = max(res, v)
	}
	return res
}
