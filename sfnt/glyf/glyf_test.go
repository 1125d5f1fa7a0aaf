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
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/ttfc/fonterror"
	"seehuhn.de/go/ttfc/path"
	"seehuhn.de/go/ttfc/sfnt/head"
	"seehuhn.de/go/ttfc/sfnt/table"
)

func TestLoca(t *testing.T) {
	for _, offs := range [][]int{
		{0, 0, 10, 10, 24},
		{0, 100000, 100000, 200002},
		{0, 3, 7},
	} {
		data, format := EncodeLoca(offs)
		got, err := DecodeLoca(data, format, len(offs)-1, offs[len(offs)-1])
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(offs, got); d != "" {
			t.Errorf("format %d: %s", format, d)
		}
	}
}

func TestLocaErrors(t *testing.T) {
	short := []byte{0, 0, 0, 5, 0, 4}
	_, err := DecodeLoca(short, 0, 2, 100)
	if !errors.Is(err, fonterror.ErrMalformedHeader) {
		t.Errorf("decreasing offsets: got %v", err)
	}
	_, err = DecodeLoca(short, 0, 2, 9)
	if !errors.Is(err, fonterror.ErrMalformedHeader) {
		t.Errorf("offset past end of glyf: got %v", err)
	}
	_, err = DecodeLoca(short, 0, 3, 100)
	if !errors.Is(err, fonterror.ErrTruncatedTable) {
		t.Errorf("short table: got %v", err)
	}
	_, err = DecodeLoca(short, 1, 1, 100)
	if !errors.Is(err, fonterror.ErrTruncatedTable) {
		t.Errorf("short table, long format: got %v", err)
	}
	_, err = DecodeLoca(short, 2, 2, 100)
	if !fonterror.IsUnsupported(err) {
		t.Errorf("unknown format: got %v", err)
	}
}

func TestEmptySpan(t *testing.T) {
	gg := Glyphs{
		nil,
		{
			Rect16: funit.Rect16{LLx: 0, LLy: 0, URx: 10, URy: 10},
			Data: SimpleGlyph{
				Contours: []Contour{{{0, 0, true}, {10, 0, true}, {10, 10, true}}},
			},
		},
	}
	enc := gg.Encode()
	offs, err := DecodeLoca(enc.LocaData, enc.LocaFormat, 2, len(enc.GlyfData))
	if err != nil {
		t.Fatal(err)
	}
	if offs[0] != offs[1] {
		t.Fatalf("glyph 0 is not empty: %v", offs)
	}
	gg2, err := Decode(enc.GlyfData, offs)
	if err != nil {
		t.Fatal(err)
	}
	if gg2[0] != nil {
		t.Errorf("expected an empty glyph, got %v", gg2[0])
	}
	p, err := gg2.Path(0, identity, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 0 {
		t.Errorf("empty glyph has path %v", p)
	}
}

func TestSimpleRoundTrip(t *testing.T) {
	var long Contour
	for i := range 600 {
		long = append(long, Point{X: funit.Int16(i % 7), Y: funit.Int16(-3 * i), OnCurve: i%3 != 1})
	}
	gg := Glyphs{
		{
			Rect16: funit.Rect16{LLx: -300, LLy: -2000, URx: 32767, URy: 5},
			Data: SimpleGlyph{
				Contours: []Contour{
					{{0, 0, true}, {255, 0, false}, {-1, 5, true}, {-32768, 32767, true}},
					{{0, 0, false}},
					long,
				},
				Instructions: []byte{1, 2, 3},
			},
		},
		{
			Data: SimpleGlyph{},
		},
	}

	enc := gg.Encode()
	offs, err := DecodeLoca(enc.LocaData, enc.LocaFormat, len(gg), len(enc.GlyfData))
	if err != nil {
		t.Fatal(err)
	}
	gg2, err := Decode(enc.GlyfData, offs)
	if err != nil {
		t.Fatal(err)
	}
	for i := range gg2 {
		if err := gg2.Err(i); err != nil {
			t.Errorf("glyph %d: %v", i, err)
		}
	}

	opt := []cmp.Option{
		cmpopts.EquateEmpty(),
		cmpopts.IgnoreFields(SimpleGlyph{}, "Trailing"),
	}
	if d := cmp.Diff(gg, gg2, opt...); d != "" {
		t.Error(d)
	}

	s := gg2[0].Data.(SimpleGlyph)
	if n := s.NumPoints(); n != 605 {
		t.Errorf("got %d points, expected 605", n)
	}
}

// glyph assembles the binary representation of a simple glyph.
func glyph(body ...byte) []byte {
	res := []byte{0, 1, 0, 0, 0, 0, 0, 10, 0, 10}
	return append(res, body...)
}

func TestSimpleErrors(t *testing.T) {
	type testCase struct {
		name string
		data []byte
		want error
	}
	cases := []testCase{
		{
			name: "repeat count too large",
			data: glyph(0, 1, 0, 0, 0x09, 2, 0, 0),
			want: fonterror.ErrTruncatedTable,
		},
		{
			name: "missing flags",
			data: glyph(0, 2, 0, 0, 0x01),
			want: fonterror.ErrTruncatedTable,
		},
		{
			name: "missing coordinates",
			data: glyph(0, 0, 0, 0, 0x01),
			want: fonterror.ErrTruncatedTable,
		},
		{
			name: "missing repeat count",
			data: glyph(0, 2, 0, 0, 0x09),
			want: fonterror.ErrTruncatedTable,
		},
		{
			name: "instructions too long",
			data: glyph(0, 0, 0, 5, 1, 2),
			want: fonterror.ErrTruncatedTable,
		},
		{
			name: "short header",
			data: []byte{0, 1, 0, 0, 0},
			want: fonterror.ErrTruncatedTable,
		},
		{
			name: "end points not increasing",
			data: append([]byte{0, 2, 0, 0, 0, 0, 0, 0, 0, 0}, 0, 3, 0, 2, 0, 0),
			want: fonterror.ErrMalformedHeader,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			good := glyph(0, 0, 0, 0, 0x31)
			glyfData := append(good, c.data...)
			offs := []int{0, len(good), len(glyfData)}

			gg, err := Decode(glyfData, offs)
			if err != nil {
				t.Fatal(err)
			}
			if err := gg.Err(0); err != nil {
				t.Errorf("sibling glyph is broken: %v", err)
			}

			err = gg.Err(1)
			if !errors.Is(err, c.want) {
				t.Errorf("got %v, expected %v", err, c.want)
			}
			var gErr *GlyphError
			if !errors.As(err, &gErr) || gErr.Index != 1 {
				t.Errorf("missing glyph index in %v", err)
			}

			_, err = gg.Path(1, identity, 0)
			if !errors.Is(err, c.want) {
				t.Errorf("Path: got %v, expected %v", err, c.want)
			}
		})
	}
}

func TestTrailingData(t *testing.T) {
	data := glyph(0, 0, 0, 0, 0x31, 0, 0xAB)
	gg, err := Decode(data, []int{0, len(data)})
	if err != nil {
		t.Fatal(err)
	}
	if err := gg.Err(0); err != nil {
		t.Fatal(err)
	}
	s := gg[0].Data.(SimpleGlyph)
	if d := cmp.Diff([]byte{0, 0xAB}, s.Trailing); d != "" {
		t.Error(d)
	}
	if !s.HasTrailingData() {
		t.Error("trailing data not detected")
	}
}

func TestCoordinateEncoding(t *testing.T) {
	// Two on-curve points, the second one shifted by (-7, 300).
	// The x-offset is stored as a short negative value, the y-offset
	// as a 16-bit word.
	data := glyph(0, 1, 0, 0, 0x31, 0x03, 7, 1, 44)
	gg, err := Decode(data, []int{0, len(data)})
	if err != nil {
		t.Fatal(err)
	}
	if err := gg.Err(0); err != nil {
		t.Fatal(err)
	}
	want := []Contour{{{0, 0, true}, {-7, 300, true}}}
	if d := cmp.Diff(want, gg[0].Data.(SimpleGlyph).Contours); d != "" {
		t.Error(d)
	}
}

func TestGoRegular(t *testing.T) {
	enc := goRegularTables(t)
	offs, err := DecodeLoca(enc.LocaData, enc.LocaFormat, numGlyphs(enc), len(enc.GlyfData))
	if err != nil {
		t.Fatal(err)
	}
	gg, err := Decode(enc.GlyfData, offs)
	if err != nil {
		t.Fatal(err)
	}

	for i, g := range gg {
		if err := gg.Err(i); err != nil {
			t.Errorf("glyph %d: %v", i, err)
			continue
		}
		p, err := gg.Path(i, identity, 0)
		if err != nil {
			t.Errorf("glyph %d: %v", i, err)
			continue
		}
		if g == nil {
			continue
		}
		if len(p) > 0 && (p[0].Op != path.MoveTo || p[len(p)-1].Op != path.Close) {
			t.Errorf("glyph %d: invalid path %s", i, p)
		}
	}
	// re-encoding must preserve all glyphs
	enc2 := gg.Encode()
	offs2, err := DecodeLoca(enc2.LocaData, enc2.LocaFormat, len(gg), len(enc2.GlyfData))
	if err != nil {
		t.Fatal(err)
	}
	gg2, err := Decode(enc2.GlyfData, offs2)
	if err != nil {
		t.Fatal(err)
	}
	opt := []cmp.Option{
		cmpopts.EquateEmpty(),
		cmpopts.IgnoreFields(SimpleGlyph{}, "Trailing"),
	}
	if d := cmp.Diff(gg, gg2, opt...); d != "" {
		t.Error(d)
	}
}

func FuzzGlyf(f *testing.F) {
	enc := goRegularTables(f)
	f.Add(enc.GlyfData, enc.LocaData, enc.LocaFormat)

	small := Glyphs{
		nil,
		{Data: SimpleGlyph{Contours: []Contour{{{1, 2, true}, {3, 4, false}}}}},
		{Data: CompositeGlyph{Components: []Component{NewComponent(1, [4]float64{1, 0, 0, 1}, 5, 500)}}},
	}
	enc = small.Encode()
	f.Add(enc.GlyfData, enc.LocaData, enc.LocaFormat)

	f.Fuzz(func(t *testing.T, glyfData, locaData []byte, locaFormat int16) {
		enc := &Encoded{
			GlyfData:   glyfData,
			LocaData:   locaData,
			LocaFormat: locaFormat,
		}
		n := numGlyphs(enc)
		if n < 0 {
			return
		}
		offs, err := DecodeLoca(locaData, locaFormat, n, len(glyfData))
		if err != nil {
			return
		}
		gg, err := Decode(glyfData, offs)
		if err != nil {
			t.Fatal(err)
		}
		for i := range gg {
			// must terminate without panic
			gg.Path(i, identity, 0)

			if gg.Err(i) != nil {
				gg[i] = nil
			}
		}

		enc2 := gg.Encode()
		offs2, err := DecodeLoca(enc2.LocaData, enc2.LocaFormat, len(gg), len(enc2.GlyfData))
		if err != nil {
			t.Fatal(err)
		}
		gg2, err := Decode(enc2.GlyfData, offs2)
		if err != nil {
			t.Fatal(err)
		}

		opt := []cmp.Option{
			cmpopts.EquateEmpty(),
			cmpopts.IgnoreFields(SimpleGlyph{}, "Trailing"),
		}
		if d := cmp.Diff(gg, gg2, opt...); d != "" {
			t.Error(d)
		}
	})
}

func numGlyphs(enc *Encoded) int {
	switch enc.LocaFormat {
	case 0:
		return len(enc.LocaData)/2 - 1
	case 1:
		return len(enc.LocaData)/4 - 1
	default:
		return -1
	}
}

func goRegularTables(t testing.TB) *Encoded {
	t.Helper()
	data := goregular.TTF
	header, err := table.ReadHeader(bytes.NewReader(data), 0)
	if err != nil {
		t.Fatal(err)
	}
	headData, err := header.ReadTableBytes(data, "head")
	if err != nil {
		t.Fatal(err)
	}
	headInfo, err := head.Decode(headData)
	if err != nil {
		t.Fatal(err)
	}
	glyfData, err := header.ReadTableBytes(data, "glyf")
	if err != nil {
		t.Fatal(err)
	}
	locaData, err := header.ReadTableBytes(data, "loca")
	if err != nil {
		t.Fatal(err)
	}
	return &Encoded{
		GlyfData:   glyfData,
		LocaData:   locaData,
		LocaFormat: headInfo.IndexToLocFormat,
	}
}
