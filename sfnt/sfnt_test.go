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
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"
	xsfnt "golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/ttfc/fonterror"
	"seehuhn.de/go/ttfc/internal/fonttest"
	"seehuhn.de/go/ttfc/path"
	"seehuhn.de/go/ttfc/sfnt/glyf"
	"seehuhn.de/go/ttfc/sfnt/post"
	"seehuhn.de/go/ttfc/sfnt/table"
)

func TestDetect(t *testing.T) {
	type testCase struct {
		data []byte
		kind Kind
		err  error
	}
	cases := []testCase{
		{[]byte{0, 1, 0, 0, 0, 0}, KindFont, nil},
		{[]byte("true...."), KindFont, nil},
		{[]byte("ttcf...."), KindCollection, nil},
		{[]byte("OTTO...."), KindUnknown, fonterror.ErrUnsupportedFlavor},
		{[]byte("typ1...."), KindUnknown, fonterror.ErrUnsupportedFlavor},
		{[]byte("wOFF...."), KindUnknown, fonterror.ErrUnrecognizedFormat},
		{[]byte{0, 1}, KindUnknown, fonterror.ErrUnrecognizedFormat},
	}
	for _, c := range cases {
		kind, err := Detect(c.data)
		if kind != c.kind {
			t.Errorf("%q: got %s, expected %s", c.data, kind, c.kind)
		}
		if !errors.Is(err, c.err) {
			t.Errorf("%q: got error %v, expected %v", c.data, err, c.err)
		}
	}
}

func TestSimpleFont(t *testing.T) {
	f, err := Read(fonttest.Simple().Bytes(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if f.NumGlyphs() != 3 {
		t.Errorf("got %d glyphs, expected 3", f.NumGlyphs())
	}
	if name := f.FontName(); name != "Test-Regular" {
		t.Errorf("got font name %q", name)
	}
	if w := f.GlyphWidth(1); w != 150 {
		t.Errorf("got width %d, expected 150", w)
	}
	if f.OS2 == nil || f.OS2.Vendor != "TEST" {
		t.Errorf("OS/2 table not decoded: %v", f.OS2)
	}

	g0, err := f.Glyph(0, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if !g0.Empty || len(g0.Path) != 0 || g0.Name != ".notdef" {
		t.Errorf("unexpected result for glyph 0: %v", g0)
	}

	g2, err := f.Glyph(2, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if g2.Empty || g2.Name != "pair" || g2.FontName != "Test-Regular" {
		t.Errorf("unexpected result for glyph 2: %v", g2)
	}
	wantBBox := rect.Rect{LLx: 0, LLy: -100, URx: 150, URy: 400}
	if d := cmp.Diff(wantBBox, g2.BBox); d != "" {
		t.Error(d)
	}
	want := "M 0 0 L 50 0 L 50 -50 L 0 -50 L 0 0 Z M 100 0 L 150 0 L 150 -50 L 100 -50 L 100 0 Z"
	if got := g2.Path.String(); got != want {
		t.Errorf("got %q, expected %q", got, want)
	}

	_, err = f.Glyph(3, 1)
	if err == nil {
		t.Error("missing error for glyph out of range")
	}
}

func TestPostVersion1(t *testing.T) {
	font := fonttest.Simple()
	square := font.Glyphs[1]
	font.Glyphs = glyf.Glyphs{nil, nil, nil, square}
	font.Names = nil
	font.PostVersion = post.Version1
	if n := len(font.Tables()["post"]); n != 32 {
		t.Fatalf("post table has %d bytes, expected a bare header", n)
	}

	f, err := Read(font.Bytes(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if f.Post.Version != 0x00010000 {
		t.Errorf("got post version %08x", f.Post.Version)
	}
	if name := f.GlyphName(3); name != "space" {
		t.Errorf("got %q, expected %q", name, "space")
	}
}

func TestCollection(t *testing.T) {
	f1 := fonttest.Simple()
	f2 := fonttest.Simple()
	f2.FontName = "Test-Other"
	data := fonttest.Collection(f1, f2)

	kind, err := Detect(data)
	if err != nil || kind != KindCollection {
		t.Fatalf("got %s, %v", kind, err)
	}

	c, err := ReadCollection(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Fonts) != 2 {
		t.Fatalf("got %d fonts, expected 2", len(c.Fonts))
	}
	a, b := c.Fonts[0], c.Fonts[1]

	if a.Header.Toc["glyf"] != b.Header.Toc["glyf"] || a.Header.Toc["loca"] != b.Header.Toc["loca"] {
		t.Error("glyf and loca tables are not shared")
	}
	if a.Header.Toc["name"] == b.Header.Toc["name"] {
		t.Error("name tables should be different")
	}
	if &a.Glyphs[0] != &b.Glyphs[0] {
		t.Error("glyph data was decoded twice")
	}

	if a.FontName() != "Test-Regular" || b.FontName() != "Test-Other" {
		t.Errorf("got font names %q and %q", a.FontName(), b.FontName())
	}
	for gid := range a.NumGlyphs() {
		ga, err := a.Glyph(gid, 1)
		if err != nil {
			t.Fatal(err)
		}
		gb, err := b.Glyph(gid, 1)
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(ga.Path, gb.Path); d != "" {
			t.Errorf("glyph %d: %s", gid, d)
		}
	}

	fonts, err := ReadAll(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(fonts) != 2 {
		t.Errorf("got %d fonts, expected 2", len(fonts))
	}
}

func TestOpen(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "test.ttf")
	err := os.WriteFile(fname, fonttest.Simple().Bytes(), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	fonts, err := Open(fname, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(fonts) != 1 {
		t.Errorf("got %d fonts, expected 1", len(fonts))
	}
}

func TestMissingTables(t *testing.T) {
	for _, tag := range []string{"head", "hhea", "maxp", "loca", "glyf"} {
		font := fonttest.Simple()
		tables := font.Tables()
		delete(tables, tag)
		data := writeTables(t, tables)
		_, err := Read(data, nil)
		if err == nil {
			t.Errorf("missing %q table not detected", tag)
		}
	}

	for _, tag := range []string{"name", "OS/2", "post", "hmtx"} {
		font := fonttest.Simple()
		tables := font.Tables()
		delete(tables, tag)
		data := writeTables(t, tables)
		f, err := Read(data, nil)
		if err != nil {
			t.Errorf("missing %q: %v", tag, err)
			continue
		}
		if _, err := f.Glyph(2, 1); err != nil {
			t.Errorf("missing %q: %v", tag, err)
		}
	}
}

func TestUnsupportedNameFormat(t *testing.T) {
	font := fonttest.Simple()
	tables := font.Tables()
	tables["name"] = []byte{0, 2, 0, 0, 0, 6}
	data := writeTables(t, tables)

	f, err := Read(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if name := f.FontName(); name != "" {
		t.Errorf("got font name %q", name)
	}
	if _, err := f.Glyph(2, 1); err != nil {
		t.Error(err)
	}
}

func TestGlyphCountMismatch(t *testing.T) {
	font := fonttest.Simple()
	font.Names = []string{".notdef", "a", "b", "c"}
	data := writeTables(t, font.Tables())

	_, err := Read(data, nil)
	if !errors.Is(err, fonterror.ErrGlyphCountMismatch) {
		t.Errorf("got %v, expected %v", err, fonterror.ErrGlyphCountMismatch)
	}
}

func TestComponentDepthOption(t *testing.T) {
	font := fonttest.Simple()
	nested := &glyf.Glyph{
		Data: glyf.CompositeGlyph{
			Components: []glyf.Component{
				glyf.NewComponent(2, [4]float64{1, 0, 0, 1}, 0, 0),
			},
		},
	}
	font.Glyphs = append(font.Glyphs, nested)
	font.Names = append(font.Names, "nested")
	data := font.Bytes()

	f, err := Read(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Glyph(3, 1); err != nil {
		t.Errorf("default depth: %v", err)
	}

	f, err = Read(data, &Options{MaxComponentDepth: 1})
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.Glyph(3, 1)
	if !errors.Is(err, fonterror.ErrComponentDepth) {
		t.Errorf("got %v, expected %v", err, fonterror.ErrComponentDepth)
	}
}

func TestConcurrentGlyphs(t *testing.T) {
	f, err := Read(goregular.TTF, nil)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	results := make([][]path.Path, 4)
	for k := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for gid := range f.NumGlyphs() {
				g, err := f.Glyph(gid, 0.1)
				if err != nil {
					t.Error(err)
					return
				}
				results[k] = append(results[k], g.Path)
			}
		}()
	}
	wg.Wait()

	for k := 1; k < len(results); k++ {
		if d := cmp.Diff(results[0], results[k]); d != "" {
			t.Errorf("run %d differs: %s", k, d)
		}
	}
}

// TestGoRegular compares the decoded font with the result of the
// golang.org/x/image/font/sfnt package.
func TestGoRegular(t *testing.T) {
	f, err := Read(goregular.TTF, nil)
	if err != nil {
		t.Fatal(err)
	}
	ref, err := xsfnt.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}

	if f.NumGlyphs() != ref.NumGlyphs() {
		t.Fatalf("got %d glyphs, expected %d", f.NumGlyphs(), ref.NumGlyphs())
	}
	if int(f.Head.UnitsPerEm) != int(ref.UnitsPerEm()) {
		t.Errorf("got %d units per em, expected %d", f.Head.UnitsPerEm, ref.UnitsPerEm())
	}

	var buf xsfnt.Buffer
	ppem := fixed.I(int(ref.UnitsPerEm()))
	for gid := range f.NumGlyphs() {
		x := xsfnt.GlyphIndex(gid)

		refName, err := ref.GlyphName(&buf, x)
		if err == nil && refName != f.GlyphName(gid) {
			t.Errorf("glyph %d: got name %q, expected %q", gid, f.GlyphName(gid), refName)
		}

		if g := f.Glyphs[gid]; g != nil {
			if _, isSimple := g.Data.(glyf.SimpleGlyph); !isSimple {
				continue
			}
		}

		segs, err := ref.LoadGlyph(&buf, x, ppem, nil)
		if err != nil {
			continue
		}
		refPoints := make(map[[2]int32]bool)
		numContours := 0
		for _, seg := range segs {
			var end fixed.Point26_6
			switch seg.Op {
			case xsfnt.SegmentOpMoveTo:
				numContours++
				end = seg.Args[0]
			case xsfnt.SegmentOpLineTo:
				end = seg.Args[0]
			case xsfnt.SegmentOpQuadTo:
				end = seg.Args[1]
			default:
				t.Fatalf("glyph %d: unexpected segment %v", gid, seg)
			}
			refPoints[[2]int32{int32(end.X), int32(end.Y)}] = true
		}

		res, err := f.Glyph(gid, 1)
		if err != nil {
			t.Errorf("glyph %d: %v", gid, err)
			continue
		}
		points := make(map[[2]int32]bool)
		for _, c := range res.Path {
			if c.Op == path.Close {
				continue
			}
			end := c.End()
			points[[2]int32{int32(math.Round(end.X * 64)), int32(math.Round(end.Y * 64))}] = true
		}

		if res.Path.NumContours() != numContours {
			t.Errorf("glyph %d: got %d contours, expected %d", gid, res.Path.NumContours(), numContours)
		}
		// x/image truncates implied on-curve points to whole font units,
		// so these can be off by half a unit (32 in 26.6 format).
		if missing := unmatched(points, refPoints, 32); len(missing) > 0 {
			t.Errorf("glyph %d: unexpected points %v", gid, missing)
		}
		if missing := unmatched(refPoints, points, 32); len(missing) > 0 {
			t.Errorf("glyph %d: missing points %v", gid, missing)
		}
	}
}

// unmatched returns the points in a which have no counterpart in b, where
// coordinates may differ by 0 or ±tol.
func unmatched(a, b map[[2]int32]bool, tol int32) [][2]int32 {
	var res [][2]int32
	offsets := []int32{0, -tol, tol}
pointLoop:
	for pt := range a {
		for _, dx := range offsets {
			for _, dy := range offsets {
				if b[[2]int32{pt[0] + dx, pt[1] + dy}] {
					continue pointLoop
				}
			}
		}
		res = append(res, pt)
	}
	return res
}

func TestIdempotentRead(t *testing.T) {
	m := matrix.Matrix{0.25, 0, 0, 0.25, 0, 0}
	var paths [2][]path.Path
	for k := range paths {
		f, err := Read(goregular.TTF, nil)
		if err != nil {
			t.Fatal(err)
		}
		for gid := range f.NumGlyphs() {
			p, err := f.Outline(gid, m)
			if err != nil {
				t.Fatal(err)
			}
			paths[k] = append(paths[k], p)
		}
	}
	if d := cmp.Diff(paths[0], paths[1]); d != "" {
		t.Error(d)
	}
}

func writeTables(t *testing.T, tables map[string][]byte) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	_, err := table.Write(buf, table.ScalerTypeTrueType, tables)
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
