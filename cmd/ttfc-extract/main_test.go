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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/ttfc/internal/fonttest"
)

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "font.ttf")
	if err := os.WriteFile(fname, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return fname
}

func readDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestExtractAll(t *testing.T) {
	fontFile := writeFile(t, fonttest.Simple().Bytes())
	dir := t.TempDir()

	var stdout, stderr bytes.Buffer
	code := run([]string{"-q", "-o", filepath.Join(dir, "{index:0>2}-{gname}.svg"), fontFile},
		&stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("unexpected output in quiet mode: %q", stdout.String())
	}

	want := []string{"00-.notdef.svg", "01-square.svg", "02-pair.svg"}
	if d := cmp.Diff(want, readDir(t, dir)); d != "" {
		t.Errorf("files (-want +got):\n%s", d)
	}

	empty, err := os.ReadFile(filepath.Join(dir, "00-.notdef.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if string(empty) != "<svg/>" {
		t.Errorf("empty glyph: got %q", empty)
	}

	square, err := os.ReadFile(filepath.Join(dir, "01-square.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(square), `d="M 0 0 L 10 0 L 10 -10 L 0 -10 L 0 0 Z"`) {
		t.Errorf("unexpected square outline:\n%s", square)
	}
}

func TestExtractOne(t *testing.T) {
	fontFile := writeFile(t, fonttest.Simple().Bytes())
	dir := t.TempDir()
	out := filepath.Join(dir, "{index}.svg")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-g", "2", "-s", "1", "--smooth", "--fill", "#f00", "--stroke", "none", "-o", out, fontFile},
		&stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}

	fname := filepath.Join(dir, "2.svg")
	if got, want := stdout.String(), "Saved: "+fname+"\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	body, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{`fill="#ff0000"`, `stroke="none"`, `fill-rule="evenodd"`} {
		if !strings.Contains(string(body), s) {
			t.Errorf("missing %s in\n%s", s, body)
		}
	}
}

func TestExtractCollection(t *testing.T) {
	a := fonttest.Simple()
	b := fonttest.Simple()
	b.FontName = "Other-Bold"
	fontFile := writeFile(t, fonttest.Collection(a, b))

	cases := []struct {
		font string
		want []string
	}{
		{"-1", []string{
			"Other-Bold-0.svg", "Other-Bold-1.svg", "Other-Bold-2.svg",
			"Test-Regular-0.svg", "Test-Regular-1.svg", "Test-Regular-2.svg",
		}},
		{"1", []string{"Other-Bold-0.svg", "Other-Bold-1.svg", "Other-Bold-2.svg"}},
		{"7", nil},
	}
	for _, c := range cases {
		dir := t.TempDir()
		var stdout, stderr bytes.Buffer
		code := run([]string{"-q", "-f", c.font, "-o", filepath.Join(dir, "{fname}-{index}.svg"), fontFile},
			&stdout, &stderr)
		if code != exitOK {
			t.Fatalf("-f %s: exit code %d, stderr: %s", c.font, code, stderr.String())
		}
		if d := cmp.Diff(c.want, readDir(t, dir)); d != "" {
			t.Errorf("-f %s: files (-want +got):\n%s", c.font, d)
		}
	}
}

func TestNegativeIndex(t *testing.T) {
	fontFile := writeFile(t, fonttest.Simple().Bytes())

	for _, args := range [][]string{
		{"-g", "-1"},
		{"-f", "-1"},
		{"--glyph", "-3", "-f", "-2"},
		{"--glyph=-1"},
	} {
		dir := t.TempDir()
		var stdout, stderr bytes.Buffer
		all := append(args, "-q", "-o", filepath.Join(dir, "{index}.svg"), fontFile)
		code := run(all, &stdout, &stderr)
		if code != exitOK {
			t.Errorf("%q: exit code %d, stderr: %s", args, code, stderr.String())
			continue
		}
		want := []string{"0.svg", "1.svg", "2.svg"}
		if d := cmp.Diff(want, readDir(t, dir)); d != "" {
			t.Errorf("%q: files (-want +got):\n%s", args, d)
		}
	}
}

func TestJoinNegative(t *testing.T) {
	in := []string{"-g", "-1", "-s", "-0.5", "-q", "-o", "-x.svg", "-j", "-2", "--", "-f", "-1"}
	want := []string{"--glyph=-1", "--scale=-0.5", "-q", "-o", "-x.svg", "--jobs=-2", "--", "-f", "-1"}
	if d := cmp.Diff(want, joinNegative(in)); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestDuplicateNames(t *testing.T) {
	fontFile := writeFile(t, fonttest.Collection(fonttest.Simple(), fonttest.Simple()))
	dir := t.TempDir()

	var stdout, stderr bytes.Buffer
	code := run([]string{"-o", filepath.Join(dir, "{index}.svg"), fontFile}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	if n := strings.Count(stdout.String(), "Saved:"); n != 3 {
		t.Errorf("%d files saved, want 3", n)
	}
	if !strings.Contains(stderr.String(), "more than once") {
		t.Errorf("missing warning, stderr: %s", stderr.String())
	}
}

func TestErrors(t *testing.T) {
	fontFile := writeFile(t, fonttest.Simple().Bytes())
	otto := writeFile(t, []byte("OTTO\x00\x00\x00\x00"))
	junk := writeFile(t, []byte("junk data"))
	out := filepath.Join(t.TempDir(), "{index}.svg")

	cases := []struct {
		args   []string
		code   int
		stderr string
	}{
		{nil, exitUsage, "help message"},
		{[]string{fontFile, fontFile}, exitUsage, ""},
		{[]string{"-o", "{index", fontFile}, exitUsage, "single '{'"},
		{[]string{"--fill", "mauve-ish", "-o", out, fontFile}, exitUsage, "fill"},
		{[]string{"-s", "0", "-o", out, fontFile}, exitUsage, "scale"},
		{[]string{"-g", "3", "-o", out, fontFile}, exitUsage, "out of range"},
		{[]string{filepath.Join(t.TempDir(), "missing.ttf")}, exitFont, ""},
		{[]string{"-o", out, otto}, exitFont, "cannot handle the font format"},
		{[]string{"-o", out, junk}, exitFont, "unexpected format"},
	}
	for i, c := range cases {
		var stdout, stderr bytes.Buffer
		code := run(c.args, &stdout, &stderr)
		if code != c.code {
			t.Errorf("%d: exit code %d, want %d (stderr: %s)", i, code, c.code, stderr.String())
			continue
		}
		if !strings.Contains(stderr.String(), c.stderr) {
			t.Errorf("%d: stderr %q does not contain %q", i, stderr.String(), c.stderr)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-v"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code %d", code)
	}
	if !strings.HasPrefix(stdout.String(), toolName+" ") {
		t.Errorf("unexpected version output %q", stdout.String())
	}
}

func TestSafeName(t *testing.T) {
	if got := safeName("../a\\b"); got != ".._a_b" {
		t.Errorf("got %q", got)
	}
}
