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

package fonterror

import (
	"errors"
	"fmt"
	"testing"
)

func TestKinds(t *testing.T) {
	cases := []struct {
		err  error
		kind error
	}{
		{Truncated("glyf", 10, 4, 2), ErrTruncatedTable},
		{Malformed("loca", "offset %d decreases", 3), ErrMalformedHeader},
		{CountMismatch("hmtx", 5, 7), ErrGlyphCountMismatch},
		{&NotSupportedError{SubSystem: "sfnt", Feature: "CFF"}, ErrUnsupportedFlavor},
		{&InvalidFontError{SubSystem: "glyf", Kind: ErrComponentDepth}, ErrComponentDepth},
	}
	for i, c := range cases {
		wrapped := fmt.Errorf("font 1: %w", c.err)
		if !errors.Is(wrapped, c.kind) {
			t.Errorf("%d: %v is not of kind %v", i, c.err, c.kind)
		}
	}

	if !IsUnsupported(fmt.Errorf("x: %w", &NotSupportedError{})) {
		t.Error("IsUnsupported failed for wrapped error")
	}
	if IsUnsupported(Malformed("x", "y")) {
		t.Error("malformed data reported as unsupported")
	}
}

func TestMessages(t *testing.T) {
	err := Truncated("glyf", 10, 4, 2)
	want := "glyf: need 4 bytes at offset 10, only 2 available"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
	err = CountMismatch("hmtx", 5, 7)
	want = "hmtx: table has 5 glyphs, expected 7"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}
