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

package head

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/ttfc/fonterror"
)

func TestHeadRoundTrip(t *testing.T) {
	info := &Info{
		FontRevision:  0x00018000,
		HasYBaseAt0:   true,
		UnitsPerEm:    2048,
		Created:       time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC),
		Modified:      time.Date(2022, 12, 31, 23, 59, 59, 0, time.UTC),
		FontBBox:      funit.Rect16{LLx: -100, LLy: -200, URx: 1000, URy: 900},
		IsItalic:      true,
		LowestRecPPEM: 8,
		DirectionHint: 2,

		IndexToLocFormat: 1,
	}
	data := info.Encode()
	if len(data) != headLength {
		t.Fatalf("wrong length %d", len(data))
	}
	other, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(info, other); d != "" {
		t.Error(d)
	}
	if other.FontRevision.String() != "1.500" {
		t.Errorf("wrong revision %s", other.FontRevision)
	}
}

func TestHeadErrors(t *testing.T) {
	info := &Info{UnitsPerEm: 1000}
	data := info.Encode()

	_, err := Decode(data[:40])
	if !errors.Is(err, fonterror.ErrTruncatedTable) {
		t.Errorf("short table: got %v", err)
	}

	data[12] = 0
	_, err = Decode(data)
	if !errors.Is(err, fonterror.ErrMalformedHeader) {
		t.Errorf("bad magic: got %v", err)
	}
}
