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

package os2

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/ttfc/fonterror"
)

func TestOS2Versions(t *testing.T) {
	for _, version := range []uint16{0, 1, 2, 3, 4, 5} {
		info := &Info{
			Version:        version,
			WeightClass:    700,
			WidthClass:     5,
			IsBold:         true,
			Vendor:         "GOOG",
			FirstCharIndex: 0x20,
			LastCharIndex:  0xFFFD,
			HasTypoMetrics: true,
			TypoAscender:   800,
			TypoDescender:  -200,
			WinAscent:      900,
			WinDescent:     300,
			PermUse:        PermView,
		}
		if version >= 1 {
			info.CodePageRange = [2]uint32{1, 0}
		}
		if version >= 2 {
			info.XHeight = 500
			info.CapHeight = 700
			info.MaxContext = 3
		}
		if version >= 5 {
			info.LowerOpticalPointSize = 180
			info.UpperOpticalPointSize = 1440
		}

		other, err := Decode(info.Encode())
		if err != nil {
			t.Fatalf("version %d: %v", version, err)
		}
		if d := cmp.Diff(info, other); d != "" {
			t.Errorf("version %d: %s", version, d)
		}
	}
}

func TestOS2OpticalSizeIgnoredBeforeV5(t *testing.T) {
	info := &Info{Version: 4, HasTypoMetrics: true}
	data := append(info.Encode(), 0x00, 0xB4, 0x05, 0xA0)
	other, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if other.LowerOpticalPointSize != 0 || other.UpperOpticalPointSize != 0 {
		t.Errorf("optical sizes read from version 4 table: %d, %d",
			other.LowerOpticalPointSize, other.UpperOpticalPointSize)
	}
}

func TestOS2Truncated(t *testing.T) {
	info := &Info{Version: 5, HasTypoMetrics: true}
	data := info.Encode()
	_, err := Decode(data[:len(data)-2])
	if !errors.Is(err, fonterror.ErrTruncatedTable) {
		t.Errorf("got %v", err)
	}
}
