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

package name

import (
	"errors"
	"testing"

	"seehuhn.de/go/ttfc/fonterror"
)

func TestNameTable(t *testing.T) {
	entries := []Entry{
		{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: Family, Value: "Test Sans"},
		{PlatformID: 3, EncodingID: 1, LanguageID: 0x0407, NameID: Family, Value: "Testschrift Größe"},
		{PlatformID: 1, EncodingID: 0, LanguageID: 0, NameID: PostScriptName, Value: "TestSans-Regular"},
		{PlatformID: 1, EncodingID: 0, LanguageID: 0, NameID: Copyright, Value: "© 2026"},
	}
	info, err := Decode(Encode(entries))
	if err != nil {
		t.Fatal(err)
	}
	if len(info.Records) != len(entries) {
		t.Fatalf("expected %d records, got %d", len(entries), len(info.Records))
	}

	if got := info.FontName(); got != "TestSans-Regular" {
		t.Errorf("wrong font name %q", got)
	}

	for _, e := range entries {
		i := info.Find(e.PlatformID, e.EncodingID, e.LanguageID, e.NameID)
		if i < 0 {
			t.Errorf("record %v not found", e)
			continue
		}
		if got := info.String(i); got != e.Value {
			t.Errorf("wrong value %q, expected %q", got, e.Value)
		}
	}

	if info.Find(3, 1, 0x0409, Trademark) != -1 {
		t.Error("found non-existent record")
	}
	if info.String(-1) != "" || info.String(100) != "" {
		t.Error("out of range records should give the empty string")
	}
}

func TestFormat1(t *testing.T) {
	data := []byte{
		0, 1, // format
		0, 1, // count
		0, 24, // storage offset
		0, 1, 0, 0, 0, 0, 0, 6, 0, 3, 0, 0, // record
		0, 1, // lang tag count
		0, 2, 0, 3, // lang tag record
		'a', 'b', 'c', 0, 'X',
	}
	info, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if info.Format != 1 {
		t.Errorf("got format %d", info.Format)
	}
	if got := info.FontName(); got != "abc" {
		t.Errorf("wrong font name %q", got)
	}

	data[5] = 20 // storage area overlaps the lang tag records
	_, err = Decode(data)
	if !errors.Is(err, fonterror.ErrMalformedHeader) {
		t.Errorf("got %v, expected %v", err, fonterror.ErrMalformedHeader)
	}
}

func TestNoFontName(t *testing.T) {
	info, err := Decode(Encode([]Entry{
		{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: PostScriptName, Value: "OnlyWindows"},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if got := info.FontName(); got != "" {
		t.Errorf("expected empty font name, got %q", got)
	}

	var missing *Info
	if missing.FontName() != "" {
		t.Error("nil table should give empty font name")
	}
}

func TestLazyStrings(t *testing.T) {
	data := Encode([]Entry{
		{PlatformID: 1, EncodingID: 0, LanguageID: 0, NameID: Family, Value: "abc"},
		{PlatformID: 1, EncodingID: 0, LanguageID: 0, NameID: PostScriptName, Value: "abcdef"},
	})

	// Cutting off the storage area does not affect decoding of the
	// records, only retrieval of the strings.
	info, err := Decode(data[:len(data)-3])
	if err != nil {
		t.Fatal(err)
	}
	if got := info.String(0); got != "abc" {
		t.Errorf("wrong family name %q", got)
	}
	_, err = info.Bytes(1)
	if !errors.Is(err, fonterror.ErrTruncatedTable) {
		t.Errorf("expected truncated string, got %v", err)
	}
	if info.FontName() != "" {
		t.Error("truncated font name should give the empty string")
	}

	_, err = Decode(data[:10])
	if !errors.Is(err, fonterror.ErrTruncatedTable) {
		t.Errorf("truncated record: got %v", err)
	}
}
