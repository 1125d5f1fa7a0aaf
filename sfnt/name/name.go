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

// Package name reads and writes "name" tables.
// These tables contain localized strings associated with a font.
//
// The records of the table are decoded eagerly, the strings are only
// extracted from the storage area when they are requested.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/name
package name

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"seehuhn.de/go/ttfc/fonterror"
	"seehuhn.de/go/ttfc/sfnt/parser"
)

// ID is the name ID of a name record.
type ID uint16

// Selected name IDs.
// https://docs.microsoft.com/en-us/typography/opentype/spec/name#name-ids
const (
	Copyright      ID = 0
	Family         ID = 1
	Subfamily      ID = 2
	UniqueID       ID = 3
	FullName       ID = 4
	Version        ID = 5
	PostScriptName ID = 6
	Trademark      ID = 7
)

func (id ID) String() string {
	switch id {
	case Copyright:
		return "Copyright"
	case Family:
		return "Family"
	case Subfamily:
		return "Subfamily"
	case UniqueID:
		return "UniqueID"
	case FullName:
		return "FullName"
	case Version:
		return "Version"
	case PostScriptName:
		return "PostScriptName"
	case Trademark:
		return "Trademark"
	default:
		return fmt.Sprintf("ID(%d)", uint16(id))
	}
}

// Record is a single entry of the "name" table.
type Record struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     ID
	Length     uint16
	Offset     uint16 // from the start of the storage area
}

// Info contains the information from a "name" table.
type Info struct {
	Format  uint16
	Records []Record

	storage []byte
}

// Decode extracts information from the "name" table.
func Decode(data []byte) (*Info, error) {
	p := parser.New("name", data)
	buf, err := p.ReadBytes(6)
	if err != nil {
		return nil, err
	}
	format := uint16(buf[0])<<8 | uint16(buf[1])
	count := int(buf[2])<<8 | int(buf[3])
	storageOffset := int(buf[4])<<8 | int(buf[5])
	if format > 1 {
		return nil, &fonterror.NotSupportedError{
			SubSystem: "sfnt/name",
			Feature:   fmt.Sprintf("table format %d", format),
		}
	}

	info := &Info{
		Format:  format,
		Records: make([]Record, count),
	}
	for i := range info.Records {
		buf, err := p.ReadBytes(12)
		if err != nil {
			return nil, err
		}
		info.Records[i] = Record{
			PlatformID: uint16(buf[0])<<8 | uint16(buf[1]),
			EncodingID: uint16(buf[2])<<8 | uint16(buf[3]),
			LanguageID: uint16(buf[4])<<8 | uint16(buf[5]),
			NameID:     ID(buf[6])<<8 | ID(buf[7]),
			Length:     uint16(buf[8])<<8 | uint16(buf[9]),
			Offset:     uint16(buf[10])<<8 | uint16(buf[11]),
		}
	}

	if format == 1 {
		// Language tag records are not used, but they precede the
		// storage area.
		numLang, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		if _, err := p.ReadBytes(4 * int(numLang)); err != nil {
			return nil, err
		}
	}

	if storageOffset < p.Pos() || storageOffset > len(data) {
		return nil, fonterror.Malformed("sfnt/name",
			"invalid storage offset %d", storageOffset)
	}
	info.storage = data[storageOffset:]

	return info, nil
}

// Bytes returns the raw bytes of the string for record i.
func (info *Info) Bytes(i int) ([]byte, error) {
	if i < 0 || i >= len(info.Records) {
		return nil, fmt.Errorf("sfnt/name: record %d out of range", i)
	}
	return info.bytes(info.Records[i])
}

func (info *Info) bytes(rec Record) ([]byte, error) {
	start := int(rec.Offset)
	end := start + int(rec.Length)
	if end > len(info.storage) {
		return nil, fonterror.Truncated("sfnt/name", start, int(rec.Length),
			max(len(info.storage)-start, 0))
	}
	return info.storage[start:end:end], nil
}

// String returns the text of record i.  Strings for platform/encoding
// combinations which cannot be decoded are returned as the empty string.
// The empty string is also returned if i is out of range or if the
// string extends beyond the end of the table.
func (info *Info) String(i int) string {
	data, err := info.Bytes(i)
	if err != nil {
		return ""
	}
	dec := decoder(info.Records[i].PlatformID, info.Records[i].EncodingID)
	if dec == nil {
		return ""
	}
	res, err := dec.Bytes(data)
	if err != nil {
		return ""
	}
	return string(res)
}

// Find returns the index of the first record with the given platform ID,
// encoding ID, language ID and name ID.  If there is no such record, -1 is
// returned.
func (info *Info) Find(platformID, encodingID, languageID uint16, nameID ID) int {
	for i, rec := range info.Records {
		if rec.PlatformID == platformID && rec.EncodingID == encodingID &&
			rec.LanguageID == languageID && rec.NameID == nameID {
			return i
		}
	}
	return -1
}

// FontName returns the Macintosh Roman, English PostScript name of the
// font.  If the font has no such record, the empty string is returned.
func (info *Info) FontName() string {
	if info == nil {
		return ""
	}
	return info.String(info.Find(1, 0, 0, PostScriptName))
}

func decoder(platformID, encodingID uint16) *encoding.Decoder {
	switch {
	case platformID == 0, // Unicode
		platformID == 3 && (encodingID == 0 || encodingID == 1 || encodingID == 10):
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	case platformID == 1 && encodingID == 0: // Macintosh, Roman
		return charmap.Macintosh.NewDecoder()
	}
	// TODO(voss): implement some more encodings
	// https://unicode.org/Public/MAPPINGS/VENDORS/APPLE/ReadMe.txt
	return nil
}
