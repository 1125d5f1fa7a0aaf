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

// Package post reads and writes the "post" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/post
package post

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/ttfc/fonterror"
	"seehuhn.de/go/ttfc/sfnt/parser"
)

// These are the supported table versions.
const (
	Version1  = 0x00010000 // standard Macintosh glyph names
	Version2  = 0x00020000 // explicit glyph names
	Version25 = 0x00025000 // deprecated, no names are extracted
	Version3  = 0x00030000 // no glyph names
	Version4  = 0x00040000 // Apple composite fonts, no names are extracted
)

// Info contains information from the "post" table.
type Info struct {
	Version            uint32
	ItalicAngle        float64     // Italic angle in degrees
	UnderlinePosition  funit.Int16 // Underline position (negative)
	UnderlineThickness funit.Int16 // Underline thickness
	IsFixedPitch       bool

	// Names contains the glyph names, indexed by glyph ID.
	// This is nil for table versions which carry no glyph names.
	Names []string
}

const headerLength = 32

// Decode decodes the "post" table.
// The argument numGlyphs is the number of glyphs given in the "maxp" table.
// The slice in the .Names field in the returned structure, if non-nil,
// may point to shared internal storage and must not be modified.
func Decode(data []byte, numGlyphs int) (*Info, error) {
	if len(data) < headerLength {
		return nil, fonterror.Truncated("sfnt/post", 0, headerLength, len(data))
	}
	post := &postEnc{}
	_ = binary.Read(bytes.NewReader(data), binary.BigEndian, post)

	info := &Info{
		Version:            post.Version,
		ItalicAngle:        float64(post.ItalicAngle) / 65536,
		UnderlinePosition:  funit.Int16(post.UnderlinePosition),
		UnderlineThickness: funit.Int16(post.UnderlineThickness),
		IsFixedPitch:       post.IsFixedPitch != 0,
	}

	switch post.Version {
	case Version1:
		info.Names = macRoman

	case Version2:
		names, err := decodeNames(data[headerLength:], numGlyphs)
		if err != nil {
			return nil, err
		}
		info.Names = names

	case Version25, Version3, Version4:
		// pass

	default:
		return nil, &fonterror.NotSupportedError{
			SubSystem: "sfnt/post",
			Feature:   fmt.Sprintf("table version %08x", post.Version),
		}
	}

	return info, nil
}

func decodeNames(data []byte, numGlyphs int) ([]string, error) {
	p := parser.New("post", data)
	n, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	if int(n) != numGlyphs {
		return nil, fonterror.CountMismatch("sfnt/post", int(n), numGlyphs)
	}
	indices, err := p.ReadUint16Slice(int(n))
	if err != nil {
		return nil, err
	}

	nMac := len(macRoman)
	var custom []string
	names := make([]string, n)
	for i, idx := range indices {
		if int(idx) < nMac {
			names[i] = macRoman[idx]
			continue
		}
		k := int(idx) - nMac
		for len(custom) <= k {
			buf, err := p.ReadPascalString()
			if err != nil {
				return nil, err
			}
			custom = append(custom, string(buf))
		}
		names[i] = custom[k]
	}
	return names, nil
}

// GlyphName returns the name of the given glyph.
// If the table has no glyph names, or if gid is out of range, the empty
// string is returned.
func (info *Info) GlyphName(gid int) string {
	if info == nil || gid < 0 || gid >= len(info.Names) {
		return ""
	}
	return info.Names[gid]
}

// Encode encodes the "post" table.
//
// If info.Version is Version1 or Version3, a table of this version is
// written and info.Names is ignored.  Otherwise the version is chosen based
// on the glyph names: version 3.0 if there are no names, 1.0 if the names
// are the standard Macintosh names and 2.0 otherwise.
func (info *Info) Encode() []byte {
	version := info.Version
	switch {
	case version == Version1 || version == Version3:
		// use the requested version
	case info.Names == nil:
		version = Version3
	case isMacRoman(info.Names):
		version = Version1
	default:
		version = Version2
	}

	header := &postEnc{
		Version:            version,
		ItalicAngle:        int32(math.Round(info.ItalicAngle * 65536)),
		UnderlinePosition:  int16(info.UnderlinePosition),
		UnderlineThickness: int16(info.UnderlineThickness),
	}
	if info.IsFixedPitch {
		header.IsFixedPitch = 1
	}
	buf := new(bytes.Buffer)
	_ = binary.Write(buf, binary.BigEndian, header)

	if version == Version2 {
		numGlyphs := len(info.Names)
		buf.Write([]byte{byte(numGlyphs >> 8), byte(numGlyphs)})

		mac := make(map[string]int, len(macRoman))
		for i, name := range macRoman {
			mac[name] = i
		}
		custom := make(map[string]int)
		var stringData []byte

		for _, name := range info.Names {
			idx, ok := mac[name]
			if !ok {
				idx, ok = custom[name]
			}
			if !ok {
				idx = len(macRoman) + len(custom)
				custom[name] = idx
				stringData = append(stringData, byte(len(name)))
				stringData = append(stringData, name...)
			}
			buf.Write([]byte{byte(idx >> 8), byte(idx)})
		}
		buf.Write(stringData)
	}

	return buf.Bytes()
}

type postEnc struct {
	Version            uint32
	ItalicAngle        int32
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       uint32
	MinMemType42       uint32
	MaxMemType42       uint32
	MinMemType1        uint32
	MaxMemType1        uint32
}
