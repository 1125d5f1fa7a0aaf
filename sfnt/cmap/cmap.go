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

// Package cmap reads and writes "cmap" tables.
//
// The directory of encoding records is decoded completely, but only
// subtables in format 0 are decoded.  Subtables in all other formats are
// represented by [Unsupported] values, which only record the format.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap
package cmap

import (
	"bytes"
	"fmt"
	"sort"

	"seehuhn.de/go/ttfc/fonterror"
	"seehuhn.de/go/ttfc/sfnt/parser"
)

// Encoding is an entry in the directory of a "cmap" table.
type Encoding struct {
	PlatformID uint16 // Platform ID.
	EncodingID uint16 // Platform-specific encoding ID.
	Offset     uint32 // Byte offset from beginning of table to the subtable.
	Subtable   Subtable
}

// Table contains all encoding records of a cmap table, in the order they
// appear in the table.
type Table []Encoding

// Subtable represents a cmap subtable.
type Subtable interface {
	// Format returns the subtable format number.
	Format() uint16

	// Lookup returns the glyph ID for the given character code.
	// If the code is not mapped, or if the subtable format is not
	// supported, ok is false.
	Lookup(code uint32) (gid int, ok bool)
}

// Unsupported represents a subtable in a format which is not decoded.
type Unsupported struct {
	FormatNumber uint16
}

// Format implements the [Subtable] interface.
func (u *Unsupported) Format() uint16 {
	return u.FormatNumber
}

// Lookup implements the [Subtable] interface.  No code is ever mapped.
func (u *Unsupported) Lookup(uint32) (int, bool) {
	return 0, false
}

// Decode decodes a "cmap" table.
func Decode(data []byte) (Table, error) {
	p := parser.New("cmap", data)
	version, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	if version != 0 {
		return nil, &fonterror.NotSupportedError{
			SubSystem: "sfnt/cmap",
			Feature:   fmt.Sprintf("table version %d", version),
		}
	}
	numTables, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	res := make(Table, numTables)
	for i := range res {
		buf, err := p.ReadBytes(8)
		if err != nil {
			return nil, err
		}
		res[i].PlatformID = uint16(buf[0])<<8 | uint16(buf[1])
		res[i].EncodingID = uint16(buf[2])<<8 | uint16(buf[3])
		res[i].Offset = uint32(buf[4])<<24 | uint32(buf[5])<<16 | uint32(buf[6])<<8 | uint32(buf[7])
	}

	for i := range res {
		sub, err := decodeSubtable(p, res[i].Offset)
		if err != nil {
			return nil, err
		}
		res[i].Subtable = sub
	}

	return res, nil
}

func decodeSubtable(p *parser.Parser, offset uint32) (Subtable, error) {
	if uint64(offset) > uint64(p.Size()) {
		return nil, fonterror.Malformed("sfnt/cmap",
			"subtable offset %d beyond end of table", offset)
	}
	err := p.SeekPos(int(offset))
	if err != nil {
		return nil, err
	}
	format, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	switch format {
	case 0:
		return decodeFormat0(p)
	default:
		return &Unsupported{FormatNumber: format}, nil
	}
}

// Get returns the first subtable for the given platform and encoding.
// If there is no such subtable, nil is returned.
func (t Table) Get(platformID, encodingID uint16) Subtable {
	for _, e := range t {
		if e.PlatformID == platformID && e.EncodingID == encodingID {
			return e.Subtable
		}
	}
	return nil
}

// Encode converts the cmap table into binary form.  Subtables are written
// in the order of platform and encoding ID; the offsets stored in t are
// ignored.  Unsupported subtables are written as a bare format number,
// followed by zero bytes.
func (t Table) Encode() []byte {
	type extended struct {
		Data []byte
		Offs uint32
		Encoding
	}
	ext := make([]extended, 0, len(t))
	for _, e := range t {
		ext = append(ext, extended{
			Data:     encodeSubtable(e.Subtable),
			Encoding: e,
		})
	}
	sort.SliceStable(ext, func(i, j int) bool {
		if ext[i].PlatformID != ext[j].PlatformID {
			return ext[i].PlatformID < ext[j].PlatformID
		}
		return ext[i].EncodingID < ext[j].EncodingID
	})

	numTables := len(ext)
	endOfHeader := uint32(4 + 8*numTables)

	pos := endOfHeader
offsLoop:
	for i, e := range ext {
		for j := 0; j < i; j++ {
			if bytes.Equal(e.Data, ext[j].Data) {
				ext[i].Offs = ext[j].Offs
				ext[i].Data = nil
				continue offsLoop
			}
		}
		ext[i].Offs = pos
		pos += uint32(len(e.Data))
	}

	res := make([]byte, endOfHeader, pos)
	res[2] = byte(numTables >> 8)
	res[3] = byte(numTables)
	for i, e := range ext {
		res[4+i*8] = byte(e.PlatformID >> 8)
		res[5+i*8] = byte(e.PlatformID)
		res[6+i*8] = byte(e.EncodingID >> 8)
		res[7+i*8] = byte(e.EncodingID)
		res[8+i*8] = byte(e.Offs >> 24)
		res[9+i*8] = byte(e.Offs >> 16)
		res[10+i*8] = byte(e.Offs >> 8)
		res[11+i*8] = byte(e.Offs)
	}
	for _, e := range ext {
		res = append(res, e.Data...)
	}

	return res
}

func encodeSubtable(sub Subtable) []byte {
	switch sub := sub.(type) {
	case *Format0:
		return sub.Encode()
	case nil:
		return nil
	default:
		f := sub.Format()
		return []byte{byte(f >> 8), byte(f), 0, 0, 0, 0, 0, 0, 0, 0}
	}
}
