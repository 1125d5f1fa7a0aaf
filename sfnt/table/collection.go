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

package table

import (
	"fmt"
	"io"

	"seehuhn.de/go/ttfc/fonterror"
)

// CollectionTag is the signature of a TrueType collection file.
const CollectionTag = 0x74746366 // "ttcf"

// maxCollectionFonts is the limit on the number of fonts in a collection.
const maxCollectionFonts = 1 << 14

// CollectionHeader is the header of a TrueType collection.
type CollectionHeader struct {
	MajorVersion uint16
	MinorVersion uint16

	// Offsets contains the offsets of the table directories of the
	// fonts in the collection, from the start of the file.
	Offsets []uint32
}

// ReadCollectionHeader reads the header of a TrueType collection.
func ReadCollectionHeader(r io.ReaderAt) (*CollectionHeader, error) {
	var buf [12]byte
	err := readFull(r, buf[:], 0)
	if err != nil {
		return nil, err
	}
	tag := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	if tag != CollectionTag {
		return nil, &fonterror.InvalidFontError{
			SubSystem: "sfnt/ttc",
			Kind:      fonterror.ErrUnrecognizedFormat,
			Reason:    fmt.Sprintf("invalid collection tag 0x%08x", tag),
		}
	}
	h := &CollectionHeader{
		MajorVersion: uint16(buf[4])<<8 | uint16(buf[5]),
		MinorVersion: uint16(buf[6])<<8 | uint16(buf[7]),
	}
	if h.MajorVersion != 1 && h.MajorVersion != 2 {
		return nil, &fonterror.NotSupportedError{
			SubSystem: "sfnt/ttc",
			Feature:   fmt.Sprintf("collection version %d.%d", h.MajorVersion, h.MinorVersion),
		}
	}
	numFonts := int(uint32(buf[8])<<24 | uint32(buf[9])<<16 | uint32(buf[10])<<8 | uint32(buf[11]))
	if numFonts == 0 || numFonts > maxCollectionFonts {
		return nil, fonterror.Malformed("sfnt/ttc", "invalid number of fonts (%d)", numFonts)
	}

	offsetData := make([]byte, 4*numFonts)
	err = readFull(r, offsetData, 12)
	if err != nil {
		return nil, err
	}
	h.Offsets = make([]uint32, numFonts)
	for i := range h.Offsets {
		b := offsetData[4*i : 4*i+4]
		h.Offsets[i] = uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	}
	// Version 2 adds the location of a DSIG table, which is ignored here.

	return h, nil
}
