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

// Package table reads and writes the table directory of sfnt font files
// and TrueType collections.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/otff#organization-of-an-opentype-font
package table

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"seehuhn.de/go/ttfc/fonterror"
)

// These are the scaler types found at the start of an sfnt file.
const (
	ScalerTypeTrueType = 0x00010000
	ScalerTypeCFF      = 0x4F54544F // "OTTO"
	ScalerTypeApple    = 0x74727565 // "true"
	ScalerTypeType1    = 0x74797031 // "typ1"
)

// Header is the table directory of an sfnt font.
type Header struct {
	ScalerType uint32
	Toc        map[string]Record
}

// Record describes the location of a single table.
// Offsets are relative to the start of the file, also for fonts
// inside a collection.
type Record struct {
	Checksum uint32
	Offset   uint32
	Length   uint32
}

// maxTables is the limit on the number of tables in a font.
// The largest value observed in practice is below 30.
const maxTables = 280

// ReadHeader reads the table directory which starts at the given offset.
// For single fonts the offset is 0, for fonts in a collection the offset
// is taken from the collection header.
func ReadHeader(r io.ReaderAt, offset int64) (*Header, error) {
	var buf [16]byte
	err := readFull(r, buf[:12], offset)
	if err != nil {
		return nil, err
	}
	scalerType := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	numTables := int(buf[4])<<8 | int(buf[5])
	// searchRange, entrySelector and rangeShift are not used

	switch scalerType {
	case ScalerTypeTrueType, ScalerTypeApple:
		// pass
	case ScalerTypeCFF:
		return nil, &fonterror.NotSupportedError{
			SubSystem: "sfnt/header",
			Feature:   "CFF-based OpenType",
		}
	case ScalerTypeType1:
		return nil, &fonterror.NotSupportedError{
			SubSystem: "sfnt/header",
			Feature:   "sfnt-wrapped Type 1",
		}
	default:
		return nil, &fonterror.InvalidFontError{
			SubSystem: "sfnt/header",
			Kind:      fonterror.ErrUnrecognizedFormat,
			Reason:    fmt.Sprintf("unknown scaler type 0x%08x", scalerType),
		}
	}
	if numTables > maxTables {
		return nil, fonterror.Malformed("sfnt/header",
			"too many tables (%d)", numTables)
	}

	h := &Header{
		ScalerType: scalerType,
		Toc:        make(map[string]Record, numTables),
	}
	type alloc struct {
		Start uint64
		End   uint64
	}
	var coverage []alloc
	for i := range numTables {
		err := readFull(r, buf[:], offset+int64(12+i*16))
		if err != nil {
			return nil, err
		}
		name := string(buf[:4])
		rec := Record{
			Checksum: uint32(buf[4])<<24 | uint32(buf[5])<<16 | uint32(buf[6])<<8 | uint32(buf[7]),
			Offset:   uint32(buf[8])<<24 | uint32(buf[9])<<16 | uint32(buf[10])<<8 | uint32(buf[11]),
			Length:   uint32(buf[12])<<24 | uint32(buf[13])<<16 | uint32(buf[14])<<8 | uint32(buf[15]),
		}
		if _, dup := h.Toc[name]; dup {
			return nil, fonterror.Malformed("sfnt/header",
				"duplicate table %q", name)
		}
		h.Toc[name] = rec
		if rec.Length > 0 {
			coverage = append(coverage, alloc{
				Start: uint64(rec.Offset),
				End:   uint64(rec.Offset) + uint64(rec.Length),
			})
		}
	}
	if len(h.Toc) == 0 {
		return nil, fonterror.Malformed("sfnt/header", "no tables found")
	}
	if len(coverage) == 0 {
		return h, nil
	}

	// perform some sanity checks
	sort.Slice(coverage, func(i, j int) bool {
		if coverage[i].Start != coverage[j].Start {
			return coverage[i].Start < coverage[j].Start
		}
		return coverage[i].End < coverage[j].End
	})
	if coverage[0].Start < 12 {
		return nil, fonterror.Malformed("sfnt/header",
			"invalid table offset %d", coverage[0].Start)
	}
	for i := 1; i < len(coverage); i++ {
		if coverage[i-1].End > coverage[i].Start && coverage[i-1] != coverage[i] {
			return nil, fonterror.Malformed("sfnt/header",
				"overlapping tables at offset %d", coverage[i].Start)
		}
	}
	last := coverage[len(coverage)-1].End
	_, err = r.ReadAt(buf[:1], int64(last)-1)
	if err == io.EOF {
		return nil, fonterror.Malformed("sfnt/header",
			"table extends beyond EOF (offset %d)", last)
	} else if err != nil {
		return nil, err
	}

	return h, nil
}

// Has returns true if all of the given tables are present.
func (h *Header) Has(names ...string) bool {
	for _, name := range names {
		if _, ok := h.Toc[name]; !ok {
			return false
		}
	}
	return true
}

// Find returns the directory record for the given table.
// If the table is not present, an error of type *ErrNoTable is returned.
func (h *Header) Find(tableName string) (Record, error) {
	rec, ok := h.Toc[tableName]
	if !ok {
		return rec, &ErrNoTable{Name: tableName}
	}
	return rec, nil
}

// ReadTableBytes returns the bytes of the given table.  The returned slice
// points into data, which must be the complete font file.
func (h *Header) ReadTableBytes(data []byte, tableName string) ([]byte, error) {
	rec, err := h.Find(tableName)
	if err != nil {
		return nil, err
	}
	end := uint64(rec.Offset) + uint64(rec.Length)
	if end > uint64(len(data)) {
		return nil, fonterror.Malformed("sfnt/header",
			"table %q extends beyond EOF", tableName)
	}
	return data[rec.Offset:end:end], nil
}

// ErrNoTable indicates that a required table is missing from a font.
type ErrNoTable struct {
	Name string
}

func (err *ErrNoTable) Error() string {
	return fmt.Sprintf("sfnt: missing %q table", err.Name)
}

// IsMissing returns true, if err indicates a missing sfnt table.
func IsMissing(err error) bool {
	var e *ErrNoTable
	return errors.As(err, &e)
}

func readFull(r io.ReaderAt, buf []byte, offset int64) error {
	n, err := r.ReadAt(buf, offset)
	if n == len(buf) {
		return nil
	}
	if err == io.EOF || err == nil {
		return fonterror.Malformed("sfnt/header",
			"directory extends beyond EOF (offset %d)", offset+int64(n))
	}
	return err
}
