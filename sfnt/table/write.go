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
	"bytes"
	"encoding/binary"
	"io"
	"math/bits"
	"sort"
)

// Write writes an sfnt file containing the given tables.
// Tables where the data is nil are not written, use a zero-length slice
// to write a table with no data.
// This changes the checksum in the "head" table in place.
func Write(w io.Writer, scalerType uint32, tables map[string][]byte) (int64, error) {
	tableNames := sortedTableNames(tables)
	numTables := len(tableNames)

	// temporarily clear the checksum in the "head" table
	if headData, ok := tables["head"]; ok && len(headData) >= 12 {
		clearChecksum(headData)
	}

	var totalSum uint32
	offset := uint32(12 + 16*numTables)
	records := make([]rawRecord, numTables)
	for i, name := range tableNames {
		body := tables[name]
		length := uint32(len(body))
		checksum := Checksum(body)

		records[i].Tag = tag{name[0], name[1], name[2], name[3]}
		records[i].CheckSum = checksum
		records[i].Offset = offset
		records[i].Length = length

		totalSum += checksum
		offset += 4 * ((length + 3) / 4)
	}
	headerBytes := encodeDirectory(scalerType, records)
	totalSum += Checksum(headerBytes)

	// set the final checksum in the "head" table
	if headData, ok := tables["head"]; ok && len(headData) >= 12 {
		patchChecksum(headData, totalSum)
	}

	var totalSize int64
	n, err := w.Write(headerBytes)
	totalSize += int64(n)
	if err != nil {
		return totalSize, err
	}
	for _, name := range tableNames {
		n, err := writePadded(w, tables[name])
		totalSize += n
		if err != nil {
			return totalSize, err
		}
	}
	return totalSize, nil
}

// WriteCollection writes a TrueType collection containing the given fonts.
// Tables with identical contents are stored only once and are shared
// between all fonts which use them.
// The checksum adjustment in the "head" tables is not updated.
func WriteCollection(w io.Writer, fonts []map[string][]byte) (int64, error) {
	numFonts := len(fonts)

	names := make([][]string, numFonts)
	pos := uint32(12 + 4*numFonts)
	dirOffsets := make([]uint32, numFonts)
	for i, tables := range fonts {
		names[i] = sortedTableNames(tables)
		dirOffsets[i] = pos
		pos += uint32(12 + 16*len(names[i]))
	}

	// assign file positions to the table bodies, merging duplicates
	var bodies [][]byte
	var bodyOffsets []uint32
	findBody := func(data []byte) uint32 {
		for j, b := range bodies {
			if bytes.Equal(b, data) {
				return bodyOffsets[j]
			}
		}
		bodies = append(bodies, data)
		bodyOffsets = append(bodyOffsets, pos)
		res := pos
		pos += 4 * ((uint32(len(data)) + 3) / 4)
		return res
	}

	dirs := make([][]byte, numFonts)
	for i, tables := range fonts {
		records := make([]rawRecord, len(names[i]))
		for k, name := range names[i] {
			body := tables[name]
			records[k] = rawRecord{
				Tag:      tag{name[0], name[1], name[2], name[3]},
				CheckSum: Checksum(body),
				Offset:   findBody(body),
				Length:   uint32(len(body)),
			}
		}
		dirs[i] = encodeDirectory(ScalerTypeTrueType, records)
	}

	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.BigEndian, uint32(CollectionTag))
	_ = binary.Write(buf, binary.BigEndian, uint32(0x00010000))
	_ = binary.Write(buf, binary.BigEndian, uint32(numFonts))
	_ = binary.Write(buf, binary.BigEndian, dirOffsets)
	for _, dir := range dirs {
		buf.Write(dir)
	}

	var totalSize int64
	n, err := w.Write(buf.Bytes())
	totalSize += int64(n)
	if err != nil {
		return totalSize, err
	}
	for _, body := range bodies {
		n, err := writePadded(w, body)
		totalSize += n
		if err != nil {
			return totalSize, err
		}
	}
	return totalSize, nil
}

func sortedTableNames(tables map[string][]byte) []string {
	tableNames := make([]string, 0, len(tables))
	for name, data := range tables {
		if data != nil && len(name) == 4 && isASCII(name) {
			tableNames = append(tableNames, name)
		}
	}

	// sort the table names in the recommended order
	sort.Slice(tableNames, func(i, j int) bool {
		iPrio := ttTableOrder[tableNames[i]]
		jPrio := ttTableOrder[tableNames[j]]
		if iPrio != jPrio {
			return iPrio > jPrio
		}
		return tableNames[i] < tableNames[j]
	})
	return tableNames
}

func encodeDirectory(scalerType uint32, records []rawRecord) []byte {
	numTables := len(records)
	entrySelector := max(bits.Len(uint(numTables))-1, 0)
	header := &offsets{
		ScalerType:    scalerType,
		NumTables:     uint16(numTables),
		SearchRange:   1 << (entrySelector + 4),
		EntrySelector: uint16(entrySelector),
		RangeShift:    uint16(16 * (numTables - 1<<entrySelector)),
	}

	sorted := make([]rawRecord, numTables)
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].Tag[:], sorted[j].Tag[:]) < 0
	})

	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.BigEndian, header)
	_ = binary.Write(buf, binary.BigEndian, sorted)
	return buf.Bytes()
}

func writePadded(w io.Writer, body []byte) (int64, error) {
	var pad [3]byte
	n, err := w.Write(body)
	total := int64(n)
	if err != nil {
		return total, err
	}
	if k := n % 4; k != 0 {
		l, err := w.Write(pad[:4-k])
		total += int64(l)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Checksum computes the checksum of an sfnt table.
func Checksum(data []byte) uint32 {
	var sum uint32
	for len(data) >= 4 {
		sum += binary.BigEndian.Uint32(data)
		data = data[4:]
	}
	if len(data) > 0 {
		var last [4]byte
		copy(last[:], data)
		sum += binary.BigEndian.Uint32(last[:])
	}
	return sum
}

// clearChecksum zeros the checksum field of the head table.
func clearChecksum(head []byte) {
	binary.BigEndian.PutUint32(head[8:12], 0)
}

// patchChecksum updates the checksum of the head table.
// The argument is the checksum of the entire font before patching.
func patchChecksum(head []byte, checksum uint32) {
	binary.BigEndian.PutUint32(head[8:12], 0xB1B0AFBA-checksum)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}

// The offsets sub-table forms the first part of Header.
type offsets struct {
	ScalerType    uint32
	NumTables     uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
}

type tag [4]byte

// A rawRecord is part of the file Header.  It contains data about a single
// sfnt table.
type rawRecord struct {
	Tag      tag
	CheckSum uint32
	Offset   uint32
	Length   uint32
}

// https://docs.microsoft.com/en-us/typography/opentype/spec/recom#optimized-table-ordering
var ttTableOrder = map[string]int{
	"head": 95,
	"hhea": 90,
	"maxp": 85,
	"OS/2": 80,
	"hmtx": 75,
	"cmap": 55,
	"loca": 35,
	"glyf": 30,
	"name": 20,
	"post": 15,
}
