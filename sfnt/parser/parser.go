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

// Package parser implements bounds-checked reading of big-endian binary
// data from sfnt tables.
package parser

import (
	"time"

	"seehuhn.de/go/ttfc/fonterror"
)

// Parser allows to read data from an sfnt table.
// All reads are checked against the end of the underlying data; a read
// which would go beyond the end returns an error of kind
// [fonterror.ErrTruncatedTable] and leaves the position unchanged.
type Parser struct {
	tableName string
	data      []byte
	pos       int
}

// New allocates a new Parser which reads from data.
// The table name is used in error messages.
func New(tableName string, data []byte) *Parser {
	return &Parser{
		tableName: tableName,
		data:      data,
	}
}

// Size returns the total length of the underlying data.
func (p *Parser) Size() int {
	return len(p.data)
}

// Pos returns the current reading position.
func (p *Parser) Pos() int {
	return p.pos
}

// Remaining returns the number of bytes between the current position and
// the end of the data.
func (p *Parser) Remaining() int {
	return len(p.data) - p.pos
}

// SeekPos changes the reading position.
func (p *Parser) SeekPos(pos int) error {
	if pos < 0 || pos > len(p.data) {
		return p.truncated(pos, 0)
	}
	p.pos = pos
	return nil
}

// Discard skips the next n bytes of input.
func (p *Parser) Discard(n int) error {
	if n < 0 {
		panic("negative discard")
	}
	if n > p.Remaining() {
		return p.truncated(p.pos, n)
	}
	p.pos += n
	return nil
}

// ReadBytes reads n bytes, starting at the current position.  The returned
// slice points into the underlying data and must not be modified by the
// caller.
func (p *Parser) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > p.Remaining() {
		return nil, p.truncated(p.pos, n)
	}
	res := p.data[p.pos : p.pos+n : p.pos+n]
	p.pos += n
	return res, nil
}

// ReadUint8 reads a single uint8 value from the current position.
func (p *Parser) ReadUint8() (uint8, error) {
	buf, err := p.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint16 reads a single uint16 value from the current position.
func (p *Parser) ReadUint16() (uint16, error) {
	buf, err := p.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

// ReadInt16 reads a single int16 value from the current position.
func (p *Parser) ReadInt16() (int16, error) {
	val, err := p.ReadUint16()
	return int16(val), err
}

// ReadUint32 reads a single uint32 value from the current position.
func (p *Parser) ReadUint32() (uint32, error) {
	buf, err := p.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3]), nil
}

// ReadInt32 reads a single int32 value from the current position.
func (p *Parser) ReadInt32() (int32, error) {
	val, err := p.ReadUint32()
	return int32(val), err
}

// ReadFixed reads a 16.16 fixed point number.
func (p *Parser) ReadFixed() (Fixed, error) {
	val, err := p.ReadUint32()
	return Fixed(val), err
}

// ReadF2Dot14 reads a 2.14 fixed point number.
func (p *Parser) ReadF2Dot14() (F2Dot14, error) {
	val, err := p.ReadUint16()
	return F2Dot14(val), err
}

// ReadLongDateTime reads a 64 bit time stamp, counting seconds since
// the start of 1904.
func (p *Parser) ReadLongDateTime() (time.Time, error) {
	buf, err := p.ReadBytes(8)
	if err != nil {
		return time.Time{}, err
	}
	var t int64
	for _, b := range buf {
		t = t<<8 | int64(b)
	}
	return DecodeTime(t), nil
}

// ReadTag reads a four-byte table or script tag.
func (p *Parser) ReadTag() (string, error) {
	buf, err := p.ReadBytes(4)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadPascalString reads a string which is preceded by a one-byte length.
func (p *Parser) ReadPascalString() ([]byte, error) {
	n, err := p.ReadUint8()
	if err != nil {
		return nil, err
	}
	buf, err := p.ReadBytes(int(n))
	if err != nil {
		p.pos--
		return nil, err
	}
	return buf, nil
}

// ReadUint16Slice reads n consecutive uint16 values.
func (p *Parser) ReadUint16Slice(n int) ([]uint16, error) {
	buf, err := p.ReadBytes(2 * n)
	if err != nil {
		return nil, err
	}
	res := make([]uint16, n)
	for i := range res {
		res[i] = uint16(buf[2*i])<<8 | uint16(buf[2*i+1])
	}
	return res, nil
}

func (p *Parser) truncated(offset, need int) error {
	have := len(p.data) - offset
	if have < 0 {
		have = 0
	}
	return fonterror.Truncated("sfnt/"+p.tableName, offset, need, have)
}
