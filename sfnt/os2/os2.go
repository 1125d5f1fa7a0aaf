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

// Package os2 reads and writes the "OS/2" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/os2
package os2

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/ttfc/fonterror"
	"seehuhn.de/go/ttfc/sfnt/parser"
)

// Info contains information from the "OS/2" table.
type Info struct {
	Version uint16

	WeightClass uint16
	WidthClass  uint16

	IsBold    bool
	IsItalic  bool
	IsRegular bool
	IsOblique bool

	AvgGlyphWidth int16 // arithmetic average of the width of all non-zero width glyphs

	SubscriptXSize     int16
	SubscriptYSize     int16
	SubscriptXOffset   int16
	SubscriptYOffset   int16
	SuperscriptXSize   int16
	SuperscriptYSize   int16
	SuperscriptXOffset int16
	SuperscriptYOffset int16
	StrikeoutSize      int16
	StrikeoutPosition  int16

	FamilyClass  int16    // https://docs.microsoft.com/en-us/typography/opentype/spec/ibmfc
	Panose       [10]byte // https://monotype.github.io/panose/
	UnicodeRange [4]uint32
	Vendor       string // https://docs.microsoft.com/en-us/typography/opentype/spec/os2#achvendid

	FirstCharIndex uint16
	LastCharIndex  uint16

	// The following fields are missing in some old Apple fonts.
	HasTypoMetrics bool
	TypoAscender   funit.Int16
	TypoDescender  funit.Int16 // negative
	TypoLineGap    funit.Int16
	WinAscent      uint16
	WinDescent     uint16 // positive

	CodePageRange [2]uint32 // version >= 1

	XHeight     funit.Int16 // version >= 2
	CapHeight   funit.Int16 // version >= 2
	DefaultChar uint16      // version >= 2
	BreakChar   uint16      // version >= 2
	MaxContext  uint16      // version >= 2

	// Optical point size range in TWIPs, only for version >= 5.
	LowerOpticalPointSize uint16
	UpperOpticalPointSize uint16

	PermUse          Permissions
	PermNoSubsetting bool // the font may not be subsetted prior to embedding
	PermOnlyBitmap   bool // only bitmaps contained in the font may be embedded
}

// Permissions describes rights to embed and use a font.
type Permissions int

func (perm Permissions) String() string {
	switch perm {
	case PermInstall:
		return "can install"
	case PermEdit:
		return "can edit"
	case PermView:
		return "can view"
	case PermRestricted:
		return "restricted"
	default:
		return fmt.Sprintf("Permissions(%d)", perm)
	}
}

// The possible permission values.
const (
	PermInstall    Permissions = iota // bits 0-3 unset
	PermEdit                          // bit 3
	PermView                          // bit 2
	PermRestricted                    // bit 1
)

const v0Length = 68

// Decode decodes the "OS/2" table.
func Decode(data []byte) (*Info, error) {
	if len(data) < v0Length {
		return nil, fonterror.Truncated("sfnt/OS/2", 0, v0Length, len(data))
	}
	v0 := &v0Data{}
	_ = binary.Read(bytes.NewReader(data), binary.BigEndian, v0)
	if v0.Version > 5 {
		return nil, &fonterror.NotSupportedError{
			SubSystem: "sfnt/OS/2",
			Feature:   fmt.Sprintf("table version %d", v0.Version),
		}
	}

	var permUse Permissions
	permBits := v0.Type
	if v0.Version == 0 {
		permBits &= 0xF
	}
	if permBits&8 != 0 {
		permUse = PermEdit
	} else if permBits&4 != 0 {
		permUse = PermView
	} else if permBits&2 != 0 {
		permUse = PermRestricted
	} else {
		permUse = PermInstall
	}

	sel := v0.Selection
	if v0.Version <= 3 {
		// Applications should ignore bits 7 to 15 in a font that has a
		// version 0 to version 3 OS/2 table.
		sel &= 0x007F
	}

	info := &Info{
		Version:     v0.Version,
		WeightClass: v0.WeightClass,
		WidthClass:  v0.WidthClass,

		IsBold:    sel&0x0060 == 0x0020,
		IsItalic:  sel&0x0041 == 0x0001,
		IsRegular: sel&0x0040 != 0,
		IsOblique: sel&0x0200 != 0,

		AvgGlyphWidth: v0.AvgCharWidth,

		SubscriptXSize:     v0.SubscriptXSize,
		SubscriptYSize:     v0.SubscriptYSize,
		SubscriptXOffset:   v0.SubscriptXOffset,
		SubscriptYOffset:   v0.SubscriptYOffset,
		SuperscriptXSize:   v0.SuperscriptXSize,
		SuperscriptYSize:   v0.SuperscriptYSize,
		SuperscriptXOffset: v0.SuperscriptXOffset,
		SuperscriptYOffset: v0.SuperscriptYOffset,
		StrikeoutSize:      v0.StrikeoutSize,
		StrikeoutPosition:  v0.StrikeoutPosition,

		FamilyClass:  v0.FamilyClass,
		Panose:       v0.Panose,
		UnicodeRange: v0.UnicodeRange,
		Vendor:       string(v0.VendID[:]),

		FirstCharIndex: v0.FirstCharIndex,
		LastCharIndex:  v0.LastCharIndex,

		PermUse:          permUse,
		PermNoSubsetting: permBits&0x0100 != 0,
		PermOnlyBitmap:   permBits&0x0200 != 0,
	}

	p := parser.New("OS/2", data)
	_ = p.SeekPos(v0Length)
	if p.Remaining() == 0 && v0.Version == 0 {
		return info, nil
	}

	buf, err := p.ReadBytes(10)
	if err != nil {
		return nil, err
	}
	info.HasTypoMetrics = true
	info.TypoAscender = funit.Int16(int16(binary.BigEndian.Uint16(buf[0:])))
	info.TypoDescender = funit.Int16(int16(binary.BigEndian.Uint16(buf[2:])))
	info.TypoLineGap = funit.Int16(int16(binary.BigEndian.Uint16(buf[4:])))
	info.WinAscent = binary.BigEndian.Uint16(buf[6:])
	info.WinDescent = binary.BigEndian.Uint16(buf[8:])
	if v0.Version < 1 {
		return info, nil
	}

	for i := range info.CodePageRange {
		info.CodePageRange[i], err = p.ReadUint32()
		if err != nil {
			return nil, err
		}
	}
	if v0.Version < 2 {
		return info, nil
	}

	buf, err = p.ReadBytes(10)
	if err != nil {
		return nil, err
	}
	info.XHeight = funit.Int16(int16(binary.BigEndian.Uint16(buf[0:])))
	info.CapHeight = funit.Int16(int16(binary.BigEndian.Uint16(buf[2:])))
	info.DefaultChar = binary.BigEndian.Uint16(buf[4:])
	info.BreakChar = binary.BigEndian.Uint16(buf[6:])
	info.MaxContext = binary.BigEndian.Uint16(buf[8:])
	if v0.Version < 5 {
		return info, nil
	}

	info.LowerOpticalPointSize, err = p.ReadUint16()
	if err != nil {
		return nil, err
	}
	info.UpperOpticalPointSize, err = p.ReadUint16()
	if err != nil {
		return nil, err
	}

	return info, nil
}

// Encode converts the info to an "OS/2" table, using the table version
// given in info.Version.
func (info *Info) Encode() []byte {
	var permBits uint16
	switch info.PermUse {
	case PermRestricted:
		permBits |= 2
	case PermView:
		permBits |= 4
	case PermEdit:
		permBits |= 8
	}
	if info.PermNoSubsetting {
		permBits |= 0x0100
	}
	if info.PermOnlyBitmap {
		permBits |= 0x0200
	}

	var sel uint16
	if info.IsRegular {
		sel |= 0x0040
	} else {
		if info.IsItalic {
			sel |= 0x0001
		}
		if info.IsBold {
			sel |= 0x0020
		}
	}
	if info.IsOblique {
		sel |= 0x0200
	}

	vendor := [4]byte{' ', ' ', ' ', ' '}
	copy(vendor[:], info.Vendor)

	buf := &bytes.Buffer{}
	v0 := &v0Data{
		Version:            info.Version,
		AvgCharWidth:       info.AvgGlyphWidth,
		WeightClass:        info.WeightClass,
		WidthClass:         info.WidthClass,
		Type:               permBits,
		SubscriptXSize:     info.SubscriptXSize,
		SubscriptYSize:     info.SubscriptYSize,
		SubscriptXOffset:   info.SubscriptXOffset,
		SubscriptYOffset:   info.SubscriptYOffset,
		SuperscriptXSize:   info.SuperscriptXSize,
		SuperscriptYSize:   info.SuperscriptYSize,
		SuperscriptXOffset: info.SuperscriptXOffset,
		SuperscriptYOffset: info.SuperscriptYOffset,
		StrikeoutSize:      info.StrikeoutSize,
		StrikeoutPosition:  info.StrikeoutPosition,
		FamilyClass:        info.FamilyClass,
		Panose:             info.Panose,
		UnicodeRange:       info.UnicodeRange,
		VendID:             vendor,
		Selection:          sel,
		FirstCharIndex:     info.FirstCharIndex,
		LastCharIndex:      info.LastCharIndex,
	}
	_ = binary.Write(buf, binary.BigEndian, v0)
	if info.Version == 0 && !info.HasTypoMetrics {
		return buf.Bytes()
	}

	_ = binary.Write(buf, binary.BigEndian, []uint16{
		uint16(info.TypoAscender),
		uint16(info.TypoDescender),
		uint16(info.TypoLineGap),
		info.WinAscent,
		info.WinDescent,
	})
	if info.Version < 1 {
		return buf.Bytes()
	}
	_ = binary.Write(buf, binary.BigEndian, info.CodePageRange)
	if info.Version < 2 {
		return buf.Bytes()
	}
	_ = binary.Write(buf, binary.BigEndian, []uint16{
		uint16(info.XHeight),
		uint16(info.CapHeight),
		info.DefaultChar,
		info.BreakChar,
		info.MaxContext,
	})
	if info.Version < 5 {
		return buf.Bytes()
	}
	_ = binary.Write(buf, binary.BigEndian, []uint16{
		info.LowerOpticalPointSize,
		info.UpperOpticalPointSize,
	})
	return buf.Bytes()
}

type v0Data struct {
	Version            uint16
	AvgCharWidth       int16
	WeightClass        uint16
	WidthClass         uint16
	Type               uint16
	SubscriptXSize     int16
	SubscriptYSize     int16
	SubscriptXOffset   int16
	SubscriptYOffset   int16
	SuperscriptXSize   int16
	SuperscriptYSize   int16
	SuperscriptXOffset int16
	SuperscriptYOffset int16
	StrikeoutSize      int16
	StrikeoutPosition  int16
	FamilyClass        int16
	Panose             [10]byte
	UnicodeRange       [4]uint32
	VendID             [4]byte
	Selection          uint16
	FirstCharIndex     uint16
	LastCharIndex      uint16
}
