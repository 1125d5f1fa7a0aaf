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

package sfnt

import (
	"bytes"
	"fmt"
	"os"

	"seehuhn.de/go/ttfc/fonterror"
	"seehuhn.de/go/ttfc/sfnt/cmap"
	"seehuhn.de/go/ttfc/sfnt/glyf"
	"seehuhn.de/go/ttfc/sfnt/head"
	"seehuhn.de/go/ttfc/sfnt/hmtx"
	"seehuhn.de/go/ttfc/sfnt/maxp"
	"seehuhn.de/go/ttfc/sfnt/name"
	"seehuhn.de/go/ttfc/sfnt/os2"
	"seehuhn.de/go/ttfc/sfnt/post"
	"seehuhn.de/go/ttfc/sfnt/table"
)

// Kind describes the type of a font file.
type Kind int

// These are the kinds of files recognized by [Detect].
const (
	KindUnknown Kind = iota
	KindFont
	KindCollection
)

func (k Kind) String() string {
	switch k {
	case KindFont:
		return "font"
	case KindCollection:
		return "collection"
	default:
		return "unknown"
	}
}

// Detect determines the kind of a font file from its signature.
//
// CFF-based OpenType fonts and sfnt-wrapped Type 1 fonts are reported
// using an error of kind [fonterror.ErrUnsupportedFlavor], all other
// unknown files using an error of kind [fonterror.ErrUnrecognizedFormat].
func Detect(data []byte) (Kind, error) {
	if len(data) < 4 {
		return KindUnknown, &fonterror.InvalidFontError{
			SubSystem: "sfnt",
			Kind:      fonterror.ErrUnrecognizedFormat,
			Reason:    "file too short",
		}
	}
	tag := uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
	switch tag {
	case table.ScalerTypeTrueType, table.ScalerTypeApple:
		return KindFont, nil
	case table.CollectionTag:
		return KindCollection, nil
	case table.ScalerTypeCFF:
		return KindUnknown, &fonterror.NotSupportedError{
			SubSystem: "sfnt",
			Feature:   "CFF-based OpenType",
		}
	case table.ScalerTypeType1:
		return KindUnknown, &fonterror.NotSupportedError{
			SubSystem: "sfnt",
			Feature:   "sfnt-wrapped Type 1",
		}
	default:
		return KindUnknown, &fonterror.InvalidFontError{
			SubSystem: "sfnt",
			Kind:      fonterror.ErrUnrecognizedFormat,
			Reason:    fmt.Sprintf("unknown signature %q", data[:4]),
		}
	}
}

// Open reads a font file.  The file can either contain a single font, in
// which case the result has length one, or a collection of fonts.
func Open(fname string, opt *Options) ([]*Font, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return ReadAll(data, opt)
}

// ReadAll reads all fonts from a font file or collection.
func ReadAll(data []byte, opt *Options) ([]*Font, error) {
	kind, err := Detect(data)
	if err != nil {
		return nil, err
	}
	if kind == KindCollection {
		c, err := ReadCollection(data, opt)
		if err != nil {
			return nil, err
		}
		return c.Fonts, nil
	}
	f, err := Read(data, opt)
	if err != nil {
		return nil, err
	}
	return []*Font{f}, nil
}

// Read decodes a single TrueType font.
// The font keeps references to data, which must not be modified afterwards.
func Read(data []byte, opt *Options) (*Font, error) {
	return readFont(data, 0, opt, nil)
}

func readFont(data []byte, offset int64, opt *Options, pool tablePool) (*Font, error) {
	if opt == nil {
		opt = defaultOptions
	}

	header, err := table.ReadHeader(bytes.NewReader(data), offset)
	if err != nil {
		return nil, err
	}
	r := &tableReader{
		data:   data,
		header: header,
		pool:   pool,
	}
	f := &Font{
		Header: header,
	}

	f.Head, err = decodeTable(r, "head", noArgs, head.Decode)
	if err != nil {
		return nil, err
	}
	f.Hhea, err = decodeTable(r, "hhea", noArgs, hmtx.DecodeHhea)
	if err != nil {
		return nil, err
	}
	f.Maxp, err = decodeTable(r, "maxp", noArgs, maxp.Decode)
	if err != nil {
		return nil, err
	}
	numGlyphs := f.Maxp.NumGlyphs

	f.Name, err = decodeTable(r, "name", noArgs, name.Decode)
	if err != nil && !table.IsMissing(err) && !fonterror.IsUnsupported(err) {
		return nil, err
	}
	f.OS2, err = decodeTable(r, "OS/2", noArgs, os2.Decode)
	if err != nil && !table.IsMissing(err) {
		return nil, err
	}
	f.Post, err = decodeTable(r, "post", args{numGlyphs},
		func(data []byte) (*post.Info, error) {
			return post.Decode(data, numGlyphs)
		})
	if err != nil && !table.IsMissing(err) && !fonterror.IsUnsupported(err) {
		return nil, err
	}
	f.CMap, err = decodeTable(r, "cmap", noArgs, cmap.Decode)
	if err != nil && !table.IsMissing(err) {
		return nil, err
	}
	numLong := f.Hhea.NumOfLongHorMetrics
	f.Hmtx, err = decodeTable(r, "hmtx", args{numLong, numGlyphs},
		func(data []byte) (*hmtx.Info, error) {
			return hmtx.Decode(data, numLong, numGlyphs)
		})
	if err != nil && !table.IsMissing(err) {
		return nil, err
	}

	glyfRec, err := header.Find("glyf")
	if err != nil {
		return nil, err
	}
	glyfLen := int(glyfRec.Length)
	locaFormat := f.Head.IndexToLocFormat
	f.Loca, err = decodeTable(r, "loca", args{int(locaFormat), numGlyphs, glyfLen},
		func(data []byte) ([]int, error) {
			return glyf.DecodeLoca(data, locaFormat, numGlyphs, glyfLen)
		})
	if err != nil {
		return nil, err
	}

	locaRec := header.Toc["loca"]
	f.Glyphs, err = decodeTable(r, "glyf",
		args{int(locaRec.Offset), int(locaRec.Length), int(locaFormat), numGlyphs},
		func(data []byte) (glyf.Glyphs, error) {
			return glyf.Decode(data, f.Loca)
		})
	if err != nil {
		return nil, err
	}

	f.maxDepth = opt.MaxComponentDepth
	if f.maxDepth <= 0 {
		f.maxDepth = max(f.Maxp.ComponentDepth(), glyf.DefaultMaxDepth)
	}

	return f, nil
}

// tablePool holds the decoded tables of a collection, so that tables which
// are shared between fonts are only decoded once.
type tablePool map[poolKey]any

type poolKey struct {
	tag    string
	offset uint32
	length uint32
	args   args
}

// args lists all values, other than the table data, which a table decoder
// depends on.
type args [4]int

var noArgs args

type tableReader struct {
	data   []byte
	header *table.Header
	pool   tablePool
}

func decodeTable[T any](r *tableReader, tag string, a args, decode func([]byte) (T, error)) (T, error) {
	var zero T

	rec, err := r.header.Find(tag)
	if err != nil {
		return zero, err
	}
	key := poolKey{tag: tag, offset: rec.Offset, length: rec.Length, args: a}
	if v, ok := r.pool[key]; ok {
		return v.(T), nil
	}

	data, err := r.header.ReadTableBytes(r.data, tag)
	if err != nil {
		return zero, err
	}
	v, err := decode(data)
	if err != nil {
		return zero, err
	}
	if r.pool != nil {
		r.pool[key] = v
	}
	return v, nil
}
