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

	"seehuhn.de/go/ttfc/sfnt/table"
)

// Collection is a decoded TrueType collection.
type Collection struct {
	Header *table.CollectionHeader
	Fonts  []*Font
}

// ReadCollection decodes all fonts in a TrueType collection.
// Tables which are shared between fonts are decoded only once, and the
// corresponding fields of the fonts refer to the same values.
func ReadCollection(data []byte, opt *Options) (*Collection, error) {
	header, err := table.ReadCollectionHeader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	pool := make(tablePool)
	c := &Collection{
		Header: header,
		Fonts:  make([]*Font, len(header.Offsets)),
	}
	for i, offs := range header.Offsets {
		f, err := readFont(data, int64(offs), opt, pool)
		if err != nil {
			return nil, fmt.Errorf("font %d: %w", i, err)
		}
		c.Fonts[i] = f
	}
	return c, nil
}
