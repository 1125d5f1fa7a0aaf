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

package parser

import (
	"fmt"
	"time"
)

// Fixed is a signed 16.16 fixed point number.
type Fixed uint32

// Float64 converts the value to a float64.
func (x Fixed) Float64() float64 {
	return float64(int32(x)) / 65536
}

func (x Fixed) String() string {
	return fmt.Sprintf("%.03f", x.Float64())
}

// F2Dot14 is a signed 2.14 fixed point number, in the range [-2, 2).
type F2Dot14 uint16

// Float64 converts the value to a float64.
func (x F2Dot14) Float64() float64 {
	return float64(int16(x)) / 16384
}

// zeroTime is the start of January 1904 in GMT/UTC time zone.
const zeroTime int64 = -2082844800

// DecodeTime converts a time stamp, counting seconds since the start
// of 1904, to a time.Time.  The value 0 maps to the zero time.Time.
func DecodeTime(t int64) time.Time {
	if t == 0 {
		return time.Time{}
	}
	return time.Unix(t+zeroTime, 0).UTC()
}

// EncodeTime converts a time.Time to the number of seconds since the start
// of 1904.  The zero time.Time maps to 0.
func EncodeTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix() - zeroTime
}
