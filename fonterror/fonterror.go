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

// Package fonterror defines the errors reported while reading font files.
//
// All errors returned by the font readers in this module either are one of
// the sentinel values below, or wrap one of them.  Use [errors.Is] to
// classify an error.
package fonterror

import (
	"errors"
	"fmt"
)

// These are the error kinds used by the font readers.
var (
	// ErrUnrecognizedFormat indicates that the file signature is not one of
	// the known sfnt signatures.
	ErrUnrecognizedFormat = errors.New("unrecognized font format")

	// ErrUnsupportedFlavor indicates a recognized sfnt flavor (CFF-based
	// OpenType or Type 1 wrapped in sfnt) which cannot be read.
	ErrUnsupportedFlavor = errors.New("unsupported font flavor")

	// ErrMalformedHeader indicates inconsistent offsets or lengths in a
	// directory or table header.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrTruncatedTable indicates that a structure extends beyond the end
	// of the data which contains it.
	ErrTruncatedTable = errors.New("truncated table")

	// ErrGlyphCountMismatch indicates that two tables disagree on the number
	// of glyphs in the font.
	ErrGlyphCountMismatch = errors.New("glyph count mismatch")

	// ErrComponentDepth indicates a composite glyph which refers to itself,
	// directly or indirectly, or which is nested too deeply.
	ErrComponentDepth = errors.New("component cycle or depth exceeded")
)

// InvalidFontError indicates a problem with font data.
type InvalidFontError struct {
	SubSystem string
	Kind      error
	Reason    string
}

func (err *InvalidFontError) Error() string {
	return err.SubSystem + ": " + err.Reason
}

// Unwrap returns the error kind.
func (err *InvalidFontError) Unwrap() error {
	return err.Kind
}

// NotSupportedError indicates that a font file seems valid but uses a
// feature which is not supported by this library.
type NotSupportedError struct {
	SubSystem string
	Feature   string
}

func (err *NotSupportedError) Error() string {
	return err.SubSystem + ": " + err.Feature + " not supported"
}

// Unwrap returns [ErrUnsupportedFlavor].
func (err *NotSupportedError) Unwrap() error {
	return ErrUnsupportedFlavor
}

// IsUnsupported returns true if the error is or wraps a NotSupportedError.
func IsUnsupported(err error) bool {
	var e *NotSupportedError
	return errors.As(err, &e)
}

// Truncated returns an error of kind [ErrTruncatedTable].
// The error message records the offset of the read, the number of bytes
// required, and the number of bytes available.
func Truncated(subSystem string, offset, need, have int) error {
	return &InvalidFontError{
		SubSystem: subSystem,
		Kind:      ErrTruncatedTable,
		Reason: fmt.Sprintf("need %d bytes at offset %d, only %d available",
			need, offset, have),
	}
}

// Malformed returns an error of kind [ErrMalformedHeader].
func Malformed(subSystem string, format string, a ...any) error {
	return &InvalidFontError{
		SubSystem: subSystem,
		Kind:      ErrMalformedHeader,
		Reason:    fmt.Sprintf(format, a...),
	}
}

// CountMismatch returns an error of kind [ErrGlyphCountMismatch].
func CountMismatch(subSystem string, declared, observed int) error {
	return &InvalidFontError{
		SubSystem: subSystem,
		Kind:      ErrGlyphCountMismatch,
		Reason: fmt.Sprintf("table has %d glyphs, expected %d",
			declared, observed),
	}
}
