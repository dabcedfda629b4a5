// Package font describes fixed-width bitmap fonts for the PCD8544 text engine.
//
// A glyph is a run of Width bytes, one per pixel column, least significant bit
// on top, matching one column of a display band. Glyphs for First through Last
// are stored back to back in Table.
package font

import (
	"errors"
)

// ErrInvalid is returned by Validate for an inconsistent font.
var ErrInvalid = errors.New("font: invalid font")

// Font is a fixed-width font.
//
// The table is borrowed, not copied; it must not be modified while in use.
type Font struct {
	Width int    // Glyph width in pixels, padding included
	First byte   // First character in the table
	Last  byte   // Last character in the table
	Table []byte // (Last-First+1)*Width bytes
}

// Default is a 6 pixel wide ASCII font (5x7 glyphs plus one padding column).
var Default = Font{Width: 6, First: 0x20, Last: 0x7e, Table: ascii6}

// Validate checks the font against maxWidth, the screen width in pixels.
func (f *Font) Validate(maxWidth int) error {
	if f.Width <= 0 || f.Width > maxWidth {
		return ErrInvalid
	}
	if f.First > f.Last {
		return ErrInvalid
	}
	if len(f.Table) != f.Len()*f.Width {
		return ErrInvalid
	}
	return nil
}

// Len returns the number of glyphs in the font.
func (f *Font) Len() int {
	return int(f.Last) - int(f.First) + 1
}

// Has reports whether c has a glyph.
func (f *Font) Has(c byte) bool {
	return c >= f.First && c <= f.Last
}

// Glyph returns the columns of c, or false if the font has no glyph for it.
func (f *Font) Glyph(c byte) ([]byte, bool) {
	if !f.Has(c) {
		return nil, false
	}
	start := int(c-f.First) * f.Width
	return f.Table[start : start+f.Width], true
}

// Columns returns how many glyphs fit side by side on a line of width pixels.
func (f *Font) Columns(width int) int {
	if f.Width <= 0 {
		return 0
	}
	return width / f.Width
}
