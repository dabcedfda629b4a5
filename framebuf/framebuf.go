// Package framebuf provides the 1-bit frame buffer of the PCD8544 display controller.
//
// Pixels are packed vertically: each byte holds 8 rows of one column of a band.
package framebuf

import (
	"errors"
	"image"
	"image/color"
	"strings"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Display geometry.
const (
	Width  = 84            // Pixels per row
	Height = 48            // Pixels per column
	Bands  = Height / 8    // Rows of 8 pixels each
	Size   = Width * Bands // Bytes in a full frame
)

var (
	// ErrOutOfBounds is returned for a pixel outside the display.
	ErrOutOfBounds = errors.New("framebuf: pixel out of bounds")
	// ErrBlockSize is returned when a block does not fit in the frame.
	ErrBlockSize = errors.New("framebuf: block does not fit in frame")
)

// Frame is the display RAM image.
//
// The zero value is a cleared frame. The length is fixed by the type.
type Frame [Size]byte

// Clear turns every pixel off.
func (f *Frame) Clear() {
	for i := range f {
		f[i] = 0x00
	}
}

// InvClear turns every pixel on.
func (f *Frame) InvClear() {
	for i := range f {
		f[i] = 0xFF
	}
}

// SetPixel turns the pixel at (x, y) on.
func (f *Frame) SetPixel(x, y int) error {
	offset, mask, ok := pixOffset(x, y)
	if !ok {
		return ErrOutOfBounds
	}
	f[offset] |= mask
	return nil
}

// ClearPixel turns the pixel at (x, y) off.
func (f *Frame) ClearPixel(x, y int) error {
	offset, mask, ok := pixOffset(x, y)
	if !ok {
		return ErrOutOfBounds
	}
	f[offset] &^= mask
	return nil
}

// InvertPixel flips the pixel at (x, y).
func (f *Frame) InvertPixel(x, y int) error {
	offset, mask, ok := pixOffset(x, y)
	if !ok {
		return ErrOutOfBounds
	}
	f[offset] ^= mask
	return nil
}

// Pixel reports whether the pixel at (x, y) is on.
// Pixels outside the display are reported off.
func (f *Frame) Pixel(x, y int) bool {
	offset, mask, ok := pixOffset(x, y)
	if !ok {
		return false
	}
	return f[offset]&mask != 0
}

// WriteBlock overwrites the frame starting at byte offset with b.
func (f *Frame) WriteBlock(offset int, b []byte) error {
	if offset < 0 || offset > Size || len(b) > Size-offset {
		return ErrBlockSize
	}
	copy(f[offset:], b)
	return nil
}

// Bytes returns the frame as a slice sharing its memory.
func (f *Frame) Bytes() []byte {
	return f[:]
}

// Image returns an image1bit view of the frame sharing its memory.
func (f *Frame) Image() *image1bit.VerticalLSB {
	return &image1bit.VerticalLSB{
		Pix:    f[:],
		Stride: Width,
		Rect:   image.Rect(0, 0, Width, Height),
	}
}

// ColorModel returns the color model of the frame.
func (f *Frame) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the frame bounds.
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, Width, Height)
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (f *Frame) At(x, y int) color.Color {
	return image1bit.Bit(f.Pixel(x, y))
}

// Set sets the color of the pixel at (x, y).
// It implements the draw.Image interface; pixels outside the display are ignored.
func (f *Frame) Set(x, y int, c color.Color) {
	if image1bit.BitModel.Convert(c).(image1bit.Bit) {
		_ = f.SetPixel(x, y)
		return
	}
	_ = f.ClearPixel(x, y)
}

// String renders the frame as text, one line per pixel row.
func (f *Frame) String() string {
	b := strings.Builder{}
	b.Grow((Width + 1) * Height)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if f.Pixel(x, y) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// pixOffset returns the byte offset and bit mask for the pixel at (x, y).
// Memory layout: byte (y/8)*Width + x, bit y%8 (LSB = top row of the band).
func pixOffset(x, y int) (offset int, mask byte, ok bool) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return 0, 0, false
	}
	return (y/8)*Width + x, 1 << uint(y&7), true
}
