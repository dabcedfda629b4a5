package pcd8544

import (
	"github.com/flavioheleno/pcd8544/font"
	"github.com/flavioheleno/pcd8544/framebuf"
)

// typesetter places glyphs of a fixed-width font on the frame.
//
// The cursor is in text coordinates: x counts characters, y counts bands.
// x == cols means the line is full; the next glyph wraps to the next band.
type typesetter struct {
	font *font.Font
	cols int
	x, y int
}

func (t *typesetter) setFont(f *font.Font) error {
	if f == nil {
		return font.ErrInvalid
	}
	if err := f.Validate(framebuf.Width); err != nil {
		return err
	}
	t.font = f
	t.cols = f.Columns(framebuf.Width)
	t.x, t.y = 0, 0
	return nil
}

func (t *typesetter) setXY(x, y int) bool {
	if x < 0 || x > t.cols || y < 0 || y >= framebuf.Bands {
		return false
	}
	t.x, t.y = x, y
	return true
}

// putc renders c at the cursor and advances it.
func (t *typesetter) putc(fr *framebuf.Frame, c byte, inverse bool) ErrorCode {
	g, ok := t.font.Glyph(c)
	if !ok {
		return ErrInvalidCharacter
	}
	if t.x >= t.cols {
		if t.y+1 >= framebuf.Bands {
			return ErrInvalidStringLength
		}
		t.x = 0
		t.y++
	}
	w := t.font.Width
	col := t.x * w
	off := t.y*framebuf.Width + col
	var mask byte
	if inverse {
		mask = 0xFF
	}
	for i, b := range g {
		fr[off+i] = b ^ mask
	}
	// Blank spacing column, only while it stays on the band
	if col+w < framebuf.Width {
		fr[off+w] = mask
	}
	t.x++
	return ErrNone
}

// SetFont replaces the font and moves the cursor home.
func (d *Dev) SetFont(f *font.Font) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readyLocked(); err != nil {
		return err
	}
	if err := d.text.setFont(f); err != nil {
		return d.fail(ErrInvalidFontIndex)
	}
	return nil
}

// SetXY moves the text cursor to column x, band y.
//
// x ranges over 0..84/font width, the upper bound meaning the line is full;
// y ranges over 0..5. On failure the cursor does not move.
func (d *Dev) SetXY(x, y int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readyLocked(); err != nil {
		return err
	}
	if !d.text.setXY(x, y) {
		return d.fail(ErrInvalidXYCoordinates)
	}
	return nil
}

// XY returns the text cursor.
func (d *Dev) XY() (x, y int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text.x, d.text.y
}

// WriteString renders s at the text cursor and sends the frame.
//
// Rendering stops at the first character that is not in the font or does
// not fit on screen. Characters before it stay in the frame but nothing is
// sent.
func (d *Dev) WriteString(s string) error {
	return d.writeString(s, false)
}

// WriteInvString is WriteString with inverted glyphs.
func (d *Dev) WriteInvString(s string) error {
	return d.writeString(s, true)
}

func (d *Dev) writeString(s string, inverse bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readyLocked(); err != nil {
		return err
	}
	for i := 0; i < len(s); i++ {
		if code := d.text.putc(&d.frame, s[i], inverse); code != ErrNone {
			return d.fail(code)
		}
	}
	return d.pushLocked()
}
