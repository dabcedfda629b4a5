package pcd8544

import (
	"image/color"

	"github.com/flavioheleno/pcd8544/framebuf"
	"tinygo.org/x/drivers"
)

// Displayer returns the device as a tinygo drivers.Displayer, so that
// packages like tinyfont and tinydraw can render into the frame.
//
// SetPixel only changes the frame while the device is ready and ignores
// pixels off screen; Display sends the frame.
func (d *Dev) Displayer() drivers.Displayer {
	return displayer{d}
}

type displayer struct {
	d *Dev
}

func (p displayer) Size() (x, y int16) {
	return framebuf.Width, framebuf.Height
}

func (p displayer) SetPixel(x, y int16, c color.RGBA) {
	p.d.mu.Lock()
	defer p.d.mu.Unlock()
	if p.d.state != StateReady {
		return
	}
	p.d.frame.Set(int(x), int(y), c)
}

func (p displayer) Display() error {
	return p.d.Flush()
}
