package pcd8544

import (
	"fmt"

	"github.com/flavioheleno/pcd8544/framebuf"
	"github.com/skip2/go-qrcode"
)

// DrawQR renders text as a QR code, scaled to the largest whole number of
// pixels per module that fits and centered on screen, then sends the frame.
//
// The code is drawn without a border. The columns it spans, plus one module
// on each side, are cleared first.
func (d *Dev) DrawQR(text string, level qrcode.RecoveryLevel) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readyLocked(); err != nil {
		return err
	}
	qr, err := qrcode.New(text, level)
	if err != nil {
		return fmt.Errorf("pcd8544: qr: %w", err)
	}
	qr.DisableBorder = true
	bitmap := qr.Bitmap()
	n := len(bitmap)
	scale := framebuf.Height / n
	if scale < 1 {
		return fmt.Errorf("pcd8544: qr: %d modules do not fit %d pixels", n, framebuf.Height)
	}
	ox := (framebuf.Width - n*scale) / 2
	oy := (framebuf.Height - n*scale) / 2

	for y := 0; y < framebuf.Height; y++ {
		for x := ox - scale; x < ox+(n+1)*scale; x++ {
			_ = d.frame.ClearPixel(x, y)
		}
	}
	for my, row := range bitmap {
		for mx, dark := range row {
			if !dark {
				continue
			}
			for y := 0; y < scale; y++ {
				for x := 0; x < scale; x++ {
					_ = d.frame.SetPixel(ox+mx*scale+x, oy+my*scale+y)
				}
			}
		}
	}
	return d.pushLocked()
}
