package pcd8544

import (
	"github.com/flavioheleno/pcd8544/framebuf"
	"github.com/flavioheleno/pcd8544/raster"
)

// Shapes are composed over the current frame: the plain variants turn
// pixels on, the Inv variants turn them off. Parameters are validated before
// the frame is touched, then the whole frame is sent.

func (d *Dev) DrawPixel(x, y int) error    { return d.drawPixel(x, y, false) }
func (d *Dev) DrawInvPixel(x, y int) error { return d.drawPixel(x, y, true) }

func (d *Dev) drawPixel(x, y int, inverse bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readyLocked(); err != nil {
		return err
	}
	if !onScreen(x, y) {
		return d.fail(ErrInvalidXYSubcoordinates)
	}
	d.plotter(inverse)(x, y)
	return d.pushLocked()
}

// DrawLine draws a line from (x0, y0) to (x1, y1). x1 must not be left of x0.
//
// A shallow line plots x1-x0+1 pixels, one per column. A steep line
// (|y1-y0| > x1-x0) steps along y instead and plots |y1-y0|+1 pixels, so
// that vertical and near-vertical lines stay connected.
func (d *Dev) DrawLine(x0, y0, x1, y1 int) error    { return d.drawLine(x0, y0, x1, y1, false) }
func (d *Dev) DrawInvLine(x0, y0, x1, y1 int) error { return d.drawLine(x0, y0, x1, y1, true) }

func (d *Dev) drawLine(x0, y0, x1, y1 int, inverse bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readyLocked(); err != nil {
		return err
	}
	if x1 < x0 {
		return d.fail(ErrInvalidOriginDestination)
	}
	if !onScreen(x0, y0) || !onScreen(x1, y1) {
		return d.fail(ErrInvalidXYSubcoordinates)
	}
	raster.Line(x0, y0, x1, y1, d.plotter(inverse))
	return d.pushLocked()
}

// DrawRect draws the outline of the rectangle with top left corner (x0, y0)
// and bottom right corner (x1, y1).
func (d *Dev) DrawRect(x0, y0, x1, y1 int) error    { return d.drawRect(x0, y0, x1, y1, false) }
func (d *Dev) DrawInvRect(x0, y0, x1, y1 int) error { return d.drawRect(x0, y0, x1, y1, true) }

func (d *Dev) drawRect(x0, y0, x1, y1 int, inverse bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readyLocked(); err != nil {
		return err
	}
	if code := checkRect(x0, y0, x1, y1); code != ErrNone {
		return d.fail(code)
	}
	raster.Rect(x0, y0, x1, y1, d.plotter(inverse))
	return d.pushLocked()
}

// DrawRoundRect is DrawRect with rounded corners. Both edges must be at
// least Opts.MinRoundEdge pixels long.
func (d *Dev) DrawRoundRect(x0, y0, x1, y1 int) error {
	return d.drawRoundRect(x0, y0, x1, y1, false)
}

func (d *Dev) DrawInvRoundRect(x0, y0, x1, y1 int) error {
	return d.drawRoundRect(x0, y0, x1, y1, true)
}

func (d *Dev) drawRoundRect(x0, y0, x1, y1 int, inverse bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readyLocked(); err != nil {
		return err
	}
	if code := checkRect(x0, y0, x1, y1); code != ErrNone {
		return d.fail(code)
	}
	if x1-x0+1 < d.minEdge || y1-y0+1 < d.minEdge {
		return d.fail(ErrInvalidEdgesLength)
	}
	raster.RoundRect(x0, y0, x1, y1, d.corner, d.plotter(inverse))
	return d.pushLocked()
}

// DrawCircle draws a circle of radius r centered on (x, y). The whole
// circle must be on screen.
func (d *Dev) DrawCircle(x, y, r int) error    { return d.drawCircle(x, y, r, false) }
func (d *Dev) DrawInvCircle(x, y, r int) error { return d.drawCircle(x, y, r, true) }

func (d *Dev) drawCircle(x, y, r int, inverse bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readyLocked(); err != nil {
		return err
	}
	if r <= 0 || r >= framebuf.Height || !onScreen(x, y) ||
		!onScreen(x-r, y-r) || !onScreen(x+r, y+r) {
		return d.fail(ErrInvalidCircleRadiusCenter)
	}
	raster.Circle(x, y, r, d.plotter(inverse))
	return d.pushLocked()
}

// WriteBlock copies b into the frame at byte offset and sends the frame.
func (d *Dev) WriteBlock(offset int, b []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readyLocked(); err != nil {
		return err
	}
	if err := d.frame.WriteBlock(offset, b); err != nil {
		return d.fail(ErrInvalidDataBlockSize)
	}
	return d.pushLocked()
}

// Clear turns every pixel off and sends the frame.
func (d *Dev) Clear() error {
	return d.fill(false)
}

// InvClear turns every pixel on and sends the frame.
func (d *Dev) InvClear() error {
	return d.fill(true)
}

func (d *Dev) fill(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readyLocked(); err != nil {
		return err
	}
	if on {
		d.frame.InvClear()
	} else {
		d.frame.Clear()
	}
	return d.pushLocked()
}

// Flush sends the frame as it is.
func (d *Dev) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pushLocked()
}

// plotter returns a raster.Plotter writing into the frame. Callers validate
// coordinates beforehand.
func (d *Dev) plotter(inverse bool) raster.Plotter {
	if inverse {
		return func(x, y int) { _ = d.frame.ClearPixel(x, y) }
	}
	return func(x, y int) { _ = d.frame.SetPixel(x, y) }
}

func onScreen(x, y int) bool {
	return x >= 0 && x < framebuf.Width && y >= 0 && y < framebuf.Height
}

func checkRect(x0, y0, x1, y1 int) ErrorCode {
	if x1 < x0 || y1 < y0 {
		return ErrInvalidVertices
	}
	if !onScreen(x0, y0) || !onScreen(x1, y1) {
		return ErrInvalidXYSubcoordinates
	}
	return ErrNone
}
