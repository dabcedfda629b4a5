package pcd8544

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/flavioheleno/pcd8544/font"
	"github.com/flavioheleno/pcd8544/framebuf"
	"github.com/flavioheleno/pcd8544/log2"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Line is a digital output such as the D/C, SCE or RST pin.
//
// gpio.PinOut implements it.
type Line interface {
	Out(l gpio.Level) error
}

// Opts is the configuration for the PCD8544 display.
type Opts struct {
	Contrast        float64         // Percent, 0..100
	TempCoefficient TempCoefficient // 0..3
	Bias            uint8           // Bias system, 0..7
	Inverted        bool            // Inverse video

	// Optional lines, nil if not wired
	CE  Line // Chip enable (SCE), active low
	RST Line // Reset, active low

	// IRQ, when set, carries the writes of Interrupt mode; the platform
	// reports their completion with Dev.TxComplete.
	IRQ AsyncConn

	Font *font.Font // nil for font.Default

	// Rounded rectangles
	CornerRadius int // default 2
	MinRoundEdge int // Shortest edge in pixels, default 5

	Log *log2.Log
}

// DefaultOpts is used by New when opts is nil.
var DefaultOpts = Opts{
	Contrast:     40,
	Bias:         4,
	CornerRadius: 2,
	MinRoundEdge: 5,
}

// Dev is a handle to a PCD8544 display.
//
// The whole screen is kept in memory; every drawing operation updates it and
// then sends the complete frame. Methods are safe for concurrent use, so the
// completion context of an asynchronous mode may call TxComplete freely.
type Dev struct {
	mu sync.Mutex

	c       conn.Conn
	dc      Line
	ce      Line
	rst     Line
	irq     AsyncConn
	strat   strategy
	mode    Mode
	state   State
	idle    chan struct{} // closed when leaving StateBusy
	txErr   error
	log     *log2.Log
	corner  int
	minEdge int

	// Display parameters
	contrast float64
	vop      byte
	tc       TempCoefficient
	bias     uint8
	inverted bool

	text  typesetter
	frame framebuf.Frame
	code  ErrorCode
}

var _ display.Drawer = &Dev{}

// NewSPI returns a PCD8544 connected over SPI.
//
// The port is configured for 4MHz, mode 0, 8 bits. dc is the Data/Command
// line. opts can be nil to use DefaultOpts. Call Init before drawing.
func NewSPI(p spi.Port, dc Line, opts *Opts) (*Dev, error) {
	c, err := p.Connect(4*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("pcd8544: %w", err)
	}
	return New(c, dc, opts)
}

// New returns a PCD8544 using c as the bus. The device starts in StateReset.
func New(c conn.Conn, dc Line, opts *Opts) (*Dev, error) {
	if c == nil || dc == nil {
		return nil, errors.New("pcd8544: bus and dc line are required")
	}
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}
	vop, ok := contrastToVop(opts.Contrast)
	if !ok {
		return nil, ErrInvalidContrastPercentage
	}
	if !opts.TempCoefficient.valid() {
		return nil, ErrInvalidTempCoefficient
	}
	if opts.Bias > maxBias {
		return nil, ErrInvalidBiasLevel
	}
	f := opts.Font
	if f == nil {
		f = &font.Default
	}
	corner, minEdge := opts.CornerRadius, opts.MinRoundEdge
	if corner == 0 {
		corner = DefaultOpts.CornerRadius
	}
	if minEdge == 0 {
		minEdge = DefaultOpts.MinRoundEdge
	}
	if corner < 0 || minEdge < 2*corner+1 {
		return nil, fmt.Errorf("pcd8544: MinRoundEdge %d too short for CornerRadius %d", minEdge, corner)
	}

	d := &Dev{
		c:        c,
		dc:       dc,
		ce:       opts.CE,
		rst:      opts.RST,
		irq:      opts.IRQ,
		log:      opts.Log,
		corner:   corner,
		minEdge:  minEdge,
		contrast: opts.Contrast,
		vop:      vop,
		tc:       opts.TempCoefficient,
		bias:     opts.Bias,
		inverted: opts.Inverted,
	}
	if err := d.text.setFont(f); err != nil {
		return nil, ErrInvalidFontIndex
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("pcd8544.Dev{%s, %dx%d}", d.c, framebuf.Width, framebuf.Height)
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, framebuf.Width, framebuf.Height)
}

// Draw implements display.Drawer.
//
// src is converted to 1 bit per pixel and composed into the frame over dst,
// then the frame is sent.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readyLocked(); err != nil {
		return err
	}
	dst = dst.Intersect(d.Bounds())
	if dst.Empty() {
		return nil
	}
	draw.Draw(&d.frame, dst, src, sp, draw.Src)
	return d.pushLocked()
}

// Halt powers the controller down and stops the transfer mode. Init brings
// it back.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateBusy {
		return ErrBusy
	}
	var err error
	if d.state == StateReady {
		if err = d.sendSync(segment{gpio.Low, []byte{cmdFunctionSet | fsPowerDown}}); err != nil {
			err = fmt.Errorf("pcd8544: halt: %w", err)
		}
	}
	if d.strat != nil {
		d.strat.close()
		d.strat = nil
	}
	d.fire(evHalt)
	return err
}

// State returns the lifecycle state.
func (d *Dev) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Mode returns the transfer mode selected by the last Init or SetMode.
func (d *Dev) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// LastError returns the most recent validation failure, ErrNone if there
// was none since the last ClearError or Init.
func (d *Dev) LastError() ErrorCode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.code
}

// ClearError resets LastError to ErrNone.
func (d *Dev) ClearError() {
	d.mu.Lock()
	d.code = ErrNone
	d.mu.Unlock()
}

// Err returns the transport failure that moved the device to StateError.
func (d *Dev) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.txErr
}

// Frame returns a copy of the frame buffer.
func (d *Dev) Frame() framebuf.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frame
}

// fail records code as the last validation failure and returns it.
func (d *Dev) fail(code ErrorCode) error {
	d.code = code
	d.log.Debugf("pcd8544: %v", code)
	return code
}
