// Package pcd8544 controls a PCD8544 monochrome LCD (the Nokia 5110/3310
// display) via SPI.
//
// The PCD8544 drives an 84×48 pixel matrix. Its RAM is organized in 6 banks
// of 8 pixel rows; each byte written covers one column of one bank, least
// significant bit on top. This driver keeps the whole screen in a 504 byte
// frame buffer (package framebuf) and sends it entirely after every
// operation. It implements the display.Drawer interface from periph.io.
//
// # Display Characteristics
//
// - 1 bit per pixel, 84×48
// - Software contrast (operating voltage), temperature coefficient and bias
// - Normal or inverse video
// - Power-down mode keeping RAM contents
//
// # Hardware Connection
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	CLK         → SPI Clock (SCLK)
//	DIN         → SPI Data (MOSI)
//	DC          → GPIO (any available pin)
//	CE          → SPI Chip Select, or a GPIO passed as Opts.CE
//	RST         → Optional: GPIO for hardware reset
//	BL          → Backlight, not driven by this package
//
// # Basic Usage
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"github.com/flavioheleno/pcd8544"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//		spiBus, _ := spireg.Open("")
//		dcPin := gpioreg.ByName("GPIO23")
//
//		dev, _ := pcd8544.NewSPI(spiBus, dcPin, &pcd8544.Opts{
//			Contrast: 45,
//			Bias:     4,
//			RST:      gpioreg.ByName("GPIO24"),
//		})
//		defer dev.Halt()
//
//		dev.Init(pcd8544.Blocking)
//		dev.WriteString("Hello")
//		dev.DrawRoundRect(0, 10, 83, 47)
//	}
//
// # Transfer Modes
//
// Init selects how writes reach the bus, and SetMode changes it later:
//
//   - Blocking: each operation returns once the frame is on the wire.
//   - Interrupt: the operation returns at once and the device reports
//     StateBusy until the transfer completes. Supply Opts.IRQ to plug in a
//     platform transport that calls Dev.TxComplete when done; otherwise a
//     goroutine does the transfer and reports completion itself.
//   - DMA: a worker goroutine sends the frame as spi.Packets, split at the
//     bus transaction limit.
//
// While busy, drawing and setters fail with ErrBusy without touching the
// frame or the control lines. Wait blocks until the transfer is over.
//
// # Errors
//
// Invalid parameters are reported as an ErrorCode and also remembered by the
// device, readable with LastError until ClearError or Init. Transport
// failures are returned wrapped, move the device to StateError and require
// a new Init.
//
// # Text
//
// Text is placed on a character grid: columns of the font width across and
// one line per bank. The built-in font.Default is 6 pixels wide, giving 14
// columns by 6 lines. Displayer exposes the frame to tinyfont for
// proportional fonts, and Draw accepts any image, such as one rendered with
// golang.org/x/image/font.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/Monochrome/Nokia5110.pdf
package pcd8544
