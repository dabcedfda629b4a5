// Package config reads the HCL description of a PCD8544 setup: which SPI
// bus, which control lines and the controller parameters.
//
//	spi  = "/dev/spidev0.0"
//	hz   = "4MHz"
//	mode = "dma"
//
//	pins {
//	  backend = "cdev"
//	  chip    = "/dev/gpiochip0"
//	  dc      = "23"
//	  rst     = "24"
//	}
//
//	display {
//	  contrast = 45
//	  bias     = 4
//	}
package config

import (
	"os"
	"strconv"

	"github.com/flavioheleno/pcd8544"
	"github.com/hashicorp/hcl"
	"github.com/juju/errors"
	"periph.io/x/conn/v3/physic"
)

// Pin backends.
const (
	BackendPeriph = "periph" // pins named in gpioreg, e.g. "GPIO23"
	BackendCdev   = "cdev"   // line offsets on a GPIO character device
)

type Config struct {
	SPI  string `hcl:"spi"`  // spireg name, empty for the first bus
	Hz   string `hcl:"hz"`   // bus clock, physic.Frequency syntax
	Mode string `hcl:"mode"` // blocking, interrupt or dma

	Pins    Pins    `hcl:"pins"`
	Display Display `hcl:"display"`
}

type Pins struct {
	Backend string `hcl:"backend"`
	Chip    string `hcl:"chip"` // cdev only
	DC      string `hcl:"dc"`
	CE      string `hcl:"ce"`  // optional
	RST     string `hcl:"rst"` // optional
}

type Display struct {
	Contrast        float64 `hcl:"contrast"`
	TempCoefficient int     `hcl:"temp_coefficient"`
	Bias            int     `hcl:"bias"`
	Inverted        bool    `hcl:"inverted"`
	CornerRadius    int     `hcl:"corner_radius"`
	MinRoundEdge    int     `hcl:"min_round_edge"`
}

// Default returns the configuration used for keys missing from a file.
func Default() *Config {
	return &Config{
		Hz:   "4MHz",
		Mode: pcd8544.Blocking.String(),
		Pins: Pins{
			Backend: BackendPeriph,
			Chip:    "/dev/gpiochip0",
		},
		Display: Display{
			Contrast:     pcd8544.DefaultOpts.Contrast,
			Bias:         int(pcd8544.DefaultOpts.Bias),
			CornerRadius: pcd8544.DefaultOpts.CornerRadius,
			MinRoundEdge: pcd8544.DefaultOpts.MinRoundEdge,
		},
	}
}

// Parse decodes b over the defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	c := Default()
	if err := hcl.Unmarshal(b, c); err != nil {
		return nil, errors.Annotate(err, "config unmarshal")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "config read path=%s", path)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, errors.Annotatef(err, "config path=%s", path)
	}
	return c, nil
}

// Validate checks values that do not need the hardware.
func (c *Config) Validate() error {
	if _, err := c.Frequency(); err != nil {
		return err
	}
	if _, err := c.TransferMode(); err != nil {
		return err
	}
	switch c.Pins.Backend {
	case BackendPeriph:
	case BackendCdev:
		if c.Pins.Chip == "" {
			return errors.NotValidf("pins.chip empty with backend=cdev")
		}
		for _, p := range []string{c.Pins.DC, c.Pins.CE, c.Pins.RST} {
			if p == "" {
				continue
			}
			if _, err := strconv.ParseUint(p, 10, 32); err != nil {
				return errors.NotValidf("pins: cdev line offset %q", p)
			}
		}
	default:
		return errors.NotValidf("pins.backend=%q", c.Pins.Backend)
	}
	if c.Pins.DC == "" {
		return errors.NotValidf("pins.dc empty")
	}
	if _, err := c.Opts(); err != nil {
		return err
	}
	return nil
}

// Frequency parses Hz.
func (c *Config) Frequency() (physic.Frequency, error) {
	var f physic.Frequency
	if err := f.Set(c.Hz); err != nil {
		return 0, errors.Annotatef(err, "config hz=%q", c.Hz)
	}
	if f <= 0 {
		return 0, errors.NotValidf("hz=%q", c.Hz)
	}
	return f, nil
}

// TransferMode parses Mode.
func (c *Config) TransferMode() (pcd8544.Mode, error) {
	m, err := pcd8544.ParseMode(c.Mode)
	if err != nil {
		return 0, errors.Annotate(err, "config mode")
	}
	return m, nil
}

// Opts converts the display section. The lines, IRQ and logger are left
// for the caller to fill in.
func (c *Config) Opts() (*pcd8544.Opts, error) {
	d := c.Display
	if d.TempCoefficient < 0 || d.TempCoefficient > int(pcd8544.TempCoefficient3) {
		return nil, errors.NotValidf("display.temp_coefficient=%d", d.TempCoefficient)
	}
	if d.Bias < 0 || d.Bias > 7 {
		return nil, errors.NotValidf("display.bias=%d", d.Bias)
	}
	if d.Contrast < 0 || d.Contrast > 100 {
		return nil, errors.NotValidf("display.contrast=%v", d.Contrast)
	}
	return &pcd8544.Opts{
		Contrast:        d.Contrast,
		TempCoefficient: pcd8544.TempCoefficient(d.TempCoefficient),
		Bias:            uint8(d.Bias),
		Inverted:        d.Inverted,
		CornerRadius:    d.CornerRadius,
		MinRoundEdge:    d.MinRoundEdge,
	}, nil
}
