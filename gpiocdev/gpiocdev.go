// Package gpiocdev drives the PCD8544 control lines (D/C, SCE, RST) through
// the Linux GPIO character device, for boards where periph's gpioreg does
// not know the pins.
package gpiocdev

import (
	"strconv"
	"sync"

	"github.com/juju/errors"
	gpio "github.com/temoto/gpio-cdev-go"
	pgpio "periph.io/x/conn/v3/gpio"
)

const consumer = "pcd8544"

// Lines is a set of output lines requested together.
type Lines struct {
	mu   sync.Mutex
	chip gpio.Chiper // nil when built with New
	h    gpio.Lineser
}

// Open requests offsets as outputs on the chip at path, e.g. /dev/gpiochip0.
func Open(path string, offsets ...uint32) (*Lines, error) {
	chip, err := gpio.Open(path, consumer)
	if err != nil {
		return nil, errors.Annotatef(err, "gpio open chip=%s", path)
	}
	h, err := chip.OpenLines(gpio.GPIOHANDLE_REQUEST_OUTPUT, consumer, offsets...)
	if err != nil {
		_ = chip.Close()
		return nil, errors.Annotatef(err, "gpio request chip=%s lines=%v", path, offsets)
	}
	return &Lines{chip: chip, h: h}, nil
}

// New wraps lines already requested as outputs.
func New(h gpio.Lineser) *Lines {
	return &Lines{h: h}
}

// Line returns the output at offset. The offset must be one of the
// requested ones.
func (l *Lines) Line(offset uint32) *Line {
	return &Line{l: l, offset: offset, set: l.h.SetFunc(offset)}
}

func (l *Lines) Close() error {
	err := l.h.Close()
	if l.chip != nil {
		if cerr := l.chip.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Line is one output of Lines. It implements pcd8544.Line.
type Line struct {
	l      *Lines
	offset uint32
	set    gpio.LineSetFunc
}

func (ln *Line) String() string {
	return "cdev:" + strconv.FormatUint(uint64(ln.offset), 10)
}

// Out drives the line and flushes the whole set.
func (ln *Line) Out(v pgpio.Level) error {
	var b byte
	if v {
		b = 1
	}
	ln.l.mu.Lock()
	defer ln.l.mu.Unlock()
	ln.set(b)
	if err := ln.l.h.Flush(); err != nil {
		return errors.Annotatef(err, "gpio line=%d", ln.offset)
	}
	return nil
}

// ParseOffset parses a line offset from configuration. Empty s means the
// line is not wired.
func ParseOffset(s string) (offset uint32, ok bool, err error) {
	if s == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false, errors.NotValidf("line offset %q", s)
	}
	return uint32(n), true, nil
}
