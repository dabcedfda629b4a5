package pcd8544

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// SetContrast sets the contrast in percent, 0 to 100, mapped linearly onto
// the operating voltage range.
func (d *Dev) SetContrast(percent float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readyLocked(); err != nil {
		return err
	}
	vop, ok := contrastToVop(percent)
	if !ok {
		return d.fail(ErrInvalidContrastPercentage)
	}
	if err := d.txLocked(gpio.Low, extended(cmdSetVop|vop)); err != nil {
		return err
	}
	d.contrast, d.vop = percent, vop
	return nil
}

// SetTempCoefficient sets the temperature coefficient of the driving
// voltage.
func (d *Dev) SetTempCoefficient(tc TempCoefficient) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readyLocked(); err != nil {
		return err
	}
	if !tc.valid() {
		return d.fail(ErrInvalidTempCoefficient)
	}
	if err := d.txLocked(gpio.Low, extended(cmdTempCoefficient|byte(tc))); err != nil {
		return err
	}
	d.tc = tc
	return nil
}

// SetBias sets the bias system, 0 to 7.
func (d *Dev) SetBias(bias uint8) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readyLocked(); err != nil {
		return err
	}
	if bias > maxBias {
		return d.fail(ErrInvalidBiasLevel)
	}
	if err := d.txLocked(gpio.Low, extended(cmdBias|bias)); err != nil {
		return err
	}
	d.bias = bias
	return nil
}

// Invert switches between normal and inverse video.
func (d *Dev) Invert(inverted bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.txLocked(gpio.Low, []byte{displayControl(inverted)}); err != nil {
		return err
	}
	d.inverted = inverted
	return nil
}

// Contrast returns the contrast percentage last accepted.
func (d *Dev) Contrast() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.contrast
}

// Inverted reports whether the display is in inverse video.
func (d *Dev) Inverted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inverted
}

// SetMode switches the transfer mode without reprogramming the controller.
func (d *Dev) SetMode(m Mode) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readyLocked(); err != nil {
		return err
	}
	s, err := d.newStrategy(m)
	if err != nil {
		return err
	}
	d.strat.close()
	d.strat, d.mode = s, m
	d.log.Debugf("pcd8544: mode %s", m)
	return nil
}

// Sleep blanks the frame and puts the controller in power-down mode. The
// display RAM is cleared first so that nothing shows while asleep.
func (d *Dev) Sleep() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readyLocked(); err != nil {
		return err
	}
	d.frame.Clear()
	err := d.sendSync(
		segment{gpio.High, d.frame[:]},
		segment{gpio.Low, []byte{cmdFunctionSet | fsPowerDown}},
	)
	if err != nil {
		return d.faultLocked("sleep", err)
	}
	d.fire(evSleep)
	return nil
}

// WakeUp leaves power-down mode.
func (d *Dev) WakeUp() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch d.state {
	case StateAsleep:
	case StateBusy:
		return ErrBusy
	default:
		return fmt.Errorf("%w: %s", ErrNotAsleep, d.state)
	}
	if err := d.sendSync(segment{gpio.Low, []byte{cmdFunctionSet, displayControl(d.inverted)}}); err != nil {
		return d.faultLocked("wake", err)
	}
	d.fire(evWake)
	return nil
}
