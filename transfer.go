package pcd8544

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// State is the lifecycle state of a Dev.
type State uint8

const (
	StateReset State = iota
	StateReady
	StateBusy
	StateAsleep
	StateError
)

func (s State) String() string {
	switch s {
	case StateReset:
		return "reset"
	case StateReady:
		return "ready"
	case StateBusy:
		return "busy"
	case StateAsleep:
		return "asleep"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

type event uint8

const (
	evInit event = iota
	evTxSync
	evTxStart
	evTxDone
	evFault
	evSleep
	evWake
	evHalt
)

// next returns the state reached from s on ev, and false when ev is not
// allowed in s.
func next(s State, ev event) (State, bool) {
	switch ev {
	case evInit:
		if s != StateBusy {
			return StateReady, true
		}
	case evTxSync:
		if s == StateReady {
			return StateReady, true
		}
	case evTxStart:
		if s == StateReady {
			return StateBusy, true
		}
	case evTxDone:
		if s == StateBusy {
			return StateReady, true
		}
	case evFault:
		return StateError, true
	case evSleep:
		if s == StateReady {
			return StateAsleep, true
		}
	case evWake:
		if s == StateAsleep {
			return StateReady, true
		}
	case evHalt:
		if s != StateBusy {
			return StateReset, true
		}
	}
	return s, false
}

// fire applies ev to the current state. d.mu must be held.
func (d *Dev) fire(ev event) bool {
	s, ok := next(d.state, ev)
	if !ok {
		return false
	}
	if s != d.state {
		d.log.Debugf("pcd8544: %s -> %s", d.state, s)
	}
	if s == StateBusy && d.state != StateBusy {
		d.idle = make(chan struct{})
	}
	if d.state == StateBusy && s != StateBusy {
		close(d.idle)
	}
	d.state = s
	return true
}

// readyLocked returns why a transfer can not start now.
func (d *Dev) readyLocked() error {
	switch d.state {
	case StateReady:
		return nil
	case StateBusy:
		return ErrBusy
	}
	return fmt.Errorf("%w: %s", ErrNotReady, d.state)
}

// txLocked sends w through the active strategy, as commands when dc is Low
// and as display data when dc is High.
func (d *Dev) txLocked(dc gpio.Level, w []byte) error {
	if err := d.readyLocked(); err != nil {
		return err
	}
	if dc == gpio.Low {
		d.log.Debugf("pcd8544: cmd % x", w)
	}
	if err := outOpt(d.ce, gpio.Low); err != nil {
		return d.faultLocked("ce", err)
	}
	if err := d.dc.Out(dc); err != nil {
		_ = outOpt(d.ce, gpio.High)
		return d.faultLocked("dc", err)
	}
	async, err := d.strat.start(w)
	if err != nil {
		_ = outOpt(d.ce, gpio.High)
		return d.faultLocked("tx", err)
	}
	if async {
		d.fire(evTxStart)
		return nil
	}
	if err := outOpt(d.ce, gpio.High); err != nil {
		return d.faultLocked("ce", err)
	}
	d.fire(evTxSync)
	return nil
}

// pushLocked sends the whole frame.
func (d *Dev) pushLocked() error {
	return d.txLocked(gpio.High, d.frame[:])
}

func (d *Dev) faultLocked(op string, err error) error {
	d.txErr = fmt.Errorf("pcd8544: %s: %w", op, err)
	d.fire(evFault)
	return d.txErr
}

// segment is one run of bytes sent with a fixed D/C level.
type segment struct {
	dc gpio.Level
	b  []byte
}

// sendSync writes segs on the bus from the calling goroutine, bypassing the
// active strategy, with chip enable asserted around the whole sequence.
func (d *Dev) sendSync(segs ...segment) error {
	if err := outOpt(d.ce, gpio.Low); err != nil {
		return err
	}
	for _, s := range segs {
		if s.dc == gpio.Low {
			d.log.Debugf("pcd8544: cmd % x", s.b)
		}
		if err := d.dc.Out(s.dc); err != nil {
			_ = outOpt(d.ce, gpio.High)
			return err
		}
		if err := d.c.Tx(s.b, nil); err != nil {
			_ = outOpt(d.ce, gpio.High)
			return err
		}
	}
	return outOpt(d.ce, gpio.High)
}

// complete finishes the asynchronous transfer started through src.
func (d *Dev) complete(src interface{}, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateBusy || d.strat == nil || d.strat.owner() != src {
		return
	}
	if cerr := outOpt(d.ce, gpio.High); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		d.txErr = fmt.Errorf("pcd8544: async tx: %w", err)
		d.log.Errorf("%v", d.txErr)
		d.fire(evFault)
		return
	}
	d.fire(evTxDone)
}

// TxComplete signals the end of the transfer started through src.
//
// It is meant to be called by the platform's completion context once per
// AsyncConn.StartTx. Calls while no transfer is in flight, or for another
// AsyncConn, are ignored.
func (d *Dev) TxComplete(src AsyncConn) {
	d.complete(src, nil)
}

// Wait blocks until no transfer is in flight or ctx is done. It returns the
// transport error of the transfer if it failed.
func (d *Dev) Wait(ctx context.Context) error {
	d.mu.Lock()
	busy, idle := d.state == StateBusy, d.idle
	d.mu.Unlock()
	if busy {
		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateError {
		return d.txErr
	}
	return nil
}

// Init programs the controller, clears the screen and selects the transfer
// mode.
//
// The command sequence is always sent synchronously: D/C goes low before
// each command byte, then high for the blank frame, with chip enable
// asserted around the whole sequence. Init is the only way out of
// StateError and also clears the last validation error.
func (d *Dev) Init(m Mode) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateBusy {
		return ErrBusy
	}
	s, err := d.newStrategy(m)
	if err != nil {
		return err
	}
	if d.strat != nil {
		d.strat.close()
	}
	d.strat, d.mode = s, m

	if d.rst != nil {
		if err := d.reset(); err != nil {
			return d.faultLocked("reset", err)
		}
	}

	cmds := initSequence(d.vop, d.tc, d.bias, d.inverted)
	segs := make([]segment, 0, len(cmds)+1)
	for i := range cmds {
		segs = append(segs, segment{gpio.Low, cmds[i : i+1]})
	}
	d.frame.Clear()
	segs = append(segs, segment{gpio.High, d.frame[:]})
	if err := d.sendSync(segs...); err != nil {
		return d.faultLocked("init", err)
	}

	d.code = ErrNone
	d.txErr = nil
	d.fire(evInit)
	d.log.Debugf("pcd8544: init mode=%s vop=%d tc=%d bias=%d", m, d.vop, d.tc, d.bias)
	return nil
}

// reset pulses the RST line.
func (d *Dev) reset() error {
	if err := d.rst.Out(gpio.Low); err != nil {
		return err
	}
	time.Sleep(resetPulse)
	if err := d.rst.Out(gpio.High); err != nil {
		return err
	}
	time.Sleep(resetPulse)
	return nil
}

const resetPulse = time.Millisecond

// outOpt drives an optional line.
func outOpt(l Line, v gpio.Level) error {
	if l == nil {
		return nil
	}
	return l.Out(v)
}
