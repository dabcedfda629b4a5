package pcd8544

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/flavioheleno/pcd8544/log2"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
)

var errBus = errors.New("bus fault")

// op is one observable bus or line event.
type op struct {
	what  string // "dc", "ce", "rst", "tx" or "start"
	level gpio.Level
	w     []byte
}

func (o op) String() string {
	if o.w != nil {
		return fmt.Sprintf("%s[% x]", o.what, o.w)
	}
	return fmt.Sprintf("%s=%v", o.what, o.level)
}

func lvl(what string, l gpio.Level) op { return op{what: what, level: l} }
func tx(w ...byte) op                   { return op{what: "tx", w: w} }

// transcript records events of every fake in order.
type transcript struct {
	mu  sync.Mutex
	ops []op
}

func (tr *transcript) add(o op) {
	tr.mu.Lock()
	tr.ops = append(tr.ops, o)
	tr.mu.Unlock()
}

func (tr *transcript) get() []op {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]op(nil), tr.ops...)
}

func (tr *transcript) reset() {
	tr.mu.Lock()
	tr.ops = nil
	tr.mu.Unlock()
}

type fakeLine struct {
	name string
	tr   *transcript
	err  error
}

func (l *fakeLine) Out(v gpio.Level) error {
	if l.err != nil {
		return l.err
	}
	l.tr.add(lvl(l.name, v))
	return nil
}

// fakeBus is a spi.Conn recording writes.
type fakeBus struct {
	tr *transcript

	mu      sync.Mutex
	err     error
	max     int
	packets [][]spi.Packet
}

func (b *fakeBus) String() string      { return "fakeBus" }
func (b *fakeBus) Duplex() conn.Duplex { return conn.Half }
func (b *fakeBus) MaxTxSize() int      { return b.max }

func (b *fakeBus) setErr(err error) {
	b.mu.Lock()
	b.err = err
	b.mu.Unlock()
}

func (b *fakeBus) Tx(w, r []byte) error {
	b.mu.Lock()
	err := b.err
	b.mu.Unlock()
	if err != nil {
		return err
	}
	b.tr.add(tx(append([]byte(nil), w...)...))
	return nil
}

func (b *fakeBus) TxPackets(p []spi.Packet) error {
	b.mu.Lock()
	err := b.err
	cp := make([]spi.Packet, len(p))
	for i := range p {
		cp[i] = p[i]
		cp[i].W = append([]byte(nil), p[i].W...)
	}
	b.packets = append(b.packets, cp)
	b.mu.Unlock()
	if err != nil {
		return err
	}
	var all []byte
	for _, pk := range cp {
		all = append(all, pk.W...)
	}
	b.tr.add(tx(all...))
	return nil
}

func (b *fakeBus) sent() [][]spi.Packet {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]spi.Packet(nil), b.packets...)
}

// plainBus hides everything but conn.Conn.
type plainBus struct {
	conn.Conn
}

// fakeIRQ is an AsyncConn whose completion the test delivers.
type fakeIRQ struct {
	tr  *transcript
	err error
}

func (a *fakeIRQ) StartTx(w []byte) error {
	if a.err != nil {
		return a.err
	}
	a.tr.add(op{what: "start", w: append([]byte(nil), w...)})
	return nil
}

type rig struct {
	tr          *transcript
	bus         *fakeBus
	dc, ce, rst *fakeLine
	irq         *fakeIRQ
	dev         *Dev
}

func newRig(t *testing.T, opts *Opts) *rig {
	t.Helper()
	return newRigIRQ(t, opts, true)
}

// newRigIRQ builds a rig; withIRQ wires the fake AsyncConn as Opts.IRQ.
func newRigIRQ(t *testing.T, opts *Opts, withIRQ bool) *rig {
	t.Helper()
	tr := &transcript{}
	r := &rig{
		tr:  tr,
		bus: &fakeBus{tr: tr},
		dc:  &fakeLine{name: "dc", tr: tr},
		ce:  &fakeLine{name: "ce", tr: tr},
		rst: &fakeLine{name: "rst", tr: tr},
		irq: &fakeIRQ{tr: tr},
	}
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	o.CE, o.RST = r.ce, r.rst
	if withIRQ {
		o.IRQ = r.irq
	}
	if o.Log == nil {
		o.Log = log2.NewTest(t, log2.LDebug)
	}
	dev, err := New(r.bus, r.dc, &o)
	require.NoError(t, err)
	r.dev = dev
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = dev.Wait(ctx)
		_ = dev.Halt()
	})
	return r
}

// ready initializes the device in mode m and forgets the init traffic.
func (r *rig) ready(t *testing.T, m Mode) *Dev {
	t.Helper()
	require.NoError(t, r.dev.Init(m))
	require.Equal(t, StateReady, r.dev.State())
	r.tr.reset()
	return r.dev
}

// frameWrite is the expected traffic of one blocking frame push.
func frameWrite(f []byte) []op {
	return []op{lvl("ce", gpio.Low), lvl("dc", gpio.High), tx(f...), lvl("ce", gpio.High)}
}

// cmdWrite is the expected traffic of one blocking command write.
func cmdWrite(cmds ...byte) []op {
	return []op{lvl("ce", gpio.Low), lvl("dc", gpio.Low), tx(cmds...), lvl("ce", gpio.High)}
}
