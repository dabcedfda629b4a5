package pcd8544

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/spi"
)

// Mode selects how frame and command writes reach the bus.
type Mode uint8

const (
	// Blocking sends on the caller's goroutine and returns once the bus
	// transaction is over.
	Blocking Mode = iota
	// Interrupt starts the transaction and returns at once; completion is
	// signaled later through Dev.TxComplete. Without Opts.IRQ the transfer
	// runs on a goroutine that signals completion itself.
	Interrupt
	// DMA hands the buffer to a worker goroutine which sends it as a
	// sequence of SPI packets.
	DMA
)

func (m Mode) String() string {
	switch m {
	case Blocking:
		return "blocking"
	case Interrupt:
		return "interrupt"
	case DMA:
		return "dma"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode returns the Mode whose String is s.
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{Blocking, Interrupt, DMA} {
		if s == m.String() {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// AsyncConn is a bus able to start a write without waiting for it.
//
// The platform must call Dev.TxComplete with the same AsyncConn value once
// the write is over, from a goroutine other than the one calling StartTx.
// Implementations must be comparable.
type AsyncConn interface {
	StartTx(w []byte) error
}

// strategy is the transfer path selected by Init or SetMode.
type strategy interface {
	// start begins sending w. async reports that completion will be
	// delivered later through Dev.complete.
	start(w []byte) (async bool, err error)
	// owner is the identity completions are matched against.
	owner() interface{}
	close()
}

func (d *Dev) newStrategy(m Mode) (strategy, error) {
	switch m {
	case Blocking:
		return blockingTx{c: d.c}, nil
	case Interrupt:
		if d.irq != nil {
			return interruptTx{a: d.irq}, nil
		}
		return interruptTx{a: &goConn{c: d.c, d: d}}, nil
	case DMA:
		return newDMATx(d.c, d), nil
	}
	return nil, ErrUnknownMode
}

type blockingTx struct {
	c conn.Conn
}

func (s blockingTx) start(w []byte) (bool, error) { return false, s.c.Tx(w, nil) }
func (s blockingTx) owner() interface{}           { return nil }
func (s blockingTx) close()                       {}

type interruptTx struct {
	a AsyncConn
}

func (s interruptTx) start(w []byte) (bool, error) { return true, s.a.StartTx(w) }
func (s interruptTx) owner() interface{}           { return s.a }
func (s interruptTx) close()                       {}

// goConn runs a blocking Tx on its own goroutine and reports completion,
// standing in for an interrupt handler.
type goConn struct {
	c conn.Conn
	d *Dev
}

func (g *goConn) StartTx(w []byte) error {
	go func() {
		g.d.complete(g, g.c.Tx(w, nil))
	}()
	return nil
}

// dmaTx feeds a single worker goroutine. A buffer handed over stays
// borrowed until the worker reports completion.
type dmaTx struct {
	c    conn.Conn
	d    *Dev
	jobs chan []byte
	wg   sync.WaitGroup
}

func newDMATx(c conn.Conn, d *Dev) *dmaTx {
	t := &dmaTx{c: c, d: d, jobs: make(chan []byte, 1)}
	t.wg.Add(1)
	go t.run()
	return t
}

func (t *dmaTx) start(w []byte) (bool, error) {
	t.jobs <- w
	return true, nil
}

func (t *dmaTx) owner() interface{} { return t }

// close stops the worker. It must not be called while a job is in flight.
func (t *dmaTx) close() {
	close(t.jobs)
	t.wg.Wait()
}

func (t *dmaTx) run() {
	defer t.wg.Done()
	for w := range t.jobs {
		t.d.complete(t, t.tx(w))
	}
}

func (t *dmaTx) tx(w []byte) error {
	sc, ok := t.c.(spi.Conn)
	if !ok || len(w) == 0 {
		return t.c.Tx(w, nil)
	}
	return sc.TxPackets(packets(w, maxTxSize(t.c)))
}

// maxTxSize returns the bus transaction limit, 0 when there is none.
func maxTxSize(c conn.Conn) int {
	if l, ok := c.(conn.Limits); ok {
		return l.MaxTxSize()
	}
	return 0
}

// packets splits w into chunks of at most size bytes, keeping chip select
// asserted between them.
func packets(w []byte, size int) []spi.Packet {
	if len(w) == 0 {
		return nil
	}
	if size <= 0 || size > len(w) {
		size = len(w)
	}
	p := make([]spi.Packet, 0, (len(w)+size-1)/size)
	for len(w) > 0 {
		n := size
		if n > len(w) {
			n = len(w)
		}
		p = append(p, spi.Packet{W: w[:n], KeepCS: n < len(w)})
		w = w[n:]
	}
	return p
}
