package pcd8544

import (
	"math"
	"testing"

	"github.com/flavioheleno/pcd8544/framebuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
)

func TestContrastToVop(t *testing.T) {
	tests := []struct {
		percent float64
		want    byte
		ok      bool
	}{
		{0, 0, true},
		{40, 51, true},
		{50, 64, true},
		{100, 127, true},
		{-0.1, 0, false},
		{100.1, 0, false},
		{math.NaN(), 0, false},
		{math.Inf(1), 0, false},
	}
	for _, tt := range tests {
		got, ok := contrastToVop(tt.percent)
		assert.Equal(t, tt.ok, ok, "contrastToVop(%v)", tt.percent)
		if tt.ok {
			assert.Equal(t, tt.want, got, "contrastToVop(%v)", tt.percent)
		}
	}

	prev := byte(0)
	for p := 0.0; p <= 100; p += 0.5 {
		v, ok := contrastToVop(p)
		require.True(t, ok)
		require.GreaterOrEqual(t, v, prev, "Vop decreases at %v%%", p)
		require.LessOrEqual(t, v, byte(maxVop))
		prev = v
	}
}

func TestSetContrast(t *testing.T) {
	r := newRig(t, nil)
	dev := r.ready(t, Blocking)

	require.NoError(t, dev.SetContrast(100))
	assert.Equal(t, cmdWrite(0x21, 0xFF, 0x20), r.tr.get())
	assert.Equal(t, 100.0, dev.Contrast())

	r.tr.reset()
	assert.Equal(t, ErrInvalidContrastPercentage, dev.SetContrast(101))
	assert.Equal(t, ErrInvalidContrastPercentage, dev.SetContrast(-5))
	assert.Equal(t, 100.0, dev.Contrast(), "rejected value is not kept")
	assert.Empty(t, r.tr.get())

	// The new value survives Init
	r.tr.reset()
	require.NoError(t, dev.Init(Blocking))
	assert.Equal(t, tx(0xFF), r.tr.get()[6])
}

func TestSetTempCoefficient(t *testing.T) {
	r := newRig(t, nil)
	dev := r.ready(t, Blocking)

	for tc := TempCoefficient0; tc <= TempCoefficient3; tc++ {
		r.tr.reset()
		require.NoError(t, dev.SetTempCoefficient(tc))
		assert.Equal(t, cmdWrite(0x21, 0x04|byte(tc), 0x20), r.tr.get())
	}

	r.tr.reset()
	assert.Equal(t, ErrInvalidTempCoefficient, dev.SetTempCoefficient(4))
	assert.Equal(t, ErrInvalidTempCoefficient, dev.LastError())
	assert.Empty(t, r.tr.get())
}

func TestSetBias(t *testing.T) {
	r := newRig(t, nil)
	dev := r.ready(t, Blocking)

	for b := uint8(0); b <= 7; b++ {
		r.tr.reset()
		require.NoError(t, dev.SetBias(b))
		assert.Equal(t, cmdWrite(0x21, 0x10|b, 0x20), r.tr.get())
	}

	r.tr.reset()
	assert.Equal(t, ErrInvalidBiasLevel, dev.SetBias(8))
	assert.Empty(t, r.tr.get())
}

func TestInvert(t *testing.T) {
	r := newRig(t, nil)
	dev := r.ready(t, Blocking)

	require.NoError(t, dev.Invert(true))
	assert.True(t, dev.Inverted())
	require.NoError(t, dev.Invert(false))
	assert.False(t, dev.Inverted())

	want := append(cmdWrite(0x0D), cmdWrite(0x0C)...)
	assert.Equal(t, want, r.tr.get())
	// Inversion is a controller setting; the frame is untouched
	assert.Equal(t, framebuf.Frame{}, dev.Frame())
}

func TestSleepWakeUp(t *testing.T) {
	r := newRig(t, &Opts{Contrast: 40, Bias: 4, Inverted: true})
	dev := r.ready(t, Blocking)
	require.NoError(t, dev.DrawRect(0, 0, 10, 10))

	r.tr.reset()
	require.NoError(t, dev.Sleep())
	assert.Equal(t, StateAsleep, dev.State())
	assert.Equal(t, framebuf.Frame{}, dev.Frame(), "the screen is blanked before sleeping")
	want := []op{
		lvl("ce", gpio.Low),
		lvl("dc", gpio.High),
		tx(make([]byte, framebuf.Size)...),
		lvl("dc", gpio.Low),
		tx(0x24),
		lvl("ce", gpio.High),
	}
	assert.Equal(t, want, r.tr.get())

	// Asleep, only WakeUp, Init and Halt are accepted
	assert.ErrorIs(t, dev.Clear(), ErrNotReady)
	assert.ErrorIs(t, dev.SetContrast(10), ErrNotReady)
	assert.ErrorIs(t, dev.Sleep(), ErrNotReady)

	r.tr.reset()
	require.NoError(t, dev.WakeUp())
	assert.Equal(t, StateReady, dev.State())
	assert.Equal(t, cmdWrite(0x20, 0x0D), r.tr.get())

	assert.ErrorIs(t, dev.WakeUp(), ErrNotAsleep)
}

func TestSleepFailure(t *testing.T) {
	r := newRig(t, nil)
	dev := r.ready(t, Blocking)

	r.bus.setErr(errBus)
	err := dev.Sleep()
	assert.ErrorIs(t, err, errBus)
	assert.Equal(t, StateError, dev.State())

	r.bus.setErr(nil)
	require.NoError(t, dev.Init(Blocking))
	require.NoError(t, dev.Sleep())
	r.bus.setErr(errBus)
	assert.ErrorIs(t, dev.WakeUp(), errBus)
	assert.Equal(t, StateError, dev.State())
}

func TestHaltWhileAsleep(t *testing.T) {
	r := newRig(t, nil)
	dev := r.ready(t, Interrupt)
	require.NoError(t, dev.Sleep())

	r.tr.reset()
	require.NoError(t, dev.Halt())
	assert.Equal(t, StateReset, dev.State())
	assert.Empty(t, r.tr.get(), "already powered down")
}

func TestSettersAsync(t *testing.T) {
	r := newRig(t, nil)
	dev := r.ready(t, Interrupt)

	require.NoError(t, dev.SetBias(2))
	assert.Equal(t, StateBusy, dev.State())
	assert.Equal(t, []op{
		lvl("ce", gpio.Low),
		lvl("dc", gpio.Low),
		{what: "start", w: []byte{0x21, 0x12, 0x20}},
	}, r.tr.get())
	assert.ErrorIs(t, dev.SetBias(3), ErrBusy)

	dev.TxComplete(r.irq)
	assert.Equal(t, StateReady, dev.State())
}
