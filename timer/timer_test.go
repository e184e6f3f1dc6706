package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kdean/dmgboy/interrupt"
	"github.com/kdean/dmgboy/state"
)

func TestReadDIVIncrementsWithClock(t *testing.T) {
	irq := interrupt.New()
	c := New(irq)
	c.WriteDIV() // reset the internal divider to a known 0
	start := c.ReadDIV()

	c.Tick(255)
	assert.Equal(t, start, c.ReadDIV(), "DIV only visibly changes once the internal 16-bit divider crosses a 256-cycle boundary")

	c.Tick(1)
	assert.NotEqual(t, start, c.ReadDIV())
}

func TestWriteDIVResets(t *testing.T) {
	irq := interrupt.New()
	c := New(irq)
	c.Tick(1000)
	c.WriteDIV()
	assert.Equal(t, uint8(0), c.ReadDIV())
}

func TestTIMAOverflowRequestsInterruptAfterDelay(t *testing.T) {
	irq := interrupt.New()
	c := New(irq)
	c.WriteDIV() // start from a known div=0 so the falling edge lands exactly on tick 16
	c.WriteTAC(0x05) // enabled, mode 1 -> bit 3, one rising+falling cycle every 16 ticks
	c.WriteTIMA(0xFF)
	c.WriteTMA(0x42)
	irq.Flag = 0

	c.Tick(16) // one falling edge: TIMA wraps to 0, overflow latches
	assert.Equal(t, uint8(0), c.ReadTIMA())
	_, pending := irq.Next()
	assert.False(t, pending, "the TMA reload and interrupt are delayed by 4 cycles")

	c.Tick(4)
	assert.Equal(t, uint8(0x42), c.ReadTIMA())
	k, pending := irq.Next()
	assert.True(t, pending)
	assert.Equal(t, interrupt.Timer, k)
}

func TestWriteTIMADuringReloadIsIgnored(t *testing.T) {
	irq := interrupt.New()
	c := New(irq)
	c.WriteDIV()
	c.WriteTAC(0x05)
	c.WriteTIMA(0xFF)
	c.WriteTMA(0x10)
	c.Tick(16)

	c.WriteTIMA(0x99)
	assert.Equal(t, uint8(0), c.ReadTIMA(), "a write during the pending-reload window is dropped")
}

func TestReadTACUnusedBitsReadHigh(t *testing.T) {
	irq := interrupt.New()
	c := New(irq)
	c.WriteTAC(0x00)
	assert.Equal(t, uint8(0xF8), c.ReadTAC())
	c.WriteTAC(0x07)
	assert.Equal(t, uint8(0xFF), c.ReadTAC())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	irq := interrupt.New()
	c := New(irq)
	c.WriteTAC(0x05)
	c.Tick(100)

	s := state.New()
	c.Save(s)

	c2 := New(irq)
	c2.Load(state.FromBytes(s.Bytes()))

	assert.Equal(t, c.ReadDIV(), c2.ReadDIV())
	assert.Equal(t, c.ReadTIMA(), c2.ReadTIMA())
	assert.Equal(t, c.ReadTAC(), c2.ReadTAC())
}
