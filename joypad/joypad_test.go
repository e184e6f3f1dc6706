package joypad

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kdean/dmgboy/interrupt"
	"github.com/kdean/dmgboy/state"
)

func TestReadNoButtonsHeld(t *testing.T) {
	c := New(interrupt.New())
	assert.Equal(t, uint8(0xFF), c.Read())
}

func TestReadActionButtonsSelected(t *testing.T) {
	c := New(interrupt.New())
	c.Write(0x10) // select action buttons (bit 5 low selects them)
	c.Press(A)
	assert.Equal(t, uint8(0xDE), c.Read())
}

func TestReadDpadSelected(t *testing.T) {
	c := New(interrupt.New())
	c.Write(0x20) // select d-pad (bit 4 low)
	c.Press(Right)
	assert.Equal(t, uint8(0xEE), c.Read())
}

func TestPressRequestsInterruptOnlyWhenGroupSelected(t *testing.T) {
	irq := interrupt.New()
	irq.WriteIE(0xFF)
	c := New(irq)
	irq.Flag = 0

	c.Write(0x20) // only d-pad selected
	c.Press(A)    // action button, not selected
	_, pending := irq.Next()
	assert.False(t, pending)

	c.Press(Up) // d-pad button, selected
	_, pending = irq.Next()
	assert.True(t, pending)
}

func TestReleaseClearsHeldBit(t *testing.T) {
	c := New(interrupt.New())
	c.Write(0x10)
	c.Press(A)
	c.Release(A)
	assert.Equal(t, uint8(0xDF), c.Read())
}

func TestProcessInputsBatch(t *testing.T) {
	c := New(interrupt.New())
	c.Write(0x10)
	c.ProcessInputs(Inputs{Pressed: []Button{A, B}, Released: nil})
	assert.Equal(t, uint8(0xDC), c.Read())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := New(interrupt.New())
	c.Write(0x10)
	c.Press(A)

	s := state.New()
	c.Save(s)

	c2 := New(interrupt.New())
	c2.Load(state.FromBytes(s.Bytes()))
	assert.Equal(t, c.Read(), c2.Read())
}
