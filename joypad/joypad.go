// Package joypad emulates the Game Boy's input register (JOYP /
// 0xFF00). The host never writes JOYP bits directly; it pushes
// abstract button press/release events drained by ProcessInputs.
package joypad

import (
	"github.com/kdean/dmgboy/bits"
	"github.com/kdean/dmgboy/interrupt"
	"github.com/kdean/dmgboy/state"
)

// Button identifies a physical Game Boy button. The low nibble tracks
// the action buttons, the high nibble the d-pad, matching the two
// halves JOYP multiplexes between.
type Button uint8

const (
	A      Button = 0x01
	B      Button = 0x02
	Select Button = 0x04
	Start  Button = 0x08
	Right  Button = 0x10
	Left   Button = 0x20
	Up     Button = 0x40
	Down   Button = 0x80
)

// Controller tracks pressed-button state and the JOYP select bits.
type Controller struct {
	selectBits uint8 // bits 4-5 as last written; 0 = group selected
	pressed    uint8 // bitmask of currently-held buttons

	irq *interrupt.Controller
}

// New returns a Controller with no buttons held.
func New(irq *interrupt.Controller) *Controller {
	return &Controller{selectBits: 0x30, irq: irq}
}

// Read returns the JOYP register as seen by the CPU: bits 6-7 always
// read 1, the selected half's bits read active-low, the unselected
// half's bits read 1.
func (c *Controller) Read() uint8 {
	v := uint8(0xC0) | c.selectBits
	if !bits.Test(c.selectBits, 5) { // action buttons selected
		v |= 0x0F &^ (c.pressed & 0x0F)
	} else if !bits.Test(c.selectBits, 4) { // d-pad selected
		v |= 0x0F &^ (c.pressed >> 4)
	} else {
		v |= 0x0F
	}
	return v
}

// Write updates the JOYP select bits (4-5); the lower nibble is
// read-only to the CPU and ignored here.
func (c *Controller) Write(v uint8) {
	c.selectBits = v & 0x30
}

// Press marks button as held and raises the Joypad interrupt if the
// button's group is currently selected and it was not already held.
func (c *Controller) Press(b Button) {
	wasHeld := c.pressed&uint8(b) != 0
	c.pressed |= uint8(b)
	if wasHeld {
		return
	}
	isDpad := b >= Right
	if isDpad && !bits.Test(c.selectBits, 4) {
		c.irq.Request(interrupt.Joypad)
	} else if !isDpad && !bits.Test(c.selectBits, 5) {
		c.irq.Request(interrupt.Joypad)
	}
}

// Release marks button as released.
func (c *Controller) Release(b Button) {
	c.pressed &^= uint8(b)
}

// Inputs is a batch of button press/release events drained by the
// host once per step; the core never calls back into host code.
type Inputs struct {
	Pressed  []Button
	Released []Button
}

// ProcessInputs applies a batch of input events.
func (c *Controller) ProcessInputs(in Inputs) {
	for _, b := range in.Pressed {
		c.Press(b)
	}
	for _, b := range in.Released {
		c.Release(b)
	}
}

var _ state.Stater = (*Controller)(nil)

func (c *Controller) Save(s *state.State) {
	s.Write8(c.selectBits)
	s.Write8(c.pressed)
}

func (c *Controller) Load(s *state.State) {
	c.selectBits = s.Read8()
	c.pressed = s.Read8()
}
