// Package timer implements DIV/TIMA/TMA/TAC: the free-running divider
// and the falling-edge-triggered timer counter, per spec.md §4.7.
package timer

import (
	"github.com/kdean/dmgboy/interrupt"
	"github.com/kdean/dmgboy/state"
)

// Register addresses this package answers for, forwarded to it by
// the memory map (spec.md §6).
const (
	AddrDIV  = 0xFF04
	AddrTIMA = 0xFF05
	AddrTMA  = 0xFF06
	AddrTAC  = 0xFF07
)

// selectedBit maps a TAC mode (0-3) to the bit of the internal divider
// that gates TIMA increments.
var selectedBit = [4]uint8{9, 3, 5, 7}

// Controller is the DIV/TIMA/TMA/TAC timer.
type Controller struct {
	div     uint16 // internal 16-bit divider; DIV register is div>>8
	tima    uint8
	tma     uint8
	enabled bool
	mode    uint8 // TAC bits 0-1

	overflowDelay uint8 // 0..4, counts down to a TIMA reload

	irq *interrupt.Controller

	lastSelectedBit bool // previous selected-bit value, for edge detection
}

// New returns a Controller in its post-boot state (TAC = 0xF8).
func New(irq *interrupt.Controller) *Controller {
	c := &Controller{irq: irq, div: 0xABCC, mode: 0}
	c.lastSelectedBit = c.div&(1<<selectedBit[c.mode]) != 0 && c.enabled
	return c
}

// Tick advances the timer by cycles T-cycles.
func (c *Controller) Tick(cycles uint8) {
	for i := uint8(0); i < cycles; i++ {
		c.tickOne()
	}
}

func (c *Controller) tickOne() {
	if c.overflowDelay > 0 {
		c.overflowDelay--
		if c.overflowDelay == 0 {
			c.tima = c.tma
			c.irq.Request(interrupt.Timer)
		}
	}

	c.div++
	c.updateEdge()
}

// updateEdge re-evaluates the selected bit and increments TIMA on a
// 1->0 transition, matching the falling-edge detector real DMG
// hardware implements via an AND gate on the divider.
func (c *Controller) updateEdge() {
	bit := c.enabled && c.div&(1<<selectedBit[c.mode]) != 0
	if c.lastSelectedBit && !bit {
		c.incrementTIMA()
	}
	c.lastSelectedBit = bit
}

func (c *Controller) incrementTIMA() {
	c.tima++
	if c.tima == 0 {
		c.tima = 0
		c.overflowDelay = 4
	}
}

// ReadDIV returns the upper 8 bits of the internal divider.
func (c *Controller) ReadDIV() uint8 {
	return uint8(c.div >> 8)
}

// WriteDIV resets the internal divider to 0, which may itself trigger
// a spurious TIMA increment via the falling-edge rule if the selected
// bit was set.
func (c *Controller) WriteDIV() {
	c.div = 0
	c.updateEdge()
}

// ReadTIMA returns TIMA.
func (c *Controller) ReadTIMA() uint8 { return c.tima }

// WriteTIMA writes TIMA, unless a reload is in progress this cycle
// (the write is then ignored, per spec.md §4.7/§6).
func (c *Controller) WriteTIMA(v uint8) {
	if c.overflowDelay > 0 {
		return
	}
	c.tima = v
}

// ReadTMA returns TMA.
func (c *Controller) ReadTMA() uint8 { return c.tma }

// WriteTMA writes TMA. If a reload is in progress this cycle, TIMA is
// updated to the new value too.
func (c *Controller) WriteTMA(v uint8) {
	c.tma = v
	if c.overflowDelay > 0 {
		c.tima = v
	}
}

// ReadTAC returns TAC with the unused upper bits reading 1.
func (c *Controller) ReadTAC() uint8 {
	v := c.mode & 0x03
	if c.enabled {
		v |= 0x04
	}
	return v | 0xF8
}

// WriteTAC updates mode/enabled. A 1->0 transition of the (possibly
// newly selected) bit triggers the same falling-edge increment as a
// DIV reset would.
func (c *Controller) WriteTAC(v uint8) {
	c.mode = v & 0x03
	c.enabled = v&0x04 != 0
	c.updateEdge()
}

var _ state.Stater = (*Controller)(nil)

func (c *Controller) Save(s *state.State) {
	s.Write16(c.div)
	s.Write8(c.tima)
	s.Write8(c.tma)
	s.Write8(c.mode)
	s.WriteBool(c.enabled)
	s.Write8(c.overflowDelay)
	s.WriteBool(c.lastSelectedBit)
}

func (c *Controller) Load(s *state.State) {
	c.div = s.Read16()
	c.tima = s.Read8()
	c.tma = s.Read8()
	c.mode = s.Read8()
	c.enabled = s.ReadBool()
	c.overflowDelay = s.Read8()
	c.lastSelectedBit = s.ReadBool()
}
