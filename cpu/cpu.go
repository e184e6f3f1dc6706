// Package cpu implements the Sharp LR35902 instruction set: fetch,
// decode, and execute, plus interrupt dispatch and the HALT/STOP/EI
// timing quirks spec.md §4.4 calls out.
package cpu

import (
	"fmt"

	"github.com/kdean/dmgboy/interrupt"
	"github.com/kdean/dmgboy/log"
	"github.com/kdean/dmgboy/register"
	"github.com/kdean/dmgboy/state"
)

// Bus is the memory interface the CPU executes against; the memory
// map is the only implementation.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// IllegalOpcode is returned instead of panicking when Step decodes one
// of the eleven byte values the LR35902 never defines, per spec.md §7.
type IllegalOpcode struct {
	Opcode uint8
	PC     uint16
}

func (e *IllegalOpcode) Error() string {
	return fmt.Sprintf("illegal opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

// CPU is the Sharp LR35902 core.
type CPU struct {
	reg register.File
	bus Bus
	irq *interrupt.Controller
	log log.Logger

	halted  bool
	stopped bool

	// imeDelay implements EI's one-instruction latency. EI arms it to
	// 2; each Step decrements it and IME only goes true once it
	// reaches 0, which happens at the start of the Step *two* calls
	// after the one containing EI - i.e. after the instruction
	// immediately following EI has already fetched and executed, per
	// spec.md §4.4.
	imeDelay uint8
}

// New returns a CPU in its post-boot register state (spec.md §4.1).
func New(bus Bus, irq *interrupt.Controller, logger log.Logger) *CPU {
	if logger == nil {
		logger = log.Null()
	}
	c := &CPU{bus: bus, irq: irq, log: logger}
	c.reg.Reset()
	return c
}

// Registers exposes the register file, mainly for debuggers and tests.
func (c *CPU) Registers() *register.File { return &c.reg }

// Halted reports whether the CPU is currently in HALT.
func (c *CPU) Halted() bool { return c.halted }

// Step executes exactly one instruction (or one HALT/STOP tick, or one
// interrupt dispatch) and returns the number of T-cycles it took.
func (c *CPU) Step() (uint8, error) {
	if c.imeDelay > 0 {
		c.imeDelay--
		if c.imeDelay == 0 {
			c.irq.IME = true
		}
	}

	if c.halted {
		if _, ok := c.irq.Next(); ok {
			c.halted = false
		} else {
			return 4, nil
		}
	}

	if c.irq.IME {
		if k, ok := c.irq.Next(); ok {
			return c.serviceInterrupt(k), nil
		}
	}

	if c.stopped {
		// A full low-power STOP exits only on a joypad edge; this core
		// resumes on the next Step, which is sufficient fidelity for a
		// core with no real low-power state to emulate.
		c.stopped = false
		return 4, nil
	}

	pc := c.reg.PC
	opcode := c.fetch8()
	if opcode == 0xCB {
		cbOpcode := c.fetch8()
		return cbOpcodes[cbOpcode](c), nil
	}
	fn := opcodes[opcode]
	if fn == nil {
		return 0, &IllegalOpcode{Opcode: opcode, PC: pc}
	}
	return fn(c), nil
}

func (c *CPU) serviceInterrupt(k interrupt.Kind) uint8 {
	c.irq.IME = false
	c.irq.Clear(k)
	c.push16(c.reg.PC)
	c.reg.PC = k.Vector()
	return 20
}

func (c *CPU) fetch8() uint8 {
	v := c.bus.Read(c.reg.PC)
	c.reg.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) push16(v uint16) {
	c.reg.SP--
	c.bus.Write(c.reg.SP, uint8(v>>8))
	c.reg.SP--
	c.bus.Write(c.reg.SP, uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := c.bus.Read(c.reg.SP)
	c.reg.SP++
	hi := c.bus.Read(c.reg.SP)
	c.reg.SP++
	return uint16(hi)<<8 | uint16(lo)
}

var _ state.Stater = (*CPU)(nil)

func (c *CPU) Save(s *state.State) {
	c.reg.Save(s)
	s.WriteBool(c.halted)
	s.WriteBool(c.stopped)
	s.Write8(c.imeDelay)
}

func (c *CPU) Load(s *state.State) {
	c.reg.Load(s)
	c.halted = s.ReadBool()
	c.stopped = s.ReadBool()
	c.imeDelay = s.Read8()
}
