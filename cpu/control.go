package cpu

// jr implements the unconditional and conditional relative jump
// shared by JR e and JR cc,e: the signed displacement is always read
// (and PC advanced past it) regardless of whether the branch taken.
func (c *CPU) jr(taken bool) uint8 {
	e := int8(c.fetch8())
	if !taken {
		return 8
	}
	c.reg.PC = uint16(int32(c.reg.PC) + int32(e))
	return 12
}

func (c *CPU) jp(taken bool) uint8 {
	nn := c.fetch16()
	if !taken {
		return 12
	}
	c.reg.PC = nn
	return 16
}

func (c *CPU) call(taken bool) uint8 {
	nn := c.fetch16()
	if !taken {
		return 12
	}
	c.push16(c.reg.PC)
	c.reg.PC = nn
	return 24
}

func (c *CPU) ret(taken bool) uint8 {
	if !taken {
		return 8
	}
	c.reg.PC = c.pop16()
	return 20
}

func (c *CPU) rst(addr uint16) uint8 {
	c.push16(c.reg.PC)
	c.reg.PC = addr
	return 16
}

// execHALT enters HALT. Per spec.md §9's Open Question, the HALT bug
// (PC failing to advance past the following byte when HALT is
// entered with IME=0 and an interrupt already pending) is NOT
// emulated: HALT always suspends fetch/decode cleanly and the
// instruction after it executes exactly once, matching the simpler
// of the two documented choices.
func (c *CPU) execHALT() uint8 {
	c.halted = true
	return 4
}

func (c *CPU) execSTOP() uint8 {
	c.fetch8() // STOP is followed by a padding byte, conventionally 0x00.
	c.stopped = true
	return 4
}

func (c *CPU) execDI() uint8 {
	c.irq.IME = false
	c.imeDelay = 0
	return 4
}

// execEI arms imeDelay rather than setting IME directly: IME only
// goes true once the instruction immediately following EI has
// already executed (spec.md §4.4).
func (c *CPU) execEI() uint8 {
	c.imeDelay = 2
	return 4
}
