package cpu

import "github.com/kdean/dmgboy/register"

// The four non-prefixed rotates (RLCA/RRCA/RLA/RRA) apply to A only
// and always clear Z, unlike their 0xCB-prefixed counterparts which
// set Z from the result.

func (c *CPU) rlca() {
	v := c.reg.A
	carry := v&0x80 != 0
	v = v<<1 | v>>7
	c.reg.A = v
	c.reg.SetFlag(register.FlagZ, false)
	c.reg.SetFlag(register.FlagN, false)
	c.reg.SetFlag(register.FlagH, false)
	c.reg.SetFlag(register.FlagC, carry)
}

func (c *CPU) rrca() {
	v := c.reg.A
	carry := v&0x01 != 0
	v = v>>1 | v<<7
	c.reg.A = v
	c.reg.SetFlag(register.FlagZ, false)
	c.reg.SetFlag(register.FlagN, false)
	c.reg.SetFlag(register.FlagH, false)
	c.reg.SetFlag(register.FlagC, carry)
}

func (c *CPU) rla() {
	v := c.reg.A
	oldCarry := uint8(0)
	if c.reg.Flag(register.FlagC) {
		oldCarry = 1
	}
	carry := v&0x80 != 0
	v = v<<1 | oldCarry
	c.reg.A = v
	c.reg.SetFlag(register.FlagZ, false)
	c.reg.SetFlag(register.FlagN, false)
	c.reg.SetFlag(register.FlagH, false)
	c.reg.SetFlag(register.FlagC, carry)
}

func (c *CPU) rra() {
	v := c.reg.A
	oldCarry := uint8(0)
	if c.reg.Flag(register.FlagC) {
		oldCarry = 0x80
	}
	carry := v&0x01 != 0
	v = v>>1 | oldCarry
	c.reg.A = v
	c.reg.SetFlag(register.FlagZ, false)
	c.reg.SetFlag(register.FlagN, false)
	c.reg.SetFlag(register.FlagH, false)
	c.reg.SetFlag(register.FlagC, carry)
}

// The eight 0xCB-prefixed rotate/shift operations all set Z from the
// result, unlike the non-prefixed accumulator-only forms above.

func (c *CPU) rlc(v uint8) uint8 {
	carry := v&0x80 != 0
	result := v<<1 | v>>7
	c.setShiftFlags(result, carry)
	return result
}

func (c *CPU) rrc(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v>>1 | v<<7
	c.setShiftFlags(result, carry)
	return result
}

func (c *CPU) rl(v uint8) uint8 {
	oldCarry := uint8(0)
	if c.reg.Flag(register.FlagC) {
		oldCarry = 1
	}
	carry := v&0x80 != 0
	result := v<<1 | oldCarry
	c.setShiftFlags(result, carry)
	return result
}

func (c *CPU) rr(v uint8) uint8 {
	oldCarry := uint8(0)
	if c.reg.Flag(register.FlagC) {
		oldCarry = 0x80
	}
	carry := v&0x01 != 0
	result := v>>1 | oldCarry
	c.setShiftFlags(result, carry)
	return result
}

func (c *CPU) sla(v uint8) uint8 {
	carry := v&0x80 != 0
	result := v << 1
	c.setShiftFlags(result, carry)
	return result
}

// sra shifts right, keeping bit 7 unchanged (arithmetic shift).
func (c *CPU) sra(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v&0x80 | v>>1
	c.setShiftFlags(result, carry)
	return result
}

func (c *CPU) srl(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v >> 1
	c.setShiftFlags(result, carry)
	return result
}

// swap exchanges the nibbles of v; the carry flag is always cleared.
func (c *CPU) swap(v uint8) uint8 {
	result := v<<4 | v>>4
	c.reg.SetFlag(register.FlagZ, result == 0)
	c.reg.SetFlag(register.FlagN, false)
	c.reg.SetFlag(register.FlagH, false)
	c.reg.SetFlag(register.FlagC, false)
	return result
}

func (c *CPU) setShiftFlags(result uint8, carry bool) {
	c.reg.SetFlag(register.FlagZ, result == 0)
	c.reg.SetFlag(register.FlagN, false)
	c.reg.SetFlag(register.FlagH, false)
	c.reg.SetFlag(register.FlagC, carry)
}

// bit tests bit n of v: Z = the complement of the bit, N=0, H=1, C
// unchanged.
func (c *CPU) bit(n, v uint8) {
	c.reg.SetFlag(register.FlagZ, v&(1<<n) == 0)
	c.reg.SetFlag(register.FlagN, false)
	c.reg.SetFlag(register.FlagH, true)
}

// res clears bit n of v; no flags affected.
func (c *CPU) res(n, v uint8) uint8 {
	return v &^ (1 << n)
}

// set sets bit n of v; no flags affected.
func (c *CPU) set(n, v uint8) uint8 {
	return v | (1 << n)
}
