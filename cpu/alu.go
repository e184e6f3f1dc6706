package cpu

import "github.com/kdean/dmgboy/bits"
import "github.com/kdean/dmgboy/register"

// aluOp applies one of the eight ALU operations (ADD, ADC, SUB, SBC,
// AND, XOR, OR, CP) encoded in opcode bits 3-5 to A and v.
func (c *CPU) aluOp(op uint8, v uint8) {
	switch op {
	case 0:
		c.add(v)
	case 1:
		c.adc(v)
	case 2:
		c.sub(v)
	case 3:
		c.sbc(v)
	case 4:
		c.and(v)
	case 5:
		c.xor(v)
	case 6:
		c.or(v)
	case 7:
		c.cp(v)
	}
}

func (c *CPU) add(v uint8) {
	a := c.reg.A
	result := a + v
	c.reg.A = result
	c.reg.SetFlag(register.FlagZ, result == 0)
	c.reg.SetFlag(register.FlagN, false)
	c.reg.SetFlag(register.FlagH, bits.HalfCarryAdd8(a, v, 0))
	c.reg.SetFlag(register.FlagC, bits.CarryAdd8(a, v, 0))
}

func (c *CPU) adc(v uint8) {
	a := c.reg.A
	carry := uint8(0)
	if c.reg.Flag(register.FlagC) {
		carry = 1
	}
	result := a + v + carry
	c.reg.A = result
	c.reg.SetFlag(register.FlagZ, result == 0)
	c.reg.SetFlag(register.FlagN, false)
	c.reg.SetFlag(register.FlagH, bits.HalfCarryAdd8(a, v, carry))
	c.reg.SetFlag(register.FlagC, bits.CarryAdd8(a, v, carry))
}

func (c *CPU) sub(v uint8) {
	a := c.reg.A
	result := a - v
	c.reg.A = result
	c.reg.SetFlag(register.FlagZ, result == 0)
	c.reg.SetFlag(register.FlagN, true)
	c.reg.SetFlag(register.FlagH, bits.HalfCarrySub8(a, v, 0))
	c.reg.SetFlag(register.FlagC, bits.CarrySub8(a, v, 0))
}

func (c *CPU) sbc(v uint8) {
	a := c.reg.A
	carry := uint8(0)
	if c.reg.Flag(register.FlagC) {
		carry = 1
	}
	result := a - v - carry
	c.reg.A = result
	c.reg.SetFlag(register.FlagZ, result == 0)
	c.reg.SetFlag(register.FlagN, true)
	c.reg.SetFlag(register.FlagH, bits.HalfCarrySub8(a, v, carry))
	c.reg.SetFlag(register.FlagC, bits.CarrySub8(a, v, carry))
}

func (c *CPU) and(v uint8) {
	c.reg.A &= v
	c.reg.SetFlag(register.FlagZ, c.reg.A == 0)
	c.reg.SetFlag(register.FlagN, false)
	c.reg.SetFlag(register.FlagH, true)
	c.reg.SetFlag(register.FlagC, false)
}

func (c *CPU) xor(v uint8) {
	c.reg.A ^= v
	c.reg.SetFlag(register.FlagZ, c.reg.A == 0)
	c.reg.SetFlag(register.FlagN, false)
	c.reg.SetFlag(register.FlagH, false)
	c.reg.SetFlag(register.FlagC, false)
}

func (c *CPU) or(v uint8) {
	c.reg.A |= v
	c.reg.SetFlag(register.FlagZ, c.reg.A == 0)
	c.reg.SetFlag(register.FlagN, false)
	c.reg.SetFlag(register.FlagH, false)
	c.reg.SetFlag(register.FlagC, false)
}

func (c *CPU) cp(v uint8) {
	a := c.reg.A
	result := a - v
	c.reg.SetFlag(register.FlagZ, result == 0)
	c.reg.SetFlag(register.FlagN, true)
	c.reg.SetFlag(register.FlagH, bits.HalfCarrySub8(a, v, 0))
	c.reg.SetFlag(register.FlagC, bits.CarrySub8(a, v, 0))
}

func (c *CPU) inc8(v uint8) uint8 {
	result := v + 1
	c.reg.SetFlag(register.FlagZ, result == 0)
	c.reg.SetFlag(register.FlagN, false)
	c.reg.SetFlag(register.FlagH, bits.HalfCarryAdd8(v, 1, 0))
	return result
}

func (c *CPU) dec8(v uint8) uint8 {
	result := v - 1
	c.reg.SetFlag(register.FlagZ, result == 0)
	c.reg.SetFlag(register.FlagN, true)
	c.reg.SetFlag(register.FlagH, bits.HalfCarrySub8(v, 1, 0))
	return result
}

// addHL implements ADD HL,rr: 16-bit add affecting N/H/C but not Z.
func (c *CPU) addHL(v uint16) {
	hl := c.reg.HL()
	result := hl + v
	c.reg.SetHL(result)
	c.reg.SetFlag(register.FlagN, false)
	c.reg.SetFlag(register.FlagH, bits.HalfCarryAdd16(hl, v))
	c.reg.SetFlag(register.FlagC, bits.CarryAdd16(hl, v))
}

// addSPSigned implements the shared SP+e8 arithmetic used by both
// ADD SP,e8 and LD HL,SP+e8: flags are computed on the low byte as if
// it were an 8-bit add, per hardware behavior.
func (c *CPU) addSPSigned(e int8) uint16 {
	sp := c.reg.SP
	v := uint16(int32(sp) + int32(e))
	c.reg.SetFlag(register.FlagZ, false)
	c.reg.SetFlag(register.FlagN, false)
	c.reg.SetFlag(register.FlagH, bits.HalfCarryAdd8(uint8(sp), uint8(e), 0))
	c.reg.SetFlag(register.FlagC, bits.CarryAdd8(uint8(sp), uint8(e), 0))
	return v
}

// daa implements Decimal Adjust Accumulator after a BCD add/sub.
func (c *CPU) daa() {
	a := c.reg.A
	adjust := uint8(0)
	carry := c.reg.Flag(register.FlagC) // N branch preserves the incoming carry
	if c.reg.Flag(register.FlagN) {
		if c.reg.Flag(register.FlagH) {
			adjust |= 0x06
		}
		if c.reg.Flag(register.FlagC) {
			adjust |= 0x60
		}
		a -= adjust
	} else {
		if c.reg.Flag(register.FlagH) || a&0x0F > 0x09 {
			adjust |= 0x06
		}
		if c.reg.Flag(register.FlagC) || a > 0x99 {
			adjust |= 0x60
			carry = true
		}
		a += adjust
	}
	c.reg.A = a
	c.reg.SetFlag(register.FlagZ, a == 0)
	c.reg.SetFlag(register.FlagH, false)
	c.reg.SetFlag(register.FlagC, carry)
}
