package cpu

import "github.com/kdean/dmgboy/register"

// getR8/setR8 address the eight 3-bit register-field encodings shared
// by LD r,r', the ALU block, and INC/DEC r: B,C,D,E,H,L,(HL),A.
func (c *CPU) getR8(i uint8) uint8 {
	switch i {
	case 0:
		return c.reg.B
	case 1:
		return c.reg.C
	case 2:
		return c.reg.D
	case 3:
		return c.reg.E
	case 4:
		return c.reg.H
	case 5:
		return c.reg.L
	case 6:
		return c.bus.Read(c.reg.HL())
	default:
		return c.reg.A
	}
}

func (c *CPU) setR8(i uint8, v uint8) {
	switch i {
	case 0:
		c.reg.B = v
	case 1:
		c.reg.C = v
	case 2:
		c.reg.D = v
	case 3:
		c.reg.E = v
	case 4:
		c.reg.H = v
	case 5:
		c.reg.L = v
	case 6:
		c.bus.Write(c.reg.HL(), v)
	default:
		c.reg.A = v
	}
}

// getRP/setRP address the four 2-bit register-pair encodings used by
// LD rr,nn, INC/DEC rr, and ADD HL,rr: BC,DE,HL,SP.
func (c *CPU) getRP(i uint8) uint16 {
	switch i {
	case 0:
		return c.reg.BC()
	case 1:
		return c.reg.DE()
	case 2:
		return c.reg.HL()
	default:
		return c.reg.SP
	}
}

func (c *CPU) setRP(i uint8, v uint16) {
	switch i {
	case 0:
		c.reg.SetBC(v)
	case 1:
		c.reg.SetDE(v)
	case 2:
		c.reg.SetHL(v)
	default:
		c.reg.SP = v
	}
}

// getRP2/setRP2 address the PUSH/POP register-pair encoding, which
// uses AF instead of SP in slot 3.
func (c *CPU) getRP2(i uint8) uint16 {
	switch i {
	case 0:
		return c.reg.BC()
	case 1:
		return c.reg.DE()
	case 2:
		return c.reg.HL()
	default:
		return c.reg.AF()
	}
}

func (c *CPU) setRP2(i uint8, v uint16) {
	switch i {
	case 0:
		c.reg.SetBC(v)
	case 1:
		c.reg.SetDE(v)
	case 2:
		c.reg.SetHL(v)
	default:
		c.reg.SetAF(v)
	}
}

// checkCC evaluates one of the four branch conditions: NZ,Z,NC,C.
func (c *CPU) checkCC(i uint8) bool {
	switch i {
	case 0:
		return !c.reg.Flag(register.FlagZ)
	case 1:
		return c.reg.Flag(register.FlagZ)
	case 2:
		return !c.reg.Flag(register.FlagC)
	default:
		return c.reg.Flag(register.FlagC)
	}
}
