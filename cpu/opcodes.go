package cpu

import "github.com/kdean/dmgboy/register"

// opFunc executes one decoded instruction and returns its T-cycle
// cost. opcodes is the flat 256-entry primary dispatch table;
// cbOpcodes (built in opcodes_cb.go) is the 0xCB-prefixed table.
// Illegal opcodes are left as nil entries.
type opFunc func(*CPU) uint8

var opcodes [256]opFunc

// illegalOpcodes lists the eleven byte values the LR35902 never
// defines (spec.md §4.4); they are left nil in the table and reported
// as IllegalOpcode by Step.
var illegalOpcodes = [...]uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}

func init() {
	buildLoadGrid()
	buildALUGrid()
	buildBlockZero()
	buildBlockThree()
}

// buildLoadGrid fills 0x40-0x7F: LD r,r' over the eight 3-bit register
// encodings B,C,D,E,H,L,(HL),A, except 0x76 which is HALT rather than
// the nonsensical LD (HL),(HL).
func buildLoadGrid() {
	for y := uint8(0); y < 8; y++ {
		for z := uint8(0); z < 8; z++ {
			op := 0x40 + y<<3 + z
			if y == 6 && z == 6 {
				opcodes[op] = func(c *CPU) uint8 { return c.execHALT() }
				continue
			}
			dst, src := y, z
			opcodes[op] = func(c *CPU) uint8 {
				c.setR8(dst, c.getR8(src))
				if dst == 6 || src == 6 {
					return 8
				}
				return 4
			}
		}
	}
}

// buildALUGrid fills 0x80-0xBF: the eight ALU operations (ADD, ADC,
// SUB, SBC, AND, XOR, OR, CP) on A against each of the eight r/(HL)
// operands.
func buildALUGrid() {
	for y := uint8(0); y < 8; y++ {
		for z := uint8(0); z < 8; z++ {
			op := 0x80 + y<<3 + z
			aluop, src := y, z
			opcodes[op] = func(c *CPU) uint8 {
				c.aluOp(aluop, c.getR8(src))
				if src == 6 {
					return 8
				}
				return 4
			}
		}
	}
}

// buildBlockZero fills 0x00-0x3F: NOP, JR variants, 16-bit loads and
// arithmetic, indirect A loads through BC/DE/HL+/HL-, INC/DEC r and
// rr, LD r,n, and the four accumulator rotates plus DAA/CPL/SCF/CCF.
func buildBlockZero() {
	opcodes[0x00] = func(c *CPU) uint8 { return 4 }
	opcodes[0x08] = func(c *CPU) uint8 { c.ldNNSP(); return 20 }
	opcodes[0x10] = func(c *CPU) uint8 { return c.execSTOP() }
	opcodes[0x18] = func(c *CPU) uint8 { return c.jr(true) }

	jrOps := [4]uint8{0x20, 0x28, 0x30, 0x38} // NZ,Z,NC,C, per checkCC's encoding
	for i, op := range jrOps {
		cc := uint8(i)
		opcodes[op] = func(c *CPU) uint8 { return c.jr(c.checkCC(cc)) }
	}

	rpOps := [4]uint8{0x01, 0x11, 0x21, 0x31}
	for i, op := range rpOps {
		rp := uint8(i)
		opcodes[op] = func(c *CPU) uint8 { c.setRP(rp, c.fetch16()); return 12 }
	}
	addHLOps := [4]uint8{0x09, 0x19, 0x29, 0x39}
	for i, op := range addHLOps {
		rp := uint8(i)
		opcodes[op] = func(c *CPU) uint8 { c.addHL(c.getRP(rp)); return 8 }
	}
	incRPOps := [4]uint8{0x03, 0x13, 0x23, 0x33}
	for i, op := range incRPOps {
		rp := uint8(i)
		opcodes[op] = func(c *CPU) uint8 { c.setRP(rp, c.getRP(rp)+1); return 8 }
	}
	decRPOps := [4]uint8{0x0B, 0x1B, 0x2B, 0x3B}
	for i, op := range decRPOps {
		rp := uint8(i)
		opcodes[op] = func(c *CPU) uint8 { c.setRP(rp, c.getRP(rp)-1); return 8 }
	}

	opcodes[0x02] = func(c *CPU) uint8 { c.ldBCA(); return 8 }
	opcodes[0x12] = func(c *CPU) uint8 { c.ldDEA(); return 8 }
	opcodes[0x22] = func(c *CPU) uint8 { c.ldHLIA(); return 8 }
	opcodes[0x32] = func(c *CPU) uint8 { c.ldHLDA(); return 8 }
	opcodes[0x0A] = func(c *CPU) uint8 { c.ldABC(); return 8 }
	opcodes[0x1A] = func(c *CPU) uint8 { c.ldADE(); return 8 }
	opcodes[0x2A] = func(c *CPU) uint8 { c.ldAHLI(); return 8 }
	opcodes[0x3A] = func(c *CPU) uint8 { c.ldAHLD(); return 8 }

	incROps := [8]uint8{0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, 0x34, 0x3C}
	for i, op := range incROps {
		r := uint8(i)
		opcodes[op] = func(c *CPU) uint8 {
			c.setR8(r, c.inc8(c.getR8(r)))
			if r == 6 {
				return 12
			}
			return 4
		}
	}
	decROps := [8]uint8{0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, 0x35, 0x3D}
	for i, op := range decROps {
		r := uint8(i)
		opcodes[op] = func(c *CPU) uint8 {
			c.setR8(r, c.dec8(c.getR8(r)))
			if r == 6 {
				return 12
			}
			return 4
		}
	}
	ldRNOps := [8]uint8{0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x36, 0x3E}
	for i, op := range ldRNOps {
		r := uint8(i)
		opcodes[op] = func(c *CPU) uint8 {
			c.setR8(r, c.fetch8())
			if r == 6 {
				return 12
			}
			return 8
		}
	}

	opcodes[0x07] = func(c *CPU) uint8 { c.rlca(); return 4 }
	opcodes[0x0F] = func(c *CPU) uint8 { c.rrca(); return 4 }
	opcodes[0x17] = func(c *CPU) uint8 { c.rla(); return 4 }
	opcodes[0x1F] = func(c *CPU) uint8 { c.rra(); return 4 }
	opcodes[0x27] = func(c *CPU) uint8 { c.daa(); return 4 }
	opcodes[0x2F] = func(c *CPU) uint8 {
		c.reg.A = ^c.reg.A
		c.reg.SetFlag(register.FlagN, true)
		c.reg.SetFlag(register.FlagH, true)
		return 4
	}
	opcodes[0x37] = func(c *CPU) uint8 {
		c.reg.SetFlag(register.FlagN, false)
		c.reg.SetFlag(register.FlagH, false)
		c.reg.SetFlag(register.FlagC, true)
		return 4
	}
	opcodes[0x3F] = func(c *CPU) uint8 {
		c.reg.SetFlag(register.FlagN, false)
		c.reg.SetFlag(register.FlagH, false)
		c.reg.SetFlag(register.FlagC, !c.reg.Flag(register.FlagC))
		return 4
	}
}

// buildBlockThree fills 0xC0-0xFF: conditional/unconditional control
// flow, PUSH/POP, the immediate ALU forms, RST, DI/EI, and the
// remaining 0xFF00-relative and direct-address loads. Illegal opcodes
// are left nil.
func buildBlockThree() {
	retCCOps := [4]uint8{0xC0, 0xC8, 0xD0, 0xD8}
	for i, op := range retCCOps {
		cc := uint8(i)
		opcodes[op] = func(c *CPU) uint8 { return c.ret(c.checkCC(cc)) }
	}
	// unconditional RET has no branch-taken penalty: 16 cycles flat,
	// unlike a taken RET cc (20) which pays for the condition check.
	opcodes[0xC9] = func(c *CPU) uint8 { c.reg.PC = c.pop16(); return 16 }
	opcodes[0xD9] = func(c *CPU) uint8 {
		c.reg.PC = c.pop16()
		c.irq.IME = true
		return 16
	}

	jpCCOps := [4]uint8{0xC2, 0xCA, 0xD2, 0xDA}
	for i, op := range jpCCOps {
		cc := uint8(i)
		opcodes[op] = func(c *CPU) uint8 { return c.jp(c.checkCC(cc)) }
	}
	opcodes[0xC3] = func(c *CPU) uint8 { return c.jp(true) }
	opcodes[0xE9] = func(c *CPU) uint8 { c.reg.PC = c.reg.HL(); return 4 }

	callCCOps := [4]uint8{0xC4, 0xCC, 0xD4, 0xDC}
	for i, op := range callCCOps {
		cc := uint8(i)
		opcodes[op] = func(c *CPU) uint8 { return c.call(c.checkCC(cc)) }
	}
	opcodes[0xCD] = func(c *CPU) uint8 { return c.call(true) }

	popOps := [4]uint8{0xC1, 0xD1, 0xE1, 0xF1}
	for i, op := range popOps {
		rp := uint8(i)
		opcodes[op] = func(c *CPU) uint8 { c.pop(rp); return 12 }
	}
	pushOps := [4]uint8{0xC5, 0xD5, 0xE5, 0xF5}
	for i, op := range pushOps {
		rp := uint8(i)
		opcodes[op] = func(c *CPU) uint8 { c.push(rp); return 16 }
	}

	rstOps := [8]uint16{0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38}
	rstCodes := [8]uint8{0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF}
	for i, op := range rstCodes {
		addr := rstOps[i]
		opcodes[op] = func(c *CPU) uint8 { return c.rst(addr) }
	}

	aluNOps := [8]uint8{0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE}
	for i, op := range aluNOps {
		aluop := uint8(i)
		opcodes[op] = func(c *CPU) uint8 { c.aluOp(aluop, c.fetch8()); return 8 }
	}

	opcodes[0xE0] = func(c *CPU) uint8 { c.ldhNA(); return 12 }
	opcodes[0xF0] = func(c *CPU) uint8 { c.ldhAN(); return 12 }
	opcodes[0xE2] = func(c *CPU) uint8 { c.ldCA(); return 8 }
	opcodes[0xF2] = func(c *CPU) uint8 { c.ldAC(); return 8 }
	opcodes[0xEA] = func(c *CPU) uint8 { c.ldNNA(); return 16 }
	opcodes[0xFA] = func(c *CPU) uint8 { c.ldANN(); return 16 }
	opcodes[0xE8] = func(c *CPU) uint8 { c.addSPe(); return 16 }
	opcodes[0xF8] = func(c *CPU) uint8 { c.ldHLSPe(); return 12 }
	opcodes[0xF9] = func(c *CPU) uint8 { c.ldSPHL(); return 8 }

	opcodes[0xF3] = func(c *CPU) uint8 { return c.execDI() }
	opcodes[0xFB] = func(c *CPU) uint8 { return c.execEI() }

	// 0xCB is not a real instruction; Step intercepts it before
	// consulting this table.

	for _, op := range illegalOpcodes {
		opcodes[op] = nil
	}
}
