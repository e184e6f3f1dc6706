package cpu

// cbFunc executes one decoded 0xCB-prefixed instruction and returns
// its full T-cycle cost, including the fetch of the 0xCB prefix byte.
type cbFunc func(*CPU) uint8

var cbOpcodes [256]cbFunc

// cbShiftOps maps the eight rotate/shift/swap groups (opcode bits
// 3-5, values 0-7) to their implementation, in hardware encoding
// order: RLC, RRC, RL, RR, SLA, SRA, SWAP, SRL.
var cbShiftOps = [8]func(*CPU, uint8) uint8{
	(*CPU).rlc,
	(*CPU).rrc,
	(*CPU).rl,
	(*CPU).rr,
	(*CPU).sla,
	(*CPU).sra,
	(*CPU).swap,
	(*CPU).srl,
}

func init() {
	for group := uint8(0); group < 8; group++ {
		for reg := uint8(0); reg < 8; reg++ {
			op := group<<3 | reg
			fn, r := cbShiftOps[group], reg
			cbOpcodes[op] = func(c *CPU) uint8 {
				c.setR8(r, fn(c, c.getR8(r)))
				if r == 6 {
					return 16
				}
				return 8
			}
		}
	}

	for n := uint8(0); n < 8; n++ {
		for reg := uint8(0); reg < 8; reg++ {
			op := 0x40 + n<<3 + reg
			bitN, r := n, reg
			cbOpcodes[op] = func(c *CPU) uint8 {
				c.bit(bitN, c.getR8(r))
				if r == 6 {
					return 12
				}
				return 8
			}
		}
	}

	for n := uint8(0); n < 8; n++ {
		for reg := uint8(0); reg < 8; reg++ {
			op := 0x80 + n<<3 + reg
			bitN, r := n, reg
			cbOpcodes[op] = func(c *CPU) uint8 {
				c.setR8(r, c.res(bitN, c.getR8(r)))
				if r == 6 {
					return 16
				}
				return 8
			}
		}
	}

	for n := uint8(0); n < 8; n++ {
		for reg := uint8(0); reg < 8; reg++ {
			op := 0xC0 + n<<3 + reg
			bitN, r := n, reg
			cbOpcodes[op] = func(c *CPU) uint8 {
				c.setR8(r, c.set(bitN, c.getR8(r)))
				if r == 6 {
					return 16
				}
				return 8
			}
		}
	}
}
