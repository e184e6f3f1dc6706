package cpu

// Irregular 8/16-bit loads, stack operations, and the 16-bit
// arithmetic forms that don't fit the regular LD r,r' / ALU grids
// generated in opcodes.go.

func (c *CPU) ldBCA() { c.bus.Write(c.reg.BC(), c.reg.A) }
func (c *CPU) ldDEA() { c.bus.Write(c.reg.DE(), c.reg.A) }

func (c *CPU) ldHLIA() {
	c.bus.Write(c.reg.HL(), c.reg.A)
	c.reg.SetHL(c.reg.HL() + 1)
}

func (c *CPU) ldHLDA() {
	c.bus.Write(c.reg.HL(), c.reg.A)
	c.reg.SetHL(c.reg.HL() - 1)
}

func (c *CPU) ldABC() { c.reg.A = c.bus.Read(c.reg.BC()) }
func (c *CPU) ldADE() { c.reg.A = c.bus.Read(c.reg.DE()) }

func (c *CPU) ldAHLI() {
	c.reg.A = c.bus.Read(c.reg.HL())
	c.reg.SetHL(c.reg.HL() + 1)
}

func (c *CPU) ldAHLD() {
	c.reg.A = c.bus.Read(c.reg.HL())
	c.reg.SetHL(c.reg.HL() - 1)
}

// ldNNSP implements LD (nn),SP: SP is written low byte first.
func (c *CPU) ldNNSP() {
	addr := c.fetch16()
	c.bus.Write(addr, uint8(c.reg.SP))
	c.bus.Write(addr+1, uint8(c.reg.SP>>8))
}

func (c *CPU) ldhNA() {
	addr := 0xFF00 + uint16(c.fetch8())
	c.bus.Write(addr, c.reg.A)
}

func (c *CPU) ldhAN() {
	addr := 0xFF00 + uint16(c.fetch8())
	c.reg.A = c.bus.Read(addr)
}

func (c *CPU) ldCA() { c.bus.Write(0xFF00+uint16(c.reg.C), c.reg.A) }
func (c *CPU) ldAC() { c.reg.A = c.bus.Read(0xFF00 + uint16(c.reg.C)) }

func (c *CPU) ldNNA() {
	addr := c.fetch16()
	c.bus.Write(addr, c.reg.A)
}

func (c *CPU) ldANN() {
	addr := c.fetch16()
	c.reg.A = c.bus.Read(addr)
}

func (c *CPU) ldSPHL() { c.reg.SP = c.reg.HL() }

// ldHLSPe implements LD HL,SP+e8, sharing flag computation with
// ADD SP,e8 via addSPSigned.
func (c *CPU) ldHLSPe() {
	e := int8(c.fetch8())
	c.reg.SetHL(c.addSPSigned(e))
}

func (c *CPU) addSPe() {
	e := int8(c.fetch8())
	c.reg.SP = c.addSPSigned(e)
}

func (c *CPU) push(i uint8) {
	c.push16(c.getRP2(i))
}

func (c *CPU) pop(i uint8) {
	v := c.pop16()
	c.setRP2(i, v)
}
