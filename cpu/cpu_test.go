package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdean/dmgboy/interrupt"
	"github.com/kdean/dmgboy/register"
)

// flatBus is a trivial 64 KiB Bus backing for CPU unit tests; the
// real memory map has its own tests, this only needs to look like
// RAM everywhere.
type flatBus [0x10000]uint8

func (b *flatBus) Read(addr uint16) uint8     { return b[addr] }
func (b *flatBus) Write(addr uint16, v uint8) { b[addr] = v }

func newCPU() (*CPU, *flatBus, *interrupt.Controller) {
	bus := &flatBus{}
	irq := interrupt.New()
	c := New(bus, irq, nil)
	return c, bus, irq
}

// TestADDOverflowSetsZeroHalfCarryAndCarry is the literal scenario in
// spec.md §8 #1: ADD A,B with A=0xFF, B=0x01 wraps to 0 and sets Z, H,
// and C while clearing N.
func TestADDOverflowSetsZeroHalfCarryAndCarry(t *testing.T) {
	c, bus, _ := newCPU()
	c.reg.PC = 0
	bus[0] = 0x80 // ADD A,B
	c.reg.A = 0xFF
	c.reg.B = 0x01
	c.reg.F = 0

	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(4), cycles)
	assert.Equal(t, uint8(0x00), c.reg.A)
	assert.True(t, c.reg.Flag(register.FlagZ))
	assert.False(t, c.reg.Flag(register.FlagN))
	assert.True(t, c.reg.Flag(register.FlagH))
	assert.True(t, c.reg.Flag(register.FlagC))
	assert.Equal(t, uint16(1), c.reg.PC)
}

// TestLDNNSPWritesLowHighBytes is the literal scenario in spec.md §8
// #2: LD (nn),SP with SP=0xFFFE writes 0xFE at nn and 0xFF at nn+1.
func TestLDNNSPWritesLowHighBytes(t *testing.T) {
	c, bus, _ := newCPU()
	c.reg.PC = 0
	bus[0] = 0x08
	bus[1] = 0x00
	bus[2] = 0xC0
	c.reg.SP = 0xFFFE

	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xFE), bus[0xC000])
	assert.Equal(t, uint8(0xFF), bus[0xC001])
}

func TestIllegalOpcodeReportsOpcodeAndPC(t *testing.T) {
	c, bus, _ := newCPU()
	c.reg.PC = 0x0150
	bus[0x0150] = 0xD3 // illegal

	_, err := c.Step()
	require.Error(t, err)
	var illegal *IllegalOpcode
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, uint8(0xD3), illegal.Opcode)
	assert.Equal(t, uint16(0x0150), illegal.PC)
}

func TestInterruptDispatchClearsIFAndIMEAndPushesReturnAddress(t *testing.T) {
	c, bus, irq := newCPU()
	c.reg.PC = 0x0200
	c.reg.SP = 0xFFFE
	bus[0x0200] = 0x00 // NOP, never reached: the pending interrupt wins
	irq.IME = true
	irq.Enable = 0x01 // IE: VBlank
	irq.Flag = 0x01    // IF: VBlank pending

	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(20), cycles)
	assert.Equal(t, interrupt.VBlank.Vector(), c.reg.PC)
	assert.False(t, irq.IME)
	assert.Equal(t, uint8(0), irq.Flag&0x01, "the dispatched interrupt's IF bit is cleared")
	assert.Equal(t, uint16(0x0200), c.pop16(), "the pushed return address is the interrupted instruction's PC")
}

// TestHaltResumesOnPendingInterruptWithoutDispatchWhenIMEClear covers
// spec.md §4.4's rule 3: with IME=0, a pending+enabled interrupt wakes
// HALT but does not vector - the next instruction simply executes.
func TestHaltResumesOnPendingInterruptWithoutDispatchWhenIMEClear(t *testing.T) {
	c, bus, irq := newCPU()
	c.reg.PC = 0x0100
	bus[0x0100] = 0x00 // NOP, executed once HALT releases
	c.halted = true
	irq.IME = false
	irq.Enable = 0x01
	irq.Flag = 0x01

	cycles, err := c.Step()
	require.NoError(t, err)
	assert.False(t, c.halted)
	assert.Equal(t, uint8(4), cycles)
	assert.Equal(t, uint16(0x0101), c.reg.PC, "HALT released straight into the next fetch, no vector taken")
}

// TestEITakesEffectAfterFollowingInstruction verifies EI's documented
// one-instruction delay (spec.md §4.4): the instruction immediately
// after EI always executes, even with an interrupt already pending,
// and only the dispatch check *after* that instruction may vector.
func TestEITakesEffectAfterFollowingInstruction(t *testing.T) {
	c, bus, irq := newCPU()
	c.reg.PC = 0x0100
	bus[0x0100] = 0xFB // EI
	bus[0x0101] = 0x00 // NOP - must run even though the interrupt is already pending
	bus[0x0102] = 0x00 // NOP - never reached; the interrupt preempts it
	irq.Enable = 0x01
	irq.Flag = 0x01

	_, err := c.Step() // executes EI; IME still false this step
	require.NoError(t, err)
	assert.False(t, irq.IME)
	assert.Equal(t, uint16(0x0101), c.reg.PC)

	_, err = c.Step() // executes the NOP at 0x0101; IME is still false during the fetch
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), c.reg.PC, "the instruction right after EI must run")
	assert.False(t, irq.IME, "IME only goes true at the start of the step after this one")

	cycles, err := c.Step() // IME goes true, then the pending interrupt preempts the NOP at 0x0102
	require.NoError(t, err)
	assert.Equal(t, uint8(20), cycles)
	assert.Equal(t, interrupt.VBlank.Vector(), c.reg.PC)
}

func TestDAAAdjustsAfterBCDAdd(t *testing.T) {
	c, bus, _ := newCPU()
	c.reg.PC = 0
	bus[0] = 0x27 // DAA
	c.reg.A = 0x0A
	c.reg.F = 0

	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x10), c.reg.A)
	assert.True(t, c.reg.Flag(register.FlagC) == false)
}

// TestDAAAfterBCDSubtractPreservesCarry covers the subtraction branch:
// A=0x00, SUB 0x01 wraps to A=0xFF with N=1,H=1,C=1; DAA must adjust A
// to 0x99 while leaving C set, since DAA only ever sets C in the
// addition branch and must otherwise preserve the incoming carry.
func TestDAAAfterBCDSubtractPreservesCarry(t *testing.T) {
	c, bus, _ := newCPU()
	c.reg.PC = 0
	bus[0] = 0x90 // SUB B
	bus[1] = 0x27 // DAA
	c.reg.A = 0x00
	c.reg.B = 0x01
	c.reg.F = 0

	_, err := c.Step()
	require.NoError(t, err)
	require.Equal(t, uint8(0xFF), c.reg.A)
	require.True(t, c.reg.Flag(register.FlagC))

	_, err = c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x99), c.reg.A)
	assert.True(t, c.reg.Flag(register.FlagC), "DAA must preserve the incoming carry after a subtraction")
}

func TestPushWritesHighByteThenLowByte(t *testing.T) {
	c, bus, _ := newCPU()
	c.reg.PC = 0
	bus[0] = 0xC5 // PUSH BC
	c.reg.SP = 0xFFFE
	c.reg.B, c.reg.C = 0x12, 0x34

	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xFFFC), c.reg.SP)
	assert.Equal(t, uint8(0x12), bus[0xFFFD])
	assert.Equal(t, uint8(0x34), bus[0xFFFC])
}
