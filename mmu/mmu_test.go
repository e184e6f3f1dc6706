package mmu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdean/dmgboy/apu"
	"github.com/kdean/dmgboy/cartridge"
	"github.com/kdean/dmgboy/interrupt"
	"github.com/kdean/dmgboy/joypad"
	"github.com/kdean/dmgboy/ppu"
	"github.com/kdean/dmgboy/state"
	"github.com/kdean/dmgboy/timer"
)

var nintendoLogo = [...]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83,
	0x00, 0x0C, 0x00, 0x0D, 0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
	0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99, 0xBB, 0xBB, 0x67, 0x63,
	0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// buildROM returns a minimal well-formed, header-valid MBC1 ROM.
func buildROM() []byte {
	rom := make([]byte, 64*1024)
	copy(rom[0x104:], nintendoLogo[:])
	copy(rom[0x134:], []byte("TESTGAME"))
	rom[0x147] = 0x03 // MBC1+RAM+BATTERY
	rom[0x148] = 0x01 // 64 KiB
	rom[0x149] = 0x02 // 8 KiB RAM
	return rom
}

// newMMU wires a full memory map over a minimal cartridge, mirroring
// gameboy.New's construction order (the PPU's DMA callback reads
// through the MMU, which must be built right after).
func newMMU(t *testing.T) *MMU {
	t.Helper()
	cart, err := cartridge.New(buildROM(), nil)
	require.NoError(t, err)

	irq := interrupt.New()
	tmr := timer.New(irq)
	joy := joypad.New(irq)
	snd := apu.New(44100)

	var m *MMU
	p := ppu.New(irq, func(addr uint16) uint8 { return m.Read(addr) }, nil)
	m = New(cart, p, snd, tmr, joy, irq, nil)
	return m
}

func TestEchoRAMMirrorsWRAM(t *testing.T) {
	m := newMMU(t)
	m.Write(0xC010, 0x42)
	assert.Equal(t, uint8(0x42), m.Read(0xE010))

	m.Write(0xE020, 0x99)
	assert.Equal(t, uint8(0x99), m.Read(0xC020))
}

func TestUnusableRegionReadsFixedFill(t *testing.T) {
	m := newMMU(t)
	assert.Equal(t, uint8(unusableFill), m.Read(0xFEA0))
	m.Write(0xFEA0, 0x55) // no-op
	assert.Equal(t, uint8(unusableFill), m.Read(0xFEA0))
}

func TestHighRAMReadWrite(t *testing.T) {
	m := newMMU(t)
	m.Write(0xFF90, 0x77)
	assert.Equal(t, uint8(0x77), m.Read(0xFF90))
}

func TestInterruptEnableRegisterRoundTrips(t *testing.T) {
	m := newMMU(t)
	m.Write(0xFFFF, 0x1F)
	assert.Equal(t, uint8(0x1F), m.Read(0xFFFF))
	assert.Equal(t, uint8(0x1F), m.IRQ.ReadIE())
}

func TestJoypadDispatchedThroughIO(t *testing.T) {
	m := newMMU(t)
	m.Joypad.Press(joypad.A)
	m.Write(0xFF00, 0x10) // select action buttons (bit 5 low), d-pad deselected
	assert.Equal(t, uint8(0xDE), m.Read(0xFF00), "A held: bit 0 low, bits 6-7 fixed high")
}

func TestOAMDispatchedToPPU(t *testing.T) {
	m := newMMU(t)
	m.Write(0xFE10, 0xAB)
	assert.Equal(t, uint8(0xAB), m.Read(0xFE10))
	assert.Equal(t, uint8(0xAB), m.PPU.ReadOAM(0xFE10))
}

func TestVRAMDispatchedToPPU(t *testing.T) {
	m := newMMU(t)
	m.Write(0x8123, 0x5A)
	assert.Equal(t, uint8(0x5A), m.Read(0x8123))
	assert.Equal(t, uint8(0x5A), m.PPU.ReadVRAM(0x8123))
}

func TestCartridgeROMAndRAMDispatch(t *testing.T) {
	m := newMMU(t)
	m.Write(0x0000, 0x0A) // MBC1 RAM enable
	m.Write(0xA000, 0x37)
	assert.Equal(t, uint8(0x37), m.Read(0xA000))
}

func TestUnmappedIORegisterReadsFF(t *testing.T) {
	m := newMMU(t)
	assert.Equal(t, uint8(0xFF), m.Read(0xFF03))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := newMMU(t)
	m.Write(0xC000, 0x11)
	m.Write(0xFF80, 0x22)

	s := state.New()
	m.Save(s)

	m2 := newMMU(t)
	m2.Load(state.FromBytes(s.Bytes()))

	assert.Equal(t, uint8(0x11), m2.Read(0xC000))
	assert.Equal(t, uint8(0x22), m2.Read(0xFF80))
}
