// Package mmu implements the 16-bit memory map: the single dispatch
// point that routes CPU reads/writes across ROM/RAM (via the active
// MBC), VRAM/OAM (via the PPU), WRAM, HRAM, and the I/O register
// block, per spec.md §4.2. Per the design note in spec.md §9, the PPU
// owns VRAM and OAM outright; this package never reaches into PPU
// internals, only through the narrow ReadVRAM/WriteVRAM/ReadOAM/
// WriteOAM interface it exposes.
package mmu

import (
	"github.com/kdean/dmgboy/apu"
	"github.com/kdean/dmgboy/cartridge"
	"github.com/kdean/dmgboy/interrupt"
	"github.com/kdean/dmgboy/joypad"
	"github.com/kdean/dmgboy/log"
	"github.com/kdean/dmgboy/ppu"
	"github.com/kdean/dmgboy/state"
	"github.com/kdean/dmgboy/timer"
)

// unusableFill is the byte value 0xFEA0-0xFEFF reads as. Real
// hardware's behavior there is revision-dependent; this core documents
// a fixed 0x00 fill rather than modeling the quirk (spec.md §3).
const unusableFill = 0x00

// MMU is the memory map: the only component that initiates bus
// transactions is the CPU (spec.md §5), and every byte that crosses
// into the core is funneled through Read/Write here.
type MMU struct {
	Cart    *cartridge.Cartridge
	PPU     *ppu.PPU
	APU     *apu.APU
	Timer   *timer.Controller
	Joypad  *joypad.Controller
	IRQ     *interrupt.Controller

	wram [0x2000]uint8
	hram [0x7F]uint8

	log log.Logger
}

// New wires the memory map to its owning components. All of them must
// already be constructed; New does not allocate any of them itself,
// matching the narrow-ownership design of spec.md §9.
func New(cart *cartridge.Cartridge, p *ppu.PPU, a *apu.APU, t *timer.Controller, j *joypad.Controller, irq *interrupt.Controller, logger log.Logger) *MMU {
	if logger == nil {
		logger = log.Null()
	}
	return &MMU{Cart: cart, PPU: p, APU: a, Timer: t, Joypad: j, IRQ: irq, log: logger}
}

// Read answers a CPU read at addr, per the address space table in
// spec.md §3.
func (m *MMU) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x7FFF:
		return m.Cart.Read(addr)
	case addr <= 0x9FFF:
		return m.PPU.ReadVRAM(addr)
	case addr <= 0xBFFF:
		return m.Cart.Read(addr)
	case addr <= 0xDFFF:
		return m.wram[addr-0xC000]
	case addr <= 0xFDFF: // echo of 0xC000-0xDDFF
		return m.wram[addr-0xE000]
	case addr <= 0xFE9F:
		return m.PPU.ReadOAM(addr)
	case addr <= 0xFEFF:
		return unusableFill
	case addr <= 0xFF7F:
		return m.readIO(addr)
	case addr <= 0xFFFE:
		return m.hram[addr-0xFF80]
	default: // 0xFFFF
		return m.IRQ.ReadIE()
	}
}

// Write answers a CPU write at addr.
func (m *MMU) Write(addr uint16, v uint8) {
	switch {
	case addr <= 0x7FFF:
		m.Cart.Write(addr, v)
	case addr <= 0x9FFF:
		m.PPU.WriteVRAM(addr, v)
	case addr <= 0xBFFF:
		m.Cart.Write(addr, v)
	case addr <= 0xDFFF:
		m.wram[addr-0xC000] = v
	case addr <= 0xFDFF:
		m.wram[addr-0xE000] = v
	case addr <= 0xFE9F:
		m.PPU.WriteOAM(addr, v)
	case addr <= 0xFEFF:
		// unusable region; writes are no-ops (spec.md §3).
	case addr <= 0xFF7F:
		m.writeIO(addr, v)
	case addr <= 0xFFFE:
		m.hram[addr-0xFF80] = v
	default: // 0xFFFF
		m.IRQ.WriteIE(v)
	}
}

func (m *MMU) readIO(addr uint16) uint8 {
	switch {
	case addr == joypadAddr:
		return m.Joypad.Read()
	case addr == timer.AddrDIV:
		return m.Timer.ReadDIV()
	case addr == timer.AddrTIMA:
		return m.Timer.ReadTIMA()
	case addr == timer.AddrTMA:
		return m.Timer.ReadTMA()
	case addr == timer.AddrTAC:
		return m.Timer.ReadTAC()
	case addr == interruptFlagAddr:
		return m.IRQ.ReadIF()
	case addr >= apu.AddrNR10 && addr <= apu.AddrNR52:
		return m.APU.Read(addr)
	case addr >= apu.AddrWaveStart && addr <= apu.AddrWaveEnd:
		return m.APU.Read(addr)
	case addr >= ppu.AddrLCDC && addr <= ppu.AddrWX:
		return m.PPU.Read(addr)
	default:
		m.log.Debugf("mmu: read from unmapped io register 0x%04X", addr)
		return 0xFF
	}
}

func (m *MMU) writeIO(addr uint16, v uint8) {
	switch {
	case addr == joypadAddr:
		m.Joypad.Write(v)
	case addr == timer.AddrDIV:
		m.Timer.WriteDIV()
	case addr == timer.AddrTIMA:
		m.Timer.WriteTIMA(v)
	case addr == timer.AddrTMA:
		m.Timer.WriteTMA(v)
	case addr == timer.AddrTAC:
		m.Timer.WriteTAC(v)
	case addr == interruptFlagAddr:
		m.IRQ.WriteIF(v)
	case addr >= apu.AddrNR10 && addr <= apu.AddrNR52:
		m.APU.Write(addr, v)
	case addr >= apu.AddrWaveStart && addr <= apu.AddrWaveEnd:
		m.APU.Write(addr, v)
	case addr >= ppu.AddrLCDC && addr <= ppu.AddrWX:
		m.PPU.Write(addr, v)
	default:
		m.log.Debugf("mmu: write to unmapped io register 0x%04X", addr)
	}
}

const (
	joypadAddr        = 0xFF00
	interruptFlagAddr = 0xFF0F
)

var _ state.Stater = (*MMU)(nil)

// Save/Load persist only the memory map's own storage (WRAM, HRAM);
// the components it dispatches to save themselves independently, in
// the fixed order gameboy.GameBoy.SaveState walks.
func (m *MMU) Save(s *state.State) {
	s.WriteData(m.wram[:])
	s.WriteData(m.hram[:])
}

func (m *MMU) Load(s *state.State) {
	s.ReadData(m.wram[:])
	s.ReadData(m.hram[:])
}
