package cartridge

import "github.com/kdean/dmgboy/state"

// mbc5 implements the MBC5 variant: a 9-bit ROM bank register split
// across two write windows and a 4-bit RAM bank register. Unlike
// MBC1/MBC3, bank 0 is selectable at 0x4000-0x7FFF (no "always +1"
// quirk), per spec.md §4.3.
type mbc5 struct {
	ramEnabled bool
	romBank    uint16 // 9 bits
	ramBank    uint8  // 4 bits
}

func newMBC5() *mbc5 {
	return &mbc5{romBank: 1}
}

func (m *mbc5) ReadROM(rom []byte, addr uint16) uint8 {
	if addr < 0x4000 {
		return readAt(rom, int(addr))
	}
	return readAt(rom, romBankOffset(int(m.romBank), addr))
}

func (m *mbc5) WriteROM(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case addr < 0x3000:
		m.romBank = m.romBank&0x100 | uint16(value)
	case addr < 0x4000:
		m.romBank = m.romBank&0x0FF | uint16(value&0x01)<<8
	case addr < 0x6000:
		m.ramBank = value & 0x0F
	}
}

func (m *mbc5) ReadRAM(ram []byte, addr uint16) uint8 {
	if !m.ramEnabled {
		return 0xFF
	}
	return readAt(ram, ramBankOffset(int(m.ramBank), addr))
}

func (m *mbc5) WriteRAM(ram []byte, addr uint16, value uint8) {
	if !m.ramEnabled {
		return
	}
	writeAt(ram, ramBankOffset(int(m.ramBank), addr), value)
}

var _ state.Stater = (*mbc5)(nil)

func (m *mbc5) Save(s *state.State) {
	s.WriteBool(m.ramEnabled)
	s.Write16(m.romBank)
	s.Write8(m.ramBank)
}

func (m *mbc5) Load(s *state.State) {
	m.ramEnabled = s.ReadBool()
	m.romBank = s.Read16()
	m.ramBank = s.Read8()
}
