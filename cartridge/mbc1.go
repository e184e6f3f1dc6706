package cartridge

import "github.com/kdean/dmgboy/state"

// mbc1 implements the MBC1 variant: a 5-bit ROM bank register
// (1..=31), a 2-bit register that is either the high ROM bank bits or
// the RAM bank depending on mode, and a RAM-enable latch, per
// spec.md §4.3.
type mbc1 struct {
	ramEnabled  bool
	romBank     uint8 // 5 bits, 1..=31
	ramBank     uint8 // 2 bits
	bankingMode bool

	romBanks int // total 16KiB banks in the ROM
}

func newMBC1(romSize uint) *mbc1 {
	return &mbc1{romBank: 1, romBanks: int(romSize / 0x4000)}
}

func (m *mbc1) mask(bank uint8) uint8 {
	if m.romBanks <= 0 {
		return bank
	}
	// mask to the number of bits needed to address romBanks banks.
	n := m.romBanks - 1
	bits := uint8(0)
	for n > 0 {
		bits = (bits << 1) | 1
		n >>= 1
	}
	return bank & bits
}

func (m *mbc1) ReadROM(rom []byte, addr uint16) uint8 {
	if addr < 0x4000 {
		bank := 0
		if m.bankingMode {
			bank = int(m.ramBank) << 5
		}
		return readAt(rom, bank*0x4000+int(addr))
	}
	bank := int(m.ramBank)<<5 | int(m.romBank)
	return readAt(rom, romBankOffset(bank, addr))
}

func (m *mbc1) WriteROM(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case addr < 0x4000:
		bank := m.mask(value & 0x1F)
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case addr < 0x6000:
		m.ramBank = value & 0x03
	default:
		m.bankingMode = value&1 != 0
	}
}

func (m *mbc1) ramBankSelected() uint8 {
	if m.bankingMode {
		return m.ramBank
	}
	return 0
}

func (m *mbc1) ReadRAM(ram []byte, addr uint16) uint8 {
	if !m.ramEnabled {
		return 0xFF
	}
	return readAt(ram, ramBankOffset(int(m.ramBankSelected()), addr))
}

func (m *mbc1) WriteRAM(ram []byte, addr uint16, value uint8) {
	if !m.ramEnabled {
		return
	}
	writeAt(ram, ramBankOffset(int(m.ramBankSelected()), addr), value)
}

var _ state.Stater = (*mbc1)(nil)

func (m *mbc1) Save(s *state.State) {
	s.WriteBool(m.ramEnabled)
	s.Write8(m.romBank)
	s.Write8(m.ramBank)
	s.WriteBool(m.bankingMode)
}

func (m *mbc1) Load(s *state.State) {
	m.ramEnabled = s.ReadBool()
	m.romBank = s.Read8()
	m.ramBank = s.Read8()
	m.bankingMode = s.ReadBool()
}
