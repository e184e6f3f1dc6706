package cartridge

import "github.com/kdean/dmgboy/state"

// mbc is the contract every variant exposes over the ROM
// (0x0000-0x7FFF) and external-RAM (0xA000-0xBFFF) address ranges.
// The cartridge owns the byte storage; the mbc holds only bank
// indices and the RAM-enable latch (spec.md §4.3).
type mbc interface {
	// ReadROM returns the byte the CPU would see at addr (which must
	// be in 0x0000-0x7FFF), accounting for the active bank.
	ReadROM(rom []byte, addr uint16) uint8
	// WriteROM handles a write into the ROM range, which on real
	// hardware selects banks rather than writing ROM contents.
	WriteROM(addr uint16, value uint8)
	// ReadRAM returns the byte at the external RAM address, or 0xFF
	// if RAM is disabled or absent.
	ReadRAM(ram []byte, addr uint16) uint8
	// WriteRAM writes to external RAM if enabled; otherwise a no-op.
	WriteRAM(ram []byte, addr uint16, value uint8)

	state.Stater
}

func romBankOffset(bank int, addr uint16) int {
	return bank*0x4000 + int(addr-0x4000)
}

func ramBankOffset(bank int, addr uint16) int {
	return bank*0x2000 + int(addr-0xA000)
}

func readAt(data []byte, offset int) uint8 {
	if offset < 0 || offset >= len(data) {
		return 0xFF
	}
	return data[offset]
}

func writeAt(data []byte, offset int, value uint8) {
	if offset < 0 || offset >= len(data) {
		return
	}
	data[offset] = value
}
