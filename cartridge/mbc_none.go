package cartridge

import "github.com/kdean/dmgboy/state"

// mbcNone is a direct pass-through cartridge with no bank switching:
// ROM 0x0000-0x7FFF maps straight to the file, external RAM (if
// present) is always enabled.
type mbcNone struct{}

func (m *mbcNone) ReadROM(rom []byte, addr uint16) uint8 {
	return readAt(rom, int(addr))
}

func (m *mbcNone) WriteROM(addr uint16, value uint8) {}

func (m *mbcNone) ReadRAM(ram []byte, addr uint16) uint8 {
	return readAt(ram, int(addr-0xA000))
}

func (m *mbcNone) WriteRAM(ram []byte, addr uint16, value uint8) {
	writeAt(ram, int(addr-0xA000), value)
}

var _ state.Stater = (*mbcNone)(nil)

func (m *mbcNone) Save(s *state.State) {}
func (m *mbcNone) Load(s *state.State) {}
