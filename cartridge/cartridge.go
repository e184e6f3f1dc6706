// Package cartridge models the Game Boy cartridge: an immutable ROM
// byte sequence, optional mutable external RAM, and the
// header-selected memory bank controller. The cartridge owns the
// ROM/RAM storage; the MBC holds only bank indices and the
// RAM-enable latch (spec.md §3/§4.3).
package cartridge

import (
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
	"github.com/kdean/dmgboy/cheats"
	"github.com/kdean/dmgboy/state"
)

// Cartridge is a loaded Game Boy ROM plus its external RAM and MBC.
type Cartridge struct {
	header Header
	rom    []byte
	ram    []byte
	bank   mbc

	cheats *cheats.Set
}

// New decodes rom's header and constructs the matching MBC. ram, if
// non-nil, is treated as previously-saved external RAM and is copied
// into the cartridge's own RAM (truncated/zero-extended to the
// header's declared RAM size);
// this is how a host restores cartridge-battery RAM across process
// lifetimes without the core touching a filesystem itself.
func New(rom []byte, ram []byte) (*Cartridge, error) {
	header, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}

	c := &Cartridge{header: header, rom: rom, cheats: cheats.NewSet()}

	c.ram = make([]byte, header.RAMSize)
	copy(c.ram, ram)

	switch header.Variant {
	case VariantMBC1:
		c.bank = newMBC1(header.ROMSize)
	case VariantMBC3:
		c.bank = newMBC3()
	case VariantMBC5:
		c.bank = newMBC5()
	default:
		c.bank = &mbcNone{}
	}

	return c, nil
}

// Header returns the decoded cartridge header.
func (c *Cartridge) Header() Header { return c.header }

// Cheats returns the cheat set consulted on ROM reads. Callers add
// Game Genie / GameShark codes to it directly.
func (c *Cartridge) Cheats() *cheats.Set { return c.cheats }

// Fingerprint returns a stable hex digest of the ROM contents,
// suitable as a save-state or cheat-file key. Uses xxhash rather than
// a cryptographic hash since this is a content-identity check, not a
// security boundary.
func (c *Cartridge) Fingerprint() string {
	h := xxhash.Sum64(c.rom)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (8 * i))
	}
	return hex.EncodeToString(b)
}

// Read returns the byte at addr, which must be in 0x0000-0x7FFF (ROM)
// or 0xA000-0xBFFF (external RAM).
func (c *Cartridge) Read(addr uint16) uint8 {
	if addr <= 0x7FFF {
		v := c.bank.ReadROM(c.rom, addr)
		return c.cheats.Apply(addr, v)
	}
	return c.bank.ReadRAM(c.ram, addr)
}

// Write handles both bank-select writes (0x0000-0x7FFF) and external
// RAM writes (0xA000-0xBFFF).
func (c *Cartridge) Write(addr uint16, value uint8) {
	if addr <= 0x7FFF {
		c.bank.WriteROM(addr, value)
		return
	}
	c.bank.WriteRAM(c.ram, addr, value)
}

// RAM returns the current external RAM contents, for a host that
// wants to persist cartridge-battery RAM itself.
func (c *Cartridge) RAM() []byte { return c.ram }

var _ state.Stater = (*Cartridge)(nil)

func (c *Cartridge) Save(s *state.State) {
	s.Write32(uint32(len(c.ram)))
	s.WriteData(c.ram)
	c.bank.Save(s)
}

func (c *Cartridge) Load(s *state.State) {
	n := s.Read32()
	c.ram = make([]byte, n)
	s.ReadData(c.ram)
	c.bank.Load(s)
}
