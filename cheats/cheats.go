// Package cheats decodes Game Genie and GameShark code strings and
// applies them to cartridge ROM reads. This is a pure in-memory
// concern: the host is responsible for reading a cheat file and
// handing this package the code text; the core never opens a file
// itself (spec.md §1 treats file I/O as an external collaborator).
package cheats

import (
	"fmt"
	"strconv"
	"strings"
)

// GameGenieCode is a decoded "ABC-DEF-GHI" code: new data, the target
// address, and the old data the cartridge is expected to hold there.
// Layout grounded in the reference implementation's GameGenieCode.
type GameGenieCode struct {
	NewData uint8
	Address uint16
	OldData uint8
	Name    string
	Enabled bool
}

// ParseGameGenie decodes an 11-character "ABC-DEF-GHI" code.
func ParseGameGenie(code, name string) (GameGenieCode, error) {
	stripped := strings.ReplaceAll(code, "-", "")
	if len(stripped) != 9 {
		return GameGenieCode{}, fmt.Errorf("cheats: invalid game genie code length: %q", code)
	}

	ab, err := strconv.ParseUint(stripped[0:2], 16, 8)
	if err != nil {
		return GameGenieCode{}, fmt.Errorf("cheats: %w", err)
	}

	// the address nibbles are stored as CDEF but encode FCDE.
	cdef := stripped[2:6]
	fcde := cdef[3:4] + cdef[0:3]
	addr, err := strconv.ParseUint(fcde, 16, 16)
	if err != nil {
		return GameGenieCode{}, fmt.Errorf("cheats: %w", err)
	}

	gi := stripped[6:7] + stripped[8:9]
	old, err := strconv.ParseUint(gi, 16, 8)
	if err != nil {
		return GameGenieCode{}, fmt.Errorf("cheats: %w", err)
	}

	return GameGenieCode{
		NewData: uint8(ab),
		Address: uint16(addr) ^ 0xF000,
		OldData: (uint8(old) ^ 0xBA) << 2,
		Name:    name,
		Enabled: true,
	}, nil
}

// GameSharkCode is a decoded 8-character hex code: an external RAM
// bank (unused for ROM patches), new data, and the target address.
type GameSharkCode struct {
	NewData uint8
	Address uint16
	Name    string
	Enabled bool
}

// ParseGameShark decodes an 8-character "ABCDEFGH" code where AB is
// the RAM bank (ignored here; RAM patching is not supported), CD is
// the new data, and GHEF is the address.
func ParseGameShark(code, name string) (GameSharkCode, error) {
	if len(code) != 8 {
		return GameSharkCode{}, fmt.Errorf("cheats: invalid game shark code length: %q", code)
	}

	cd, err := strconv.ParseUint(code[2:4], 16, 8)
	if err != nil {
		return GameSharkCode{}, fmt.Errorf("cheats: %w", err)
	}

	ghef := code[4:8]
	efgh := ghef[2:4] + ghef[0:2]
	addr, err := strconv.ParseUint(efgh, 16, 16)
	if err != nil {
		return GameSharkCode{}, fmt.Errorf("cheats: %w", err)
	}

	return GameSharkCode{
		NewData: uint8(cd),
		Address: uint16(addr),
		Name:    name,
		Enabled: true,
	}, nil
}

// Set is the collection of active cheats consulted on every ROM read.
type Set struct {
	genie []GameGenieCode
	shark []GameSharkCode
}

// NewSet returns an empty cheat set.
func NewSet() *Set {
	return &Set{}
}

// AddGameGenie parses and enables a Game Genie code.
func (s *Set) AddGameGenie(code, name string) error {
	c, err := ParseGameGenie(code, name)
	if err != nil {
		return err
	}
	s.genie = append(s.genie, c)
	return nil
}

// AddGameShark parses and enables a GameShark code.
func (s *Set) AddGameShark(code, name string) error {
	c, err := ParseGameShark(code, name)
	if err != nil {
		return err
	}
	s.shark = append(s.shark, c)
	return nil
}

// Merge appends every code in other into s, so a host-supplied cheat
// set can be attached to a cartridge constructed independently (the
// cartridge always owns its own empty Set from New).
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	s.genie = append(s.genie, other.genie...)
	s.shark = append(s.shark, other.shark...)
}

// Apply returns the (possibly patched) value for a ROM read at addr.
// Game Genie codes only apply when the cartridge's unpatched value
// matches the code's recorded OldData, matching the real hardware's
// address-comparator behavior; GameShark codes always apply.
func (s *Set) Apply(addr uint16, value uint8) uint8 {
	for _, c := range s.genie {
		if c.Enabled && c.Address == addr && c.OldData == value {
			value = c.NewData
		}
	}
	for _, c := range s.shark {
		if c.Enabled && c.Address == addr {
			value = c.NewData
		}
	}
	return value
}
