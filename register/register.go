// Package register provides the Game Boy's register file: six 16-bit
// registers (AF, BC, DE, HL, SP, PC) where AF/BC/DE/HL additionally
// expose independent 8-bit hi/lo views.
package register

import "github.com/kdean/dmgboy/state"

// Flag identifies one of the four meaningful bits of F.
type Flag uint8

const (
	// FlagZ is the Zero flag (bit 7).
	FlagZ Flag = 7
	// FlagN is the Subtraction flag (bit 6).
	FlagN Flag = 6
	// FlagH is the Half-carry flag (bit 5).
	FlagH Flag = 5
	// FlagC is the Carry flag (bit 4).
	FlagC Flag = 4
)

// File is the CPU's register file. A, F, B, C, D, E, H, L are
// addressable individually; AF, BC, DE, HL compose the pairs in
// big-endian-within-pair order (A/B/D/H are the high bytes).
type File struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8

	SP uint16
	PC uint16
}

// Reset restores the documented post-boot register values for a DMG.
func (f *File) Reset() {
	f.A, f.F = 0x01, 0xB0
	f.B, f.C = 0x00, 0x13
	f.D, f.E = 0x00, 0xD8
	f.H, f.L = 0x01, 0x4D
	f.SP = 0xFFFE
	f.PC = 0x0100
}

// AF returns the 16-bit AF pair.
func (f *File) AF() uint16 { return uint16(f.A)<<8 | uint16(f.F) }

// SetAF writes the AF pair; F's low nibble is always masked to zero.
func (f *File) SetAF(v uint16) {
	f.A = uint8(v >> 8)
	f.F = uint8(v) & 0xF0
}

// BC returns the 16-bit BC pair.
func (f *File) BC() uint16 { return uint16(f.B)<<8 | uint16(f.C) }

// SetBC writes the BC pair.
func (f *File) SetBC(v uint16) {
	f.B = uint8(v >> 8)
	f.C = uint8(v)
}

// DE returns the 16-bit DE pair.
func (f *File) DE() uint16 { return uint16(f.D)<<8 | uint16(f.E) }

// SetDE writes the DE pair.
func (f *File) SetDE(v uint16) {
	f.D = uint8(v >> 8)
	f.E = uint8(v)
}

// HL returns the 16-bit HL pair.
func (f *File) HL() uint16 { return uint16(f.H)<<8 | uint16(f.L) }

// SetHL writes the HL pair.
func (f *File) SetHL(v uint16) {
	f.H = uint8(v >> 8)
	f.L = uint8(v)
}

// SetF writes F directly, masking out the permanently-zero low
// nibble.
func (f *File) SetF(v uint8) {
	f.F = v & 0xF0
}

// Flag returns whether the given flag bit is set.
func (f *File) Flag(flag Flag) bool {
	return f.F&(1<<flag) != 0
}

// SetFlag sets or clears the given flag bit.
func (f *File) SetFlag(flag Flag, v bool) {
	if v {
		f.F |= 1 << flag
	} else {
		f.F &^= 1 << flag
	}
}

var _ state.Stater = (*File)(nil)

// Save implements state.Stater.
func (f *File) Save(s *state.State) {
	s.Write8(f.A)
	s.Write8(f.F)
	s.Write8(f.B)
	s.Write8(f.C)
	s.Write8(f.D)
	s.Write8(f.E)
	s.Write8(f.H)
	s.Write8(f.L)
	s.Write16(f.SP)
	s.Write16(f.PC)
}

// Load implements state.Stater.
func (f *File) Load(s *state.State) {
	f.A = s.Read8()
	f.F = s.Read8() & 0xF0
	f.B = s.Read8()
	f.C = s.Read8()
	f.D = s.Read8()
	f.E = s.Read8()
	f.H = s.Read8()
	f.L = s.Read8()
	f.SP = s.Read16()
	f.PC = s.Read16()
}
