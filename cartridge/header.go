package cartridge

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Variant identifies the memory bank controller a cartridge expects.
// Exactly these four are supported, per spec.md §4.3.
type Variant uint8

const (
	VariantNone Variant = iota
	VariantMBC1
	VariantMBC3
	VariantMBC5
)

func (v Variant) String() string {
	switch v {
	case VariantNone:
		return "None"
	case VariantMBC1:
		return "MBC1"
	case VariantMBC3:
		return "MBC3"
	case VariantMBC5:
		return "MBC5"
	default:
		return "Unknown"
	}
}

// typeToVariant maps the cartridge-type header byte (offset 0x0147)
// to the MBC variant it selects. Types outside this table map to an
// InvalidCartridge error.
var typeToVariant = map[uint8]Variant{
	0x00: VariantNone,
	0x08: VariantNone, // ROM+RAM
	0x09: VariantNone, // ROM+RAM+BATTERY

	0x01: VariantMBC1,
	0x02: VariantMBC1,
	0x03: VariantMBC1,

	0x0F: VariantMBC3,
	0x10: VariantMBC3,
	0x11: VariantMBC3,
	0x12: VariantMBC3,
	0x13: VariantMBC3,

	0x19: VariantMBC5,
	0x1A: VariantMBC5,
	0x1B: VariantMBC5,
	0x1C: VariantMBC5,
	0x1D: VariantMBC5,
	0x1E: VariantMBC5,
}

// ramSizeTable maps the RAM-size header byte (offset 0x0149) to a
// byte count, per spec.md §6.
var ramSizeTable = map[uint8]uint{
	0x00: 0,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Header is the decoded cartridge header at ROM offset 0x0100-0x014F.
type Header struct {
	Title         string
	CartridgeType uint8
	Variant       Variant
	ROMSize       uint
	RAMSize       uint
	HeaderChecksum uint8
}

// InvalidCartridge is returned by ParseHeader when the header is malformed.
// It wraps every problem found so the host can report them all, not
// just the first.
type InvalidCartridge struct {
	Err *multierror.Error
}

func (e *InvalidCartridge) Error() string {
	return fmt.Sprintf("invalid cartridge: %s", e.Err.Error())
}

func (e *InvalidCartridge) Unwrap() error { return e.Err }

var nintendoLogo = [...]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83,
	0x00, 0x0C, 0x00, 0x0D, 0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
	0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99, 0xBB, 0xBB, 0x67, 0x63,
	0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// ParseHeader decodes and validates the header embedded in rom. On any
// problem it returns a non-nil *InvalidCartridge alongside a
// best-effort Header.
func ParseHeader(rom []byte) (Header, error) {
	var h Header
	var errs *multierror.Error

	if len(rom) < 0x150 {
		errs = multierror.Append(errs, fmt.Errorf("rom too short to contain a header: %d bytes", len(rom)))
		return h, &InvalidCartridge{Err: errs}
	}

	for i, b := range nintendoLogo {
		if rom[0x104+i] != b {
			errs = multierror.Append(errs, fmt.Errorf("nintendo logo mismatch at offset 0x%03X", 0x104+i))
			break
		}
	}

	title := rom[0x134:0x144]
	end := len(title)
	for end > 0 && title[end-1] == 0 {
		end--
	}
	h.Title = string(title[:end])

	h.CartridgeType = rom[0x147]
	variant, ok := typeToVariant[h.CartridgeType]
	if !ok {
		errs = multierror.Append(errs, fmt.Errorf("unsupported cartridge type byte 0x%02X", h.CartridgeType))
	}
	h.Variant = variant

	romSizeByte := rom[0x148]
	h.ROMSize = (32 * 1024) << romSizeByte

	ramSize, ok := ramSizeTable[rom[0x149]]
	if !ok {
		errs = multierror.Append(errs, fmt.Errorf("unsupported ram size byte 0x%02X", rom[0x149]))
	}
	h.RAMSize = ramSize

	h.HeaderChecksum = rom[0x14D]

	if uint(len(rom)) < h.ROMSize {
		errs = multierror.Append(errs, fmt.Errorf("declared rom size %d exceeds file length %d", h.ROMSize, len(rom)))
	}

	if errs != nil {
		return h, &InvalidCartridge{Err: errs}
	}
	return h, nil
}
