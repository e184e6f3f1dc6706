package cartridge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdean/dmgboy/state"
)

// buildROM returns a minimal well-formed ROM image of romSize bytes
// with a valid Nintendo logo and the given cartridge/RAM-size header
// bytes, so ParseHeader succeeds.
func buildROM(cartType, romSizeByte, ramSizeByte uint8, romSize int) []byte {
	rom := make([]byte, romSize)
	copy(rom[0x104:], nintendoLogo[:])
	copy(rom[0x134:], []byte("TESTGAME"))
	rom[0x147] = cartType
	rom[0x148] = romSizeByte
	rom[0x149] = ramSizeByte
	return rom
}

func TestNewNoMBC(t *testing.T) {
	rom := buildROM(0x00, 0x00, 0x00, 32*1024)
	rom[0x00] = 0xAB
	c, err := New(rom, nil)
	require.NoError(t, err)
	assert.Equal(t, "TESTGAME", c.Header().Title)
	assert.Equal(t, uint8(0xAB), c.Read(0x0000))
}

func TestNewInvalidHeaderReturnsMultierror(t *testing.T) {
	rom := make([]byte, 0x200)
	rom[0x147] = 0xFF // unrecognized cartridge type
	_, err := New(rom, nil)
	require.Error(t, err)
	var invalid *InvalidCartridge
	require.ErrorAs(t, err, &invalid)
	assert.GreaterOrEqual(t, len(invalid.Err.Errors), 2, "both the bad logo and the bad cartridge type should be reported")
}

func TestMBC1BankSwitching(t *testing.T) {
	romSize := 256 * 1024 // 16 banks of 16KiB
	rom := buildROM(0x01, 0x03, 0x00, romSize)
	for bank := 0; bank < romSize/0x4000; bank++ {
		rom[bank*0x4000] = uint8(bank)
	}
	c, err := New(rom, nil)
	require.NoError(t, err)

	c.Write(0x2000, 0x05) // select bank 5
	assert.Equal(t, uint8(5), c.Read(0x4000))

	c.Write(0x2000, 0x00) // bank 0 is remapped to bank 1
	assert.Equal(t, uint8(1), c.Read(0x4000))
}

func TestMBC1RAMEnableGate(t *testing.T) {
	rom := buildROM(0x03, 0x00, 0x02, 32*1024) // MBC1+RAM+BATTERY, 8KiB RAM
	c, err := New(rom, nil)
	require.NoError(t, err)

	assert.Equal(t, uint8(0xFF), c.Read(0xA000), "ram reads 0xFF while disabled")

	c.Write(0x0000, 0x0A) // enable ram
	c.Write(0xA000, 0x42)
	assert.Equal(t, uint8(0x42), c.Read(0xA000))

	c.Write(0x0000, 0x00) // disable ram
	assert.Equal(t, uint8(0xFF), c.Read(0xA000))
}

func TestMBC5BankZeroSelectable(t *testing.T) {
	romSize := 128 * 1024
	rom := buildROM(0x19, 0x02, 0x00, romSize)
	rom[0x4000] = 0x77 // bank 1's first byte (the default selected bank)
	c, err := New(rom, nil)
	require.NoError(t, err)

	c.Write(0x2000, 0x00) // unlike MBC1, bank 0 really does map to bank 0
	rom[0x0000] = 0x99
	assert.Equal(t, uint8(0x99), c.Read(0x4000))
}

// TestMBC3LatchesWallClockIntoRTCRegisters covers spec.md §4.3's RTC
// latch: writing 0 then 1 to 0x6000-0x7FFF must snapshot the current
// wall-clock seconds/minutes/hours into the RTC registers, selected
// via RAM-bank values 0x08-0x0A.
func TestMBC3LatchesWallClockIntoRTCRegisters(t *testing.T) {
	rom := buildROM(0x13, 0x00, 0x02, 32*1024) // MBC3+RAM+BATTERY+RTC
	c, err := New(rom, nil)
	require.NoError(t, err)

	now := time.Now()
	c.Write(0x0000, 0x0A) // enable ram/rtc access
	c.Write(0x6000, 0x00) // arm the latch
	c.Write(0x6000, 0x01) // capture

	c.Write(0x4000, 0x08) // select seconds register
	assert.Equal(t, uint8(now.Second()), c.Read(0xA000), "within a second or two of the write above")
	c.Write(0x4000, 0x09) // minutes
	assert.Equal(t, uint8(now.Minute()), c.Read(0xA000))
	c.Write(0x4000, 0x0A) // hours
	assert.Equal(t, uint8(now.Hour()), c.Read(0xA000))
}

func TestFingerprintStableForSameROM(t *testing.T) {
	rom := buildROM(0x00, 0x00, 0x00, 32*1024)
	c1, err := New(rom, nil)
	require.NoError(t, err)
	c2, err := New(rom, nil)
	require.NoError(t, err)
	assert.Equal(t, c1.Fingerprint(), c2.Fingerprint())
}

func TestCheatsApplyOnROMRead(t *testing.T) {
	rom := buildROM(0x00, 0x00, 0x00, 32*1024)
	rom[0x0150] = 0x10
	c, err := New(rom, nil)
	require.NoError(t, err)

	require.NoError(t, c.Cheats().AddGameShark("00FF5001", "test"))
	assert.Equal(t, uint8(0xFF), c.Read(0x0150))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	rom := buildROM(0x01, 0x00, 0x02, 32*1024)
	c, err := New(rom, nil)
	require.NoError(t, err)
	c.Write(0x0000, 0x0A)
	c.Write(0xA000, 0x55)
	c.Write(0x2000, 0x03)

	s := state.New()
	c.Save(s)

	c2, err := New(rom, nil)
	require.NoError(t, err)
	c2.Load(state.FromBytes(s.Bytes()))

	assert.Equal(t, c.RAM(), c2.RAM())
}
