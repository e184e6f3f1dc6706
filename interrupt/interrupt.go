// Package interrupt implements the interrupt controller: the IE/IF
// register pair and the five fixed vectors. Per the design notes this
// is a small owned component; subsystems that can raise an interrupt
// receive the Controller itself but are expected to call only
// Request, never touch Enable/Flag directly.
package interrupt

import "github.com/kdean/dmgboy/state"

// Kind identifies one of the five interrupt sources, in fixed
// priority order (lowest numbered wins on a simultaneous request).
type Kind uint8

const (
	VBlank Kind = iota
	LCDStat
	Timer
	Serial
	Joypad
)

// Vector returns the fixed dispatch address for the interrupt kind.
func (k Kind) Vector() uint16 {
	return 0x40 + 8*uint16(k)
}

// Controller owns IE (0xFFFF) and IF (0xFF0F) and the IME latch.
type Controller struct {
	Enable uint8 // IE, bits 0-4
	Flag   uint8 // IF, bits 0-4

	// IME is the interrupt master enable flag.
	IME bool
}

// New returns a Controller in its post-boot state.
func New() *Controller {
	return &Controller{Flag: 0xE1}
}

// Request sets the pending bit for kind. Safe to call from any
// component (Timer, PPU, Joypad, Serial) that observes an interrupt
// condition.
func (c *Controller) Request(kind Kind) {
	c.Flag |= 1 << kind
}

// Clear clears the pending bit for kind.
func (c *Controller) Clear(kind Kind) {
	c.Flag &^= 1 << kind
}

// Pending returns the AND of IE and IF, masked to the 5 valid bits.
// A non-zero result means at least one enabled interrupt is pending.
func (c *Controller) Pending() uint8 {
	return c.Enable & c.Flag & 0x1F
}

// Next returns the lowest-numbered pending+enabled interrupt and
// true, or (0, false) if none is pending.
func (c *Controller) Next() (Kind, bool) {
	p := c.Pending()
	if p == 0 {
		return 0, false
	}
	for k := VBlank; k <= Joypad; k++ {
		if p&(1<<k) != 0 {
			return k, true
		}
	}
	panic("unreachable")
}

// ReadIF returns the IF register value as read from the bus: the top
// three bits always read 1.
func (c *Controller) ReadIF() uint8 {
	return c.Flag&0x1F | 0xE0
}

// WriteIF writes the IF register from the bus.
func (c *Controller) WriteIF(v uint8) {
	c.Flag = v & 0x1F
}

// ReadIE returns the IE register value.
func (c *Controller) ReadIE() uint8 {
	return c.Enable & 0x1F
}

// WriteIE writes the IE register from the bus.
func (c *Controller) WriteIE(v uint8) {
	c.Enable = v & 0x1F
}

var _ state.Stater = (*Controller)(nil)

func (c *Controller) Save(s *state.State) {
	s.Write8(c.Enable)
	s.Write8(c.Flag)
	s.WriteBool(c.IME)
}

func (c *Controller) Load(s *state.State) {
	c.Enable = s.Read8()
	c.Flag = s.Read8()
	c.IME = s.ReadBool()
}
