package ppu

import "github.com/kdean/dmgboy/state"

// DMA is the OAM DMA unit: writing 0xFF46 starts a 160-byte copy from
// source<<8 into OAM. Per spec.md §4.5 the transfer runs one byte per
// T-cycle (160 T-cycles total), rather than the slower real-hardware
// cadence of one byte per 4 cycles.
type DMA struct {
	busRead func(uint16) uint8
	ppu     *PPU

	active bool
	src    uint16
	offset uint16
	value  uint8
}

func newDMA(busRead func(uint16) uint8, p *PPU) *DMA {
	return &DMA{busRead: busRead, ppu: p}
}

// source returns the last value written to 0xFF46, as read back by
// the CPU.
func (d *DMA) source() uint8 { return d.value }

func (d *DMA) start(v uint8) {
	d.value = v
	d.src = uint16(v) << 8
	d.offset = 0
	d.active = true
}

func (d *DMA) tick(cycles uint8) {
	if !d.active {
		return
	}
	for i := uint8(0); i < cycles && d.active; i++ {
		b := d.busRead(d.src + d.offset)
		d.ppu.oam[d.offset] = b
		d.offset++
		if d.offset >= 0xA0 {
			d.active = false
		}
	}
}

// InProgress reports whether a transfer is currently running.
func (d *DMA) InProgress() bool { return d.active }

func (d *DMA) save(s *state.State) {
	s.WriteBool(d.active)
	s.Write16(d.src)
	s.Write16(d.offset)
	s.Write8(d.value)
}

func (d *DMA) load(s *state.State) {
	d.active = s.ReadBool()
	d.src = s.Read16()
	d.offset = s.Read16()
	d.value = s.Read8()
}
