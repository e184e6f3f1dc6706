package ppu

// spriteEntry is a decoded 4-byte OAM entry, per spec.md §3. X/Y are
// stored pre-adjusted (Y-16, X-8) so they can be compared directly
// against LY/output-x.
type spriteEntry struct {
	y, x   int
	tile   uint8
	attrs  uint8
	oamIdx uint8
}

func (s spriteEntry) xFlip() bool      { return s.attrs&0x20 != 0 }
func (s spriteEntry) yFlip() bool      { return s.attrs&0x40 != 0 }
func (s spriteEntry) bgPriority() bool { return s.attrs&0x80 != 0 }
func (s spriteEntry) obp1() bool       { return s.attrs&0x10 != 0 }

// scanOAM walks the 40 sprites in OAM order and keeps at most 10
// whose Y range contains LY, per spec.md §4.5.
func (p *PPU) scanOAM() {
	p.spr.candidates = p.spr.candidates[:0]
	height := 8
	if p.objSize16 {
		height = 16
	}
	for i := 0; i < 40 && len(p.spr.candidates) < 10; i++ {
		base := i * 4
		y := int(p.oam[base]) - 16
		x := int(p.oam[base+1]) - 8
		tile := p.oam[base+2]
		attrs := p.oam[base+3]
		if p.objSize16 {
			tile &^= 0x01
		}
		if int(p.ly) >= y && int(p.ly) < y+height {
			p.spr.candidates = append(p.spr.candidates, spriteEntry{
				y: y, x: x, tile: tile, attrs: attrs, oamIdx: uint8(i),
			})
		}
	}
}
