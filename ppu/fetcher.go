package ppu

// bgFetcher is the background/window pixel fetcher: a 4-state machine
// (tile index, tile low, tile high, push), 2 T-cycles per state,
// producing one 8-pixel batch every 8 T-cycles. There is no separate
// sleep state, and the push does not wait for room in the FIFO.
type bgFetcher struct {
	fifo       fifo
	state      uint8
	stepTimer  uint8
	tileX      uint8
	tileIndex  uint8
	low, high  uint8
	windowMode bool
	usedWindow bool
}

// spriteFetcher tracks OAM-scan candidates for the current scanline
// and the sprite pixels merged ahead of the output cursor. pending/
// filled model an 8-wide window aligned to the next 8 output
// positions; merging a sprite only fills slots a higher-priority
// sprite hasn't already claimed.
type spriteFetcher struct {
	candidates []spriteEntry
	consumed   []bool

	x       int
	discard int

	fetching   bool
	fetchTimer uint8
	fetchIdx   int

	pending [8]pixel
	filled  [8]bool
}

// startScanline resets both fetchers for a new Drawing-mode pass. It
// must run after scanOAM has populated spr.candidates.
func (p *PPU) startScanline() {
	p.bg.fifo.clear()
	p.bg.state = 0
	p.bg.stepTimer = 0
	p.bg.tileX = 0
	p.bg.windowMode = false
	p.bg.usedWindow = false

	if p.windowEnable && p.ly == p.wy {
		p.windowActivated = true
	}

	p.spr.x = 0
	p.spr.discard = int(p.scx) & 7
	p.spr.fetching = false
	p.spr.fetchTimer = 0

	n := len(p.spr.candidates)
	if cap(p.spr.consumed) < n {
		p.spr.consumed = make([]bool, n)
	} else {
		p.spr.consumed = p.spr.consumed[:n]
		for i := range p.spr.consumed {
			p.spr.consumed[i] = false
		}
	}
	for i := range p.spr.pending {
		p.spr.pending[i] = pixel{}
		p.spr.filled[i] = false
	}
}

// stepPixelPipeline advances the pipeline by one T-cycle during mode 3.
func (p *PPU) stepPixelPipeline() {
	if p.spr.fetching {
		p.spr.fetchTimer++
		if p.spr.fetchTimer >= 6 {
			p.mergeSprite()
			p.spr.fetching = false
		}
		return
	}

	if p.objEnable {
		if idx, ok := p.nextSpriteAt(p.spr.x); ok {
			if p.bg.fifo.len() == 0 {
				p.bgStep()
				return
			}
			p.spr.fetching = true
			p.spr.fetchTimer = 0
			p.spr.fetchIdx = idx
			return
		}
	}

	p.bgStep()
	if p.bg.fifo.len() < 8 {
		return
	}

	bgPx := p.bg.fifo.pop()
	sprPx := p.spr.pending[0]
	sprPresent := p.spr.filled[0]
	copy(p.spr.pending[:7], p.spr.pending[1:])
	copy(p.spr.filled[:7], p.spr.filled[1:])
	p.spr.pending[7] = pixel{}
	p.spr.filled[7] = false

	if p.spr.discard > 0 {
		p.spr.discard--
		return
	}

	p.current[p.ly][p.spr.x] = p.mixPixel(bgPx, sprPx, sprPresent)
	p.spr.x++
	p.checkWindowTrigger()
}

// nextSpriteAt returns the first not-yet-consumed candidate whose X
// matches outputX. Candidates are in OAM order, which doubles as the
// DMG's sprite-priority tiebreak.
func (p *PPU) nextSpriteAt(outputX int) (int, bool) {
	for i, c := range p.spr.candidates {
		if !p.spr.consumed[i] && c.x == outputX {
			return i, true
		}
	}
	return 0, false
}

func (p *PPU) checkWindowTrigger() {
	if p.bg.windowMode || !p.windowActivated || !p.windowEnable {
		return
	}
	if p.spr.x >= int(p.wx)-7 {
		p.bg.windowMode = true
		p.bg.usedWindow = true
		p.bg.fifo.clear()
		p.bg.state = 0
		p.bg.stepTimer = 0
		p.bg.tileX = 0
	}
}

func (p *PPU) mixPixel(bg, spr pixel, sprPresent bool) uint8 {
	if sprPresent && p.objEnable {
		bgColor := bg.color
		if !p.bgEnable {
			bgColor = 0
		}
		if spr.bgPriority && bgColor != 0 {
			return p.bgp.shade(bgColor)
		}
		pal := p.obp[0]
		if spr.palette == paletteOBP1 {
			pal = p.obp[1]
		}
		return pal.shade(spr.color)
	}
	bgColor := bg.color
	if !p.bgEnable {
		bgColor = 0
	}
	return p.bgp.shade(bgColor)
}

// bgStep advances the background/window fetcher state machine by one
// T-cycle; each of its 4 states takes 2 T-cycles, and completing the
// last one pushes a fresh 8-pixel batch.
func (p *PPU) bgStep() {
	f := &p.bg
	f.stepTimer++
	if f.stepTimer < 2 {
		return
	}
	f.stepTimer = 0

	switch f.state {
	case 0:
		var mapBase uint16
		var row, col uint8
		if f.windowMode {
			if p.windowTileHigh {
				mapBase = 0x9C00
			} else {
				mapBase = 0x9800
			}
			row = p.windowLineCounter / 8
			col = f.tileX & 0x1F
		} else {
			if p.bgTileHigh {
				mapBase = 0x9C00
			} else {
				mapBase = 0x9800
			}
			row = (p.ly + p.scy) / 8
			col = (f.tileX + p.scx/8) & 0x1F
		}
		addr := mapBase + uint16(row)*32 + uint16(col)
		f.tileIndex = p.vram[addr-0x8000]
		f.state = 1
	case 1:
		f.low = p.fetchTileByte(f.tileIndex, false)
		f.state = 2
	case 2:
		f.high = p.fetchTileByte(f.tileIndex, true)
		f.state = 3
	case 3:
		var px [8]pixel
		for i := 0; i < 8; i++ {
			bit := 7 - i
			lo := (f.low >> uint(bit)) & 1
			hi := (f.high >> uint(bit)) & 1
			px[i] = pixel{color: lo | hi<<1, palette: paletteBG}
		}
		f.fifo.push8(px)
		f.tileX++
		f.state = 0
	}
}

func (p *PPU) fetchTileByte(tileIndex uint8, high bool) uint8 {
	var fineY uint8
	if p.bg.windowMode {
		fineY = p.windowLineCounter % 8
	} else {
		fineY = (p.ly + p.scy) % 8
	}
	var addr uint16
	if p.bgTileDataLow {
		addr = 0x8000 + uint16(tileIndex)*16
	} else {
		addr = uint16(int32(0x9000) + int32(int8(tileIndex))*16)
	}
	addr += uint16(fineY) * 2
	if high {
		addr++
	}
	return p.vram[addr-0x8000]
}

// mergeSprite fetches the 8x8 (or 8x16) row of the candidate sprite
// under the output cursor and writes its opaque pixels into the
// pending window, skipping any slot a higher-priority sprite already
// claimed.
func (p *PPU) mergeSprite() {
	idx := p.spr.fetchIdx
	sprite := p.spr.candidates[idx]
	p.spr.consumed[idx] = true

	height := 8
	if p.objSize16 {
		height = 16
	}
	row := int(p.ly) - sprite.y
	if sprite.yFlip() {
		row = height - 1 - row
	}
	tile := sprite.tile
	addr := 0x8000 + uint16(tile)*16 + uint16(row)*2
	low := p.vram[addr-0x8000]
	high := p.vram[addr+1-0x8000]

	pal := paletteOBP0
	if sprite.obp1() {
		pal = paletteOBP1
	}

	for i := 0; i < 8; i++ {
		bit := 7 - i
		if sprite.xFlip() {
			bit = i
		}
		lo := (low >> uint(bit)) & 1
		hi := (high >> uint(bit)) & 1
		color := lo | hi<<1
		if color == 0 || p.spr.filled[i] {
			continue
		}
		p.spr.pending[i] = pixel{color: color, palette: pal, bgPriority: sprite.bgPriority()}
		p.spr.filled[i] = true
	}
}
