// Package ppu implements the pixel processing unit: the scanline mode
// FSM, OAM scan, the dual-FIFO pixel fetcher, DMA, and the 160x144
// framebuffer. Per spec.md §9's design note, the PPU owns VRAM and
// OAM outright; the memory map dispatches CPU accesses of those
// ranges here through ReadVRAM/WriteVRAM/ReadOAM/WriteOAM (Read/Write
// answer the LCD registers) rather than the PPU holding a
// back-reference to the bus. Interrupts flow out through the
// interrupt.Controller handle passed to New.
package ppu

import (
	"github.com/kdean/dmgboy/interrupt"
	"github.com/kdean/dmgboy/log"
	"github.com/kdean/dmgboy/state"
)

const (
	ScreenWidth  = 160
	ScreenHeight = 144

	oamScanCycles  = 80
	lineCycles     = 456
	vblankLine     = 144
	totalLines     = 154
)

// Mode is one of the four PPU modes, matching STAT bits 0-1.
type Mode uint8

const (
	ModeHBlank Mode = iota
	ModeVBlank
	ModeOAMScan
	ModeDrawing
)

// Frame is a rendered 160x144 grid of 2-bit shade values (0=lightest,
// 3=darkest), already resolved through the active palette.
type Frame [ScreenHeight][ScreenWidth]uint8

// PPU is the pixel processing unit.
type PPU struct {
	// LCDC
	lcdEnable      bool
	windowTileHigh bool
	windowEnable   bool
	bgTileDataLow  bool // true => 0x8800 signed addressing
	bgTileHigh     bool
	objSize16      bool
	objEnable      bool
	bgEnable       bool

	// STAT
	mode            Mode
	lycInterrupt    bool
	oamInterrupt    bool
	vblankInterrupt bool
	hblankInterrupt bool
	statLine        bool // last computed OR of enabled+active STAT sources

	scy, scx uint8
	ly       uint8
	lyc      uint8
	wy, wx   uint8
	bgp      palette
	obp      [2]palette

	windowLineCounter uint8
	windowActivated   bool // latched once WY==LY on some line this frame

	vram [0x2000]uint8
	oam  [0xA0]uint8

	cycleInLine int

	current  Frame
	previous Frame

	bg  bgFetcher
	spr spriteFetcher

	dma *DMA

	irq *interrupt.Controller
	log log.Logger
}

// New returns a PPU after writing the post-boot LCDC=0x91, STAT=0x85
// and BGP=0xFC. Only STAT bits 3-6 are writable, and the PPU starts in
// OAM scan (mode 2) with LY==LYC==0, so STAT reads back 0x86, not 0x85.
func New(irq *interrupt.Controller, busRead func(uint16) uint8, logger log.Logger) *PPU {
	if logger == nil {
		logger = log.Null()
	}
	p := &PPU{irq: irq, log: logger}
	p.writeLCDC(0x91)
	p.writeSTAT(0x85)
	p.bgp = decodePalette(0xFC)
	p.obp[0] = decodePalette(0xFF)
	p.obp[1] = decodePalette(0xFF)
	p.mode = ModeOAMScan
	p.dma = newDMA(busRead, p)
	return p
}

// CurrentFrame returns the most recently completed frame.
func (p *PPU) CurrentFrame() *Frame { return &p.previous }

// DMA returns the DMA unit so the memory map can route 0xFF46 writes
// to it.
func (p *PPU) DMA() *DMA { return p.dma }

// ReadVRAM and ReadOAM implement the narrow interface the memory map
// uses to dispatch CPU accesses into PPU-owned memory. Per spec.md §3
// these always return live data even during modes 2/3 - the stricter
// blocking behavior the spec permits is not implemented here.
func (p *PPU) ReadVRAM(addr uint16) uint8 { return p.vram[addr-0x8000] }
func (p *PPU) WriteVRAM(addr uint16, v uint8) {
	p.vram[addr-0x8000] = v
}

func (p *PPU) ReadOAM(addr uint16) uint8 { return p.oam[addr-0xFE00] }
func (p *PPU) WriteOAM(addr uint16, v uint8) {
	p.oam[addr-0xFE00] = v
}

// Tick advances the PPU by cycles T-cycles.
func (p *PPU) Tick(cycles uint8) {
	p.dma.tick(cycles)
	if !p.lcdEnable {
		return
	}
	for i := uint8(0); i < cycles; i++ {
		p.tickOne()
	}
}

func (p *PPU) tickOne() {
	p.cycleInLine++

	switch p.mode {
	case ModeOAMScan:
		if p.cycleInLine == 1 {
			p.scanOAM()
		}
		if p.cycleInLine >= oamScanCycles {
			p.enterMode(ModeDrawing)
			p.startScanline()
		}
	case ModeDrawing:
		p.stepPixelPipeline()
		if p.spr.x >= ScreenWidth {
			p.enterMode(ModeHBlank)
		}
	case ModeHBlank:
		if p.cycleInLine >= lineCycles {
			p.advanceLine()
		}
	case ModeVBlank:
		if p.cycleInLine >= lineCycles {
			p.advanceLine()
		}
	}
}

func (p *PPU) advanceLine() {
	if p.bg.usedWindow {
		p.windowLineCounter++
	}
	p.cycleInLine = 0
	p.ly++
	if p.ly == vblankLine {
		p.current, p.previous = Frame{}, p.current
		p.enterMode(ModeVBlank)
		p.irq.Request(interrupt.VBlank)
	} else if p.ly > 153 {
		p.ly = 0
		p.windowLineCounter = 0
		p.windowActivated = false
		p.enterMode(ModeOAMScan)
	} else if p.mode == ModeVBlank {
		// still inside the 10 vblank lines
	} else {
		p.enterMode(ModeOAMScan)
	}
	p.updateSTATLine()
}

func (p *PPU) enterMode(m Mode) {
	p.mode = m
	p.updateSTATLine()
}

// statSourceActive returns the logical OR of every STAT source that
// is both enabled and currently true.
func (p *PPU) statSourceActive() bool {
	lycMatch := p.ly == p.lyc
	return (p.lycInterrupt && lycMatch) ||
		(p.oamInterrupt && p.mode == ModeOAMScan) ||
		(p.vblankInterrupt && p.mode == ModeVBlank) ||
		(p.hblankInterrupt && p.mode == ModeHBlank)
}

// updateSTATLine fires a STAT interrupt only on the 0->1 transition
// of the OR of enabled sources, per spec.md §4.5.
func (p *PPU) updateSTATLine() {
	active := p.statSourceActive()
	if active && !p.statLine {
		p.irq.Request(interrupt.LCDStat)
	}
	p.statLine = active
}

var _ state.Stater = (*PPU)(nil)

func (p *PPU) Save(s *state.State) {
	s.Write8(p.readLCDC())
	s.Write8(p.readSTAT())
	s.Write8(p.scy)
	s.Write8(p.scx)
	s.Write8(p.ly)
	s.Write8(p.lyc)
	s.Write8(p.wy)
	s.Write8(p.wx)
	s.Write8(p.bgp.encode())
	s.Write8(p.obp[0].encode())
	s.Write8(p.obp[1].encode())
	s.Write8(p.windowLineCounter)
	s.WriteBool(p.windowActivated)
	s.WriteBool(p.statLine)
	s.Write32(uint32(p.cycleInLine))
	s.WriteData(p.vram[:])
	s.WriteData(p.oam[:])
	p.dma.save(s)
}

func (p *PPU) Load(s *state.State) {
	p.writeLCDC(s.Read8())
	p.writeSTAT(s.Read8())
	p.scy = s.Read8()
	p.scx = s.Read8()
	p.ly = s.Read8()
	p.lyc = s.Read8()
	p.wy = s.Read8()
	p.wx = s.Read8()
	p.bgp = decodePalette(s.Read8())
	p.obp[0] = decodePalette(s.Read8())
	p.obp[1] = decodePalette(s.Read8())
	p.windowLineCounter = s.Read8()
	p.windowActivated = s.ReadBool()
	p.statLine = s.ReadBool()
	p.cycleInLine = int(s.Read32())
	s.ReadData(p.vram[:])
	s.ReadData(p.oam[:])
	p.dma.load(s)
	p.mode = Mode(p.readSTAT() & 0x03)
}
