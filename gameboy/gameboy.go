// Package gameboy wires the CPU, PPU, APU, Timer, interrupt
// controller, joypad, cartridge, and memory map into the top-level
// cooperative loop spec.md §2/§5 describes: one CPU instruction per
// Step, its T-cycle cost fed in order to Timer, PPU, and APU.
package gameboy

import (
	"github.com/kdean/dmgboy/apu"
	"github.com/kdean/dmgboy/cartridge"
	"github.com/kdean/dmgboy/cheats"
	"github.com/kdean/dmgboy/cpu"
	"github.com/kdean/dmgboy/interrupt"
	"github.com/kdean/dmgboy/joypad"
	"github.com/kdean/dmgboy/log"
	"github.com/kdean/dmgboy/mmu"
	"github.com/kdean/dmgboy/ppu"
	"github.com/kdean/dmgboy/state"
	"github.com/kdean/dmgboy/timer"
)

// ClockSpeed is the DMG master clock frequency in Hz.
const ClockSpeed = 4194304

// CyclesPerFrame is the number of T-cycles in one 154-scanline frame
// (154 * 456), matching spec.md §4.5 and the cycle-accounting
// property in §8.
const CyclesPerFrame = 70224

// DefaultSampleRate is the sample rate used when WithSampleRate is
// not supplied.
const DefaultSampleRate = 44100

// Option configures a GameBoy at construction time, matching the
// teacher's functional-options pattern for host wiring.
type Option func(*options)

type options struct {
	logger     log.Logger
	sampleRate int
	cheats     *cheats.Set
	ram        []byte
}

// WithLogger injects the logging collaborator used by every component
// that can observe an anomaly. The default is log.Null().
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSampleRate overrides the APU's sample collection rate (default
// 44100 Hz).
func WithSampleRate(hz int) Option {
	return func(o *options) { o.sampleRate = hz }
}

// WithCheats preloads an active Game Genie / GameShark cheat set.
func WithCheats(c *cheats.Set) Option {
	return func(o *options) { o.cheats = c }
}

// WithSavedRAM restores previously-persisted cartridge external RAM.
// The host is responsible for reading/writing this blob; the core
// never touches a file itself (spec.md §1/§6).
func WithSavedRAM(ram []byte) Option {
	return func(o *options) { o.ram = ram }
}

// GameBoy is the assembled emulator core: every subsystem spec.md §2
// names, wired together and advanced in lockstep by Step/StepFrame.
type GameBoy struct {
	CPU       *cpu.CPU
	MMU       *mmu.MMU
	PPU       *ppu.PPU
	APU       *apu.APU
	Timer     *timer.Controller
	Interrupt *interrupt.Controller
	Joypad    *joypad.Controller
	Cartridge *cartridge.Cartridge

	log log.Logger
}

// New constructs a GameBoy from a decoded cartridge ROM. rom must
// already be a raw ROM image (use the romfile package first if it may
// be archive-packed).
func New(rom []byte, opts ...Option) (*GameBoy, error) {
	o := options{sampleRate: DefaultSampleRate}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Null()
	}

	cart, err := cartridge.New(rom, o.ram)
	if err != nil {
		return nil, err
	}
	if o.cheats != nil {
		cart.Cheats().Merge(o.cheats)
	}

	irq := interrupt.New()
	tmr := timer.New(irq)
	joy := joypad.New(irq)
	snd := apu.New(o.sampleRate)

	g := &GameBoy{
		Interrupt: irq,
		Timer:     tmr,
		Joypad:    joy,
		APU:       snd,
		Cartridge: cart,
		log:       o.logger,
	}

	// PPU.New takes a bus-read callback for its DMA unit; the memory
	// map that owns that callback is constructed immediately after,
	// referencing this PPU. Neither constructor invokes the callback,
	// so the forward reference resolves safely by the time Step runs.
	g.PPU = ppu.New(irq, g.busRead, o.logger)
	g.MMU = mmu.New(cart, g.PPU, snd, tmr, joy, irq, o.logger)
	g.CPU = cpu.New(g.MMU, irq, o.logger)

	return g, nil
}

// busRead is the callback PPU DMA uses to read source bytes through
// the full memory map (ROM, WRAM, etc. - never OAM itself).
func (g *GameBoy) busRead(addr uint16) uint8 {
	return g.MMU.Read(addr)
}

// Step executes exactly one CPU instruction (or interrupt dispatch,
// or HALT/STOP tick) and advances Timer, PPU, and APU by the same
// T-cycle count, per spec.md §2/§5's ordering contract. It returns the
// number of T-cycles charged.
func (g *GameBoy) Step() (uint8, error) {
	cycles, err := g.CPU.Step()
	if err != nil {
		return cycles, err
	}
	g.Timer.Tick(cycles)
	g.PPU.Tick(cycles)
	g.APU.Tick(cycles)
	return cycles, nil
}

// StepFrame runs Step until at least one full frame's worth of
// T-cycles (CyclesPerFrame) has elapsed, then returns the completed
// frame. A host driving real-time playback calls this once per
// 1/60s tick.
func (g *GameBoy) StepFrame() (*ppu.Frame, error) {
	var total int
	for total < CyclesPerFrame {
		cycles, err := g.Step()
		if err != nil {
			return nil, err
		}
		total += int(cycles)
	}
	return g.PPU.CurrentFrame(), nil
}

// PressButton and ReleaseButton forward to the joypad controller; a
// host drains its own input queue and calls these once per step
// rather than the core calling back into host code (spec.md §9).
func (g *GameBoy) PressButton(b joypad.Button)   { g.Joypad.Press(b) }
func (g *GameBoy) ReleaseButton(b joypad.Button) { g.Joypad.Release(b) }

// ProcessInputs applies a batch of button press/release events.
func (g *GameBoy) ProcessInputs(in joypad.Inputs) { g.Joypad.ProcessInputs(in) }

// Samples drains the APU's buffered audio output.
func (g *GameBoy) Samples() []apu.Sample { return g.APU.Samples() }

// components returns the stateful components in the fixed walk order
// SaveState/LoadState use.
func (g *GameBoy) components() []state.Stater {
	return []state.Stater{
		g.Cartridge,
		g.Interrupt,
		g.Timer,
		g.CPU,
		g.PPU,
		g.APU,
		g.Joypad,
		g.MMU,
	}
}

// SaveState serializes every stateful component, in a fixed order,
// and gzip-compresses the result. The host decides whether and where
// to persist the bytes; the core never touches a filesystem path
// itself.
func (g *GameBoy) SaveState() ([]byte, error) {
	s := state.New()
	for _, c := range g.components() {
		c.Save(s)
	}
	return s.Compress()
}

// LoadState restores a state previously produced by SaveState, in the
// same fixed component order.
func (g *GameBoy) LoadState(compressed []byte) error {
	s, err := state.Decompress(compressed)
	if err != nil {
		return err
	}
	for _, c := range g.components() {
		c.Load(s)
	}
	return nil
}
