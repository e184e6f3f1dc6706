package apu

import "github.com/kdean/dmgboy/state"

const cpuClock = 4194304
const frameSeqPeriod = cpuClock / 512

// Sample is one stereo output frame, each channel in [-1, 1].
type Sample struct {
	Left, Right float32
}

// APU is the audio processing unit.
type APU struct {
	ch1, ch2, ch3, ch4 channel

	enabled      bool
	frameSeqStep uint8
	frameSeqTick int

	leftVolume, rightVolume uint8 // NR50 bits 4-6 / 0-2
	panning                 uint8 // NR51

	sampleRate   int
	samplePeriod int
	sampleTick   int
	buffer       []Sample
}

// New returns an APU with the post-boot register state from spec.md
// §4.2 (NR52=0xF1) and a sample buffer sized for sampleRate (commonly
// 44100 Hz).
func New(sampleRate int) *APU {
	a := &APU{sampleRate: sampleRate}
	if a.sampleRate <= 0 {
		a.sampleRate = 44100
	}
	a.samplePeriod = cpuClock / a.sampleRate
	a.ch1 = channel{kind: kindSquare1}
	a.ch1.sq.hasSweep = true
	a.ch1.core.enabled = true
	a.ch2 = channel{kind: kindSquare2}
	a.ch3 = channel{kind: kindWave}
	a.ch4 = channel{kind: kindNoise}
	a.enabled = true
	a.leftVolume, a.rightVolume = 7, 7
	a.panning = 0xF3
	return a
}

// Samples drains and returns the buffered samples collected so far.
func (a *APU) Samples() []Sample {
	out := a.buffer
	a.buffer = nil
	return out
}

// Tick advances the APU by cycles T-cycles.
func (a *APU) Tick(cycles uint8) {
	for i := uint8(0); i < cycles; i++ {
		a.tickOne()
	}
}

func (a *APU) tickOne() {
	if a.enabled {
		a.frameSeqTick++
		if a.frameSeqTick >= frameSeqPeriod {
			a.frameSeqTick = 0
			a.stepFrameSequencer()
		}
		a.ch1.stepFreq()
		a.ch2.stepFreq()
		a.ch3.stepFreq()
		a.ch4.stepFreq()
	}

	a.sampleTick++
	if a.sampleTick >= a.samplePeriod {
		a.sampleTick -= a.samplePeriod
		a.collectSample()
	}
}

func (a *APU) stepFrameSequencer() {
	a.frameSeqStep = (a.frameSeqStep + 1) & 7
	switch a.frameSeqStep {
	case 0, 4:
		a.ch1.stepLength()
		a.ch2.stepLength()
		a.ch3.stepLength()
		a.ch4.stepLength()
	case 2, 6:
		a.ch1.stepLength()
		a.ch2.stepLength()
		a.ch3.stepLength()
		a.ch4.stepLength()
		a.ch1.stepSweep()
	case 7:
		a.ch1.stepEnvelope()
		a.ch2.stepEnvelope()
		a.ch4.stepEnvelope()
	}
}

// contribution converts a 0-15 generator amplitude into the [-1, 1]
// range per spec.md §4.6.
func contribution(gen uint8) float32 {
	return (float32(gen)/15)*2 - 1
}

func (a *APU) collectSample() {
	if !a.enabled {
		a.buffer = append(a.buffer, Sample{})
		return
	}
	var left, right float32
	mix := func(amp uint8, rightBit, leftBit uint8) {
		v := contribution(amp)
		if a.panning&rightBit != 0 {
			right += v
		}
		if a.panning&leftBit != 0 {
			left += v
		}
	}
	mix(a.ch1.amplitude(), 0x01, 0x10)
	mix(a.ch2.amplitude(), 0x02, 0x20)
	mix(a.ch3.amplitude(), 0x04, 0x40)
	mix(a.ch4.amplitude(), 0x08, 0x80)

	left *= (float32(a.leftVolume) + 1) / 8
	right *= (float32(a.rightVolume) + 1) / 8
	a.buffer = append(a.buffer, Sample{Left: left / 4, Right: right / 4})
}

var _ state.Stater = (*APU)(nil)

func (a *APU) Save(s *state.State) {
	saveChannel(s, &a.ch1)
	saveChannel(s, &a.ch2)
	saveChannel(s, &a.ch3)
	saveChannel(s, &a.ch4)
	s.WriteBool(a.enabled)
	s.Write8(a.frameSeqStep)
	s.Write32(uint32(a.frameSeqTick))
	s.Write8(a.leftVolume)
	s.Write8(a.rightVolume)
	s.Write8(a.panning)
}

func (a *APU) Load(s *state.State) {
	loadChannel(s, &a.ch1)
	loadChannel(s, &a.ch2)
	loadChannel(s, &a.ch3)
	loadChannel(s, &a.ch4)
	a.enabled = s.ReadBool()
	a.frameSeqStep = s.Read8()
	a.frameSeqTick = int(s.Read32())
	a.leftVolume = s.Read8()
	a.rightVolume = s.Read8()
	a.panning = s.Read8()
}

func saveChannel(s *state.State, c *channel) {
	s.WriteBool(c.core.enabled)
	s.WriteBool(c.core.dacOn)
	s.Write32(uint32(c.core.freqTimer))
	s.Write32(uint32(c.core.freqPeriod))
	s.Write16(c.core.length)
	s.WriteBool(c.core.lengthEnabled)
	s.Write8(c.core.volume)
	s.Write8(c.core.initVolume)
	s.Write8(c.core.envPeriod)
	s.WriteBool(c.core.envIncrease)
	s.Write8(c.core.envTimer)

	s.Write16(c.sq.freq)
	s.Write8(c.sq.duty)
	s.Write8(c.sq.step)
	s.WriteBool(c.sq.hasSweep)
	s.Write8(c.sq.sweepPeriod)
	s.WriteBool(c.sq.sweepDir)
	s.Write8(c.sq.sweepShift)
	s.Write8(c.sq.sweepTimer)
	s.WriteBool(c.sq.sweepEnable)
	s.Write16(c.sq.shadowFreq)

	s.Write16(c.wv.freq)
	s.WriteData(c.wv.ram[:])
	s.Write8(c.wv.position)
	s.Write8(c.wv.volumeShift)

	s.Write16(c.ns.lfsr)
	s.WriteBool(c.ns.widthMode)
	s.Write8(c.ns.divisorCode)
	s.Write8(c.ns.shiftAmount)
}

func loadChannel(s *state.State, c *channel) {
	c.core.enabled = s.ReadBool()
	c.core.dacOn = s.ReadBool()
	c.core.freqTimer = int(s.Read32())
	c.core.freqPeriod = int(s.Read32())
	c.core.length = s.Read16()
	c.core.lengthEnabled = s.ReadBool()
	c.core.volume = s.Read8()
	c.core.initVolume = s.Read8()
	c.core.envPeriod = s.Read8()
	c.core.envIncrease = s.ReadBool()
	c.core.envTimer = s.Read8()

	c.sq.freq = s.Read16()
	c.sq.duty = s.Read8()
	c.sq.step = s.Read8()
	c.sq.hasSweep = s.ReadBool()
	c.sq.sweepPeriod = s.Read8()
	c.sq.sweepDir = s.ReadBool()
	c.sq.sweepShift = s.Read8()
	c.sq.sweepTimer = s.Read8()
	c.sq.sweepEnable = s.ReadBool()
	c.sq.shadowFreq = s.Read16()

	c.wv.freq = s.Read16()
	s.ReadData(c.wv.ram[:])
	c.wv.position = s.Read8()
	c.wv.volumeShift = s.Read8()

	c.ns.lfsr = s.Read16()
	c.ns.widthMode = s.ReadBool()
	c.ns.divisorCode = s.Read8()
	c.ns.shiftAmount = s.Read8()
}
