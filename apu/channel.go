// Package apu implements the audio processing unit: the 512 Hz frame
// sequencer and the four sound channels it gates, per spec.md §4.6.
//
// The source material models channels through inheritance; per
// spec.md §9's redesign note this is re-expressed as a sum type. core
// holds the scaffolding every channel shares (frequency timer, length
// timer, enabled flag, envelope); the kind-specific payload lives in
// square/wave/noise and the frame sequencer dispatches over tag.
package apu

// kind tags which payload a channel carries.
type kind uint8

const (
	kindSquare1 kind = iota
	kindSquare2
	kindWave
	kindNoise
)

// core is the scaffolding shared by every channel.
type core struct {
	enabled bool
	dacOn   bool

	freqTimer  int
	freqPeriod int

	length        uint16
	lengthEnabled bool

	volume       uint8
	initVolume   uint8
	envPeriod    uint8
	envIncrease  bool
	envTimer     uint8
}

// square holds Channel 1/2 state: duty cycle generator plus, for
// Channel 1 only, the frequency sweep unit.
type square struct {
	freq uint16 // 11-bit
	duty uint8  // 0-3, NR11/NR21 bits 6-7
	step uint8  // 0-7 position in the duty waveform

	hasSweep    bool
	sweepPeriod uint8
	sweepDir    bool // true = decrease
	sweepShift  uint8
	sweepTimer  uint8
	sweepEnable bool
	shadowFreq  uint16
}

var dutyTable = [4][8]uint8{
	{0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 1, 1, 1},
	{0, 1, 1, 1, 1, 1, 1, 0},
}

// wave holds Channel 3 state: 32 4-bit samples packed two-per-byte,
// high nibble first, per spec.md §4.6/§6.
type wave struct {
	freq        uint16
	ram         [16]uint8
	position    uint8
	volumeShift uint8 // 0,1,2, or 4 for mute
}

var waveShiftTable = [4]uint8{4, 0, 1, 2}

// noise holds Channel 4 state: a 15-bit LFSR (or 7-bit in width mode).
type noise struct {
	lfsr        uint16
	widthMode   bool
	divisorCode uint8
	shiftAmount uint8
}

var noiseDivisorTable = [8]int{8, 16, 32, 48, 64, 80, 96, 112}

// channel is one of the four sound generators.
type channel struct {
	kind kind
	core core
	sq   square
	wv   wave
	ns   noise
}

// stepLength decrements the length timer if enabled, disabling the
// channel when it reaches zero.
func (c *channel) stepLength() {
	if !c.core.lengthEnabled || c.core.length == 0 {
		return
	}
	c.core.length--
	if c.core.length == 0 {
		c.core.enabled = false
	}
}

// stepEnvelope advances the volume envelope on frame-sequencer step 7.
func (c *channel) stepEnvelope() {
	if c.core.envPeriod == 0 {
		return
	}
	if c.core.envTimer > 0 {
		c.core.envTimer--
	}
	if c.core.envTimer == 0 {
		c.core.envTimer = c.core.envPeriod
		if c.core.envIncrease && c.core.volume < 15 {
			c.core.volume++
		} else if !c.core.envIncrease && c.core.volume > 0 {
			c.core.volume--
		}
	}
}

// sweepCalc computes the next sweep frequency and disables the
// channel if it overflows 2047, per spec.md §4.6.
func (c *channel) sweepCalc() uint16 {
	delta := c.sq.shadowFreq >> c.sq.sweepShift
	var next uint16
	if c.sq.sweepDir {
		next = c.sq.shadowFreq - delta
	} else {
		next = c.sq.shadowFreq + delta
	}
	if next > 2047 {
		c.core.enabled = false
	}
	return next
}

// stepSweep runs one sweep tick on frame-sequencer steps 2 and 6.
// Only Channel 1 carries a sweep unit.
func (c *channel) stepSweep() {
	if !c.sq.hasSweep {
		return
	}
	if c.sq.sweepTimer > 0 {
		c.sq.sweepTimer--
	}
	if c.sq.sweepTimer != 0 {
		return
	}
	reload := c.sq.sweepPeriod
	if reload == 0 {
		reload = 8
	}
	c.sq.sweepTimer = reload
	if !c.core.enabled || !c.sq.sweepEnable || c.sq.sweepPeriod == 0 {
		return
	}
	next := c.sweepCalc()
	if next <= 2047 && c.sq.sweepShift != 0 {
		c.sq.shadowFreq = next
		c.sq.freq = next & 0x7FF
		c.sweepCalc() // second overflow check, per spec.md §4.6
	}
}

// stepFreq advances the channel's own frequency-timer/generator by
// one T-cycle.
func (c *channel) stepFreq() {
	if c.core.freqTimer > 0 {
		c.core.freqTimer--
	}
	if c.core.freqTimer != 0 {
		return
	}
	switch c.kind {
	case kindSquare1, kindSquare2:
		c.core.freqTimer = (2048 - int(c.sq.freq)) * 4
		c.sq.step = (c.sq.step + 1) & 7
	case kindWave:
		c.core.freqTimer = (2048 - int(c.wv.freq)) * 2
		c.wv.position = (c.wv.position + 1) & 31
	case kindNoise:
		c.core.freqTimer = noiseDivisorTable[c.ns.divisorCode] << c.ns.shiftAmount
		bit := (c.ns.lfsr ^ (c.ns.lfsr >> 1)) & 1
		c.ns.lfsr = (c.ns.lfsr >> 1) & 0x7FFF
		c.ns.lfsr |= bit << 14
		if c.ns.widthMode {
			c.ns.lfsr = (c.ns.lfsr &^ (1 << 6)) | (bit << 6)
		}
	}
}

// amplitude returns the channel's current raw generator output, 0-15.
func (c *channel) amplitude() uint8 {
	if !c.core.enabled || !c.core.dacOn {
		return 0
	}
	switch c.kind {
	case kindSquare1, kindSquare2:
		if dutyTable[c.sq.duty][c.sq.step] == 0 {
			return 0
		}
		return c.core.volume
	case kindWave:
		idx := c.wv.position
		b := c.wv.ram[idx/2]
		var nibble uint8
		if idx%2 == 0 {
			nibble = b >> 4
		} else {
			nibble = b & 0x0F
		}
		if c.wv.volumeShift == 4 {
			return 0
		}
		return nibble >> c.wv.volumeShift
	case kindNoise:
		if (^c.ns.lfsr)&1 == 0 {
			return 0
		}
		return c.core.volume
	}
	return 0
}

// trigger implements the common trigger event fired by writes to
// NRx4 bit 7: enable, reload the length timer if exhausted, reload
// the frequency timer/envelope, and (Channel 1 only) arm the sweep
// unit. Per spec.md §4.6.
func (c *channel) trigger(maxLength uint16) {
	c.core.enabled = c.core.dacOn
	if c.core.length == 0 {
		c.core.length = maxLength
	}
	switch c.kind {
	case kindSquare1, kindSquare2:
		c.core.freqTimer = (2048 - int(c.sq.freq)) * 4
	case kindWave:
		c.core.freqTimer = (2048 - int(c.wv.freq)) * 2
		c.wv.position = 0
	case kindNoise:
		c.core.freqTimer = noiseDivisorTable[c.ns.divisorCode] << c.ns.shiftAmount
		c.ns.lfsr = 0x7FFF
	}
	c.core.envTimer = c.core.envPeriod
	c.core.volume = c.core.initVolume
	if c.sq.hasSweep {
		c.sq.shadowFreq = c.sq.freq
		reload := c.sq.sweepPeriod
		if reload == 0 {
			reload = 8
		}
		c.sq.sweepTimer = reload
		c.sq.sweepEnable = c.sq.sweepPeriod != 0 || c.sq.sweepShift != 0
		if c.sq.sweepShift != 0 {
			c.sweepCalc()
		}
	}
}
