// This file is part of Saturn Core.
//
// Saturn Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Saturn Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Saturn Core.  If not, see <https://www.gnu.org/licenses/>.

// Package scsp implements the sound chip: 32 PCM channels each with its
// own envelope and loop generator, a shared DSP, and a fixed 44.1kHz
// stereo mixdown (spec §4.6). Modelled on the teacher's hardware/tia
// package in its "many independent channels driven by one Step per
// master tick" shape, generalised from TIA's 2 channels to 32 and from
// square/noise generators to sample playback with an envelope state
// machine.
package scsp

import "github.com/saturnemu/satcore/satmath"

const (
	ChannelCount = 32
	RAMSize      = 512 * 1024

	// maxLevel is the envelope's 10-bit attenuation ceiling (1023 = silent).
	maxLevel uint16 = 1023
)

// LoopMode selects how a channel's playback position wraps at LoopEnd.
type LoopMode int

const (
	LoopNone LoopMode = iota
	LoopNormal
	LoopReverse
	LoopPingPong
)

// EnvelopeStage identifies where a channel sits in its ADSR cycle.
type EnvelopeStage int

const (
	StageAttack EnvelopeStage = iota
	StageDecay
	StageSustain
	StageRelease
	StageOff
)

// PCMFormat selects the sample encoding a channel reads from RAM.
type PCMFormat int

const (
	PCM8Bit PCMFormat = iota
	PCM16Bit
	PCM4BitADPCM
)

// Channel is one of the 32 independent PCM voices.
type Channel struct {
	Enabled bool
	Format  PCMFormat
	Loop    LoopMode

	StartAddr uint32
	LoopStart uint16
	LoopEnd   uint16

	// Position is the 8.24 fixed-point sample offset within the voice's
	// sample data, advanced by Step each tick (spec §4.6 "8.24
	// fixed-point sample position").
	Position uint32
	Step     uint32
	reverse  bool

	Stage      EnvelopeStage
	Level      uint16 // 0-1023: current attenuation level, 1023=silent
	AttackRate uint8
	DecayRate  uint8
	SustainLevel uint16
	ReleaseRate  uint8

	PanLeft, PanRight uint8 // 0-31 attenuation, 0=full volume

	LFOEnabled bool
	lfoPhase   uint32
	LFOStep    uint32
	LFODepth   uint8

	// DecimationSteps implements spec §4.6's 0..5 step-granularity
	// decimation: the channel's envelope/position advance only runs
	// every 2^DecimationSteps ticks.
	DecimationSteps uint8
	decimCounter    uint8
}

// SCSP owns the shared sound RAM, the 32 channels, and the embedded DSP.
type SCSP struct {
	RAM      [RAMSize]byte
	Channels [ChannelCount]Channel
	DSP      DSP

	MasterVolume uint8 // 0-15

	sampleAccum int64
	sampleCount uint32
}

// New returns an SCSP with every channel disabled.
func New() *SCSP {
	return &SCSP{MasterVolume: 15}
}

// attenMultiplier converts a 0-31 (or 0-1023 for envelope Level) linear
// attenuation code into a multiplier in [0,1], approximating the real
// chip's logarithmic attenuation law closely enough for mixing purposes.
func attenMultiplier(code uint16, maxCode uint16) float64 {
	if code >= maxCode {
		return 0
	}
	return 1.0 - float64(code)/float64(maxCode)
}

// stepEnvelope advances one channel's ADSR state by one (post-decimation)
// tick.
func (c *Channel) stepEnvelope() {
	switch c.Stage {
	case StageAttack:
		if c.AttackRate == 0 {
			c.Stage = StageDecay
			return
		}
		step := uint16(c.AttackRate)%32 + 1
		if c.Level <= step {
			c.Level = 0
			c.Stage = StageDecay
		} else {
			c.Level -= step
		}
	case StageDecay:
		if c.Level >= c.SustainLevel {
			c.Stage = StageSustain
			return
		}
		c.Level = satmath.SaturatingAdd(c.Level, uint16(c.DecayRate)%32+1, c.SustainLevel)
		if c.Level >= c.SustainLevel {
			c.Stage = StageSustain
		}
	case StageSustain:
		// holds until Release is triggered externally.
	case StageRelease:
		c.Level = satmath.SaturatingAdd(c.Level, uint16(c.ReleaseRate)%32+1, maxLevel)
		if c.Level >= maxLevel {
			c.Stage = StageOff
		}
	case StageOff:
	}
}

// Release transitions a channel from Attack/Decay/Sustain into Release.
func (c *Channel) Release() {
	if c.Stage != StageOff {
		c.Stage = StageRelease
	}
}

// KeyOn restarts a channel's envelope and playback position.
func (c *Channel) KeyOn() {
	c.Stage = StageAttack
	c.Level = 1023
	c.Position = 0
	c.reverse = c.Loop == LoopReverse
}

// advancePosition moves the channel's 8.24 fixed-point read position by
// Step, applying the configured loop mode at LoopEnd/LoopStart.
func (c *Channel) advancePosition() {
	end := uint32(c.LoopEnd) << 24
	start := uint32(c.LoopStart) << 24

	if c.reverse {
		if c.Position < c.Step {
			c.Position = end
		} else {
			c.Position -= c.Step
		}
		if c.Position <= start && c.Loop == LoopPingPong {
			c.reverse = false
		}
		return
	}

	c.Position += c.Step
	if c.Position < end {
		return
	}
	switch c.Loop {
	case LoopNormal:
		c.Position = start + (c.Position - end)
	case LoopPingPong:
		c.Position = end - (c.Position - end)
		c.reverse = true
	case LoopNone:
		c.Stage = StageOff
	}
}

// sample reads and decodes one PCM sample at the channel's current
// integer sample position (the 8.24 fixed-point position's top 8 bits).
func (c *Channel) sample(ram []byte) int32 {
	idx := c.Position >> 24
	switch c.Format {
	case PCM16Bit:
		off := c.StartAddr + idx*2
		if int(off)+1 >= len(ram) {
			return 0
		}
		return int32(int16(uint16(ram[off]) | uint16(ram[off+1])<<8))
	case PCM8Bit:
		off := c.StartAddr + idx
		if int(off) >= len(ram) {
			return 0
		}
		return int32(int8(ram[off])) << 8
	case PCM4BitADPCM:
		// Simplified linear-step decode; a full Yamaha ADPCM-B decoder
		// needs per-channel predictor/step-size state not modelled here.
		off := c.StartAddr + idx/2
		if int(off) >= len(ram) {
			return 0
		}
		nibble := ram[off]
		if idx%2 == 1 {
			nibble >>= 4
		}
		return int32(int8(nibble<<4)) << 4
	default:
		return 0
	}
}

// Tick advances every enabled channel by one master-rate-divided tick and
// accumulates one mixed stereo sample pair.
func (s *SCSP) Tick() (left, right int16) {
	var accL, accR int64

	for i := range s.Channels {
		c := &s.Channels[i]
		if !c.Enabled || c.Stage == StageOff {
			continue
		}

		c.decimCounter++
		if c.decimCounter >= 1<<c.DecimationSteps {
			c.decimCounter = 0
			c.stepEnvelope()
			c.advancePosition()
		}

		if c.LFOEnabled {
			c.lfoPhase += c.LFOStep
		}

		raw := c.sample(s.RAM[:])
		atten := attenMultiplier(c.Level, 1024)
		voice := int64(float64(raw) * atten)

		accL += voice * int64(32-c.PanLeft) / 32
		accR += voice * int64(32-c.PanRight) / 32
	}

	master := int64(s.MasterVolume)
	accL = accL * master / 15
	accR = accR * master / 15

	left = clampSample(accL)
	right = clampSample(accR)
	s.sampleCount++
	return left, right
}

func clampSample(v int64) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
