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

// Package scu implements the System Control Unit: the second bus fabric
// bridging each SH-2 to the rest of the machine, its three DMA channels,
// interrupt mask/status aggregation, and the embedded 32-bit DSP (spec
// §4.4).
package scu

import "github.com/saturnemu/satcore/sh2"

// InterruptSource enumerates the SCU-level interrupt bits it aggregates
// from VDP2, VDP1, SCSP, CD block and its own DMA channels before
// forwarding to whichever SH-2 currently has the matching mask bit clear.
type InterruptSource int

const (
	SourceVBlankIn InterruptSource = iota
	SourceVBlankOut
	SourceHBlankIn
	SourceTimer0
	SourceTimer1
	SourceDSPEnd
	SourceSoundRequest
	SourceSystemManager
	SourcePadInterrupt
	SourceDMA0End
	SourceDMA1End
	SourceDMA2End
	SourceDMAIllegal
	SourceVDP1End
	SourceExternal0
)

// Channel is one of the SCU's three DMA channels. Unlike the SH-2's own
// on-chip DMAC, completion is level-triggered rather than edge-triggered:
// the matching interrupt stays asserted until software clears it in the
// status register.
type Channel struct {
	Enable    bool
	Start     bool
	ReadAddr  uint32
	WriteAddr uint32
	Count     uint32
	ReadAdd   int32
	WriteAdd  int32
	Indirect  bool

	source InterruptSource
}

// SCU owns the three DMA channels, the interrupt mask/status registers,
// and the embedded DSP.
type SCU struct {
	Channels [3]Channel
	DSP      DSP

	statusMask   uint32
	statusPend   uint32
}

// New returns an SCU with all channels idle and every interrupt masked.
func New() *SCU {
	s := &SCU{statusMask: 0xFFFFFFFF}
	s.Channels[0].source = SourceDMA0End
	s.Channels[1].source = SourceDMA1End
	s.Channels[2].source = SourceDMA2End
	return s
}

// SetMask sets the interrupt mask register; a set bit masks that source.
func (s *SCU) SetMask(mask uint32) { s.statusMask = mask }

// Raise marks source pending in the status register regardless of mask;
// Deliver then checks mask/pending together when forwarding to an SH-2.
func (s *SCU) Raise(source InterruptSource) {
	s.statusPend |= 1 << uint(source)
}

// Clear clears a pending source, as software does by writing to the
// status register.
func (s *SCU) Clear(source InterruptSource) {
	s.statusPend &^= 1 << uint(source)
}

// Deliver forwards every unmasked pending source into core's INTC at the
// given level/vector-base scheme (vector = vectorBase + source index).
func (s *SCU) Deliver(core *sh2.Core, level uint8, vectorBase uint8) {
	for src := SourceVBlankIn; src <= SourceExternal0; src++ {
		bit := uint32(1) << uint(src)
		if s.statusPend&bit == 0 {
			continue
		}
		if s.statusMask&bit != 0 {
			continue
		}
		core.INTC.SetPending(sh2.SourceIRL, level, vectorBase+uint8(src))
	}
}

// RunChannel executes one full burst of channel i if it is started and
// enabled, using read/write to perform the actual bus traffic, and
// raises the matching completion interrupt (spec §4.4).
func (s *SCU) RunChannel(i int, read func(addr uint32) uint32, write func(addr uint32, v uint32)) {
	ch := &s.Channels[i]
	if !ch.Enable || !ch.Start {
		return
	}

	for ch.Count > 0 {
		v := read(ch.ReadAddr)
		write(ch.WriteAddr, v)
		ch.ReadAddr = uint32(int64(ch.ReadAddr) + int64(ch.ReadAdd))
		ch.WriteAddr = uint32(int64(ch.WriteAddr) + int64(ch.WriteAdd))
		ch.Count--
	}

	ch.Start = false
	s.Raise(ch.source)
}
