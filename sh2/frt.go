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

package sh2

// FRT models the SH-2's 16-bit free-running timer (spec §3.2, §4.2): a
// free-running counter (FRC) with two independent output-compare
// channels (A and B) and one input-capture channel, clocked at a programmable
// divisor of the on-chip peripheral clock.

type frtEdge int

const (
	frtEdgeRising frtEdge = iota
	frtEdgeFalling
)

// FRT is driven one peripheral-clock tick at a time by Tick; FRC advances
// once every ClockDivisor ticks.
type FRT struct {
	FRC uint32 // 16 bits significant

	OCRA, OCRB uint32
	ICR        uint32

	ClockDivisor uint32 // 8, 32 or 128

	CaptureEdge frtEdge

	OverflowFlag  bool
	CompareAFlag  bool
	CompareBFlag  bool
	InputCaptured bool

	ClearOnCompareA bool

	ticks uint32
}

// Tick advances the FRT by one peripheral cycle.
func (f *FRT) Tick() {
	div := f.ClockDivisor
	if div == 0 {
		div = 8
	}
	f.ticks++
	if f.ticks < div {
		return
	}
	f.ticks = 0

	f.FRC++
	if f.FRC > 0xFFFF {
		f.FRC = 0
		f.OverflowFlag = true
	}
	if f.FRC == f.OCRA {
		f.CompareAFlag = true
		if f.ClearOnCompareA {
			f.FRC = 0
		}
	}
	if f.FRC == f.OCRB {
		f.CompareBFlag = true
	}
}

// Capture latches FRC into ICR, as if the external capture pin had
// transitioned on the configured edge.
func (f *FRT) Capture() {
	f.ICR = f.FRC
	f.InputCaptured = true
}

// RaiseInterrupts posts any set flags to intc. vector is supplied per
// source by the
// caller (interrupt vectors are configured by software via VBR/INTC
// vector number registers, outside FRT's own state).
func (f *FRT) RaiseInterrupts(intc *INTC, vecICI, vecOCIA, vecOCIB, vecOVI uint8, level uint8) {
	if f.InputCaptured {
		intc.SetPending(SourceFRTICI, level, vecICI)
	}
	if f.CompareAFlag {
		intc.SetPending(SourceFRTOCI, level, vecOCIA)
	} else if f.CompareBFlag {
		intc.SetPending(SourceFRTOCI, level, vecOCIB)
	}
	if f.OverflowFlag {
		intc.SetPending(SourceFRTOVI, level, vecOVI)
	}
}
