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

// DIVU models the SH-2's on-chip division unit (spec §3.2, §4.2). Real
// hardware pipelines a 32÷32 division over ~39 cycles and a 64÷32
// division over ~39 cycles as well; Start32/Start64 begin a division and
// the caller drives Step once per cycle until it reports completion. The
// interpreter's DIV1 opcode does not use this unit.
type DIVU struct {
	DVSR  uint32 // divisor register
	DVDNT uint32 // dividend register (also holds the quotient on completion)
	DVDNTH uint32
	DVDNTL uint32

	Overflow bool
	raiseOnOverflow bool

	busy  bool
	cycle int
}

const divuLatency = 39

// Start32 begins a 32-bit-by-32-bit signed division: DVDNT / DVSR.
func (d *DIVU) Start32(dividend, divisor int32) {
	d.DVDNT = uint32(dividend)
	d.DVSR = uint32(divisor)
	d.busy = true
	d.cycle = 0
	d.Overflow = divisor == 0
}

// Start64 begins a 64-bit-by-32-bit signed division: (DVDNTH:DVDNTL) / DVSR.
func (d *DIVU) Start64(dividendHigh, dividendLow int32, divisor int32) {
	d.DVDNTH = uint32(dividendHigh)
	d.DVDNTL = uint32(dividendLow)
	d.DVSR = uint32(divisor)
	d.busy = true
	d.cycle = 0
	d.Overflow = divisor == 0
}

// Step advances the in-flight division by one cycle and reports whether it
// completed this step.
func (d *DIVU) Step(intc *INTC, vector uint8) (done bool) {
	if !d.busy {
		return false
	}
	d.cycle++
	if d.cycle < divuLatency {
		return false
	}
	d.busy = false

	if d.Overflow {
		if d.raiseOnOverflow && intc != nil {
			intc.SetPending(SourceDIVU, 8, vector)
		}
		return true
	}

	divisor := int32(d.DVSR)
	if d.DVDNTH == 0 && d.DVDNTL == 0 {
		dividend := int32(d.DVDNT)
		q := dividend / divisor
		r := dividend % divisor
		d.DVDNT = uint32(q)
		d.DVDNTL = uint32(q)
		d.DVDNTH = uint32(r)
		return true
	}

	dividend := int64(int32(d.DVDNTH))<<32 | int64(d.DVDNTL)
	q := dividend / int64(divisor)
	r := dividend % int64(divisor)
	d.DVDNTL = uint32(q)
	d.DVDNTH = uint32(r)
	d.DVDNT = uint32(q)
	return true
}

// Busy reports whether a division is still in flight.
func (d *DIVU) Busy() bool { return d.busy }
