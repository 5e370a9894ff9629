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

// DMAChannel models one of the SH-2's two on-chip DMA channels (spec
// §3.2, §4.2). Eligibility follows the formal condition from spec §4.2:
// DE=1 ∧ DME=1 ∧ TE=0 ∧ NMIF=0 ∧ AE=0.
type DMAChannel struct {
	SAR, DAR uint32 // source/destination address registers
	TCR      uint32 // transfer count register

	DE, DME, TE, NMIF, AE bool

	SourceIncrement      int32 // +1, -1 or 0 (fixed), scaled by transfer size
	DestinationIncrement int32
	TransferSize         uint8 // 1, 2 or 4 bytes
	AutoRequest          bool

	raiseOnComplete bool
	source          Source
}

// Eligible reports whether the channel is ready to run a burst.
func (d *DMAChannel) Eligible() bool {
	return d.DE && d.DME && !d.TE && !d.NMIF && !d.AE
}

// DMAC owns both on-chip channels and round-robins between them each time
// the main interpreter loop checks for eligible transfers (spec §4.2).
type DMAC struct {
	Channels [2]DMAChannel
	next     int
}

// NewDMAC returns a DMAC with both channels idle.
func NewDMAC() *DMAC {
	d := &DMAC{}
	d.Channels[0].source = SourceDMAC0
	d.Channels[1].source = SourceDMAC1
	return d
}

// Step runs one burst (up to maxBytes) of the next eligible channel in
// round-robin order and returns the channel index serviced, or -1 if
// neither channel was eligible. read/write perform the actual bus
// traffic. When TCR reaches zero the channel's TE flag is set and, if
// its completion interrupt is enabled, the channel's source is posted to
// intc.
func (d *DMAC) Step(maxBytes int, read func(addr uint32, size uint8) uint32, write func(addr uint32, size uint8, v uint32), intc *INTC, vector func(Source) uint8) int {
	for n := 0; n < 2; n++ {
		idx := (d.next + n) % 2
		ch := &d.Channels[idx]
		if !ch.Eligible() {
			continue
		}
		d.next = (idx + 1) % 2

		transferred := 0
		for ch.TCR > 0 && transferred < maxBytes {
			v := read(ch.SAR, ch.TransferSize)
			write(ch.DAR, ch.TransferSize, v)

			ch.SAR = uint32(int64(ch.SAR) + int64(ch.SourceIncrement)*int64(ch.TransferSize))
			ch.DAR = uint32(int64(ch.DAR) + int64(ch.DestinationIncrement)*int64(ch.TransferSize))
			ch.TCR--
			transferred += int(ch.TransferSize)
		}

		if ch.TCR == 0 {
			ch.TE = true
			if ch.raiseOnComplete && intc != nil {
				intc.SetPending(ch.source, 4, vector(ch.source))
			}
		}
		return idx
	}
	return -1
}
