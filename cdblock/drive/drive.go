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

// Package drive models the CD drive's physical-side state machine for the
// LLE CD block variant (spec §3.5, §4.5): current/target FAD, the current
// operation, the 13-byte Red-Book status packet, and the serial
// transmission state machine that clocks that packet out to the YGR.
package drive

import "github.com/saturnemu/satcore/disc"

// Operation enumerates the drive's current high-level activity.
type Operation int

const (
	OpIdle Operation = iota
	OpSeek
	OpReadData
	OpReadAudio
	OpReadTOC
	OpNoDisc
	OpTrayOpen
	OpPause
	OpScanForward
	OpScanBackward
)

// TxState is the serial transmission state machine driving one status
// packet out to the host side (spec §4.5).
type TxState int

const (
	TxReset TxState = iota
	TxPreTx
	TxBegin
	TxByte
	TxInter
	TxEnd
	TxProcessCommand
)

const statusBytes = 13

// Drive is the physical drive-side state.
type Drive struct {
	TrayOpen bool
	Disc     *disc.Disc

	CurrentFAD disc.FAD
	TargetFAD  disc.FAD
	Op         Operation

	ReadSpeedFactor int // 1 or 2 (spec §4.5)

	tx        TxState
	txByteIdx int
	txBitIdx  int
	status    [statusBytes]byte
}

// New returns a Drive with no disc and the tray closed.
func New() *Drive {
	return &Drive{Op: OpNoDisc, ReadSpeedFactor: 1}
}

// Load attaches d, positions the head at the lead-in, and clears TrayOpen.
func (dr *Drive) Load(d *disc.Disc) {
	dr.Disc = d
	dr.TrayOpen = false
	dr.Op = OpIdle
	dr.CurrentFAD = 0
}

// Eject detaches the current disc.
func (dr *Drive) Eject() {
	dr.Disc = nil
	dr.Op = OpNoDisc
}

// OpenTray opens the tray, stopping any activity.
func (dr *Drive) OpenTray() {
	dr.TrayOpen = true
	dr.Op = OpTrayOpen
}

// CloseTray closes the tray; Op becomes Idle or NoDisc depending on
// whether a disc is attached.
func (dr *Drive) CloseTray() {
	dr.TrayOpen = false
	if dr.Disc != nil {
		dr.Op = OpIdle
	} else {
		dr.Op = OpNoDisc
	}
}

// buildStatus recomputes the 13-byte Red-Book status packet for the
// drive's current state (spec §3.5, §8 property 7). With no disc loaded,
// every field but the operation byte reads 0xFF rather than zeroed BCD
// (cd_drive.cpp's UpdateStatus, the m_disc.sessions.empty() branch).
func (dr *Drive) buildStatus() {
	var op uint8
	switch dr.Op {
	case OpIdle:
		op = 0x00
	case OpSeek:
		op = 0x05
	case OpReadData, OpReadAudio:
		op = 0x06
	case OpReadTOC:
		op = 0x07
	case OpNoDisc:
		op = 0x0D
	case OpTrayOpen:
		op = 0x0E
	case OpPause:
		op = 0x09
	case OpScanForward:
		op = 0x0A
	case OpScanBackward:
		op = 0x0B
	}
	dr.status[0] = op

	if dr.Disc == nil {
		for i := 1; i < 11; i++ {
			dr.status[i] = 0xFF
		}
	} else {
		m, s, f := dr.CurrentFAD.ToMSF()
		dr.status[1] = 0 // subcode Q control/ADR, not modelled beyond zero
		dr.status[2] = bcd(uint8(1)) // track, BCD
		dr.status[3] = bcd(uint8(1)) // index, BCD
		dr.status[4] = bcd(m)
		dr.status[5] = bcd(s)
		dr.status[6] = bcd(f)
		dr.status[7] = 0
		dr.status[8] = bcd(m)
		dr.status[9] = bcd(s)
		dr.status[10] = bcd(f)
	}

	var sum uint8
	for i := 0; i < 11; i++ {
		sum += dr.status[i]
	}
	dr.status[11] = ^sum
}

func bcd(v uint8) uint8 {
	return ((v / 10) << 4) | (v % 10)
}

// StatusPacket returns the current 13-byte status packet, recomputing its
// checksum first.
func (dr *Drive) StatusPacket() [statusBytes]byte {
	dr.buildStatus()
	return dr.status
}

// StepTx advances the transmission state machine by one tick (called by
// the scheduler at the drive's 1/3x rate, spec §4.5) and returns the bit
// value currently on the serial line, if any.
func (dr *Drive) StepTx() (bit uint8, active bool) {
	switch dr.tx {
	case TxReset:
		dr.tx = TxPreTx
		return 0, false
	case TxPreTx:
		dr.tx = TxBegin
		return 0, false
	case TxBegin:
		dr.buildStatus()
		dr.txByteIdx = 0
		dr.txBitIdx = 0
		dr.tx = TxByte
		return 0, false
	case TxByte:
		b := dr.status[dr.txByteIdx]
		bitVal := (b >> (7 - dr.txBitIdx)) & 1
		dr.txBitIdx++
		if dr.txBitIdx == 8 {
			dr.txBitIdx = 0
			dr.tx = TxInter
		}
		return bitVal, true
	case TxInter:
		dr.txByteIdx++
		if dr.txByteIdx >= statusBytes-2 { // 11 data bytes transmitted per spec §4.5 "TxByte x 11"
			dr.tx = TxEnd
		} else {
			dr.tx = TxByte
		}
		return 0, false
	case TxEnd:
		dr.tx = TxProcessCommand
		return 0, false
	case TxProcessCommand:
		dr.tx = TxPreTx
		return 0, false
	}
	return 0, false
}
