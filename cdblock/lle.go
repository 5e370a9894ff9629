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

package cdblock

import (
	"github.com/saturnemu/satcore/cdblock/drive"
	"github.com/saturnemu/satcore/cdblock/sh1"
	"github.com/saturnemu/satcore/cdblock/ygr"
	"github.com/saturnemu/satcore/disc"
	"github.com/saturnemu/satcore/errors"
)

// LLE emulates the SH-1 firmware CPU, the YGR gate array, and drive
// physics, rather than synthesizing the protocol directly (spec §4.5).
type LLE struct {
	cpu  *sh1.CPU
	gate ygr.YGR
	drv  *drive.Drive

	pendingCmd  Command
	haveCommand bool
}

// NewLLE returns an LLE CD block running rom on its embedded SH-1, wired
// to bus for that CPU's own address space.
func NewLLE(bus interface {
	ReadByte(uint32) uint8
	ReadWord(uint32) uint16
	ReadLong(uint32) uint32
	WriteByte(uint32, uint8)
	WriteWord(uint32, uint16)
	WriteLong(uint32, uint32)
}, rom []byte) (*LLE, error) {
	if len(rom) == 0 {
		return nil, errors.Errorf(errors.MissingCDBlockROM, "no CD block ROM image supplied")
	}
	return &LLE{cpu: sh1.New(bus, rom), gate: *ygr.New(), drv: drive.New()}, nil
}

func (l *LLE) LoadDisc(d *disc.Disc) error {
	l.drv.Load(d)
	l.gate.RaiseHIRQ(ygr.HIRQDCHG)
	return nil
}

func (l *LLE) EjectDisc() {
	l.drv.Eject()
	l.gate.RaiseHIRQ(ygr.HIRQDCHG)
}

func (l *LLE) OpenTray()  { l.drv.OpenTray() }
func (l *LLE) CloseTray() { l.drv.CloseTray() }
func (l *LLE) YGR() *ygr.YGR { return &l.gate }

// Execute latches the command for the emulated SH-1 firmware to observe
// on its next poll of the command-word registers, rather than acting on
// it directly the way HLE does.
func (l *LLE) Execute(cmd Command, args [4]uint16) error {
	l.pendingCmd = cmd
	l.haveCommand = true
	l.gate.CommandWords = args
	return nil
}

// Tick advances the embedded SH-1 by one instruction, lets it pick up any
// command latched since the last tick, and steps the drive's serial
// transmission state machine by one bit, at the 1/3x rate the scheduler
// applies to this component (spec §4.5).
func (l *LLE) Tick() {
	l.cpu.Step()

	if l.haveCommand {
		l.dispatch(l.pendingCmd, l.gate.CommandWords)
		l.haveCommand = false
		l.gate.RaiseHIRQ(ygr.HIRQCMOK)
	}

	bit, active := l.drv.StepTx()
	l.gate.ReceiveDriveBit(bit, active)
	if active {
		l.gate.RaiseHIRQ(ygr.HIRQPEND)
	}
}

// dispatch programs the drive state machine the way the real firmware
// would in response to a command word, mirroring cd_drive.cpp's
// ProcessCommand switch. The resulting status packet reaches the host
// only through the drive's own serial transmission (StepTx/
// ReceiveDriveBit), never by pushing data into the FIFO directly the way
// HLE.Execute does.
func (l *LLE) dispatch(cmd Command, args [4]uint16) {
	switch cmd {
	case CmdReadTOC:
		l.drv.Op = drive.OpReadTOC
	case CmdReadSector:
		l.drv.TargetFAD = disc.FAD(uint32(args[0])<<16 | uint32(args[1]))
		l.drv.Op = drive.OpReadData
	case CmdStop, CmdPause:
		l.drv.Op = drive.OpPause
	case CmdSeekSector:
		l.drv.TargetFAD = disc.FAD(uint32(args[0])<<16 | uint32(args[1]))
		l.drv.Op = drive.OpSeek
	case CmdScanForward:
		l.drv.Op = drive.OpScanForward
	case CmdScanBackward:
		l.drv.Op = drive.OpScanBackward
	case CmdSeekRing, CmdNoop:
	}
}
