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

// Package cdblock implements the CD block in both its HLE and LLE forms
// behind a single CDBlock interface (spec §4.5), sharing the ygr and
// drive sub-packages for the parts of the protocol both variants expose
// on the host bus.
package cdblock

import (
	"github.com/saturnemu/satcore/cdblock/drive"
	"github.com/saturnemu/satcore/cdblock/ygr"
	"github.com/saturnemu/satcore/disc"
	"github.com/saturnemu/satcore/errors"
)

// Command codes understood by the (HLE) command protocol. LLE accepts
// the same set, dispatched to the drive state machine instead.
type Command uint8

const (
	CmdNoop Command = iota
	CmdReadTOC
	CmdStop
	CmdReadSector
	CmdPause
	CmdSeekSector
	CmdScanForward
	CmdScanBackward
	CmdSeekRing
)

// CDBlock is the interface both the HLE and LLE implementations satisfy
// (spec §4.5 "Both expose: load-disc / eject-disc / ... a register
// window ... a 2048-bit FIFO ... a HIRQ interrupt bitmap ...").
type CDBlock interface {
	LoadDisc(d *disc.Disc) error
	EjectDisc()
	OpenTray()
	CloseTray()
	Execute(cmd Command, args [4]uint16) error
	YGR() *ygr.YGR
	Tick()
}

// HLE synthesizes the command protocol directly against the Disc's
// binary reader, without emulating the SH-1/YGR/drive physics.
type HLE struct {
	gate  ygr.YGR
	drv   *drive.Drive
	sectorQueue []disc.FAD
}

// NewHLE returns a ready, disc-less HLE CD block.
func NewHLE() *HLE {
	return &HLE{gate: *ygr.New(), drv: drive.New()}
}

func (h *HLE) LoadDisc(d *disc.Disc) error {
	h.drv.Load(d)
	h.gate.RaiseHIRQ(ygr.HIRQDCHG)
	return nil
}

func (h *HLE) EjectDisc() {
	h.drv.Eject()
	h.gate.RaiseHIRQ(ygr.HIRQDCHG)
}

func (h *HLE) OpenTray()  { h.drv.OpenTray() }
func (h *HLE) CloseTray() { h.drv.CloseTray() }

func (h *HLE) YGR() *ygr.YGR { return &h.gate }

// Execute runs one command against the HLE state machine.
func (h *HLE) Execute(cmd Command, args [4]uint16) error {
	switch cmd {
	case CmdNoop:
		h.gate.RaiseHIRQ(ygr.HIRQCMOK)
		return nil
	case CmdReadTOC:
		h.sectorQueue = h.buildTOCStream()
		h.gate.RaiseHIRQ(ygr.HIRQCMOK)
		return nil
	case CmdReadSector:
		start := disc.FAD(uint32(args[0])<<16 | uint32(args[1]))
		count := uint32(args[2])
		h.sectorQueue = h.sectorQueue[:0]
		for i := uint32(0); i < count; i++ {
			h.sectorQueue = append(h.sectorQueue, start+disc.FAD(i))
		}
		h.gate.RaiseHIRQ(ygr.HIRQCMOK)
		return nil
	case CmdStop, CmdPause:
		h.drv.Op = drive.OpPause
		h.gate.RaiseHIRQ(ygr.HIRQCMOK)
		return nil
	case CmdSeekSector:
		h.drv.TargetFAD = disc.FAD(uint32(args[0])<<16 | uint32(args[1]))
		h.drv.Op = drive.OpSeek
		h.gate.RaiseHIRQ(ygr.HIRQCMOK)
		return nil
	case CmdScanForward:
		h.drv.Op = drive.OpScanForward
		h.gate.RaiseHIRQ(ygr.HIRQCMOK)
		return nil
	case CmdScanBackward:
		h.drv.Op = drive.OpScanBackward
		h.gate.RaiseHIRQ(ygr.HIRQCMOK)
		return nil
	case CmdSeekRing:
		h.gate.RaiseHIRQ(ygr.HIRQCMOK)
		return nil
	default:
		return errors.Errorf(errors.UnknownCDCommand, uint8(cmd))
	}
}

// buildTOCStream enumerates every track 3 times, per spec §4.5 "ReadTOC
// (streams 3 copies of each TOC entry ...)".
func (h *HLE) buildTOCStream() []disc.FAD {
	var out []disc.FAD
	if h.drv.Disc == nil {
		return out
	}
	for rep := 0; rep < 3; rep++ {
		for _, t := range h.drv.Disc.AllTracks() {
			out = append(out, t.StartFAD)
		}
	}
	return out
}

// Tick drains one queued sector into the FIFO, pushing its user data and
// asserting CSCT (sector complete) once drained, matching HLE's direct
// read against the Disc reader rather than modelled drive physics.
func (h *HLE) Tick() {
	if len(h.sectorQueue) == 0 {
		return
	}
	if h.drv.Disc == nil {
		return
	}
	track := h.drv.Disc.FirstDataTrack()
	if track == nil {
		return
	}
	fad := h.sectorQueue[0]
	h.sectorQueue = h.sectorQueue[1:]

	data, err := track.ReadUserData(fad, 2048)
	if err != nil {
		return
	}
	h.gate.SetDirection(ygr.DirectionDriveToHost)
	for _, b := range data {
		if h.gate.Push(ygr.DirectionDriveToHost, b) != nil {
			break
		}
	}
	h.gate.RaiseHIRQ(ygr.HIRQCSCT | ygr.HIRQDRDY)
}
