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

// Package smpc implements the System Management Peripheral Controller:
// system control commands, the real-time clock, and peripheral polling
// via INTBACK (spec §4.4 area, §6.3).
package smpc

import (
	"time"

	"github.com/saturnemu/satcore/peripheral"
)

// Command is an SMPC command code, written to COMREG to start a command.
type Command uint8

const (
	CmdMSHON    Command = 0x00
	CmdSSHON    Command = 0x02
	CmdSSHOFF   Command = 0x03
	CmdSNDON    Command = 0x06
	CmdSNDOFF   Command = 0x07
	CmdCDON     Command = 0x08
	CmdCDOFF    Command = 0x09
	CmdSYSRES   Command = 0x0D
	CmdCKCHG352 Command = 0x0E
	CmdCKCHG320 Command = 0x0F
	CmdINTBACK  Command = 0x10
	CmdSETSMEM  Command = 0x17
	CmdNMIREQ   Command = 0x18
	CmdRESENAB  Command = 0x19
	CmdRESDISA  Command = 0x1A
)

// AreaCode mirrors the persisted system region (spec §6.3).
type AreaCode uint8

const (
	AreaJapan AreaCode = 1
	AreaAsiaNTSC AreaCode = 2
	AreaNorthAmerica AreaCode = 4
	AreaCentralSouthAmericaNTSC AreaCode = 5
	AreaKorea AreaCode = 6
	AreaAsiaPAL AreaCode = 0xA
	AreaEurope AreaCode = 0xC
	AreaCentralSouthAmericaPAL AreaCode = 0xD
)

// SMPC is the console's system-control chip.
type SMPC struct {
	Port1, Port2 peripheral.Port

	AreaCode AreaCode
	Language uint8

	COMREG  uint8
	SF      bool // status flag, cleared when OREG is read in full
	pending Command
	busy    bool

	resetButtonEnabled bool

	oreg [32]uint8
	oregLen int

	// epoch the RTC counts seconds from; persisted alongside the
	// last-set timestamp (spec §6.3).
	rtcEpoch     time.Time
	rtcSeconds   uint64
	systemClock  uint64

	intbackContinuing bool
	intbackPeripheral bool
}

// New returns an SMPC defaulted to Japan region, matching the instance
// preference default (spec §6.3, carried by instance.Preferences).
func New() *SMPC {
	return &SMPC{AreaCode: AreaJapan, resetButtonEnabled: true}
}

// WriteCOMREG starts execution of a command.
func (s *SMPC) WriteCOMREG(cmd uint8) {
	s.COMREG = cmd
	s.pending = Command(cmd)
	s.busy = true
	s.execute()
}

// execute runs the pending command synchronously; real hardware takes a
// command-dependent number of cycles, modelled here as an immediate
// completion since ordering (not absolute latency) is what the spec
// requires of this component.
func (s *SMPC) execute() {
	defer func() { s.busy = false; s.SF = true }()

	switch s.pending {
	case CmdSYSRES, CmdCKCHG352, CmdCKCHG320:
		s.oregLen = 0
	case CmdRESENAB:
		s.resetButtonEnabled = true
	case CmdRESDISA:
		s.resetButtonEnabled = false
	case CmdSETSMEM:
		s.oregLen = 0
	case CmdINTBACK:
		s.runINTBACK()
	default:
		s.oregLen = 0
	}
}

// runINTBACK encodes the standard peripheral-report reply: status byte,
// per-port port status + report bytes (spec §6.1, §6.2).
func (s *SMPC) runINTBACK() {
	i := 0
	s.oreg[i] = s.statusByte()
	i++

	for _, port := range []*peripheral.Port{&s.Port1, &s.Port2} {
		report := port.Poll()
		s.oreg[i] = portStatusByte(report)
		i++
		n, bytes := encodeReport(report)
		copy(s.oreg[i:], bytes[:n])
		i += n
	}

	s.oregLen = i
}

func (s *SMPC) statusByte() uint8 {
	v := uint8(s.AreaCode) & 0xF
	return v
}

func portStatusByte(r peripheral.Report) uint8 {
	switch r.Kind {
	case peripheral.KindNone:
		return 0xF0
	case peripheral.KindControlPad:
		return 0x02 // type: digital pad, 1 extension byte pair
	case peripheral.KindAnalogPad:
		return 0x03
	default:
		return 0x02
	}
}

// encodeReport packs a Report into the raw byte sequence INTBACK sends
// for that device kind, returning the byte count used.
func encodeReport(r peripheral.Report) (int, [16]uint8) {
	var out [16]uint8
	switch r.Kind {
	case peripheral.KindControlPad, peripheral.KindNone:
		out[0] = uint8(r.Buttons >> 8)
		out[1] = uint8(r.Buttons)
		return 2, out
	case peripheral.KindAnalogPad:
		out[0] = uint8(r.Buttons >> 8)
		out[1] = uint8(r.Buttons)
		out[2] = 0x10
		out[3] = r.X
		out[4] = r.Y
		out[5] = r.R
		out[6] = r.L
		return 7, out
	default:
		out[0] = uint8(r.Buttons >> 8)
		out[1] = uint8(r.Buttons)
		return 2, out
	}
}

// ReadOREG reads one byte of the output register buffer built by the
// last command, clearing SF once the full reply has been read.
func (s *SMPC) ReadOREG(index int) uint8 {
	if index >= s.oregLen {
		return 0
	}
	if index == s.oregLen-1 {
		s.SF = false
	}
	return s.oreg[index]
}

// Busy reports whether a command is still executing.
func (s *SMPC) Busy() bool { return s.busy }

// SetRTC sets the persisted real-time clock reading (spec §6.3).
func (s *SMPC) SetRTC(seconds uint64) { s.rtcSeconds = seconds }

// RTC returns the persisted real-time clock reading.
func (s *SMPC) RTC() uint64 { return s.rtcSeconds }

// TickSystemClock advances the persisted system-clock counter, used by
// the instance preferences snapshot (spec §6.3 "system-clock count").
func (s *SMPC) TickSystemClock() { s.systemClock++ }
