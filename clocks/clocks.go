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

// Package clocks defines the constant values that relate emulated master
// clock ticks to real time and to each component's native clock rate. Every
// other component expresses its own speed as a ratio against MasterHz
// through scheduler.SetEventCountFactor.
package clocks

// Master clock frequencies, in Hz, for the two video standards the Saturn
// shipped in.
const (
	MasterHzNTSC = 57272720
	MasterHzPAL  = 56800000
)

// SH2Div is the divisor applied to the master clock to obtain each SH-2's
// clock (≈28.6 MHz from a ≈57.3 MHz NTSC master).
const SH2Div = 2

// SCSPHz is the fixed clock the sound chip and its embedded DSP run at,
// independent of video standard.
const SCSPHz = 22579200

// AudioSampleHz is the fixed output sample rate (spec §4.6): exactly 44.1
// kHz regardless of NTSC/PAL.
const AudioSampleHz = 44100

// CDBlockDiv is the divisor applied to the master clock to obtain the CD
// block's own clock.
const CDBlockDiv = 4

// DriveStateDiv is the further divisor applied to the CD block clock to
// obtain the drive transmission state machine's rate (spec §4.5: "three
// state counters run at 1/3x the CD-block master clock").
const DriveStateDiv = 3

// ScanlinesNTSC and ScanlinesPAL are the total scanline counts (visible +
// blanking) per field for each standard, used to derive VDP2 phase dwell
// times.
const (
	ScanlinesNTSC = 262
	ScanlinesPAL  = 313
)
