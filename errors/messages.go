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


package errors

// Curated message catalogue. Every Errorf call elsewhere in the module
// should use one of these constants as its leading argument so that Is()
// and Head() classification stays meaningful.
const (
	// input errors (spec §7)
	MissingIPL            = "missing IPL: %v"
	MissingCDBlockROM     = "missing CD block ROM: %v"
	DiscUnreadable        = "disc unreadable: %v"
	PlaylistEmpty         = "m3u playlist empty: %v"
	InvalidCartridgeImage = "invalid cartridge image (%v): %v"

	// protocol errors (spec §7) - terminate the current command list/FIFO
	// transaction and continue
	UnknownVDP1Command  = "vdp1: unknown command kind (%#04x) at %#06x"
	VDP1JumpOutOfRange  = "vdp1: jump target out of range (%#06x)"
	MalformedRotation   = "vdp2: malformed rotation parameter table"
	UnknownCDCommand    = "cd block: unknown command (%#02x)"
	YGRTransferMismatch = "ygr: DREQ direction mismatch"
	IllegalByteAccess   = "bus: illegal byte-width access to %v register at %#08x"

	// state validation errors (spec §7, §4.8)
	SaveStateBadMagic    = "save state: bad magic (got %#08x, want %#08x)"
	SaveStateBadVersion  = "save state: unsupported version (%d)"
	SaveStateDiscHash    = "save state: disc hash mismatch"
	SaveStateIPLHash     = "save state: no IPL matching hash %x is loaded"
	SaveStateCDROMHash   = "save state: no CD block ROM matching hash %x is loaded"
	SaveStateTruncated   = "save state: truncated section %q (need %d, have %d)"

	// resource errors (spec §7)
	SaveDirNotCreatable = "save directory not creatable: %v"
	DumpFileUnopenable  = "dump file unopenable: %v"
)
