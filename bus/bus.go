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

// Package bus defines the memory bus concept for the Saturn core (spec
// §4.7). Generalises the teacher's hardware/memory/bus package, which
// defines separate interfaces for CPU-side access versus debugger-side
// access so that peeking memory for the disassembler can never trigger a
// side effect; the Saturn core needs the same split for its VDP/CD-block
// memory-mapped registers, which have write-triggered side effects
// (FIFO pushes, command dispatch) that a save-state validator or a memory
// probe must never provoke.
package bus

// Width is the access width of a bus operation.
type Width int

const (
	Byte Width = 1
	Word Width = 2
	Long Width = 4
)

// Device is implemented by every addressable region on the 29-bit SH-2
// address bus: work RAM, VDP1/VDP2 register and VRAM windows, SCU
// registers, SMPC, the CD block register window, on-chip SH-2
// peripherals, and the cartridge.
//
// ReadByte/Word/Long and WriteByte/Word/Long are side-effecting: they are
// the paths real CPU traffic takes. A bus mapping either supports every
// width it is asked for, or returns ErrIllegalWidth — illegal-width
// accesses are logged and otherwise ignored (spec §4.7: "byte writes to
// VDP2 registers are illegal and logged"), never fatal.
type Device interface {
	ReadByte(addr uint32) (uint8, error)
	ReadWord(addr uint32) (uint16, error)
	ReadLong(addr uint32) (uint32, error)
	WriteByte(addr uint32, v uint8) error
	WriteWord(addr uint32, v uint16) error
	WriteLong(addr uint32, v uint32) error
}

// Prober is implemented by any Device that can expose a read-only,
// side-effect-free view of its state for the debugger and for save-state
// validation (spec §9 "Probe" note). A Prober must never mutate state,
// including cache tag arrays.
type Prober interface {
	PeekByte(addr uint32) (uint8, error)
	PeekWord(addr uint32) (uint16, error)
	PeekLong(addr uint32) (uint32, error)
}

// ErrIllegalWidth is returned by a Device when asked to service an access
// width it does not support at the given address (spec §4.7).
type ErrIllegalWidth struct {
	Addr  uint32
	Width Width
}

func (e ErrIllegalWidth) Error() string {
	return "bus: illegal access width"
}
