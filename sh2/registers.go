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

// Registers holds the architectural state of one SH-2 core (spec §3.2).
// Plain uint32 fields rather than the teacher's bit-array Register type:
// the 6507 in gopher2600 is 8-bit and the bit-array representation exists
// there to make flag propagation through BCD arithmetic explicit; the
// SH-2 is a 32-bit load/store core where that representation buys
// nothing but cost, so ordinary unsigned integers plus explicit flag
// bookkeeping in status.go is the idiomatic fit.
type Registers struct {
	R  [16]uint32 // R15 doubles as the stack pointer
	PC uint32
	PR uint32

	MACH uint32
	MACL uint32

	GBR uint32
	VBR uint32

	SR StatusRegister

	// delay-slot latch: set by a branch instruction, consumed by the
	// instruction immediately following it (spec §4.2).
	delaySlotTarget uint32
	delaySlotActive bool
}

// SP is a convenience accessor for R15.
func (r *Registers) SP() uint32 { return r.R[15] }

// SetSP sets R15.
func (r *Registers) SetSP(v uint32) { r.R[15] = v }

// EffectivePC returns the value an instruction reads when it names PC as
// an operand: the address of the current instruction plus 4, the classic
// SH-2 pipeline offset (spec §4.2).
func (r *Registers) EffectivePC() uint32 {
	return r.PC + 4
}

// SetDelaySlot arms the one-shot delay-slot latch. Called by branch
// instructions; consumed by Core.Step after executing the following
// instruction.
func (r *Registers) SetDelaySlot(target uint32) {
	r.delaySlotTarget = target
	r.delaySlotActive = true
}

// InDelaySlot reports whether the instruction about to execute is the one
// immediately following an armed branch.
func (r *Registers) InDelaySlot() bool {
	return r.delaySlotActive
}
