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

// Package sh1 runs the secondary CPU embedded in the CD block for the
// LLE variant (spec §3.5, §4.5). The SH-1 predates the SH-2 used
// elsewhere in the console and is architecturally similar enough (16-bit
// fixed-length instructions, delay slots, a flat register file) that this
// core reuses the sh2 package's interpreter wholesale rather than forking
// a second one, gated behind the CD-block ROM image the frontend supplies
// (spec §7 "missing CD-block ROM when LLE is requested").
package sh1

import "github.com/saturnemu/satcore/sh2"

// CPU wraps an sh2.Core running the CD block's firmware image. It exists
// as a distinct type (rather than bare *sh2.Core) so the cdblock package
// can model its own bus window, peripherals and reset vector without the
// two CPUs' address maps cross-contaminating.
type CPU struct {
	Core *sh2.Core
	ROM  []byte
}

// New returns a CPU wired to bus, running rom.
func New(bus sh2.Bus, rom []byte) *CPU {
	return &CPU{Core: sh2.NewCore(bus, "sh1"), ROM: rom}
}

// Reset resets the underlying core.
func (c *CPU) Reset() { c.Core.Reset() }

// Step executes one instruction and returns its cycle cost.
func (c *CPU) Step() int { return c.Core.Step() }
