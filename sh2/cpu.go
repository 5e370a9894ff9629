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

// Package sh2 implements the Hitachi SH-2 core used twice over in the
// Saturn (master and slave), including its on-chip peripherals (cache,
// DMAC, DIVU, FRT, WDT, INTC). Two independent Core values, each wired to
// the same Bus, give the dual-CPU configuration (spec §3.2, §4.2).
package sh2

import "github.com/saturnemu/satcore/logger"

// Core is one SH-2 CPU, complete with its on-chip peripherals. The slave
// core additionally runs only while the owning saturn.Saturn's
// slave-enable flag is set; Core itself knows nothing
// about which role it plays.
type Core struct {
	Registers

	Cache Cache
	INTC  *INTC
	DIVU  DIVU
	FRT   FRT
	WDT   WDT
	DMAC  *DMAC

	bus Bus

	// Label distinguishes master/slave in log output.
	Label string

	halted      bool
	branchTaken bool

	// delaySlotFetchPC is the address of the delay-slot instruction itself,
	// latched when a branch arms the slot. PC cannot double as this address
	// once armed: the architecturally visible PC already carries the
	// pipeline's PC+4 value for the straddling step (spec §4.2, §8 SC-4),
	// so the next fetch needs its own bookkeeping.
	delaySlotFetchPC uint32
}

// NewCore returns a Core wired to bus, with all peripherals idle.
func NewCore(bus Bus, label string) *Core {
	return &Core{
		INTC:  NewINTC(),
		DMAC:  NewDMAC(),
		bus:   bus,
		Label: label,
	}
}

// Reset sets PC and SP from the reset vector table at VBR+0/VBR+4 (on the
// real chip these are read from address 0 regardless of VBR, since VBR is
// itself zeroed by reset) and clears peripheral state (spec §4.2).
func (c *Core) Reset() {
	c.VBR = 0
	c.PC = c.bus.ReadLong(0)
	c.SetSP(c.bus.ReadLong(4))
	c.SR.ILevel = 15
	c.delaySlotActive = false
	c.delaySlotFetchPC = 0
	c.halted = false
	c.Cache = Cache{}
	c.DIVU = DIVU{}
	c.FRT = FRT{}
	c.WDT = WDT{}
	c.INTC = NewINTC()
}

// Halted reports whether the core is parked in a SLEEP instruction,
// awaiting an interrupt.
func (c *Core) Halted() bool { return c.halted }

// Step executes exactly one instruction (plus, if armed, consumes the
// delay slot left by the previous branch) and returns the number of
// master clock cycles it cost. Interrupt acceptance is checked only when
// the core is not mid-delay-slot, matching the real chip's refusal to
// take an interrupt between a delayed branch and its slot (spec §4.2,
// §8 SC-4).
//
// A delayed branch's PC is only fully resolved once its slot retires, but
// the chip still exposes PC+4 the instant the branch itself retires (spec
// §4.2's "any instruction reading PC reads the later value", spec §8
// SC-4). So the fetch address and the architecturally visible PC diverge
// for exactly the one step straddling a branch and its slot: fetching
// uses delaySlotFetchPC, while PC already shows the pipeline-offset value.
func (c *Core) Step() int {
	if c.halted {
		if _, ok := c.INTC.Highest(c.SR.ILevel); ok {
			c.halted = false
		} else {
			return 1
		}
	}

	if !c.InDelaySlot() {
		if p, ok := c.INTC.Highest(c.SR.ILevel); ok {
			c.acceptInterrupt(p)
		}
	}

	wasDelaySlot := c.delaySlotActive
	var delayedTarget uint32
	var pc uint32
	if wasDelaySlot {
		pc = c.delaySlotFetchPC
		delayedTarget = c.delaySlotTarget
		c.delaySlotActive = false
	} else {
		pc = c.PC
	}

	opcode := c.fetch(pc)

	// Normalize PC to the literal fetch address for the duration of
	// execute(): PC-relative instructions compute off PC+4 assuming PC is
	// the address of the instruction currently retiring (instructions.go).
	c.PC = pc

	cycles := c.execute(opcode)

	switch {
	case wasDelaySlot:
		c.PC = delayedTarget
	case c.branchTaken:
		// execute() already committed the target into PC (TRAPA, BT/BF).
	case c.delaySlotActive:
		c.delaySlotFetchPC = pc + 2
		c.PC = pc + 4
	default:
		c.PC = pc + 2
	}
	c.branchTaken = false

	return cycles
}

func (c *Core) fetch(addr uint32) uint16 {
	if line, hit := c.lookupInstructionWord(addr); hit {
		return line
	}
	return c.bus.ReadWord(addr)
}

// lookupInstructionWord consults the instruction cache; real cache lines
// are byte-addressed, so a 16-bit fetch reads two adjacent cache bytes
// when both are resident.
func (c *Core) lookupInstructionWord(addr uint32) (uint16, bool) {
	if !c.Cache.Enabled {
		return 0, false
	}
	hi, ok1 := c.Cache.Lookup(addr)
	lo, ok2 := c.Cache.Lookup(addr + 1)
	if ok1 && ok2 {
		return uint16(hi)<<8 | uint16(lo), true
	}
	return 0, false
}

// acceptInterrupt pushes SR and PC, switches mask level, and vectors per
// spec §4.2's exception entry sequence.
func (c *Core) acceptInterrupt(p pendingSource) {
	c.push32(c.SR.Pack())
	c.push32(c.PC)
	c.SR.ILevel = p.level
	c.PC = c.bus.ReadLong(c.VBR + uint32(p.vector)*4)
	c.INTC.ClearPending(p.source)
	logger.Logf("sh2", "%s accepted interrupt vector=%d level=%d", c.Label, p.vector, p.level)
}

func (c *Core) push32(v uint32) {
	c.SetSP(c.SP() - 4)
	c.bus.WriteLong(c.SP(), v)
}

func (c *Core) pop32() uint32 {
	v := c.bus.ReadLong(c.SP())
	c.SetSP(c.SP() + 4)
	return v
}
