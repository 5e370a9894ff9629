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

package saturn

import (
	"github.com/saturnemu/satcore/logger"
	"github.com/saturnemu/satcore/memorymap"
)

// masterBus routes every SH-2 bus access to its owning device by
// consulting memorymap.Decode, implementing sh2.Bus for both the master
// and slave cores (spec §3.1, §4.7). It is the concrete realisation of
// the bus.Device split the bus package documents: this type is the
// side-effecting CPU-facing path, while Saturn's save-state/debugger
// access goes through each device's own Peek-style accessors instead of
// through here.
type masterBus struct {
	s *Saturn
}

func (b *masterBus) ReadByte(addr uint32) uint8 {
	region, off := memorymap.Decode(addr)
	switch region {
	case memorymap.IPLROM:
		return readByteFrom(b.s.ipl, off)
	case memorymap.SMPCRegisters:
		return b.s.readSMPCByte(off)
	case memorymap.BackupRAM:
		return readBackupByte(b.s.internalBackup[:], off)
	case memorymap.LowWorkRAM:
		return readByteFrom(b.s.lowWorkRAM[:], off)
	case memorymap.HighWorkRAM:
		return readByteFrom(b.s.highWorkRAM[:], off)
	case memorymap.CartridgeCS0, memorymap.CartridgeCS1, memorymap.CartridgeCS3:
		return b.s.cartridge.ReadByte(off)
	case memorymap.CDBlockCS2:
		return b.s.readCDBlockByte(off)
	case memorymap.SCSP:
		return readByteFrom(b.s.scsp.RAM[:], off)
	case memorymap.VDP1VRAM:
		return readByteFrom(b.s.vdp1.VRAM[:], off)
	case memorymap.VDP1Framebuffer:
		return readByteFrom(b.s.vdp1.FB[b.s.vdp1.DisplayFB()][:], off)
	case memorymap.VDP2VRAM:
		return readByteFrom(b.s.vdp2.VRAM[:], off)
	case memorymap.VDP2CRAM:
		return readByteFrom(b.s.vdp2.CRAM[:], off)
	default:
		logger.Logf("bus", "unmapped byte read at %#08x", addr)
		return 0
	}
}

func (b *masterBus) ReadWord(addr uint32) uint16 {
	return uint16(b.ReadByte(addr))<<8 | uint16(b.ReadByte(addr+1))
}

func (b *masterBus) ReadLong(addr uint32) uint32 {
	return uint32(b.ReadWord(addr))<<16 | uint32(b.ReadWord(addr+2))
}

func (b *masterBus) WriteByte(addr uint32, v uint8) {
	region, off := memorymap.Decode(addr)
	switch region {
	case memorymap.BackupRAM:
		writeBackupByte(b.s.internalBackup[:], off, v)
	case memorymap.CartridgeCS0, memorymap.CartridgeCS1, memorymap.CartridgeCS3:
		b.s.cartridge.WriteByte(off, v)
	case memorymap.LowWorkRAM:
		writeByteTo(b.s.lowWorkRAM[:], off, v)
	case memorymap.HighWorkRAM:
		writeByteTo(b.s.highWorkRAM[:], off, v)
	case memorymap.SMPCRegisters:
		b.s.writeSMPCByte(off, v)
	case memorymap.CDBlockCS2:
		b.s.writeCDBlockByte(off, v)
	case memorymap.SCSP:
		writeByteTo(b.s.scsp.RAM[:], off, v)
	case memorymap.VDP1VRAM:
		writeByteTo(b.s.vdp1.VRAM[:], off, v)
		b.s.renderQueue.Push(renderEventVramByte(off, v, true))
	case memorymap.VDP1Framebuffer:
		writeByteTo(b.s.vdp1.FB[b.s.vdp1.DrawFB][:], off, v)
	case memorymap.VDP2VRAM:
		writeByteTo(b.s.vdp2.VRAM[:], off, v)
		b.s.renderQueue.Push(renderEventVramByte(off, v, false))
	case memorymap.VDP2CRAM:
		writeByteTo(b.s.vdp2.CRAM[:], off, v)
	default:
		logger.Logf("bus", "unmapped byte write at %#08x = %#02x", addr, v)
	}
}

func (b *masterBus) WriteWord(addr uint32, v uint16) {
	b.WriteByte(addr, uint8(v>>8))
	b.WriteByte(addr+1, uint8(v))
}

func (b *masterBus) WriteLong(addr uint32, v uint32) {
	b.WriteWord(addr, uint16(v>>16))
	b.WriteWord(addr+2, uint16(v))
}

func readByteFrom(buf []byte, off uint32) uint8 {
	if int(off) >= len(buf) {
		return 0
	}
	return buf[off]
}

func writeByteTo(buf []byte, off uint32, v uint8) {
	if int(off) >= len(buf) {
		return
	}
	buf[off] = v
}

// readBackupByte/writeBackupByte apply the even-byte-only wiring the
// internal backup RAM shares with the cartridge-slot backup variant
// (spec §6.3): only even bus addresses carry real SRAM bits.
func readBackupByte(buf []byte, off uint32) uint8 {
	if off%2 != 0 {
		return 0xFF
	}
	idx := off / 2
	if int(idx) >= len(buf) {
		return 0xFF
	}
	return buf[idx]
}

func writeBackupByte(buf []byte, off uint32, v uint8) {
	if off%2 != 0 {
		return
	}
	idx := off / 2
	if int(idx) >= len(buf) {
		return
	}
	buf[idx] = v
}
