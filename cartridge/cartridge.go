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

// Package cartridge implements the cartridge-slot variants a Saturn can
// be fitted with (spec §6.1): nothing, extra DRAM of three sizes, a ROM
// cart, or an external backup-memory cart. Every variant satisfies the
// Mapper interface so the bus can treat the slot uniformly.
package cartridge

import "github.com/saturnemu/satcore/errors"

// Mapper is what the CS0/CS1 bus window (memorymap.CartridgeCS0/CS1)
// delegates to, regardless of which variant is installed.
type Mapper interface {
	ReadByte(addr uint32) uint8
	ReadWord(addr uint32) uint16
	ReadLong(addr uint32) uint32
	WriteByte(addr uint32, v uint8)
	WriteWord(addr uint32, v uint16)
	WriteLong(addr uint32, v uint32)
	Kind() Kind
}

// Kind enumerates the installable cartridge variants.
type Kind int

const (
	None Kind = iota
	DRAM8Mbit
	DRAM32Mbit
	DRAM48Mbit
	ROM
	BackupMemory
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case DRAM8Mbit:
		return "dram-8mbit"
	case DRAM32Mbit:
		return "dram-32mbit"
	case DRAM48Mbit:
		return "dram-48mbit"
	case ROM:
		return "rom"
	case BackupMemory:
		return "backup-memory"
	default:
		return "unknown"
	}
}

// empty is installed when no cartridge is present; every access reads as
// open-bus zero and writes are discarded.
type empty struct{}

func (empty) ReadByte(uint32) uint8   { return 0 }
func (empty) ReadWord(uint32) uint16  { return 0 }
func (empty) ReadLong(uint32) uint32  { return 0 }
func (empty) WriteByte(uint32, uint8) {}
func (empty) WriteWord(uint32, uint16) {}
func (empty) WriteLong(uint32, uint32) {}
func (empty) Kind() Kind              { return None }

// New builds a Mapper for variant, validating rom/backup image sizes
// against the real cartridge ROM sizes (spec §7 "invalid cartridge image
// size").
func New(variant Kind, image []byte) (Mapper, error) {
	switch variant {
	case None:
		return empty{}, nil
	case DRAM8Mbit:
		return newDRAM(8 * 1024 * 1024 / 8), nil
	case DRAM32Mbit:
		return newDRAM(32 * 1024 * 1024 / 8), nil
	case DRAM48Mbit:
		return newDRAM(48 * 1024 * 1024 / 8), nil
	case ROM:
		if len(image) == 0 || len(image)%(1024*1024) != 0 {
			return nil, errors.Errorf(errors.InvalidCartridgeImage, ROM, len(image))
		}
		return newROM(image), nil
	case BackupMemory:
		if len(image) != 32*1024 && len(image) != 0 {
			return nil, errors.Errorf(errors.InvalidCartridgeImage, BackupMemory, len(image))
		}
		return newBackup(image), nil
	default:
		return nil, errors.Errorf(errors.InvalidCartridgeImage, variant, len(image))
	}
}
