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

package cartridge

// backup is an external backup-memory cartridge: another 32 KiB SRAM
// identical in format to the console's internal backup RAM (spec §6.3),
// just accessible through the cartridge slot instead. Only the even bytes
// of each 16-bit bus lane carry data, matching the internal backup RAM's
// wiring; odd bytes read back as 0xFF and writes to them are discarded.
type backup struct {
	sram [32 * 1024]byte
}

func newBackup(image []byte) *backup {
	b := &backup{}
	if len(image) == len(b.sram) {
		copy(b.sram[:], image)
	} else {
		for i := range b.sram {
			b.sram[i] = 0xFF
		}
	}
	return b
}

func (b *backup) idx(addr uint32) uint32 { return (addr / 2) % uint32(len(b.sram)) }

func (b *backup) ReadByte(addr uint32) uint8 {
	if addr%2 == 0 {
		return b.sram[b.idx(addr)]
	}
	return 0xFF
}
func (b *backup) ReadWord(addr uint32) uint16 { return uint16(b.ReadByte(addr)) }
func (b *backup) ReadLong(addr uint32) uint32 { return uint32(b.ReadByte(addr)) }
func (b *backup) WriteByte(addr uint32, v uint8) {
	if addr%2 == 0 {
		b.sram[b.idx(addr)] = v
	}
}
func (b *backup) WriteWord(addr uint32, v uint16) { b.WriteByte(addr, uint8(v)) }
func (b *backup) WriteLong(addr uint32, v uint32) { b.WriteByte(addr, uint8(v)) }
func (b *backup) Kind() Kind                      { return BackupMemory }

// Image returns a copy of the raw 32 KiB SRAM, suitable for persisting
// to the frontend's save directory.
func (b *backup) Image() []byte {
	out := make([]byte, len(b.sram))
	copy(out, b.sram[:])
	return out
}
