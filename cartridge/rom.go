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

import "github.com/saturnemu/satcore/logger"

// rom is a read-only cartridge (e.g. Ultraman, Astra Superstars). Writes
// are logged and discarded rather than erroring, matching real hardware's
// silent ignore of writes to a ROM cart.
type rom struct {
	bytes []byte
}

func newROM(image []byte) *rom {
	b := make([]byte, len(image))
	copy(b, image)
	return &rom{bytes: b}
}

func (r *rom) idx(addr uint32) uint32 { return addr % uint32(len(r.bytes)) }

func (r *rom) ReadByte(addr uint32) uint8  { return r.bytes[r.idx(addr)] }
func (r *rom) ReadWord(addr uint32) uint16 {
	i := r.idx(addr &^ 1)
	return uint16(r.bytes[i])<<8 | uint16(r.bytes[i+1])
}
func (r *rom) ReadLong(addr uint32) uint32 {
	i := r.idx(addr &^ 3)
	return uint32(r.bytes[i])<<24 | uint32(r.bytes[i+1])<<16 | uint32(r.bytes[i+2])<<8 | uint32(r.bytes[i+3])
}
func (r *rom) WriteByte(addr uint32, v uint8) {
	logger.Logf("cartridge", "discarded byte write %#02x to ROM cart at %#08x", v, addr)
}
func (r *rom) WriteWord(addr uint32, v uint16) {
	logger.Logf("cartridge", "discarded word write %#04x to ROM cart at %#08x", v, addr)
}
func (r *rom) WriteLong(addr uint32, v uint32) {
	logger.Logf("cartridge", "discarded long write %#08x to ROM cart at %#08x", v, addr)
}
func (r *rom) Kind() Kind { return ROM }
