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

// Cache models the SH-2's 4 KiB direct-mapped instruction/data cache
// (spec §3.2, §4.2). 256 lines of 16 bytes. Address bits 31-28 select the
// partition an access falls into (spec §4.2 "memory access ... address
// bit pattern selects partition"):
//
//	0x0xxxxxxx  cached area    - served from the cache when Enabled
//	0x2xxxxxxx  cache-through  - always goes straight to the bus
//	0x4xxxxxxx  associative purge - writes invalidate a line; reads
//	            return the fixed pattern 0x2312 (spec §8 property 4)
//	0x6xxxxxxx  data array     - direct read/write of cache line bytes
//	0x7xxxxxxx  address array  - direct read/write of tag + valid bits
//
// The cache is emulated only when Enabled is set (spec §4.2); even when
// disabled, the data/address array windows must still answer so that
// software probing the cache's arrays (common self-modifying-code
// detection idiom) sees consistent, if inert, results.
type Cache struct {
	Enabled bool

	lineBytes [256][16]byte
	tag       [256]uint32
	valid     [256]bool
	dirty     [256]bool
}

const cacheLineSize = 16
const cacheLines = 256

// AssociativePurgeValue is the fixed value returned by a read from the
// associative purge area (spec §8 property 4).
const AssociativePurgeValue = 0x2312

func cacheIndex(addr uint32) (line int, tag uint32, offset int) {
	a := addr & 0x0FFFFFFF
	line = int((a / cacheLineSize) % cacheLines)
	tag = a / (cacheLineSize * cacheLines)
	offset = int(a % cacheLineSize)
	return
}

// Lookup reports whether addr currently hits the cache, and if so returns
// the byte.
func (c *Cache) Lookup(addr uint32) (v uint8, hit bool) {
	if !c.Enabled {
		return 0, false
	}
	line, tag, off := cacheIndex(addr)
	if c.valid[line] && c.tag[line] == tag {
		return c.lineBytes[line][off], true
	}
	return 0, false
}

// Fill installs a freshly-read 16-byte line, typically after a Lookup
// miss and a bus read of the containing line.
func (c *Cache) Fill(addr uint32, line [16]byte) {
	idx, tag, _ := cacheIndex(addr)
	c.lineBytes[idx] = line
	c.tag[idx] = tag
	c.valid[idx] = true
	c.dirty[idx] = false
}

// WriteThrough updates the cached copy of addr if it is resident, without
// changing validity; the caller is responsible for also writing through
// to the backing bus.
func (c *Cache) WriteThrough(addr uint32, v uint8) {
	line, tag, off := cacheIndex(addr)
	if c.valid[line] && c.tag[line] == tag {
		c.lineBytes[line][off] = v
		c.dirty[line] = true
	}
}

// Purge invalidates the line addr maps to, regardless of tag match. This
// is the effect of a write to the associative purge area.
func (c *Cache) Purge(addr uint32) {
	line, _, _ := cacheIndex(addr)
	c.valid[line] = false
	c.dirty[line] = false
}

// PeekDataArray and PeekAddressArray give the debugger/save-state probe
// read-only access to the raw arrays without affecting LRU or validity
// state (spec §9 "Probe" requirement: these never mutate state).
func (c *Cache) PeekDataArray(line, offset int) uint8 {
	return c.lineBytes[line&0xFF][offset&0xF]
}

func (c *Cache) PeekAddressArray(line int) (tag uint32, valid bool) {
	return c.tag[line&0xFF], c.valid[line&0xFF]
}
