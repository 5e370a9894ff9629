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

package disc

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// Hash128 is a 128-bit disc content hash, stable across eject/reload of
// the same disc image (spec §8 SC-2).
type Hash128 [16]byte

// Hash computes the disc's content hash: the XXH128 of, for every track in
// every session in order, an 8-byte little-endian (start_fad, sector_size)
// header followed by the concatenation of that track's user-data sectors.
func (d *Disc) Hash() (Hash128, error) {
	h := xxh3.New()

	for _, s := range d.Sessions {
		for _, t := range s.Tracks {
			var meta [8]byte
			binary.LittleEndian.PutUint32(meta[0:4], uint32(t.StartFAD))
			binary.LittleEndian.PutUint32(meta[4:8], uint32(t.SectorSize))
			if _, err := h.Write(meta[:]); err != nil {
				return Hash128{}, err
			}

			userSize := userDataSize(t.SectorSize)
			for fad := t.StartFAD; fad < t.EndFAD; fad++ {
				data, err := t.ReadUserData(fad, userSize)
				if err != nil {
					return Hash128{}, err
				}
				if _, err := h.Write(data); err != nil {
					return Hash128{}, err
				}
			}
		}
	}

	sum := h.Sum128()
	var out Hash128
	binary.LittleEndian.PutUint64(out[0:8], sum.Lo)
	binary.LittleEndian.PutUint64(out[8:16], sum.Hi)
	return out, nil
}

func userDataSize(sectorSize int) int {
	switch sectorSize {
	case 2352, 2448:
		return 2048
	case 2336:
		return 2048
	case 2324:
		return 2324
	default:
		return 2048
	}
}
