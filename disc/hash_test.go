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

package disc_test

import (
	"testing"

	"github.com/saturnemu/satcore/disc"
	"github.com/saturnemu/satcore/test"
)

// zeroReader serves an all-zero byte stream of any size, standing in for a
// loader-backed track whose sectors are entirely zero (spec §8 SC-2).
type zeroReader struct{}

func (zeroReader) ReadAt(p []byte, off int64) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func oneTrackDisc() *disc.Disc {
	track := &disc.Track{
		Number:     1,
		SectorSize: 2352,
		StartFAD:   150,
		EndFAD:     170,
		Reader:     zeroReader{},
	}
	session := &disc.Session{
		StartFAD:   150,
		EndFAD:     170,
		FirstTrack: 1,
		LastTrack:  1,
		Tracks:     []*disc.Track{track},
	}
	return &disc.Disc{Sessions: []*disc.Session{session}}
}

// TestHashDeterminism is spec §8 SC-2: re-hashing the same single-track,
// all-zero-content disc after an eject+reload yields the same 128-bit
// value.
func TestHashDeterminism(t *testing.T) {
	d1 := oneTrackDisc()
	d2 := oneTrackDisc()

	h1, err := d1.Hash()
	test.ExpectSuccess(t, err)
	h2, err := d2.Hash()
	test.ExpectSuccess(t, err)

	test.Equate(t, h1, h2)
}

func TestHashDiffersOnContent(t *testing.T) {
	same := oneTrackDisc()
	h1, err := same.Hash()
	test.ExpectSuccess(t, err)

	same.Sessions[0].Tracks[0].EndFAD = 171
	h2, err := same.Hash()
	test.ExpectSuccess(t, err)

	if h1 == h2 {
		t.Fatalf("expected hash to change when track length changes")
	}
}
