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

package savestate_test

import (
	"testing"
	"time"

	"github.com/saturnemu/satcore/savestate"
	"github.com/saturnemu/satcore/test"
)

func TestSlotsSetPeekErase(t *testing.T) {
	s := savestate.NewSlots(4)
	test.Equate(t, s.Size(), 4)

	_, ok := s.Peek(0)
	test.Equate(t, ok, false)

	now := time.Unix(1700000000, 0)
	test.Equate(t, s.Set(0, []byte("state-bytes"), now), true)

	data, ok := s.Peek(0)
	test.Equate(t, ok, true)
	test.Equate(t, data, []byte("state-bytes"))

	test.Equate(t, s.Erase(0), true)
	_, ok = s.Peek(0)
	test.Equate(t, ok, false)
}

func TestSlotsOutOfRange(t *testing.T) {
	s := savestate.NewSlots(2)
	test.Equate(t, s.Set(5, []byte("x"), time.Now()), false)
	test.Equate(t, s.Erase(5), false)
	_, ok := s.Peek(-1)
	test.Equate(t, ok, false)
}

func TestSlotsList(t *testing.T) {
	s := savestate.NewSlots(3)
	now := time.Unix(1700000000, 0)
	s.Set(1, []byte("abc"), now)

	meta := s.List()
	test.Equate(t, len(meta), 3)
	test.Equate(t, meta[0].Present, false)
	test.Equate(t, meta[1].Present, true)
	test.Equate(t, meta[1].Timestamp, now)
	test.Equate(t, meta[2].Present, false)
}

// TestSlotsCurrentSlotClampsSilently mirrors the original service's
// behaviour (SaveStateService::setCurrentSlot): an out-of-range index is
// ignored rather than rejected with an error.
func TestSlotsCurrentSlotClampsSilently(t *testing.T) {
	s := savestate.NewSlots(2)
	test.Equate(t, s.CurrentSlot(), 0)

	s.SetCurrentSlot(1)
	test.Equate(t, s.CurrentSlot(), 1)

	s.SetCurrentSlot(99)
	test.Equate(t, s.CurrentSlot(), 1)
}
