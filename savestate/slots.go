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

package savestate

import "time"

// SlotMeta is a lightweight view of one slot's occupancy, safe to hand to
// a UI without touching the slot's (potentially large) encoded bytes.
type SlotMeta struct {
	Slot      int
	Present   bool
	Timestamp time.Time
}

// slot holds one save-state's encoded bytes alongside the moment it was
// written; a nil Data means the slot is empty.
type slot struct {
	Data      []byte
	Timestamp time.Time
}

// Slots is a fixed-size bank of named save-state slots plus a notion of
// which one the frontend currently has selected. Saturn Core itself never
// calls this type: a frontend wires it in front of savestate.Encoder/
// Decoder to offer the player multiple independent save points instead of
// a single overwritten state blob.
type Slots struct {
	slots   []slot
	current int
}

// NewSlots returns a Slots bank with n empty slots.
func NewSlots(n int) *Slots {
	return &Slots{slots: make([]slot, n)}
}

// Size returns the number of slots in the bank.
func (s *Slots) Size() int { return len(s.slots) }

// Peek returns the encoded bytes in slot i without removing them, and
// whether that slot holds a state at all.
func (s *Slots) Peek(i int) ([]byte, bool) {
	if i < 0 || i >= len(s.slots) || s.slots[i].Data == nil {
		return nil, false
	}
	return s.slots[i].Data, true
}

// Set stores data (already savestate-encoded) into slot i, stamped now.
// It reports false if i is out of range.
func (s *Slots) Set(i int, data []byte, now time.Time) bool {
	if i < 0 || i >= len(s.slots) {
		return false
	}
	s.slots[i] = slot{Data: data, Timestamp: now}
	return true
}

// Erase clears slot i, reporting false if i is out of range.
func (s *Slots) Erase(i int) bool {
	if i < 0 || i >= len(s.slots) {
		return false
	}
	s.slots[i] = slot{}
	return true
}

// List returns metadata for every slot, present or not, in slot order.
func (s *Slots) List() []SlotMeta {
	out := make([]SlotMeta, len(s.slots))
	for i := range s.slots {
		out[i] = SlotMeta{Slot: i, Present: s.slots[i].Data != nil}
		if out[i].Present {
			out[i].Timestamp = s.slots[i].Timestamp
		}
	}
	return out
}

// CurrentSlot returns the slot index the frontend has selected.
func (s *Slots) CurrentSlot() int { return s.current }

// SetCurrentSlot selects slot i, ignoring out-of-range values (matching
// the original service's fail-silent clamp behaviour).
func (s *Slots) SetCurrentSlot(i int) {
	if i >= 0 && i < len(s.slots) {
		s.current = i
	}
}
