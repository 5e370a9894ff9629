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

// Package satmath holds the small set of saturating-arithmetic helpers
// shared by VDP2 color calculation (additive blend, spec §4.3 step 6) and
// SCSP envelope generation (attack/decay/release level clamping, spec
// §4.6): both need "add, but clamp at a ceiling instead of wrapping"
// over different integer widths, which is exactly the shape
// golang.org/x/exp/constraints exists to make generic instead of
// hand-duplicated per width.
package satmath

import "golang.org/x/exp/constraints"

// SaturatingAdd returns a+b clamped to at most max. Used wherever hardware
// specifies "saturating add" rather than wraparound.
func SaturatingAdd[T constraints.Unsigned](a, b, max T) T {
	sum := a + b
	if sum < a || sum > max {
		return max
	}
	return sum
}

// SaturatingSub returns a-b clamped to at least min (and never underflows
// past zero for unsigned T).
func SaturatingSub[T constraints.Unsigned](a, b, min T) T {
	if b > a || a-b < min {
		return min
	}
	return a - b
}
