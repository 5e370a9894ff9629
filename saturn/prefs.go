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

import "github.com/saturnemu/satcore/prefs"

// prefBool/prefInt narrow a prefs.Value (a bare interface{}) back to its
// concrete type. prefs.Bool/Int always store their own native type, so
// the type assertion always succeeds; a cell that was never Set reads as
// its zero value.
func prefBool(b prefs.Bool) bool {
	v, _ := b.Get().(bool)
	return v
}

func prefInt(i prefs.Int) int {
	v, _ := i.Get().(int)
	return v
}
