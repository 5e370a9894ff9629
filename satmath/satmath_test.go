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

package satmath_test

import (
	"testing"

	"github.com/saturnemu/satcore/satmath"
	"github.com/saturnemu/satcore/test"
)

func TestSaturatingAdd(t *testing.T) {
	test.Equate(t, satmath.SaturatingAdd(uint16(10), uint16(5), uint16(20)), uint16(15))
	test.Equate(t, satmath.SaturatingAdd(uint16(18), uint16(5), uint16(20)), uint16(20))
	test.Equate(t, satmath.SaturatingAdd(uint8(250), uint8(250), uint8(255)), uint8(255))
}

func TestSaturatingSub(t *testing.T) {
	test.Equate(t, satmath.SaturatingSub(uint16(10), uint16(5), uint16(0)), uint16(5))
	test.Equate(t, satmath.SaturatingSub(uint16(3), uint16(5), uint16(0)), uint16(0))
}
