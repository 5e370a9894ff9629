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

func TestHeaderFieldsASCII(t *testing.T) {
	var h disc.Header
	copy(h.Raw[0x10:], []byte("SEGA ENTERPRISES"))
	copy(h.Raw[0x20:], []byte("T-00000G  "))
	copy(h.Raw[0x60:], []byte("EXAMPLE GAME TITLE"))

	test.Equate(t, h.MakerID(), "SEGA ENTERPRISES")
	test.Equate(t, h.ProductNumber(), "T-00000G")
	test.Equate(t, h.Title(), "EXAMPLE GAME TITLE")
}

func TestHeaderTitleEmpty(t *testing.T) {
	var h disc.Header
	test.Equate(t, h.Title(), "")
}
