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

package drive_test

import (
	"testing"

	"github.com/saturnemu/satcore/cdblock/drive"
	"github.com/saturnemu/satcore/test"
)

// TestStatusPacketNoDiscReadsAllOnes checks that every field but the
// operation byte reads 0xFF with no disc loaded, matching cd_drive.cpp's
// UpdateStatus for an empty disc rather than leaving BCD fields zeroed.
func TestStatusPacketNoDiscReadsAllOnes(t *testing.T) {
	d := drive.New()
	status := d.StatusPacket()

	test.Equate(t, status[0], uint8(0x0D)) // Operation::NoDisc

	for i := 1; i < 11; i++ {
		test.Equate(t, status[i], uint8(0xFF))
	}
}

func TestStatusPacketChecksum(t *testing.T) {
	d := drive.New()
	status := d.StatusPacket()

	var sum uint8
	for i := 0; i < 11; i++ {
		sum += status[i]
	}
	test.Equate(t, status[11], ^sum)
}
