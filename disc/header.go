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
	"strings"

	"golang.org/x/text/encoding/japanese"
)

// Field offsets within the 256-byte Saturn disc header (spec §6.4), matching
// the layout commercial discs use: a fixed-width maker/product/version block
// followed by a 112-byte title field. Titles are stored Shift-JIS encoded so
// Japanese-market releases can embed kana/kanji; most Western releases only
// use the ASCII subset, which Shift-JIS maps transparently.
const (
	offsetMakerID    = 0x10
	makerIDLen       = 16
	offsetProductNum = 0x20
	productNumLen    = 10
	offsetTitle      = 0x60
	titleLen         = 112
)

// MakerID returns the header's maker-ID field, trimmed of trailing padding.
func (h Header) MakerID() string {
	return trimPadded(h.Raw[offsetMakerID : offsetMakerID+makerIDLen])
}

// ProductNumber returns the header's product-number field, trimmed of
// trailing padding.
func (h Header) ProductNumber() string {
	return trimPadded(h.Raw[offsetProductNum : offsetProductNum+productNumLen])
}

// Title decodes the header's 112-byte title field from Shift-JIS. Bytes that
// do not form a valid Shift-JIS sequence are replaced by the Unicode
// replacement character rather than failing the whole decode, since a
// malformed title must never prevent a disc from loading.
func (h Header) Title() string {
	raw := h.Raw[offsetTitle : offsetTitle+titleLen]
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(raw)
	if err != nil {
		decoded = raw
	}
	return trimPadded(decoded)
}

// trimPadded trims trailing NUL and space padding, the two fillers Saturn
// header fields use.
func trimPadded(b []byte) string {
	return strings.TrimRight(string(b), "\x00 ")
}
