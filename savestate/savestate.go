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

// Package savestate implements the binary, versioned, self-describing
// save-state codec (spec §3.7, §4.8, §6.3). Sections are written in a
// fixed declared order; each component owns one section and is
// responsible for its own field layout via the Encoder/Decoder helpers
// this package provides.
//
// encoding/binary is used rather than a reflective codec (encoding/gob,
// as the sibling Nitro-Core-DX example in the retrieval pack favours):
// the format's magic/version/hash prologue and explicit length-prefixed
// variable sections need byte-exact, self-describing control that a
// reflective encoder does not give for free, and every section here is
// already a flat POD, so reflection buys nothing.
package savestate

import (
	"bytes"
	"encoding/binary"

	"github.com/saturnemu/satcore/errors"
)

// Magic is the fixed 4-byte state-file signature (spec §6.3).
const Magic uint32 = 0x53524D59 // "YMRS" little-endian

// Version is the current save-state format version.
const Version uint32 = 1

// SectionOrder is the declared component order every encode/decode must
// follow (spec §4.8).
var SectionOrder = []string{
	"scheduler",
	"sh2-master", "sh2-slave",
	"scu",
	"smpc",
	"vdp1", "vdp2",
	"scsp",
	"cdblock", "sh1", "ygr", "drive",
	"backup",
	"spillover-cycles",
}

// Encoder accumulates a save-state byte stream.
type Encoder struct {
	buf     bytes.Buffer
	discHash [16]byte
	iplHash  [32]byte
	cdromHash [32]byte
}

// NewEncoder starts a save-state encode, writing the prologue immediately.
func NewEncoder(discHash [16]byte, iplHash, cdromHash [32]byte) *Encoder {
	e := &Encoder{discHash: discHash, iplHash: iplHash, cdromHash: cdromHash}
	binary.Write(&e.buf, binary.LittleEndian, Magic)
	binary.Write(&e.buf, binary.LittleEndian, Version)
	e.buf.Write(discHash[:])
	e.buf.Write(iplHash[:])
	e.buf.Write(cdromHash[:])
	return e
}

// WriteSection appends a named section's already-serialized POD bytes,
// prefixed with its own length so a reader can skip unknown/future
// sections without understanding their contents.
func (e *Encoder) WriteSection(name string, data []byte) {
	binary.Write(&e.buf, binary.LittleEndian, uint32(len(data)))
	e.buf.Write(data)
}

// Bytes returns the finished save-state buffer.
func (e *Encoder) Bytes() []byte { return e.buf.Bytes() }

// Decoder walks a save-state byte stream section by section.
type Decoder struct {
	r         *bytes.Reader
	DiscHash  [16]byte
	IPLHash   [32]byte
	CDROMHash [32]byte
}

// NewDecoder parses the prologue, validating magic and version, and
// returns a Decoder positioned at the first section. Callers must then
// separately validate DiscHash/IPLHash/CDROMHash against the currently
// loaded disc and ROMs before calling ReadSection (spec §4.8, §7).
func NewDecoder(data []byte) (*Decoder, error) {
	r := bytes.NewReader(data)

	var magic, version uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, errors.Errorf(errors.SaveStateTruncated, "magic", 4, len(data))
	}
	if magic != Magic {
		return nil, errors.Errorf(errors.SaveStateBadMagic, magic, Magic)
	}
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, errors.Errorf(errors.SaveStateTruncated, "version", 4, len(data))
	}
	if version != Version {
		return nil, errors.Errorf(errors.SaveStateBadVersion, version)
	}

	d := &Decoder{r: r}
	if _, err := r.Read(d.DiscHash[:]); err != nil {
		return nil, errors.Errorf(errors.SaveStateTruncated, "disc-hash", 16, r.Len())
	}
	if _, err := r.Read(d.IPLHash[:]); err != nil {
		return nil, errors.Errorf(errors.SaveStateTruncated, "ipl-hash", 32, r.Len())
	}
	if _, err := r.Read(d.CDROMHash[:]); err != nil {
		return nil, errors.Errorf(errors.SaveStateTruncated, "cdrom-hash", 32, r.Len())
	}
	return d, nil
}

// ReadSection reads the next length-prefixed section's raw bytes.
func (d *Decoder) ReadSection(name string) ([]byte, error) {
	var length uint32
	if err := binary.Read(d.r, binary.LittleEndian, &length); err != nil {
		return nil, errors.Errorf(errors.SaveStateTruncated, name, 4, d.r.Len())
	}
	buf := make([]byte, length)
	if _, err := d.r.Read(buf); err != nil {
		return nil, errors.Errorf(errors.SaveStateTruncated, name, length, d.r.Len())
	}
	return buf, nil
}

// Component is implemented by every part of the system with state to
// persist. Validate reports every field that would fail to load before
// any side effect is applied (spec §4.8 "validate_state").
type Component interface {
	SectionName() string
	EncodeState() []byte
	ValidateState(data []byte) error
	DecodeState(data []byte) error
}
