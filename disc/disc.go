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

// Package disc models the read-only disc/session/track/index tree the
// core consumes from a loader collaborator (spec §3.4, §6.4). The core
// never parses CUE/BIN, CHD, ISO or MDS itself; it only walks this tree
// and reads sector bytes through the Reader a loader attaches to each
// Track.
package disc

import "io"

// FAD is a 0-based absolute sector address; FAD 150 is the conventional
// first user-data sector (00:02:00 in Red-Book minute:second:frame).
type FAD uint32

// ToMSF converts a FAD to Red-Book minute/second/frame (75 frames/sec).
func (f FAD) ToMSF() (m, s, fr uint8) {
	v := uint32(f)
	fr = uint8(v % 75)
	v /= 75
	s = uint8(v % 60)
	v /= 60
	m = uint8(v)
	return
}

// Index carries the [start,end) FAD range of one CD index within a track.
type Index struct {
	StartFAD FAD
	EndFAD   FAD
}

// Reader supplies random-access sector bytes for one track. Loaders
// implement this over whatever container (BIN, ISO, CHD) they parsed;
// the core never seeks the underlying file directly.
type Reader interface {
	io.ReaderAt
}

// Track describes one session track: its sector geometry and byte source.
type Track struct {
	Number     int
	SectorSize int // 2048, 2324, 2336, 2352 or 2448
	Mode2      bool
	ControlADR uint8
	StartFAD   FAD
	EndFAD     FAD
	Indices    []Index
	Reader     Reader
}

// UserDataOffset returns the byte offset within a raw sector where the
// 2048-byte (or, for Mode 2 Form 2, larger) user-data payload begins,
// per the track's declared sector size.
func (t *Track) UserDataOffset() int {
	switch t.SectorSize {
	case 2048:
		return 0
	case 2324:
		return 0
	case 2336:
		return 8
	case 2352:
		return 16
	case 2448:
		return 16
	default:
		return 0
	}
}

// ReadUserData reads the user-data payload of the sector at fad.
func (t *Track) ReadUserData(fad FAD, userSize int) ([]byte, error) {
	sectorIndex := int64(fad - t.StartFAD)
	off := sectorIndex*int64(t.SectorSize) + int64(t.UserDataOffset())
	buf := make([]byte, userSize)
	_, err := t.Reader.ReadAt(buf, off)
	return buf, err
}

// Session is a contiguous FAD range containing one or more tracks, with a
// table of contents built from them.
type Session struct {
	StartFAD   FAD
	EndFAD     FAD
	FirstTrack int
	LastTrack  int
	Tracks     []*Track
}

// Header is the 256-byte user-data block of sector 0, track 1 (spec §6.4).
type Header struct {
	Raw [256]byte
}

// Disc is the read-only tree a loader populates and the core consumes.
type Disc struct {
	Sessions []*Session
	Header   Header
}

// FirstDataTrack returns the first track flagged as a data track (control
// bit 0x4 set in its ADR/control byte) across all sessions, or nil.
func (d *Disc) FirstDataTrack() *Track {
	for _, s := range d.Sessions {
		for _, t := range s.Tracks {
			if t.ControlADR&0x4 != 0 {
				return t
			}
		}
	}
	return nil
}

// AllTracks returns every track across every session, in session/track order.
func (d *Disc) AllTracks() []*Track {
	var out []*Track
	for _, s := range d.Sessions {
		out = append(out, s.Tracks...)
	}
	return out
}
