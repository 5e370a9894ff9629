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

// Package peripheral defines the tagged-union input report schema the
// frontend feeds into a connected controller port (spec §6.2), and the
// button bit layout SMPC's INTBACK peripheral-polling response encodes.
package peripheral

// Button bits, released = 1, matching real SMPC digital-pad wiring.
const (
	ButtonUp uint16 = 1 << iota
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonA
	ButtonB
	ButtonC
	ButtonX
	ButtonY
	ButtonZ
	ButtonL
	ButtonR
	ButtonStart
)

// Kind tags which report variant a Report holds.
type Kind int

const (
	KindNone Kind = iota
	KindControlPad
	KindAnalogPad
	KindArcadeRacer
	KindMissionStick
	KindShuttleMouse
	KindVirtuaGun
)

// Report is the tagged union of input reports a connected device produces
// once per poll (spec §6.2). Only the fields matching Kind are meaningful.
type Report struct {
	Kind Kind

	// ControlPad, and the shared button field of every other pad type.
	Buttons uint16

	// AnalogPad
	AnalogFlag bool
	X, Y       uint8
	L, R       uint8

	// ArcadeRacer
	Wheel uint8

	// MissionStick
	SixAxisFlag    bool
	X1, Y1, Z1     uint8
	X2, Y2, Z2     uint8

	// ShuttleMouse
	DX, DY                int16
	MouseLeft, MouseRight bool
	MouseMiddle           bool

	// VirtuaGun
	Trigger, GunStart, Reload bool
	GunX, GunY                uint16
}

// Device is a connected peripheral: it is polled once per SMPC INTBACK
// peripheral cycle and returns its current Report.
type Device interface {
	Kind() Kind
	Poll() Report
}

// Port holds whatever Device the frontend has connected, defaulting to
// none (spec §6.1 "Device types ... None").
type Port struct {
	device   Device
	callback func(Report)
}

// Connect attaches device to the port, replacing any previous one.
func (p *Port) Connect(device Device) { p.device = device }

// Disconnect removes any attached device.
func (p *Port) Disconnect() { p.device = nil }

// SetReportCallback registers fn to be invoked with each polled Report.
func (p *Port) SetReportCallback(fn func(Report)) { p.callback = fn }

// Poll asks the attached device (if any) for its current report, invoking
// the registered callback, and returns the report so SMPC can encode it.
func (p *Port) Poll() Report {
	if p.device == nil {
		return Report{Kind: KindNone, Buttons: 0xFFFF}
	}
	r := p.device.Poll()
	if p.callback != nil {
		p.callback(r)
	}
	return r
}
