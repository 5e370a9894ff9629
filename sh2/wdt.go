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

package sh2

// WDT models the SH-2's watchdog timer (spec §3.2, §4.2), operable in
// either watchdog mode (an unacknowledged overflow resets the CPU) or
// interval-timer mode (overflow simply raises ITI and keeps counting).
type WDT struct {
	WTCNT uint8 // 8-bit up-counter
	RSTCSR uint8

	ClockDivisor uint32

	WatchdogMode bool
	TimerEnable  bool

	OverflowFlag bool
	ResetPending bool

	ticks uint32
}

// Tick advances the WDT by one peripheral cycle.
func (w *WDT) Tick() {
	if !w.TimerEnable {
		return
	}
	div := w.ClockDivisor
	if div == 0 {
		div = 2
	}
	w.ticks++
	if w.ticks < div {
		return
	}
	w.ticks = 0

	w.WTCNT++
	if w.WTCNT == 0 {
		w.OverflowFlag = true
		if w.WatchdogMode {
			w.ResetPending = true
		}
	}
}

// Ack clears the pending overflow/reset condition and rearms the counter,
// as software does when servicing the watchdog within its timeout window.
func (w *WDT) Ack() {
	w.OverflowFlag = false
	w.ResetPending = false
	w.WTCNT = 0
}

// RaiseInterrupt posts the interval-timer interrupt, when in that mode,
// to intc.
func (w *WDT) RaiseInterrupt(intc *INTC, vector uint8, level uint8) {
	if !w.WatchdogMode && w.OverflowFlag {
		intc.SetPending(SourceWDTITI, level, vector)
	}
}
