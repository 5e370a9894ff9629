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

package scheduler_test

import (
	"testing"

	"github.com/saturnemu/satcore/scheduler"
	"github.com/saturnemu/satcore/test"
)

// TestRegistrationOrderTieBreak is spec §8 SC-3: two events with different
// rates scheduled for the same absolute time fire in registration order,
// and a rescheduled event lands at the expected scaled time.
func TestRegistrationOrderTieBreak(t *testing.T) {
	var order []string

	s := scheduler.New()

	var bID scheduler.EventID

	aID := s.RegisterEvent("A", nil, func(interface{}) {
		order = append(order, "A")
	})
	bID = s.RegisterEvent("B", nil, func(interface{}) {
		order = append(order, "B")
		s.Reschedule(bID, 5)
	})
	s.SetEventCountFactor(bID, 2, 1) // B runs at half the master rate

	s.ScheduleFromNow(aID, 10)
	s.ScheduleAt(bID, 10)

	s.Tick(10)
	test.Equate(t, order, []string{"A", "B"})

	// B rescheduled itself by +5 of its own cycles at half rate, so it
	// fires at absolute 10 + 5*2 = 20.
	order = nil
	s.Tick(10)
	test.Equate(t, order, []string{"B"})
}

// TestMonotonicity is spec §8 property 1: for any sequence of schedules,
// events fire in non-decreasing timestamp order.
func TestMonotonicity(t *testing.T) {
	s := scheduler.New()

	var fired []uint64
	id := s.RegisterEvent("x", nil, func(interface{}) {
		fired = append(fired, s.Time())
	})

	s.ScheduleFromNow(id, 30)

	id2 := s.RegisterEvent("y", nil, func(interface{}) {
		fired = append(fired, s.Time())
	})
	s.ScheduleFromNow(id2, 10)
	s.ScheduleFromNow(id2, 20) // cancels the first, replaces it

	s.Tick(30)

	test.Equate(t, len(fired), 2)
	for i := 1; i < len(fired); i++ {
		if fired[i] < fired[i-1] {
			t.Errorf("events fired out of order: %v", fired)
		}
	}
}

// TestPendingAndCancel checks that rescheduling an event before it fires
// replaces, rather than adds to, its pending firing.
func TestPendingAndCancel(t *testing.T) {
	s := scheduler.New()

	count := 0
	id := s.RegisterEvent("z", nil, func(interface{}) {
		count++
	})

	s.ScheduleFromNow(id, 100)
	test.ExpectSuccess(t, s.Pending(id))

	s.ScheduleFromNow(id, 5)
	s.Tick(5)

	test.Equate(t, count, 1)
	test.ExpectFailure(t, s.Pending(id))
}

// TestScheduleAtAbsolute exercises ScheduleAt, which is not subject to
// rate scaling.
func TestScheduleAtAbsolute(t *testing.T) {
	s := scheduler.New()

	fired := false
	id := s.RegisterEvent("abs", nil, func(interface{}) { fired = true })
	s.SetEventCountFactor(id, 1, 4)

	s.ScheduleAt(id, 40)
	s.Tick(39)
	test.ExpectFailure(t, fired)
	s.Tick(1)
	test.ExpectSuccess(t, fired)
}
