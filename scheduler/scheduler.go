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

// Package scheduler implements the priority-ordered event queue described
// in spec §4.1. It generalises the teacher's hardware/tia/future.Ticker —
// a single-event "schedule a payload N cycles from now" primitive used to
// model TIA write delays — into a min-heap of many independently-rated
// events, because the Saturn core needs to advance several components
// (SH-2 ×2, SCU DSP, VDP, SCSP, CD block) each at its own fraction of the
// master clock from one driving loop.
package scheduler

import "container/heap"

// EventID identifies a registered event. It is stable for the lifetime of
// the Scheduler.
type EventID int

// Handler is called when an event fires. ctx is the opaque user context
// supplied at RegisterEvent time; the scheduler never dereferences it.
type Handler func(ctx interface{})

type registered struct {
	kind    string
	ctx     interface{}
	handler Handler

	num, den uint64 // rate-scaling factor, default 1/1

	pending    bool
	lastFiring uint64
}

// Scheduler maintains a priority queue ordered by scaled absolute time.
// Two events at equal timestamp fire in FIFO registration-of-schedule
// order (spec §4.1 ordering rule).
type Scheduler struct {
	now uint64
	seq uint64

	events []*registered
	pq     eventHeap
}

// New creates an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Time returns the current scaled absolute time. Implements random.Clock.
func (s *Scheduler) Time() uint64 {
	return s.now
}

// RegisterEvent registers a handler under kind and returns its EventID.
// This does not schedule anything; the event stays dormant until a
// Schedule* call.
func (s *Scheduler) RegisterEvent(kind string, ctx interface{}, handler Handler) EventID {
	s.events = append(s.events, &registered{
		kind:    kind,
		ctx:     ctx,
		handler: handler,
		num:     1,
		den:     1,
	})
	return EventID(len(s.events) - 1)
}

// SetEventCountFactor sets the num/den rate-scaling factor applied to
// every delay passed to a Schedule* call for this event from now on: a
// delay of N becomes N*num/den master ticks. A component whose clock is
// the master clock divided by k (the CD block, k = clocks.CDBlockDiv, for
// instance) registers num=k, den=1, so its own "N cycles" lands N*k
// master ticks later.
func (s *Scheduler) SetEventCountFactor(id EventID, num, den uint64) {
	if den == 0 {
		den = 1
	}
	r := s.events[id]
	r.num, r.den = num, den
}

func (s *Scheduler) scale(id EventID, delta uint64) uint64 {
	r := s.events[id]
	d := delta * r.num / r.den
	if d == 0 {
		d = 1
	}
	return d
}

// ScheduleAt schedules id to fire at the given absolute scaled time,
// unscaled (absolute times are not subject to rate scaling; only
// relative delays are), replacing any pending firing of id.
func (s *Scheduler) ScheduleAt(id EventID, absoluteTime uint64) {
	s.push(id, absoluteTime)
}

// ScheduleFromNow schedules id to fire delta (pre-scaling) ticks from the
// current time, replacing any pending firing of id.
func (s *Scheduler) ScheduleFromNow(id EventID, delta uint64) {
	s.push(id, s.now+s.scale(id, delta))
}

// Reschedule cancels any pending firing of id and schedules it delta
// ticks from now. Per the invariant in spec §3.1, the new firing time is
// always strictly greater than "now": a delay that scales to zero is
// raised to one tick (see scale).
func (s *Scheduler) Reschedule(id EventID, delta uint64) {
	s.cancel(id)
	s.ScheduleFromNow(id, delta)
}

// RescheduleFromPrevious schedules id delta ticks after the time it last
// fired (or now, if it has never fired), rather than from the current
// time. Used by self-perpetuating events (the CD drive's transmission
// state machine) that must not accumulate drift from Tick granularity.
func (s *Scheduler) RescheduleFromPrevious(id EventID, delta uint64) {
	s.cancel(id)
	base := s.events[id].lastFiring
	if base < s.now {
		base = s.now
	}
	s.push(id, base+s.scale(id, delta))
}

// push gives id its one pending firing at at, dropping any earlier one.
func (s *Scheduler) push(id EventID, at uint64) {
	s.cancel(id)
	s.events[id].pending = true
	s.seq++
	heap.Push(&s.pq, &scheduled{id: id, at: at, seq: s.seq})
}

// cancel removes any pending heap entries for id. Entries are located by
// linear scan; the heap is expected to stay small (on the order of tens
// of live events), so this is cheaper in practice than maintaining a
// secondary index.
func (s *Scheduler) cancel(id EventID) {
	if !s.events[id].pending {
		return
	}
	for i := 0; i < len(s.pq); i++ {
		if s.pq[i].id == id {
			heap.Remove(&s.pq, i)
			break
		}
	}
	s.events[id].pending = false
}

// Tick advances "now" by masterCycles and fires, in (time, registration
// order), every event whose scaled time is now <= the new "now". A
// handler may reschedule itself; because a rescheduled event always gets
// a strictly later timestamp (see Reschedule), it is never fired twice
// within the same Tick call.
func (s *Scheduler) Tick(masterCycles uint64) {
	s.now += masterCycles

	for len(s.pq) > 0 && s.pq[0].at <= s.now {
		ev := heap.Pop(&s.pq).(*scheduled)
		r := s.events[ev.id]
		r.pending = false
		r.lastFiring = ev.at
		r.handler(r.ctx)
	}
}

// Pending reports whether id currently has a scheduled firing.
func (s *Scheduler) Pending(id EventID) bool {
	return s.events[id].pending
}

type scheduled struct {
	id  EventID
	at  uint64
	seq uint64
}

// eventHeap orders by (at, seq) ascending, giving FIFO tie-break at equal
// timestamps as required by spec §4.1.
type eventHeap []*scheduled

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(*scheduled))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
