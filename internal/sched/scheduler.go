// Package sched provides a virtual-time timer scheduler.
//
// Time only moves when the owner calls Advance, so every interleaving of
// periodic and one-shot timers is reproducible. The platform feeds real
// elapsed time in; tests feed exact durations.
package sched

import (
	"container/heap"
	"fmt"
	"time"
)

// TimerID identifies a scheduled timer. The zero value never names a timer.
type TimerID uint64

type timer struct {
	id     TimerID
	due    time.Duration
	period time.Duration // 0 for one-shot timers
	seq    uint64        // creation order, breaks ties between equal due times
	fn     func()
	index  int
}

// Scheduler runs callbacks at virtual times. It is not safe for concurrent
// use; the owner serializes access (dodger.Session holds its mutex).
type Scheduler struct {
	now    time.Duration
	nextID TimerID
	seq    uint64
	queue  timerQueue
	timers map[TimerID]*timer
}

// New creates an empty scheduler at virtual time zero.
func New() *Scheduler {
	return &Scheduler{
		timers: make(map[TimerID]*timer),
	}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once, delay after the current virtual time.
// A non-positive delay fires on the next Advance.
func (s *Scheduler) After(delay time.Duration, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	return s.add(delay, 0, fn)
}

// Every schedules fn to run every period, first firing one period from now.
// Panics on a non-positive period; callers validate configuration first.
func (s *Scheduler) Every(period time.Duration, fn func()) TimerID {
	if period <= 0 {
		panic(fmt.Sprintf("sched: non-positive period %v", period))
	}
	return s.add(period, period, fn)
}

func (s *Scheduler) add(delay, period time.Duration, fn func()) TimerID {
	s.nextID++
	s.seq++
	t := &timer{
		id:     s.nextID,
		due:    s.now + delay,
		period: period,
		seq:    s.seq,
		fn:     fn,
	}
	s.timers[t.id] = t
	heap.Push(&s.queue, t)
	return t.id
}

// Cancel stops a timer. Returns false if the timer already fired (one-shot)
// or was cancelled before. Safe to call from inside the timer's own callback.
func (s *Scheduler) Cancel(id TimerID) bool {
	t, ok := s.timers[id]
	if !ok {
		return false
	}
	delete(s.timers, id)
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
	return true
}

// CancelAll stops every pending timer.
func (s *Scheduler) CancelAll() {
	s.timers = make(map[TimerID]*timer)
	s.queue = s.queue[:0]
}

// Active reports whether the timer is still pending.
func (s *Scheduler) Active(id TimerID) bool {
	_, ok := s.timers[id]
	return ok
}

// Len returns the number of pending timers.
func (s *Scheduler) Len() int {
	return len(s.timers)
}

// Advance moves virtual time forward by d and fires every timer that comes
// due, in due-time order with ties broken by creation order. Periodic timers
// that fell behind fire once per elapsed period. Callbacks observe Now() as
// their own due time and may schedule or cancel timers; timers they create
// that fall inside the window fire during this same call.
// Returns the number of callbacks run.
func (s *Scheduler) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	target := s.now + d
	fired := 0

	for len(s.queue) > 0 {
		t := s.queue[0]
		if t.due > target {
			break
		}
		s.now = t.due

		if t.period > 0 {
			// Re-arm before running so the callback can cancel itself
			t.due += t.period
			heap.Fix(&s.queue, t.index)
		} else {
			heap.Pop(&s.queue)
			delete(s.timers, t.id)
		}

		t.fn()
		fired++
	}

	s.now = target
	return fired
}

// timerQueue is a min-heap ordered by (due, seq).
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
