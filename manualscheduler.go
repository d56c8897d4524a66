// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dispatch

import (
	"container/heap"
	"sync"
	"time"
)

// ManualScheduler is a [Scheduler] driven by a virtual clock. Nothing fires
// until [ManualScheduler.Advance] or [ManualScheduler.RunNext] is called, and
// callbacks run on the calling goroutine, which makes it suitable for
// deterministic tests and simulations.
//
// Timers due at the same instant fire in the order they were armed.
type ManualScheduler struct {
	timers  map[TimerID]*manualTimer
	queue   manualQueue
	now     time.Duration
	nextID  TimerID
	nextSeq uint64
	mu      sync.Mutex
}

type manualTimer struct {
	fn     func()
	id     TimerID
	when   time.Duration
	period time.Duration // zero for one-shot timers
	seq    uint64
	index  int
}

// NewManualScheduler returns a scheduler with its clock at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{
		timers: make(map[TimerID]*manualTimer),
	}
}

// MinDelay implements [Scheduler].
func (s *ManualScheduler) MinDelay() time.Duration {
	return DefaultMinDelay
}

// ArmRepeating implements [Scheduler].
func (s *ManualScheduler) ArmRepeating(fn func(), delay time.Duration) (TimerID, error) {
	// a zero period would make Advance spin forever
	return s.arm(fn, clampDelay(s, delay), true), nil
}

// ArmOnce implements [Scheduler].
func (s *ManualScheduler) ArmOnce(fn func(), delay time.Duration) (TimerID, error) {
	if delay < 0 {
		delay = 0
	}
	return s.arm(fn, delay, false), nil
}

func (s *ManualScheduler) arm(fn func(), delay time.Duration, repeating bool) TimerID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	t := &manualTimer{
		fn:   fn,
		id:   s.nextID,
		when: s.now + delay,
	}
	if repeating {
		t.period = delay
	}
	s.push(t)
	s.timers[t.id] = t
	return t.id
}

func (s *ManualScheduler) push(t *manualTimer) {
	s.nextSeq++
	t.seq = s.nextSeq
	heap.Push(&s.queue, t)
}

// Disarm implements [Scheduler].
func (s *ManualScheduler) Disarm(id TimerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.timers[id]
	if !ok {
		return ErrTimerNotFound
	}
	delete(s.timers, id)
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
	return nil
}

// Now returns the virtual time elapsed since construction.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Len returns the number of armed registrations.
func (s *ManualScheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Advance moves the clock forward by d, firing every timer that falls due,
// in deadline order. Timers armed by callbacks fire too, if they fall due
// within the window. It returns the number of callbacks invoked.
func (s *ManualScheduler) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	var fired int
	for s.fireNext(target) {
		fired++
	}

	s.mu.Lock()
	if s.now < target {
		s.now = target
	}
	s.mu.Unlock()

	return fired
}

// RunNext moves the clock to the earliest deadline and fires that timer. It
// returns false if nothing is armed.
func (s *ManualScheduler) RunNext() bool {
	return s.fireNext(-1)
}

// fireNext fires the earliest timer due at or before target, or the earliest
// timer regardless of deadline, if target is negative.
func (s *ManualScheduler) fireNext(target time.Duration) bool {
	s.mu.Lock()
	if len(s.queue) == 0 || (target >= 0 && s.queue[0].when > target) {
		s.mu.Unlock()
		return false
	}

	t := heap.Pop(&s.queue).(*manualTimer)
	if t.when > s.now {
		s.now = t.when
	}
	if t.period > 0 {
		t.when += t.period
		s.push(t)
	} else {
		delete(s.timers, t.id)
	}
	fn := t.fn
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
	return true
}

// manualQueue orders timers by deadline, then by arm sequence.
type manualQueue []*manualTimer

func (q manualQueue) Len() int {
	return len(q)
}

func (q manualQueue) Less(i, j int) bool {
	if q[i].when != q[j].when {
		return q[i].when < q[j].when
	}
	return q[i].seq < q[j].seq
}

func (q manualQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *manualQueue) Push(x any) {
	t := x.(*manualTimer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *manualQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
