// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dispatch

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/joeycumines/go-eventloop"
)

// LoopScheduler implements [Scheduler] on top of an [eventloop.JS] adapter,
// i.e. setInterval / setTimeout semantics, with callbacks executed on the
// event loop goroutine.
//
// The event loop uses separate id spaces for intervals and timeouts, so
// LoopScheduler issues its own ids, and tracks which kind each one is.
//
// Delays are rounded up to whole milliseconds.
type LoopScheduler struct {
	js      *eventloop.JS
	entries map[TimerID]*loopEntry
	nextID  TimerID
	mu      sync.Mutex
}

type loopEntry struct {
	jsID      uint64
	repeating bool
}

// NewLoopScheduler wraps js. The underlying loop must be running (or be
// started later) for timers to fire.
func NewLoopScheduler(js *eventloop.JS) *LoopScheduler {
	if js == nil {
		panic("dispatch: nil eventloop.JS")
	}
	return &LoopScheduler{
		js:      js,
		entries: make(map[TimerID]*loopEntry),
	}
}

// JS returns the underlying adapter.
func (s *LoopScheduler) JS() *eventloop.JS {
	return s.js
}

// MinDelay implements [Scheduler].
func (s *LoopScheduler) MinDelay() time.Duration {
	return DefaultMinDelay
}

// ArmRepeating implements [Scheduler], using [eventloop.JS.SetInterval].
func (s *LoopScheduler) ArmRepeating(fn func(), delay time.Duration) (TimerID, error) {
	if fn == nil {
		return 0, errors.New("dispatch: nil timer callback")
	}

	// hold the lock across SetInterval, so the entry exists before any
	// Disarm can observe the id
	s.mu.Lock()
	defer s.mu.Unlock()

	jsID, err := s.js.SetInterval(fn, toMillis(clampDelay(s, delay)))
	if err != nil {
		return 0, fmt.Errorf("dispatch: set interval: %w", err)
	}

	s.nextID++
	id := s.nextID
	s.entries[id] = &loopEntry{jsID: jsID, repeating: true}
	return id, nil
}

// ArmOnce implements [Scheduler], using [eventloop.JS.SetTimeout]. The
// registration is forgotten once it fires.
func (s *LoopScheduler) ArmOnce(fn func(), delay time.Duration) (TimerID, error) {
	if fn == nil {
		return 0, errors.New("dispatch: nil timer callback")
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	entry := &loopEntry{}
	s.entries[id] = entry
	s.mu.Unlock()

	jsID, err := s.js.SetTimeout(func() {
		s.mu.Lock()
		current, ok := s.entries[id]
		if ok && current == entry {
			delete(s.entries, id)
		}
		s.mu.Unlock()
		if ok {
			fn()
		}
	}, toMillis(clampDelay(s, delay)))
	if err != nil {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return 0, fmt.Errorf("dispatch: set timeout: %w", err)
	}

	s.mu.Lock()
	entry.jsID = jsID
	s.mu.Unlock()

	return id, nil
}

// Disarm implements [Scheduler]. The registration is only forgotten once the
// loop has accepted the cancellation, so a failed Disarm may be retried.
func (s *LoopScheduler) Disarm(id TimerID) error {
	s.mu.Lock()
	entry, ok := s.entries[id]
	var jsID uint64
	if ok {
		jsID = entry.jsID
	}
	s.mu.Unlock()

	if !ok {
		return ErrTimerNotFound
	}

	var err error
	if entry.repeating {
		err = s.js.ClearInterval(jsID)
	} else {
		err = s.js.ClearTimeout(jsID)
	}
	// the loop may have already dropped it, e.g. a timeout racing its own
	// callback, which deletes the entry itself
	if err != nil && !errors.Is(err, eventloop.ErrTimerNotFound) {
		return fmt.Errorf("dispatch: clear timer: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.entries[id]; !ok || current != entry {
		// fired, or disarmed concurrently
		return ErrTimerNotFound
	}
	delete(s.entries, id)
	return nil
}

// Len returns the number of armed registrations.
func (s *LoopScheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// toMillis converts a delay to whole milliseconds, rounding up.
func toMillis(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Millisecond - 1) / time.Millisecond)
}
