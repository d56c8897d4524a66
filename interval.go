// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dispatch

import (
	"errors"
	"sync"
	"time"
)

// Interval repeatedly runs a task, using a [Scheduler]. It holds at most one
// registration at a time: re-arming always disarms first.
//
// Interval is safe for concurrent use, including calling [Interval.Clear]
// from within its own task.
type Interval struct {
	scheduler Scheduler
	handle    *Handle
	id        TimerID
	mu        sync.Mutex
}

// NewInterval returns an idle Interval that will run task.
func NewInterval(scheduler Scheduler, task Task) *Interval {
	if scheduler == nil {
		panic(ErrNilScheduler)
	}
	return &Interval{
		scheduler: scheduler,
		handle:    NewHandle(task),
	}
}

// Set (re-)arms the interval, with the given delay between runs.
func (x *Interval) Set(delay time.Duration) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if err := x.clearLocked(); err != nil {
		return err
	}

	id, err := x.scheduler.ArmRepeating(x.handle.Func(), clampDelay(x.scheduler, delay))
	if err != nil {
		return err
	}
	x.id = id
	return nil
}

// SetMin (re-)arms the interval using the scheduler's minimum delay.
func (x *Interval) SetMin() error {
	return x.Set(x.scheduler.MinDelay())
}

// Clear disarms the interval. It is a no-op if the interval is not running.
func (x *Interval) Clear() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.clearLocked()
}

func (x *Interval) clearLocked() error {
	if x.id == 0 {
		return nil
	}
	// on failure the registration is kept, so Clear may be retried
	if err := x.scheduler.Disarm(x.id); err != nil && !errors.Is(err, ErrTimerNotFound) {
		return err
	}
	x.id = 0
	return nil
}

// Running reports whether the interval is armed.
func (x *Interval) Running() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.id != 0
}

// ClearInterval clears x, if it is not nil.
func ClearInterval(x *Interval) error {
	if x == nil {
		return nil
	}
	return x.Clear()
}
