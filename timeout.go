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

// Timeout runs a task once, after a delay, using a [Scheduler]. Like
// [Interval], it holds at most one registration at a time.
//
// A Timeout may be re-armed any number of times, including from within its
// own task.
type Timeout struct {
	scheduler Scheduler
	handle    *Handle
	id        TimerID
	// generation is bumped on every arm and clear, so a firing from a
	// replaced registration can be detected and dropped
	generation uint64
	mu         sync.Mutex
}

// NewTimeout returns an idle Timeout that will run task.
func NewTimeout(scheduler Scheduler, task Task) *Timeout {
	if scheduler == nil {
		panic(ErrNilScheduler)
	}
	return &Timeout{
		scheduler: scheduler,
		handle:    NewHandle(task),
	}
}

// Set (re-)arms the timeout.
func (x *Timeout) Set(delay time.Duration) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if err := x.clearLocked(); err != nil {
		return err
	}

	generation := x.generation
	id, err := x.scheduler.ArmOnce(func() { x.fire(generation) }, clampDelay(x.scheduler, delay))
	if err != nil {
		return err
	}
	x.id = id
	return nil
}

// SetMin (re-)arms the timeout using the scheduler's minimum delay.
func (x *Timeout) SetMin() error {
	return x.Set(x.scheduler.MinDelay())
}

func (x *Timeout) fire(generation uint64) {
	x.mu.Lock()
	if generation != x.generation || x.id == 0 {
		x.mu.Unlock()
		return
	}
	// no longer armed, the scheduler has already forgotten the id
	x.id = 0
	x.generation++
	x.mu.Unlock()

	x.handle.Run()
}

// Clear disarms the timeout. It is a no-op if the timeout is not pending. If
// the scheduler fails to disarm, the timeout stays pending.
func (x *Timeout) Clear() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.clearLocked()
}

func (x *Timeout) clearLocked() error {
	if x.id != 0 {
		if err := x.scheduler.Disarm(x.id); err != nil && !errors.Is(err, ErrTimerNotFound) {
			return err
		}
		x.id = 0
	}
	x.generation++
	return nil
}

// Pending reports whether the timeout is armed and has not yet fired.
func (x *Timeout) Pending() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.id != 0
}

// ClearTimeout clears x, if it is not nil.
func ClearTimeout(x *Timeout) error {
	if x == nil {
		return nil
	}
	return x.Clear()
}
