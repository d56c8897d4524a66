// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dispatch

import (
	"time"
)

// DefaultMinDelay is the minimum delay of the schedulers provided by this
// package.
const DefaultMinDelay = time.Millisecond

// TimerID identifies one registration with a [Scheduler]. Zero is never
// issued, and means "not armed".
type TimerID uint64

// Scheduler is the platform timer facility that [Interval], [Timeout] and
// [TaskManager] are built on.
//
// Implementations must be safe for concurrent use, and must not hold any
// internal lock while invoking callbacks, which may arm or disarm timers.
// Callbacks must never be invoked from within ArmRepeating or ArmOnce, even
// for a zero delay.
type Scheduler interface {
	// ArmRepeating registers fn to be called every delay, until disarmed.
	ArmRepeating(fn func(), delay time.Duration) (TimerID, error)

	// ArmOnce registers fn to be called once, after delay.
	ArmOnce(fn func(), delay time.Duration) (TimerID, error)

	// Disarm cancels a registration. It returns [ErrTimerNotFound] if the id
	// is unknown, was already disarmed, or was a one-shot timer that fired.
	Disarm(id TimerID) error

	// MinDelay is the smallest delay honored by the scheduler. Smaller
	// delays are clamped up to it.
	MinDelay() time.Duration
}

// clampDelay applies the scheduler's minimum.
func clampDelay(s Scheduler, delay time.Duration) time.Duration {
	if minDelay := s.MinDelay(); delay < minDelay {
		return minDelay
	}
	return delay
}
