// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dispatch

import (
	"errors"
	"fmt"
)

// Standard errors.
var (
	// ErrNilTask is returned when a nil [Task] is submitted.
	ErrNilTask = errors.New("dispatch: nil task")

	// ErrTimerNotFound is returned by [Scheduler.Disarm] when the id is
	// unknown, already disarmed, or belonged to a one-shot timer that fired.
	ErrTimerNotFound = errors.New("dispatch: timer not found")

	// ErrForeignSource is returned when an event that was already fired by
	// one [Source] is executed or fired by another.
	ErrForeignSource = errors.New("dispatch: event belongs to a different source")

	// ErrSourceCycle is returned when bubbling climbs to a source it already
	// climbed through, i.e. the parent chain contains a cycle. Such a
	// configuration is a caller error; the walk stops at the first repeated
	// parent. Unwrap targets shared between levels are not cycles.
	ErrSourceCycle = errors.New("dispatch: cycle in source chain")

	// ErrNilListener is returned when registering a nil [Listener].
	ErrNilListener = errors.New("dispatch: nil listener")

	// ErrListenerNotComparable is returned when registering a listener whose
	// dynamic value cannot be compared with ==, e.g. a func or slice type, or
	// a struct with an interface field holding one.
	// Use [NewListener] to get a listener with pointer identity.
	ErrListenerNotComparable = errors.New("dispatch: listener is not comparable")

	// ErrNilScheduler is returned when constructing timers or managers
	// without a [Scheduler].
	ErrNilScheduler = errors.New("dispatch: nil scheduler")
)

// PanicError wraps a value recovered from a panicking task or listener.
type PanicError struct {
	Value any
}

// Error implements the error interface.
func (e PanicError) Error() string {
	return fmt.Sprintf("dispatch: panic: %v", e.Value)
}

// Unwrap returns the panic value if it is an error, enabling [errors.Is] and
// [errors.As] through the cause chain.
func (e PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ListenerError records the failure of a single listener invocation, during
// [Exec] or queued dispatch.
type ListenerError struct {
	// Source is the source whose listener list was being dispatched, which is
	// not necessarily the source that fired the event (bubbling).
	Source Source
	Err    error
	Type   EventType
}

// Error implements the error interface.
func (e *ListenerError) Error() string {
	return fmt.Sprintf("dispatch: listener for %s failed: %v", e.Type, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ListenerError) Unwrap() error {
	return e.Err
}

// TaskError records the failure of a task run by a [TaskManager].
type TaskError struct {
	Task Task
	Err  error
}

// Error implements the error interface.
func (e *TaskError) Error() string {
	return fmt.Sprintf("dispatch: task %T failed: %v", e.Task, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TaskError) Unwrap() error {
	return e.Err
}

// recoverError converts a recovered panic value to an error, or returns nil.
func recoverError(r any) error {
	if r == nil {
		return nil
	}
	return PanicError{Value: r}
}
