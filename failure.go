// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dispatch

import (
	"fmt"

	"github.com/rs/xid"
)

// Failure describes a task or listener failure within a [TaskManager].
type Failure struct {
	// ID is unique per report, for correlating logs with other handlers.
	ID xid.ID
	// Manager is the manager that ran the task.
	Manager *TaskManager
	// Task is the task that failed, or that ran the failing listeners.
	Task Task
	// Event is set for failures of queued events.
	Event Event
	// Err is a [TaskError] for a panicking task, or one or more
	// [ListenerError] values, joined.
	Err error
}

// Category groups failures for rate limiting, by event type, or by task
// type for non-event tasks.
func (f Failure) Category() string {
	if f.Event != nil {
		return `event:` + TypeOf(f.Event).String()
	}
	return fmt.Sprintf(`task:%T`, f.Task)
}

// FailureHandler receives failures from a [TaskManager]. It is called on the
// goroutine that ran the task, and must not block for long.
type FailureHandler interface {
	HandleFailure(f Failure)
}

// FailureHandlerFunc adapts a func to [FailureHandler].
type FailureHandlerFunc func(f Failure)

// HandleFailure calls x, if it is not nil.
func (x FailureHandlerFunc) HandleFailure(f Failure) {
	if x != nil {
		x(f)
	}
}
