// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dispatch

import (
	"sync"
)

// Task is a unit of deferred work.
type Task interface {
	Run()
}

// TaskFunc adapts a plain callback to [Task].
type TaskFunc func()

// Run calls f, if it is not nil.
func (f TaskFunc) Run() {
	if f != nil {
		f()
	}
}

// Handle pairs a [Task] with a stable, lazily created callable, suitable for
// registering with a [Scheduler]. The same func value is returned by every
// call to [Handle.Func], and [Handle.Run] always goes through it, so the two
// can never diverge.
//
// Handle is safe for concurrent use.
type Handle struct {
	task Task
	fn   func()
	once sync.Once
}

// NewHandle wraps a task. The callable is created on the first call to
// [Handle.Func].
func NewHandle(task Task) *Handle {
	return &Handle{task: task}
}

// Wrap adapts a plain callback directly, using fn itself as the cached
// callable.
func Wrap(fn func()) *Handle {
	h := &Handle{task: TaskFunc(fn), fn: fn}
	h.once.Do(func() {})
	if h.fn == nil {
		h.fn = func() {}
	}
	return h
}

// Task returns the wrapped task. For handles created by [Wrap] this is a
// [TaskFunc].
func (h *Handle) Task() Task {
	return h.task
}

// Func returns the cached callable, creating it if necessary.
func (h *Handle) Func() func() {
	h.once.Do(func() {
		task := h.task
		if task == nil {
			h.fn = func() {}
			return
		}
		h.fn = task.Run
	})
	return h.fn
}

// Run executes the task, via [Handle.Func].
func (h *Handle) Run() {
	h.Func()()
}
