// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package dispatch implements a cooperative, run-to-completion task queue,
// driven by timers, and a typed event model layered on top of it.
//
// # Tasks and timers
//
// A [TaskManager] is a FIFO queue of [Task] values, drained one task per tick
// of a repeating timer, provided by a [Scheduler]. The manager arms its timer
// on the first submission, and disarms it once a tick finds the queue empty,
// so an idle manager costs nothing.
//
// Two schedulers are provided. [LoopScheduler] runs callbacks on a
// [github.com/joeycumines/go-eventloop] loop, using its setInterval and
// setTimeout implementations. [ManualScheduler] is a virtual clock, advanced
// explicitly, for deterministic tests and simulations.
//
// [Interval] and [Timeout] are the timer handles the manager is built on, and
// are usable directly.
//
// # Events
//
// Events are values embedding [EventBase], fired by a [Source] (typically
// anything embedding [Registry]) to the listeners registered for the event's
// concrete type. [Exec] dispatches synchronously, while [TaskManager.Fire]
// (and the package-level [Fire], which uses a shared default dispatcher)
// queues the dispatch.
//
// Dispatch visits the source, then the source it wraps (see [Unwrapper]),
// then, if the event bubbles, repeats for each ancestor (see [Parented]).
// An event belongs to the first source that fires it, and is rejected by any
// other, see [ErrForeignSource].
//
// A coalescing event fired while an event of the same type, from the same
// source, is still pending at the tail of the queue replaces it, see
// [Updater].
//
// # Failures
//
// Failing or panicking listeners do not prevent the remaining listeners from
// running. [Exec] returns their errors. For queued dispatch, and panicking
// tasks, failures are passed to the manager's [FailureHandler], by default a
// rate limited [LogReporter].
package dispatch
