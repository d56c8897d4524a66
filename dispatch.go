// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dispatch

import (
	"errors"
	"reflect"
)

// MaxBubbleDepth bounds the number of sources (including unwrap targets)
// visited by a single traversal. Walks that exceed it stop, and fail with
// [ErrSourceCycle].
const MaxBubbleDepth = 1024

// Exec dispatches ev to listeners synchronously, on the calling goroutine.
//
// The event's source is set to src, see [SetSource]. If the event already
// belongs to a different source, nothing is dispatched, and 0 and
// [ErrForeignSource] are returned. Executing an event a second time with
// the same source dispatches it again.
//
// Listeners for the event's concrete type are run on src, then on
// src.Unwrap() (see [Unwrapper]). If the event bubbles, the same is repeated
// for each ancestor, see [Parented]. Every listener is run, even if others
// fail or panic. The number of listener invocations is returned, along with
// any failures, as [ListenerError] values, combined using [errors.Join].
func Exec(src Source, ev Event) (int, error) {
	if ev == nil || isNil(src) {
		return 0, nil
	}
	if !SetSource(ev, src) {
		return 0, ErrForeignSource
	}
	return traverse(src, ev)
}

// traverse runs the self, unwrap, parent walk.
func traverse(src Source, ev Event) (int, error) {
	// climbed holds the parent chain only, unwrap targets may repeat
	var (
		t       = TypeOf(ev)
		bubble  = bubbles(ev)
		climbed = make(map[Source]struct{})
		depth   int
		count   int
		errs    []error
	)

	// visit reports false if the walk must stop
	visit := func(s Source, climbing bool) bool {
		depth++
		if depth > MaxBubbleDepth {
			errs = append(errs, ErrSourceCycle)
			return false
		}
		if climbing && comparableSource(s) {
			if _, ok := climbed[s]; ok {
				errs = append(errs, ErrSourceCycle)
				return false
			}
			climbed[s] = struct{}{}
		}
		n, err := execListeners(s, t, ev)
		count += n
		errs = append(errs, err...)
		return true
	}

	for s := src; s != nil; s = parentOf(s) {
		if !visit(s, true) {
			break
		}
		if u := unwrapOf(s); u != nil && !sameSource(u, s) {
			if !visit(u, false) {
				break
			}
		}
		if !bubble {
			break
		}
	}

	return count, errors.Join(errs...)
}

func execListeners(s Source, t EventType, ev Event) (n int, errs []error) {
	for _, l := range Listeners(s, t) {
		n++
		if err := invokeListener(l, ev); err != nil {
			errs = append(errs, &ListenerError{Source: s, Err: err, Type: t})
		}
	}
	return n, errs
}

func comparableSource(s Source) bool {
	return s != nil && reflect.ValueOf(s).Comparable()
}

// Fire queues ev for dispatch by x, returning without running any listener.
// The source gate is the same as for [Exec].
//
// If the event is coalescing (see [EventBase.SetCoalescing]), and the most
// recently submitted, still pending, task is an [EventTask], the pending
// event is offered the new one (see [Updater]). When accepted, the pending
// task is replaced with one dispatching the returned event, which keeps the
// pending task's position at the tail. Otherwise, the event is appended as a
// new task.
//
// Failures of listeners run by the queued task are reported to the manager's
// [FailureHandler].
func (x *TaskManager) Fire(src Source, ev Event) error {
	if ev == nil {
		return errors.New("dispatch: nil event")
	}
	if isNil(src) {
		return errors.New("dispatch: nil source")
	}
	if !SetSource(ev, src) {
		return ErrForeignSource
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if coalesces(ev) {
		if tail, ok := x.peekLocked().(*EventTask); ok {
			if next := update(tail.event, ev); next != nil {
				nextSrc := SourceOf(next)
				if nextSrc == nil {
					nextSrc = src
				}
				x.popLocked()
				return x.submitLocked(&EventTask{manager: x, source: nextSrc, event: next})
			}
		}
	}

	return x.submitLocked(&EventTask{manager: x, source: src, event: ev})
}

// Fire queues ev using the default dispatcher, see [Default] and
// [TaskManager.Fire].
func Fire(src Source, ev Event) error {
	m, err := Default()
	if err != nil {
		return err
	}
	return m.Fire(src, ev)
}

// EventTask is one pending dispatch, as queued by [TaskManager.Fire].
type EventTask struct {
	manager *TaskManager
	source  Source
	event   Event
}

// Event returns the event that will be dispatched.
func (x *EventTask) Event() Event {
	return x.event
}

// Source returns the source the traversal starts at.
func (x *EventTask) Source() Source {
	return x.source
}

// Run performs the traversal, see [Exec]. Failures are reported to the
// owning manager.
func (x *EventTask) Run() {
	_, err := traverse(x.source, x.event)
	if err == nil || x.manager == nil {
		return
	}
	x.manager.report(Failure{
		Manager: x.manager,
		Task:    x,
		Event:   x.event,
		Err:     err,
	})
}
