// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dispatch

import (
	"reflect"
	"sync"
)

// Event is one typed occurrence. Concrete events embed [EventBase], and are
// used by pointer:
//
//	type MouseMove struct {
//	    dispatch.EventBase
//	    X, Y int
//	}
//
//	ev := &MouseMove{X: 1, Y: 2}
//	ev.SetCoalescing(true)
//
// The listeners an event reaches are selected by its concrete type, see
// [TypeOf].
type Event interface {
	eventBase() *EventBase
}

// Updater may be implemented by events to control coalescing. It is called
// on the pending (queued, not yet run) event, with a newer event fired with
// the coalescing flag set. A non-nil result replaces the pending event in
// the queue; nil leaves both queued.
//
// Update is called while the dispatcher's queue is locked, and must not call
// back into the dispatcher.
type Updater interface {
	Update(next Event) Event
}

// EventBase carries the state common to all events: the write-once source,
// and the bubble and coalescing flags (both default false).
//
// The zero value is ready to use. EventBase must not be copied after first
// use.
type EventBase struct {
	source     Source
	bubble     bool
	coalescing bool
	mu         sync.Mutex
}

func (e *EventBase) eventBase() *EventBase { return e }

// Source returns the source that fired the event, or nil if it has not been
// fired or executed.
func (e *EventBase) Source() Source {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.source
}

// Bubble reports whether the event propagates up the parent chain.
func (e *EventBase) Bubble() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bubble
}

// SetBubble sets whether the event propagates up the parent chain.
func (e *EventBase) SetBubble(bubble bool) {
	e.mu.Lock()
	e.bubble = bubble
	e.mu.Unlock()
}

// Coalescing reports whether a queued fire of this event may replace a
// pending event of the same kind, see [Updater].
func (e *EventBase) Coalescing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.coalescing
}

// SetCoalescing sets the coalescing flag.
func (e *EventBase) SetCoalescing(coalescing bool) {
	e.mu.Lock()
	e.coalescing = coalescing
	e.mu.Unlock()
}

// SetSource records src as the event's source. The source is write-once:
// it returns true if the source was unset (and is now src), or was already
// src, and false, without modifying the event, otherwise.
func SetSource(ev Event, src Source) bool {
	if ev == nil || src == nil {
		return false
	}
	b := ev.eventBase()
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.source == nil {
		b.source = src
		return true
	}
	return sameSource(b.source, src)
}

// SourceOf returns the source of ev, or nil.
func SourceOf(ev Event) Source {
	if ev == nil {
		return nil
	}
	return ev.eventBase().Source()
}

func bubbles(ev Event) bool {
	return ev.eventBase().Bubble()
}

func coalesces(ev Event) bool {
	return ev.eventBase().Coalescing()
}

// DefaultUpdate is the coalescing rule used for events that do not
// implement [Updater]: next replaces pending iff both have the same concrete
// type and the same source.
func DefaultUpdate(pending, next Event) Event {
	if pending == nil || next == nil {
		return nil
	}
	if TypeOf(pending) != TypeOf(next) {
		return nil
	}
	a, b := SourceOf(pending), SourceOf(next)
	if a == nil || !sameSource(a, b) {
		return nil
	}
	return next
}

// update applies pending's Updater, or DefaultUpdate.
func update(pending, next Event) Event {
	if u, ok := pending.(Updater); ok {
		return u.Update(next)
	}
	return DefaultUpdate(pending, next)
}

// EventType identifies the concrete type of an event. It is comparable, and
// is the key listeners are registered under.
type EventType struct {
	t reflect.Type
}

// TypeOf returns the type of ev. The zero EventType is returned for nil.
func TypeOf(ev Event) EventType {
	if ev == nil {
		return EventType{}
	}
	return EventType{t: reflect.TypeOf(ev)}
}

// TypeFor returns the type of events of type E, e.g.
// TypeFor[*MouseMove]().
func TypeFor[E Event]() EventType {
	return EventType{t: reflect.TypeFor[E]()}
}

// String returns the name of the underlying Go type.
func (t EventType) String() string {
	if t.t == nil {
		return "<nil>"
	}
	return t.t.String()
}

// IsZero reports whether t is the zero EventType.
func (t EventType) IsZero() bool {
	return t.t == nil
}
