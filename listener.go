// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dispatch

import (
	"reflect"
)

// Listener reacts to events of the type it was registered for.
//
// Listeners are identified by ==, so a listener registered twice for the same
// type is only called once. The dynamic type must therefore be comparable;
// pointer types are the usual choice. Go func values are not comparable, use
// [NewListener] to adapt them.
type Listener interface {
	HandleEvent(ev Event) error
}

// ListenerFunc is a [Listener] for events of type E, with pointer identity.
// Create instances using [NewListener].
type ListenerFunc[E Event] struct {
	fn func(ev E) error
}

// NewListener adapts fn. Every call returns a distinct listener.
func NewListener[E Event](fn func(ev E) error) *ListenerFunc[E] {
	return &ListenerFunc[E]{fn: fn}
}

// HandleEvent calls the wrapped func, if ev is an E. Other events are
// ignored.
func (x *ListenerFunc[E]) HandleEvent(ev Event) error {
	if x == nil || x.fn == nil {
		return nil
	}
	if e, ok := ev.(E); ok {
		return x.fn(e)
	}
	return nil
}

// checkListener validates a listener for registration.
func checkListener(l Listener) error {
	if l == nil {
		return ErrNilListener
	}
	if v := reflect.ValueOf(l); v.Kind() == reflect.Pointer && v.IsNil() {
		return ErrNilListener
	}
	// checks the value, not the type, as interface fields may hold funcs
	if !reflect.ValueOf(l).Comparable() {
		return ErrListenerNotComparable
	}
	return nil
}

// invokeListener calls l, converting a panic into an error.
func invokeListener(l Listener, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoverError(r)
		}
	}()
	return l.HandleEvent(ev)
}
