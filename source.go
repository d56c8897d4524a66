// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dispatch

import (
	"reflect"
	"slices"
	"sync"
)

// Source is anything that fires events. Implementations usually embed a
// [Registry], which satisfies the interface:
//
//	type Button struct {
//	    dispatch.Registry
//	    label string
//	}
//
// Sources are compared with ==, when checking an event's source, and when
// guarding against cycles while bubbling, so their dynamic type should be a
// pointer.
type Source interface {
	// ListenerRegistry returns the source's listener registry. It must always
	// return the same value.
	ListenerRegistry() *Registry
}

// Unwrapper is implemented by sources that wrap (delegate to) another
// source. Events executed on the wrapper also reach the wrapped source's
// listeners.
type Unwrapper interface {
	Unwrap() Source
}

// Parented is implemented by sources that belong to a containing source,
// which bubbling events propagate to.
type Parented interface {
	Parent() Source
}

// Registry holds per-event-type listener lists, and a small configuration
// store. Listeners are kept in registration order, without duplicates.
//
// The zero value is ready to use. Registry is safe for concurrent use, and
// must not be copied after first use.
type Registry struct {
	listeners map[EventType][]Listener
	config    map[string]any
	mu        sync.RWMutex
}

// ListenerRegistry implements [Source], returning x.
func (x *Registry) ListenerRegistry() *Registry {
	return x
}

// AddListener appends l to the list for t, unless it is already present.
func (x *Registry) AddListener(t EventType, l Listener) error {
	if err := checkListener(l); err != nil {
		return err
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if x.listeners == nil {
		x.listeners = make(map[EventType][]Listener)
	}
	entries := x.listeners[t]
	if slices.Contains(entries, l) {
		return nil
	}
	x.listeners[t] = append(entries, l)
	return nil
}

// RemoveListener removes l from the list for t, deleting the list once it is
// empty. It returns false if l was not registered for t.
func (x *Registry) RemoveListener(t EventType, l Listener) bool {
	if checkListener(l) != nil {
		return false
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	return x.removeLocked(t, l)
}

func (x *Registry) removeLocked(t EventType, l Listener) bool {
	entries, ok := x.listeners[t]
	if !ok {
		return false
	}
	i := slices.Index(entries, l)
	if i < 0 {
		return false
	}
	if len(entries) == 1 {
		delete(x.listeners, t)
		return true
	}
	// copy, snapshots handed out by Listeners share the old backing array
	x.listeners[t] = slices.Delete(slices.Clone(entries), i, i+1)
	return true
}

// DetachListener removes l from every event type, returning the number of
// lists it was removed from.
func (x *Registry) DetachListener(l Listener) int {
	if checkListener(l) != nil {
		return 0
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	var n int
	for t := range x.listeners {
		if x.removeLocked(t, l) {
			n++
		}
	}
	return n
}

// RemoveListeners drops the list for t. It returns false if there was none.
func (x *Registry) RemoveListeners(t EventType) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	if _, ok := x.listeners[t]; !ok {
		return false
	}
	delete(x.listeners, t)
	return true
}

// Listeners returns a copy of the list for t, which callers may iterate
// while the registry is modified.
func (x *Registry) Listeners(t EventType) []Listener {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return slices.Clone(x.listeners[t])
}

// HasListeners reports whether any listener is registered for t.
func (x *Registry) HasListeners(t EventType) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.listeners[t]) > 0
}

// ListenerCount returns the number of listeners registered for t.
func (x *Registry) ListenerCount(t EventType) int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.listeners[t])
}

// EventTypes returns the types with at least one listener, in no particular
// order.
func (x *Registry) EventTypes() []EventType {
	x.mu.RLock()
	defer x.mu.RUnlock()
	types := make([]EventType, 0, len(x.listeners))
	for t := range x.listeners {
		types = append(types, t)
	}
	return types
}

// SetConfig stores a configuration value.
func (x *Registry) SetConfig(key string, value any) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.config == nil {
		x.config = make(map[string]any)
	}
	x.config[key] = value
}

// Config returns a configuration value.
func (x *Registry) Config(key string) (any, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	v, ok := x.config[key]
	return v, ok
}

// DeleteConfig removes a configuration value.
func (x *Registry) DeleteConfig(key string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.config, key)
}

// On registers fn for events of type E on src, returning the listener, for
// later removal.
func On[E Event](src Source, fn func(ev E) error) (Listener, error) {
	l := NewListener(fn)
	if err := registryOf(src).AddListener(TypeFor[E](), l); err != nil {
		return nil, err
	}
	return l, nil
}

// Listeners returns a snapshot of the listeners for t on src, or nil if src
// is nil.
func Listeners(src Source, t EventType) []Listener {
	r := registryOf(src)
	if r == nil {
		return nil
	}
	return r.Listeners(t)
}

func registryOf(src Source) *Registry {
	if isNil(src) {
		return nil
	}
	return src.ListenerRegistry()
}

// Node is a ready-made [Source], with a settable parent and unwrap target.
// The zero value is a root with nothing wrapped.
type Node struct {
	Registry
	parent  Source
	wrapped Source
	linksMu sync.RWMutex
}

var (
	_ Source    = (*Node)(nil)
	_ Parented  = (*Node)(nil)
	_ Unwrapper = (*Node)(nil)
)

// NewNode returns a node with the given parent, which may be nil.
func NewNode(parent Source) *Node {
	return &Node{parent: parent}
}

// Parent implements [Parented].
func (x *Node) Parent() Source {
	x.linksMu.RLock()
	defer x.linksMu.RUnlock()
	return x.parent
}

// SetParent changes the parent.
func (x *Node) SetParent(parent Source) {
	x.linksMu.Lock()
	x.parent = parent
	x.linksMu.Unlock()
}

// Unwrap implements [Unwrapper].
func (x *Node) Unwrap() Source {
	x.linksMu.RLock()
	defer x.linksMu.RUnlock()
	return x.wrapped
}

// SetUnwrap changes the wrapped source.
func (x *Node) SetUnwrap(wrapped Source) {
	x.linksMu.Lock()
	x.wrapped = wrapped
	x.linksMu.Unlock()
}

func parentOf(src Source) Source {
	if p, ok := src.(Parented); ok {
		if parent := p.Parent(); !isNil(parent) {
			return parent
		}
	}
	return nil
}

func unwrapOf(src Source) Source {
	if u, ok := src.(Unwrapper); ok {
		if wrapped := u.Unwrap(); !isNil(wrapped) {
			return wrapped
		}
	}
	return nil
}

// sameSource compares sources with ==, treating uncomparable sources as
// distinct rather than panicking.
func sameSource(a, b Source) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if !reflect.ValueOf(a).Comparable() || !reflect.ValueOf(b).Comparable() {
		return false
	}
	return a == b
}

// isNil reports whether src is nil, or a typed nil pointer.
func isNil(src Source) bool {
	if src == nil {
		return true
	}
	v := reflect.ValueOf(src)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
