// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetSource(t *testing.T) {
	a, b := NewNode(nil), NewNode(nil)
	ev := &keyPress{}

	assert.True(t, SetSource(ev, a))
	assert.True(t, SetSource(ev, a))
	assert.False(t, SetSource(ev, b))
	assert.Same(t, a, ev.Source())

	assert.False(t, SetSource(nil, a))
	assert.False(t, SetSource(&keyPress{}, nil))
	assert.Nil(t, SourceOf(nil))
}

func TestEventBase_flags(t *testing.T) {
	ev := &mouseMove{}
	if ev.Bubble() || ev.Coalescing() {
		t.Fatal("expected flags to default to false")
	}
	ev.SetBubble(true)
	ev.SetCoalescing(true)
	if !ev.Bubble() || !ev.Coalescing() {
		t.Fatal("expected flags to be set")
	}
}

func TestEventType(t *testing.T) {
	assert.Equal(t, TypeFor[*mouseMove](), TypeOf(&mouseMove{}))
	assert.NotEqual(t, TypeFor[*mouseMove](), TypeFor[*keyPress]())
	assert.Equal(t, `*dispatch.keyPress`, TypeOf(&keyPress{}).String())

	var zero EventType
	assert.True(t, zero.IsZero())
	assert.True(t, TypeOf(nil).IsZero())
	assert.Equal(t, `<nil>`, zero.String())
	assert.False(t, TypeFor[*keyPress]().IsZero())
}

func TestDefaultUpdate(t *testing.T) {
	a, b := NewNode(nil), NewNode(nil)
	fired := func(src Source, ev Event) Event {
		SetSource(ev, src)
		return ev
	}

	pending := fired(a, &mouseMove{X: 1})
	next := fired(a, &mouseMove{X: 2})
	assert.Same(t, next, DefaultUpdate(pending, next))

	assert.Nil(t, DefaultUpdate(pending, fired(b, &mouseMove{})))
	assert.Nil(t, DefaultUpdate(pending, fired(a, &keyPress{})))
	assert.Nil(t, DefaultUpdate(&mouseMove{}, &mouseMove{}))
	assert.Nil(t, DefaultUpdate(nil, next))
}
