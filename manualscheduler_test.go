// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualScheduler_Advance_order(t *testing.T) {
	s := NewManualScheduler()
	rec := new(recorder)

	for _, v := range []struct {
		name  string
		delay int
	}{{`a`, 3}, {`b`, 1}, {`c`, 1}, {`d`, 0}} {
		_, err := s.ArmOnce(func() { rec.add(v.name) }, ms*time.Duration(v.delay))
		require.NoError(t, err)
	}
	require.Equal(t, 4, s.Len())

	assert.Equal(t, 4, s.Advance(5*ms))
	assert.Equal(t, []string{`d`, `b`, `c`, `a`}, rec.get())
	assert.Equal(t, 5*ms, s.Now())
	assert.Equal(t, 0, s.Len())
}

func TestManualScheduler_repeating(t *testing.T) {
	s := NewManualScheduler()
	var calls int
	id, err := s.ArmRepeating(func() { calls++ }, 2*ms)
	require.NoError(t, err)
	require.NotZero(t, id)

	assert.Equal(t, 3, s.Advance(7*ms))
	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Disarm(id))
	assert.ErrorIs(t, s.Disarm(id), ErrTimerNotFound)
	assert.Equal(t, 0, s.Advance(10*ms))
	assert.Equal(t, 3, calls)
}

func TestManualScheduler_repeating_clamped(t *testing.T) {
	s := NewManualScheduler()
	var calls int
	_, err := s.ArmRepeating(func() { calls++ }, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Advance(3*ms))
	assert.Equal(t, 3, calls)
}

func TestManualScheduler_disarmFromCallback(t *testing.T) {
	s := NewManualScheduler()
	var (
		calls int
		id    TimerID
	)
	id, _ = s.ArmRepeating(func() {
		calls++
		if err := s.Disarm(id); err != nil {
			t.Error(err)
		}
	}, ms)
	assert.Equal(t, 1, s.Advance(10*ms))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Len())
}

func TestManualScheduler_oneShotForgotten(t *testing.T) {
	s := NewManualScheduler()
	id, _ := s.ArmOnce(func() {}, ms)
	s.Advance(ms)
	assert.ErrorIs(t, s.Disarm(id), ErrTimerNotFound)
}

func TestManualScheduler_armFromCallback(t *testing.T) {
	s := NewManualScheduler()
	rec := new(recorder)
	_, _ = s.ArmOnce(func() {
		rec.add(`first`)
		_, _ = s.ArmOnce(func() { rec.add(`second`) }, ms)
	}, ms)
	assert.Equal(t, 2, s.Advance(2*ms))
	assert.Equal(t, []string{`first`, `second`}, rec.get())
}

func TestManualScheduler_RunNext(t *testing.T) {
	s := NewManualScheduler()
	var calls int
	_, _ = s.ArmOnce(func() { calls++ }, 5*ms)
	assert.True(t, s.RunNext())
	assert.Equal(t, 5*ms, s.Now())
	assert.False(t, s.RunNext())
	assert.Equal(t, 1, calls)
}
