// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dispatch

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/xid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogReporter_rateLimited(t *testing.T) {
	var buf bytes.Buffer
	r := NewLogReporter(newTestLogger(&buf), map[time.Duration]int{time.Hour: 2})

	f := Failure{Task: TaskFunc(nil), Err: errBoom}
	for range 5 {
		r.HandleFailure(f)
	}

	assert.Equal(t, 2, strings.Count(buf.String(), `dispatch: task failed`))
	assert.Equal(t, 3, r.Suppressed(f.Category()))
	assert.Contains(t, buf.String(), `"category":"task:dispatch.TaskFunc"`)
	assert.NotContains(t, buf.String(), `suppressed`)

	// categories are limited independently
	r.HandleFailure(Failure{Event: &mouseMove{}, Err: errBoom})
	assert.Equal(t, 3, strings.Count(buf.String(), `dispatch: task failed`))
}

func TestLogReporter_suppressedAttached(t *testing.T) {
	var buf bytes.Buffer
	r := NewLogReporter(newTestLogger(&buf), map[time.Duration]int{50 * time.Millisecond: 1})

	f := Failure{Event: &keyPress{}, Err: errBoom}
	r.HandleFailure(f)
	r.HandleFailure(f)
	r.HandleFailure(f)
	require.Equal(t, 2, r.Suppressed(f.Category()))

	require.Eventually(t, func() bool {
		r.HandleFailure(f)
		return r.Suppressed(f.Category()) == 0
	}, time.Second, 10*time.Millisecond)

	assert.Contains(t, buf.String(), `"suppressed":`)
}

func TestLogReporter_withManager(t *testing.T) {
	var buf bytes.Buffer
	m, err := NewTaskManager(NewManualScheduler(), WithName(`named`), WithLogger(nil))
	require.NoError(t, err)
	id := xid.New()
	NewLogReporter(newTestLogger(&buf), nil).HandleFailure(Failure{ID: id, Manager: m, Err: errBoom})
	assert.Contains(t, buf.String(), `"manager":"named"`)
	assert.Contains(t, buf.String(), `"failure":"`+id.String()+`"`)
	assert.Contains(t, buf.String(), `"err":"boom"`)
}

func TestLogReporter_nilLogger(t *testing.T) {
	r := NewLogReporter(nil, nil)
	r.HandleFailure(Failure{Err: errBoom})
	assert.Equal(t, 0, r.Suppressed(Failure{}.Category()))
}

func TestChanReporter(t *testing.T) {
	r := NewChanReporter(1)
	r.HandleFailure(Failure{Err: errBoom})
	r.HandleFailure(Failure{Err: errBoom})
	assert.Equal(t, int64(1), r.Dropped())
	f := <-r.C()
	assert.ErrorIs(t, f.Err, errBoom)
}

func TestMultiReporter(t *testing.T) {
	a, b := NewChanReporter(1), NewChanReporter(1)
	var calls int
	MultiReporter{a, nil, FailureHandlerFunc(func(Failure) { calls++ }), b}.HandleFailure(Failure{Err: errBoom})
	assert.Len(t, a.C(), 1)
	assert.Len(t, b.C(), 1)
	assert.Equal(t, 1, calls)
}

func TestWithFailureHandler_nil(t *testing.T) {
	s := NewManualScheduler()
	m, err := NewTaskManager(s, WithFailureHandler(nil), WithLogger(nil))
	require.NoError(t, err)
	require.NoError(t, m.Submit(TaskFunc(func() { panic(errBoom) })))
	s.Advance(10 * ms)
	assert.True(t, m.Idle())
}
