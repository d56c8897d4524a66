// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dispatch

import (
	"bytes"
	"errors"
	"sync"
	"time"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

const ms = time.Millisecond

type (
	mouseMove struct {
		EventBase
		X, Y int
	}

	keyPress struct {
		EventBase
		Key rune
	}

	// recorder collects named entries, in call order
	recorder struct {
		entries []string
		mu      sync.Mutex
	}

	recordTask struct {
		rec  *recorder
		name string
	}

	// stubScheduler hands callbacks to the test, instead of running them
	stubScheduler struct {
		once      []func()
		repeating []func()
		armErr    error
		disarmed  []TimerID
		nextID    TimerID
	}

	// stubSource is a Source with a fixed parent and unwrap target
	stubSource struct {
		Registry
		parent  Source
		wrapped Source
	}

	// valueSource is a Source that cannot be compared
	valueSource struct {
		registry *Registry
		tags     []string
	}
)

func (x *recorder) add(entry string) {
	x.mu.Lock()
	x.entries = append(x.entries, entry)
	x.mu.Unlock()
}

func (x *recorder) get() []string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]string(nil), x.entries...)
}

func (x *recorder) task(name string) *recordTask {
	return &recordTask{rec: x, name: name}
}

func (x *recordTask) Run() {
	x.rec.add(x.name)
}

func (x *stubScheduler) ArmRepeating(fn func(), delay time.Duration) (TimerID, error) {
	if x.armErr != nil {
		return 0, x.armErr
	}
	x.repeating = append(x.repeating, fn)
	x.nextID++
	return x.nextID, nil
}

func (x *stubScheduler) ArmOnce(fn func(), delay time.Duration) (TimerID, error) {
	if x.armErr != nil {
		return 0, x.armErr
	}
	x.once = append(x.once, fn)
	x.nextID++
	return x.nextID, nil
}

func (x *stubScheduler) Disarm(id TimerID) error {
	x.disarmed = append(x.disarmed, id)
	return ErrTimerNotFound
}

func (x *stubScheduler) MinDelay() time.Duration {
	return DefaultMinDelay
}

func (x *stubSource) Parent() Source {
	return x.parent
}

func (x *stubSource) Unwrap() Source {
	return x.wrapped
}

func (x valueSource) ListenerRegistry() *Registry {
	return x.registry
}

var errBoom = errors.New(`boom`)

func newTestLogger(buf *bytes.Buffer) *Logger {
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(buf), stumpy.WithTimeField(``)),
		stumpy.L.WithLevel(logiface.LevelTrace),
	).Logger()
}

// newTestManager returns a manager on a virtual clock, with failures sent to
// the returned reporter.
func newTestManager(opts ...ManagerOption) (*TaskManager, *ManualScheduler, *ChanReporter) {
	s := NewManualScheduler()
	r := NewChanReporter(64)
	m, err := NewTaskManager(s, append([]ManagerOption{WithLogger(nil), WithFailureHandler(r)}, opts...)...)
	if err != nil {
		panic(err)
	}
	return m, s, r
}
