// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/joeycumines/go-eventloop"
)

// DefaultDispatcherName is the name of the manager built by
// [NewLoopDispatcher].
const DefaultDispatcherName = `general`

// DefaultDispatcher lazily builds, then caches, a shared [TaskManager].
type DefaultDispatcher struct {
	factory func() (*TaskManager, error)
	manager *TaskManager
	err     error
	once    sync.Once
}

var defaultDispatcher atomic.Pointer[DefaultDispatcher]

func init() {
	defaultDispatcher.Store(NewDefaultDispatcher(nil))
}

// NewDefaultDispatcher returns a dispatcher that will call factory, once, on
// first use. A nil factory means [NewLoopDispatcher].
func NewDefaultDispatcher(factory func() (*TaskManager, error)) *DefaultDispatcher {
	if factory == nil {
		factory = NewLoopDispatcher
	}
	return &DefaultDispatcher{factory: factory}
}

// Get returns the manager, building it on the first call. A failure to build
// is also cached.
func (x *DefaultDispatcher) Get() (*TaskManager, error) {
	x.once.Do(func() {
		x.manager, x.err = x.factory()
		if x.err == nil && x.manager == nil {
			x.err = errors.New(`dispatch: default dispatcher factory returned nil`)
		}
	})
	return x.manager, x.err
}

// Default returns the process-wide default dispatcher's manager, as used by
// the package-level [Fire].
func Default() (*TaskManager, error) {
	return defaultDispatcher.Load().Get()
}

// SetDefault replaces the process-wide default dispatcher, returning the
// previous one. A nil value installs a fresh instance, using the built-in
// factory.
func SetDefault(d *DefaultDispatcher) *DefaultDispatcher {
	if d == nil {
		d = NewDefaultDispatcher(nil)
	}
	return defaultDispatcher.Swap(d)
}

// NewLoopDispatcher builds a manager named [DefaultDispatcherName], driven by
// a new [eventloop.Loop], running on its own goroutine for the lifetime of
// the process. It returns once the loop is running.
func NewLoopDispatcher() (*TaskManager, error) {
	loop, err := eventloop.New()
	if err != nil {
		return nil, fmt.Errorf(`dispatch: new event loop: %w`, err)
	}

	js, err := eventloop.NewJS(loop)
	if err != nil {
		_ = loop.Close()
		return nil, fmt.Errorf(`dispatch: new event loop adapter: %w`, err)
	}

	m, err := NewTaskManager(NewLoopScheduler(js), WithName(DefaultDispatcherName))
	if err != nil {
		_ = loop.Close()
		return nil, err
	}

	// wait for the loop to run a timer, as it refuses cancellations until then
	ready := make(chan struct{})
	if _, err := js.SetTimeout(func() { close(ready) }, 0); err != nil {
		_ = loop.Close()
		return nil, fmt.Errorf(`dispatch: start event loop: %w`, err)
	}

	stopped := make(chan error, 1)
	go func() {
		err := loop.Run(context.Background())
		if err != nil {
			m.logger.Err().
				Str(`manager`, m.name).
				Err(err).
				Log(`dispatch: default event loop stopped`)
		}
		stopped <- err
	}()

	select {
	case <-ready:
	case err := <-stopped:
		if err == nil {
			err = errors.New(`exited`)
		}
		return nil, fmt.Errorf(`dispatch: start event loop: %w`, err)
	}

	return m, nil
}
