// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dispatch

import (
	"sync"
	"time"

	"github.com/rs/xid"
)

// TaskManager is an unbounded FIFO queue of tasks, drained one task per tick
// of a repeating timer. Tasks run to completion, one at a time, on whatever
// goroutine the [Scheduler] invokes callbacks on.
//
// A manager is Idle (no timer armed) until the first submission, and returns
// to Idle once a tick finds the queue empty. A manager used to queue events
// is referred to as a dispatcher, see [TaskManager.Fire].
//
// TaskManager is safe for concurrent use. Tasks may submit further tasks.
type TaskManager struct {
	scheduler Scheduler
	driver    *Interval
	logger    *Logger
	onFailure FailureHandler
	name      string
	// queue[start:] are the pending tasks, queue[:start] have been polled
	queue    []Task
	start    int
	interval time.Duration
	// lock order: mu, then the driver's
	mu sync.Mutex
}

// NewTaskManager creates an idle manager, using s for its driving timer.
func NewTaskManager(s Scheduler, opts ...ManagerOption) (*TaskManager, error) {
	if s == nil {
		return nil, ErrNilScheduler
	}

	cfg, err := resolveManagerOptions(opts)
	if err != nil {
		return nil, err
	}

	x := &TaskManager{
		scheduler: s,
		logger:    cfg.logger,
		onFailure: cfg.onFailure,
		name:      cfg.name,
		interval:  cfg.interval,
	}
	x.driver = NewInterval(s, TaskFunc(x.tick))
	return x, nil
}

// Name returns the name given by [WithName].
func (x *TaskManager) Name() string {
	return x.name
}

// Submit appends t to the queue, arming the driving timer if the manager was
// idle. If the timer cannot be armed, t is not queued, and the error is
// returned.
func (x *TaskManager) Submit(t Task) error {
	if t == nil {
		return ErrNilTask
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.submitLocked(t)
}

func (x *TaskManager) submitLocked(t Task) error {
	x.queue = append(x.queue, t)

	if x.driver.Running() {
		return nil
	}

	var err error
	if x.interval > 0 {
		err = x.driver.Set(x.interval)
	} else {
		err = x.driver.SetMin()
	}
	if err != nil {
		x.queue[len(x.queue)-1] = nil
		x.queue = x.queue[:len(x.queue)-1]
		x.logger.Err().
			Str(`manager`, x.name).
			Err(err).
			Log(`dispatch: failed to arm driving timer`)
		return err
	}

	x.logger.Debug().
		Str(`manager`, x.name).
		Int(`size`, len(x.queue)-x.start).
		Log(`dispatch: manager running`)

	return nil
}

// Poll removes and returns the task at the head of the queue. If the queue
// is empty, it is compacted, the driving timer is disarmed (the manager
// becomes Idle), and nil is returned. A failure to disarm is logged, and
// leaves the manager running.
func (x *TaskManager) Poll() Task {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.start < len(x.queue) {
		t := x.queue[x.start]
		x.queue[x.start] = nil
		x.start++
		return t
	}

	x.queue = nil
	x.start = 0

	if x.driver.Running() {
		// on failure the driver stays armed, and the next tick retries
		if err := x.driver.Clear(); err != nil {
			x.logger.Warning().
				Str(`manager`, x.name).
				Err(err).
				Log(`dispatch: failed to disarm driving timer`)
			return nil
		}
		x.logger.Debug().
			Str(`manager`, x.name).
			Log(`dispatch: manager idle`)
	}

	return nil
}

// Pop removes and returns the task at the tail of the queue, i.e. the most
// recently submitted task that has not yet been polled, or nil.
func (x *TaskManager) Pop() Task {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.popLocked()
}

func (x *TaskManager) popLocked() Task {
	if x.start >= len(x.queue) {
		return nil
	}
	i := len(x.queue) - 1
	t := x.queue[i]
	x.queue[i] = nil
	x.queue = x.queue[:i]
	return t
}

// Peek returns the task at the tail of the queue without removing it, or nil.
func (x *TaskManager) Peek() Task {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.peekLocked()
}

func (x *TaskManager) peekLocked() Task {
	if x.start >= len(x.queue) {
		return nil
	}
	return x.queue[len(x.queue)-1]
}

// Size returns the number of pending tasks.
func (x *TaskManager) Size() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.queue) - x.start
}

// Idle reports whether the driving timer is disarmed.
func (x *TaskManager) Idle() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return !x.driver.Running()
}

// RunPending drains the queue on the calling goroutine, returning the number
// of tasks run. Tasks submitted while draining are also run. The manager is
// Idle on return, unless another goroutine submitted concurrently.
func (x *TaskManager) RunPending() int {
	var n int
	for {
		t := x.Poll()
		if t == nil {
			return n
		}
		x.runTask(t)
		n++
	}
}

// tick is the driving timer's callback.
func (x *TaskManager) tick() {
	if t := x.Poll(); t != nil {
		x.runTask(t)
	}
}

func (x *TaskManager) runTask(t Task) {
	defer func() {
		if err := recoverError(recover()); err != nil {
			f := Failure{
				Manager: x,
				Task:    t,
				Err:     &TaskError{Task: t, Err: err},
			}
			if et, ok := t.(*EventTask); ok {
				f.Event = et.Event()
			}
			x.report(f)
		}
	}()
	t.Run()
}

// report assigns f an ID, and passes it to the failure handler. A panicking
// handler is logged, and otherwise ignored.
func (x *TaskManager) report(f Failure) {
	f.ID = xid.New()
	defer func() {
		if err := recoverError(recover()); err != nil {
			x.logger.Crit().
				Str(`manager`, x.name).
				Str(`failure`, f.ID.String()).
				Err(err).
				Log(`dispatch: failure handler panicked`)
		}
	}()
	x.onFailure.HandleFailure(f)
}
