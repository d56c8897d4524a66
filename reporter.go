// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dispatch

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
)

// DefaultReportRates are the per-category limits used by [NewLogReporter]
// when none are given.
var DefaultReportRates = map[time.Duration]int{
	time.Second: 5,
	time.Minute: 60,
}

// LogReporter is a [FailureHandler] that logs failures at error level, rate
// limited per [Failure.Category]. The number of suppressed failures is
// attached to the next line logged for the same category.
//
// It is the default handler of every [TaskManager].
type LogReporter struct {
	logger     *Logger
	limiter    *catrate.Limiter
	suppressed map[string]int
	mu         sync.Mutex
}

// NewLogReporter returns a reporter logging to logger, which may be nil, in
// which case failures are discarded. Rates are as per
// [catrate.NewLimiter], defaulting to [DefaultReportRates].
func NewLogReporter(logger *Logger, rates map[time.Duration]int) *LogReporter {
	if rates == nil {
		rates = DefaultReportRates
	}
	return &LogReporter{
		logger:     logger,
		limiter:    catrate.NewLimiter(rates),
		suppressed: make(map[string]int),
	}
}

// HandleFailure implements [FailureHandler].
func (x *LogReporter) HandleFailure(f Failure) {
	if x.logger == nil {
		return
	}

	category := f.Category()

	x.mu.Lock()
	if _, ok := x.limiter.Allow(category); !ok {
		x.suppressed[category]++
		x.mu.Unlock()
		return
	}
	suppressed := x.suppressed[category]
	delete(x.suppressed, category)
	x.mu.Unlock()

	var name string
	if f.Manager != nil {
		name = f.Manager.Name()
	}

	x.logger.Err().
		Str(`manager`, name).
		Str(`category`, category).
		Call(func(b *logiface.Builder[logiface.Event]) {
			if !f.ID.IsZero() {
				b.Str(`failure`, f.ID.String())
			}
		}).
		Err(f.Err).
		Call(func(b *logiface.Builder[logiface.Event]) {
			if suppressed > 0 {
				b.Int(`suppressed`, suppressed)
			}
		}).
		Log(`dispatch: task failed`)
}

// Suppressed returns the number of failures currently suppressed for a
// category, i.e. since the last line logged for it.
func (x *LogReporter) Suppressed(category string) int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.suppressed[category]
}

// ChanReporter is a [FailureHandler] that forwards failures to a buffered
// channel. Failures are dropped, and counted, when the buffer is full.
type ChanReporter struct {
	ch      chan Failure
	dropped atomic.Int64
}

// NewChanReporter returns a reporter with the given buffer size.
func NewChanReporter(size int) *ChanReporter {
	if size < 0 {
		size = 0
	}
	return &ChanReporter{ch: make(chan Failure, size)}
}

// C returns the channel failures are sent on. It is never closed.
func (x *ChanReporter) C() <-chan Failure {
	return x.ch
}

// Dropped returns the number of failures discarded due to a full buffer.
func (x *ChanReporter) Dropped() int64 {
	return x.dropped.Load()
}

// HandleFailure implements [FailureHandler], without blocking.
func (x *ChanReporter) HandleFailure(f Failure) {
	select {
	case x.ch <- f:
	default:
		x.dropped.Add(1)
	}
}

// MultiReporter passes each failure to every (non-nil) handler, in order.
type MultiReporter []FailureHandler

// HandleFailure implements [FailureHandler].
func (x MultiReporter) HandleFailure(f Failure) {
	for _, h := range x {
		if h != nil {
			h.HandleFailure(f)
		}
	}
}
