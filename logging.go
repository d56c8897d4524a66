// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dispatch

import (
	"sync"

	"github.com/joeycumines/logiface"
)

// Logger is the structured logger type accepted by this package.
type Logger = logiface.Logger[logiface.Event]

var (
	// package-level logger, used by managers constructed without WithLogger
	globalLogger struct {
		sync.RWMutex
		logger *Logger
	}
)

// SetLogger sets the package-level logger, used by any [TaskManager] that was
// not given one explicitly, and by the default [LogReporter]. A nil logger
// disables logging.
//
// Only affects managers constructed after the call.
func SetLogger(logger *Logger) {
	globalLogger.Lock()
	defer globalLogger.Unlock()
	globalLogger.logger = logger
}

// getLogger returns the package-level logger, which may be nil (no-op).
func getLogger() *Logger {
	globalLogger.RLock()
	defer globalLogger.RUnlock()
	return globalLogger.logger
}
