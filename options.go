// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dispatch

import (
	"errors"
	"time"
)

// managerOptions holds configuration options for TaskManager creation.
type managerOptions struct {
	logger    *Logger
	onFailure FailureHandler
	name      string
	interval  time.Duration
	hasLogger bool
}

// --- Manager Options ---

// ManagerOption configures a [TaskManager] instance.
type ManagerOption interface {
	applyManager(*managerOptions) error
}

// managerOptionImpl implements ManagerOption.
type managerOptionImpl struct {
	applyManagerFunc func(*managerOptions) error
}

func (m *managerOptionImpl) applyManager(opts *managerOptions) error {
	return m.applyManagerFunc(opts)
}

// WithInterval sets a fixed tick interval for the manager's driving timer.
// When unset, or zero, the scheduler's [Scheduler.MinDelay] is used.
// Negative values are rejected.
func WithInterval(interval time.Duration) ManagerOption {
	return &managerOptionImpl{func(opts *managerOptions) error {
		if interval < 0 {
			return errors.New("dispatch: negative tick interval")
		}
		opts.interval = interval
		return nil
	}}
}

// WithName names the manager, for logging and [Failure] reports.
func WithName(name string) ManagerOption {
	return &managerOptionImpl{func(opts *managerOptions) error {
		opts.name = name
		return nil
	}}
}

// WithLogger sets the logger used for state transitions, and by the default
// failure handler. Passing nil explicitly disables logging, regardless of
// [SetLogger].
func WithLogger(logger *Logger) ManagerOption {
	return &managerOptionImpl{func(opts *managerOptions) error {
		opts.logger = logger
		opts.hasLogger = true
		return nil
	}}
}

// WithFailureHandler replaces the default failure handler (a [LogReporter]
// using the manager's logger). A nil handler discards failures.
func WithFailureHandler(handler FailureHandler) ManagerOption {
	return &managerOptionImpl{func(opts *managerOptions) error {
		if handler == nil {
			handler = FailureHandlerFunc(func(Failure) {})
		}
		opts.onFailure = handler
		return nil
	}}
}

// resolveManagerOptions applies ManagerOption instances to managerOptions.
func resolveManagerOptions(opts []ManagerOption) (*managerOptions, error) {
	cfg := &managerOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyManager(cfg); err != nil {
			return nil, err
		}
	}
	if !cfg.hasLogger {
		cfg.logger = getLogger()
	}
	if cfg.onFailure == nil {
		cfg.onFailure = NewLogReporter(cfg.logger, nil)
	}
	return cfg, nil
}
