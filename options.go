// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package domwindow

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
)

// windowOptions holds configuration options for Window creation.
type windowOptions struct {
	logger       *logiface.Logger[logiface.Event]
	facility     TimerFacility
	alerts       AlertSink
	alertLimiter *catrate.Limiter
	name         string
}

// --- Window Options ---

// Option configures a Window instance.
type Option interface {
	applyWindow(*windowOptions) error
}

// optionImpl implements Option.
type optionImpl struct {
	applyWindowFunc func(*windowOptions) error
}

func (x *optionImpl) applyWindow(opts *windowOptions) error {
	return x.applyWindowFunc(opts)
}

// WithLogger configures structured logging for the window and its timer
// worker. A nil logger (the default) disables logging.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *windowOptions) error {
		opts.logger = logger
		return nil
	}}
}

// WithTimerFacility sets the delayed delivery primitive used by
// [Window.SetTimeout]. It is required, unless the window is opened via
// [Pipeline.OpenWindow].
func WithTimerFacility(facility TimerFacility) Option {
	return &optionImpl{func(opts *windowOptions) error {
		opts.facility = facility
		return nil
	}}
}

// WithAlertSink sets the destination for [Window.Alert].
// Defaults to an "ALERT: ..." line on stdout.
func WithAlertSink(sink AlertSink) Option {
	return &optionImpl{func(opts *windowOptions) error {
		if sink == nil {
			return fmt.Errorf(`domwindow: nil alert sink`)
		}
		opts.alerts = sink
		return nil
	}}
}

// WithAlertRateLimit drops alerts once any of the given rates (events per
// window duration) is exceeded, for this window. An empty map disables
// limiting. See [catrate.NewLimiter] for what makes a set of rates valid.
func WithAlertRateLimit(rates map[time.Duration]int) Option {
	return &optionImpl{func(opts *windowOptions) error {
		limiter, err := newAlertLimiter(rates)
		if err != nil {
			return err
		}
		opts.alertLimiter = limiter
		return nil
	}}
}

// WithName sets the name used to identify the window in logs, and as its
// alert rate limit category. Defaults to "window-<n>".
func WithName(name string) Option {
	return &optionImpl{func(opts *windowOptions) error {
		opts.name = name
		return nil
	}}
}

var windowIDCounter atomic.Uint64

// resolveOptions applies Option instances to windowOptions.
func resolveOptions(opts []Option) (*windowOptions, error) {
	cfg := &windowOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyWindow(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.facility == nil {
		return nil, ErrNoTimerFacility
	}
	if cfg.name == `` {
		cfg.name = fmt.Sprintf(`window-%d`, windowIDCounter.Add(1))
	}
	if cfg.alerts == nil {
		cfg.alerts = NewWriterAlertSink(os.Stdout)
	}
	if cfg.alertLimiter != nil {
		cfg.alerts = &rateLimitedAlertSink{
			sink:     cfg.alerts,
			limiter:  cfg.alertLimiter,
			logger:   cfg.logger,
			category: cfg.name,
		}
	}
	return cfg, nil
}

// pipelineOptions holds configuration options for Pipeline creation.
type pipelineOptions struct {
	logger        *logiface.Logger[logiface.Event]
	onScriptError func(err error)
	onExit        func()
}

// --- Pipeline Options ---

// PipelineOption configures a Pipeline instance.
type PipelineOption func(*pipelineOptions)

// WithPipelineLogger configures structured logging for the pipeline. It is
// also passed to windows opened via [Pipeline.OpenWindow].
func WithPipelineLogger(logger *logiface.Logger[logiface.Event]) PipelineOption {
	return func(o *pipelineOptions) {
		o.logger = logger
	}
}

// WithScriptErrorHandler sets a handler for errors thrown by timer
// callbacks. It is called on the loop goroutine.
func WithScriptErrorHandler(handler func(err error)) PipelineOption {
	return func(o *pipelineOptions) {
		o.onScriptError = handler
	}
}

// WithExitHandler sets a handler called, once, on the loop goroutine, when
// the first exit notification is processed.
func WithExitHandler(handler func()) PipelineOption {
	return func(o *pipelineOptions) {
		o.onExit = handler
	}
}

func resolvePipelineOptions(opts []PipelineOption) *pipelineOptions {
	o := &pipelineOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}
