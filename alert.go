// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package domwindow

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
)

type (
	// AlertSink receives the messages passed to window.alert. Implementations
	// must not block for any significant period, and must not fail.
	AlertSink interface {
		Alert(message string)
	}

	// AlertSinkFunc implements [AlertSink] using a function.
	AlertSinkFunc func(message string)

	writerAlertSink struct {
		w  io.Writer
		mu sync.Mutex
	}

	// rateLimitedAlertSink drops alerts for a category, once its rates are exceeded.
	rateLimitedAlertSink struct {
		sink     AlertSink
		limiter  *catrate.Limiter
		logger   *logiface.Logger[logiface.Event]
		category string
	}
)

// Alert implements [AlertSink].
func (f AlertSinkFunc) Alert(message string) { f(message) }

// NewWriterAlertSink returns a sink writing an "ALERT: <message>" line per
// alert to w. Write errors are ignored.
func NewWriterAlertSink(w io.Writer) AlertSink {
	if w == nil {
		panic(`domwindow: nil alert writer`)
	}
	return &writerAlertSink{w: w}
}

func (x *writerAlertSink) Alert(message string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	_, _ = fmt.Fprintf(x.w, "ALERT: %s\n", message)
}

func (x *rateLimitedAlertSink) Alert(message string) {
	if next, ok := x.limiter.Allow(x.category); !ok {
		x.logger.Warning().
			Str(`window`, x.category).
			Dur(`retry_in`, time.Until(next)).
			Log(`alert dropped by rate limit`)
		return
	}
	x.sink.Alert(message)
}

// newAlertLimiter validates rates, which catrate would otherwise panic on.
func newAlertLimiter(rates map[time.Duration]int) (limiter *catrate.Limiter, err error) {
	if len(rates) == 0 {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			limiter = nil
			err = fmt.Errorf(`domwindow: invalid alert rate limit: %v`, r)
		}
	}()
	return catrate.NewLimiter(rates), nil
}
