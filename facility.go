// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package domwindow

import (
	"time"

	"github.com/joeycumines/go-eventloop"
)

type (
	// TimerFacility models the engine-wide delayed delivery primitive. Each
	// successful Schedule must result in exactly one call to deliver, no
	// earlier than delay, on the facility's own goroutine. There is no
	// cancellation.
	TimerFacility interface {
		Schedule(delay time.Duration, deliver func()) error
	}

	// TimerFacilityFunc implements [TimerFacility] using a function.
	TimerFacilityFunc func(delay time.Duration, deliver func()) error

	// LoopTimerFacility implements [TimerFacility] using [eventloop.JS.SetTimeout].
	// The deliver callback runs on the loop goroutine.
	LoopTimerFacility struct {
		js *eventloop.JS
	}
)

// Schedule implements [TimerFacility].
func (f TimerFacilityFunc) Schedule(delay time.Duration, deliver func()) error {
	return f(delay, deliver)
}

// NewLoopTimerFacility returns a facility backed by the given JS adapter.
func NewLoopTimerFacility(js *eventloop.JS) *LoopTimerFacility {
	if js == nil {
		panic(`domwindow: nil js adapter`)
	}
	return &LoopTimerFacility{js: js}
}

// Schedule implements [TimerFacility]. Delays are rounded up to the next
// whole millisecond, the granularity of the underlying timer.
func (x *LoopTimerFacility) Schedule(delay time.Duration, deliver func()) error {
	if delay < 0 {
		delay = 0
	}
	ms := int(delay / time.Millisecond)
	if delay%time.Millisecond != 0 {
		ms++
	}
	_, err := x.js.SetTimeout(deliver, ms)
	return err
}
