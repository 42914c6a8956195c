// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package domwindow

import (
	"errors"
)

// Standard errors.
var (
	// ErrNilInbox is returned when a window is constructed without a pipeline inbox.
	ErrNilInbox = errors.New("domwindow: pipeline inbox cannot be nil")

	// ErrNilCompartment is returned when a window is constructed without a script compartment.
	ErrNilCompartment = errors.New("domwindow: compartment cannot be nil")

	// ErrCompartmentInUse is returned when a window is constructed in a
	// compartment that is already bound to a live window.
	ErrCompartmentInUse = errors.New("domwindow: compartment already has a live window")

	// ErrNoTimerFacility is returned when a window is constructed without a [TimerFacility].
	ErrNoTimerFacility = errors.New("domwindow: no timer facility configured")

	// ErrNilLoop is returned when a pipeline is constructed without an event loop.
	ErrNilLoop = errors.New("domwindow: loop cannot be nil")

	// ErrNilRuntime is returned when a pipeline is constructed without a runtime.
	ErrNilRuntime = errors.New("domwindow: runtime cannot be nil")

	// ErrWindowDestroyed is the panic value used when a destroyed window is
	// asked to send to its worker. It indicates a teardown ordering defect.
	ErrWindowDestroyed = errors.New("domwindow: window has been destroyed")

	// ErrPipelineClosed is returned by [Pipeline] operations after exit has begun.
	ErrPipelineClosed = errors.New("domwindow: pipeline has exited")

	// ErrNotCallable is reported when a fired timer's callback is not a function.
	ErrNotCallable = errors.New("domwindow: timer callback is not callable")
)

// ErrEventChannelReleased is the panic value used when cloning a released [EventChannel].
var ErrEventChannelReleased = errors.New("domwindow: event channel has been released")
