// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package domwindow

type (
	// controlMessage is sent to a window's timer worker.
	controlMessage interface {
		controlKind() string
	}

	// fireMessage indicates a previously scheduled timer has elapsed.
	fireMessage struct {
		registration *TimerRegistration
	}

	// closeMessage is the terminal message, sent once, when the window is destroyed.
	closeMessage struct{}

	// triggerExitMessage is an explicit close request, forwarded to the pipeline.
	// It does not stop the worker.
	triggerExitMessage struct{}
)

func (fireMessage) controlKind() string        { return `fire` }
func (closeMessage) controlKind() string       { return `close` }
func (triggerExitMessage) controlKind() string { return `trigger-exit` }
