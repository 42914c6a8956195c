// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package domwindow

type (
	// Notification is a message delivered to the content pipeline, by a
	// window's timer worker. It is one of [TimerNotification] or
	// [ExitNotification].
	Notification interface {
		notification()
	}

	// TimerNotification asks the pipeline to invoke the captured callback,
	// with the captured arguments, now. Ownership of Registration passes to
	// the receiver.
	TimerNotification struct {
		Registration *TimerRegistration
	}

	// ExitNotification asks the pipeline to begin shutdown of the window's
	// script context. Deduplication is the pipeline's concern.
	ExitNotification struct{}

	// Inbox models the receiving end of the content pipeline. Notify must not
	// block for any significant period, and is called from the timer worker's
	// goroutine.
	Inbox interface {
		Notify(n Notification)
	}

	// InboxFunc implements [Inbox] using a function.
	InboxFunc func(n Notification)
)

func (TimerNotification) notification() {}
func (ExitNotification) notification()  {}

// Notify implements [Inbox].
func (f InboxFunc) Notify(n Notification) { f(n) }
