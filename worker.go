// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package domwindow

import (
	"sync/atomic"

	"github.com/joeycumines/logiface"
)

// WorkerState represents the lifecycle state of a window's timer worker.
//
//	WorkerRunning → WorkerTerminated   [close message received]
//	WorkerTerminated → (terminal)
type WorkerState uint32

const (
	// WorkerRunning indicates the worker is receiving messages. It is the
	// initial state, entered at spawn.
	WorkerRunning WorkerState = iota
	// WorkerTerminated indicates the worker has processed the close message,
	// and its goroutine has exited (or is about to).
	WorkerTerminated
)

// String returns a human-readable representation of the state.
func (s WorkerState) String() string {
	switch s {
	case WorkerRunning:
		return "Running"
	case WorkerTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// timerWorker is the isolated control loop bound 1:1 to a window. It is a
// pure forwarder: it never invokes script, all of which happens on the
// pipeline's execution context.
type timerWorker struct {
	inbox    *mailbox
	pipeline Inbox
	logger   *logiface.Logger[logiface.Event]
	done     chan struct{}
	name     string
	state    atomic.Uint32
}

// spawnTimerWorker starts a worker, in the running state, with an empty inbox.
func spawnTimerWorker(pipeline Inbox, logger *logiface.Logger[logiface.Event], name string) *timerWorker {
	w := &timerWorker{
		inbox:    newMailbox(),
		pipeline: pipeline,
		logger:   logger,
		done:     make(chan struct{}),
		name:     name,
	}
	w.logger.Debug().
		Str(`window`, name).
		Log(`timer worker started`)
	go w.run()
	return w
}

func (w *timerWorker) run() {
	defer close(w.done)
	for {
		msg, ok := w.inbox.receive()
		if !ok {
			w.state.Store(uint32(WorkerTerminated))
			return
		}
		if !w.handle(msg) {
			return
		}
	}
}

// handle processes a single message, returning false if the worker must stop.
func (w *timerWorker) handle(msg controlMessage) bool {
	switch msg := msg.(type) {
	case fireMessage:
		w.logger.Debug().
			Str(`window`, w.name).
			Int(`args`, len(msg.registration.Arguments)).
			Log(`forwarding timer`)
		w.pipeline.Notify(TimerNotification{Registration: msg.registration})
		return true

	case triggerExitMessage:
		w.logger.Debug().
			Str(`window`, w.name).
			Log(`forwarding exit`)
		w.pipeline.Notify(ExitNotification{})
		return true

	case closeMessage:
		discarded := w.inbox.close()
		w.state.Store(uint32(WorkerTerminated))
		w.logger.Debug().
			Str(`window`, w.name).
			Int(`discarded`, discarded).
			Log(`timer worker terminated`)
		return false

	default:
		panic(`domwindow: unexpected control message`)
	}
}

// deliver is the destination of delayed sends from the timer facility. Those
// may legitimately arrive after the worker has terminated, and are dropped.
func (w *timerWorker) deliver(msg controlMessage) {
	if !w.inbox.push(msg) {
		w.logger.Debug().
			Str(`window`, w.name).
			Str(`kind`, msg.controlKind()).
			Log(`dropped message for terminated timer worker`)
	}
}

// send is used for Window's own sends, which must never follow close.
func (w *timerWorker) send(msg controlMessage) {
	if !w.inbox.push(msg) {
		panic(ErrWindowDestroyed)
	}
}

func (w *timerWorker) State() WorkerState {
	return WorkerState(w.state.Load())
}
