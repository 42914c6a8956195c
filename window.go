// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package domwindow

import (
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dop251/goja"
	"github.com/joeycumines/go-eventloop"
	"github.com/joeycumines/logiface"
)

// Window is the per-document DOM entity exposing timer and lifecycle
// operations to script. Each window owns an isolated timer worker, which
// forwards fired timers and exit requests to the content pipeline's [Inbox].
//
// A Window must be torn down with [Window.Destroy], which is the last thing
// that may be sent to its worker.
type Window struct {
	worker   *timerWorker
	events   *EventChannel
	pipeline PipelineRef
	wrapper  wrapperCache
	facility TimerFacility
	alerts   AlertSink
	logger   *logiface.Logger[logiface.Event]
	name     string

	// mu serializes sends to the worker with destroy
	mu          sync.Mutex
	destroyOnce sync.Once
	destroyed   atomic.Bool
}

// maxDelayMillis is the largest delay representable as a [time.Duration].
const maxDelayMillis = int64(math.MaxInt64 / time.Millisecond)

// New creates a window, spawning its timer worker, and binding its script
// wrapper into compartment.
//
// The inbox receives forwarded notifications. The events handle is taken
// over by the window (released on destroy), and may be nil. The pipeline is
// held only as a non-owning reference, and may be nil. New must be called on
// the goroutine that owns compartment.
//
// A compartment holds at most one live window, as the window's script
// functions are installed as its globals. [ErrCompartmentInUse] is returned
// until the existing window is destroyed.
func New(inbox Inbox, events *EventChannel, pipeline *Pipeline, compartment *goja.Runtime, opts ...Option) (*Window, error) {
	if inbox == nil {
		return nil, ErrNilInbox
	}
	if compartment == nil {
		return nil, ErrNilCompartment
	}

	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	w := &Window{
		events:   events,
		pipeline: NewPipelineRef(pipeline),
		facility: cfg.facility,
		alerts:   cfg.alerts,
		logger:   cfg.logger,
		name:     cfg.name,
	}

	if err := w.wrapper.bind(compartment, w); err != nil {
		return nil, err
	}

	w.worker = spawnTimerWorker(inbox, w.logger, w.name)

	return w, nil
}

// Name returns the window's name, as used in logs.
func (w *Window) Name() string { return w.name }

// Alert emits message to the window's alert sink.
func (w *Window) Alert(message string) {
	w.alerts.Alert(message)
}

// Close requests that the owning pipeline begin shutdown, by sending an exit
// request through the timer worker. It does not stop the worker, or destroy
// the window. Each call sends another request.
func (w *Window) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.mustBeAlive()
	w.worker.send(triggerExitMessage{})
}

// SetTimeout schedules callback to be sent to the pipeline, with a copy of
// arguments, after delayMillis. Negative delays are treated as 0, and delays
// beyond the range of [time.Duration] are capped to it. There is no
// way to cancel the timer, short of destroying the window.
func (w *Window) SetTimeout(delayMillis int64, callback goja.Value, arguments []goja.Value) {
	if callback == nil {
		callback = goja.Undefined()
	}
	w.schedule(delayMillis, &TimerRegistration{
		Callback:  callback,
		Arguments: slices.Clone(arguments),
	})
}

func (w *Window) schedule(delayMillis int64, registration *TimerRegistration) {
	w.mustBeAlive()

	delayMillis = min(max(0, delayMillis), maxDelayMillis)

	msg := fireMessage{registration: registration}
	worker := w.worker
	if err := w.facility.Schedule(time.Duration(delayMillis)*time.Millisecond, func() {
		worker.deliver(msg)
	}); err != nil {
		w.logger.Warning().
			Str(`window`, w.name).
			Int64(`delay_ms`, delayMillis).
			Err(err).
			Log(`failed to schedule timer`)
	}
}

// DispatchEvent publishes ev on the window's event channel, returning false
// if it could not be sent.
func (w *Window) DispatchEvent(ev *eventloop.Event) bool {
	return w.events.Publish(ev)
}

// Pipeline returns the owning pipeline, if it was provided, and is still alive.
func (w *Window) Pipeline() (*Pipeline, bool) {
	return w.pipeline.Get()
}

// Object returns the script wrapper object, bound in the compartment passed to [New].
func (w *Window) Object() *goja.Object {
	return w.wrapper.object
}

// Destroy tears down the window: it sends exactly one close message to the
// timer worker, and releases the window's event channel handle. It does not
// wait for the worker to finish, see [Window.Done]. Subsequent calls are
// no-ops.
func (w *Window) Destroy() {
	w.destroyOnce.Do(func() {
		w.mu.Lock()
		w.destroyed.Store(true)
		w.worker.send(closeMessage{})
		w.mu.Unlock()
		w.wrapper.unbind(w)
		w.events.Release()
		w.logger.Debug().
			Str(`window`, w.name).
			Log(`window destroyed`)
	})
}

// Destroyed reports whether [Window.Destroy] has been called.
func (w *Window) Destroyed() bool {
	return w.destroyed.Load()
}

// Done returns a channel that is closed once the timer worker has exited.
func (w *Window) Done() <-chan struct{} {
	return w.worker.done
}

// WorkerState returns the current state of the timer worker.
func (w *Window) WorkerState() WorkerState {
	return w.worker.State()
}

func (w *Window) mustBeAlive() {
	if w.destroyed.Load() {
		panic(ErrWindowDestroyed)
	}
}
