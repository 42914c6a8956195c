// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package domwindow

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dop251/goja"
	"github.com/joeycumines/go-eventloop"
	"github.com/joeycumines/logiface"
)

// Pipeline is a content pipeline: it owns script execution for its windows,
// on a single [eventloop.Loop], invoking fired timer callbacks and handling
// exit requests. It implements [Inbox].
//
// The goja runtime must only be used on the loop goroutine, once the loop is
// running. Use [Pipeline.RunScript] and [Pipeline.OpenWindow] to do so.
type Pipeline struct {
	loop          *eventloop.Loop
	runtime       *goja.Runtime
	js            *eventloop.JS
	logger        *logiface.Logger[logiface.Event]
	onScriptError func(err error)
	onExit        func()
	done          chan struct{}
	exitOnce      sync.Once
	exiting       atomic.Bool
}

// NewPipeline creates a pipeline for the given loop and runtime. The caller
// remains responsible for running the loop.
func NewPipeline(loop *eventloop.Loop, runtime *goja.Runtime, opts ...PipelineOption) (*Pipeline, error) {
	if loop == nil {
		return nil, ErrNilLoop
	}
	if runtime == nil {
		return nil, ErrNilRuntime
	}

	js, err := eventloop.NewJS(loop)
	if err != nil {
		return nil, fmt.Errorf("failed to create JS adapter: %w", err)
	}

	options := resolvePipelineOptions(opts)

	return &Pipeline{
		loop:          loop,
		runtime:       runtime,
		js:            js,
		logger:        options.logger,
		onScriptError: options.onScriptError,
		onExit:        options.onExit,
		done:          make(chan struct{}),
	}, nil
}

// Loop returns the event loop.
func (p *Pipeline) Loop() *eventloop.Loop { return p.loop }

// Runtime returns the goja runtime, which is the compartment for windows
// opened by this pipeline.
func (p *Pipeline) Runtime() *goja.Runtime { return p.runtime }

// Alive reports whether the pipeline has neither begun exit, nor had its loop terminated.
func (p *Pipeline) Alive() bool {
	return !p.exiting.Load() && p.loop.State() != eventloop.StateTerminated
}

// Done returns a channel that is closed once exit has completed, i.e. the
// loop has been shut down, following an [ExitNotification].
func (p *Pipeline) Done() <-chan struct{} { return p.done }

// Notify implements [Inbox]. The notification is handled on the loop
// goroutine. Notifications that arrive after exit has begun are dropped.
func (p *Pipeline) Notify(n Notification) {
	if p.exiting.Load() {
		p.logDropped(n, ErrPipelineClosed)
		return
	}
	if err := p.loop.Submit(func() { p.handle(n) }); err != nil {
		p.logDropped(n, err)
	}
}

func (p *Pipeline) handle(n Notification) {
	switch n := n.(type) {
	case TimerNotification:
		p.invoke(n.Registration)
	case ExitNotification:
		p.exit()
	default:
		panic(fmt.Sprintf(`domwindow: unexpected notification %T`, n))
	}
}

// invoke calls the registration's callback, with undefined as this.
func (p *Pipeline) invoke(reg *TimerRegistration) {
	if p.exiting.Load() {
		p.logDropped(TimerNotification{Registration: reg}, ErrPipelineClosed)
		return
	}
	fn, ok := goja.AssertFunction(reg.Callback)
	if !ok {
		p.scriptError(ErrNotCallable)
		return
	}
	if _, err := fn(goja.Undefined(), reg.Arguments...); err != nil {
		p.scriptError(err)
	}
}

func (p *Pipeline) scriptError(err error) {
	p.logger.Err().
		Err(err).
		Log(`timer callback failed`)
	if p.onScriptError != nil {
		p.onScriptError(err)
	}
}

// exit begins shutdown, the first time it is called. The loop is shut down
// asynchronously, as Shutdown may not be called from the loop goroutine.
func (p *Pipeline) exit() {
	p.exitOnce.Do(func() {
		p.exiting.Store(true)
		p.logger.Info().Log(`pipeline exiting`)
		if p.onExit != nil {
			p.onExit()
		}
		go func() {
			defer close(p.done)
			if err := p.loop.Shutdown(context.Background()); err != nil {
				p.logger.Debug().
					Err(err).
					Log(`loop shutdown`)
			}
		}()
	})
}

// OpenWindow creates a window on the loop goroutine, using this pipeline as
// its inbox, compartment, and back-reference, and its loop for timers. The
// given options are applied after the defaults. The loop must be running.
//
// All windows share the pipeline's runtime, so only one may be open at a
// time: [ErrCompartmentInUse] is returned until the current window is
// destroyed.
func (p *Pipeline) OpenWindow(ctx context.Context, events *EventChannel, opts ...Option) (*Window, error) {
	if !p.Alive() {
		return nil, ErrPipelineClosed
	}

	opts = append([]Option{
		WithLogger(p.logger),
		WithTimerFacility(NewLoopTimerFacility(p.js)),
	}, opts...)

	type result struct {
		window *Window
		err    error
	}
	ch := make(chan result, 1)

	if err := p.loop.Submit(func() {
		w, err := New(p, events, p, p.runtime, opts...)
		ch <- result{w, err}
	}); err != nil {
		return nil, err
	}

	select {
	case r := <-ch:
		return r.window, r.err
	case <-ctx.Done():
		// the window may still be created, and must not leak its worker
		go func() {
			if r := <-ch; r.window != nil {
				r.window.Destroy()
			}
		}()
		return nil, ctx.Err()
	}
}

// RunScript evaluates src on the loop goroutine, waiting for it to complete.
// The loop must be running.
func (p *Pipeline) RunScript(ctx context.Context, src string) (goja.Value, error) {
	if !p.Alive() {
		return nil, ErrPipelineClosed
	}

	type result struct {
		value goja.Value
		err   error
	}
	ch := make(chan result, 1)

	if err := p.loop.Submit(func() {
		v, err := p.runtime.RunString(src)
		ch <- result{v, err}
	}); err != nil {
		return nil, err
	}

	select {
	case r := <-ch:
		return r.value, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *Pipeline) logDropped(n Notification, err error) {
	p.logger.Debug().
		Str(`notification`, fmt.Sprintf(`%T`, n)).
		Err(err).
		Log(`dropped notification`)
}
