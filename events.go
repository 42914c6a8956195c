// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package domwindow

import (
	"sync"
	"sync/atomic"

	"github.com/joeycumines/go-eventloop"
)

type (
	// EventChannel is a shared, send-only handle used to publish DOM events
	// outward. Handles are reference counted: each [EventChannel.Clone] must
	// be paired with a [EventChannel.Release], and the receiving channel is
	// closed once the last handle is released.
	EventChannel struct {
		shared   *eventChannelShared
		released atomic.Bool
	}

	eventChannelShared struct {
		ch     chan *eventloop.Event
		mu     sync.RWMutex
		refs   int
		closed bool
	}
)

// NewEventChannel returns the first handle to a new event channel, with the
// given buffer capacity, and the receiving end.
func NewEventChannel(capacity int) (*EventChannel, <-chan *eventloop.Event) {
	if capacity < 0 {
		capacity = 0
	}
	shared := &eventChannelShared{
		ch:   make(chan *eventloop.Event, capacity),
		refs: 1,
	}
	return &EventChannel{shared: shared}, shared.ch
}

// Clone returns a new handle to the same channel. It panics if x has
// already been released.
func (x *EventChannel) Clone() *EventChannel {
	if x.released.Load() {
		panic(ErrEventChannelReleased)
	}
	x.shared.mu.Lock()
	defer x.shared.mu.Unlock()
	if x.shared.closed {
		panic(ErrEventChannelReleased)
	}
	x.shared.refs++
	return &EventChannel{shared: x.shared}
}

// Publish attempts to send ev without blocking, returning false if the
// buffer is full, or the handle has been released.
func (x *EventChannel) Publish(ev *eventloop.Event) bool {
	if x == nil || ev == nil || x.released.Load() {
		return false
	}
	x.shared.mu.RLock()
	defer x.shared.mu.RUnlock()
	if x.shared.closed {
		return false
	}
	select {
	case x.shared.ch <- ev:
		return true
	default:
		return false
	}
}

// Release drops this handle's reference. Subsequent calls are no-ops.
func (x *EventChannel) Release() {
	if x == nil || !x.released.CompareAndSwap(false, true) {
		return
	}
	x.shared.mu.Lock()
	defer x.shared.mu.Unlock()
	x.shared.refs--
	if x.shared.refs == 0 {
		x.shared.closed = true
		close(x.shared.ch)
	}
}

// Refs returns the number of live handles.
func (x *EventChannel) Refs() int {
	x.shared.mu.RLock()
	defer x.shared.mu.RUnlock()
	return x.shared.refs
}
