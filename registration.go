// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package domwindow

import (
	"github.com/dop251/goja"
)

// TimerRegistration holds the script values associated with a setTimeout
// call: the function value to invoke, and the arguments to pass it.
//
// A registration is created synchronously by the scheduling call, moved into
// a control message, and consumed once by the [Inbox] when the timer fires.
// Callback is only meaningful while the originating runtime is alive.
type TimerRegistration struct {
	Callback  goja.Value
	Arguments []goja.Value
}

// NewTimerRegistration captures a registration from the raw argument vector
// of a setTimeout(callback, delay, ...args) call. The callback is argv[0], and
// everything after the delay position is copied, in order, into Arguments.
//
// The returned value never aliases argv, which belongs to the caller and may
// be reused once the native call returns.
func NewTimerRegistration(argv []goja.Value) *TimerRegistration {
	reg := TimerRegistration{Callback: goja.Undefined()}
	if len(argv) > 0 && argv[0] != nil {
		reg.Callback = argv[0]
	}
	if len(argv) > 2 {
		reg.Arguments = make([]goja.Value, len(argv)-2)
		copy(reg.Arguments, argv[2:])
	}
	return &reg
}

// Equal reports whether both registrations refer to the same callback and
// (pairwise) the same argument values, per goja's SameValue semantics.
func (x *TimerRegistration) Equal(other *TimerRegistration) bool {
	if x == nil || other == nil {
		return x == other
	}
	if !sameValue(x.Callback, other.Callback) || len(x.Arguments) != len(other.Arguments) {
		return false
	}
	for i := range x.Arguments {
		if !sameValue(x.Arguments[i], other.Arguments[i]) {
			return false
		}
	}
	return true
}

func sameValue(a, b goja.Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.SameAs(b)
}
