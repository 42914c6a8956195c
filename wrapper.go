// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package domwindow

import (
	"sync"

	"github.com/dop251/goja"
)

// compartments tracks the live window bound to each runtime.
var compartments struct {
	windows map[*goja.Runtime]*Window
	mu      sync.Mutex
}

func claimCompartment(rt *goja.Runtime, w *Window) bool {
	compartments.mu.Lock()
	defer compartments.mu.Unlock()
	if _, ok := compartments.windows[rt]; ok {
		return false
	}
	if compartments.windows == nil {
		compartments.windows = make(map[*goja.Runtime]*Window)
	}
	compartments.windows[rt] = w
	return true
}

func releaseCompartment(rt *goja.Runtime, w *Window) {
	compartments.mu.Lock()
	defer compartments.mu.Unlock()
	if compartments.windows[rt] == w {
		delete(compartments.windows, rt)
	}
}

// wrapperCache links a window to its script object.
type wrapperCache struct {
	runtime *goja.Runtime
	object  *goja.Object
}

// bind creates the window object in rt, and installs it as the global
// "window", along with the alert, close, and setTimeout globals. It fails
// with [ErrCompartmentInUse] if rt is bound to another live window.
func (x *wrapperCache) bind(rt *goja.Runtime, w *Window) (err error) {
	if !claimCompartment(rt, w) {
		return ErrCompartmentInUse
	}
	defer func() {
		if err != nil {
			releaseCompartment(rt, w)
		}
	}()

	obj := rt.NewObject()
	for _, method := range [...]struct {
		name string
		fn   func(goja.FunctionCall) goja.Value
	}{
		{`alert`, x.alert(w)},
		{`close`, x.close(w)},
		{`setTimeout`, x.setTimeout(w)},
	} {
		if err := obj.Set(method.name, method.fn); err != nil {
			return err
		}
		if err := rt.Set(method.name, method.fn); err != nil {
			return err
		}
	}
	if err := rt.Set(`window`, obj); err != nil {
		return err
	}
	x.runtime = rt
	x.object = obj
	return nil
}

// unbind frees the compartment for another window. The globals are left in
// place, and throw once called.
func (x *wrapperCache) unbind(w *Window) {
	if x.runtime != nil {
		releaseCompartment(x.runtime, w)
	}
}

func (x *wrapperCache) alert(w *Window) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		var message string
		if arg := call.Argument(0); !goja.IsUndefined(arg) {
			message = arg.String()
		}
		w.Alert(message)
		return goja.Undefined()
	}
}

func (x *wrapperCache) close(w *Window) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		x.mustBeAlive(w)
		w.Close()
		return goja.Undefined()
	}
}

// setTimeout(callback, delay, ...args) returns undefined, as there is no
// handle to cancel with.
func (x *wrapperCache) setTimeout(w *Window) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if _, ok := goja.AssertFunction(call.Argument(0)); !ok {
			panic(x.runtime.NewTypeError("setTimeout requires a function as first argument"))
		}
		x.mustBeAlive(w)
		w.schedule(call.Argument(1).ToInteger(), NewTimerRegistration(call.Arguments))
		return goja.Undefined()
	}
}

// mustBeAlive throws a script exception, rather than the Go panic raised by
// the window itself.
func (x *wrapperCache) mustBeAlive(w *Window) {
	if w.Destroyed() {
		panic(x.runtime.NewGoError(ErrWindowDestroyed))
	}
}
