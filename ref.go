// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package domwindow

import (
	"weak"
)

// PipelineRef is a non-owning back-reference to a [Pipeline], for read
// queries. It confers no lifetime control: the pipeline may be collected, or
// may exit, while references remain.
type PipelineRef struct {
	ptr weak.Pointer[Pipeline]
}

// NewPipelineRef returns a reference to p, which may be nil.
func NewPipelineRef(p *Pipeline) PipelineRef {
	if p == nil {
		return PipelineRef{}
	}
	return PipelineRef{ptr: weak.Make(p)}
}

// Get returns the pipeline, only if it is still reachable and alive.
func (x PipelineRef) Get() (*Pipeline, bool) {
	p := x.ptr.Value()
	if p == nil || !p.Alive() {
		return nil, false
	}
	return p, true
}
