// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clikit

import "sync"

// eventEmitter is a minimal publish/subscribe capability composed into
// Context, replacing the source's hook-emitter mixin per spec.md §9's
// design note. The only event wired up today is "help", published by
// Command.RenderHelp.
type eventEmitter struct {
	mu        sync.Mutex
	listeners map[string][]func(any)
}

func newEventEmitter() *eventEmitter {
	return &eventEmitter{listeners: make(map[string][]func(any))}
}

// On registers fn to be called whenever event is published.
func (e *eventEmitter) On(event string, fn func(any)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners[event] = append(e.listeners[event], fn)
}

// Emit calls every listener registered for event, in registration order.
func (e *eventEmitter) Emit(event string, payload any) {
	e.mu.Lock()
	fns := append([]func(any){}, e.listeners[event]...)
	e.mu.Unlock()
	for _, fn := range fns {
		fn(payload)
	}
}
