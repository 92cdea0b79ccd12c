// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package router owns the site's navigation state: which path is current,
// how it changes, and which declared route is active for it.
//
// A Router is bound to a History environment. In the web server that is the
// HTTP request (see RequestHistory); tools and tests use MemoryHistory,
// which behaves like a browser's session history.
package router

import (
	"sync"
)

// History is the hosting environment a Router navigates in.
type History interface {
	// Location returns the path the environment currently shows.
	Location() string
	// Push appends path to the history stack.
	Push(path string)
	// ScrollTo moves the viewport to the given offset.
	ScrollTo(x, y int)
	// OnPopState registers fn for back/forward navigation performed outside
	// the router. The returned function removes the registration.
	OnPopState(fn func(path string)) (cancel func())
}

// Router holds the current path and is the only thing allowed to change it.
// It is safe for concurrent use.
type Router struct {
	history History

	mu      sync.RWMutex
	current string
	subs    map[uint64]func(string)
	nextSub uint64

	closeOnce sync.Once
	cancelPop func()
}

// New creates a Router initialized from the environment's location and
// subscribes to external back/forward navigation until Close is called.
func New(h History) *Router {
	r := &Router{
		history: h,
		current: normalize(h.Location()),
		subs:    make(map[uint64]func(string)),
	}
	r.cancelPop = h.OnPopState(r.handlePopState)
	return r
}

// Current returns the current path.
func (r *Router) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Navigate makes path current, pushes it onto the history stack and scrolls
// to the top. The path is accepted as-is.
func (r *Router) Navigate(path string) {
	r.history.Push(path)
	r.set(path)
	r.history.ScrollTo(0, 0)
}

// Subscribe registers fn to be called with the new path after every change.
// The returned function unsubscribes; calling it more than once is harmless.
func (r *Router) Subscribe(fn func(path string)) (unsubscribe func()) {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subs, id)
			r.mu.Unlock()
		})
	}
}

// Close releases the back/forward subscription. It is idempotent.
func (r *Router) Close() {
	r.closeOnce.Do(func() {
		if r.cancelPop != nil {
			r.cancelPop()
		}
	})
}

func (r *Router) handlePopState(path string) {
	r.set(normalize(path))
}

func (r *Router) set(path string) {
	r.mu.Lock()
	r.current = path
	listeners := make([]func(string), 0, len(r.subs))
	for _, fn := range r.subs {
		listeners = append(listeners, fn)
	}
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(path)
	}
}

// normalize applies the location invariant: a path always starts with "/".
func normalize(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
