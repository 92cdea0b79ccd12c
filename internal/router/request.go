// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package router

import (
	"net/http"
	"sync"
)

// RequestHistory adapts a single HTTP request to the History interface.
//
// The location is the request path. A push is recorded so the caller can
// answer with a redirect, which makes the browser append the entry to its
// own history. Browser back/forward arrives as a new request, so no
// pop-state is ever delivered here.
type RequestHistory struct {
	location string

	mu     sync.Mutex
	pushed []string
	scroll ScrollPosition
}

// NewRequestHistory creates a history for r.
func NewRequestHistory(r *http.Request) *RequestHistory {
	return &RequestHistory{location: normalize(r.URL.Path)}
}

// Location implements History.
func (h *RequestHistory) Location() string {
	return h.location
}

// Push implements History.
func (h *RequestHistory) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pushed = append(h.pushed, path)
}

// ScrollTo implements History.
func (h *RequestHistory) ScrollTo(x, y int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.scroll = ScrollPosition{X: x, Y: y}
}

// OnPopState implements History.
func (h *RequestHistory) OnPopState(func(string)) (cancel func()) {
	return func() {}
}

// Target returns the most recently pushed path, if any.
func (h *RequestHistory) Target() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.pushed) == 0 {
		return "", false
	}
	return h.pushed[len(h.pushed)-1], true
}

// Pushes returns how many entries were pushed during the request.
func (h *RequestHistory) Pushes() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pushed)
}

// Scroll returns the last requested scroll offset.
func (h *RequestHistory) Scroll() ScrollPosition {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.scroll
}
