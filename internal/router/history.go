// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package router

import "sync"

// ScrollPosition is a viewport offset.
type ScrollPosition struct {
	X, Y int
}

type historyEntry struct {
	path   string
	scroll ScrollPosition
}

// MemoryHistory is an in-process session history. Pushing truncates any
// forward entries; Back, Forward and Go move through the stack and notify
// pop-state listeners, restoring the scroll offset saved for the entry.
type MemoryHistory struct {
	mu        sync.Mutex
	entries   []historyEntry
	index     int
	listeners map[uint64]func(string)
	nextID    uint64
}

// NewMemoryHistory creates a history whose only entry is initial.
func NewMemoryHistory(initial string) *MemoryHistory {
	return &MemoryHistory{
		entries:   []historyEntry{{path: normalize(initial)}},
		listeners: make(map[uint64]func(string)),
	}
}

// Location implements History.
func (h *MemoryHistory) Location() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index].path
}

// Push implements History.
func (h *MemoryHistory) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], historyEntry{path: path})
	h.index++
}

// ScrollTo implements History. The offset is remembered for the current entry.
func (h *MemoryHistory) ScrollTo(x, y int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.index].scroll = ScrollPosition{X: x, Y: y}
}

// Scroll returns the scroll offset of the current entry.
func (h *MemoryHistory) Scroll() ScrollPosition {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index].scroll
}

// OnPopState implements History.
func (h *MemoryHistory) OnPopState(fn func(path string)) (cancel func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners, id)
			h.mu.Unlock()
		})
	}
}

// Listeners returns the number of registered pop-state listeners.
func (h *MemoryHistory) Listeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}

// Len returns the number of entries in the stack.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Back moves one entry back. It reports false at the start of the stack.
func (h *MemoryHistory) Back() bool {
	return h.Go(-1)
}

// Forward moves one entry forward. It reports false at the end of the stack.
func (h *MemoryHistory) Forward() bool {
	return h.Go(1)
}

// Go moves delta entries through the stack and fires pop-state listeners.
// Out-of-range moves are ignored and report false.
func (h *MemoryHistory) Go(delta int) bool {
	h.mu.Lock()
	target := h.index + delta
	if delta == 0 || target < 0 || target >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.index = target
	path := h.entries[target].path
	listeners := make([]func(string), 0, len(h.listeners))
	for _, fn := range h.listeners {
		listeners = append(listeners, fn)
	}
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(path)
	}
	return true
}
