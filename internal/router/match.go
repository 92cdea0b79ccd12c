// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package router

import "strings"

// Match reports whether a route pattern is active for the given path.
//
// A pattern matches when it equals the path exactly. A pattern containing a
// parameter segment (":name") also matches any path that starts with the
// literal text before the first ':'; whatever follows the prefix is accepted
// as the parameter value.
func Match(pattern, path string) bool {
	if pattern == path {
		return true
	}
	prefix, ok := paramPrefix(pattern)
	return ok && strings.HasPrefix(path, prefix)
}

// paramPrefix returns the fixed part of a parameterized pattern.
func paramPrefix(pattern string) (string, bool) {
	i := strings.IndexByte(pattern, ':')
	if i < 0 {
		return "", false
	}
	return pattern[:i], true
}

// Route pairs a pattern with the content activated when it matches.
type Route[T any] struct {
	Pattern string
	Name    string
	Content T
}

// ParamName returns the parameter name declared by the pattern, or "" for
// literal routes.
func (r Route[T]) ParamName() string {
	i := strings.IndexByte(r.Pattern, ':')
	if i < 0 {
		return ""
	}
	return r.Pattern[i+1:]
}

// IsParameterized reports whether the pattern has a parameter segment.
func (r Route[T]) IsParameterized() bool {
	_, ok := paramPrefix(r.Pattern)
	return ok
}

// Resolved is the outcome of resolving a path against a Table.
type Resolved[T any] struct {
	Route Route[T]
	// Param is the part of the path following the pattern's fixed prefix.
	// Empty for exact matches.
	Param string
	Exact bool
}

// Table is an ordered set of route declarations. It is built once at
// startup and only read afterwards.
type Table[T any] struct {
	routes []Route[T]
}

// NewTable creates a table from routes in declaration order.
func NewTable[T any](routes ...Route[T]) *Table[T] {
	t := &Table[T]{routes: make([]Route[T], len(routes))}
	copy(t.routes, routes)
	return t
}

// Routes returns a copy of the declarations in order.
func (t *Table[T]) Routes() []Route[T] {
	out := make([]Route[T], len(t.routes))
	copy(out, t.routes)
	return out
}

// Len returns the number of declared routes.
func (t *Table[T]) Len() int {
	return len(t.routes)
}

// Candidates returns every declaration that matches path, in declaration
// order. More than one candidate means the patterns overlap; Resolve picks
// exactly one of them.
func (t *Table[T]) Candidates(path string) []Route[T] {
	var out []Route[T]
	for _, r := range t.routes {
		if Match(r.Pattern, path) {
			out = append(out, r)
		}
	}
	return out
}

// Resolve picks the single active route for path.
//
// An exact match always wins. Otherwise the parameterized route with the
// longest fixed prefix wins, and equal prefixes fall back to declaration
// order. The second result is false when nothing matches.
func (t *Table[T]) Resolve(path string) (Resolved[T], bool) {
	for _, r := range t.routes {
		if r.Pattern == path {
			return Resolved[T]{Route: r, Exact: true}, true
		}
	}

	best := -1
	bestLen := -1
	for i, r := range t.routes {
		prefix, ok := paramPrefix(r.Pattern)
		if !ok || !strings.HasPrefix(path, prefix) {
			continue
		}
		if len(prefix) > bestLen {
			best, bestLen = i, len(prefix)
		}
	}
	if best < 0 {
		return Resolved[T]{}, false
	}

	r := t.routes[best]
	return Resolved[T]{Route: r, Param: path[bestLen:]}, true
}
