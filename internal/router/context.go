// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package router

import "context"

type contextKey struct{ name string }

var (
	routerKey = &contextKey{"router"}
	paramKey  = &contextKey{"param"}
)

// WithRouter returns a copy of ctx carrying r.
func WithRouter(ctx context.Context, r *Router) context.Context {
	return context.WithValue(ctx, routerKey, r)
}

// Lookup returns the Router stored in ctx, if any.
func Lookup(ctx context.Context) (*Router, bool) {
	r, ok := ctx.Value(routerKey).(*Router)
	return r, ok && r != nil
}

// FromContext returns the Router stored in ctx. It panics when there is
// none: code that reads navigation state outside a routed request is wired
// incorrectly.
func FromContext(ctx context.Context) *Router {
	r, ok := Lookup(ctx)
	if !ok {
		panic("router: FromContext called without a Router in the context")
	}
	return r
}

// WithParam returns a copy of ctx carrying the resolved parameter value.
func WithParam(ctx context.Context, value string) context.Context {
	return context.WithValue(ctx, paramKey, value)
}

// Param returns the parameter value of the route that matched the request.
func Param(ctx context.Context) string {
	v, _ := ctx.Value(paramKey).(string)
	return v
}
