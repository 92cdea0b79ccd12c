// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package router

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InitialPathFromLocation(t *testing.T) {
	r := New(NewMemoryHistory("/about/team"))
	defer r.Close()

	assert.Equal(t, "/about/team", r.Current())
}

func TestNew_EmptyLocationIsRoot(t *testing.T) {
	r := New(NewMemoryHistory(""))
	defer r.Close()

	assert.Equal(t, "/", r.Current())
}

func TestRouter_Navigate(t *testing.T) {
	h := NewMemoryHistory("/")
	r := New(h)
	defer r.Close()

	r.Navigate("/donate")

	assert.Equal(t, "/donate", r.Current())
	assert.Equal(t, "/donate", h.Location())
	assert.Equal(t, 2, h.Len())
}

func TestRouter_NavigateAcceptsAnyString(t *testing.T) {
	for _, p := range []string{"", "no-slash", "/with space", "/../x", "/école"} {
		r := New(NewMemoryHistory("/"))
		r.Navigate(p)
		assert.Equal(t, p, r.Current())
		r.Close()
	}
}

func TestRouter_NavigateTwicePushesTwice(t *testing.T) {
	h := NewMemoryHistory("/")
	r := New(h)
	defer r.Close()

	r.Navigate("/events")
	r.Navigate("/events")

	assert.Equal(t, "/events", r.Current())
	assert.Equal(t, 3, h.Len())
}

func TestRouter_BackRestoresPreviousPath(t *testing.T) {
	h := NewMemoryHistory("/")
	r := New(h)
	defer r.Close()

	r.Navigate("/schools/completed")
	r.Navigate("/school/KA-001")

	require.True(t, h.Back())
	assert.Equal(t, "/schools/completed", r.Current())

	require.True(t, h.Back())
	assert.Equal(t, "/", r.Current())

	assert.False(t, h.Back())
	assert.Equal(t, "/", r.Current())

	require.True(t, h.Forward())
	assert.Equal(t, "/schools/completed", r.Current())
}

func TestRouter_NavigateAfterBackDropsForwardEntries(t *testing.T) {
	h := NewMemoryHistory("/")
	r := New(h)
	defer r.Close()

	r.Navigate("/a")
	r.Navigate("/b")
	require.True(t, h.Back())

	r.Navigate("/c")

	assert.Equal(t, 3, h.Len())
	assert.False(t, h.Forward())
	require.True(t, h.Back())
	assert.Equal(t, "/a", r.Current())
}

func TestRouter_NavigateResetsScroll(t *testing.T) {
	h := NewMemoryHistory("/")
	r := New(h)
	defer r.Close()

	h.ScrollTo(0, 1200)
	r.Navigate("/impact")
	assert.Equal(t, ScrollPosition{}, h.Scroll())

	require.True(t, h.Back())
	assert.Equal(t, ScrollPosition{Y: 1200}, h.Scroll())
}

func TestRouter_Subscribe(t *testing.T) {
	h := NewMemoryHistory("/")
	r := New(h)
	defer r.Close()

	var got []string
	unsubscribe := r.Subscribe(func(p string) { got = append(got, p) })

	r.Navigate("/contact")
	h.Back()
	unsubscribe()
	unsubscribe()
	r.Navigate("/donate")

	assert.Equal(t, []string{"/contact", "/"}, got)
}

func TestRouter_SubscriberSeesUpdatedState(t *testing.T) {
	r := New(NewMemoryHistory("/"))
	defer r.Close()

	var seen string
	r.Subscribe(func(string) { seen = r.Current() })
	r.Navigate("/events")

	assert.Equal(t, "/events", seen)
}

func TestRouter_CloseReleasesPopStateSubscription(t *testing.T) {
	h := NewMemoryHistory("/")
	r := New(h)
	assert.Equal(t, 1, h.Listeners())

	r.Navigate("/a")
	r.Close()
	r.Close()
	assert.Equal(t, 0, h.Listeners())

	require.True(t, h.Back())
	assert.Equal(t, "/a", r.Current(), "closed router must not follow external navigation")
}

func TestRouter_RepeatedMountsDoNotAccumulateListeners(t *testing.T) {
	h := NewMemoryHistory("/")
	for i := 0; i < 10; i++ {
		r := New(h)
		r.Close()
	}
	assert.Equal(t, 0, h.Listeners())
}

func TestRouter_ConcurrentReadsAndNavigation(t *testing.T) {
	r := New(NewMemoryHistory("/"))
	defer r.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = r.Current()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Navigate("/events")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, "/events", r.Current())
}

func TestRequestHistory(t *testing.T) {
	req := httptest.NewRequest("POST", "/contact?x=1", nil)
	h := NewRequestHistory(req)
	r := New(h)
	defer r.Close()

	assert.Equal(t, "/contact", r.Current())
	_, ok := h.Target()
	assert.False(t, ok)

	h.ScrollTo(0, 300)
	r.Navigate("/contact")

	target, ok := h.Target()
	require.True(t, ok)
	assert.Equal(t, "/contact", target)
	assert.Equal(t, 1, h.Pushes())
	assert.Equal(t, ScrollPosition{}, h.Scroll())
}

func TestContext(t *testing.T) {
	ctx := context.Background()

	_, ok := Lookup(ctx)
	assert.False(t, ok)
	assert.Panics(t, func() { FromContext(ctx) })

	r := New(NewMemoryHistory("/"))
	defer r.Close()
	ctx = WithRouter(ctx, r)

	assert.Same(t, r, FromContext(ctx))

	assert.Equal(t, "", Param(ctx))
	assert.Equal(t, "KA-001", Param(WithParam(ctx, "KA-001")))
}
