// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package metrics holds the site's Prometheus collectors.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "saksham"

// Form submission outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
	OutcomeLimited  = "rate_limited"
	OutcomeSpam     = "spam"
)

// Metrics contains every collector the site exports.
type Metrics struct {
	PageViews        *prometheus.CounterVec   // by route pattern
	NotFound         prometheus.Counter       // paths that resolved to no route
	Navigations      *prometheus.CounterVec   // PRG redirects by target route pattern
	FormSubmissions  *prometheus.CounterVec   // by form and outcome
	NotifyDeliveries *prometheus.CounterVec   // by event and outcome
	RequestDuration  *prometheus.HistogramVec // by method and status code

	registry *prometheus.Registry
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a fresh registry.
func New() (*Metrics, error) {
	m := &Metrics{registry: prometheus.NewRegistry()}
	m.initMetrics()

	for _, c := range []prometheus.Collector{
		m.PageViews,
		m.NotFound,
		m.Navigations,
		m.FormSubmissions,
		m.NotifyDeliveries,
		m.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) initMetrics() {
	m.PageViews = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_views_total",
			Help:      "Rendered pages by route pattern",
		},
		[]string{"route"},
	)

	m.NotFound = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "not_found_total",
		Help:      "Paths that matched no route",
	})

	m.Navigations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "navigations_total",
			Help:      "Redirects issued after in-process navigation, by target route",
		},
		[]string{"route"},
	)

	m.FormSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "form_submissions_total",
			Help:      "Form submissions by form and outcome",
		},
		[]string{"form", "outcome"},
	)

	m.NotifyDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notify_deliveries_total",
			Help:      "Lead notification outcomes by event type",
		},
		[]string{"event", "outcome"},
	)

	m.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and status code",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "code"},
	)
}

// RecordPageView counts a rendered page.
func (m *Metrics) RecordPageView(route string) {
	m.PageViews.WithLabelValues(route).Inc()
}

// RecordNotFound counts an unmatched path.
func (m *Metrics) RecordNotFound() {
	m.NotFound.Inc()
}

// RecordNavigation counts a redirect issued for a navigation.
func (m *Metrics) RecordNavigation(route string) {
	m.Navigations.WithLabelValues(route).Inc()
}

// RecordFormSubmission counts a form post.
func (m *Metrics) RecordFormSubmission(form, outcome string) {
	m.FormSubmissions.WithLabelValues(form, outcome).Inc()
}

// RecordNotifyDelivery counts a notification outcome. Its signature matches
// notify.Observer.
func (m *Metrics) RecordNotifyDelivery(event, outcome string) {
	m.NotifyDeliveries.WithLabelValues(event, outcome).Inc()
}

// ObserveRequest records request latency.
func (m *Metrics) ObserveRequest(method string, code int, d time.Duration) {
	m.RequestDuration.WithLabelValues(method, strconv.Itoa(code)).Observe(d.Seconds())
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
