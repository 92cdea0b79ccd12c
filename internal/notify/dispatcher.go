// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package notify

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// Delivery outcomes reported to the Observer.
const (
	OutcomeDelivered = "delivered"
	OutcomeRetried   = "retried"
	OutcomeDead      = "dead"
	OutcomeDropped   = "dropped"
)

// ErrQueueFull is returned by Dispatch when the queue has no room.
var ErrQueueFull = errors.New("notification queue full")

// Observer receives one call per delivery outcome.
type Observer func(event, outcome string)

// Dispatcher queues events and delivers them with a pool of workers.
type Dispatcher struct {
	url      string
	secret   string
	client   *http.Client
	logger   *slog.Logger
	observe  Observer
	backoff  func(attempt int) time.Duration
	attempts int
	queue    chan *queuedDelivery
	workers  int
	wg       sync.WaitGroup
	done     chan struct{}
	mu       sync.RWMutex
	running  bool
}

type queuedDelivery struct {
	ID      string
	Event   string
	Payload []byte
}

// Config holds dispatcher configuration.
type Config struct {
	URL         string
	Secret      string
	Workers     int
	QueueSize   int
	MaxAttempts int
	// Client overrides the SSRF-safe default client.
	Client   *http.Client
	Observer Observer
	// Backoff overrides calculateBackoff.
	Backoff func(attempt int) time.Duration
}

// DefaultConfig returns default dispatcher configuration.
func DefaultConfig() Config {
	return Config{
		Workers:     2,
		QueueSize:   100,
		MaxAttempts: MaxAttempts,
	}
}

// newHTTPClient refuses connections to private addresses at dial time.
func newHTTPClient() *http.Client {
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	return &http.Client{
		Timeout: RequestTimeout,
		Transport: &http.Transport{
			DialContext:         guardedDial(dialer, nil),
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// NewDispatcher creates a dispatcher posting to cfg.URL.
func NewDispatcher(logger *slog.Logger, cfg Config) *Dispatcher {
	defaults := DefaultConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = defaults.Workers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaults.QueueSize
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaults.MaxAttempts
	}
	if cfg.Client == nil {
		cfg.Client = newHTTPClient()
	}
	if cfg.Backoff == nil {
		cfg.Backoff = calculateBackoff
	}
	if cfg.Observer == nil {
		cfg.Observer = func(string, string) {}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		url:      cfg.URL,
		secret:   cfg.Secret,
		client:   cfg.Client,
		logger:   logger,
		observe:  cfg.Observer,
		backoff:  cfg.Backoff,
		attempts: cfg.MaxAttempts,
		queue:    make(chan *queuedDelivery, cfg.QueueSize),
		workers:  cfg.Workers,
		done:     make(chan struct{}),
	}
}

// Start starts the dispatcher workers.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.mu.Unlock()

	d.logger.Info("starting notification dispatcher", "workers", d.workers)

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx, i)
	}
}

// Stop stops the workers and waits for in-flight deliveries to end.
// Queued but unsent events are discarded.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	d.mu.Unlock()

	d.logger.Info("stopping notification dispatcher")
	close(d.done)
	d.wg.Wait()
	d.logger.Info("notification dispatcher stopped")
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()
	d.logger.Debug("notification worker started", "worker_id", id)

	for {
		select {
		case <-d.done:
			return
		case <-ctx.Done():
			return
		case delivery := <-d.queue:
			d.deliver(ctx, delivery)
		}
	}
}

// Dispatch queues an event for delivery. It never blocks on the network.
func (d *Dispatcher) Dispatch(ctx context.Context, eventType string, data any) error {
	d.mu.RLock()
	running := d.running
	d.mu.RUnlock()

	if !running {
		d.logger.Warn("notification dispatcher not running, dropping event", "event_type", eventType)
		d.observe(eventType, OutcomeDropped)
		return nil
	}

	event := NewEvent(eventType, data)
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	qd := &queuedDelivery{ID: newDeliveryID(), Event: eventType, Payload: payload}
	select {
	case d.queue <- qd:
		d.logger.Debug("notification queued", "delivery_id", qd.ID, "event_type", eventType)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		d.logger.Warn("notification queue full, dropping event", "event_type", eventType)
		d.observe(eventType, OutcomeDropped)
		return ErrQueueFull
	}
}

// GenerateSignature generates an HMAC-SHA256 signature for the payload.
func GenerateSignature(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature verifies an HMAC-SHA256 signature.
func VerifySignature(payload []byte, signature, secret string) bool {
	expectedSig := GenerateSignature(payload, secret)
	return hmac.Equal([]byte(signature), []byte(expectedSig))
}
