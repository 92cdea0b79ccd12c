// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Delivery configuration constants
const (
	MaxAttempts    = 5                // Maximum number of delivery attempts
	InitialBackoff = 2 * time.Second  // Initial backoff delay
	MaxBackoff     = 5 * time.Minute  // Maximum backoff delay
	RequestTimeout = 15 * time.Second // HTTP request timeout
	MaxResponseLen = 4 * 1024         // Maximum response body kept for logs
	UserAgent      = "Saksham/1.0"    // User-Agent header value
)

// Header names set on every delivery.
const (
	HeaderSignature  = "X-Saksham-Signature"
	HeaderEvent      = "X-Saksham-Event"
	HeaderDeliveryID = "X-Saksham-Delivery-ID"
)

// DeliveryResult represents the result of a delivery attempt.
type DeliveryResult struct {
	Success      bool
	StatusCode   int
	ResponseBody string
	Error        error
	ShouldRetry  bool
}

func newDeliveryID() string {
	return uuid.NewString()
}

// deliver attempts a delivery until it succeeds, fails permanently or runs
// out of attempts. Waiting between attempts ends early on Stop.
func (d *Dispatcher) deliver(ctx context.Context, delivery *queuedDelivery) {
	for attempt := 1; ; attempt++ {
		result := d.attemptDelivery(ctx, delivery)
		if result.Success {
			d.logger.Info("notification delivered",
				"delivery_id", delivery.ID,
				"event_type", delivery.Event,
				"status_code", result.StatusCode)
			d.observe(delivery.Event, OutcomeDelivered)
			return
		}

		errMsg := ""
		if result.Error != nil {
			errMsg = result.Error.Error()
		}

		if !result.ShouldRetry || attempt >= d.attempts {
			d.logger.Warn("notification delivery failed permanently",
				"delivery_id", delivery.ID,
				"event_type", delivery.Event,
				"attempts", attempt,
				"reason", errMsg)
			d.observe(delivery.Event, OutcomeDead)
			return
		}

		backoff := d.backoff(attempt)
		d.logger.Info("notification delivery scheduled for retry",
			"delivery_id", delivery.ID,
			"event_type", delivery.Event,
			"attempt", attempt,
			"backoff", backoff.String(),
			"reason", errMsg)
		d.observe(delivery.Event, OutcomeRetried)

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-d.done:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

// attemptDelivery performs the actual HTTP POST request.
func (d *Dispatcher) attemptDelivery(ctx context.Context, delivery *queuedDelivery) DeliveryResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(delivery.Payload))
	if err != nil {
		return DeliveryResult{
			Error:       fmt.Errorf("failed to create request: %w", err),
			ShouldRetry: false,
		}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set(HeaderSignature, GenerateSignature(delivery.Payload, d.secret))
	req.Header.Set(HeaderEvent, delivery.Event)
	req.Header.Set(HeaderDeliveryID, delivery.ID)

	resp, err := d.client.Do(req)
	if err != nil {
		return DeliveryResult{
			Error:       fmt.Errorf("request failed: %w", err),
			ShouldRetry: true,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, MaxResponseLen))
	responseBody := string(body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return DeliveryResult{
			Success:      true,
			StatusCode:   resp.StatusCode,
			ResponseBody: responseBody,
		}
	}

	// 4xx is permanent except 408 and 429.
	shouldRetry := resp.StatusCode >= 500 ||
		resp.StatusCode == http.StatusRequestTimeout ||
		resp.StatusCode == http.StatusTooManyRequests
	return DeliveryResult{
		StatusCode:   resp.StatusCode,
		ResponseBody: responseBody,
		Error:        fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		ShouldRetry:  shouldRetry,
	}
}

// calculateBackoff calculates the exponential backoff duration for a given attempt.
// Attempt 1 = 2s, attempt 2 = 4s, attempt 3 = 8s, capped at MaxBackoff.
func calculateBackoff(attempt int) time.Duration {
	if attempt <= 0 {
		attempt = 1
	}

	backoff := time.Duration(float64(InitialBackoff) * math.Pow(2, float64(attempt-1)))
	if backoff > MaxBackoff {
		backoff = MaxBackoff
	}

	return backoff
}
