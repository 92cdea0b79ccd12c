// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testAuthKey = []byte("12345678901234567890123456789012")

func TestDefaultCSRFConfig_Development(t *testing.T) {
	cfg := DefaultCSRFConfig(testAuthKey, true)

	assert.Len(t, cfg.AuthKey, 32)
	assert.ElementsMatch(t, []string{"localhost:8080", "127.0.0.1:8080"}, cfg.TrustedOrigins)
}

func TestDefaultCSRFConfig_Production(t *testing.T) {
	cfg := DefaultCSRFConfig(testAuthKey, false)
	assert.Empty(t, cfg.TrustedOrigins)

	cfg = DefaultCSRFConfig(testAuthKey, false, "saksham.org.in")
	assert.Equal(t, []string{"saksham.org.in"}, cfg.TrustedOrigins)
}

func TestCSRF(t *testing.T) {
	handler := CSRF(DefaultCSRFConfig(testAuthKey, false))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name      string
		method    string
		fetchSite string
		want      int
	}{
		{"same-origin post", http.MethodPost, "same-origin", http.StatusOK},
		{"cross-site post", http.MethodPost, "cross-site", http.StatusForbidden},
		{"cross-site get", http.MethodGet, "cross-site", http.StatusOK},
		{"user-initiated post", http.MethodPost, "none", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/contact", nil)
			req.Header.Set("Sec-Fetch-Site", tt.fetchSite)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestSkipCSRF(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := SkipCSRF("/health")(CSRF(DefaultCSRFConfig(testAuthKey, false))(ok))

	for path, want := range map[string]int{
		"/health":  http.StatusOK,
		"/contact": http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set("Sec-Fetch-Site", "cross-site")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, want, rec.Code, path)
	}
}
