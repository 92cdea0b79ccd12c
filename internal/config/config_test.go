// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-Secret-key-32-bytes-long!!!"

// clearEnv removes every SAKSHAM_ variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, EnvPrefix) {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SAKSHAM_SESSION_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./data/saksham.db", cfg.DBPath)
	assert.Equal(t, "localhost", cfg.ServerHost)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2, cfg.NotifyWorkers)
	assert.Equal(t, "@hourly", cfg.EventRolloverSchedule)
	assert.Equal(t, 90*24*time.Hour, cfg.EventLogRetention)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.DoSeed)
	assert.False(t, cfg.NotifyEnabled())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("SAKSHAM_SESSION_SECRET", testSecret)
	t.Setenv("SAKSHAM_DB_PATH", "/srv/saksham.db")
	t.Setenv("SAKSHAM_SERVER_HOST", "0.0.0.0")
	t.Setenv("SAKSHAM_SERVER_PORT", "3000")
	t.Setenv("SAKSHAM_ENV", "production")
	t.Setenv("SAKSHAM_LOG_LEVEL", "debug")
	t.Setenv("SAKSHAM_REQUEST_TIMEOUT", "5s")
	t.Setenv("SAKSHAM_TRUSTED_ORIGINS", "saksham.org.in,www.saksham.org.in")
	t.Setenv("SAKSHAM_NOTIFY_URL", "https://hooks.example.org/leads")
	t.Setenv("SAKSHAM_NOTIFY_SECRET", "shh")
	t.Setenv("SAKSHAM_DO_SEED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/saksham.db", cfg.DBPath)
	assert.Equal(t, "0.0.0.0:3000", cfg.ServerAddr())
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"saksham.org.in", "www.saksham.org.in"}, cfg.TrustedOrigins)
	assert.True(t, cfg.NotifyEnabled())
	assert.True(t, cfg.DoSeed)
}

func TestLoad_SessionSecret(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr string
	}{
		{"missing", "", "SESSION_SECRET"},
		{"too short", "short", "at least 32 bytes"},
		{"known default", "change-me-to-32-byte-secret-key!", "known default"},
		{"exactly 32 bytes", "abcdefghijklmnopqrstuvwxyz0123!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if tt.secret != "" {
				t.Setenv("SAKSHAM_SESSION_SECRET", tt.secret)
			}

			_, err := Load()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad env", map[string]string{"SAKSHAM_ENV": "staging"}, "SAKSHAM_ENV"},
		{"notify without secret", map[string]string{"SAKSHAM_NOTIFY_URL": "https://x.example"}, "NOTIFY_SECRET"},
		{"zero workers", map[string]string{"SAKSHAM_NOTIFY_WORKERS": "0"}, "NOTIFY_WORKERS"},
		{"zero burst", map[string]string{"SAKSHAM_FORM_RATE_BURST": "0"}, "FORM_RATE"},
		{"bad schedule", map[string]string{"SAKSHAM_EVENT_ROLLOVER_SCHEDULE": "every tuesday"}, "ROLLOVER_SCHEDULE"},
		{"bad port", map[string]string{"SAKSHAM_SERVER_PORT": "http"}, "parsing config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("SAKSHAM_SESSION_SECRET", testSecret)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, Config{LogLevel: in}.SlogLevel(), in)
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	assert.True(t, hasMinimumEntropy("abcABC123"))
	assert.True(t, hasMinimumEntropy("abc123!!!"))
	assert.False(t, hasMinimumEntropy("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
	assert.False(t, hasMinimumEntropy("abcdefgh12345678"))
}
