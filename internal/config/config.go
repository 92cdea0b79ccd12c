// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the site configuration from SAKSHAM_* environment
// variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/robfig/cron/v3"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"DB_PATH" envDefault:"./data/saksham.db"`
	SessionSecret string `env:"SESSION_SECRET,required"`
	ServerHost    string `env:"SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"SERVER_PORT" envDefault:"8080"`
	Env           string `env:"ENV" envDefault:"development"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	SiteURL       string `env:"SITE_URL" envDefault:"http://localhost:8080"` // absolute base for sitemap links

	// Request handling
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	FormRateLimit  float64       `env:"FORM_RATE_LIMIT" envDefault:"0.2"` // form posts per second per IP
	FormRateBurst  int           `env:"FORM_RATE_BURST" envDefault:"5"`
	TrustedOrigins []string      `env:"TRUSTED_ORIGINS" envSeparator:","` // extra origins allowed to POST forms

	// Lead notifications
	NotifyURL     string `env:"NOTIFY_URL"`    // endpoint receiving lead events, disabled when empty
	NotifySecret  string `env:"NOTIFY_SECRET"` // HMAC key for X-Saksham-Signature
	NotifyWorkers int    `env:"NOTIFY_WORKERS" envDefault:"2"`

	// Scheduled jobs
	EventRolloverSchedule string        `env:"EVENT_ROLLOVER_SCHEDULE" envDefault:"@hourly"`
	EventLogRetention     time.Duration `env:"EVENT_LOG_RETENTION" envDefault:"2160h"` // audit entries older than this are purged daily

	// Metrics
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`

	// Seeding configuration
	DoSeed   bool   `env:"DO_SEED" envDefault:"false"` // seed content on startup when the DB is empty
	SeedFile string `env:"SEED_FILE"`                  // YAML file replacing the embedded content
}

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "SAKSHAM_"

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// NotifyEnabled returns true if lead notifications are configured.
func (c Config) NotifyEnabled() bool {
	return c.NotifyURL != ""
}

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
// AES-256 requires 32 bytes minimum for secure encryption.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("SAKSHAM_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("SAKSHAM_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("SAKSHAM_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.Env != "development" && cfg.Env != "production" {
		return nil, fmt.Errorf("SAKSHAM_ENV must be development or production, got %q", cfg.Env)
	}

	if cfg.NotifyEnabled() && cfg.NotifySecret == "" {
		return nil, fmt.Errorf("SAKSHAM_NOTIFY_SECRET is required when SAKSHAM_NOTIFY_URL is set")
	}
	if cfg.NotifyWorkers < 1 {
		return nil, fmt.Errorf("SAKSHAM_NOTIFY_WORKERS must be at least 1, got %d", cfg.NotifyWorkers)
	}

	if cfg.FormRateLimit <= 0 || cfg.FormRateBurst < 1 {
		return nil, fmt.Errorf("SAKSHAM_FORM_RATE_LIMIT must be positive and SAKSHAM_FORM_RATE_BURST at least 1")
	}

	if _, err := cron.ParseStandard(cfg.EventRolloverSchedule); err != nil {
		return nil, fmt.Errorf("SAKSHAM_EVENT_ROLLOVER_SCHEDULE: %w", err)
	}
	if cfg.EventLogRetention < 24*time.Hour {
		return nil, fmt.Errorf("SAKSHAM_EVENT_LOG_RETENTION must be at least 24h, got %s", cfg.EventLogRetention)
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
