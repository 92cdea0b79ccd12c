// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the cookie session used for flash messages
// after form submissions.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

const (
	// Lifetime bounds how long an unread flash message survives.
	Lifetime = 24 * time.Hour
	// CleanupInterval is how often expired sessions are purged.
	CleanupInterval = 5 * time.Minute

	productionCookieName = "__Host-session"
)

// New creates a session manager backed by the sessions table.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	return NewWithCleanupInterval(db, isDev, CleanupInterval)
}

// NewWithCleanupInterval is New with a custom purge interval. An interval of
// zero disables the background cleanup goroutine.
func NewWithCleanupInterval(db *sql.DB, isDev bool, interval time.Duration) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.NewWithCleanupInterval(db, interval)

	sm.Lifetime = Lifetime
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	sm.Cookie.Secure = !isDev

	// The __Host- prefix requires Secure, so it only applies over HTTPS.
	if !isDev {
		sm.Cookie.Name = productionCookieName
	}

	return sm
}

// Close stops the store's cleanup goroutine, if any.
func Close(sm *scs.SessionManager) {
	if s, ok := sm.Store.(*sqlite3store.SQLite3Store); ok {
		s.StopCleanup()
	}
}
