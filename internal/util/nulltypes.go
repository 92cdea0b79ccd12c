// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used by seed content and forms.
const DateLayout = "2006-01-02"

// NullStringFromValue creates a sql.NullString from a string value.
// Returns a valid NullString if the trimmed string is non-empty.
func NullStringFromValue(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

// NullTimeFromValue creates a valid sql.NullTime unless t is the zero time.
func NullTimeFromValue(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

// ParseNullDate parses a YYYY-MM-DD date. An empty string yields an invalid
// NullTime and no error.
func ParseNullDate(s string) (sql.NullTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullTime{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return sql.NullTime{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return sql.NullTime{Time: t, Valid: true}, nil
}

// StringOr returns ns.String when valid, otherwise fallback.
func StringOr(ns sql.NullString, fallback string) string {
	if ns.Valid {
		return ns.String
	}
	return fallback
}
