// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"database/sql"
	"testing"
	"time"
)

func TestNullStringFromValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected sql.NullString
	}{
		{"empty string", "", sql.NullString{}},
		{"whitespace only", "   ", sql.NullString{}},
		{"value", "Belgaum", sql.NullString{String: "Belgaum", Valid: true}},
		{"trimmed", "  Mysore ", sql.NullString{String: "Mysore", Valid: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NullStringFromValue(tt.input); got != tt.expected {
				t.Errorf("NullStringFromValue(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNullTimeFromValue(t *testing.T) {
	if got := NullTimeFromValue(time.Time{}); got.Valid {
		t.Errorf("zero time should be invalid, got %v", got)
	}
	now := time.Now()
	if got := NullTimeFromValue(now); !got.Valid || !got.Time.Equal(now) {
		t.Errorf("NullTimeFromValue(now) = %v", got)
	}
}

func TestParseNullDate(t *testing.T) {
	got, err := ParseNullDate("")
	if err != nil || got.Valid {
		t.Errorf("ParseNullDate(\"\") = %v, %v", got, err)
	}

	got, err = ParseNullDate("2024-03-15")
	if err != nil {
		t.Fatalf("ParseNullDate: %v", err)
	}
	want := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !got.Valid || !got.Time.Equal(want) {
		t.Errorf("ParseNullDate = %v, want %v", got.Time, want)
	}

	if _, err := ParseNullDate("15/03/2024"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestStringOr(t *testing.T) {
	if got := StringOr(sql.NullString{}, "-"); got != "-" {
		t.Errorf("StringOr(invalid) = %q", got)
	}
	if got := StringOr(sql.NullString{String: "x", Valid: true}, "-"); got != "x" {
		t.Errorf("StringOr(valid) = %q", got)
	}
}
