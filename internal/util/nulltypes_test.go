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
		{"non-empty", "hello", sql.NullString{String: "hello", Valid: true}},
		{"empty", "", sql.NullString{}},
		{"whitespace is kept", " ", sql.NullString{String: " ", Valid: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NullStringFromValue(tt.input); got != tt.expected {
				t.Errorf("NullStringFromValue(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStringFromNull(t *testing.T) {
	if got := StringFromNull(sql.NullString{String: "x", Valid: true}); got != "x" {
		t.Errorf("StringFromNull(valid) = %q, want x", got)
	}
	if got := StringFromNull(sql.NullString{String: "stale", Valid: false}); got != "" {
		t.Errorf("StringFromNull(invalid) = %q, want empty", got)
	}
}

func TestNullTimeFromValue(t *testing.T) {
	if NullTimeFromValue(time.Time{}).Valid {
		t.Error("zero time should be invalid")
	}
	now := time.Now()
	if got := NullTimeFromValue(now); !got.Valid || !got.Time.Equal(now) {
		t.Errorf("NullTimeFromValue(now) = %+v", got)
	}
}
