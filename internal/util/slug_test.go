// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"errors"
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "product name",
			input:    "Hybrid Inverter",
			expected: "hybrid-inverter",
		},
		{
			name:     "punctuation dropped",
			input:    "Solar, Wind & Storage!",
			expected: "solar-wind-storage",
		},
		{
			name:     "capacity figures",
			input:    "Panel 550W",
			expected: "panel-550w",
		},
		{
			name:     "with accents",
			input:    "Café résumé",
			expected: "cafe-resume",
		},
		{
			name:     "repeated spaces",
			input:    "Hello   World",
			expected: "hello-world",
		},
		{
			name:     "with hyphens",
			input:    "Hello - World",
			expected: "hello-world",
		},
		{
			name:     "surrounding whitespace",
			input:    "  Hello World  ",
			expected: "hello-world",
		},
		{
			name:     "all special characters",
			input:    "!@#$%^&*()",
			expected: "",
		},
		{
			name:     "tabs and newlines",
			input:    "Solar\tPanels\nKit",
			expected: "solar-panels-kit",
		},
		{
			name:     "german umlauts",
			input:    "Über München",
			expected: "uber-munchen",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "single word",
			input:    "Gallery",
			expected: "gallery",
		},
		{
			name:     "mixed case",
			input:    "HeLLo WoRLd",
			expected: "hello-world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Slugify(tt.input)
			if result != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "valid simple slug",
			input:    "hello-world",
			expected: true,
		},
		{
			name:     "valid slug with numbers",
			input:    "page-123",
			expected: true,
		},
		{
			name:     "valid single word",
			input:    "hello",
			expected: true,
		},
		{
			name:     "valid numbers only",
			input:    "123",
			expected: true,
		},
		{
			name:     "invalid - empty",
			input:    "",
			expected: false,
		},
		{
			name:     "invalid - uppercase",
			input:    "Hello-World",
			expected: false,
		},
		{
			name:     "invalid - spaces",
			input:    "hello world",
			expected: false,
		},
		{
			name:     "invalid - special chars",
			input:    "hello!world",
			expected: false,
		},
		{
			name:     "invalid - starts with hyphen",
			input:    "-hello",
			expected: false,
		},
		{
			name:     "invalid - ends with hyphen",
			input:    "hello-",
			expected: false,
		},
		{
			name:     "invalid - consecutive hyphens",
			input:    "hello--world",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidSlug(tt.input)
			if result != tt.expected {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSlugify_Transliterates(t *testing.T) {
	got := Slugify("الطاقة الشمسية")
	if got == "" || !IsValidSlug(got) {
		t.Errorf("Slugify(arabic) = %q, want a non-empty valid slug", got)
	}
}

func TestSlugify_MaxLength(t *testing.T) {
	got := Slugify(strings.Repeat("solar ", 40))
	if len(got) > MaxSlugLength {
		t.Errorf("len = %d, want <= %d", len(got), MaxSlugLength)
	}
	if !IsValidSlug(got) {
		t.Errorf("truncated slug %q is invalid", got)
	}
}

func TestUniqueSlug(t *testing.T) {
	used := map[string]bool{"solar-kit": true, "solar-kit-2": true}
	taken := func(s string) (bool, error) { return used[s], nil }

	tests := []struct {
		base, fallback, want string
	}{
		{"new-kit", "x", "new-kit"},
		{"solar-kit", "x", "solar-kit-3"},
		{"", "article-1a2b", "article-1a2b"},
	}
	for _, tt := range tests {
		got, err := UniqueSlug(tt.base, tt.fallback, taken)
		if err != nil {
			t.Fatalf("UniqueSlug error: %v", err)
		}
		if got != tt.want {
			t.Errorf("UniqueSlug(%q) = %q, want %q", tt.base, got, tt.want)
		}
	}

	boom := errors.New("db down")
	if _, err := UniqueSlug("a", "b", func(string) (bool, error) { return false, boom }); !errors.Is(err, boom) {
		t.Errorf("UniqueSlug error = %v, want %v", err, boom)
	}
}
