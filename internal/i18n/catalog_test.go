// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/olegiv/firstsun-go/internal/model"
	"github.com/olegiv/firstsun-go/internal/testutil"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(testutil.TestLogger())
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	return c
}

func TestNewCatalog(t *testing.T) {
	c := newTestCatalog(t)

	if c.Count(model.LangArabic) == 0 {
		t.Error("expected Arabic translations to be loaded")
	}
	if c.Count(model.LangArabic) != c.Count(model.LangEnglish) {
		t.Errorf("ar has %d keys, en has %d", c.Count(model.LangArabic), c.Count(model.LangEnglish))
	}
}

func TestCatalog_T(t *testing.T) {
	c := newTestCatalog(t)

	tests := []struct {
		lang     string
		key      string
		expected string
	}{
		{"ar", "nav.home", "الرئيسية"},
		{"en", "nav.home", "Home"},
		{"ar", "nav.contact", "اتصل بنا"},
		{"en", "nav.contact", "Contact"},
		{"en", "hero.cta", "Discover Our Services"},
		{"en", "nonexistent.key", "nonexistent.key"},
		{"ar", "", ""},
		{"fr", "nav.home", "nav.home"},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"_"+tt.key, func(t *testing.T) {
			if got := c.T(tt.lang, tt.key); got != tt.expected {
				t.Errorf("T(%q, %q) = %q, want %q", tt.lang, tt.key, got, tt.expected)
			}
		})
	}
}

func TestCatalog_EveryKeyTranslated(t *testing.T) {
	c := newTestCatalog(t)

	for _, key := range c.Keys() {
		for _, lang := range model.SupportedLanguages {
			got := c.T(lang, key)
			if got == "" || got == key {
				t.Errorf("T(%q, %q) = %q, want a translation", lang, key, got)
			}
		}
	}
}

func TestCatalog_Overlay(t *testing.T) {
	c := newTestCatalog(t)

	c.SetOverlay(map[string]Entry{
		"nav.home":   {Ar: "البداية", En: "Start"},
		"custom.key": {Ar: "مخصص", En: ""},
	})

	if got := c.T("en", "nav.home"); got != "Start" {
		t.Errorf("overlay value not used: %q", got)
	}
	if got := c.T("ar", "custom.key"); got != "مخصص" {
		t.Errorf("overlay-only key = %q", got)
	}
	if got := c.T("en", "custom.key"); got != "custom.key" {
		t.Errorf("empty overlay value should fall through to key, got %q", got)
	}
	if !c.Has("custom.key") {
		t.Error("Has(custom.key) = false after overlay")
	}

	bundle := c.Bundle("en")
	if bundle["nav.home"] != "Start" || bundle["nav.contact"] != "Contact" {
		t.Errorf("bundle does not merge overlay and static table: %v / %v", bundle["nav.home"], bundle["nav.contact"])
	}

	c.SetOverlay(nil)
	if got := c.T("en", "nav.home"); got != "Home" {
		t.Errorf("cleared overlay still applied: %q", got)
	}
}

func TestOverlayFromRows(t *testing.T) {
	rows := []model.Translation{{Key: "a.b", Ar: "أ", En: "A"}}
	got := OverlayFromRows(rows)
	if got["a.b"] != (Entry{Ar: "أ", En: "A"}) {
		t.Errorf("OverlayFromRows = %v", got)
	}
}

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"en-US", "en"},
		{"en-US,en;q=0.9", "en"},
		{"ar", "ar"},
		{"ar-EG,ar;q=0.9,en;q=0.8", "ar"},
		{"fr-FR,en;q=0.5", "en"},
		{"", "ar"},
		{"!!!", "ar"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MatchLanguage(tt.input); got != tt.expected {
				t.Errorf("MatchLanguage(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLocaleFilesValid(t *testing.T) {
	for _, lang := range model.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			data, err := localesFS.ReadFile(fmt.Sprintf("locales/%s/messages.json", lang))
			if err != nil {
				t.Fatalf("failed to read %s messages: %v", lang, err)
			}

			var msgFile MessageFile
			if err := json.Unmarshal(data, &msgFile); err != nil {
				t.Fatalf("failed to parse %s messages: %v", lang, err)
			}
			if msgFile.Language != lang {
				t.Errorf("language = %q, want %q", msgFile.Language, lang)
			}

			seen := make(map[string]bool)
			for _, msg := range msgFile.Messages {
				if seen[msg.ID] {
					t.Errorf("duplicate message ID: %s", msg.ID)
				}
				seen[msg.ID] = true
			}
		})
	}
}
