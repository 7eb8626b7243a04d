// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides the bilingual translation catalog and the language
// state that drives lookups and text direction.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/olegiv/firstsun-go/internal/model"
)

//go:embed locales
var localesFS embed.FS

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Entry is one key in both languages.
type Entry struct {
	Ar string `json:"ar"`
	En string `json:"en"`
}

// Get returns the text for lang.
func (e Entry) Get(lang string) string {
	return model.Pick(lang, e.Ar, e.En)
}

// Catalog holds the static translation table and an optional overlay of
// edited rows. It is safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	static  map[string]map[string]string // lang -> key -> text
	overlay map[string]Entry
	logger  *slog.Logger
}

// NewCatalog loads the embedded locale files.
func NewCatalog(logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Catalog{
		static:  make(map[string]map[string]string, len(model.SupportedLanguages)),
		overlay: make(map[string]Entry),
		logger:  logger,
	}
	for _, lang := range model.SupportedLanguages {
		if err := c.loadLanguage(lang); err != nil {
			return nil, fmt.Errorf("loading language %s: %w", lang, err)
		}
	}
	logger.Debug("i18n catalog loaded", "languages", model.SupportedLanguages, "keys", len(c.static[model.LangEnglish]))
	return c, nil
}

// MustNewCatalog is like NewCatalog but panics on error. The embedded files
// are part of the binary, so an error here is a build defect.
func MustNewCatalog(logger *slog.Logger) *Catalog {
	c, err := NewCatalog(logger)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) loadLanguage(lang string) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	table := make(map[string]string, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		table[msg.ID] = msg.Translation
	}
	c.static[lang] = table
	return nil
}

// T returns the text for key in lang: the overlay value, then the static
// value, then the key itself. Empty values count as absent.
func (c *Catalog) T(lang, key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if e, ok := c.overlay[key]; ok {
		if v := e.Get(lang); v != "" {
			return v
		}
	}
	if v := c.static[lang][key]; v != "" {
		return v
	}
	return key
}

// Has reports whether key is known in the static table or the overlay.
func (c *Catalog) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.overlay[key]; ok {
		return true
	}
	_, ok := c.static[model.LangEnglish][key]
	return ok
}

// Keys returns every known key in sorted order.
func (c *Catalog) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	set := make(map[string]struct{}, len(c.static[model.LangEnglish])+len(c.overlay))
	for _, table := range c.static {
		for k := range table {
			set[k] = struct{}{}
		}
	}
	for k := range c.overlay {
		set[k] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}

// Bundle returns the merged key to text map for lang.
func (c *Catalog) Bundle(lang string) map[string]string {
	keys := c.Keys()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = c.T(lang, k)
	}
	return out
}

// Count returns the number of static entries for lang.
func (c *Catalog) Count(lang string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.static[lang])
}

// SetOverlay replaces the overlay.
func (c *Catalog) SetOverlay(entries map[string]Entry) {
	next := make(map[string]Entry, len(entries))
	maps.Copy(next, entries)

	c.mu.Lock()
	c.overlay = next
	c.mu.Unlock()

	c.logger.Debug("translation overlay replaced", "keys", len(next))
}

// OverlayFromRows builds an overlay from translation rows.
func OverlayFromRows(rows []model.Translation) map[string]Entry {
	out := make(map[string]Entry, len(rows))
	for _, r := range rows {
		out[r.Key] = Entry{Ar: r.Ar, En: r.En}
	}
	return out
}

var matcher = language.NewMatcher([]language.Tag{language.Arabic, language.English})

// MatchLanguage returns the best supported language for an Accept-Language
// header or a bare language code. It falls back to Arabic.
func MatchLanguage(acceptLang string) string {
	acceptLang = strings.TrimSpace(acceptLang)
	if acceptLang == "" {
		return model.DefaultLanguage
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return model.DefaultLanguage
		}
		tags = []language.Tag{tag}
	}

	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return model.DefaultLanguage
	}
	if idx == 1 {
		return model.LangEnglish
	}
	return model.LangArabic
}
