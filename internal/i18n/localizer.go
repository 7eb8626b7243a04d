// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/olegiv/firstsun-go/internal/model"
)

// ErrUnsupportedLanguage is returned for language codes other than ar and en.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// State is the active language and its text direction. The document
// attributes lang and dir are derived from it.
type State struct {
	Lang string `json:"lang"`
	Dir  string `json:"dir"`
}

// StateFor returns the state for a supported language.
func StateFor(lang string) State {
	return State{Lang: lang, Dir: model.Direction(lang)}
}

// PreferenceStore persists the chosen language.
type PreferenceStore interface {
	LoadLanguage() (string, error)
	SaveLanguage(lang string) error
}

// Localizer holds the active language and translates against a Catalog.
type Localizer struct {
	catalog *Catalog
	prefs   PreferenceStore
	logger  *slog.Logger
	state   atomic.Pointer[State]

	mu          sync.Mutex
	subscribers []func(State)
}

// NewLocalizer creates a Localizer with the persisted language, or Arabic
// when nothing valid is stored. prefs may be nil.
func NewLocalizer(catalog *Catalog, prefs PreferenceStore, logger *slog.Logger) *Localizer {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Localizer{catalog: catalog, prefs: prefs, logger: logger}

	lang := model.DefaultLanguage
	if prefs != nil {
		saved, err := prefs.LoadLanguage()
		switch {
		case err != nil:
			logger.Warn("failed to load language preference", "error", err)
		case model.IsSupportedLanguage(saved):
			lang = saved
		}
	}

	st := StateFor(lang)
	l.state.Store(&st)
	return l
}

// SetLanguage switches the active language, persists it and notifies
// subscribers. A persistence failure is logged and does not undo the switch.
func (l *Localizer) SetLanguage(lang string) error {
	if !model.IsSupportedLanguage(lang) {
		return ErrUnsupportedLanguage
	}

	st := StateFor(lang)
	l.state.Store(&st)

	if l.prefs != nil {
		if err := l.prefs.SaveLanguage(lang); err != nil {
			l.logger.Warn("failed to save language preference", "lang", lang, "error", err)
		}
	}

	l.mu.Lock()
	subs := append([]func(State){}, l.subscribers...)
	l.mu.Unlock()
	for _, fn := range subs {
		fn(st)
	}
	return nil
}

// OnChange registers fn to be called after every language switch.
func (l *Localizer) OnChange(fn func(State)) {
	l.mu.Lock()
	l.subscribers = append(l.subscribers, fn)
	l.mu.Unlock()
}

// Snapshot returns the current state.
func (l *Localizer) Snapshot() State {
	return *l.state.Load()
}

// Language returns the active language code.
func (l *Localizer) Language() string {
	return l.Snapshot().Lang
}

// Dir returns rtl or ltr.
func (l *Localizer) Dir() string {
	return l.Snapshot().Dir
}

// IsRTL reports whether the active language is written right to left.
func (l *Localizer) IsRTL() bool {
	return l.Snapshot().Dir == model.DirRTL
}

// T translates key in the active language.
func (l *Localizer) T(key string) string {
	return l.catalog.T(l.Snapshot().Lang, key)
}

// MemoryPreferences is an in-memory PreferenceStore.
type MemoryPreferences struct {
	mu   sync.Mutex
	lang string
}

// NewMemoryPreferences creates a store holding lang.
func NewMemoryPreferences(lang string) *MemoryPreferences {
	return &MemoryPreferences{lang: lang}
}

// LoadLanguage implements PreferenceStore.
func (m *MemoryPreferences) LoadLanguage() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lang, nil
}

// SaveLanguage implements PreferenceStore.
func (m *MemoryPreferences) SaveLanguage(lang string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lang = lang
	return nil
}
