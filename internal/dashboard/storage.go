// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/olegiv/firstsun-go/internal/auth"
)

// Client storage file names under the config directory.
const (
	PrefsFile = "prefs.json"
	TokenFile = "token.json"
)

// DefaultConfigDir returns the user config directory for the client,
// e.g. ~/.config/firstsun.
func DefaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(base, "firstsun"), nil
}

// FileTokenStore keeps the session in token.json.
type FileTokenStore struct {
	path string
	mu   sync.Mutex
}

// NewFileTokenStore stores the session under dir.
func NewFileTokenStore(dir string) *FileTokenStore {
	return &FileTokenStore{path: filepath.Join(dir, TokenFile)}
}

// Load implements TokenStore. A missing file is no session.
func (s *FileTokenStore) Load() (auth.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored storedSession
	ok, err := readJSON(s.path, &stored)
	if err != nil || !ok {
		return auth.Session{}, false, err
	}
	return stored.session(), true, nil
}

// Save implements TokenStore.
func (s *FileTokenStore) Save(sess auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s.path, newStoredSession(sess))
}

// Clear implements TokenStore.
func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", s.path, err)
	}
	return nil
}

// storedSession is the on-disk form of auth.Session, which hides its
// session id from JSON.
type storedSession struct {
	auth.Session
	SessionID string `json:"session_id,omitempty"`
}

func newStoredSession(sess auth.Session) storedSession {
	return storedSession{Session: sess, SessionID: sess.SessionID}
}

func (s storedSession) session() auth.Session {
	sess := s.Session
	sess.SessionID = s.SessionID
	return sess
}

// FilePreferences keeps the chosen language in prefs.json. It implements
// i18n.PreferenceStore.
type FilePreferences struct {
	path string
	mu   sync.Mutex
}

type prefs struct {
	Language string `json:"language"`
}

// NewFilePreferences stores preferences under dir.
func NewFilePreferences(dir string) *FilePreferences {
	return &FilePreferences{path: filepath.Join(dir, PrefsFile)}
}

// LoadLanguage returns the saved language, or "" when none is saved.
func (p *FilePreferences) LoadLanguage() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var v prefs
	if _, err := readJSON(p.path, &v); err != nil {
		return "", err
	}
	return v.Language, nil
}

// SaveLanguage persists lang.
func (p *FilePreferences) SaveLanguage(lang string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var v prefs
	if _, err := readJSON(p.path, &v); err != nil {
		return err
	}
	v.Language = lang
	return writeJSON(p.path, v)
}

// readJSON decodes path into dst. It reports false for a missing file.
func readJSON(path string, dst any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decoding %s: %w", path, err)
	}
	return true, nil
}

// writeJSON replaces path atomically with owner-only permissions.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
