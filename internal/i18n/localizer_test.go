// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"errors"
	"sync"
	"testing"

	"github.com/olegiv/firstsun-go/internal/model"
	"github.com/olegiv/firstsun-go/internal/testutil"
)

type failingPrefs struct{}

func (failingPrefs) LoadLanguage() (string, error) { return "", errors.New("disk gone") }
func (failingPrefs) SaveLanguage(string) error     { return errors.New("disk gone") }

func TestNewLocalizer_Defaults(t *testing.T) {
	c := newTestCatalog(t)

	tests := []struct {
		name  string
		prefs PreferenceStore
		want  string
	}{
		{"nil prefs", nil, "ar"},
		{"unset", NewMemoryPreferences(""), "ar"},
		{"invalid", NewMemoryPreferences("de"), "ar"},
		{"saved english", NewMemoryPreferences("en"), "en"},
		{"load error", failingPrefs{}, "ar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLocalizer(c, tt.prefs, testutil.TestLogger())
			if got := l.Language(); got != tt.want {
				t.Errorf("Language() = %q, want %q", got, tt.want)
			}
			if l.IsRTL() != (tt.want == "ar") {
				t.Errorf("IsRTL() = %v for %q", l.IsRTL(), tt.want)
			}
		})
	}
}

func TestLocalizer_SetLanguage(t *testing.T) {
	prefs := NewMemoryPreferences("")
	l := NewLocalizer(newTestCatalog(t), prefs, testutil.TestLogger())

	var got []State
	l.OnChange(func(s State) { got = append(got, s) })

	if err := l.SetLanguage("en"); err != nil {
		t.Fatalf("SetLanguage(en) error: %v", err)
	}
	if l.T("nav.home") != "Home" || l.Dir() != model.DirLTR || l.IsRTL() {
		t.Errorf("after switch: T=%q dir=%q", l.T("nav.home"), l.Dir())
	}
	if saved, _ := prefs.LoadLanguage(); saved != "en" {
		t.Errorf("persisted language = %q, want en", saved)
	}

	if err := l.SetLanguage("fr"); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("SetLanguage(fr) error = %v, want ErrUnsupportedLanguage", err)
	}
	if l.Language() != "en" {
		t.Errorf("rejected language changed state to %q", l.Language())
	}

	if err := l.SetLanguage("ar"); err != nil {
		t.Fatalf("SetLanguage(ar) error: %v", err)
	}
	if l.T("nav.home") != "الرئيسية" || !l.IsRTL() {
		t.Errorf("after switch back: T=%q rtl=%v", l.T("nav.home"), l.IsRTL())
	}

	want := []State{{Lang: "en", Dir: "ltr"}, {Lang: "ar", Dir: "rtl"}}
	if len(got) != len(want) {
		t.Fatalf("notifications = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLocalizer_SaveFailureStillSwitches(t *testing.T) {
	l := NewLocalizer(newTestCatalog(t), failingPrefs{}, testutil.TestLogger())

	if err := l.SetLanguage("en"); err != nil {
		t.Fatalf("SetLanguage error: %v", err)
	}
	if l.Language() != "en" {
		t.Errorf("Language() = %q, want en", l.Language())
	}
}

func TestLocalizer_SnapshotConsistent(t *testing.T) {
	l := NewLocalizer(newTestCatalog(t), nil, testutil.TestLogger())

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			lang := model.SupportedLanguages[i%2]
			_ = l.SetLanguage(lang)
		}
	}()

	for range 1000 {
		s := l.Snapshot()
		if s.Dir != model.Direction(s.Lang) {
			t.Fatalf("inconsistent snapshot %+v", s)
		}
	}
	close(stop)
	wg.Wait()
}
