// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegiv/firstsun-go/internal/testutil"
)

func TestNew_DevMode(t *testing.T) {
	sm := New(testutil.TestDB(t), true)

	if sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = false in dev mode")
	}
	if sm.Cookie.Name != "fsun_session" {
		t.Errorf("Cookie.Name = %q, want %q", sm.Cookie.Name, "fsun_session")
	}
	if sm.Lifetime != DefaultLifetime {
		t.Errorf("Lifetime = %v, want %v", sm.Lifetime, DefaultLifetime)
	}
}

func TestNew_ProdMode(t *testing.T) {
	sm := New(testutil.TestDB(t), false)

	if !sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = true in production")
	}
	if sm.Cookie.Name != "__Host-fsun_session" {
		t.Errorf("Cookie.Name = %q, want %q", sm.Cookie.Name, "__Host-fsun_session")
	}
	if !sm.Cookie.HttpOnly {
		t.Error("expected Cookie.HttpOnly = true")
	}
	if sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("Cookie.SameSite = %v, want Lax", sm.Cookie.SameSite)
	}
}

func TestBindUnbind(t *testing.T) {
	sm := New(testutil.TestDB(t), true)

	mux := http.NewServeMux()
	mux.HandleFunc("/bind", func(w http.ResponseWriter, r *http.Request) {
		if err := Bind(r.Context(), sm, "auth-session-1"); err != nil {
			t.Errorf("Bind() error = %v", err)
		}
	})
	mux.HandleFunc("/unbind", func(w http.ResponseWriter, r *http.Request) {
		if err := Unbind(r.Context(), sm); err != nil {
			t.Errorf("Unbind() error = %v", err)
		}
	})
	mux.HandleFunc("/id", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(AuthSessionID(r.Context(), sm)))
	})
	h := sm.LoadAndSave(mux)

	call := func(path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	cookies := call("/bind", nil).Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("Bind should set a session cookie")
	}
	if got := call("/id", cookies).Body.String(); got != "auth-session-1" {
		t.Errorf("AuthSessionID() = %q, want %q", got, "auth-session-1")
	}

	unbound := call("/unbind", cookies).Result().Cookies()
	if got := call("/id", unbound).Body.String(); got != "" {
		t.Errorf("AuthSessionID() after Unbind = %q, want empty", got)
	}
}
