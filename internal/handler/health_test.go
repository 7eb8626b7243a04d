// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/olegiv/firstsun-go/internal/auth"
	"github.com/olegiv/firstsun-go/internal/cache"
	"github.com/olegiv/firstsun-go/internal/middleware"
	"github.com/olegiv/firstsun-go/internal/testutil"
	"github.com/olegiv/firstsun-go/internal/version"
)

type adminRoles map[string]bool

func (a adminRoles) HasRole(_ context.Context, userID, role string) (bool, error) {
	return role == "admin" && a[userID], nil
}

func newTestHealthHandler(t *testing.T) *HealthHandler {
	t.Helper()
	db := testutil.TestDB(t)
	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute, CleanupInterval: time.Minute})
	t.Cleanup(func() { _ = c.Close() })
	return NewHealthHandler(db, c, adminRoles{"admin-1": true}, version.Info{Version: "v1.0.0"})
}

func withUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(middleware.WithPrincipal(r.Context(), auth.Principal{UserID: userID}))
}

func TestHealth_Anonymous(t *testing.T) {
	h := newTestHealthHandler(t)

	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, RouteHealth, nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var body map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
	if _, ok := body["checks"]; ok {
		t.Error("anonymous response must not include checks")
	}
}

func TestHealth_AdminDetails(t *testing.T) {
	h := newTestHealthHandler(t)

	req := withUser(httptest.NewRequest(http.MethodGet, RouteHealth+"?verbose=true", nil), "admin-1")
	rr := httptest.NewRecorder()
	h.Health(rr, req)

	var status HealthStatus
	if err := json.NewDecoder(rr.Body).Decode(&status); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if status.Checks["database"].Status != "healthy" {
		t.Errorf("database check = %+v", status.Checks["database"])
	}
	if status.Checks["cache"].Status != "healthy" {
		t.Errorf("cache check = %+v", status.Checks["cache"])
	}
	if status.Version.Version != "v1.0.0" {
		t.Errorf("version = %q, want v1.0.0", status.Version.Version)
	}
	if status.System == nil {
		t.Error("verbose admin response should include system info")
	}
}

func TestHealth_EditorGetsPublicView(t *testing.T) {
	h := newTestHealthHandler(t)

	req := withUser(httptest.NewRequest(http.MethodGet, RouteHealth, nil), "editor-1")
	rr := httptest.NewRecorder()
	h.Health(rr, req)

	var body map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if _, ok := body["checks"]; ok {
		t.Error("non-admin response must not include checks")
	}
}

func TestLivenessAndReadiness(t *testing.T) {
	h := newTestHealthHandler(t)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{"live", h.Liveness, "alive"},
		{"ready", h.Readiness, "ready"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tt.handler(rr, httptest.NewRequest(http.MethodGet, "/", nil))
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
			}
			var body map[string]string
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if body["status"] != tt.want {
				t.Errorf("status = %q, want %q", body["status"], tt.want)
			}
		})
	}
}

func TestReadiness_ClosedDB(t *testing.T) {
	h := newTestHealthHandler(t)
	_ = h.db.Close()

	rr := httptest.NewRecorder()
	h.Readiness(rr, httptest.NewRequest(http.MethodGet, RouteHealthReady, nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{512, "512 B"},
		{2048, "2.00 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
