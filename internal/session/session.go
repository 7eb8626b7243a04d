// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the cookie session manager that lets browser
// dashboard calls reuse a sign-in without sending a bearer token.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// KeyAuthSession holds the id of the auth session bound to the cookie.
const KeyAuthSession = "auth_session_id"

// DefaultLifetime is the cookie session lifetime.
const DefaultLifetime = 24 * time.Hour

// New creates a session manager backed by the sessions table.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = DefaultLifetime
	sm.IdleTimeout = 2 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev
	sm.Cookie.Name = "fsun_session"
	if !isDev {
		sm.Cookie.Name = "__Host-fsun_session"
	}
	return sm
}

// Bind renews the session token and stores the auth session id.
func Bind(ctx context.Context, sm *scs.SessionManager, authSessionID string) error {
	if err := sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	sm.Put(ctx, KeyAuthSession, authSessionID)
	return nil
}

// Unbind removes the auth session id and renews the token.
func Unbind(ctx context.Context, sm *scs.SessionManager) error {
	sm.Remove(ctx, KeyAuthSession)
	if err := sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	return nil
}

// AuthSessionID returns the bound auth session id, or an empty string.
func AuthSessionID(ctx context.Context, sm *scs.SessionManager) string {
	return sm.GetString(ctx, KeyAuthSession)
}
