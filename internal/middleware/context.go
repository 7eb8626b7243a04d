// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request context handling.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/olegiv/firstsun-go/internal/auth"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request data.
const (
	ContextKeyPrincipal ContextKey = "principal"
	ContextKeyRoles     ContextKey = "roles"
	ContextKeyLanguage  ContextKey = "language"
)

// WithPrincipal returns ctx carrying p.
func WithPrincipal(ctx context.Context, p auth.Principal) context.Context {
	return context.WithValue(ctx, ContextKeyPrincipal, p)
}

// GetPrincipal returns the authenticated principal, if any.
func GetPrincipal(r *http.Request) (auth.Principal, bool) {
	p, ok := r.Context().Value(ContextKeyPrincipal).(auth.Principal)
	return p, ok
}

// GetUserID returns the authenticated user's id, or an empty string.
func GetUserID(r *http.Request) string {
	if p, ok := GetPrincipal(r); ok {
		return p.UserID
	}
	return ""
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// WriteError writes {"error": message} with the given status.
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
