// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"golang.org/x/sync/errgroup"

	"github.com/olegiv/firstsun-go/internal/auth"
	"github.com/olegiv/firstsun-go/internal/model"
	"github.com/olegiv/firstsun-go/internal/session"
)

// Verifier resolves bearer tokens and bound cookie sessions to principals.
type Verifier interface {
	VerifyAccessToken(ctx context.Context, token string) (auth.Principal, error)
	SessionPrincipal(ctx context.Context, sessionID string) (auth.Principal, error)
}

// RoleChecker answers has_role queries.
type RoleChecker interface {
	HasRole(ctx context.Context, userID, role string) (bool, error)
}

// RoleFlags are the resolved dashboard roles of the current user.
type RoleFlags struct {
	IsAdmin  bool `json:"is_admin"`
	IsEditor bool `json:"is_editor"`
}

// HasAccess reports whether the user may use the dashboard.
func (f RoleFlags) HasAccess() bool {
	return model.HasAccess(f.IsAdmin, f.IsEditor)
}

// Authenticate loads the principal from a bearer token, or from the auth
// session bound to the cookie session when no bearer token is sent.
// Requests without valid credentials continue anonymously.
func Authenticate(v Verifier, sm *scs.SessionManager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if token := BearerToken(r); token != "" {
				p, err := v.VerifyAccessToken(ctx, token)
				if err != nil {
					logger.Debug("bearer token rejected", "error", err, "path", r.URL.Path)
					next.ServeHTTP(w, r)
					return
				}
				next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, p)))
				return
			}

			if sm == nil {
				next.ServeHTTP(w, r)
				return
			}
			sid := session.AuthSessionID(ctx, sm)
			if sid == "" {
				next.ServeHTTP(w, r)
				return
			}
			p, err := v.SessionPrincipal(ctx, sid)
			if err != nil {
				// Revoked or expired session; unbind it.
				sm.Remove(ctx, session.KeyAuthSession)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, p)))
		})
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetPrincipal(r); !ok {
			WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ResolveRoles runs the admin and editor checks concurrently. A failed
// check counts as not having the role.
func ResolveRoles(ctx context.Context, checker RoleChecker, userID string, logger *slog.Logger) RoleFlags {
	var flags RoleFlags
	g, gctx := errgroup.WithContext(ctx)
	check := func(role string, dst *bool) {
		g.Go(func() error {
			ok, err := checker.HasRole(gctx, userID, role)
			if err != nil {
				logger.Warn("role check failed", "user_id", userID, "role", role, "error", err)
				return nil
			}
			*dst = ok
			return nil
		})
	}
	check(model.RoleAdmin, &flags.IsAdmin)
	check(model.RoleEditor, &flags.IsEditor)
	_ = g.Wait()
	return flags
}

// GetRoles returns the roles resolved by RequireAccess or RequireAdmin.
func GetRoles(r *http.Request) RoleFlags {
	flags, _ := r.Context().Value(ContextKeyRoles).(RoleFlags)
	return flags
}

// RequireAccess admits admins and editors. It must run after Authenticate.
func RequireAccess(checker RoleChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return requireRoles(checker, logger, RoleFlags.HasAccess,
		"Forbidden: Dashboard access requires admin or editor role")
}

// RequireAdmin admits admins only. It must run after Authenticate.
func RequireAdmin(checker RoleChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return requireRoles(checker, logger, func(f RoleFlags) bool { return f.IsAdmin },
		"Forbidden: Admin access required")
}

func requireRoles(checker RoleChecker, logger *slog.Logger, allow func(RoleFlags) bool, denied string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := GetPrincipal(r)
			if !ok {
				WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			flags, cached := r.Context().Value(ContextKeyRoles).(RoleFlags)
			if !cached {
				flags = ResolveRoles(r.Context(), checker, p.UserID, logger)
			}
			if !allow(flags) {
				logger.Warn("access denied", "user_id", p.UserID, "path", r.URL.Path)
				WriteError(w, http.StatusForbidden, denied)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyRoles, flags)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
