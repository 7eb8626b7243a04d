// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/olegiv/firstsun-go/internal/auth"
	"github.com/olegiv/firstsun-go/internal/handler"
	"github.com/olegiv/firstsun-go/internal/middleware"
	"github.com/olegiv/firstsun-go/internal/model"
	"github.com/olegiv/firstsun-go/internal/session"
)

// SignUpMessage is returned after a successful registration.
const SignUpMessage = "Account created! You can now sign in."

// RefreshRequest is the body of POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// HasRoleRequest is the body of POST /rpc/has_role.
type HasRoleRequest struct {
	UserID string `json:"_user_id"`
	Role   string `json:"_role"`
}

// SignUpResponse is returned by POST /auth/signup.
type SignUpResponse struct {
	User    model.User `json:"user"`
	Message string     `json:"message"`
}

// SignUp handles POST /api/v1/auth/signup. The new account holds no role.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var in model.CredentialsInput
	if err := handler.DecodeJSON(w, r, &in); err != nil {
		h.writeServiceError(w, r, err, "User")
		return
	}

	user, err := h.auth.SignUp(r.Context(), in.Email, in.Password)
	if err != nil {
		h.writeServiceError(w, r, err, "User")
		return
	}
	WriteCreated(w, r, SignUpResponse{User: user, Message: SignUpMessage})
}

// SignIn handles POST /api/v1/auth/signin. Failed attempts count towards
// an account lockout. On success the session is also bound to the cookie
// session so browser requests work without a bearer token.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var in model.CredentialsInput
	if err := handler.DecodeJSON(w, r, &in); err != nil {
		h.writeServiceError(w, r, err, "User")
		return
	}
	email := model.NormalizeEmail(in.Email)

	if locked, remaining := h.login.IsAccountLocked(email); locked {
		writeLocked(w, remaining)
		return
	}

	client := auth.ClientInfo{UserAgent: r.UserAgent(), IPAddress: middleware.ClientIP(r)}
	sess, err := h.auth.SignIn(r.Context(), email, in.Password, client)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			if locked, d := h.login.RecordFailedAttempt(email); locked {
				writeLocked(w, d)
				return
			}
			WriteError(w, http.StatusBadRequest, "Invalid login credentials")
			return
		}
		h.writeServiceError(w, r, err, "User")
		return
	}
	h.login.RecordSuccessfulLogin(email)

	if h.sessions != nil {
		if err := session.Bind(r.Context(), h.sessions, sess.SessionID); err != nil {
			h.logger.Warn("failed to bind cookie session", "user_id", sess.User.ID, "error", err)
		}
	}
	WriteSuccess(w, r, sess)
}

func writeLocked(w http.ResponseWriter, remaining time.Duration) {
	WriteError(w, http.StatusTooManyRequests,
		fmt.Sprintf("Account temporarily locked. Try again in %s.", remaining.Round(time.Second)))
}

// SignOut handles POST /api/v1/auth/signout?scope=global|local. The default
// scope signs out every session of the user.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.GetPrincipal(r)

	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = auth.ScopeGlobal
	}
	if scope != auth.ScopeGlobal && scope != auth.ScopeLocal {
		WriteError(w, http.StatusBadRequest, "scope must be one of: global, local")
		return
	}

	err := h.auth.SignOut(r.Context(), p, scope)
	if h.sessions != nil {
		if uerr := session.Unbind(r.Context(), h.sessions); uerr != nil {
			h.logger.Warn("failed to unbind cookie session", "user_id", p.UserID, "error", uerr)
		}
	}
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			WriteError(w, http.StatusNotFound, auth.ErrSessionNotFound.Error())
			return
		}
		h.writeServiceError(w, r, err, "Session")
		return
	}
	WriteDeleted(w)
}

// Refresh handles POST /api/v1/auth/refresh.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := handler.DecodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, err, "Session")
		return
	}

	sess, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.writeServiceError(w, r, err, "Session")
		return
	}
	WriteSuccess(w, r, sess)
}

// CurrentUser handles GET /api/v1/auth/user.
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.GetUser(r.Context(), middleware.GetUserID(r))
	if err != nil {
		h.writeServiceError(w, r, err, "User")
		return
	}
	WriteSuccess(w, r, user)
}

// HasRole handles POST /api/v1/rpc/has_role and answers with a bare JSON
// boolean. Only administrators may ask about other users.
func (h *Handler) HasRole(w http.ResponseWriter, r *http.Request) {
	var req HasRoleRequest
	if err := handler.DecodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, err, "Role")
		return
	}

	callerID := middleware.GetUserID(r)
	if req.UserID == "" {
		req.UserID = callerID
	}
	if req.UserID != callerID {
		isAdmin, err := h.auth.HasRole(r.Context(), callerID, model.RoleAdmin)
		if err != nil || !isAdmin {
			WriteError(w, http.StatusForbidden, "Forbidden")
			return
		}
	}

	ok, err := h.auth.HasRole(r.Context(), req.UserID, req.Role)
	if err != nil {
		h.writeServiceError(w, r, err, "Role")
		return
	}
	handler.WriteJSON(w, http.StatusOK, ok)
}
