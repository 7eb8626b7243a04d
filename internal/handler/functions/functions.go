// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package functions serves the privileged account endpoints under
// /functions/v1. Every call except setup-admin verifies the bearer token
// and the admin role on the server.
package functions

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/firstsun-go/internal/auth"
	"github.com/olegiv/firstsun-go/internal/handler"
	"github.com/olegiv/firstsun-go/internal/middleware"
	"github.com/olegiv/firstsun-go/internal/model"
	"github.com/olegiv/firstsun-go/internal/validation"
)

// Response messages.
const (
	MsgUnauthorized  = "Unauthorized"
	MsgAdminRequired = "Forbidden: Admin access required"
	MsgAdminExists   = "Admin user already exists. This endpoint can only be used once."
	MsgAdminCreated  = "Admin user created successfully"
	MsgSetupDisabled = "Admin setup is not configured"
	MsgDeleteSelf    = "Cannot delete your own account"
	MsgEmailTaken    = "A user with this email address has already been registered"
	MsgInvalidBody   = "Invalid JSON body"
	msgUnexpected    = "Internal server error"
)

// Default per-IP limits for the functions endpoints.
const (
	defaultRateLimit  = 30
	defaultRateWindow = time.Minute
)

// Options configures the functions handler.
type Options struct {
	Auth *auth.Service

	// AdminEmail and AdminPassword are the bootstrap credentials used by
	// setup-admin. Empty values disable it.
	AdminEmail    string
	AdminPassword string

	CORSOrigins []string
	RateLimit   int
	RateWindow  time.Duration

	Logger *slog.Logger
}

// Handler serves the admin functions.
type Handler struct {
	auth          *auth.Service
	adminEmail    string
	adminPassword string
	corsOrigins   []string
	rateLimit     int
	rateWindow    time.Duration
	logger        *slog.Logger
}

// NewHandler creates a functions handler.
func NewHandler(opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}
	if opts.RateWindow <= 0 {
		opts.RateWindow = defaultRateWindow
	}
	return &Handler{
		auth:          opts.Auth,
		adminEmail:    opts.AdminEmail,
		adminPassword: opts.AdminPassword,
		corsOrigins:   opts.CORSOrigins,
		rateLimit:     opts.RateLimit,
		rateWindow:    opts.RateWindow,
		logger:        opts.Logger,
	}
}

// Register mounts the functions on r.
func (h *Handler) Register(r chi.Router) {
	r.Use(middleware.CORS(h.corsOrigins))
	r.Use(middleware.RateLimitByIP(h.rateLimit, h.rateWindow))

	r.Post(handler.FunctionSetupAdmin, h.SetupAdmin)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Get(handler.FunctionListUsers, h.ListUsers)
		r.Post(handler.FunctionListUsers, h.ListUsers)
		r.Post(handler.FunctionCreateUser, h.CreateUser)
		r.Post(handler.FunctionChangePassword, h.ChangePassword)
		r.Post(handler.FunctionDeleteUser, h.DeleteUser)
	})
}

// requireAdmin verifies the bearer token and the admin role. Cookie
// sessions are not accepted here. A failed role check denies access.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := middleware.BearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, MsgUnauthorized)
			return
		}

		ctx := r.Context()
		p, err := h.auth.VerifyAccessToken(ctx, token)
		if err != nil {
			h.logger.Debug("function call with invalid token", "error", err, "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, MsgUnauthorized)
			return
		}

		isAdmin, err := h.auth.HasRole(ctx, p.UserID, model.RoleAdmin)
		if err != nil {
			h.logger.Error("admin role check failed", "error", err, "user_id", p.UserID)
		}
		if err != nil || !isAdmin {
			h.logger.Warn("function call denied", "user_id", p.UserID, "path", r.URL.Path)
			writeError(w, http.StatusForbidden, MsgAdminRequired)
			return
		}

		next.ServeHTTP(w, r.WithContext(middleware.WithPrincipal(ctx, p)))
	})
}

// UserListResponse is the admin-list-users answer.
type UserListResponse struct {
	Users []model.User `json:"users"`
}

// SuccessResponse is the answer of the mutating functions.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Email   string      `json:"email,omitempty"`
	User    *model.User `json:"user,omitempty"`
}

// ListUsers handles GET and POST /admin-list-users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.auth.ListUsers(r.Context())
	if err != nil {
		h.unexpected(w, r, err)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	handler.WriteJSON(w, http.StatusOK, UserListResponse{Users: users})
}

// CreateUser handles POST /admin-create-user.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in model.CreateUserInput
	if !h.decode(w, r, &in) {
		return
	}

	user, err := h.auth.CreateUser(r.Context(), middleware.GetUserID(r), in)
	if err != nil {
		h.writeFailure(w, r, err, in.Email)
		return
	}
	handler.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true, User: &user})
}

// ChangePassword handles POST /admin-change-password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var in model.ChangePasswordInput
	if !h.decode(w, r, &in) {
		return
	}

	if err := h.auth.ChangePassword(r.Context(), middleware.GetUserID(r), in); err != nil {
		h.writeFailure(w, r, err, strings.TrimSpace(in.Email))
		return
	}
	handler.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// DeleteUser handles POST /admin-delete-user.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	var in model.DeleteUserInput
	if !h.decode(w, r, &in) {
		return
	}

	if err := h.auth.DeleteUser(r.Context(), middleware.GetUserID(r), in); err != nil {
		h.writeFailure(w, r, err, "")
		return
	}
	handler.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// SetupAdmin handles POST /setup-admin. It creates the first administrator
// from the configured bootstrap credentials.
func (h *Handler) SetupAdmin(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.SetupAdmin(r.Context(), h.adminEmail, h.adminPassword)
	switch {
	case err == nil:
		h.logger.Info("admin user created via setup", "email", user.Email, "ip", middleware.ClientIP(r))
		handler.WriteJSON(w, http.StatusOK, SuccessResponse{
			Success: true,
			Message: MsgAdminCreated,
			Email:   user.Email,
		})
	case errors.Is(err, auth.ErrAdminExists):
		writeError(w, http.StatusForbidden, MsgAdminExists)
	case errors.Is(err, auth.ErrSetupDisabled):
		writeError(w, http.StatusServiceUnavailable, MsgSetupDisabled)
	default:
		h.writeFailure(w, r, err, h.adminEmail)
	}
}

// decode reads the request body into dst and answers 400 on malformed JSON.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := handler.DecodeJSON(w, r, dst); err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidBody)
		return false
	}
	return true
}

// writeFailure maps account errors to responses. email is the address as
// the caller sent it.
func (h *Handler) writeFailure(w http.ResponseWriter, r *http.Request, err error, email string) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		handler.WriteJSONError(w, http.StatusBadRequest, verrs.Error(), verrs)
	case errors.Is(err, auth.ErrUserNotFound):
		if email != "" {
			writeError(w, http.StatusNotFound, fmt.Sprintf("User with email %s not found", email))
			return
		}
		writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, auth.ErrCannotDeleteSelf):
		writeError(w, http.StatusBadRequest, MsgDeleteSelf)
	case errors.Is(err, auth.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, MsgEmailTaken)
	default:
		h.unexpected(w, r, err)
	}
}

func (h *Handler) unexpected(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("function failed",
		"error", err,
		"path", r.URL.Path,
		"user_id", middleware.GetUserID(r),
	)
	writeError(w, http.StatusInternalServerError, msgUnexpected)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	handler.WriteJSONError(w, status, msg, nil)
}
