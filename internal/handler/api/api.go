// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST API: public site content, accounts and
// the dashboard content managers.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/firstsun-go/internal/auth"
	"github.com/olegiv/firstsun-go/internal/content"
	"github.com/olegiv/firstsun-go/internal/handler"
	"github.com/olegiv/firstsun-go/internal/i18n"
	"github.com/olegiv/firstsun-go/internal/middleware"
	"github.com/olegiv/firstsun-go/internal/model"
	"github.com/olegiv/firstsun-go/internal/service"
	"github.com/olegiv/firstsun-go/internal/validation"
)

// Options holds the services behind the API.
type Options struct {
	Auth            *auth.Service
	Sessions        *scs.SessionManager // optional; enables cookie sessions
	LoginProtection *middleware.LoginProtection
	Catalog         *i18n.Catalog

	Products     *content.Service[model.Product, model.ProductInput]
	Partners     *content.Service[model.Partner, model.PartnerInput]
	Gallery      *content.Service[model.GalleryItem, model.GalleryItemInput]
	Translations *content.TranslationService
	Articles     *content.ArticleService
	SiteContent  *content.SiteContentService
	Events       *service.EventService // optional; enables the audit log

	Logger *slog.Logger
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	auth     *auth.Service
	sessions *scs.SessionManager
	login    *middleware.LoginProtection
	catalog  *i18n.Catalog

	products     *content.Service[model.Product, model.ProductInput]
	partners     *content.Service[model.Partner, model.PartnerInput]
	gallery      *content.Service[model.GalleryItem, model.GalleryItemInput]
	translations *content.TranslationService
	articles     *content.ArticleService
	siteContent  *content.SiteContentService
	events       *service.EventService

	logger *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.LoginProtection == nil {
		opts.LoginProtection = middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	}
	return &Handler{
		auth:         opts.Auth,
		sessions:     opts.Sessions,
		login:        opts.LoginProtection,
		catalog:      opts.Catalog,
		products:     opts.Products,
		partners:     opts.Partners,
		gallery:      opts.Gallery,
		translations: opts.Translations,
		articles:     opts.Articles,
		siteContent:  opts.SiteContent,
		events:       opts.Events,
		logger:       opts.Logger,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta carries the language the data was localized for and list totals.
type Meta struct {
	Lang  string `json:"lang"`
	Dir   string `json:"dir"`
	Total *int   `json:"total,omitempty"`
}

// metaFor returns the request language as response metadata.
func metaFor(r *http.Request) *Meta {
	info := middleware.GetLanguage(r)
	return &Meta{Lang: info.Code, Dir: info.Dir}
}

// WriteSuccess writes a 200 response with the request language in meta.
func WriteSuccess(w http.ResponseWriter, r *http.Request, data any) {
	handler.WriteJSON(w, http.StatusOK, Response{Data: data, Meta: metaFor(r)})
}

// WriteList writes a 200 list response with the item count in meta.
func WriteList[T any](w http.ResponseWriter, r *http.Request, items []T) {
	if items == nil {
		items = []T{}
	}
	meta := metaFor(r)
	total := len(items)
	meta.Total = &total
	handler.WriteJSON(w, http.StatusOK, Response{Data: items, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, r *http.Request, data any) {
	handler.WriteJSON(w, http.StatusCreated, Response{Data: data, Meta: metaFor(r)})
}

// WriteDeleted writes {"success": true}.
func WriteDeleted(w http.ResponseWriter) {
	handler.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// WriteError writes {"error": message}.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	handler.WriteJSONError(w, statusCode, message, nil)
}

// WriteValidationError writes a 400 response listing every field error.
func WriteValidationError(w http.ResponseWriter, errs validation.Errors) {
	handler.WriteJSONError(w, http.StatusBadRequest, errs.Error(), errs)
}

// writeServiceError maps service errors to responses. what names the
// record in not-found and conflict messages, e.g. "Product".
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, what string) {
	writeServiceError(w, r, h.logger, err, what)
}

func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, what string) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		WriteValidationError(w, verrs)
	case errors.Is(err, handler.ErrInvalidJSON):
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
	case errors.Is(err, content.ErrNotFound):
		WriteError(w, http.StatusNotFound, what+" not found")
	case errors.Is(err, content.ErrConflict):
		WriteError(w, http.StatusConflict, what+" already exists")
	case errors.Is(err, auth.ErrEmailTaken):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrUserNotFound):
		WriteError(w, http.StatusNotFound, "User not found")
	case auth.IsUnauthenticated(err):
		WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrInvalidRole):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"user_id", middleware.GetUserID(r),
		)
		WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
