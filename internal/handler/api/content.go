// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/firstsun-go/internal/handler"
	"github.com/olegiv/firstsun-go/internal/middleware"
)

// Record is a content row the dashboard can search.
type Record interface {
	RecordID() string
	Matches(query, lang string) bool
}

// ContentService is the CRUD surface of a content.Service.
type ContentService[T any, In any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, actorID string, in In) (T, error)
	Update(ctx context.Context, actorID, id string, in In) (T, error)
	Delete(ctx context.Context, actorID, id string) error
}

// ContentHandler serves dashboard CRUD for one resource. Every write is
// validated by the service, whatever the client checked.
type ContentHandler[T Record, In any] struct {
	svc    ContentService[T, In]
	label  string
	logger *slog.Logger
}

// NewContentHandler creates a handler. label names the record in error
// messages, e.g. "Product".
func NewContentHandler[T Record, In any](svc ContentService[T, In], label string, logger *slog.Logger) *ContentHandler[T, In] {
	return &ContentHandler[T, In]{svc: svc, label: label, logger: logger}
}

// List handles GET /. ?q= filters over the resource's search fields in
// the request language.
func (h *ContentHandler[T, In]) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err, h.label)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		WriteList(w, r, rows)
		return
	}
	lang := middleware.GetLang(r)
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if row.Matches(query, lang) {
			out = append(out, row)
		}
	}
	WriteList(w, r, out)
}

// Get handles GET /{id}.
func (h *ContentHandler[T, In]) Get(w http.ResponseWriter, r *http.Request) {
	row, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err, h.label)
		return
	}
	WriteSuccess(w, r, row)
}

// Create handles POST /.
func (h *ContentHandler[T, In]) Create(w http.ResponseWriter, r *http.Request) {
	var in In
	if err := handler.DecodeJSON(w, r, &in); err != nil {
		writeServiceError(w, r, h.logger, err, h.label)
		return
	}

	row, err := h.svc.Create(r.Context(), middleware.GetUserID(r), in)
	if err != nil {
		writeServiceError(w, r, h.logger, err, h.label)
		return
	}
	WriteCreated(w, r, row)
}

// Update handles PUT /{id}. The body carries the full form.
func (h *ContentHandler[T, In]) Update(w http.ResponseWriter, r *http.Request) {
	var in In
	if err := handler.DecodeJSON(w, r, &in); err != nil {
		writeServiceError(w, r, h.logger, err, h.label)
		return
	}

	row, err := h.svc.Update(r.Context(), middleware.GetUserID(r), chi.URLParam(r, "id"), in)
	if err != nil {
		writeServiceError(w, r, h.logger, err, h.label)
		return
	}
	WriteSuccess(w, r, row)
}

// Delete handles DELETE /{id}.
func (h *ContentHandler[T, In]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), middleware.GetUserID(r), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, h.logger, err, h.label)
		return
	}
	WriteDeleted(w)
}

// registerCRUD registers the standard routes for a resource.
// Routes: GET /, POST /, GET /{id}, PUT /{id}, DELETE /{id}
func registerCRUD[T Record, In any](r chi.Router, base string, h *ContentHandler[T, In]) {
	r.Get(base, h.List)
	r.Post(base, h.Create)
	r.Get(base+handler.RouteParamID, h.Get)
	r.Put(base+handler.RouteParamID, h.Update)
	r.Delete(base+handler.RouteParamID, h.Delete)
}
