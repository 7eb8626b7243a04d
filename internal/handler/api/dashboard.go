// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/olegiv/firstsun-go/internal/handler"
	"github.com/olegiv/firstsun-go/internal/middleware"
	"github.com/olegiv/firstsun-go/internal/model"
)

// overviewRecent is the number of latest products and articles shown.
const overviewRecent = 5

// Audit log page sizes.
const (
	defaultEventLimit = 50
	maxEventLimit     = 200
)

// Counts are the dashboard record totals.
type Counts struct {
	Products     int64 `json:"products"`
	Partners     int64 `json:"partners"`
	Articles     int64 `json:"articles"`
	Gallery      int64 `json:"gallery"`
	Translations int64 `json:"translations"`
	Users        int64 `json:"users,omitempty"`
}

// Overview is the dashboard landing summary.
type Overview struct {
	Counts         Counts               `json:"counts"`
	RecentProducts []model.Product      `json:"recent_products"`
	RecentArticles []model.Article      `json:"recent_articles"`
	Roles          middleware.RoleFlags `json:"roles"`
}

// Overview handles GET /api/v1/dashboard/overview. The user count is only
// filled in for administrators.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	roles := middleware.GetRoles(r)
	ov := Overview{Roles: roles}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { ov.Counts.Products, err = h.products.Count(gctx); return })
	g.Go(func() (err error) { ov.Counts.Partners, err = h.partners.Count(gctx); return })
	g.Go(func() (err error) { ov.Counts.Articles, err = h.articles.Count(gctx); return })
	g.Go(func() (err error) { ov.Counts.Gallery, err = h.gallery.Count(gctx); return })
	g.Go(func() (err error) { ov.Counts.Translations, err = h.translations.Count(gctx); return })
	g.Go(func() (err error) { ov.RecentProducts, err = h.products.Recent(gctx, overviewRecent); return })
	g.Go(func() (err error) { ov.RecentArticles, err = h.articles.Recent(gctx, overviewRecent); return })
	if roles.IsAdmin {
		g.Go(func() (err error) { ov.Counts.Users, err = h.auth.CountUsers(gctx); return })
	}
	if err := g.Wait(); err != nil {
		h.writeServiceError(w, r, err, "Overview")
		return
	}

	if ov.RecentProducts == nil {
		ov.RecentProducts = []model.Product{}
	}
	if ov.RecentArticles == nil {
		ov.RecentArticles = []model.Article{}
	}
	WriteSuccess(w, r, ov)
}

// SiteContentRequest is the body of PUT /dashboard/site-content/{section}.
// Content is either the JSON document itself or a string holding it.
type SiteContentRequest struct {
	Content json.RawMessage `json:"content"`
}

// text returns the document as JSON text.
func (req SiteContentRequest) text() string {
	var s string
	if err := json.Unmarshal(req.Content, &s); err == nil {
		return s
	}
	return string(req.Content)
}

// ListSiteContent handles GET /api/v1/dashboard/site-content.
func (h *Handler) ListSiteContent(w http.ResponseWriter, r *http.Request) {
	sections, err := h.siteContent.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Section")
		return
	}
	WriteList(w, r, sections)
}

// SaveSiteContent handles PUT /api/v1/dashboard/site-content/{section},
// creating the section when it does not exist.
func (h *Handler) SaveSiteContent(w http.ResponseWriter, r *http.Request) {
	var req SiteContentRequest
	if err := handler.DecodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, err, "Section")
		return
	}

	in := model.SiteContentInput{Section: chi.URLParam(r, "section"), Content: req.text()}
	sc, err := h.siteContent.Upsert(r.Context(), middleware.GetUserID(r), in)
	if err != nil {
		h.writeServiceError(w, r, err, "Section")
		return
	}
	WriteSuccess(w, r, sc)
}

// DeleteSiteContent handles DELETE /api/v1/dashboard/site-content/{section}.
func (h *Handler) DeleteSiteContent(w http.ResponseWriter, r *http.Request) {
	if err := h.siteContent.Delete(r.Context(), middleware.GetUserID(r), chi.URLParam(r, "section")); err != nil {
		h.writeServiceError(w, r, err, "Section")
		return
	}
	WriteDeleted(w)
}

// ListEvents handles GET /api/v1/dashboard/events, the newest audit events.
// Query parameters:
//   - category: auth, user, content, translation, system or cache
//   - limit: page size (1-200, default 50)
//   - offset: events to skip
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, offset := defaultEventLimit, 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteError(w, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = min(n, maxEventLimit)
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteError(w, http.StatusBadRequest, "offset must not be negative")
			return
		}
		offset = n
	}

	events, err := h.events.ListEvents(r.Context(), q.Get("category"), int64(limit), int64(offset))
	if err != nil {
		h.writeServiceError(w, r, err, "Events")
		return
	}
	WriteList(w, r, events)
}
