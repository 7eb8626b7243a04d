// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/firstsun-go/internal/handler"
	"github.com/olegiv/firstsun-go/internal/middleware"
	"github.com/olegiv/firstsun-go/internal/model"
)

// maxListLimit caps the limit query parameter.
const maxListLimit = 100

// ListProducts handles GET /api/v1/products.
// Query parameters:
//   - category: English badge to filter by; "All Products" or empty disables it
//   - q: search over name, description and badge in the request language
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Product")
		return
	}

	lang := middleware.GetLang(r)
	category := r.URL.Query().Get("category")
	query := r.URL.Query().Get("q")

	out := make([]model.LocalizedProduct, 0, len(products))
	for _, p := range products {
		if p.InCategory(category) && p.Matches(query, lang) {
			out = append(out, p.Localize(lang))
		}
	}
	WriteList(w, r, out)
}

// ListPartners handles GET /api/v1/partners.
func (h *Handler) ListPartners(w http.ResponseWriter, r *http.Request) {
	partners, err := h.partners.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Partner")
		return
	}
	WriteList(w, r, partners)
}

// ListGallery handles GET /api/v1/gallery. Titles and descriptions are
// resolved through the translation catalog. ?category= filters by category.
func (h *Handler) ListGallery(w http.ResponseWriter, r *http.Request) {
	items, err := h.gallery.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Gallery item")
		return
	}

	lang := middleware.GetLang(r)
	category := r.URL.Query().Get("category")

	out := make([]model.LocalizedGalleryItem, 0, len(items))
	for _, it := range items {
		if category != "" && !strings.EqualFold(it.Category, category) {
			continue
		}
		out = append(out, model.LocalizedGalleryItem{
			GalleryItem: it,
			Title:       h.catalog.T(lang, it.TitleKey),
			Description: h.catalog.T(lang, it.DescriptionKey),
		})
	}
	WriteList(w, r, out)
}

// ListArticles handles GET /api/v1/articles. Only published articles are
// listed, newest first.
// Query parameters:
//   - q: search over title and excerpt in the request language
//   - limit: maximum number of articles (1-100)
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteError(w, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = min(n, maxListLimit)
	}

	lang := middleware.GetLang(r)
	articles, err := h.articles.ListPublished(r.Context(), r.URL.Query().Get("q"), lang, limit)
	if err != nil {
		h.writeServiceError(w, r, err, "Article")
		return
	}

	out := make([]model.LocalizedArticle, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.Localize(lang))
	}
	WriteList(w, r, out)
}

// GetArticle handles GET /api/v1/articles/{idOrSlug}.
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	a, err := h.articles.GetPublished(r.Context(), chi.URLParam(r, "idOrSlug"), middleware.GetLang(r))
	if err != nil {
		h.writeServiceError(w, r, err, "Article")
		return
	}
	WriteSuccess(w, r, a)
}

// GetSiteContent handles GET /api/v1/site-content/{section}.
func (h *Handler) GetSiteContent(w http.ResponseWriter, r *http.Request) {
	sc, err := h.siteContent.Get(r.Context(), chi.URLParam(r, "section"))
	if err != nil {
		h.writeServiceError(w, r, err, "Section")
		return
	}
	WriteSuccess(w, r, sc)
}

// GetBundle handles GET /api/v1/i18n/{lang}: every key resolved for lang,
// database rows included.
func (h *Handler) GetBundle(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")
	if !model.IsSupportedLanguage(lang) {
		WriteError(w, http.StatusNotFound, "Unsupported language")
		return
	}
	meta := &Meta{Lang: lang, Dir: model.Direction(lang)}
	handler.WriteJSON(w, http.StatusOK, Response{Data: h.catalog.Bundle(lang), Meta: meta})
}

// ListTranslations handles GET /api/v1/translations.
func (h *Handler) ListTranslations(w http.ResponseWriter, r *http.Request) {
	rows, err := h.translations.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Translation")
		return
	}
	WriteList(w, r, rows)
}
