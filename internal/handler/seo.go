// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/olegiv/firstsun-go/internal/model"
	"github.com/olegiv/firstsun-go/internal/seo"
)

// PublishedArticles lists articles for the sitemap.
// *content.ArticleService implements it.
type PublishedArticles interface {
	ListPublished(ctx context.Context, query, lang string, limit int) ([]model.Article, error)
}

// SEOHandler serves robots.txt and sitemap.xml.
type SEOHandler struct {
	articles    PublishedArticles
	siteURL     string
	disallowAll bool
	logger      *slog.Logger
}

// NewSEOHandler creates the crawler file handler. An empty siteURL is
// taken from each request. disallowAll blocks every crawler.
func NewSEOHandler(articles PublishedArticles, siteURL string, disallowAll bool, logger *slog.Logger) *SEOHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SEOHandler{articles: articles, siteURL: siteURL, disallowAll: disallowAll, logger: logger}
}

// Robots serves robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	body := seo.NewRobotsBuilder(seo.RobotsConfig{
		SiteURL:     h.baseURL(r),
		DisallowAll: h.disallowAll,
	}).Build()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(body))
}

// Sitemap serves the sitemap of the public pages and published articles.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.ListPublished(r.Context(), "", model.DefaultLanguage, 0)
	if err != nil {
		h.logger.Error("failed to list articles for sitemap", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	b := seo.NewSitemapBuilder(h.baseURL(r))
	b.AddStaticPages(seo.LatestUpdate(articles))
	b.AddArticles(articles)
	data, err := b.Build()
	if err != nil {
		h.logger.Error("failed to build sitemap", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}

func (h *SEOHandler) baseURL(r *http.Request) string {
	if h.siteURL != "" {
		return h.siteURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
