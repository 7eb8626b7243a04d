// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/olegiv/firstsun-go/internal/handler"
	"github.com/olegiv/firstsun-go/internal/handler/api"
	"github.com/olegiv/firstsun-go/internal/model"
)

// Resource is the dashboard CRUD surface of one content type.
type Resource[T any, In any] struct {
	c    *Client
	path string
}

// NewResource returns the resource served at /api/v1/dashboard/<path>.
func NewResource[T any, In any](c *Client, path string) *Resource[T, In] {
	return &Resource[T, In]{c: c, path: handler.RouteDashboard + path}
}

// List returns every row in server order.
func (r *Resource[T, In]) List(ctx context.Context) ([]T, error) {
	return getData[[]T](ctx, r.c, http.MethodGet, r.path, nil)
}

// Search returns the rows matching query in the request language.
func (r *Resource[T, In]) Search(ctx context.Context, query string) ([]T, error) {
	return getData[[]T](ctx, r.c, http.MethodGet, r.path+"?q="+url.QueryEscape(query), nil)
}

// Get returns one row.
func (r *Resource[T, In]) Get(ctx context.Context, id string) (T, error) {
	return getData[T](ctx, r.c, http.MethodGet, r.path+"/"+url.PathEscape(id), nil)
}

// Create adds a row.
func (r *Resource[T, In]) Create(ctx context.Context, in In) (T, error) {
	return getData[T](ctx, r.c, http.MethodPost, r.path, in)
}

// Update replaces the editable fields of a row.
func (r *Resource[T, In]) Update(ctx context.Context, id string, in In) (T, error) {
	return getData[T](ctx, r.c, http.MethodPut, r.path+"/"+url.PathEscape(id), in)
}

// Delete removes a row.
func (r *Resource[T, In]) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, handler.RouteAPI+r.path+"/"+url.PathEscape(id), nil, nil)
}

// Products returns the product manager resource.
func (c *Client) Products() *Resource[model.Product, model.ProductInput] {
	return NewResource[model.Product, model.ProductInput](c, handler.RouteProducts)
}

// Partners returns the partner manager resource.
func (c *Client) Partners() *Resource[model.Partner, model.PartnerInput] {
	return NewResource[model.Partner, model.PartnerInput](c, handler.RoutePartners)
}

// Articles returns the article manager resource.
func (c *Client) Articles() *Resource[model.Article, model.ArticleInput] {
	return NewResource[model.Article, model.ArticleInput](c, handler.RouteArticles)
}

// Gallery returns the gallery manager resource.
func (c *Client) Gallery() *Resource[model.GalleryItem, model.GalleryItemInput] {
	return NewResource[model.GalleryItem, model.GalleryItemInput](c, handler.RouteGallery)
}

// Translations returns the translation manager resource.
func (c *Client) Translations() *Resource[model.Translation, model.TranslationInput] {
	return NewResource[model.Translation, model.TranslationInput](c, handler.RouteTranslations)
}

// Overview returns the dashboard summary.
func (c *Client) Overview(ctx context.Context) (api.Overview, error) {
	return getData[api.Overview](ctx, c, http.MethodGet, handler.RouteDashboard+handler.RouteOverview, nil)
}

// SaveSiteContent creates or replaces a site content section.
func (c *Client) SaveSiteContent(ctx context.Context, section, content string) (model.SiteContent, error) {
	return getData[model.SiteContent](ctx, c, http.MethodPut,
		handler.RouteDashboard+handler.RouteSiteContent+"/"+url.PathEscape(section),
		map[string]string{"content": content})
}

// PublicTranslations returns the editable translation rows without
// authentication.
func (c *Client) PublicTranslations(ctx context.Context) ([]model.Translation, error) {
	return getData[[]model.Translation](ctx, c, http.MethodGet, handler.RouteTranslations, nil)
}

// Bundle returns the merged translation table for lang.
func (c *Client) Bundle(ctx context.Context, lang string) (map[string]string, error) {
	return getData[map[string]string](ctx, c, http.MethodGet, handler.RouteI18n+"/"+url.PathEscape(lang), nil)
}

// PublishedArticles returns published articles, newest first. limit <= 0
// uses the server default.
func (c *Client) PublishedArticles(ctx context.Context, limit int) ([]model.LocalizedArticle, error) {
	path := handler.RouteArticles
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	return getData[[]model.LocalizedArticle](ctx, c, http.MethodGet, path, nil)
}
