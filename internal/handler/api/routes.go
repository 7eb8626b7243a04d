// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/firstsun-go/internal/handler"
	"github.com/olegiv/firstsun-go/internal/middleware"
	"github.com/olegiv/firstsun-go/internal/model"
)

// Register mounts the API routes on r. The caller installs session
// loading, language resolution and middleware.Authenticate before it.
func (h *Handler) Register(r chi.Router) {
	// Public site content
	r.Get(handler.RouteProducts, h.ListProducts)
	r.Get(handler.RoutePartners, h.ListPartners)
	r.Get(handler.RouteGallery, h.ListGallery)
	r.Get(handler.RouteArticles, h.ListArticles)
	r.Get(handler.RouteArticles+handler.RouteParamIDOrSlug, h.GetArticle)
	r.Get(handler.RouteSiteContent+handler.RouteParamSection, h.GetSiteContent)
	r.Get(handler.RouteI18n+handler.RouteParamLang, h.GetBundle)
	r.Get(handler.RouteTranslations, h.ListTranslations)

	// Accounts
	r.Route(handler.RouteAuth, func(r chi.Router) {
		r.With(h.login.Middleware()).Post(handler.RouteSignUp, h.SignUp)
		r.With(h.login.Middleware()).Post(handler.RouteSignIn, h.SignIn)
		r.Post(handler.RouteRefresh, h.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post(handler.RouteSignOut, h.SignOut)
			r.Get(handler.RouteUser, h.CurrentUser)
		})
	})
	r.With(middleware.RequireAuth).Post(handler.RouteHasRole, h.HasRole)

	// Dashboard (admin or editor)
	r.Route(handler.RouteDashboard, func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireAccess(h.auth, h.logger))

		r.Get(handler.RouteOverview, h.Overview)
		if h.events != nil {
			r.With(middleware.RequireAdmin(h.auth, h.logger)).Get(handler.RouteEvents, h.ListEvents)
		}

		registerCRUD(r, handler.RouteProducts, NewContentHandler[model.Product, model.ProductInput](h.products, "Product", h.logger))
		registerCRUD(r, handler.RoutePartners, NewContentHandler[model.Partner, model.PartnerInput](h.partners, "Partner", h.logger))
		registerCRUD(r, handler.RouteArticles, NewContentHandler[model.Article, model.ArticleInput](h.articles, "Article", h.logger))
		registerCRUD(r, handler.RouteGallery, NewContentHandler[model.GalleryItem, model.GalleryItemInput](h.gallery, "Gallery item", h.logger))
		registerCRUD(r, handler.RouteTranslations, NewContentHandler[model.Translation, model.TranslationInput](h.translations, "Translation", h.logger))

		r.Get(handler.RouteSiteContent, h.ListSiteContent)
		r.Put(handler.RouteSiteContent+handler.RouteParamSection, h.SaveSiteContent)
		r.Delete(handler.RouteSiteContent+handler.RouteParamSection, h.DeleteSiteContent)
	})
}
