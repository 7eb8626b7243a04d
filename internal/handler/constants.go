// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteAPI is the versioned REST API prefix.
	RouteAPI = "/api/v1"
	// RouteFunctions is the admin functions prefix.
	RouteFunctions = "/functions/v1"

	// RouteHealth is the health check route.
	RouteHealth = "/health"
	// RouteHealthLive is the liveness probe route.
	RouteHealthLive = "/health/live"
	// RouteHealthReady is the readiness probe route.
	RouteHealthReady = "/health/ready"

	// RouteRobots serves robots.txt.
	RouteRobots = "/robots.txt"
	// RouteSitemap serves the sitemap of the public site.
	RouteSitemap = "/sitemap.xml"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteParamIDOrSlug matches an article id or slug.
	RouteParamIDOrSlug = "/{idOrSlug}"
	// RouteParamSection is the site content section pattern.
	RouteParamSection = "/{section}"
	// RouteParamLang is the language code pattern.
	RouteParamLang = "/{lang}"

	// RouteProducts is the main products route.
	RouteProducts = "/products"
	// RoutePartners is the partners route.
	RoutePartners = "/partners"
	// RouteArticles is the articles route.
	RouteArticles = "/articles"
	// RouteGallery is the gallery products route.
	RouteGallery = "/gallery"
	// RouteTranslations is the translations route.
	RouteTranslations = "/translations"
	// RouteSiteContent is the site content route.
	RouteSiteContent = "/site-content"
	// RouteI18n serves merged translation bundles.
	RouteI18n = "/i18n"

	// RouteAuth groups the account endpoints.
	RouteAuth = "/auth"
	// RouteSignUp registers an account.
	RouteSignUp = "/signup"
	// RouteSignIn opens a session.
	RouteSignIn = "/signin"
	// RouteSignOut closes sessions.
	RouteSignOut = "/signout"
	// RouteRefresh rotates the refresh token.
	RouteRefresh = "/refresh"
	// RouteUser returns the current user.
	RouteUser = "/user"
	// RouteHasRole is the has_role remote procedure.
	RouteHasRole = "/rpc/has_role"

	// RouteDashboard groups the content management endpoints.
	RouteDashboard = "/dashboard"
	// RouteOverview is the dashboard summary.
	RouteOverview = "/overview"
	// RouteEvents is the admin audit log.
	RouteEvents = "/events"
)

// Admin function names under RouteFunctions.
const (
	FunctionListUsers      = "/admin-list-users"
	FunctionCreateUser     = "/admin-create-user"
	FunctionChangePassword = "/admin-change-password"
	FunctionDeleteUser     = "/admin-delete-user"
	FunctionSetupAdmin     = "/setup-admin"
)

// Log messages shared by startup code.
const (
	LogCacheInit   = "cache initialized"
	LogServerStart = "starting server"
)
