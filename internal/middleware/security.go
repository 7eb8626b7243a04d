// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecurityHeaders sets the standard security headers on every response.
// HSTS is sent outside development. sslRedirect sends plain HTTP requests
// to HTTPS; requests forwarded with X-Forwarded-Proto: https are served.
func SecurityHeaders(isDev, sslRedirect bool) func(http.Handler) http.Handler {
	s := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		PermissionsPolicy:     "camera=(), microphone=(), geolocation=()",
		ContentSecurityPolicy: "default-src 'self'; img-src 'self' data: https:; frame-src https://www.youtube.com; object-src 'none'; base-uri 'self'",
		STSSeconds:            31536000,
		STSIncludeSubdomains:  true,
		SSLRedirect:           sslRedirect,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         isDev,
	})
	return s.Handler
}
