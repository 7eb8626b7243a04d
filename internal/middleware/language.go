// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/firstsun-go/internal/i18n"
	"github.com/olegiv/firstsun-go/internal/model"
)

// LanguageCookieName is the cookie name for language preference.
const LanguageCookieName = "fsun_lang"

// LanguageInfo holds the resolved language for the request context.
type LanguageInfo struct {
	Code string `json:"lang"`
	Dir  string `json:"dir"`
}

// Language creates middleware that resolves the request language.
// Priority order:
// 1. Query parameter ?lang=xx (explicit switch, updates the cookie)
// 2. Cookie preference
// 3. Accept-Language header
// 4. defaultLang
func Language(defaultLang string) func(http.Handler) http.Handler {
	if !model.IsSupportedLanguage(defaultLang) {
		defaultLang = model.DefaultLanguage
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := defaultLang

			if q := strings.ToLower(r.URL.Query().Get("lang")); model.IsSupportedLanguage(q) {
				code = q
				SetLanguageCookie(w, r, code)
			} else if c, err := r.Cookie(LanguageCookieName); err == nil && model.IsSupportedLanguage(strings.ToLower(c.Value)) {
				code = strings.ToLower(c.Value)
			} else if accept := r.Header.Get("Accept-Language"); accept != "" {
				code = i18n.MatchLanguage(accept)
			}

			info := LanguageInfo{Code: code, Dir: model.Direction(code)}
			w.Header().Set("Content-Language", code)
			ctx := context.WithValue(r.Context(), ContextKeyLanguage, info)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SetLanguageCookie stores the language preference for a year.
func SetLanguageCookie(w http.ResponseWriter, r *http.Request, code string) {
	http.SetCookie(w, &http.Cookie{
		Name:     LanguageCookieName,
		Value:    code,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetLanguage returns the resolved language, defaulting to Arabic.
func GetLanguage(r *http.Request) LanguageInfo {
	if info, ok := r.Context().Value(ContextKeyLanguage).(LanguageInfo); ok {
		return info
	}
	return LanguageInfo{Code: model.DefaultLanguage, Dir: model.Direction(model.DefaultLanguage)}
}

// GetLang returns the resolved language code.
func GetLang(r *http.Request) string {
	return GetLanguage(r).Code
}
