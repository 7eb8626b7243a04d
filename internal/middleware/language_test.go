// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLanguage(t *testing.T) {
	tests := []struct {
		name       string
		defaultLng string
		query      string
		cookie     string
		accept     string
		want       string
		wantDir    string
		wantCookie bool
	}{
		{name: "default", defaultLng: "ar", want: "ar", wantDir: "rtl"},
		{name: "configured default", defaultLng: "en", want: "en", wantDir: "ltr"},
		{name: "invalid default", defaultLng: "fr", want: "ar", wantDir: "rtl"},
		{name: "query", defaultLng: "ar", query: "en", want: "en", wantDir: "ltr", wantCookie: true},
		{name: "query uppercase", defaultLng: "ar", query: "EN", want: "en", wantDir: "ltr", wantCookie: true},
		{name: "unsupported query falls through", defaultLng: "ar", query: "de", cookie: "en", want: "en", wantDir: "ltr"},
		{name: "cookie", defaultLng: "ar", cookie: "en", accept: "ar", want: "en", wantDir: "ltr"},
		{name: "query beats cookie", defaultLng: "ar", query: "ar", cookie: "en", want: "ar", wantDir: "rtl", wantCookie: true},
		{name: "accept language", defaultLng: "ar", accept: "en-US,en;q=0.9", want: "en", wantDir: "ltr"},
		{name: "accept arabic", defaultLng: "en", accept: "ar-YE", want: "ar", wantDir: "rtl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got LanguageInfo
			h := Language(tt.defaultLng)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = GetLanguage(r)
			}))

			target := "/"
			if tt.query != "" {
				target += "?lang=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LanguageCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if got.Code != tt.want || got.Dir != tt.wantDir {
				t.Errorf("language = %+v, want %s/%s", got, tt.want, tt.wantDir)
			}
			if cl := rr.Header().Get("Content-Language"); cl != tt.want {
				t.Errorf("Content-Language = %q, want %q", cl, tt.want)
			}
			setCookie := rr.Header().Get("Set-Cookie") != ""
			if setCookie != tt.wantCookie {
				t.Errorf("Set-Cookie present = %v, want %v", setCookie, tt.wantCookie)
			}
		})
	}
}

func TestGetLanguage_Default(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetLang(req); got != "ar" {
		t.Errorf("GetLang() = %q, want %q", got, "ar")
	}
}
