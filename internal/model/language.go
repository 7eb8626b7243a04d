// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the content records, form inputs and account types
// shared by the server and the dashboard client.
package model

import "strings"

// Supported languages.
const (
	LangArabic  = "ar"
	LangEnglish = "en"

	DefaultLanguage = LangArabic
)

// Text directions.
const (
	DirRTL = "rtl"
	DirLTR = "ltr"
)

// SupportedLanguages lists language codes in display order.
var SupportedLanguages = []string{LangArabic, LangEnglish}

// IsSupportedLanguage reports whether code is ar or en.
func IsSupportedLanguage(code string) bool {
	return code == LangArabic || code == LangEnglish
}

// Direction returns the text direction for a language code.
func Direction(lang string) string {
	if lang == LangArabic {
		return DirRTL
	}
	return DirLTR
}

// Pick returns the Arabic or English variant of a bilingual field.
func Pick(lang, ar, en string) string {
	if lang == LangArabic {
		return ar
	}
	return en
}

// trimAll trims surrounding whitespace from every field in place.
func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

// matchesAny reports whether any of the fields contains query, ignoring case.
func matchesAny(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
