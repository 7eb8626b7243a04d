// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Translation is an editable translation row.
type Translation struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Ar        string    `json:"ar"`
	En        string    `json:"en"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordID implements the dashboard record contract.
func (t Translation) RecordID() string { return t.ID }

// Matches reports whether the key or either text contains query.
func (t Translation) Matches(query, _ string) bool {
	return matchesAny(query, t.Key, t.Ar, t.En)
}

// Input returns the editable fields.
func (t Translation) Input() TranslationInput {
	return TranslationInput{Key: t.Key, Ar: t.Ar, En: t.En}
}

// TranslationInput is the translation form.
type TranslationInput struct {
	Key string `json:"key" label:"Key" validate:"required,max=100,key"`
	Ar  string `json:"ar" label:"Arabic text" validate:"required,max=5000"`
	En  string `json:"en" label:"English text" validate:"required,max=5000"`
}

// Normalize implements validation.Normalizer.
func (in *TranslationInput) Normalize() {
	trimAll(&in.Key, &in.Ar, &in.En)
}
