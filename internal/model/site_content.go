// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"time"
)

// SiteContent is a free-form JSON document for one page section.
type SiteContent struct {
	ID        string          `json:"id"`
	Section   string          `json:"section"`
	Content   json.RawMessage `json:"content"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SiteContentInput is the site content editor form. Content is raw JSON text.
type SiteContentInput struct {
	Section string `json:"section" label:"Section" validate:"required,max=100,key"`
	Content string `json:"content" label:"Content" validate:"required,max=50000,json_container"`
}

// Normalize implements validation.Normalizer.
func (in *SiteContentInput) Normalize() {
	trimAll(&in.Section, &in.Content)
}
