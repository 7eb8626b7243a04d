// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Partner is a partner logo.
type Partner struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	LogoURL      string    `json:"logo_url"`
	DisplayOrder int64     `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RecordID implements the dashboard record contract.
func (p Partner) RecordID() string { return p.ID }

// Matches reports whether the partner name contains query.
func (p Partner) Matches(query, _ string) bool {
	return matchesAny(query, p.Name)
}

// Input returns the editable fields.
func (p Partner) Input() PartnerInput {
	return PartnerInput{Name: p.Name, LogoURL: p.LogoURL, DisplayOrder: p.DisplayOrder}
}

// PartnerInput is the partner form.
type PartnerInput struct {
	Name         string `json:"name" label:"Name" validate:"required,max=100"`
	LogoURL      string `json:"logo_url" label:"Logo URL" validate:"required,url,max=500"`
	DisplayOrder int64  `json:"display_order" label:"Order" validate:"min=0"`
}

// Normalize implements validation.Normalizer.
func (in *PartnerInput) Normalize() {
	trimAll(&in.Name, &in.LogoURL)
}
