// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// GalleryItem is a gallery product whose title and description are
// translation keys.
type GalleryItem struct {
	ID             string    `json:"id"`
	TitleKey       string    `json:"title_key"`
	DescriptionKey string    `json:"description_key"`
	ImageURL       string    `json:"image_url"`
	Category       string    `json:"category"`
	DisplayOrder   int64     `json:"display_order"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RecordID implements the dashboard record contract.
func (g GalleryItem) RecordID() string { return g.ID }

// Matches reports whether the keys or category contain query.
func (g GalleryItem) Matches(query, _ string) bool {
	return matchesAny(query, g.TitleKey, g.DescriptionKey, g.Category)
}

// Input returns the editable fields.
func (g GalleryItem) Input() GalleryItemInput {
	return GalleryItemInput{
		TitleKey:       g.TitleKey,
		DescriptionKey: g.DescriptionKey,
		ImageURL:       g.ImageURL,
		Category:       g.Category,
		DisplayOrder:   g.DisplayOrder,
	}
}

// LocalizedGalleryItem carries the resolved title and description.
type LocalizedGalleryItem struct {
	GalleryItem
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GalleryItemInput is the gallery form.
type GalleryItemInput struct {
	TitleKey       string `json:"title_key" label:"Title key" validate:"required,max=100,key"`
	DescriptionKey string `json:"description_key" label:"Description key" validate:"required,max=500,key"`
	ImageURL       string `json:"image_url" label:"Image URL" validate:"required,url,max=2000"`
	Category       string `json:"category" label:"Category" validate:"required,max=100"`
	DisplayOrder   int64  `json:"display_order" label:"Order" validate:"min=0"`
}

// Normalize implements validation.Normalizer.
func (in *GalleryItemInput) Normalize() {
	trimAll(&in.TitleKey, &in.DescriptionKey, &in.ImageURL, &in.Category)
}
