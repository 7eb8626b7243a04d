// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// AllProductsCategory disables the category filter.
const AllProductsCategory = "All Products"

// Product is a main product shown on the home page and the gallery page.
type Product struct {
	ID            string    `json:"id"`
	NameAr        string    `json:"name_ar"`
	NameEn        string    `json:"name_en"`
	DescriptionAr string    `json:"description_ar"`
	DescriptionEn string    `json:"description_en"`
	BadgeAr       string    `json:"badge_ar,omitempty"`
	BadgeEn       string    `json:"badge_en,omitempty"`
	ImageURL      string    `json:"image_url"`
	Category      string    `json:"category,omitempty"`
	DisplayOrder  int64     `json:"display_order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RecordID implements the dashboard record contract.
func (p Product) RecordID() string { return p.ID }

// Matches reports whether name, description or badge in lang contains query.
func (p Product) Matches(query, lang string) bool {
	return matchesAny(query,
		Pick(lang, p.NameAr, p.NameEn),
		Pick(lang, p.DescriptionAr, p.DescriptionEn),
		Pick(lang, p.BadgeAr, p.BadgeEn),
	)
}

// InCategory reports whether the English badge equals category.
// The empty category and AllProductsCategory match everything.
func (p Product) InCategory(category string) bool {
	if category == "" || category == AllProductsCategory {
		return true
	}
	return strings.EqualFold(p.BadgeEn, category)
}

// Input returns the editable fields, used to prefill an edit form.
func (p Product) Input() ProductInput {
	return ProductInput{
		NameAr:        p.NameAr,
		NameEn:        p.NameEn,
		DescriptionAr: p.DescriptionAr,
		DescriptionEn: p.DescriptionEn,
		BadgeAr:       p.BadgeAr,
		BadgeEn:       p.BadgeEn,
		ImageURL:      p.ImageURL,
		Category:      p.Category,
		DisplayOrder:  p.DisplayOrder,
	}
}

// LocalizedProduct adds the active-language projection to a Product.
type LocalizedProduct struct {
	Product
	Name        string `json:"name"`
	Description string `json:"description"`
	Badge       string `json:"badge,omitempty"`
}

// Localize projects the bilingual fields onto lang.
func (p Product) Localize(lang string) LocalizedProduct {
	return LocalizedProduct{
		Product:     p,
		Name:        Pick(lang, p.NameAr, p.NameEn),
		Description: Pick(lang, p.DescriptionAr, p.DescriptionEn),
		Badge:       Pick(lang, p.BadgeAr, p.BadgeEn),
	}
}

// ProductInput is the product form.
type ProductInput struct {
	NameEn        string `json:"name_en" label:"English name" validate:"required,max=200"`
	NameAr        string `json:"name_ar" label:"Arabic name" validate:"required,max=200"`
	DescriptionEn string `json:"description_en" label:"English description" validate:"required,max=1000"`
	DescriptionAr string `json:"description_ar" label:"Arabic description" validate:"required,max=1000"`
	BadgeEn       string `json:"badge_en" label:"English badge" validate:"max=100"`
	BadgeAr       string `json:"badge_ar" label:"Arabic badge" validate:"max=100"`
	ImageURL      string `json:"image_url" label:"Image URL" validate:"required,url,max=500"`
	Category      string `json:"category" label:"Category" validate:"max=100"`
	DisplayOrder  int64  `json:"display_order" label:"Order" validate:"min=0"`
}

// Normalize implements validation.Normalizer.
func (in *ProductInput) Normalize() {
	trimAll(&in.NameEn, &in.NameAr, &in.DescriptionEn, &in.DescriptionAr,
		&in.BadgeEn, &in.BadgeAr, &in.ImageURL, &in.Category)
}
