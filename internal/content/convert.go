// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"encoding/json"

	"github.com/olegiv/firstsun-go/internal/model"
	"github.com/olegiv/firstsun-go/internal/store"
	"github.com/olegiv/firstsun-go/internal/util"
)

func productFromRow(r store.MainProduct) model.Product {
	return model.Product{
		ID:            r.ID,
		NameAr:        r.NameAr,
		NameEn:        r.NameEn,
		DescriptionAr: r.DescriptionAr,
		DescriptionEn: r.DescriptionEn,
		BadgeAr:       util.StringFromNull(r.BadgeAr),
		BadgeEn:       util.StringFromNull(r.BadgeEn),
		ImageURL:      r.ImageUrl,
		Category:      util.StringFromNull(r.Category),
		DisplayOrder:  r.DisplayOrder,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func partnerFromRow(r store.Partner) model.Partner {
	return model.Partner{
		ID:           r.ID,
		Name:         r.Name,
		LogoURL:      r.LogoUrl,
		DisplayOrder: r.DisplayOrder,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func galleryFromRow(r store.GalleryProduct) model.GalleryItem {
	return model.GalleryItem{
		ID:             r.ID,
		TitleKey:       r.TitleKey,
		DescriptionKey: r.DescriptionKey,
		ImageURL:       r.ImageUrl,
		Category:       r.Category,
		DisplayOrder:   r.DisplayOrder,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func articleFromRow(r store.Article) model.Article {
	return model.Article{
		ID:           r.ID,
		TitleAr:      r.TitleAr,
		TitleEn:      r.TitleEn,
		ContentAr:    r.ContentAr,
		ContentEn:    r.ContentEn,
		ExcerptAr:    r.ExcerptAr,
		ExcerptEn:    r.ExcerptEn,
		ImageURL:     util.StringFromNull(r.ImageUrl),
		MediaType:    r.MediaType,
		Published:    r.Published,
		Slug:         r.Slug,
		AuthorID:     util.StringFromNull(r.AuthorID),
		DisplayOrder: r.DisplayOrder,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func translationFromRow(r store.Translation) model.Translation {
	return model.Translation{
		ID:        r.ID,
		Key:       r.Key,
		Ar:        r.Ar,
		En:        r.En,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func siteContentFromRow(r store.SiteContent) model.SiteContent {
	return model.SiteContent{
		ID:        r.ID,
		Section:   r.Section,
		Content:   json.RawMessage(r.Content),
		UpdatedAt: r.UpdatedAt,
	}
}

func mapRows[R any, T any](rows []R, fn func(R) T) []T {
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = fn(r)
	}
	return out
}
