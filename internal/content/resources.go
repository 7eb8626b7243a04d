// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"fmt"

	"github.com/olegiv/firstsun-go/internal/model"
	"github.com/olegiv/firstsun-go/internal/store"
	"github.com/olegiv/firstsun-go/internal/util"
)

// Resource names, used in dashboard routes.
const (
	ResourceProducts     = "products"
	ResourcePartners     = "partners"
	ResourceArticles     = "articles"
	ResourceGallery      = "gallery"
	ResourceTranslations = "translations"
	ResourceSiteContent  = "site-content"
)

// Products binds the main_products table.
func Products() Resource[model.Product, model.ProductInput] {
	return Resource[model.Product, model.ProductInput]{
		Name: ResourceProducts,
		List: func(ctx context.Context, q *store.Queries) ([]model.Product, error) {
			rows, err := q.ListMainProducts(ctx)
			return mapRows(rows, productFromRow), err
		},
		Get: func(ctx context.Context, q *store.Queries, id string) (model.Product, error) {
			row, err := q.GetMainProduct(ctx, id)
			return productFromRow(row), err
		},
		Create: func(ctx context.Context, q *store.Queries, w Write[model.ProductInput]) (model.Product, error) {
			in := w.Input
			row, err := q.CreateMainProduct(ctx, store.CreateMainProductParams{
				ID:            w.ID,
				NameAr:        in.NameAr,
				NameEn:        in.NameEn,
				DescriptionAr: in.DescriptionAr,
				DescriptionEn: in.DescriptionEn,
				BadgeAr:       util.NullStringFromValue(in.BadgeAr),
				BadgeEn:       util.NullStringFromValue(in.BadgeEn),
				ImageUrl:      in.ImageURL,
				Category:      util.NullStringFromValue(in.Category),
				DisplayOrder:  in.DisplayOrder,
				CreatedAt:     w.Now,
				UpdatedAt:     w.Now,
			})
			return productFromRow(row), err
		},
		Update: func(ctx context.Context, q *store.Queries, w Write[model.ProductInput]) (model.Product, error) {
			in := w.Input
			row, err := q.UpdateMainProduct(ctx, store.UpdateMainProductParams{
				NameAr:        in.NameAr,
				NameEn:        in.NameEn,
				DescriptionAr: in.DescriptionAr,
				DescriptionEn: in.DescriptionEn,
				BadgeAr:       util.NullStringFromValue(in.BadgeAr),
				BadgeEn:       util.NullStringFromValue(in.BadgeEn),
				ImageUrl:      in.ImageURL,
				Category:      util.NullStringFromValue(in.Category),
				DisplayOrder:  in.DisplayOrder,
				UpdatedAt:     w.Now,
				ID:            w.ID,
			})
			return productFromRow(row), err
		},
		Delete: func(ctx context.Context, q *store.Queries, id string) (int64, error) {
			return q.DeleteMainProduct(ctx, id)
		},
		Count: func(ctx context.Context, q *store.Queries) (int64, error) {
			return q.CountMainProducts(ctx)
		},
		Recent: func(ctx context.Context, q *store.Queries, limit int64) ([]model.Product, error) {
			rows, err := q.ListRecentMainProducts(ctx, limit)
			return mapRows(rows, productFromRow), err
		},
	}
}

// Partners binds the partners table.
func Partners() Resource[model.Partner, model.PartnerInput] {
	return Resource[model.Partner, model.PartnerInput]{
		Name: ResourcePartners,
		List: func(ctx context.Context, q *store.Queries) ([]model.Partner, error) {
			rows, err := q.ListPartners(ctx)
			return mapRows(rows, partnerFromRow), err
		},
		Get: func(ctx context.Context, q *store.Queries, id string) (model.Partner, error) {
			row, err := q.GetPartner(ctx, id)
			return partnerFromRow(row), err
		},
		Create: func(ctx context.Context, q *store.Queries, w Write[model.PartnerInput]) (model.Partner, error) {
			row, err := q.CreatePartner(ctx, store.CreatePartnerParams{
				ID:           w.ID,
				Name:         w.Input.Name,
				LogoUrl:      w.Input.LogoURL,
				DisplayOrder: w.Input.DisplayOrder,
				CreatedAt:    w.Now,
				UpdatedAt:    w.Now,
			})
			return partnerFromRow(row), err
		},
		Update: func(ctx context.Context, q *store.Queries, w Write[model.PartnerInput]) (model.Partner, error) {
			row, err := q.UpdatePartner(ctx, store.UpdatePartnerParams{
				Name:         w.Input.Name,
				LogoUrl:      w.Input.LogoURL,
				DisplayOrder: w.Input.DisplayOrder,
				UpdatedAt:    w.Now,
				ID:           w.ID,
			})
			return partnerFromRow(row), err
		},
		Delete: func(ctx context.Context, q *store.Queries, id string) (int64, error) {
			return q.DeletePartner(ctx, id)
		},
		Count: func(ctx context.Context, q *store.Queries) (int64, error) {
			return q.CountPartners(ctx)
		},
	}
}

// Gallery binds the gallery_products table.
func Gallery() Resource[model.GalleryItem, model.GalleryItemInput] {
	return Resource[model.GalleryItem, model.GalleryItemInput]{
		Name: ResourceGallery,
		List: func(ctx context.Context, q *store.Queries) ([]model.GalleryItem, error) {
			rows, err := q.ListGalleryProducts(ctx)
			return mapRows(rows, galleryFromRow), err
		},
		Get: func(ctx context.Context, q *store.Queries, id string) (model.GalleryItem, error) {
			row, err := q.GetGalleryProduct(ctx, id)
			return galleryFromRow(row), err
		},
		Create: func(ctx context.Context, q *store.Queries, w Write[model.GalleryItemInput]) (model.GalleryItem, error) {
			in := w.Input
			row, err := q.CreateGalleryProduct(ctx, store.CreateGalleryProductParams{
				ID:             w.ID,
				TitleKey:       in.TitleKey,
				DescriptionKey: in.DescriptionKey,
				ImageUrl:       in.ImageURL,
				Category:       in.Category,
				DisplayOrder:   in.DisplayOrder,
				CreatedAt:      w.Now,
				UpdatedAt:      w.Now,
			})
			return galleryFromRow(row), err
		},
		Update: func(ctx context.Context, q *store.Queries, w Write[model.GalleryItemInput]) (model.GalleryItem, error) {
			in := w.Input
			row, err := q.UpdateGalleryProduct(ctx, store.UpdateGalleryProductParams{
				TitleKey:       in.TitleKey,
				DescriptionKey: in.DescriptionKey,
				ImageUrl:       in.ImageURL,
				Category:       in.Category,
				DisplayOrder:   in.DisplayOrder,
				UpdatedAt:      w.Now,
				ID:             w.ID,
			})
			return galleryFromRow(row), err
		},
		Delete: func(ctx context.Context, q *store.Queries, id string) (int64, error) {
			return q.DeleteGalleryProduct(ctx, id)
		},
		Count: func(ctx context.Context, q *store.Queries) (int64, error) {
			return q.CountGalleryProducts(ctx)
		},
	}
}

// Translations binds the translations table.
func Translations() Resource[model.Translation, model.TranslationInput] {
	return Resource[model.Translation, model.TranslationInput]{
		Name: ResourceTranslations,
		List: func(ctx context.Context, q *store.Queries) ([]model.Translation, error) {
			rows, err := q.ListTranslations(ctx)
			return mapRows(rows, translationFromRow), err
		},
		Get: func(ctx context.Context, q *store.Queries, id string) (model.Translation, error) {
			row, err := q.GetTranslation(ctx, id)
			return translationFromRow(row), err
		},
		Create: func(ctx context.Context, q *store.Queries, w Write[model.TranslationInput]) (model.Translation, error) {
			row, err := q.CreateTranslation(ctx, store.CreateTranslationParams{
				ID:        w.ID,
				Key:       w.Input.Key,
				Ar:        w.Input.Ar,
				En:        w.Input.En,
				CreatedAt: w.Now,
				UpdatedAt: w.Now,
			})
			return translationFromRow(row), err
		},
		Update: func(ctx context.Context, q *store.Queries, w Write[model.TranslationInput]) (model.Translation, error) {
			row, err := q.UpdateTranslation(ctx, store.UpdateTranslationParams{
				Key:       w.Input.Key,
				Ar:        w.Input.Ar,
				En:        w.Input.En,
				UpdatedAt: w.Now,
				ID:        w.ID,
			})
			return translationFromRow(row), err
		},
		Delete: func(ctx context.Context, q *store.Queries, id string) (int64, error) {
			return q.DeleteTranslation(ctx, id)
		},
		Count: func(ctx context.Context, q *store.Queries) (int64, error) {
			return q.CountTranslations(ctx)
		},
	}
}

// Articles binds the articles table. Slugs derive from the English title on
// create and are kept on update.
func Articles() Resource[model.Article, model.ArticleInput] {
	return Resource[model.Article, model.ArticleInput]{
		Name: ResourceArticles,
		List: func(ctx context.Context, q *store.Queries) ([]model.Article, error) {
			rows, err := q.ListArticles(ctx)
			return mapRows(rows, articleFromRow), err
		},
		Get: func(ctx context.Context, q *store.Queries, id string) (model.Article, error) {
			row, err := q.GetArticle(ctx, id)
			return articleFromRow(row), err
		},
		Create: func(ctx context.Context, q *store.Queries, w Write[model.ArticleInput]) (model.Article, error) {
			in := w.Input
			slug, err := articleSlug(ctx, q, in.TitleEn, w.ID)
			if err != nil {
				return model.Article{}, err
			}
			row, err := q.CreateArticle(ctx, store.CreateArticleParams{
				ID:           w.ID,
				TitleAr:      in.TitleAr,
				TitleEn:      in.TitleEn,
				ContentAr:    in.ContentAr,
				ContentEn:    in.ContentEn,
				ExcerptAr:    in.ExcerptAr,
				ExcerptEn:    in.ExcerptEn,
				ImageUrl:     util.NullStringFromValue(in.ImageURL),
				MediaType:    in.MediaType,
				Published:    in.Published,
				Slug:         slug,
				AuthorID:     util.NullStringFromValue(w.ActorID),
				DisplayOrder: in.DisplayOrder,
				CreatedAt:    w.Now,
				UpdatedAt:    w.Now,
			})
			return articleFromRow(row), err
		},
		Update: func(ctx context.Context, q *store.Queries, w Write[model.ArticleInput]) (model.Article, error) {
			current, err := q.GetArticle(ctx, w.ID)
			if err != nil {
				return model.Article{}, err
			}
			in := w.Input
			row, err := q.UpdateArticle(ctx, store.UpdateArticleParams{
				TitleAr:      in.TitleAr,
				TitleEn:      in.TitleEn,
				ContentAr:    in.ContentAr,
				ContentEn:    in.ContentEn,
				ExcerptAr:    in.ExcerptAr,
				ExcerptEn:    in.ExcerptEn,
				ImageUrl:     util.NullStringFromValue(in.ImageURL),
				MediaType:    in.MediaType,
				Published:    in.Published,
				Slug:         current.Slug,
				DisplayOrder: in.DisplayOrder,
				UpdatedAt:    w.Now,
				ID:           w.ID,
			})
			return articleFromRow(row), err
		},
		Delete: func(ctx context.Context, q *store.Queries, id string) (int64, error) {
			return q.DeleteArticle(ctx, id)
		},
		Count: func(ctx context.Context, q *store.Queries) (int64, error) {
			return q.CountArticles(ctx)
		},
		Recent: func(ctx context.Context, q *store.Queries, limit int64) ([]model.Article, error) {
			rows, err := q.ListRecentArticles(ctx, limit)
			return mapRows(rows, articleFromRow), err
		},
	}
}

func articleSlug(ctx context.Context, q *store.Queries, title, id string) (string, error) {
	fallback := "article-" + id[:8]
	slug, err := util.UniqueSlug(util.Slugify(title), fallback, func(candidate string) (bool, error) {
		n, err := q.ArticleSlugExists(ctx, store.ArticleSlugExistsParams{Slug: candidate, ID: id})
		return n != 0, err
	})
	if err != nil {
		return "", fmt.Errorf("generating slug: %w", err)
	}
	return slug, nil
}
