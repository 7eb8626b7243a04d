// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/olegiv/firstsun-go/internal/model"
	"github.com/olegiv/firstsun-go/internal/store"
	"github.com/olegiv/firstsun-go/internal/util"
)

// ArticleService adds the public, published-only views to the articles
// CRUD service.
type ArticleService struct {
	*Service[model.Article, model.ArticleInput]
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// NewArticleService creates the articles service.
func NewArticleService(db *sql.DB, opts Options) *ArticleService {
	return &ArticleService{
		Service:   NewService(db, Articles(), opts),
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// ListPublished returns published articles, newest first, matching query in
// lang. A positive limit caps the result.
func (s *ArticleService) ListPublished(ctx context.Context, query, lang string, limit int) ([]model.Article, error) {
	rows, err := s.queries.ListPublishedArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing published articles: %w", err)
	}

	out := make([]model.Article, 0, len(rows))
	for _, r := range rows {
		a := articleFromRow(r)
		if !a.Matches(query, lang) {
			continue
		}
		out = append(out, a)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// GetPublished returns a published article by id or slug, localized to lang
// with its content rendered to sanitized HTML. Values that are neither an
// id nor a slug are not looked up.
func (s *ArticleService) GetPublished(ctx context.Context, idOrSlug, lang string) (model.LocalizedArticle, error) {
	if uuid.Validate(idOrSlug) != nil && !util.IsValidSlug(idOrSlug) {
		return model.LocalizedArticle{}, ErrNotFound
	}
	row, err := s.queries.GetPublishedArticle(ctx, store.GetPublishedArticleParams{ID: idOrSlug, Slug: idOrSlug})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.LocalizedArticle{}, ErrNotFound
		}
		return model.LocalizedArticle{}, fmt.Errorf("loading article: %w", err)
	}

	la := articleFromRow(row).Localize(lang)
	la.Content = model.Pick(lang, la.ContentAr, la.ContentEn)
	html, err := s.RenderMarkdown(la.Content)
	if err != nil {
		return model.LocalizedArticle{}, err
	}
	la.ContentHTML = html
	return la, nil
}

// RenderMarkdown converts Markdown to HTML safe for direct embedding.
func (s *ArticleService) RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return s.sanitizer.Sanitize(buf.String()), nil
}
