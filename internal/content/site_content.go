// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/firstsun-go/internal/cache"
	"github.com/olegiv/firstsun-go/internal/model"
	"github.com/olegiv/firstsun-go/internal/store"
	"github.com/olegiv/firstsun-go/internal/validation"
)

// SiteContentService manages the JSON documents of the site sections,
// keyed by section name.
type SiteContentService struct {
	queries  *store.Queries
	sections *cache.TypedCache[model.SiteContent]
	validate *validation.Validator
	events   EventLogger
	logger   *slog.Logger
	now      func() time.Time
}

// NewSiteContentService creates the site content service.
func NewSiteContentService(db *sql.DB, opts Options) *SiteContentService {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Validator == nil {
		opts.Validator = validation.New()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &SiteContentService{
		queries:  store.New(db),
		validate: opts.Validator,
		events:   opts.Events,
		logger:   opts.Logger,
		now:      opts.Now,
	}
	if opts.Cache != nil {
		s.sections = cache.NewTypedCache[model.SiteContent](opts.Cache, "content:"+ResourceSiteContent, opts.CacheTTL)
	}
	return s
}

// List returns every section.
func (s *SiteContentService) List(ctx context.Context) ([]model.SiteContent, error) {
	rows, err := s.queries.ListSiteContent(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing site content: %w", err)
	}
	return mapRows(rows, siteContentFromRow), nil
}

// Get returns one section.
func (s *SiteContentService) Get(ctx context.Context, section string) (model.SiteContent, error) {
	if !validation.IsValidKey(section) {
		return model.SiteContent{}, ErrNotFound
	}
	load := func() (model.SiteContent, error) {
		row, err := s.queries.GetSiteContentBySection(ctx, section)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return model.SiteContent{}, ErrNotFound
			}
			return model.SiteContent{}, fmt.Errorf("loading site content: %w", err)
		}
		return siteContentFromRow(row), nil
	}
	if s.sections == nil {
		return load()
	}
	return s.sections.GetOrSet(ctx, section, load)
}

// Upsert validates in and writes the section, creating it if needed.
func (s *SiteContentService) Upsert(ctx context.Context, actorID string, in model.SiteContentInput) (model.SiteContent, error) {
	if err := s.validate.Struct(&in); err != nil {
		return model.SiteContent{}, err
	}

	row, err := s.queries.UpsertSiteContent(ctx, store.UpsertSiteContentParams{
		ID:        uuid.NewString(),
		Section:   in.Section,
		Content:   in.Content,
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		return model.SiteContent{}, fmt.Errorf("saving site content: %w", err)
	}

	s.changed(ctx, actorID, "updated", in.Section)
	return siteContentFromRow(row), nil
}

// Delete removes a section.
func (s *SiteContentService) Delete(ctx context.Context, actorID, section string) error {
	if !validation.IsValidKey(section) {
		return ErrNotFound
	}
	n, err := s.queries.DeleteSiteContent(ctx, section)
	if err != nil {
		return fmt.Errorf("deleting site content: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	s.changed(ctx, actorID, "deleted", section)
	return nil
}

func (s *SiteContentService) changed(ctx context.Context, actorID, action, section string) {
	if s.sections != nil {
		if err := s.sections.Delete(ctx, section); err != nil {
			s.logger.Warn("failed to invalidate site content cache", "section", section, "error", err)
		}
	}
	if s.events != nil {
		_ = s.events.LogContentEvent(ctx, model.EventLevelInfo, "Site content "+action, actorID, "",
			map[string]any{"resource": ResourceSiteContent, "section": section, "action": action})
	}
}
