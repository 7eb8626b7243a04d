// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// defaultSiteContent is written once for sections that do not exist yet.
var defaultSiteContent = map[string]string{
	"contact": `{
  "emails": {
    "primary": "Admin@FirstSunEn.com",
    "general": "Info@FirstSunEn.com",
    "maintenance": "Maintenance@FirstSunEn.com",
    "purchases": "purchases@FirstSunEn.com",
    "sales": "sales@FirstSunEn.com"
  },
  "phones": ["784748777", "781116611", "784748555"]
}`,
	"hero":  `{"background_image": "", "cta_target": "#products"}`,
	"about": `{"stats": {"years": 10, "projects": 500, "clients": 1000}}`,
}

// Seed creates initial site content sections that are missing.
// Existing sections are never overwritten.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)
	now := time.Now().UTC()

	created := 0
	for section, content := range defaultSiteContent {
		_, err := queries.GetSiteContentBySection(ctx, section)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking site content %q: %w", section, err)
		}

		if _, err := queries.UpsertSiteContent(ctx, UpsertSiteContentParams{
			ID:        uuid.NewString(),
			Section:   section,
			Content:   content,
			UpdatedAt: now,
		}); err != nil {
			return fmt.Errorf("seeding site content %q: %w", section, err)
		}
		created++
	}

	if created > 0 {
		slog.Info("seeded site content", "sections", created)
	}
	return nil
}
