// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"log/slog"

	"github.com/olegiv/firstsun-go/internal/i18n"
	"github.com/olegiv/firstsun-go/internal/model"
)

// TranslationService is the CRUD service for translation rows.
type TranslationService = Service[model.Translation, model.TranslationInput]

// BindCatalog loads the translation rows into the catalog overlay and keeps
// it current after every translation write.
func BindCatalog(ctx context.Context, svc *TranslationService, catalog *i18n.Catalog, logger *slog.Logger) error {
	reload := func(ctx context.Context) error {
		rows, err := svc.List(ctx)
		if err != nil {
			return err
		}
		catalog.SetOverlay(i18n.OverlayFromRows(rows))
		return nil
	}

	svc.OnChange(func(ctx context.Context) {
		if err := reload(ctx); err != nil {
			logger.Error("failed to refresh translation overlay", "error", err)
		}
	})
	return reload(ctx)
}
