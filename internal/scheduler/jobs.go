// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Maintenance schedules and retention.
const (
	PurgeSessionsSchedule = "0 * * * *"
	PruneEventsSchedule   = "30 3 * * *"

	// RevokedSessionRetention keeps revoked sessions briefly for auditing.
	RevokedSessionRetention = 24 * time.Hour
	// EventRetention is how long audit events are kept.
	EventRetention = 90 * 24 * time.Hour
)

// SessionPurger deletes expired and long-revoked auth sessions.
type SessionPurger interface {
	PurgeSessions(ctx context.Context, olderThan time.Duration) (int64, error)
}

// EventPruner deletes old audit events.
type EventPruner interface {
	DeleteOldEvents(ctx context.Context, olderThan time.Duration) error
}

// RegisterMaintenance adds the hourly session purge and the daily event prune.
func RegisterMaintenance(s *Scheduler, sessions SessionPurger, events EventPruner, logger *slog.Logger) error {
	if err := s.Register(Job{
		Name:        "purge-sessions",
		Description: "Delete expired and revoked sign-in sessions",
		Schedule:    PurgeSessionsSchedule,
		Run: func(ctx context.Context) error {
			n, err := sessions.PurgeSessions(ctx, RevokedSessionRetention)
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("purged auth sessions", "count", n)
			}
			return nil
		},
	}); err != nil {
		return err
	}

	return s.Register(Job{
		Name:        "prune-events",
		Description: "Delete audit events older than 90 days",
		Schedule:    PruneEventsSchedule,
		Run: func(ctx context.Context) error {
			return events.DeleteOldEvents(ctx, EventRetention)
		},
	})
}
