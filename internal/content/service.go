// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content implements validated CRUD over the site's content tables
// with a cached public list per resource.
package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/firstsun-go/internal/cache"
	"github.com/olegiv/firstsun-go/internal/model"
	"github.com/olegiv/firstsun-go/internal/store"
	"github.com/olegiv/firstsun-go/internal/validation"
)

var (
	// ErrNotFound is returned when the record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a unique field is already taken.
	ErrConflict = errors.New("record already exists")
)

// EventLogger records content audit events. *service.EventService
// implements it.
type EventLogger interface {
	LogContentEvent(ctx context.Context, level, message, userID, ipAddress string, metadata map[string]any) error
}

// Write carries one validated create or update.
type Write[In any] struct {
	ID      string
	Input   In
	ActorID string
	Now     time.Time
}

// Resource binds one table to the generic Service.
type Resource[T any, In any] struct {
	// Name is the plural resource name used in routes, cache keys and events.
	Name string

	List   func(ctx context.Context, q *store.Queries) ([]T, error)
	Get    func(ctx context.Context, q *store.Queries, id string) (T, error)
	Create func(ctx context.Context, q *store.Queries, w Write[In]) (T, error)
	Update func(ctx context.Context, q *store.Queries, w Write[In]) (T, error)
	Delete func(ctx context.Context, q *store.Queries, id string) (int64, error)
	Count  func(ctx context.Context, q *store.Queries) (int64, error)

	// Recent is optional; it lists the most recently updated records.
	Recent func(ctx context.Context, q *store.Queries, limit int64) ([]T, error)
}

// Options configures a Service.
type Options struct {
	Cache     cache.Cacher
	CacheTTL  time.Duration
	Events    EventLogger
	Logger    *slog.Logger
	Validator *validation.Validator
	Now       func() time.Time
}

// Service is the server-side CRUD manager for one resource. Every write is
// validated, invalidates the cached list and is recorded as an event.
type Service[T any, In any] struct {
	db       *sql.DB
	queries  *store.Queries
	res      Resource[T, In]
	list     *cache.TypedCache[[]T]
	validate *validation.Validator
	events   EventLogger
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	onChange []func(context.Context)
}

// NewService creates a Service for res. A nil Cache disables list caching.
func NewService[T any, In any](db *sql.DB, res Resource[T, In], opts Options) *Service[T, In] {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Validator == nil {
		opts.Validator = validation.New()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Service[T, In]{
		db:       db,
		queries:  store.New(db),
		res:      res,
		validate: opts.Validator,
		events:   opts.Events,
		logger:   opts.Logger.With("resource", res.Name),
		now:      opts.Now,
	}
	if opts.Cache != nil {
		s.list = cache.NewTypedCache[[]T](opts.Cache, "content:"+res.Name, opts.CacheTTL)
	}
	return s
}

// Name returns the resource name.
func (s *Service[T, In]) Name() string {
	return s.res.Name
}

// OnChange registers fn to run after every successful write.
func (s *Service[T, In]) OnChange(fn func(context.Context)) {
	s.mu.Lock()
	s.onChange = append(s.onChange, fn)
	s.mu.Unlock()
}

// List returns all records in display order.
func (s *Service[T, In]) List(ctx context.Context) ([]T, error) {
	load := func() ([]T, error) {
		rows, err := s.res.List(ctx, s.queries)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", s.res.Name, err)
		}
		if rows == nil {
			rows = []T{}
		}
		return rows, nil
	}
	if s.list == nil {
		return load()
	}
	return s.list.GetOrSet(ctx, "all", load)
}

// Get returns one record.
func (s *Service[T, In]) Get(ctx context.Context, id string) (T, error) {
	rec, err := s.res.Get(ctx, s.queries, id)
	if err != nil {
		var zero T
		return zero, s.mapError(err, "loading")
	}
	return rec, nil
}

// Count returns the number of records.
func (s *Service[T, In]) Count(ctx context.Context) (int64, error) {
	return s.res.Count(ctx, s.queries)
}

// Recent returns up to limit records by last update. Resources without a
// recent query return nil.
func (s *Service[T, In]) Recent(ctx context.Context, limit int64) ([]T, error) {
	if s.res.Recent == nil {
		return nil, nil
	}
	return s.res.Recent(ctx, s.queries, limit)
}

// Validate normalizes in and runs the input schema without writing anything.
func (s *Service[T, In]) Validate(in *In) error {
	return s.validate.Struct(in)
}

// Create validates in and inserts a new record.
func (s *Service[T, In]) Create(ctx context.Context, actorID string, in In) (T, error) {
	var zero T
	if err := s.Validate(&in); err != nil {
		return zero, err
	}

	w := Write[In]{ID: uuid.NewString(), Input: in, ActorID: actorID, Now: s.now().UTC()}
	var rec T
	err := store.InTx(ctx, s.db, func(q *store.Queries) error {
		var err error
		rec, err = s.res.Create(ctx, q, w)
		return err
	})
	if err != nil {
		return zero, s.mapError(err, "creating")
	}

	s.changed(ctx, actorID, "created", w.ID)
	return rec, nil
}

// Update validates in and replaces the editable fields of id.
func (s *Service[T, In]) Update(ctx context.Context, actorID, id string, in In) (T, error) {
	var zero T
	if err := s.Validate(&in); err != nil {
		return zero, err
	}

	w := Write[In]{ID: id, Input: in, ActorID: actorID, Now: s.now().UTC()}
	var rec T
	err := store.InTx(ctx, s.db, func(q *store.Queries) error {
		var err error
		rec, err = s.res.Update(ctx, q, w)
		return err
	})
	if err != nil {
		return zero, s.mapError(err, "updating")
	}

	s.changed(ctx, actorID, "updated", id)
	return rec, nil
}

// Delete removes id.
func (s *Service[T, In]) Delete(ctx context.Context, actorID, id string) error {
	n, err := s.res.Delete(ctx, s.queries, id)
	if err != nil {
		return s.mapError(err, "deleting")
	}
	if n == 0 {
		return ErrNotFound
	}

	s.changed(ctx, actorID, "deleted", id)
	return nil
}

// Invalidate drops the cached list.
func (s *Service[T, In]) Invalidate(ctx context.Context) {
	if s.list == nil {
		return
	}
	if err := s.list.Invalidate(ctx); err != nil {
		s.logger.Warn("failed to invalidate content cache", "error", err)
	}
}

func (s *Service[T, In]) changed(ctx context.Context, actorID, action, id string) {
	s.Invalidate(ctx)

	if s.events != nil {
		_ = s.events.LogContentEvent(ctx, model.EventLevelInfo,
			fmt.Sprintf("%s %s", singular(s.res.Name), action), actorID, "",
			map[string]any{"resource": s.res.Name, "id": id, "action": action})
	}

	s.mu.Lock()
	hooks := append([]func(context.Context){}, s.onChange...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(ctx)
	}
}

func (s *Service[T, In]) mapError(err error, op string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows), errors.Is(err, ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ErrConflict), isUniqueViolation(err):
		return ErrConflict
	default:
		return fmt.Errorf("%s %s: %w", op, singular(s.res.Name), err)
	}
}

// isUniqueViolation matches SQLite's UNIQUE constraint error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func singular(name string) string {
	switch name {
	case "gallery":
		return "Gallery item"
	case "site-content":
		return "Site content"
	}
	name = strings.TrimSuffix(name, "s")
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
