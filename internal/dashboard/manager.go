// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/olegiv/firstsun-go/internal/validation"
)

// MsgFixValidation is shown when a form fails validation.
const MsgFixValidation = "Please fix validation errors"

// Record is a row a Manager can list, search and address.
type Record interface {
	RecordID() string
	Matches(query, lang string) bool
}

// Remote is the server side of a content type. *client.Resource
// implements it.
type Remote[T any, In any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, in In) (T, error)
	Update(ctx context.Context, id string, in In) (T, error)
	Delete(ctx context.Context, id string) error
}

// Mode is the form state of a Manager.
type Mode int

// Form states. Only one record is added or edited at a time.
const (
	ModeIdle Mode = iota
	ModeAdding
	ModeEditing
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeAdding:
		return "adding"
	case ModeEditing:
		return "editing"
	default:
		return "idle"
	}
}

// ManagerOptions configures a Manager.
type ManagerOptions struct {
	// Label names one record in notifications, e.g. "Product".
	Label     string
	Validator *validation.Validator
	Notifier  Notifier
	Logger    *slog.Logger
}

// Manager is the dashboard list and form of one content type. Input is
// validated locally before anything is sent; the server validates again.
type Manager[T Record, In any] struct {
	remote   Remote[T, In]
	label    string
	validate *validation.Validator
	notify   Notifier
	logger   *slog.Logger

	mu          sync.Mutex
	mode        Mode
	editingID   string
	rows        []T
	cached      bool
	listGen     uint64
	fieldErrors validation.Errors
}

// NewManager creates an idle manager.
func NewManager[T Record, In any](remote Remote[T, In], opts ManagerOptions) *Manager[T, In] {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Validator == nil {
		opts.Validator = validation.New()
	}
	if opts.Label == "" {
		opts.Label = "Record"
	}
	return &Manager[T, In]{
		remote:   remote,
		label:    opts.Label,
		validate: opts.Validator,
		notify:   opts.Notifier,
		logger:   opts.Logger,
	}
}

// List returns the rows, fetching them when the cache is empty or stale.
// Rows fetched across an Invalidate are returned but not cached.
func (m *Manager[T, In]) List(ctx context.Context) ([]T, error) {
	m.mu.Lock()
	if m.cached {
		rows := append([]T(nil), m.rows...)
		m.mu.Unlock()
		return rows, nil
	}
	gen := m.listGen
	m.mu.Unlock()

	rows, err := m.remote.List(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if gen == m.listGen {
		m.rows = rows
		m.cached = true
	}
	m.mu.Unlock()
	return append([]T(nil), rows...), nil
}

// Invalidate drops the cached rows.
func (m *Manager[T, In]) Invalidate() {
	m.mu.Lock()
	m.cached = false
	m.rows = nil
	m.listGen++
	m.mu.Unlock()
}

// Filter returns the rows matching query in lang.
func (m *Manager[T, In]) Filter(rows []T, query, lang string) []T {
	return Filter(rows, query, lang)
}

// Filter returns the rows whose search fields in lang contain query,
// ignoring case. An empty query keeps every row.
func Filter[T Record](rows []T, query, lang string) []T {
	if strings.TrimSpace(query) == "" {
		return rows
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if row.Matches(query, lang) {
			out = append(out, row)
		}
	}
	return out
}

// Mode returns the form state.
func (m *Manager[T, In]) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// EditingID returns the id of the record being edited.
func (m *Manager[T, In]) EditingID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editingID
}

// CanAdd reports whether the add form may be opened.
func (m *Manager[T, In]) CanAdd() bool {
	return m.Mode() == ModeIdle
}

// CanEdit reports whether a record may be opened for editing.
func (m *Manager[T, In]) CanEdit() bool {
	return m.Mode() == ModeIdle
}

// StartAdd opens the add form.
func (m *Manager[T, In]) StartAdd() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode != ModeIdle {
		return ErrBusy
	}
	m.mode = ModeAdding
	m.fieldErrors = nil
	return nil
}

// StartEdit opens the edit form for id.
func (m *Manager[T, In]) StartEdit(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode != ModeIdle {
		return ErrBusy
	}
	m.mode = ModeEditing
	m.editingID = id
	m.fieldErrors = nil
	return nil
}

// Cancel closes the form without saving.
func (m *Manager[T, In]) Cancel() {
	m.mu.Lock()
	m.reset()
	m.mu.Unlock()
}

// FieldErrors returns the errors of the last failed Save.
func (m *Manager[T, In]) FieldErrors() validation.Errors {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.fieldErrors) == 0 {
		return nil
	}
	out := make(validation.Errors, len(m.fieldErrors))
	for k, v := range m.fieldErrors {
		out[k] = v
	}
	return out
}

// Save validates in and creates or updates the record of the open form.
// Invalid input is reported without a remote call. On a remote failure
// the form stays open.
func (m *Manager[T, In]) Save(ctx context.Context, in In) (T, error) {
	var zero T

	m.mu.Lock()
	mode, id := m.mode, m.editingID
	m.mu.Unlock()
	if mode == ModeIdle {
		return zero, ErrNoForm
	}

	if err := m.validate.Struct(&in); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			m.setFieldErrors(verrs)
		}
		m.notifyError(MsgFixValidation, err)
		return zero, err
	}

	var (
		row  T
		err  error
		verb string
	)
	if mode == ModeAdding {
		row, err = m.remote.Create(ctx, in)
		verb = "create"
	} else {
		row, err = m.remote.Update(ctx, id, in)
		verb = "update"
	}
	if err != nil {
		var fe interface{ FieldErrors() validation.Errors }
		if errors.As(err, &fe) && len(fe.FieldErrors()) > 0 {
			m.setFieldErrors(fe.FieldErrors())
		}
		m.logger.Warn("save failed", "resource", m.label, "action", verb, "id", id, "error", err)
		m.notifyError("Failed to "+verb+" "+strings.ToLower(m.label), err)
		return zero, err
	}

	m.mu.Lock()
	m.reset()
	m.cached = false
	m.mu.Unlock()

	if mode == ModeAdding {
		m.notifySuccess(m.label + " created")
	} else {
		m.notifySuccess(m.label + " updated")
	}
	return row, nil
}

// RequestDelete asks for confirmation before deleting id. Nothing is
// deleted until Confirm is called on the result.
func (m *Manager[T, In]) RequestDelete(id string) *DeleteConfirmation {
	return &DeleteConfirmation{
		id: id,
		run: func(ctx context.Context) error {
			if err := m.remote.Delete(ctx, id); err != nil {
				m.logger.Warn("delete failed", "resource", m.label, "id", id, "error", err)
				m.notifyError("Failed to delete "+strings.ToLower(m.label), err)
				return err
			}
			m.Invalidate()
			m.notifySuccess(m.label + " deleted")
			return nil
		},
	}
}

func (m *Manager[T, In]) reset() {
	m.mode = ModeIdle
	m.editingID = ""
	m.fieldErrors = nil
}

func (m *Manager[T, In]) setFieldErrors(errs validation.Errors) {
	m.mu.Lock()
	m.fieldErrors = errs
	m.mu.Unlock()
}

func (m *Manager[T, In]) notifySuccess(msg string) {
	if m.notify != nil {
		m.notify.Success(msg)
	}
}

func (m *Manager[T, In]) notifyError(msg string, err error) {
	if m.notify != nil {
		m.notify.Error(msg, err)
	}
}

// DeleteConfirmation is a pending delete. It runs at most once.
type DeleteConfirmation struct {
	id  string
	run func(ctx context.Context) error

	mu   sync.Mutex
	done bool
}

// ID returns the record to delete.
func (d *DeleteConfirmation) ID() string { return d.id }

// Confirm performs the delete. A second call returns ErrAlreadyDone.
func (d *DeleteConfirmation) Confirm(ctx context.Context) error {
	d.mu.Lock()
	if d.done {
		d.mu.Unlock()
		return ErrAlreadyDone
	}
	d.done = true
	d.mu.Unlock()
	return d.run(ctx)
}

// Cancel discards the request.
func (d *DeleteConfirmation) Cancel() {
	d.mu.Lock()
	d.done = true
	d.mu.Unlock()
}
