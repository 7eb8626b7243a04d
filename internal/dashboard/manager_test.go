// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/firstsun-go/internal/model"
	"github.com/olegiv/firstsun-go/internal/testutil"
	"github.com/olegiv/firstsun-go/internal/validation"
)

// fakeRemote stores translations in memory and counts calls.
type fakeRemote struct {
	mu      sync.Mutex
	rows    []model.Translation
	nextID  int
	calls   map[string]int
	failErr error
	onList  func()
}

func newFakeRemote(rows ...model.Translation) *fakeRemote {
	return &fakeRemote{rows: rows, calls: map[string]int{}}
}

func (f *fakeRemote) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeRemote) List(context.Context) ([]model.Translation, error) {
	f.mu.Lock()
	f.calls["list"]++
	rows := append([]model.Translation(nil), f.rows...)
	hook := f.onList
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return rows, nil
}

func (f *fakeRemote) Create(_ context.Context, in model.TranslationInput) (model.Translation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["create"]++
	if f.failErr != nil {
		return model.Translation{}, f.failErr
	}
	f.nextID++
	row := model.Translation{ID: fmt.Sprintf("t%d", f.nextID), Key: in.Key, Ar: in.Ar, En: in.En}
	f.rows = append(f.rows, row)
	return row, nil
}

func (f *fakeRemote) Update(_ context.Context, id string, in model.TranslationInput) (model.Translation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["update"]++
	if f.failErr != nil {
		return model.Translation{}, f.failErr
	}
	for i, row := range f.rows {
		if row.ID == id {
			f.rows[i].Key, f.rows[i].Ar, f.rows[i].En = in.Key, in.Ar, in.En
			return f.rows[i], nil
		}
	}
	return model.Translation{}, errors.New("not found")
}

func (f *fakeRemote) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["delete"]++
	if f.failErr != nil {
		return f.failErr
	}
	for i, row := range f.rows {
		if row.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func newTranslationManager(remote *fakeRemote) (*Manager[model.Translation, model.TranslationInput], *recorder) {
	rec := &recorder{}
	m := NewManager[model.Translation, model.TranslationInput](remote, ManagerOptions{
		Label:     "Translation",
		Validator: validation.New(),
		Notifier:  rec,
		Logger:    testutil.TestLogger(),
	})
	return m, rec
}

func TestManagerModes(t *testing.T) {
	m, _ := newTranslationManager(newFakeRemote())

	assert.True(t, m.CanAdd())
	require.NoError(t, m.StartAdd())
	assert.Equal(t, ModeAdding, m.Mode())
	assert.False(t, m.CanEdit())
	assert.ErrorIs(t, m.StartEdit("t1"), ErrBusy)
	assert.ErrorIs(t, m.StartAdd(), ErrBusy)

	m.Cancel()
	assert.Equal(t, ModeIdle, m.Mode())
	require.NoError(t, m.StartEdit("t1"))
	assert.Equal(t, "t1", m.EditingID())
	assert.ErrorIs(t, m.StartAdd(), ErrBusy)
}

func TestManagerSaveValidatesFirst(t *testing.T) {
	remote := newFakeRemote()
	m, rec := newTranslationManager(remote)
	require.NoError(t, m.StartAdd())

	_, err := m.Save(context.Background(), model.TranslationInput{Key: "bad key!", Ar: "  ", En: "Hello"})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, 0, remote.count("create"), "invalid input must not reach the server")
	assert.Contains(t, m.FieldErrors(), "key")
	assert.Contains(t, m.FieldErrors(), "ar")
	assert.Equal(t, ModeAdding, m.Mode())
	assert.Equal(t, []string{MsgFixValidation}, rec.errors)
}

func TestManagerSaveWithoutForm(t *testing.T) {
	remote := newFakeRemote()
	m, _ := newTranslationManager(remote)

	_, err := m.Save(context.Background(), model.TranslationInput{Key: "a", Ar: "ب", En: "b"})

	assert.ErrorIs(t, err, ErrNoForm)
	assert.Equal(t, 0, remote.count("create"))
}

func TestManagerCreateAndUpdate(t *testing.T) {
	remote := newFakeRemote()
	m, rec := newTranslationManager(remote)
	ctx := context.Background()

	rows, err := m.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
	_, _ = m.List(ctx)
	assert.Equal(t, 1, remote.count("list"), "list is cached")

	require.NoError(t, m.StartAdd())
	created, err := m.Save(ctx, model.TranslationInput{Key: " nav.home ", Ar: "الرئيسية", En: "Home"})
	require.NoError(t, err)
	assert.Equal(t, "nav.home", created.Key, "input is trimmed")
	assert.Equal(t, ModeIdle, m.Mode())

	rows, err = m.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 2, remote.count("list"), "save invalidates the cache")

	require.NoError(t, m.StartEdit(created.ID))
	updated, err := m.Save(ctx, model.TranslationInput{Key: "nav.home", Ar: "الرئيسية", En: "Start"})
	require.NoError(t, err)
	assert.Equal(t, "Start", updated.En)
	assert.Equal(t, []string{"Translation created", "Translation updated"}, rec.successes)
}

func TestManagerListAcrossInvalidateNotCached(t *testing.T) {
	remote := newFakeRemote(model.Translation{ID: "t1", Key: "nav.home", Ar: "الرئيسية", En: "Home"})
	m, _ := newTranslationManager(remote)
	ctx := context.Background()

	remote.onList = m.Invalidate
	rows, err := m.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	remote.onList = nil
	_, err = m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, remote.count("list"), "rows fetched across an invalidation are refetched")

	_, err = m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, remote.count("list"))
}

func TestManagerRemoteFailureKeepsForm(t *testing.T) {
	remote := newFakeRemote()
	remote.failErr = errors.New("server unavailable")
	m, rec := newTranslationManager(remote)
	require.NoError(t, m.StartAdd())

	_, err := m.Save(context.Background(), model.TranslationInput{Key: "k", Ar: "ع", En: "e"})

	assert.Error(t, err)
	assert.Equal(t, ModeAdding, m.Mode())
	assert.Equal(t, []string{"Failed to create translation"}, rec.errors)
	assert.Empty(t, rec.successes)
}

func TestManagerDeleteNeedsConfirmation(t *testing.T) {
	remote := newFakeRemote(model.Translation{ID: "t1", Key: "a", Ar: "ا", En: "a"})
	m, rec := newTranslationManager(remote)
	ctx := context.Background()

	d := m.RequestDelete("t1")
	assert.Equal(t, "t1", d.ID())
	assert.Equal(t, 0, remote.count("delete"), "requesting alone deletes nothing")

	require.NoError(t, d.Confirm(ctx))
	assert.ErrorIs(t, d.Confirm(ctx), ErrAlreadyDone)
	assert.Equal(t, 1, remote.count("delete"))
	assert.Equal(t, []string{"Translation deleted"}, rec.successes)

	cancelled := m.RequestDelete("t1")
	cancelled.Cancel()
	assert.ErrorIs(t, cancelled.Confirm(ctx), ErrAlreadyDone)
	assert.Equal(t, 1, remote.count("delete"))
}

func TestFilter(t *testing.T) {
	products := []model.Product{
		{ID: "1", NameEn: "Solar Panel", NameAr: "لوح شمسي", DescriptionEn: "Mono", DescriptionAr: "أحادي", BadgeEn: "New"},
		{ID: "2", NameEn: "Inverter", NameAr: "عاكس", DescriptionEn: "Hybrid inverter", DescriptionAr: "هجين"},
	}

	tests := []struct {
		name  string
		query string
		lang  string
		want  []string
	}{
		{"empty query", "", model.LangEnglish, []string{"1", "2"}},
		{"case insensitive", "PANEL", model.LangEnglish, []string{"1"}},
		{"description", "hybrid", model.LangEnglish, []string{"2"}},
		{"badge", "new", model.LangEnglish, []string{"1"}},
		{"arabic", "عاكس", model.LangArabic, []string{"2"}},
		{"english query in arabic", "panel", model.LangArabic, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := []string{}
			for _, p := range Filter(products, tt.query, tt.lang) {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
