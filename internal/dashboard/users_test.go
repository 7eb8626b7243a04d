// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package dashboard

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/firstsun-go/internal/auth"
	"github.com/olegiv/firstsun-go/internal/i18n"
	"github.com/olegiv/firstsun-go/internal/model"
	"github.com/olegiv/firstsun-go/internal/testutil"
)

type fakeDirectory struct {
	users     []model.User
	passwords map[string]string
	deleted   []string
}

func (f *fakeDirectory) ListUsers(context.Context) ([]model.User, error) {
	return f.users, nil
}

func (f *fakeDirectory) CreateUser(_ context.Context, in model.CreateUserInput) (model.User, error) {
	u := model.User{ID: "u-" + in.Email, Email: in.Email, Roles: []string{in.Role}}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeDirectory) ChangePassword(_ context.Context, email, newPassword string) error {
	if f.passwords == nil {
		f.passwords = map[string]string{}
	}
	f.passwords[email] = newPassword
	return nil
}

func (f *fakeDirectory) DeleteUser(_ context.Context, userID string) error {
	f.deleted = append(f.deleted, userID)
	return nil
}

func TestUserAdminValidatesLocally(t *testing.T) {
	dir := &fakeDirectory{}
	rec := &recorder{}
	ua := NewUserAdmin(dir, nil, rec, testutil.TestLogger())
	ctx := context.Background()

	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{"valid", "Abcdefg1", true},
		{"no upper or digit", "abcdefgh", false},
		{"too short", "short1A", false},
		{"too long", "Aa1" + strings.Repeat("a", 126), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(dir.users)
			_, err := ua.Create(ctx, model.CreateUserInput{Email: "e@firstsun.example", Password: tt.password})
			if tt.ok {
				assert.NoError(t, err)
				assert.Len(t, dir.users, before+1)
				assert.Equal(t, []string{model.RoleEditor}, dir.users[before].Roles, "role defaults to editor")
			} else {
				assert.Error(t, err)
				assert.Len(t, dir.users, before, "invalid input must not reach the server")
			}
		})
	}
}

func TestUserAdminChangePassword(t *testing.T) {
	dir := &fakeDirectory{}
	rec := &recorder{}
	ua := NewUserAdmin(dir, nil, rec, testutil.TestLogger())
	ctx := context.Background()

	err := ua.ChangePassword(ctx, "e@firstsun.example", model.PasswordForm{NewPassword: "Abcdefg1", ConfirmPassword: "Abcdefg2"})
	assert.Error(t, err)
	assert.Equal(t, []string{"Passwords do not match"}, rec.errors)
	assert.Empty(t, dir.passwords)

	require.NoError(t, ua.ChangePassword(ctx, "e@firstsun.example", model.PasswordForm{NewPassword: "Abcdefg1", ConfirmPassword: "Abcdefg1"}))
	assert.Equal(t, "Abcdefg1", dir.passwords["e@firstsun.example"])
	assert.Equal(t, []string{MsgPasswordChanged}, rec.successes)
}

func TestUserAdminDeleteNeedsConfirmation(t *testing.T) {
	dir := &fakeDirectory{}
	ua := NewUserAdmin(dir, nil, nil, nil)

	d := ua.RequestDelete("u1")
	assert.Empty(t, dir.deleted)
	require.NoError(t, d.Confirm(context.Background()))
	assert.Equal(t, []string{"u1"}, dir.deleted)
}

func TestFileTokenStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "firstsun")
	s := NewFileTokenStore(dir)

	_, ok, err := s.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	sess := auth.Session{
		AccessToken:  "a",
		RefreshToken: "r",
		SessionID:    "sid",
		User:         model.User{ID: "u1", Email: "u@firstsun.example"},
	}
	require.NoError(t, s.Save(sess))

	got, ok, err := NewFileTokenStore(dir).Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", got.AccessToken)
	assert.Equal(t, "sid", got.SessionID)
	assert.Equal(t, "u@firstsun.example", got.User.Email)

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear(), "clearing twice is fine")
	_, ok, err = s.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFilePreferencesWithLocalizer(t *testing.T) {
	dir := t.TempDir()
	catalog := i18n.MustNewCatalog(testutil.TestLogger())

	l := i18n.NewLocalizer(catalog, NewFilePreferences(dir), testutil.TestLogger())
	assert.Equal(t, model.LangArabic, l.Language())
	assert.Equal(t, model.DirRTL, l.Dir())

	require.NoError(t, l.SetLanguage(model.LangEnglish))

	reloaded := i18n.NewLocalizer(catalog, NewFilePreferences(dir), testutil.TestLogger())
	assert.Equal(t, model.LangEnglish, reloaded.Language())
	assert.Equal(t, model.DirLTR, reloaded.Dir())
	assert.Equal(t, "Home", reloaded.T("nav.home"))
}
