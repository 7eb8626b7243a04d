// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/firstsun-go/internal/model"
	"github.com/olegiv/firstsun-go/internal/testutil"
	"github.com/olegiv/firstsun-go/internal/validation"
)

const testSecret = "unit-test-token-secret-32-bytes!"

type recordedEvent struct {
	category string
	message  string
	userID   string
	metadata map[string]any
}

type fakeEvents struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeEvents) LogAuthEvent(_ context.Context, _, message, userID, _ string, metadata map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{category: model.EventCategoryAuth, message: message, userID: userID, metadata: metadata})
	return nil
}

func (f *fakeEvents) LogUserEvent(_ context.Context, _, message, userID, _ string, _ map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{category: model.EventCategoryUser, message: message, userID: userID})
	return nil
}

func (f *fakeEvents) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.message)
	}
	return out
}

func newTestService(t *testing.T) (*Service, *fakeEvents) {
	t.Helper()
	db := testutil.TestDB(t)
	events := &fakeEvents{}
	svc := NewService(db, Options{
		Tokens:     NewTokens(testSecret, time.Hour, nil),
		RefreshTTL: 24 * time.Hour,
		Events:     events,
		Logger:     testutil.TestLogger(),
	})
	return svc, events
}

func mustSetupAdmin(t *testing.T, svc *Service) (model.User, Session) {
	t.Helper()
	ctx := context.Background()
	admin, err := svc.SetupAdmin(ctx, "admin@firstsun.example", "AdminPass1")
	require.NoError(t, err)
	sess, err := svc.SignIn(ctx, "admin@firstsun.example", "AdminPass1", ClientInfo{})
	require.NoError(t, err)
	return admin, sess
}

func TestService_SignUpGrantsNoRole(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, "  New@Example.com ", "Abcdefg1")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Empty(t, user.Roles)

	for _, role := range []string{model.RoleAdmin, model.RoleEditor} {
		ok, err := svc.HasRole(ctx, user.ID, role)
		require.NoError(t, err)
		assert.False(t, ok, "role %s", role)
	}
}

func TestService_SignUpValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "weak@example.com", "abcdefgh")
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "password")

	_, err = svc.SignUp(ctx, "not-an-email", "Abcdefg1")
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "email")
}

func TestService_SignUpDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "dup@example.com", "Abcdefg1")
	require.NoError(t, err)
	_, err = svc.SignUp(ctx, "DUP@example.com", "Abcdefg1")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_SignIn(t *testing.T) {
	svc, events := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "user@example.com", "Abcdefg1")
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, "user@example.com", "Wrongpass1", ClientInfo{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.SignIn(ctx, "nobody@example.com", "Abcdefg1", ClientInfo{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	sess, err := svc.SignIn(ctx, "USER@example.com", "Abcdefg1", ClientInfo{
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
		IPAddress: "10.0.0.1",
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer", sess.TokenType)
	assert.EqualValues(t, 3600, sess.ExpiresIn)
	assert.NotEmpty(t, sess.AccessToken)
	assert.NotEmpty(t, sess.RefreshToken)

	p, err := svc.VerifyAccessToken(ctx, sess.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, p.UserID)
	assert.Equal(t, "user@example.com", p.Email)

	assert.Contains(t, events.messages(), "User logged in")
}

type fakeGeo map[string]string

func (f fakeGeo) Country(ip string) string { return f[ip] }

func TestService_SignInRecordsCountry(t *testing.T) {
	db := testutil.TestDB(t)
	events := &fakeEvents{}
	svc := NewService(db, Options{
		Tokens:     NewTokens(testSecret, time.Hour, nil),
		RefreshTTL: 24 * time.Hour,
		Events:     events,
		Geo:        fakeGeo{"203.0.113.7": "SA"},
		Logger:     testutil.TestLogger(),
	})
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "user@example.com", "Abcdefg1")
	require.NoError(t, err)
	_, err = svc.SignIn(ctx, "user@example.com", "Wrongpass1", ClientInfo{IPAddress: "203.0.113.7"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.SignIn(ctx, "user@example.com", "Abcdefg1", ClientInfo{IPAddress: "203.0.113.7"})
	require.NoError(t, err)
	_, err = svc.SignIn(ctx, "user@example.com", "Abcdefg1", ClientInfo{IPAddress: "198.51.100.1"})
	require.NoError(t, err)

	events.mu.Lock()
	defer events.mu.Unlock()
	var withCountry, without int
	for _, e := range events.events {
		switch e.message {
		case "Failed login attempt: wrong password", "User logged in":
			if e.metadata["country"] == "SA" {
				withCountry++
			} else {
				assert.NotContains(t, e.metadata, "country")
				without++
			}
		}
	}
	assert.Equal(t, 2, withCountry)
	assert.Equal(t, 1, without)
}

func TestService_VerifyAccessTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.VerifyAccessToken(context.Background(), "not-a-jwt")
	assert.True(t, IsUnauthenticated(err))

	other := NewTokens("another-secret-that-is-32-bytes!", time.Hour, nil)
	forged, _, err := other.Issue("user", "session", "x@example.com")
	require.NoError(t, err)
	_, err = svc.VerifyAccessToken(context.Background(), forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_Refresh(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "user@example.com", "Abcdefg1")
	require.NoError(t, err)
	sess, err := svc.SignIn(ctx, "user@example.com", "Abcdefg1", ClientInfo{})
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, sess.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, sess.RefreshToken, next.RefreshToken)

	_, err = svc.Refresh(ctx, sess.RefreshToken)
	assert.ErrorIs(t, err, ErrSessionNotFound, "old refresh token must not be reusable")

	_, err = svc.Refresh(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_SignOutScopes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "user@example.com", "Abcdefg1")
	require.NoError(t, err)
	a, err := svc.SignIn(ctx, "user@example.com", "Abcdefg1", ClientInfo{})
	require.NoError(t, err)
	b, err := svc.SignIn(ctx, "user@example.com", "Abcdefg1", ClientInfo{})
	require.NoError(t, err)
	c, err := svc.SignIn(ctx, "user@example.com", "Abcdefg1", ClientInfo{})
	require.NoError(t, err)

	pa, err := svc.VerifyAccessToken(ctx, a.AccessToken)
	require.NoError(t, err)
	require.NoError(t, svc.SignOut(ctx, pa, ScopeLocal))

	_, err = svc.VerifyAccessToken(ctx, a.AccessToken)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	pb, err := svc.VerifyAccessToken(ctx, b.AccessToken)
	require.NoError(t, err, "local sign-out must keep other sessions")

	assert.ErrorIs(t, svc.SignOut(ctx, pa, ScopeLocal), ErrSessionNotFound)

	require.NoError(t, svc.SignOut(ctx, pb, ScopeGlobal))
	_, err = svc.VerifyAccessToken(ctx, c.AccessToken)
	assert.ErrorIs(t, err, ErrSessionNotFound, "global sign-out must revoke every session")
}

func TestService_HasRoleInvalid(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.HasRole(context.Background(), "someone", "superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestService_SetupAdmin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SetupAdmin(ctx, "", "")
	assert.ErrorIs(t, err, ErrSetupDisabled)

	admin, err := svc.SetupAdmin(ctx, "Admin@FirstSun.example", "AdminPass1")
	require.NoError(t, err)
	assert.Equal(t, "admin@firstsun.example", admin.Email)

	ok, err := svc.HasRole(ctx, admin.ID, model.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.SetupAdmin(ctx, "second@firstsun.example", "AdminPass1")
	assert.ErrorIs(t, err, ErrAdminExists)
}

func TestService_CreateAndListUsers(t *testing.T) {
	svc, events := newTestService(t)
	ctx := context.Background()
	admin, _ := mustSetupAdmin(t, svc)

	editor, err := svc.CreateUser(ctx, admin.ID, model.CreateUserInput{
		Email: "editor@example.com", Password: "Editor123",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{model.RoleEditor}, editor.Roles)

	_, err = svc.CreateUser(ctx, admin.ID, model.CreateUserInput{
		Email: "editor@example.com", Password: "Editor123", Role: model.RoleEditor,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.CreateUser(ctx, admin.ID, model.CreateUserInput{
		Email: "x@example.com", Password: "Editor123", Role: model.RoleUser,
	})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "role")

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	byEmail := map[string]model.User{}
	for _, u := range users {
		byEmail[u.Email] = u
	}
	assert.True(t, byEmail["admin@firstsun.example"].HasRole(model.RoleAdmin))
	assert.True(t, byEmail["editor@example.com"].HasRole(model.RoleEditor))

	assert.Contains(t, events.messages(), "User created")
}

func TestService_ChangePasswordRevokesSessions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	admin, _ := mustSetupAdmin(t, svc)

	_, err := svc.CreateUser(ctx, admin.ID, model.CreateUserInput{
		Email: "editor@example.com", Password: "Editor123", Role: model.RoleEditor,
	})
	require.NoError(t, err)
	old, err := svc.SignIn(ctx, "editor@example.com", "Editor123", ClientInfo{})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, admin.ID, model.ChangePasswordInput{
		Email: " EDITOR@example.com ", NewPassword: "Changed123",
	})
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(ctx, old.AccessToken)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.SignIn(ctx, "editor@example.com", "Editor123", ClientInfo{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.SignIn(ctx, "editor@example.com", "Changed123", ClientInfo{})
	assert.NoError(t, err)

	err = svc.ChangePassword(ctx, admin.ID, model.ChangePasswordInput{
		Email: "ghost@example.com", NewPassword: "Changed123",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Contains(t, err.Error(), "ghost@example.com")
}

func TestService_DeleteUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	admin, _ := mustSetupAdmin(t, svc)

	editor, err := svc.CreateUser(ctx, admin.ID, model.CreateUserInput{
		Email: "editor@example.com", Password: "Editor123", Role: model.RoleEditor,
	})
	require.NoError(t, err)
	sess, err := svc.SignIn(ctx, "editor@example.com", "Editor123", ClientInfo{})
	require.NoError(t, err)

	err = svc.DeleteUser(ctx, admin.ID, model.DeleteUserInput{UserID: admin.ID})
	assert.ErrorIs(t, err, ErrCannotDeleteSelf)

	require.NoError(t, svc.DeleteUser(ctx, admin.ID, model.DeleteUserInput{UserID: editor.ID}))
	_, err = svc.VerifyAccessToken(ctx, sess.AccessToken)
	assert.True(t, IsUnauthenticated(err))

	err = svc.DeleteUser(ctx, admin.ID, model.DeleteUserInput{UserID: editor.ID})
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = svc.DeleteUser(ctx, admin.ID, model.DeleteUserInput{UserID: "not-a-uuid"})
	var verrs validation.Errors
	assert.True(t, errors.As(err, &verrs))
}

func TestService_PurgeSessions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, sess := mustSetupAdmin(t, svc)

	p, err := svc.VerifyAccessToken(ctx, sess.AccessToken)
	require.NoError(t, err)
	require.NoError(t, svc.SignOut(ctx, p, ScopeLocal))

	n, err := svc.PurgeSessions(ctx, -time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestDeviceLabel(t *testing.T) {
	assert.Equal(t, "Unknown device", DeviceLabel(""))
	label := DeviceLabel("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1")
	assert.Contains(t, label, "(mobile)")
}
