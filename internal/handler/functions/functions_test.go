// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/firstsun-go/internal/auth"
	"github.com/olegiv/firstsun-go/internal/handler"
	"github.com/olegiv/firstsun-go/internal/middleware"
	"github.com/olegiv/firstsun-go/internal/model"
	"github.com/olegiv/firstsun-go/internal/testutil"
)

const (
	testSecret    = "unit-test-token-secret-32-bytes!"
	adminEmail    = "admin@firstsun.example"
	adminPassword = "AdminPass1"
	userPassword  = "UserPass12"
)

type testEnv struct {
	t      *testing.T
	router http.Handler
	auth   *auth.Service
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()
	logger := testutil.TestLogger()
	db := testutil.TestDB(t)

	authSvc := auth.NewService(db, auth.Options{
		Tokens: auth.NewTokens(testSecret, time.Hour, nil),
		Logger: logger,
	})
	opts.Auth = authSvc
	opts.Logger = logger
	if opts.RateLimit == 0 {
		opts.RateLimit = 1000
	}

	r := chi.NewRouter()
	r.Route(handler.RouteFunctions, NewHandler(opts).Register)
	return &testEnv{t: t, router: r, auth: authSvc}
}

// newAdminEnv returns an environment with an administrator already set up.
func newAdminEnv(t *testing.T) (*testEnv, string) {
	t.Helper()
	e := newTestEnv(t, Options{})
	admin, err := e.auth.SetupAdmin(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)
	return e, admin.ID
}

func (e *testEnv) call(method, name string, body any, token string) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, handler.RouteFunctions+name, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) signIn(email, password string) string {
	e.t.Helper()
	sess, err := e.auth.SignIn(context.Background(), email, password, auth.ClientInfo{})
	require.NoError(e.t, err)
	return sess.AccessToken
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestPreflight(t *testing.T) {
	e := newTestEnv(t, Options{})

	rr := e.call(http.MethodOptions, handler.FunctionCreateUser, nil, "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, middleware.CORSAllowHeaders, rr.Header().Get("Access-Control-Allow-Headers"))
	assert.Empty(t, rr.Body.String())
}

func TestAdminGate(t *testing.T) {
	e, adminID := newAdminEnv(t)
	ctx := context.Background()

	_, err := e.auth.CreateUser(ctx, adminID, model.CreateUserInput{
		Email: "editor@firstsun.example", Password: userPassword, Role: model.RoleEditor,
	})
	require.NoError(t, err)
	_, err = e.auth.SignUp(ctx, "plain@firstsun.example", userPassword)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		status int
		msg    string
	}{
		{"no token", "", http.StatusUnauthorized, MsgUnauthorized},
		{"garbage token", "not-a-jwt", http.StatusUnauthorized, MsgUnauthorized},
		{"editor", e.signIn("editor@firstsun.example", userPassword), http.StatusForbidden, MsgAdminRequired},
		{"no role", e.signIn("plain@firstsun.example", userPassword), http.StatusForbidden, MsgAdminRequired},
	}

	for _, name := range []string{handler.FunctionListUsers, handler.FunctionCreateUser, handler.FunctionChangePassword, handler.FunctionDeleteUser} {
		for _, tt := range tests {
			t.Run(strings.TrimPrefix(name, "/")+"/"+tt.name, func(t *testing.T) {
				rr := e.call(http.MethodPost, name, map[string]string{}, tt.token)
				assert.Equal(t, tt.status, rr.Code)
				assert.Equal(t, tt.msg, decodeBody[errorBody](t, rr).Error)
			})
		}
	}
}

func TestListUsers(t *testing.T) {
	e, _ := newAdminEnv(t)
	token := e.signIn(adminEmail, adminPassword)

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		rr := e.call(method, handler.FunctionListUsers, nil, token)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		resp := decodeBody[UserListResponse](t, rr)
		require.Len(t, resp.Users, 1)
		assert.Equal(t, adminEmail, resp.Users[0].Email)
		assert.Equal(t, []string{model.RoleAdmin}, resp.Users[0].Roles)
	}
}

func TestCreateUser(t *testing.T) {
	e, _ := newAdminEnv(t)
	token := e.signIn(adminEmail, adminPassword)

	t.Run("validation", func(t *testing.T) {
		rr := e.call(http.MethodPost, handler.FunctionCreateUser, map[string]string{
			"email": "not-an-email", "password": "abcdefgh", "role": "owner",
		}, token)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		body := decodeBody[errorBody](t, rr)
		assert.True(t, strings.HasPrefix(body.Error, "Validation failed: "), body.Error)
		assert.Contains(t, body.Fields, "email")
		assert.Contains(t, body.Fields, "password")
		assert.Contains(t, body.Fields, "role")
	})

	t.Run("created", func(t *testing.T) {
		rr := e.call(http.MethodPost, handler.FunctionCreateUser, map[string]string{
			"email": "New.Editor@FirstSun.example", "password": userPassword, "role": model.RoleEditor,
		}, token)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		resp := decodeBody[SuccessResponse](t, rr)
		assert.True(t, resp.Success)
		require.NotNil(t, resp.User)
		assert.Equal(t, "new.editor@firstsun.example", resp.User.Email)

		ok, err := e.auth.HasRole(context.Background(), resp.User.ID, model.RoleEditor)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("duplicate", func(t *testing.T) {
		rr := e.call(http.MethodPost, handler.FunctionCreateUser, map[string]string{
			"email": "new.editor@firstsun.example", "password": userPassword, "role": model.RoleEditor,
		}, token)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, MsgEmailTaken, decodeBody[errorBody](t, rr).Error)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, handler.RouteFunctions+handler.FunctionCreateUser, strings.NewReader("{"))
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		e.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, MsgInvalidBody, decodeBody[errorBody](t, rr).Error)
	})
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	e, adminID := newAdminEnv(t)
	ctx := context.Background()
	token := e.signIn(adminEmail, adminPassword)

	_, err := e.auth.CreateUser(ctx, adminID, model.CreateUserInput{
		Email: "editor@firstsun.example", Password: userPassword, Role: model.RoleEditor,
	})
	require.NoError(t, err)
	editorToken := e.signIn("editor@firstsun.example", userPassword)

	rr := e.call(http.MethodPost, handler.FunctionChangePassword, map[string]string{
		"email": "Editor@FirstSun.example", "newPassword": "Changed123",
	}, token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.True(t, decodeBody[SuccessResponse](t, rr).Success)

	_, err = e.auth.VerifyAccessToken(ctx, editorToken)
	assert.Error(t, err, "old session must be revoked")

	_, err = e.auth.SignIn(ctx, "editor@firstsun.example", userPassword, auth.ClientInfo{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = e.auth.SignIn(ctx, "editor@firstsun.example", "Changed123", auth.ClientInfo{})
	assert.NoError(t, err)
}

func TestChangePasswordErrors(t *testing.T) {
	e, _ := newAdminEnv(t)
	token := e.signIn(adminEmail, adminPassword)

	tests := []struct {
		name   string
		body   map[string]string
		status int
		msg    string
	}{
		{
			name:   "unknown email",
			body:   map[string]string{"email": "Nobody@firstsun.example", "newPassword": "Changed123"},
			status: http.StatusNotFound,
			msg:    "User with email Nobody@firstsun.example not found",
		},
		{
			name:   "weak password",
			body:   map[string]string{"email": adminEmail, "newPassword": "short1A"},
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := e.call(http.MethodPost, handler.FunctionChangePassword, tt.body, token)
			assert.Equal(t, tt.status, rr.Code)
			body := decodeBody[errorBody](t, rr)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, body.Error)
			} else {
				assert.Contains(t, body.Fields, "newPassword")
			}
		})
	}
}

func TestDeleteUser(t *testing.T) {
	e, adminID := newAdminEnv(t)
	token := e.signIn(adminEmail, adminPassword)

	victim, err := e.auth.SignUp(context.Background(), "victim@firstsun.example", userPassword)
	require.NoError(t, err)

	tests := []struct {
		name   string
		userID string
		status int
	}{
		{"invalid id", "not-a-uuid", http.StatusBadRequest},
		{"self", adminID, http.StatusBadRequest},
		{"other", victim.ID, http.StatusOK},
		{"already deleted", victim.ID, http.StatusNotFound},
		{"unknown", uuid.NewString(), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := e.call(http.MethodPost, handler.FunctionDeleteUser, map[string]string{"userId": tt.userID}, token)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
		})
	}

	_, err = e.auth.GetUser(context.Background(), victim.ID)
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestSetupAdmin(t *testing.T) {
	t.Run("once", func(t *testing.T) {
		e := newTestEnv(t, Options{AdminEmail: adminEmail, AdminPassword: adminPassword})

		rr := e.call(http.MethodPost, handler.FunctionSetupAdmin, nil, "")
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		resp := decodeBody[SuccessResponse](t, rr)
		assert.True(t, resp.Success)
		assert.Equal(t, MsgAdminCreated, resp.Message)
		assert.Equal(t, adminEmail, resp.Email)

		rr = e.call(http.MethodPost, handler.FunctionSetupAdmin, nil, "")
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, MsgAdminExists, decodeBody[errorBody](t, rr).Error)
	})

	t.Run("not configured", func(t *testing.T) {
		e := newTestEnv(t, Options{})

		rr := e.call(http.MethodPost, handler.FunctionSetupAdmin, nil, "")
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})

	t.Run("weak bootstrap password", func(t *testing.T) {
		e := newTestEnv(t, Options{AdminEmail: adminEmail, AdminPassword: "weak"})

		rr := e.call(http.MethodPost, handler.FunctionSetupAdmin, nil, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeBody[errorBody](t, rr).Fields, "password")
	})
}

func TestRateLimit(t *testing.T) {
	e := newTestEnv(t, Options{RateLimit: 2, RateWindow: time.Minute})

	for range 2 {
		rr := e.call(http.MethodGet, handler.FunctionListUsers, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	}
	rr := e.call(http.MethodGet, handler.FunctionListUsers, nil, "")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}
