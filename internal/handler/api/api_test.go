// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/firstsun-go/internal/auth"
	"github.com/olegiv/firstsun-go/internal/cache"
	"github.com/olegiv/firstsun-go/internal/content"
	"github.com/olegiv/firstsun-go/internal/handler"
	"github.com/olegiv/firstsun-go/internal/i18n"
	"github.com/olegiv/firstsun-go/internal/middleware"
	"github.com/olegiv/firstsun-go/internal/model"
	"github.com/olegiv/firstsun-go/internal/service"
	"github.com/olegiv/firstsun-go/internal/session"
	"github.com/olegiv/firstsun-go/internal/store"
	"github.com/olegiv/firstsun-go/internal/testutil"
)

const testSecret = "unit-test-token-secret-32-bytes!"

const (
	adminEmail    = "admin@firstsun.example"
	adminPassword = "AdminPass1"
	userPassword  = "UserPass12"
)

type testEnv struct {
	t       *testing.T
	router  http.Handler
	auth    *auth.Service
	handler *Handler
	adminID string
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithLogin(t, middleware.LoginProtectionConfig{IPRateLimit: 100, IPBurst: 100})
}

func newTestEnvWithLogin(t *testing.T, lpCfg middleware.LoginProtectionConfig) *testEnv {
	t.Helper()
	ctx := context.Background()
	logger := testutil.TestLogger()

	db := testutil.TestDB(t)
	require.NoError(t, store.Seed(ctx, db))

	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })
	events := service.NewEventService(db, logger)
	opts := content.Options{Cache: c, CacheTTL: time.Minute, Events: events, Logger: logger}

	authSvc := auth.NewService(db, auth.Options{
		Tokens: auth.NewTokens(testSecret, time.Hour, nil),
		Logger: logger,
	})
	sm := session.New(db, true)

	h := NewHandler(Options{
		Auth:            authSvc,
		Sessions:        sm,
		LoginProtection: middleware.NewLoginProtection(lpCfg),
		Catalog:         i18n.MustNewCatalog(logger),
		Products:        content.NewService(db, content.Products(), opts),
		Partners:        content.NewService(db, content.Partners(), opts),
		Gallery:         content.NewService(db, content.Gallery(), opts),
		Translations:    content.NewService(db, content.Translations(), opts),
		Articles:        content.NewArticleService(db, opts),
		SiteContent:     content.NewSiteContentService(db, opts),
		Events:          events,
		Logger:          logger,
	})

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Use(middleware.Language(model.DefaultLanguage))
	r.Use(middleware.Authenticate(authSvc, sm, logger))
	r.Route(handler.RouteAPI, h.Register)

	admin, err := authSvc.SetupAdmin(ctx, adminEmail, adminPassword)
	require.NoError(t, err)

	return &testEnv{t: t, router: r, auth: authSvc, handler: h, adminID: admin.ID}
}

// do sends a JSON request. token may be empty.
func (e *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, handler.RouteAPI+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) signIn(email, password string) auth.Session {
	e.t.Helper()
	sess, err := e.auth.SignIn(context.Background(), email, password, auth.ClientInfo{})
	require.NoError(e.t, err)
	return sess
}

func (e *testEnv) adminToken() string {
	return e.signIn(adminEmail, adminPassword).AccessToken
}

// userToken creates an account holding role ("" for none) and signs it in.
func (e *testEnv) userToken(email, role string) (string, string) {
	e.t.Helper()
	ctx := context.Background()
	var user model.User
	var err error
	if role == "" {
		user, err = e.auth.SignUp(ctx, email, userPassword)
	} else {
		user, err = e.auth.CreateUser(ctx, e.adminID, model.CreateUserInput{Email: email, Password: userPassword, Role: role})
	}
	require.NoError(e.t, err)
	return e.signIn(email, userPassword).AccessToken, user.ID
}

type envelope struct {
	Data  json.RawMessage   `json:"data"`
	Meta  *Meta             `json:"meta"`
	Error string            `json:"error"`
	Field map[string]string `json:"fields"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), "body: %s", rr.Body.String())
	return env
}

func decodeData[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &v))
	return v
}

func productInput(nameEn, badgeEn string) model.ProductInput {
	return model.ProductInput{
		NameEn:        nameEn,
		NameAr:        "منتج " + nameEn,
		DescriptionEn: nameEn + " for homes",
		DescriptionAr: "وصف",
		BadgeEn:       badgeEn,
		BadgeAr:       "شارة",
		ImageURL:      "https://cdn.firstsun.example/p.jpg",
	}
}

func articleInput(title string, published bool) model.ArticleInput {
	return model.ArticleInput{
		TitleEn:   title,
		TitleAr:   "مقال",
		ExcerptEn: "About " + title,
		ExcerptAr: "نبذة",
		ContentEn: "Solar **power**",
		ContentAr: "محتوى",
		MediaType: model.MediaTypeImage,
		Published: published,
	}
}
