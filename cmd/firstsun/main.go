// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/firstsun-go/internal/auth"
	"github.com/olegiv/firstsun-go/internal/cache"
	"github.com/olegiv/firstsun-go/internal/config"
	"github.com/olegiv/firstsun-go/internal/content"
	"github.com/olegiv/firstsun-go/internal/geoip"
	"github.com/olegiv/firstsun-go/internal/handler"
	"github.com/olegiv/firstsun-go/internal/handler/api"
	"github.com/olegiv/firstsun-go/internal/handler/functions"
	"github.com/olegiv/firstsun-go/internal/i18n"
	"github.com/olegiv/firstsun-go/internal/logging"
	"github.com/olegiv/firstsun-go/internal/middleware"
	"github.com/olegiv/firstsun-go/internal/model"
	"github.com/olegiv/firstsun-go/internal/scheduler"
	"github.com/olegiv/firstsun-go/internal/service"
	"github.com/olegiv/firstsun-go/internal/session"
	"github.com/olegiv/firstsun-go/internal/store"
	"github.com/olegiv/firstsun-go/internal/validation"
	"github.com/olegiv/firstsun-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 30 * time.Second
	loginSweep      = 5 * time.Minute
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "firstsun - First Sun site and content API\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FSUN_SESSION_SECRET    Cookie session key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FSUN_TOKEN_SECRET      Access token signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FSUN_DB_PATH           SQLite database path (default: ./data/firstsun.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FSUN_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FSUN_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FSUN_DEFAULT_LANGUAGE  ar|en (default: ar)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FSUN_REDIS_URL         Redis URL for shared caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FSUN_ADMIN_EMAIL       Bootstrap admin for setup-admin (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FSUN_ADMIN_PASSWORD    Bootstrap admin password (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FSUN_SITE_URL          Public site URL for robots.txt and sitemap.xml (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FSUN_SSL_REDIRECT      Redirect plain HTTP to HTTPS (default: false)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FSUN_GEOIP_DB_PATH     GeoLite2-Country database for sign-in events (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	versionInfo := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
	if *showVersion {
		_, _ = fmt.Printf("firstsun %s\n", versionInfo)
		os.Exit(0)
	}

	if err := run(versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(versionInfo version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(textHandler)
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// WARN and above also go to the events table.
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	appCache := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:    cfg.CacheMaxSize,
	}, logger)
	defer func() { _ = appCache.Close() }()
	slog.Info(handler.LogCacheInit, "redis", cfg.UseRedisCache())

	validate := validation.New()
	events := service.NewEventService(db, logger)

	geo, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		slog.Warn("GeoIP lookup disabled", "path", cfg.GeoIPDBPath, "error", err)
	}
	defer func() { _ = geo.Close() }()

	authSvc := auth.NewService(db, auth.Options{
		Tokens:     auth.NewTokens(cfg.TokenSecret, cfg.AccessTokenTTL, nil),
		RefreshTTL: cfg.RefreshTokenTTL,
		Events:     events,
		Geo:        geo,
		Logger:     logger,
		Validator:  validate,
	})

	contentOpts := content.Options{
		Cache:     appCache,
		CacheTTL:  time.Duration(cfg.CacheTTL) * time.Second,
		Events:    events,
		Logger:    logger,
		Validator: validate,
	}
	translations := content.NewService(db, content.Translations(), contentOpts)

	catalog, err := i18n.NewCatalog(logger)
	if err != nil {
		return fmt.Errorf("loading translations: %w", err)
	}
	slog.Info("translations loaded",
		"ar", catalog.Count(model.LangArabic), "en", catalog.Count(model.LangEnglish))
	if cfg.TranslationOverlay {
		if err := content.BindCatalog(ctx, translations, catalog, logger); err != nil {
			return fmt.Errorf("loading translation overlay: %w", err)
		}
	}

	sessionManager := session.New(db, cfg.IsDevelopment())

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	go loginProtection.Run(ctx, loginSweep)

	sched := scheduler.New(logger)
	if err := scheduler.RegisterMaintenance(sched, authSvc, events, logger); err != nil {
		return fmt.Errorf("registering maintenance jobs: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	articles := content.NewArticleService(db, contentOpts)

	apiHandler := api.NewHandler(api.Options{
		Auth:            authSvc,
		Sessions:        sessionManager,
		LoginProtection: loginProtection,
		Catalog:         catalog,
		Products:        content.NewService(db, content.Products(), contentOpts),
		Partners:        content.NewService(db, content.Partners(), contentOpts),
		Gallery:         content.NewService(db, content.Gallery(), contentOpts),
		Translations:    translations,
		Articles:        articles,
		SiteContent:     content.NewSiteContentService(db, contentOpts),
		Events:          events,
		Logger:          logger,
	})
	functionsHandler := functions.NewHandler(functions.Options{
		Auth:          authSvc,
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		CORSOrigins:   cfg.CORSAllowedOrigins,
		Logger:        logger,
	})
	healthHandler := handler.NewHealthHandler(db, appCache, authSvc, versionInfo)
	seoHandler := handler.NewSEOHandler(articles, cfg.SiteURL, cfg.NoIndex, logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.SecurityHeaders(cfg.IsDevelopment(), cfg.SSLRedirect))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())))
	r.Use(middleware.Language(cfg.DefaultLanguage))
	r.Use(middleware.Authenticate(authSvc, sessionManager, logger))

	r.Get(handler.RouteHealth, healthHandler.Health)
	r.Get(handler.RouteHealthLive, healthHandler.Liveness)
	r.Get(handler.RouteHealthReady, healthHandler.Readiness)
	r.Get(handler.RouteRobots, seoHandler.Robots)
	r.Get(handler.RouteSitemap, seoHandler.Sitemap)

	r.Route(handler.RouteAPI, apiHandler.Register)
	r.Route(handler.RouteFunctions, functionsHandler.Register)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info(handler.LogServerStart, "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
