// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"FSUN_DB_PATH" envDefault:"./data/firstsun.db"`
	SessionSecret string `env:"FSUN_SESSION_SECRET,required"`
	TokenSecret   string `env:"FSUN_TOKEN_SECRET,required"`
	ServerHost    string `env:"FSUN_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"FSUN_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"FSUN_ENV" envDefault:"development"`
	LogLevel      string `env:"FSUN_LOG_LEVEL" envDefault:"info"`

	// Token lifetimes
	AccessTokenTTL  time.Duration `env:"FSUN_ACCESS_TOKEN_TTL" envDefault:"1h"`
	RefreshTokenTTL time.Duration `env:"FSUN_REFRESH_TOKEN_TTL" envDefault:"720h"`

	// Localization
	DefaultLanguage    string `env:"FSUN_DEFAULT_LANGUAGE" envDefault:"ar"`
	TranslationOverlay bool   `env:"FSUN_TRANSLATION_OVERLAY" envDefault:"true"` // DB translations override the static table

	// Cache configuration. RedisURL is optional; the memory cache is used without it.
	RedisURL     string `env:"FSUN_REDIS_URL"`
	CachePrefix  string `env:"FSUN_CACHE_PREFIX" envDefault:"fsun:"`
	CacheTTL     int    `env:"FSUN_CACHE_TTL" envDefault:"300"` // seconds
	CacheMaxSize int    `env:"FSUN_CACHE_MAX_SIZE" envDefault:"10000"`

	// Bootstrap administrator used by the setup-admin function
	AdminEmail    string `env:"FSUN_ADMIN_EMAIL"`
	AdminPassword string `env:"FSUN_ADMIN_PASSWORD"`

	CORSAllowedOrigins []string `env:"FSUN_CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	// Public site URL for robots.txt and sitemap.xml; the request host is used when empty.
	SiteURL string `env:"FSUN_SITE_URL"`
	// NoIndex blocks all crawlers (staging sites)
	NoIndex bool `env:"FSUN_NO_INDEX" envDefault:"false"`
	// SSLRedirect redirects plain HTTP to HTTPS outside development
	SSLRedirect bool `env:"FSUN_SSL_REDIRECT" envDefault:"false"`
	// GeoIPDBPath points at a GeoLite2-Country database; sign-in events get no country when empty.
	GeoIPDBPath string `env:"FSUN_GEOIP_DB_PATH"`

	// Seeding configuration
	DoSeed bool `env:"FSUN_DO_SEED" envDefault:"true"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// SetupAdminEnabled returns true if bootstrap admin credentials are configured.
func (c Config) SetupAdminEnabled() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}

// MinSecretLength is the minimum required length for session and token secrets.
const MinSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := checkSecret("FSUN_SESSION_SECRET", cfg.SessionSecret); err != nil {
		return nil, err
	}
	if err := checkSecret("FSUN_TOKEN_SECRET", cfg.TokenSecret); err != nil {
		return nil, err
	}
	if cfg.SessionSecret == cfg.TokenSecret {
		return nil, fmt.Errorf("FSUN_TOKEN_SECRET must differ from FSUN_SESSION_SECRET")
	}

	switch cfg.DefaultLanguage {
	case "ar", "en":
	default:
		return nil, fmt.Errorf("FSUN_DEFAULT_LANGUAGE must be \"ar\" or \"en\", got %q", cfg.DefaultLanguage)
	}

	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, fmt.Errorf("token lifetimes must be positive")
	}

	return cfg, nil
}

func checkSecret(name, value string) error {
	if len(value) < MinSecretLength {
		return fmt.Errorf("%s must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			name, MinSecretLength, len(value))
	}

	for _, weak := range knownWeakSecrets {
		if value == weak {
			return fmt.Errorf("%s is a known default value and must not be used; "+
				"generate a secure secret with: openssl rand -base64 32", name)
		}
	}

	if !hasMinimumEntropy(value) {
		slog.Warn(name + " has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}
	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
