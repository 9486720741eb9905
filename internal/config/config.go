// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the application configuration from the environment.
package config

import (
	"errors"
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

// Session store backends.
const (
	SessionStoreSQLite = "sqlite"
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"PRESENSI_DB_PATH" envDefault:"./data/presensi.db"`
	SessionSecret string `env:"PRESENSI_SESSION_SECRET,required"`
	ServerHost    string `env:"PRESENSI_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"PRESENSI_SERVER_PORT" envDefault:"3000"`
	Env           string `env:"PRESENSI_ENV" envDefault:"development"`
	LogLevel      string `env:"PRESENSI_LOG_LEVEL" envDefault:"info"`

	// Session configuration
	SessionStore       string        `env:"PRESENSI_SESSION_STORE" envDefault:"sqlite"`  // sqlite, memory or redis
	SessionLifetime    time.Duration `env:"PRESENSI_SESSION_LIFETIME" envDefault:"24h"`  // Absolute lifetime
	SessionIdleTimeout time.Duration `env:"PRESENSI_SESSION_IDLE_TIMEOUT" envDefault:"0"` // 0 disables
	RedisURL           string        `env:"PRESENSI_REDIS_URL"`                          // Required for the redis store
	RedisPrefix        string        `env:"PRESENSI_REDIS_PREFIX" envDefault:"presensi:session:"`

	// Seeding configuration
	AdminPassword string `env:"PRESENSI_ADMIN_PASSWORD" envDefault:"admin123"` // Password for the seeded admin
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisSessions returns true if sessions are kept in Redis.
func (c Config) UseRedisSessions() bool {
	return c.SessionStore == SessionStoreRedis
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("PRESENSI_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, errors.New("PRESENSI_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("PRESENSI_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	cfg.SessionStore = strings.ToLower(strings.TrimSpace(cfg.SessionStore))
	switch cfg.SessionStore {
	case SessionStoreSQLite, SessionStoreMemory:
	case SessionStoreRedis:
		if cfg.RedisURL == "" {
			return nil, errors.New("PRESENSI_REDIS_URL is required when PRESENSI_SESSION_STORE=redis")
		}
	default:
		return nil, fmt.Errorf("PRESENSI_SESSION_STORE must be one of sqlite, memory, redis; got %q", cfg.SessionStore)
	}

	if cfg.SessionLifetime <= 0 {
		return nil, fmt.Errorf("PRESENSI_SESSION_LIFETIME must be positive, got %s", cfg.SessionLifetime)
	}
	if cfg.SessionIdleTimeout < 0 {
		return nil, fmt.Errorf("PRESENSI_SESSION_IDLE_TIMEOUT must not be negative, got %s", cfg.SessionIdleTimeout)
	}

	if cfg.AdminPassword == "" {
		return nil, errors.New("PRESENSI_ADMIN_PASSWORD must not be empty")
	}

	return cfg, nil
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
