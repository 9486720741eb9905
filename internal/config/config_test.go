// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"testing"
	"time"
)

const testSecret = "test-secret-key-32-bytes-long!!!"

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Clear environment and set only required var
	os.Clearenv()
	setEnv(t, "PRESENSI_SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Check defaults
	if cfg.DBPath != "./data/presensi.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/presensi.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 3000 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 3000)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.SessionStore != SessionStoreSQLite {
		t.Errorf("SessionStore = %q, want %q", cfg.SessionStore, SessionStoreSQLite)
	}
	if cfg.SessionLifetime != 24*time.Hour {
		t.Errorf("SessionLifetime = %v, want 24h", cfg.SessionLifetime)
	}
	if cfg.SessionIdleTimeout != 0 {
		t.Errorf("SessionIdleTimeout = %v, want 0", cfg.SessionIdleTimeout)
	}
	if cfg.AdminPassword != "admin123" {
		t.Errorf("AdminPassword = %q, want %q", cfg.AdminPassword, "admin123")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	customSecret := "custom-secret-key-32-bytes-long!"
	setEnv(t, "PRESENSI_SESSION_SECRET", customSecret)
	setEnv(t, "PRESENSI_DB_PATH", "/custom/path.db")
	setEnv(t, "PRESENSI_SERVER_HOST", "0.0.0.0")
	setEnv(t, "PRESENSI_SERVER_PORT", "8081")
	setEnv(t, "PRESENSI_ENV", "production")
	setEnv(t, "PRESENSI_LOG_LEVEL", "debug")
	setEnv(t, "PRESENSI_SESSION_STORE", "Memory")
	setEnv(t, "PRESENSI_SESSION_LIFETIME", "8h")
	setEnv(t, "PRESENSI_SESSION_IDLE_TIMEOUT", "30m")
	setEnv(t, "PRESENSI_ADMIN_PASSWORD", "another-pass")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.SessionSecret != customSecret {
		t.Errorf("SessionSecret = %q, want %q", cfg.SessionSecret, customSecret)
	}
	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.ServerHost != "0.0.0.0" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "0.0.0.0")
	}
	if cfg.ServerPort != 8081 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8081)
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %q, want %q", cfg.Env, "production")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.SessionStore != SessionStoreMemory {
		t.Errorf("SessionStore = %q, want %q", cfg.SessionStore, SessionStoreMemory)
	}
	if cfg.SessionLifetime != 8*time.Hour {
		t.Errorf("SessionLifetime = %v, want 8h", cfg.SessionLifetime)
	}
	if cfg.SessionIdleTimeout != 30*time.Minute {
		t.Errorf("SessionIdleTimeout = %v, want 30m", cfg.SessionIdleTimeout)
	}
	if cfg.AdminPassword != "another-pass" {
		t.Errorf("AdminPassword = %q, want %q", cfg.AdminPassword, "another-pass")
	}
}

func TestLoad_RequiredSessionSecret(t *testing.T) {
	os.Clearenv()
	// Don't set PRESENSI_SESSION_SECRET

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail when PRESENSI_SESSION_SECRET is not set")
	}
}

func TestLoad_SessionSecretTooShort(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"empty", ""},
		{"short", "short"},
		{"31_bytes", "1234567890123456789012345678901"}, // 31 bytes
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, "PRESENSI_SESSION_SECRET", tt.secret)

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() should fail with %d-byte secret", len(tt.secret))
			}
		})
	}
}

func TestLoad_SessionSecretMinimumLength(t *testing.T) {
	os.Clearenv()
	// Exactly 32 bytes should work
	secret32 := "12345678901234567890123456789012"
	setEnv(t, "PRESENSI_SESSION_SECRET", secret32)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should succeed with 32-byte secret: %v", err)
	}
	if cfg.SessionSecret != secret32 {
		t.Errorf("SessionSecret = %q, want %q", cfg.SessionSecret, secret32)
	}
}

func TestLoad_WeakSecretRejected(t *testing.T) {
	for _, weak := range knownWeakSecrets {
		os.Clearenv()
		setEnv(t, "PRESENSI_SESSION_SECRET", weak)

		if _, err := Load(); err == nil {
			t.Errorf("Load() should reject known weak secret %q", weak)
		}
	}
}

func TestLoad_SessionStore(t *testing.T) {
	tests := []struct {
		name    string
		store   string
		redis   string
		wantErr bool
	}{
		{"sqlite", "sqlite", "", false},
		{"memory", "memory", "", false},
		{"redis with url", "redis", "redis://localhost:6379/0", false},
		{"redis without url", "redis", "", true},
		{"unknown", "memcached", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, "PRESENSI_SESSION_SECRET", testSecret)
			setEnv(t, "PRESENSI_SESSION_STORE", tt.store)
			if tt.redis != "" {
				setEnv(t, "PRESENSI_REDIS_URL", tt.redis)
			}

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Load() should fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if cfg.SessionStore != tt.store {
				t.Errorf("SessionStore = %q, want %q", cfg.SessionStore, tt.store)
			}
		})
	}
}

func TestLoad_InvalidLifetime(t *testing.T) {
	os.Clearenv()
	setEnv(t, "PRESENSI_SESSION_SECRET", testSecret)
	setEnv(t, "PRESENSI_SESSION_LIFETIME", "0s")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail with zero lifetime")
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"development", true},
		{"production", false},
		{"staging", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := Config{Env: tt.env}
			if got := cfg.IsDevelopment(); got != tt.want {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_ServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"localhost", 3000, "localhost:3000"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 443, "127.0.0.1:443"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cfg := Config{ServerHost: tt.host, ServerPort: tt.port}
			if got := cfg.ServerAddr(); got != tt.want {
				t.Errorf("ServerAddr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"aaaaaaaaaaaaaaaa1111111111111111", false},
		{"aaaaaaaaAAAAAAAA1111111111111111", true},
		{testSecret, true},
	}

	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}
