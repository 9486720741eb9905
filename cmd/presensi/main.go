// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command presensi runs the attendance tracker web application.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/presensi-go/internal/config"
	"github.com/olegiv/presensi-go/internal/i18n"
	"github.com/olegiv/presensi-go/internal/render"
	"github.com/olegiv/presensi-go/internal/server"
	"github.com/olegiv/presensi-go/internal/session"
	"github.com/olegiv/presensi-go/internal/store"
	"github.com/olegiv/presensi-go/internal/version"
	"github.com/olegiv/presensi-go/web"
)

// Build-time variables injected via ldflags.
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "presensi - employee attendance tracker\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PRESENSI_SESSION_SECRET    Secret key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PRESENSI_DB_PATH           SQLite database path (default: ./data/presensi.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PRESENSI_SERVER_PORT       Server port (default: 3000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PRESENSI_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PRESENSI_SESSION_STORE     Session store: sqlite|memory|redis (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PRESENSI_REDIS_URL         Redis URL for the redis session store\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PRESENSI_ADMIN_PASSWORD    Password of the seeded admin (default: admin123)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showVersion {
		_, _ = fmt.Println(versionInfo.String())
		os.Exit(0)
	}

	if err := run(versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(versionInfo version.Info) error {
	// Load .env file if present (development)
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

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}
	slog.Info("i18n system initialized", "languages", i18n.SupportedLanguages)

	// Ensure data directory exists
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

	ctx := context.Background()
	if err := store.Seed(ctx, db, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	slog.Info("database ready")

	sessionStore, err := session.NewStore(ctx, session.StoreConfig{
		Kind:        cfg.SessionStore,
		DB:          db,
		RedisURL:    cfg.RedisURL,
		RedisPrefix: cfg.RedisPrefix,
	})
	if err != nil {
		return fmt.Errorf("initializing session store: %w", err)
	}
	defer func() {
		if err := sessionStore.Close(); err != nil {
			slog.Error("error closing session store", "error", err)
		}
	}()

	sessions := session.New(sessionStore, session.Options{
		Lifetime:    cfg.SessionLifetime,
		IdleTimeout: cfg.SessionIdleTimeout,
		IsDev:       cfg.IsDevelopment(),
	})
	slog.Info("session manager initialized", "store", cfg.SessionStore)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS: templatesFS,
		Flash:       sessions,
		IsDev:       cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	srv, err := server.New(server.Config{
		Addr:      cfg.ServerAddr(),
		Port:      cfg.ServerPort,
		IsDev:     cfg.IsDevelopment(),
		CSRFKey:   []byte(cfg.SessionSecret),
		AccessLog: true,
		DB:        db,
		Sessions:  sessions,
		Renderer:  renderer,
		Version:   versionInfo,
	})
	if err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", srv.Addr(), "env", cfg.Env, "version", versionInfo.Version)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
