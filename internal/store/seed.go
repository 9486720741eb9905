// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/presensi-go/internal/auth"
	"github.com/olegiv/presensi-go/internal/model"
)

// Default admin credentials
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// Seed creates the admin account when no account named "admin" exists.
// An empty password falls back to DefaultAdminPassword.
func Seed(ctx context.Context, db *sql.DB, adminPassword string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	queries := New(db).WithTx(tx)

	// Check if admin account already exists
	_, err = queries.GetAccountByUsername(ctx, DefaultAdminUsername)
	if err == nil {
		slog.Info("admin account already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin account: %w", err)
	}

	if adminPassword == "" {
		adminPassword = DefaultAdminPassword
	}

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	account, err := queries.CreateAccount(ctx, CreateAccountParams{
		Username:     DefaultAdminUsername,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("created default admin account",
		"id", account.ID,
		"username", account.Username,
	)

	return nil
}
