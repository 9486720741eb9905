// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/olegiv/presensi-go/internal/model"
)

const accountColumns = `id, username, password_hash, role, created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }) (model.Account, error) {
	var a model.Account
	var role string
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &role, &a.CreatedAt, &a.UpdatedAt)
	a.Role = model.Role(role)
	return a, err
}

// CreateAccountParams holds the fields of a new account.
type CreateAccountParams struct {
	Username     string
	PasswordHash string
	Role         model.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const createAccount = `INSERT INTO accounts (username, password_hash, role, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`

// CreateAccount inserts an account. A duplicate username yields ErrUsernameTaken.
func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) (model.Account, error) {
	res, err := q.db.ExecContext(ctx, createAccount,
		arg.Username, arg.PasswordHash, string(arg.Role), arg.CreatedAt, arg.UpdatedAt)
	if isUniqueViolation(err) {
		return model.Account{}, ErrUsernameTaken
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("inserting account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Account{}, fmt.Errorf("inserting account: %w", err)
	}
	return q.GetAccountByID(ctx, id)
}

const getAccountByID = `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`

// GetAccountByID returns sql.ErrNoRows when the id is unknown.
func (q *Queries) GetAccountByID(ctx context.Context, id int64) (model.Account, error) {
	return scanAccount(q.db.QueryRowContext(ctx, getAccountByID, id))
}

const getAccountByUsername = `SELECT ` + accountColumns + ` FROM accounts WHERE username = ?`

// GetAccountByUsername looks an account up by exact username.
// Returns sql.ErrNoRows when none matches.
func (q *Queries) GetAccountByUsername(ctx context.Context, username string) (model.Account, error) {
	return scanAccount(q.db.QueryRowContext(ctx, getAccountByUsername, username))
}

const listAccounts = `SELECT ` + accountColumns + ` FROM accounts ORDER BY id ASC`

// ListAccounts returns every account ordered by id.
func (q *Queries) ListAccounts(ctx context.Context) ([]model.Account, error) {
	rows, err := q.db.QueryContext(ctx, listAccounts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []model.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateAccountParams holds the editable fields of an account.
type UpdateAccountParams struct {
	ID        int64
	Username  string
	Role      model.Role
	UpdatedAt time.Time
}

const updateAccount = `UPDATE accounts SET username = ?, role = ?, updated_at = ? WHERE id = ?`

// UpdateAccount changes an account's username and role.
// Returns sql.ErrNoRows for an unknown id and ErrUsernameTaken on a duplicate username.
func (q *Queries) UpdateAccount(ctx context.Context, arg UpdateAccountParams) error {
	res, err := q.db.ExecContext(ctx, updateAccount, arg.Username, string(arg.Role), arg.UpdatedAt, arg.ID)
	if isUniqueViolation(err) {
		return ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateAccountPasswordParams holds a replacement password hash.
type UpdateAccountPasswordParams struct {
	ID           int64
	PasswordHash string
	UpdatedAt    time.Time
}

const updateAccountPassword = `UPDATE accounts SET password_hash = ?, updated_at = ? WHERE id = ?`

// UpdateAccountPassword replaces the stored hash, used when upgrading legacy hashes.
func (q *Queries) UpdateAccountPassword(ctx context.Context, arg UpdateAccountPasswordParams) error {
	_, err := q.db.ExecContext(ctx, updateAccountPassword, arg.PasswordHash, arg.UpdatedAt, arg.ID)
	return err
}
