// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types shared by the store, session and
// handler layers: accounts, their roles, and attendance records.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Role is an account role. Only the values below are valid.
type Role string

// Account roles.
const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// ValidRoles lists every role in display order.
var ValidRoles = []Role{RoleAdmin, RoleEmployee}

// ErrInvalidRole is returned by ParseRole for unknown role names.
var ErrInvalidRole = errors.New("invalid role")

// ParseRole converts a form or database value into a Role.
// Matching is exact after trimming surrounding whitespace.
func ParseRole(s string) (Role, error) {
	r := Role(strings.TrimSpace(s))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee:
		return true
	default:
		return false
	}
}

// String returns the stored representation of the role.
func (r Role) String() string {
	return string(r)
}

// Account is a stored credential with its role.
type Account struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin returns true if the account has the admin role.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
