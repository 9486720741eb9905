// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session tracks which account a browser is signed in as.
//
// Session state lives server-side in a pluggable scs store (SQLite, memory
// or Redis); the browser only holds an opaque token cookie.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/presensi-go/internal/model"
)

// Session keys.
const (
	keyAccountID = "account_id"
	keyRole      = "role"
	keyFlash     = "flash"
	keyFlashType = "flash_type"
)

// CookieName is the session cookie name in development.
// Production uses the __Host- prefixed variant.
const CookieName = "presensi_session"

// Options configures the session manager.
type Options struct {
	Lifetime    time.Duration
	IdleTimeout time.Duration
	IsDev       bool
}

// DefaultOptions returns a 24h session lifetime with no idle timeout.
func DefaultOptions(isDev bool) Options {
	return Options{
		Lifetime: 24 * time.Hour,
		IsDev:    isDev,
	}
}

// Session identifies the signed-in account.
type Session struct {
	AccountID int64
	Role      model.Role
}

// IsAdmin reports whether the session belongs to an admin.
func (s Session) IsAdmin() bool {
	return s.Role == model.RoleAdmin
}

// Manager wraps scs.SessionManager with typed accessors for the
// signed-in account.
type Manager struct {
	*scs.SessionManager
}

// New creates a session manager backed by store.
func New(store scs.Store, opts Options) *Manager {
	sm := scs.New()
	sm.Store = store

	if opts.Lifetime <= 0 {
		opts.Lifetime = 24 * time.Hour
	}
	sm.Lifetime = opts.Lifetime
	sm.IdleTimeout = opts.IdleTimeout

	sm.Cookie.Name = CookieName
	sm.Cookie.Path = "/"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !opts.IsDev // Secure cookies in production only
	if !opts.IsDev {
		sm.Cookie.Name = "__Host-" + CookieName
	}

	return &Manager{SessionManager: sm}
}

// Current returns the session attached to ctx, if any.
func (m *Manager) Current(ctx context.Context) (Session, bool) {
	id := m.GetInt64(ctx, keyAccountID)
	if id == 0 {
		return Session{}, false
	}
	role, err := model.ParseRole(m.GetString(ctx, keyRole))
	if err != nil {
		return Session{}, false
	}
	return Session{AccountID: id, Role: role}, true
}

// Start signs the account in. The token is renewed first to prevent
// session fixation.
func (m *Manager) Start(ctx context.Context, accountID int64, role model.Role) error {
	if err := m.RenewToken(ctx); err != nil {
		return err
	}
	m.Put(ctx, keyAccountID, accountID)
	m.Put(ctx, keyRole, role.String())
	return nil
}

// End destroys the session.
func (m *Manager) End(ctx context.Context) error {
	return m.Destroy(ctx)
}

// Flash stores a one-time message shown on the next rendered page.
func (m *Manager) Flash(ctx context.Context, flashType, msg string) {
	m.Put(ctx, keyFlash, msg)
	m.Put(ctx, keyFlashType, flashType)
}

// PopFlash returns and clears the pending flash message.
// A context without loaded session data has no flash.
func (m *Manager) PopFlash(ctx context.Context) (msg, flashType string) {
	defer func() {
		if rec := recover(); rec != nil {
			msg, flashType = "", ""
		}
	}()

	msg = m.PopString(ctx, keyFlash)
	if msg == "" {
		return "", ""
	}
	flashType = m.PopString(ctx, keyFlashType)
	if flashType == "" {
		flashType = "info"
	}
	return msg, flashType
}
