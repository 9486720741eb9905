// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request context handling.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/olegiv/presensi-go/internal/session"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request data.
const (
	ContextKeySession ContextKey = "session"
)

// Redirect targets of the guards.
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// SessionReader resolves the session attached to a request context.
type SessionReader interface {
	Current(ctx context.Context) (session.Session, bool)
}

// RequireAuth creates middleware that requires a signed-in session.
// Requests without one are redirected to the login page and the handler
// does not run. On success the session is stored in the request context.
func RequireAuth(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := sessions.Current(r.Context())
			if !ok {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin creates middleware that only lets admin sessions through.
// Other accounts are redirected to the dashboard. It must be mounted after
// RequireAuth; without a session in context it redirects to login.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := GetSession(r)
			if !ok {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			if !sess.IsAdmin() {
				slog.Warn("access denied: admin required",
					"account_id", sess.AccountID,
					"role", sess.Role,
					"path", r.URL.Path,
				)
				http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetSession retrieves the session stored by RequireAuth.
func GetSession(r *http.Request) (session.Session, bool) {
	sess, ok := r.Context().Value(ContextKeySession).(session.Session)
	return sess, ok
}
