// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers for login, attendance and
// account administration.
package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/presensi-go/internal/auth"
	"github.com/olegiv/presensi-go/internal/i18n"
	"github.com/olegiv/presensi-go/internal/middleware"
	"github.com/olegiv/presensi-go/internal/render"
	"github.com/olegiv/presensi-go/internal/store"
)

// AuthHandler handles authentication routes.
type AuthHandler struct {
	queries      *store.Queries
	renderer     *render.Renderer
	sessions     SessionStore
	hashPassword func(string) (string, error)
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sessions SessionStore) *AuthHandler {
	return &AuthHandler{
		queries:      store.New(db),
		renderer:     renderer,
		sessions:     sessions,
		hashPassword: auth.HashPassword,
	}
}

// loginData is the view model of the login form.
type loginData struct {
	Username string
	Error    string
}

// LoginForm renders the login page.
// Already signed-in accounts go straight to their landing page.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if sess, ok := h.sessions.Current(r.Context()); ok {
		http.Redirect(w, r, landingPath(sess.IsAdmin()), http.StatusSeeOther)
		return
	}

	renderPage(w, r, h.renderer, tmplLogin, loginData{})
}

// Login handles the login form submission.
// Unknown usernames and wrong passwords get the same message.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)

	if err := r.ParseForm(); err != nil {
		h.loginFailed(w, r, "", i18n.T(lang, "auth.invalid_credentials"))
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	invalid := i18n.T(lang, "auth.invalid_credentials")

	if username == "" || password == "" {
		h.loginFailed(w, r, username, invalid)
		return
	}

	account, err := h.queries.GetAccountByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Debug("login attempt for non-existent account", "username", username)
			h.loginFailed(w, r, username, invalid)
			return
		}
		logAndInternalError(w, "database error during login", "error", err)
		return
	}

	valid, err := auth.CheckPassword(password, account.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err, "account_id", account.ID)
	}
	if !valid {
		slog.Debug("invalid password attempt", "username", username)
		h.loginFailed(w, r, username, invalid)
		return
	}

	// Upgrade legacy or outdated hashes while the plaintext is at hand
	if auth.NeedsRehash(account.PasswordHash) {
		h.rehash(r, account.ID, password)
	}

	if err := h.sessions.Start(r.Context(), account.ID, account.Role); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}

	slog.Info("account logged in", "account_id", account.ID, "username", account.Username, "role", account.Role)

	http.Redirect(w, r, landingPath(account.IsAdmin()), http.StatusSeeOther)
}

// rehash stores a fresh hash of password. Failures are logged and do not
// block the login.
func (h *AuthHandler) rehash(r *http.Request, accountID int64, password string) {
	newHash, err := h.hashPassword(password)
	if err != nil {
		slog.Error("failed to hash password for upgrade", "error", err, "account_id", accountID)
		return
	}

	if err := h.queries.UpdateAccountPassword(r.Context(), store.UpdateAccountPasswordParams{
		ID:           accountID,
		PasswordHash: newHash,
		UpdatedAt:    time.Now().UTC(),
	}); err != nil {
		slog.Error("failed to re-hash password", "error", err, "account_id", accountID)
		return
	}
	slog.Info("password re-hashed with updated parameters", "account_id", accountID)
}

// loginFailed re-renders the login form with an error and no session.
func (h *AuthHandler) loginFailed(w http.ResponseWriter, r *http.Request, username, msg string) {
	renderPage(w, r, h.renderer, tmplLogin, loginData{Username: username, Error: msg})
}

// Logout destroys the session and redirects to the login page.
// It succeeds whether or not a session exists.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := h.sessions.Current(r.Context()); ok {
		slog.Info("account logged out", "account_id", sess.AccountID)
	}

	if err := h.sessions.End(r.Context()); err != nil {
		slog.Error("failed to destroy session", "error", err)
	}

	http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
}
