// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/presensi-go/internal/auth"
	"github.com/olegiv/presensi-go/internal/i18n"
	"github.com/olegiv/presensi-go/internal/middleware"
	"github.com/olegiv/presensi-go/internal/model"
	"github.com/olegiv/presensi-go/internal/render"
	"github.com/olegiv/presensi-go/internal/store"
)

// UsersHandler handles account administration.
type UsersHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	sessions SessionStore
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(db *sql.DB, renderer *render.Renderer, sessions SessionStore) *UsersHandler {
	return &UsersHandler{
		queries:  store.New(db),
		renderer: renderer,
		sessions: sessions,
	}
}

// userForm is the view model of the add and edit forms.
type userForm struct {
	ID       int64
	Username string
	Role     model.Role
	Error    string
}

type usersData struct {
	Accounts []model.Account
}

// List shows all accounts.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.queries.ListAccounts(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list accounts", "error", err)
		return
	}

	renderPage(w, r, h.renderer, tmplUsers, usersData{Accounts: accounts})
}

// NewForm renders the empty add-user form.
func (h *UsersHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, tmplUserAdd, userForm{Role: model.RoleEmployee})
}

// Create adds an account. Missing fields, an unknown role or a taken
// username re-render the form without writing anything.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)

	if err := r.ParseForm(); err != nil {
		h.renderAddError(w, r, userForm{}, i18n.T(lang, "users.all_fields_required"))
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	roleValue := r.PostFormValue("role")

	form := userForm{Username: username, Role: model.Role(roleValue)}

	if username == "" || password == "" || strings.TrimSpace(roleValue) == "" {
		h.renderAddError(w, r, form, i18n.T(lang, "users.all_fields_required"))
		return
	}

	role, err := model.ParseRole(roleValue)
	if err != nil {
		h.renderAddError(w, r, form, i18n.T(lang, "users.invalid_role"))
		return
	}
	form.Role = role

	hash, err := auth.HashPassword(password)
	if err != nil {
		logAndInternalError(w, "failed to hash password", "error", err)
		return
	}

	now := time.Now().UTC()
	account, err := h.queries.CreateAccount(r.Context(), store.CreateAccountParams{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			h.renderAddError(w, r, form, i18n.T(lang, "users.username_exists"))
			return
		}
		logAndInternalError(w, "failed to create account", "error", err)
		return
	}

	slog.Info("account created", "account_id", account.ID, "username", account.Username, "role", account.Role,
		"created_by", adminID(r))
	h.sessions.Flash(r.Context(), "success", i18n.T(lang, "users.created", account.Username))

	http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
}

func (h *UsersHandler) renderAddError(w http.ResponseWriter, r *http.Request, form userForm, msg string) {
	form.Error = msg
	renderPage(w, r, h.renderer, tmplUserAdd, form)
}

// EditForm renders the edit form of an existing account.
func (h *UsersHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		notFound(w, r, h.renderer)
		return
	}

	account, ok := requireEntity(w, r, h.renderer, "account", id,
		func(id int64) (model.Account, error) { return h.queries.GetAccountByID(r.Context(), id) })
	if !ok {
		return
	}

	renderPage(w, r, h.renderer, tmplUserEdit, userForm{
		ID:       account.ID,
		Username: account.Username,
		Role:     account.Role,
	})
}

// Update changes the username and role of an account. The password is
// not editable here.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)

	id, ok := parseIDParam(r, "id")
	if !ok {
		notFound(w, r, h.renderer)
		return
	}

	if _, ok := requireEntity(w, r, h.renderer, "account", id,
		func(id int64) (model.Account, error) { return h.queries.GetAccountByID(r.Context(), id) }); !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderEditError(w, r, userForm{ID: id}, i18n.T(lang, "users.username_required"))
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	roleValue := r.PostFormValue("role")
	form := userForm{ID: id, Username: username, Role: model.Role(roleValue)}

	if username == "" {
		h.renderEditError(w, r, form, i18n.T(lang, "users.username_required"))
		return
	}

	role, err := model.ParseRole(roleValue)
	if err != nil {
		h.renderEditError(w, r, form, i18n.T(lang, "users.invalid_role"))
		return
	}
	form.Role = role

	err = h.queries.UpdateAccount(r.Context(), store.UpdateAccountParams{
		ID:        id,
		Username:  username,
		Role:      role,
		UpdatedAt: time.Now().UTC(),
	})
	switch {
	case err == nil:
	case errors.Is(err, store.ErrUsernameTaken):
		h.renderEditError(w, r, form, i18n.T(lang, "users.username_exists"))
		return
	case errors.Is(err, sql.ErrNoRows):
		notFound(w, r, h.renderer)
		return
	default:
		logAndInternalError(w, "failed to update account", "error", err, "account_id", id)
		return
	}

	slog.Info("account updated", "account_id", id, "username", username, "role", role, "updated_by", adminID(r))
	h.sessions.Flash(r.Context(), "success", i18n.T(lang, "users.updated", username))

	http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
}

func (h *UsersHandler) renderEditError(w http.ResponseWriter, r *http.Request, form userForm, msg string) {
	form.Error = msg
	renderPage(w, r, h.renderer, tmplUserEdit, form)
}

// adminID returns the acting account for log lines.
func adminID(r *http.Request) int64 {
	if sess, ok := middleware.GetSession(r); ok {
		return sess.AccountID
	}
	return 0
}
