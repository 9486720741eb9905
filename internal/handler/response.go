// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/presensi-go/internal/middleware"
	"github.com/olegiv/presensi-go/internal/render"
)

// landingPath returns where a signed-in account goes after login.
func landingPath(isAdmin bool) string {
	if isAdmin {
		return redirectAdmin
	}
	return redirectDashboard
}

// pageData builds the template data shared by all pages.
func pageData(r *http.Request, data any) render.TemplateData {
	td := render.TemplateData{
		Lang: middleware.GetLanguage(r),
		Data: data,
	}
	if sess, ok := middleware.GetSession(r); ok {
		td.SignedIn = true
		td.IsAdmin = sess.IsAdmin()
	}
	return td
}

// renderPage renders a template with status 200, answering 500 if rendering fails.
func renderPage(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, name string, data any) {
	renderPageStatus(w, r, renderer, http.StatusOK, name, data)
}

// renderPageStatus renders a template with the given status, answering 500 if rendering fails.
func renderPageStatus(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, status int, name string, data any) {
	if err := renderer.RenderStatus(w, r, status, name, pageData(r, data)); err != nil {
		logAndInternalError(w, "failed to render template", "template", name, "error", err)
	}
}

// notFound renders the 404 page.
func notFound(w http.ResponseWriter, r *http.Request, renderer *render.Renderer) {
	if err := renderer.RenderStatus(w, r, http.StatusNotFound, tmplNotFound, pageData(r, nil)); err != nil {
		http.NotFound(w, r)
	}
}

// logAndHTTPError logs an error and writes an HTTP error response.
func logAndHTTPError(w http.ResponseWriter, message string, statusCode int, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, message, statusCode)
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	logAndHTTPError(w, "Internal Server Error", http.StatusInternalServerError, logMsg, args...)
}

// parseIDParam parses a positive int64 chi URL parameter.
func parseIDParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// requireEntity fetches an entity by ID using the provided query function.
// A missing entity renders the 404 page; other errors answer 500.
// Returns the entity and true if successful, or zero value and false if a
// response was already written.
//
// Example usage:
//
//	account, ok := requireEntity(w, r, h.renderer, "account", id,
//	    func(id int64) (model.Account, error) { return h.queries.GetAccountByID(r.Context(), id) })
func requireEntity[T any](
	w http.ResponseWriter,
	r *http.Request,
	renderer *render.Renderer,
	entityName string,
	id int64,
	queryFn func(id int64) (T, error),
) (T, bool) {
	var zero T
	entity, err := queryFn(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			notFound(w, r, renderer)
		} else {
			logAndInternalError(w, "failed to get "+entityName, "error", err, entityName+"_id", id)
		}
		return zero, false
	}
	return entity, true
}

// NotFoundHandler renders the 404 page for unmatched routes.
func NotFoundHandler(renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notFound(w, r, renderer)
	}
}
