// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"

	"github.com/olegiv/presensi-go/internal/model"
	"github.com/olegiv/presensi-go/internal/render"
	"github.com/olegiv/presensi-go/internal/store"
)

// AdminHandler handles the admin records screen.
type AdminHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *sql.DB, renderer *render.Renderer) *AdminHandler {
	return &AdminHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

type recordsData struct {
	Entries []model.AttendanceEntry
}

// Records lists every attendance record with its owner, newest first.
func (h *AdminHandler) Records(w http.ResponseWriter, r *http.Request) {
	entries, err := h.queries.ListAttendanceEntries(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list attendance records", "error", err)
		return
	}

	renderPage(w, r, h.renderer, tmplRecords, recordsData{Entries: entries})
}
