// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/presensi-go/internal/middleware"
	"github.com/olegiv/presensi-go/internal/model"
	"github.com/olegiv/presensi-go/internal/render"
	"github.com/olegiv/presensi-go/internal/store"
)

// AttendanceHandler handles the employee dashboard and clocking.
type AttendanceHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	now      func() time.Time
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(db *sql.DB, renderer *render.Renderer) *AttendanceHandler {
	return &AttendanceHandler{
		queries:  store.New(db),
		renderer: renderer,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// dashboardData is the view model of the dashboard.
type dashboardData struct {
	Latest      *model.AttendanceRecord
	CanClockOut bool
}

// Dashboard shows the latest attendance record and the next available action.
// Admins are sent to the records screen.
func (h *AttendanceHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r)
	if !ok {
		http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
		return
	}
	if sess.IsAdmin() {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}

	var data dashboardData
	latest, err := h.queries.GetLatestRecord(r.Context(), sess.AccountID)
	switch {
	case err == nil:
		data.Latest = &latest
		data.CanClockOut = latest.IsOpen()
	case errors.Is(err, sql.ErrNoRows):
	default:
		logAndInternalError(w, "failed to load latest attendance record", "error", err, "account_id", sess.AccountID)
		return
	}

	renderPage(w, r, h.renderer, tmplDashboard, data)
}

// ClockIn opens an attendance record. It is a no-op when one is already open.
func (h *AttendanceHandler) ClockIn(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r)
	if !ok {
		http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
		return
	}

	rec, err := h.queries.ClockIn(r.Context(), sess.AccountID, h.now())
	switch {
	case err == nil:
		slog.Info("clocked in", "account_id", sess.AccountID, "record_id", rec.ID)
	case errors.Is(err, store.ErrAlreadyClockedIn):
		slog.Debug("clock-in ignored, record already open", "account_id", sess.AccountID)
	default:
		logAndInternalError(w, "failed to clock in", "error", err, "account_id", sess.AccountID)
		return
	}

	http.Redirect(w, r, redirectDashboard, http.StatusSeeOther)
}

// ClockOut closes the open attendance record, if any.
func (h *AttendanceHandler) ClockOut(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r)
	if !ok {
		http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
		return
	}

	n, err := h.queries.ClockOut(r.Context(), sess.AccountID, h.now())
	if err != nil {
		logAndInternalError(w, "failed to clock out", "error", err, "account_id", sess.AccountID)
		return
	}
	if n == 0 {
		slog.Debug("clock-out ignored, no open record", "account_id", sess.AccountID)
	} else {
		slog.Info("clocked out", "account_id", sess.AccountID)
	}

	http.Redirect(w, r, redirectDashboard, http.StatusSeeOther)
}
