// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2/memstore"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/presensi-go/internal/i18n"
	"github.com/olegiv/presensi-go/internal/middleware"
	"github.com/olegiv/presensi-go/internal/model"
	"github.com/olegiv/presensi-go/internal/render"
	"github.com/olegiv/presensi-go/internal/session"
	"github.com/olegiv/presensi-go/internal/store"
	"github.com/olegiv/presensi-go/internal/testutil"
	"github.com/olegiv/presensi-go/web"
)

// testEnv bundles the dependencies every handler needs.
type testEnv struct {
	db       *sql.DB
	queries  *store.Queries
	sessions *session.Manager
	renderer *render.Renderer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if err := i18n.Init(testutil.TestLogger()); err != nil {
		t.Fatalf("i18n.Init: %v", err)
	}

	db := testutil.TestDB(t)

	sessionStore := memstore.New()
	t.Cleanup(sessionStore.StopCleanup)
	sm := session.New(sessionStore, session.DefaultOptions(true))

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("fs.Sub: %v", err)
	}
	renderer, err := render.New(render.Config{TemplatesFS: templatesFS, Flash: sm, IsDev: true})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	return &testEnv{
		db:       db,
		queries:  store.New(db),
		sessions: sm,
		renderer: renderer,
	}
}

// requestWithSession wraps a request with a loaded, empty session.
func requestWithSession(sm *session.Manager, r *http.Request) *http.Request {
	ctx, err := sm.Load(r.Context(), "")
	if err != nil {
		return r
	}
	return r.WithContext(ctx)
}

// signedIn returns a request with a loaded session started for account,
// and the session placed in context as RequireAuth would.
func signedIn(t *testing.T, sm *session.Manager, r *http.Request, account model.Account) *http.Request {
	t.Helper()

	r = requestWithSession(sm, r)
	if err := sm.Start(r.Context(), account.ID, account.Role); err != nil {
		t.Fatalf("session Start: %v", err)
	}
	sess := session.Session{AccountID: account.ID, Role: account.Role}
	return r.WithContext(context.WithValue(r.Context(), middleware.ContextKeySession, sess))
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// postForm builds a form-encoded POST request.
func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(HeaderContentType, "application/x-www-form-urlencoded")
	return req
}

// assertStatus checks if the response status code matches the expected value.
func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}

// assertRedirect checks for a 303 to the given location.
func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	assertStatus(t, w.Code, http.StatusSeeOther)
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Location = %q; want %q", got, location)
	}
}
