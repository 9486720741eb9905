// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"context"
	"database/sql"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/olegiv/presensi-go/internal/i18n"
	"github.com/olegiv/presensi-go/internal/model"
	"github.com/olegiv/presensi-go/web"
)

type stubFlash struct {
	msg, typ string
}

func (s *stubFlash) PopFlash(context.Context) (string, string) {
	msg, typ := s.msg, s.typ
	s.msg, s.typ = "", ""
	return msg, typ
}

func testFS() fs.FS {
	return fstest.MapFS{
		"layouts/base.html": {Data: []byte(`{{define "base"}}[{{template "title" .}}]{{if .Flash}}({{.FlashType}}:{{.Flash}}){{end}}{{template "content" .}}{{end}}`)},
		"auth/login.html":   {Data: []byte(`{{define "title"}}Login{{end}}{{define "content"}}user={{.Data}}{{end}}`)},
		"admin/broken.html": {Data: []byte(`{{define "title"}}Broken{{end}}{{define "content"}}{{.Data.Missing}}{{end}}`)},
	}
}

func TestNew_ParsesPages(t *testing.T) {
	r, err := New(Config{TemplatesFS: testFS()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if !r.Has("auth/login") {
		t.Error("expected auth/login to be parsed")
	}
	if !r.Has("admin/broken") {
		t.Error("expected admin/broken to be parsed")
	}
	if r.Has("layouts/base") {
		t.Error("layouts must not be registered as pages")
	}
}

func TestRender(t *testing.T) {
	r, err := New(Config{TemplatesFS: testFS()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)

	if err := r.Render(rec, req, "auth/login", TemplateData{Data: "alice"}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", got)
	}
	if body := rec.Body.String(); body != "[Login]user=alice" {
		t.Errorf("body = %q", body)
	}
}

func TestRenderStatus(t *testing.T) {
	r, err := New(Config{TemplatesFS: testFS()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := r.RenderStatus(rec, req, http.StatusNotFound, "auth/login", TemplateData{}); err != nil {
		t.Fatalf("RenderStatus: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	r, err := New(Config{TemplatesFS: testFS()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := r.Render(rec, req, "auth/missing", TemplateData{}); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestRender_ExecutionErrorWritesNothing(t *testing.T) {
	r, err := New(Config{TemplatesFS: testFS()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := r.Render(rec, req, "admin/broken", TemplateData{Data: "not a struct"}); err == nil {
		t.Fatal("expected execution error")
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body on error, got %q", rec.Body.String())
	}
}

func TestRender_Flash(t *testing.T) {
	flash := &stubFlash{msg: "Saved", typ: "success"}
	r, err := New(Config{TemplatesFS: testFS(), Flash: flash})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec := httptest.NewRecorder()
	if err := r.Render(rec, req, "auth/login", TemplateData{Data: "x"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "(success:Saved)") {
		t.Errorf("expected flash in body, got %q", rec.Body.String())
	}

	// Flash is shown once
	rec = httptest.NewRecorder()
	if err := r.Render(rec, req, "auth/login", TemplateData{Data: "x"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(rec.Body.String(), "Saved") {
		t.Errorf("flash should not be shown twice, got %q", rec.Body.String())
	}
}

func TestTemplateFuncs(t *testing.T) {
	funcs := templateFuncs()

	roleKey := funcs["roleKey"].(func(model.Role) string)
	if got := roleKey(model.RoleEmployee); got != "role.employee" {
		t.Errorf("roleKey = %q, want %q", got, "role.employee")
	}

	roles := funcs["roles"].(func() []model.Role)
	if len(roles()) != len(model.ValidRoles) {
		t.Errorf("roles() = %v", roles())
	}

	formatTime := funcs["formatTime"].(func(time.Time) string)
	ts := time.Date(2025, 3, 4, 9, 7, 0, 0, time.Local)
	if got := formatTime(ts); got != "09:07" {
		t.Errorf("formatTime = %q, want %q", got, "09:07")
	}
}

// TestEmbeddedTemplates renders every shipped page with representative data.
func TestEmbeddedTemplates(t *testing.T) {
	if err := i18n.Init(nil); err != nil {
		t.Fatalf("i18n.Init: %v", err)
	}

	r, err := New(Config{TemplatesFS: mustSub(t, web.Templates, "templates")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	now := time.Now()
	open := &model.AttendanceRecord{ID: 1, AccountID: 2, ClockIn: now}
	closed := &model.AttendanceRecord{ID: 1, AccountID: 2, ClockIn: now, ClockOut: sql.NullTime{Time: now, Valid: true}}

	type loginData struct{ Username, Error string }
	type dashboardData struct {
		Latest      *model.AttendanceRecord
		CanClockOut bool
	}
	type recordsData struct{ Entries []model.AttendanceEntry }
	type usersData struct{ Accounts []model.Account }
	type userForm struct {
		ID       int64
		Username string
		Role     model.Role
		Error    string
	}

	tests := []struct {
		name string
		data any
		want string
	}{
		{"auth/login", loginData{Error: "Invalid credentials"}, "Invalid credentials"},
		{"app/dashboard", dashboardData{}, `action="/clock_in"`},
		{"app/dashboard", dashboardData{Latest: open, CanClockOut: true}, `action="/clock_out"`},
		{"app/dashboard", dashboardData{Latest: closed}, `action="/clock_in"`},
		{"admin/records", recordsData{Entries: []model.AttendanceEntry{{AttendanceRecord: *open, Username: "alice"}}}, "alice"},
		{"admin/records", recordsData{}, "No attendance records."},
		{"admin/users", usersData{Accounts: []model.Account{{ID: 1, Username: "admin", Role: model.RoleAdmin}}}, `/admin/edit/1`},
		{"admin/user_edit", userForm{ID: 3, Username: "bob", Role: model.RoleEmployee}, `action="/admin/edit/3"`},
		{"admin/user_add", userForm{Error: "All fields are required."}, "All fields are required."},
		{"errors/404", nil, "404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			err := r.Render(rec, req, tt.name, TemplateData{Lang: "en", Data: tt.data, SignedIn: true})
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body does not contain %q", tt.want)
			}
		})
	}
}

func mustSub(t *testing.T, fsys fs.FS, dir string) fs.FS {
	t.Helper()
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		t.Fatalf("fs.Sub: %v", err)
	}
	return sub
}
