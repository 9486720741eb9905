// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render renders the HTML pages from embedded templates.
package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/olegiv/presensi-go/internal/i18n"
	"github.com/olegiv/presensi-go/internal/model"
)

// baseLayout wraps every page. Pages define "title" and "content".
const baseLayout = "layouts/base.html"

// pageDirs are the template directories parsed as pages.
var pageDirs = []string{"auth", "app", "admin", "errors"}

// FlashSource supplies the one-time message shown on the next page.
type FlashSource interface {
	PopFlash(ctx context.Context) (msg, flashType string)
}

// Renderer handles template rendering with caching.
type Renderer struct {
	templates map[string]*template.Template
	flash     FlashSource
	isDev     bool
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS fs.FS
	Flash       FlashSource
	IsDev       bool
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		flash:     cfg.Flash,
		isDev:     cfg.IsDev,
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

// parseTemplates parses every page together with the base layout.
// Templates are keyed as "dir/name", e.g. "admin/records".
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := templateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	for _, dir := range pageDirs {
		pages, err := templateFiles(templatesFS, dir)
		if err != nil {
			return fmt.Errorf("getting %s templates: %w", dir, err)
		}

		for _, tmplPath := range pages {
			name := dir + "/" + strings.TrimSuffix(path.Base(tmplPath), ".html")

			files := []string{baseLayout}
			files = append(files, partials...)
			files = append(files, tmplPath)

			tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, files...)
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", name, err)
			}
			r.templates[name] = tmpl
		}
	}

	return nil
}

// templateFiles returns all .html files in a directory.
func templateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	var files []string

	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		// Directory is optional
		return files, nil
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

// Has reports whether a template with the given name was parsed.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"T": i18n.T,
		"formatDateTime": func(t time.Time) string {
			return t.Local().Format("2006-01-02 15:04")
		},
		"formatTime": func(t time.Time) string {
			return t.Local().Format("15:04")
		},
		"roleKey": func(role model.Role) string {
			return "role." + role.String()
		},
		"roles": func() []model.Role {
			return model.ValidRoles
		},
	}
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Lang        string
	Data        any
	Flash       string
	FlashType   string
	CurrentYear int
	SignedIn    bool
	IsAdmin     bool
}

// Render renders a template with status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus renders a template with the given status code.
// Output is buffered so template errors never produce a partial page.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = time.Now().Year()
	if data.Lang == "" {
		data.Lang = i18n.DefaultLanguage
	}

	if r.flash != nil {
		data.Flash, data.FlashType = r.flash.PopFlash(req.Context())
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil && r.isDev {
		slog.Debug("writing response", "template", name, "error", err)
	}
	return nil
}
