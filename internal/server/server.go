// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package server wires the middleware stack and routes into an http.Server.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/presensi-go/internal/handler"
	"github.com/olegiv/presensi-go/internal/middleware"
	"github.com/olegiv/presensi-go/internal/render"
	"github.com/olegiv/presensi-go/internal/session"
	"github.com/olegiv/presensi-go/internal/version"
	"github.com/olegiv/presensi-go/web"
)

// DefaultRequestTimeout bounds the time a handler may take.
const DefaultRequestTimeout = 30 * time.Second

// Config holds everything the router needs.
type Config struct {
	Addr           string
	Port           int
	IsDev          bool
	CSRFKey        []byte
	RequestTimeout time.Duration
	// AccessLog enables chi's request logger.
	AccessLog bool

	DB       *sql.DB
	Sessions *session.Manager
	Renderer *render.Renderer
	Version  version.Info
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New builds the router and returns a ready server.
func New(cfg Config) (*Server, error) {
	router, err := NewRouter(cfg)
	if err != nil {
		return nil, err
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second, // Mitigates slowloris
		MaxHeaderBytes:    1 << 20,
	}

	return &Server{inner: httpServer}, nil
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.inner.Addr
}

// Start begins serving HTTP traffic. It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}

// NewRouter registers the middleware stack and every route.
func NewRouter(cfg Config) (http.Handler, error) {
	if cfg.DB == nil || cfg.Sessions == nil || cfg.Renderer == nil {
		return nil, fmt.Errorf("server: database, sessions and renderer are required")
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}

	authHandler := handler.NewAuthHandler(cfg.DB, cfg.Renderer, cfg.Sessions)
	attendanceHandler := handler.NewAttendanceHandler(cfg.DB, cfg.Renderer)
	adminHandler := handler.NewAdminHandler(cfg.DB, cfg.Renderer)
	usersHandler := handler.NewUsersHandler(cfg.DB, cfg.Renderer, cfg.Sessions)
	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Sessions, cfg.Version)

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig(cfg.CSRFKey, cfg.IsDev, cfg.Port))

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDev)
	securityConfig.ExcludePaths = []string{handler.RouteHealth}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if cfg.AccessLog {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.SecurityHeaders(securityConfig))
	r.Use(cfg.Sessions.LoadAndSave)
	r.Use(middleware.Language(cfg.IsDev))

	r.Get(handler.RouteHealth, healthHandler.Health)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)

		r.Get(handler.RouteRoot, http.RedirectHandler(handler.RouteLogin, http.StatusSeeOther).ServeHTTP)
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.Post(handler.RouteLogin, authHandler.Login)
		r.Get(handler.RouteLogout, authHandler.Logout)
		r.Post(handler.RouteLogout, authHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(cfg.Sessions))

			r.Get(handler.RouteDashboard, attendanceHandler.Dashboard)
			r.Post(handler.RouteClockIn, attendanceHandler.ClockIn)
			r.Post(handler.RouteClockOut, attendanceHandler.ClockOut)
		})

		r.Route(handler.RouteAdmin, func(r chi.Router) {
			r.Use(middleware.RequireAuth(cfg.Sessions))
			r.Use(middleware.RequireAdmin())

			r.Get("/", adminHandler.Records)
			r.Get(handler.RouteUsers, usersHandler.List)
			r.Get(handler.RouteAdd, usersHandler.NewForm)
			r.Post(handler.RouteAdd, usersHandler.Create)
			r.Get(handler.RouteEditID, usersHandler.EditForm)
			r.Post(handler.RouteEditID, usersHandler.Update)
		})
	})

	r.NotFound(handler.NotFoundHandler(cfg.Renderer))

	return r, nil
}
