// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteDashboard is the employee dashboard.
	RouteDashboard = "/dashboard"
	// RouteClockIn opens an attendance record.
	RouteClockIn = "/clock_in"
	// RouteClockOut closes the open attendance record.
	RouteClockOut = "/clock_out"
	// RouteHealth is the health check route.
	RouteHealth = "/health"

	// RouteAdmin is the admin records screen.
	RouteAdmin = "/admin"
	// RouteUsers is the account list, relative to RouteAdmin.
	RouteUsers = "/users"
	// RouteAdd is the add-user form, relative to RouteAdmin.
	RouteAdd = "/add"
	// RouteEditID is the edit-user form, relative to RouteAdmin.
	RouteEditID = "/edit/{id}"
)

const (
	redirectLogin     = RouteLogin
	redirectDashboard = RouteDashboard
	redirectAdmin     = RouteAdmin
)

// Template names.
const (
	tmplLogin     = "auth/login"
	tmplDashboard = "app/dashboard"
	tmplRecords   = "admin/records"
	tmplUsers     = "admin/users"
	tmplUserAdd   = "admin/user_add"
	tmplUserEdit  = "admin/user_edit"
	tmplNotFound  = "errors/404"
)

// HeaderContentType is the Content-Type HTTP header name.
const HeaderContentType = "Content-Type"
