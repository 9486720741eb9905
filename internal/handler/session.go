// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"

	"github.com/olegiv/presensi-go/internal/model"
	"github.com/olegiv/presensi-go/internal/session"
)

// SessionStore is the session abstraction the handlers depend on.
// *session.Manager satisfies it.
type SessionStore interface {
	Current(ctx context.Context) (session.Session, bool)
	Start(ctx context.Context, accountID int64, role model.Role) error
	End(ctx context.Context) error
	Flash(ctx context.Context, flashType, msg string)
}

var _ SessionStore = (*session.Manager)(nil)
