// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// AttendanceRecord is one clock-in/clock-out interval of an account.
// A record whose ClockOut is not valid is open: the account is clocked in.
type AttendanceRecord struct {
	ID        int64        `json:"id"`
	AccountID int64        `json:"account_id"`
	ClockIn   time.Time    `json:"clock_in"`
	ClockOut  sql.NullTime `json:"clock_out"`
}

// IsOpen reports whether the record has not been clocked out yet.
func (r *AttendanceRecord) IsOpen() bool {
	return !r.ClockOut.Valid
}

// Duration returns the worked time of a closed record, or zero while open.
func (r *AttendanceRecord) Duration() time.Duration {
	if !r.ClockOut.Valid {
		return 0
	}
	return r.ClockOut.Time.Sub(r.ClockIn)
}

// AttendanceEntry is an attendance record joined with its owner's username,
// as listed on the admin screen.
type AttendanceEntry struct {
	AttendanceRecord
	Username string `json:"username"`
}
