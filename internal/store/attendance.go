// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/presensi-go/internal/model"
)

const recordColumns = `id, account_id, clock_in, clock_out`

func scanRecord(row interface{ Scan(...any) error }) (model.AttendanceRecord, error) {
	var r model.AttendanceRecord
	err := row.Scan(&r.ID, &r.AccountID, &r.ClockIn, &r.ClockOut)
	return r, err
}

// clockIn inserts only when the account has no open record, so the check and
// the write are one statement. The partial unique index idx_attendance_one_open
// backs this up at the schema level.
const clockIn = `INSERT INTO attendance_records (account_id, clock_in)
SELECT ?1, ?2
WHERE NOT EXISTS (
    SELECT 1 FROM attendance_records WHERE account_id = ?1 AND clock_out IS NULL
)`

// ClockIn opens a new record for the account at the given time.
// Returns ErrAlreadyClockedIn if an open record already exists.
func (q *Queries) ClockIn(ctx context.Context, accountID int64, at time.Time) (model.AttendanceRecord, error) {
	res, err := q.db.ExecContext(ctx, clockIn, accountID, at)
	if isUniqueViolation(err) {
		return model.AttendanceRecord{}, ErrAlreadyClockedIn
	}
	if err != nil {
		return model.AttendanceRecord{}, fmt.Errorf("inserting attendance record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.AttendanceRecord{}, fmt.Errorf("inserting attendance record: %w", err)
	}
	if n == 0 {
		return model.AttendanceRecord{}, ErrAlreadyClockedIn
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.AttendanceRecord{}, fmt.Errorf("inserting attendance record: %w", err)
	}
	return q.GetRecordByID(ctx, id)
}

const getRecordByID = `SELECT ` + recordColumns + ` FROM attendance_records WHERE id = ?`

// GetRecordByID returns sql.ErrNoRows when the id is unknown.
func (q *Queries) GetRecordByID(ctx context.Context, id int64) (model.AttendanceRecord, error) {
	return scanRecord(q.db.QueryRowContext(ctx, getRecordByID, id))
}

const clockOut = `UPDATE attendance_records SET clock_out = ?
WHERE account_id = ? AND clock_out IS NULL`

// ClockOut closes the account's open record, if any, and reports how many
// records were closed. Zero is not an error.
func (q *Queries) ClockOut(ctx context.Context, accountID int64, at time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, clockOut, at, accountID)
	if err != nil {
		return 0, fmt.Errorf("closing attendance record: %w", err)
	}
	return res.RowsAffected()
}

const getLatestRecord = `SELECT ` + recordColumns + ` FROM attendance_records
WHERE account_id = ?
ORDER BY id DESC
LIMIT 1`

// GetLatestRecord returns the most recently created record of the account,
// or sql.ErrNoRows if it has never clocked in.
func (q *Queries) GetLatestRecord(ctx context.Context, accountID int64) (model.AttendanceRecord, error) {
	return scanRecord(q.db.QueryRowContext(ctx, getLatestRecord, accountID))
}

const listAttendanceEntries = `SELECT r.id, r.account_id, r.clock_in, r.clock_out, a.username
FROM attendance_records r
JOIN accounts a ON r.account_id = a.id
ORDER BY r.id DESC`

// ListAttendanceEntries returns every record with its owner's username,
// most recent first.
func (q *Queries) ListAttendanceEntries(ctx context.Context) ([]model.AttendanceEntry, error) {
	rows, err := q.db.QueryContext(ctx, listAttendanceEntries)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []model.AttendanceEntry
	for rows.Next() {
		var e model.AttendanceEntry
		if err := rows.Scan(&e.ID, &e.AccountID, &e.ClockIn, &e.ClockOut, &e.Username); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
