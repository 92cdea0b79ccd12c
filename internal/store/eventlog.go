// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// CreateEventLogParams holds a log entry to persist.
type CreateEventLogParams struct {
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

const createEventLog = `INSERT INTO event_log (level, category, message, metadata, created_at)
VALUES (?, ?, ?, ?, ?)`

// CreateEventLog persists a log entry.
func (q *Queries) CreateEventLog(ctx context.Context, arg CreateEventLogParams) error {
	metadata := arg.Metadata
	if metadata == "" {
		metadata = "{}"
	}
	_, err := q.db.ExecContext(ctx, createEventLog, arg.Level, arg.Category, arg.Message, metadata, arg.CreatedAt)
	return err
}

// ListEventLogParams pages through the log.
type ListEventLogParams struct {
	Limit  int64
	Offset int64
}

const listEventLog = `SELECT id, level, category, message, metadata, created_at FROM event_log
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?`

// ListEventLog returns log entries, newest first.
func (q *Queries) ListEventLog(ctx context.Context, arg ListEventLogParams) ([]EventLog, error) {
	return queryAll(ctx, q.db, func(s scanner) (EventLog, error) {
		var i EventLog
		err := s.Scan(&i.ID, &i.Level, &i.Category, &i.Message, &i.Metadata, &i.CreatedAt)
		return i, err
	}, listEventLog, arg.Limit, arg.Offset)
}

const deleteEventLogBefore = `DELETE FROM event_log WHERE created_at < ?`

// DeleteEventLogBefore removes entries older than cutoff.
func (q *Queries) DeleteEventLogBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteEventLogBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
