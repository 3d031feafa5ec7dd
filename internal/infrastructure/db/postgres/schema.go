package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied on every start; each statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL DEFAULT '',
	email         TEXT NOT NULL UNIQUE,
	role          TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	avatar_url    TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL DEFAULT 'ACTIVE',
	version       BIGINT NOT NULL DEFAULT 1,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
	id               TEXT PRIMARY KEY,
	action           TEXT NOT NULL,
	target_user_id   TEXT NOT NULL,
	target_user_name TEXT NOT NULL DEFAULT '',
	performed_by     TEXT NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL,
	details          TEXT NOT NULL DEFAULT ''
)`,
	`CREATE INDEX IF NOT EXISTS audit_logs_created_at_idx ON audit_logs (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS students (
	id              TEXT PRIMARY KEY,
	user_id         TEXT,
	name            TEXT NOT NULL,
	grade           TEXT NOT NULL DEFAULT '',
	section         TEXT NOT NULL DEFAULT '',
	guardian_name   TEXT NOT NULL DEFAULT '',
	contact         TEXT NOT NULL DEFAULT '',
	attendance_rate INTEGER NOT NULL DEFAULT 0,
	fees_status     TEXT NOT NULL DEFAULT 'PENDING'
)`,
	`CREATE TABLE IF NOT EXISTS teachers (
	id      TEXT PRIMARY KEY,
	name    TEXT NOT NULL,
	subject TEXT NOT NULL DEFAULT '',
	email   TEXT NOT NULL DEFAULT '',
	classes TEXT NOT NULL DEFAULT '[]'
)`,
	`CREATE TABLE IF NOT EXISTS assignments (
	id              TEXT PRIMARY KEY,
	class_id        TEXT NOT NULL DEFAULT '',
	title           TEXT NOT NULL,
	description     TEXT NOT NULL DEFAULT '',
	due_date        TEXT NOT NULL DEFAULT '',
	subject         TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL DEFAULT 'OPEN',
	attachment_name TEXT
)`,
	`CREATE TABLE IF NOT EXISTS exams (
	id           TEXT PRIMARY KEY,
	student_id   TEXT NOT NULL,
	student_name TEXT NOT NULL DEFAULT '',
	subject      TEXT NOT NULL DEFAULT '',
	score        INTEGER NOT NULL DEFAULT 0,
	total        INTEGER NOT NULL DEFAULT 0,
	grade        TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS fees (
	invoice_id  TEXT PRIMARY KEY,
	student_id  TEXT NOT NULL,
	name        TEXT NOT NULL DEFAULT '',
	grade       TEXT NOT NULL DEFAULT '',
	amount      BIGINT NOT NULL DEFAULT 0,
	due_date    TEXT NOT NULL DEFAULT '',
	fees_status TEXT NOT NULL DEFAULT 'PENDING'
)`,
	`CREATE TABLE IF NOT EXISTS attendance (
	id         TEXT PRIMARY KEY,
	date       TEXT NOT NULL,
	student_id TEXT NOT NULL,
	status     TEXT NOT NULL
)`,
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
