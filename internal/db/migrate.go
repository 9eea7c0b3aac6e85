package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Subjects, preferences, sessions and analytics are stored as JSON blobs
	// owned by the plan; the plan is always read and written whole.
	`CREATE TABLE IF NOT EXISTS plans (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_active   INTEGER NOT NULL DEFAULT 0,
		subjects    TEXT NOT NULL DEFAULT '[]',
		preferences TEXT NOT NULL DEFAULT '{}',
		sessions    TEXT NOT NULL DEFAULT '[]',
		analytics   TEXT NOT NULL DEFAULT '{}',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plans_user ON plans(user_id, updated_at)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_plans_one_active ON plans(user_id) WHERE is_active = 1`,

	`CREATE TABLE IF NOT EXISTS courses (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		name       TEXT NOT NULL,
		code       TEXT NOT NULL DEFAULT '',
		credits    REAL NOT NULL CHECK(credits > 0),
		grade      TEXT NOT NULL,
		term       TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_courses_user ON courses(user_id, term)`,

	`CREATE TABLE IF NOT EXISTS materials (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		subject_id TEXT NOT NULL DEFAULT '',
		title      TEXT NOT NULL,
		source     TEXT NOT NULL DEFAULT '',
		content    TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_materials_user ON materials(user_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS interactions (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		kind          TEXT NOT NULL
		              CHECK(kind IN ('chat','notes','flashcards','quiz','search')),
		prompt        TEXT NOT NULL DEFAULT '',
		response      TEXT NOT NULL DEFAULT '',
		provider      TEXT NOT NULL DEFAULT '',
		model         TEXT NOT NULL DEFAULT '',
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL DEFAULT 1,
		error_message TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_interactions_user ON interactions(user_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS study_aids (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		material_id TEXT NOT NULL REFERENCES materials(id) ON DELETE CASCADE,
		kind        TEXT NOT NULL CHECK(kind IN ('notes','flashcards','quiz')),
		content     TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_study_aids_material ON study_aids(material_id, kind)`,

	// Per-plan overdue handling, added after plans shipped.
	`ALTER TABLE plans ADD COLUMN overdue_policy TEXT NOT NULL DEFAULT 'schedule_today'`,
}
