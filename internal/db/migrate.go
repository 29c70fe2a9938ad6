package db

import (
	"context"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent and
// valid in both SQLite and Postgres; dates are stored as YYYY-MM-DD text so
// range predicates compare lexically, and quantities as decimal text.
func Migrate(ctx context.Context, conn *Conn) error {
	for i, stmt := range migrations {
		if _, err := conn.DB.ExecContext(ctx, stmt); err != nil {
			// Tolerate re-adding columns since the migration system re-runs
			// all statements.
			if isDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

func isDuplicateColumn(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate column name") ||
		(strings.Contains(msg, "column") && strings.Contains(msg, "already exists"))
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS app_state (
		id                    TEXT PRIMARY KEY CHECK(id = 'default'),
		create_date           TEXT NOT NULL,
		latest_evaluated_date TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id                           TEXT PRIMARY KEY,
		name                         TEXT NOT NULL UNIQUE,
		session_unit                 TEXT NOT NULL DEFAULT '',
		current_streak_count         INTEGER NOT NULL DEFAULT 0
		                             CHECK(current_streak_count >= 0),
		last_goal_success_check_date TEXT,
		created_at                   TEXT NOT NULL,
		updated_at                   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS goals (
		id              TEXT PRIMARY KEY,
		activity_id     TEXT NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
		kind            TEXT NOT NULL
		                CHECK(kind IN ('every_x_days','days_of_week','weeks_period')),
		effective_date  TEXT NOT NULL,
		interval_days   INTEGER CHECK(interval_days IS NULL OR interval_days >= 1),
		weeks_interval  INTEGER CHECK(weeks_interval IS NULL OR weeks_interval >= 1),
		target_value    TEXT,
		target_criteria TEXT
		                CHECK(target_criteria IS NULL OR target_criteria IN ('at_least','exactly','less_than')),
		created_at      TEXT NOT NULL,
		UNIQUE(activity_id, effective_date)
	)`,

	`CREATE TABLE IF NOT EXISTS goal_weekday_targets (
		goal_id         TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
		weekday         INTEGER NOT NULL CHECK(weekday BETWEEN 1 AND 7),
		target_value    TEXT NOT NULL,
		target_criteria TEXT NOT NULL
		                CHECK(target_criteria IN ('at_least','exactly','less_than')),
		PRIMARY KEY (goal_id, weekday)
	)`,

	`CREATE TABLE IF NOT EXISTS sessions (
		id            TEXT PRIMARY KEY,
		activity_id   TEXT NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
		value         TEXT NOT NULL,
		complete_date TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,

	// Columns added after the first release.
	`ALTER TABLE activities ADD COLUMN archived_at TEXT`,
	`ALTER TABLE sessions ADD COLUMN note TEXT NOT NULL DEFAULT ''`,

	`CREATE INDEX IF NOT EXISTS idx_activities_watermark ON activities(last_goal_success_check_date)`,
	`CREATE INDEX IF NOT EXISTS idx_goals_activity_effective ON goals(activity_id, effective_date)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_activity_date ON sessions(activity_id, complete_date)`,
}
