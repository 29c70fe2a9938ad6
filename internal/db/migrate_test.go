package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Conn {
	t.Helper()
	conn, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestMigrate_Idempotent(t *testing.T) {
	conn := openTestDB(t)

	require.NoError(t, Migrate(context.Background(), conn))
	require.NoError(t, Migrate(context.Background(), conn))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	conn := openTestDB(t)

	for _, table := range []string{"app_state", "activities", "goals", "goal_weekday_targets", "sessions"} {
		var name string
		err := conn.DB.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	conn := openTestDB(t)

	for _, idx := range []string{
		"idx_activities_watermark",
		"idx_goals_activity_effective",
		"idx_sessions_activity_date",
	} {
		var name string
		err := conn.DB.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	conn := openTestDB(t)

	var fk int
	require.NoError(t, conn.DB.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk, "foreign keys should be enabled")

	_, err := conn.DB.Exec(`INSERT INTO sessions (id, activity_id, value, complete_date, created_at)
		VALUES ('s1', 'missing', '1', '2025-01-01', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "session for an unknown activity should be rejected")
}

func TestMigrate_AppStateIsSingleton(t *testing.T) {
	conn := openTestDB(t)

	_, err := conn.DB.Exec(`INSERT INTO app_state (id, create_date) VALUES ('default', '2025-01-01')`)
	require.NoError(t, err)
	_, err = conn.DB.Exec(`INSERT INTO app_state (id, create_date) VALUES ('other', '2025-01-01')`)
	assert.Error(t, err, "only the default row is allowed")
}

func TestMigrate_GoalConstraints(t *testing.T) {
	conn := openTestDB(t)

	_, err := conn.DB.Exec(`INSERT INTO activities (id, name, created_at, updated_at)
		VALUES ('a1', 'Run', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = conn.DB.Exec(`INSERT INTO goals (id, activity_id, kind, effective_date, interval_days, target_value, target_criteria, created_at)
		VALUES ('g1', 'a1', 'monthly', '2025-01-01', 1, '10', 'at_least', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "unknown goal kind should be rejected")

	_, err = conn.DB.Exec(`INSERT INTO goals (id, activity_id, kind, effective_date, interval_days, target_value, target_criteria, created_at)
		VALUES ('g1', 'a1', 'every_x_days', '2025-01-01', 0, '10', 'at_least', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "zero interval should be rejected")

	_, err = conn.DB.Exec(`INSERT INTO goals (id, activity_id, kind, effective_date, interval_days, target_value, target_criteria, created_at)
		VALUES ('g1', 'a1', 'every_x_days', '2025-01-01', 1, '10', 'at_least', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = conn.DB.Exec(`INSERT INTO goals (id, activity_id, kind, effective_date, interval_days, target_value, target_criteria, created_at)
		VALUES ('g2', 'a1', 'every_x_days', '2025-01-01', 2, '5', 'at_least', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "one goal version per activity and effective date")

	_, err = conn.DB.Exec(`INSERT INTO goal_weekday_targets (goal_id, weekday, target_value, target_criteria)
		VALUES ('g1', 8, '1', 'at_least')`)
	assert.Error(t, err, "weekday must be 1..7")
}

// TestMigrate_UpgradePath_AddsLaterColumns opens a database created before
// archived_at and note existed and checks that old rows survive with defaults.
func TestMigrate_UpgradePath_AddsLaterColumns(t *testing.T) {
	raw, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	t.Cleanup(func() { raw.Close() })

	legacy := []string{
		`CREATE TABLE activities (
			id TEXT PRIMARY KEY, name TEXT NOT NULL UNIQUE, session_unit TEXT NOT NULL DEFAULT '',
			current_streak_count INTEGER NOT NULL DEFAULT 0, last_goal_success_check_date TEXT,
			created_at TEXT NOT NULL, updated_at TEXT NOT NULL)`,
		`CREATE TABLE sessions (
			id TEXT PRIMARY KEY, activity_id TEXT NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
			value TEXT NOT NULL, complete_date TEXT NOT NULL, created_at TEXT NOT NULL)`,
		`INSERT INTO activities (id, name, current_streak_count, created_at, updated_at)
			VALUES ('a1', 'Read', 4, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`,
		`INSERT INTO sessions (id, activity_id, value, complete_date, created_at)
			VALUES ('s1', 'a1', '12.5', '2025-01-02', '2025-01-02T00:00:00Z')`,
	}
	for _, stmt := range legacy {
		_, err := raw.Exec(stmt)
		require.NoError(t, err)
	}

	conn := &Conn{DB: raw, Dialect: DialectSQLite}
	require.NoError(t, Migrate(context.Background(), conn))

	var streak int
	var archived sql.NullString
	require.NoError(t, raw.QueryRow(`SELECT current_streak_count, archived_at FROM activities WHERE id = 'a1'`).Scan(&streak, &archived))
	assert.Equal(t, 4, streak)
	assert.False(t, archived.Valid)

	var value, note string
	require.NoError(t, raw.QueryRow(`SELECT value, note FROM sessions WHERE id = 's1'`).Scan(&value, &note))
	assert.Equal(t, "12.5", value)
	assert.Equal(t, "", note)
}
