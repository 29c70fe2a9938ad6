package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/db"
	"github.com/alexanderramin/stride/internal/domain"
)

// SQLActivityRepo implements ActivityRepo.
type SQLActivityRepo struct {
	db db.DBTX
}

// NewSQLActivityRepo creates a new SQLActivityRepo.
func NewSQLActivityRepo(conn db.DBTX) *SQLActivityRepo {
	return &SQLActivityRepo{db: conn}
}

const activityColumns = `id, name, session_unit, current_streak_count,
	last_goal_success_check_date, archived_at, created_at, updated_at`

func (r *SQLActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	query := `INSERT INTO activities (` + activityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.Name,
		a.SessionUnit,
		a.CurrentStreakCount,
		nullableDate(a.LastGoalSuccessCheckDate),
		nullableTimeToString(a.ArchivedAt, time.RFC3339),
		a.CreatedAt.UTC().Format(time.RFC3339),
		a.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}
	return nil
}

func (r *SQLActivityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = ?`, id)
	return r.scanActivity(row)
}

// GetByName matches case-insensitively.
func (r *SQLActivityRepo) GetByName(ctx context.Context, name string) (*domain.Activity, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE lower(name) = lower(?)`, strings.TrimSpace(name))
	return r.scanActivity(row)
}

func (r *SQLActivityRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities`
	if !includeArchived {
		query += ` WHERE archived_at IS NULL`
	}
	query += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()
	return r.scanActivities(rows)
}

func (r *SQLActivityRepo) Archive(ctx context.Context, id string) error {
	now := nowUTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE activities SET archived_at = ?, updated_at = ? WHERE id = ? AND archived_at IS NULL`,
		now, now, id)
	if err != nil {
		return fmt.Errorf("archiving activity: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("active activity %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLActivityRepo) ListNeedingEvaluation(ctx context.Context, asOf calendar.Date) ([]*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities
		WHERE archived_at IS NULL
		  AND (last_goal_success_check_date IS NULL OR last_goal_success_check_date < ?)
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, asOf.String())
	if err != nil {
		return nil, fmt.Errorf("listing activities needing evaluation: %w", err)
	}
	defer rows.Close()
	return r.scanActivities(rows)
}

func (r *SQLActivityRepo) UpdateProgress(ctx context.Context, id string, p ActivityProgress) error {
	if p.Streak == nil && p.Watermark == nil {
		return nil
	}
	sets := []string{"updated_at = ?"}
	args := []any{nowUTC()}
	if p.Streak != nil {
		sets = append(sets, "current_streak_count = ?")
		args = append(args, *p.Streak)
	}
	if p.Watermark != nil {
		sets = append(sets, "last_goal_success_check_date = ?")
		args = append(args, p.Watermark.String())
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		`UPDATE activities SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("updating activity progress: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLActivityRepo) scanActivity(row *sql.Row) (*domain.Activity, error) {
	a, err := r.scanInto(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("activity: %w", ErrNotFound)
		}
		return nil, err
	}
	return a, nil
}

func (r *SQLActivityRepo) scanActivities(rows *sql.Rows) ([]*domain.Activity, error) {
	var activities []*domain.Activity
	for rows.Next() {
		a, err := r.scanInto(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return activities, nil
}

func (r *SQLActivityRepo) scanInto(s rowScanner) (*domain.Activity, error) {
	var a domain.Activity
	var watermark, archivedAt sql.NullString
	var createdAtStr, updatedAtStr string

	err := s.Scan(&a.ID, &a.Name, &a.SessionUnit, &a.CurrentStreakCount,
		&watermark, &archivedAt, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning activity: %w", err)
	}

	if a.LastGoalSuccessCheckDate, err = parseNullableDate(watermark, "last_goal_success_check_date"); err != nil {
		return nil, err
	}
	a.ArchivedAt = parseNullableTime(archivedAt, time.RFC3339)
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &a, nil
}
