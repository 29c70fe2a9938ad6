package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/db"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/shopspring/decimal"
)

// SQLSessionRepo implements SessionRepo.
type SQLSessionRepo struct {
	db db.DBTX
}

// NewSQLSessionRepo creates a new SQLSessionRepo.
func NewSQLSessionRepo(conn db.DBTX) *SQLSessionRepo {
	return &SQLSessionRepo{db: conn}
}

const sessionColumns = `id, activity_id, value, complete_date, note, created_at`

func (r *SQLSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	query := `INSERT INTO sessions (` + sessionColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ActivityID,
		s.Value.String(),
		s.CompleteDate.String(),
		s.Note,
		s.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

func (r *SQLSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	s, err := r.scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session: %w", ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

func (r *SQLSessionRepo) ListByActivity(ctx context.Context, activityID string, rng calendar.Range) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions
		WHERE activity_id = ? AND complete_date BETWEEN ? AND ?
		ORDER BY complete_date, created_at`
	rows, err := r.db.QueryContext(ctx, query, activityID, rng.Start.String(), rng.End.String())
	if err != nil {
		return nil, fmt.Errorf("listing sessions by activity: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		s, err := r.scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// TotalInRange sums session values over the inclusive range. Values are
// stored as decimal text and added exactly in Go.
func (r *SQLSessionRepo) TotalInRange(ctx context.Context, activityID string, rng calendar.Range) (decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT value FROM sessions WHERE activity_id = ? AND complete_date BETWEEN ? AND ?`,
		activityID, rng.Start.String(), rng.End.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing sessions: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var valueStr string
		if err := rows.Scan(&valueStr); err != nil {
			return decimal.Zero, fmt.Errorf("scanning session value: %w", err)
		}
		v, err := parseDecimal(valueStr, "value")
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(v)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("iterating session values: %w", err)
	}
	return total, nil
}

func (r *SQLSessionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLSessionRepo) scanSession(s rowScanner) (*domain.Session, error) {
	var sess domain.Session
	var valueStr, dateStr, createdAtStr string

	err := s.Scan(&sess.ID, &sess.ActivityID, &valueStr, &dateStr, &sess.Note, &createdAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	if sess.Value, err = parseDecimal(valueStr, "value"); err != nil {
		return nil, err
	}
	if sess.CompleteDate, err = calendar.Parse(dateStr); err != nil {
		return nil, fmt.Errorf("parsing complete_date: %w", err)
	}
	if sess.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &sess, nil
}
