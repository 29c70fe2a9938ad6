package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/db"
	"github.com/alexanderramin/stride/internal/domain"
)

// SQLAppStateRepo implements AppStateRepo over the single 'default' row.
type SQLAppStateRepo struct {
	db db.DBTX
}

// NewSQLAppStateRepo creates a new SQLAppStateRepo.
func NewSQLAppStateRepo(conn db.DBTX) *SQLAppStateRepo {
	return &SQLAppStateRepo{db: conn}
}

func (r *SQLAppStateRepo) FetchOrCreate(ctx context.Context, createDate calendar.Date) (*domain.AppState, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO app_state (id, create_date) VALUES ('default', ?) ON CONFLICT (id) DO NOTHING`,
		createDate.String())
	if err != nil {
		return nil, fmt.Errorf("creating app state: %w", err)
	}

	var createStr string
	var latest sql.NullString
	err = r.db.QueryRowContext(ctx,
		`SELECT create_date, latest_evaluated_date FROM app_state WHERE id = 'default'`,
	).Scan(&createStr, &latest)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("app state: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning app state: %w", err)
	}

	s := &domain.AppState{}
	if s.CreateDate, err = calendar.Parse(createStr); err != nil {
		return nil, fmt.Errorf("parsing create_date: %w", err)
	}
	if s.LatestEvaluatedDate, err = parseNullableDate(latest, "latest_evaluated_date"); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLAppStateRepo) UpdateLatestEvaluated(ctx context.Context, date calendar.Date) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE app_state SET latest_evaluated_date = ? WHERE id = 'default'`, date.String())
	if err != nil {
		return fmt.Errorf("updating app state: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("app state: %w", ErrNotFound)
	}
	return nil
}
