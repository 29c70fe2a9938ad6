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
)

// SQLGoalRepo implements GoalRepo. Per-weekday targets of DaysOfWeek goals
// live in goal_weekday_targets; Create writes several rows and should run
// inside a unit of work.
type SQLGoalRepo struct {
	db db.DBTX
}

// NewSQLGoalRepo creates a new SQLGoalRepo.
func NewSQLGoalRepo(conn db.DBTX) *SQLGoalRepo {
	return &SQLGoalRepo{db: conn}
}

const goalColumns = `id, activity_id, kind, effective_date, interval_days, weeks_interval,
	target_value, target_criteria, created_at`

func (r *SQLGoalRepo) Create(ctx context.Context, g domain.Goal) error {
	base := g.Base()
	var intervalDays, weeksInterval, targetValue, targetCriteria any

	switch v := g.(type) {
	case *domain.EveryXDays:
		intervalDays = v.IntervalDays
		targetValue, targetCriteria = v.Target.Value.String(), string(v.Target.Criteria)
	case *domain.DaysOfWeek:
		weeksInterval = v.WeeksInterval
	case *domain.WeeksPeriod:
		targetValue, targetCriteria = v.Target.Value.String(), string(v.Target.Criteria)
	default:
		return fmt.Errorf("%w: unsupported goal type %T", domain.ErrInvalidGoal, g)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (`+goalColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		base.ID,
		base.ActivityID,
		string(g.Kind()),
		base.EffectiveDate.String(),
		intervalDays,
		weeksInterval,
		targetValue,
		targetCriteria,
		base.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}

	if dow, ok := g.(*domain.DaysOfWeek); ok {
		for _, w := range calendar.AllWeekdays {
			t := dow.TargetOn(w)
			if t == nil {
				continue
			}
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO goal_weekday_targets (goal_id, weekday, target_value, target_criteria)
				VALUES (?, ?, ?, ?)`,
				base.ID, int(w), t.Value.String(), string(t.Criteria))
			if err != nil {
				return fmt.Errorf("inserting %s target: %w", w, err)
			}
		}
	}
	return nil
}

func (r *SQLGoalRepo) EffectiveFor(ctx context.Context, activityID string, date calendar.Date) (domain.Goal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+goalColumns+` FROM goals
		WHERE activity_id = ? AND effective_date <= ?
		ORDER BY effective_date DESC LIMIT 1`,
		activityID, date.String())

	raw, err := scanGoalRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return r.hydrate(ctx, raw)
}

func (r *SQLGoalRepo) ListByActivity(ctx context.Context, activityID string) ([]domain.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE activity_id = ? ORDER BY effective_date`, activityID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}

	// Collect first: weekday targets are loaded with further queries.
	var raws []goalRow
	for rows.Next() {
		raw, err := scanGoalRow(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		raws = append(raws, raw)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating goals: %w", err)
	}
	rows.Close()

	goals := make([]domain.Goal, 0, len(raws))
	for _, raw := range raws {
		g, err := r.hydrate(ctx, raw)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, nil
}

func (r *SQLGoalRepo) DeleteFrom(ctx context.Context, activityID string, date calendar.Date) (int, error) {
	// Weekday targets go with their goal via ON DELETE CASCADE.
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM goals WHERE activity_id = ? AND effective_date >= ?`, activityID, date.String())
	if err != nil {
		return 0, fmt.Errorf("deleting superseded goals: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted goals: %w", err)
	}
	return int(n), nil
}

type goalRow struct {
	id             string
	activityID     string
	kind           string
	effectiveDate  string
	intervalDays   sql.NullInt64
	weeksInterval  sql.NullInt64
	targetValue    sql.NullString
	targetCriteria sql.NullString
	createdAt      string
}

func scanGoalRow(s rowScanner) (goalRow, error) {
	var g goalRow
	err := s.Scan(&g.id, &g.activityID, &g.kind, &g.effectiveDate, &g.intervalDays,
		&g.weeksInterval, &g.targetValue, &g.targetCriteria, &g.createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return g, err
		}
		return g, fmt.Errorf("scanning goal: %w", err)
	}
	return g, nil
}

// hydrate turns a stored row into its concrete variant, loading weekday
// targets when needed.
func (r *SQLGoalRepo) hydrate(ctx context.Context, raw goalRow) (domain.Goal, error) {
	base := domain.GoalBase{ID: raw.id, ActivityID: raw.activityID}
	var err error
	if base.EffectiveDate, err = calendar.Parse(raw.effectiveDate); err != nil {
		return nil, fmt.Errorf("goal %s: parsing effective_date: %w", raw.id, err)
	}
	if base.CreatedAt, err = time.Parse(time.RFC3339, raw.createdAt); err != nil {
		return nil, fmt.Errorf("goal %s: parsing created_at: %w", raw.id, err)
	}

	switch domain.GoalKind(raw.kind) {
	case domain.GoalEveryXDays:
		target, err := storedTarget(raw)
		if err != nil {
			return nil, err
		}
		interval, err := storedInterval(raw.id, "interval_days", raw.intervalDays)
		if err != nil {
			return nil, err
		}
		return &domain.EveryXDays{GoalBase: base, IntervalDays: interval, Target: target}, nil
	case domain.GoalWeeksPeriod:
		target, err := storedTarget(raw)
		if err != nil {
			return nil, err
		}
		return &domain.WeeksPeriod{GoalBase: base, Target: target}, nil
	case domain.GoalDaysOfWeek:
		weeks, err := storedInterval(raw.id, "weeks_interval", raw.weeksInterval)
		if err != nil {
			return nil, err
		}
		g := &domain.DaysOfWeek{GoalBase: base, WeeksInterval: weeks}
		if err := r.loadWeekdayTargets(ctx, g); err != nil {
			return nil, err
		}
		return g, nil
	}
	return nil, fmt.Errorf("%w: goal %s has unknown kind %q", domain.ErrInvariantViolated, raw.id, raw.kind)
}

// storedInterval rejects a missing or non-positive interval; the goal
// variants divide by it.
func storedInterval(id, column string, v sql.NullInt64) (int, error) {
	if !v.Valid || v.Int64 < 1 {
		return 0, fmt.Errorf("%w: goal %s has no valid %s", domain.ErrInvariantViolated, id, column)
	}
	return int(v.Int64), nil
}

func storedTarget(raw goalRow) (domain.GoalTarget, error) {
	if !raw.targetValue.Valid || !raw.targetCriteria.Valid {
		return domain.GoalTarget{}, fmt.Errorf("%w: goal %s has no target", domain.ErrInvariantViolated, raw.id)
	}
	value, err := parseDecimal(raw.targetValue.String, "target_value")
	if err != nil {
		return domain.GoalTarget{}, err
	}
	return domain.GoalTarget{Value: value, Criteria: domain.Criteria(raw.targetCriteria.String)}, nil
}

func (r *SQLGoalRepo) loadWeekdayTargets(ctx context.Context, g *domain.DaysOfWeek) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT weekday, target_value, target_criteria FROM goal_weekday_targets
		WHERE goal_id = ? ORDER BY weekday`, g.ID)
	if err != nil {
		return fmt.Errorf("loading weekday targets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var weekday int
		var valueStr, criteria string
		if err := rows.Scan(&weekday, &valueStr, &criteria); err != nil {
			return fmt.Errorf("scanning weekday target: %w", err)
		}
		w := calendar.Weekday(weekday)
		if !w.Valid() {
			return fmt.Errorf("%w: goal %s has weekday %d", domain.ErrInvariantViolated, g.ID, weekday)
		}
		value, err := parseDecimal(valueStr, "target_value")
		if err != nil {
			return err
		}
		g.SetTarget(w, &domain.GoalTarget{Value: value, Criteria: domain.Criteria(criteria)})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating weekday targets: %w", err)
	}
	return nil
}
