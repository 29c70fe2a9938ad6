package repository

import (
	"context"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/shopspring/decimal"
)

// ActivityProgress is a partial update of the engine-owned activity fields.
// Nil fields are left unchanged.
type ActivityProgress struct {
	Streak    *int
	Watermark *calendar.Date
}

type AppStateRepo interface {
	// FetchOrCreate returns the singleton app state, creating it with
	// createDate the first time.
	FetchOrCreate(ctx context.Context, createDate calendar.Date) (*domain.AppState, error)
	UpdateLatestEvaluated(ctx context.Context, date calendar.Date) error
}

type ActivityRepo interface {
	Create(ctx context.Context, a *domain.Activity) error
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	GetByName(ctx context.Context, name string) (*domain.Activity, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Activity, error)
	Archive(ctx context.Context, id string) error

	// ListNeedingEvaluation returns unarchived activities whose watermark is
	// unset or before asOf.
	ListNeedingEvaluation(ctx context.Context, asOf calendar.Date) ([]*domain.Activity, error)
	UpdateProgress(ctx context.Context, id string, p ActivityProgress) error
}

type GoalRepo interface {
	Create(ctx context.Context, g domain.Goal) error

	// EffectiveFor returns the goal version with the greatest effective date
	// on or before date, or nil when the activity had no goal then.
	EffectiveFor(ctx context.Context, activityID string, date calendar.Date) (domain.Goal, error)
	ListByActivity(ctx context.Context, activityID string) ([]domain.Goal, error)

	// DeleteFrom removes every version effective on or after date.
	DeleteFrom(ctx context.Context, activityID string, date calendar.Date) (int, error)
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	ListByActivity(ctx context.Context, activityID string, r calendar.Range) ([]*domain.Session, error)
	TotalInRange(ctx context.Context, activityID string, r calendar.Range) (decimal.Decimal, error)
	Delete(ctx context.Context, id string) error
}
