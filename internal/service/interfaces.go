package service

import (
	"context"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/alexanderramin/stride/internal/importer"
)

type ActivityService interface {
	Create(ctx context.Context, a *domain.Activity) error
	// Resolve finds an activity by ID or, failing that, by name.
	Resolve(ctx context.Context, ref string) (*domain.Activity, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Activity, error)
	Archive(ctx context.Context, id string) error
}

type GoalService interface {
	// SetGoal makes g the activity's goal from g's effective date on,
	// superseding any version effective on or after that date.
	SetGoal(ctx context.Context, g domain.Goal) error
	History(ctx context.Context, activityID string) ([]domain.Goal, error)
	EffectiveOn(ctx context.Context, activityID string, date calendar.Date) (domain.Goal, error)
}

type SessionService interface {
	Log(ctx context.Context, s *domain.Session) error
	List(ctx context.Context, activityID string, r calendar.Range) ([]*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// StreakService is the catch-up engine. It settles every past day not yet
// accounted for, one date at a time, and is safe to call concurrently: a
// call made while a sweep is running returns at once with Skipped set.
type StreakService interface {
	EvaluateUpToToday(ctx context.Context) (*SweepResult, error)
}

type StatusService interface {
	Today(ctx context.Context) (*TodayStatus, error)
}

// ImportService loads activities, their goal history and past sessions from
// a YAML or JSON file. An import either fully applies or leaves storage
// untouched.
type ImportService interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
