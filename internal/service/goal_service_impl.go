package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/db"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/alexanderramin/stride/internal/repository"
	"github.com/google/uuid"
)

type goalService struct {
	goals      repository.GoalRepo
	activities repository.ActivityRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewGoalService(
	goals repository.GoalRepo,
	activities repository.ActivityRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) GoalService {
	return &goalService{
		goals:      goals,
		activities: activities,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *goalService) SetGoal(ctx context.Context, g domain.Goal) (err error) {
	startedAt := time.Now()
	base := g.Base()
	fields := map[string]any{
		"activity":  base.ActivityID,
		"kind":      string(g.Kind()),
		"effective": base.EffectiveDate.String(),
	}
	defer func() { observe(ctx, s.observer, "set-goal", startedAt, err, fields) }()

	if err = g.Validate(); err != nil {
		return err
	}

	activity, err := s.activities.GetByID(ctx, base.ActivityID)
	if err != nil {
		return fmt.Errorf("loading activity: %w", err)
	}
	if activity.Archived() {
		return fmt.Errorf("%w: %s", ErrActivityArchived, activity.Name)
	}
	if activity.SettledThrough(base.EffectiveDate) {
		return fmt.Errorf("%w: %s is settled through %s, choose a later effective date",
			ErrSettledHistory, activity.Name, activity.LastGoalSuccessCheckDate)
	}

	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	base.CreatedAt = time.Now().UTC().Truncate(time.Second)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txGoals := repository.NewSQLGoalRepo(tx)

		superseded, err := txGoals.DeleteFrom(ctx, base.ActivityID, base.EffectiveDate)
		if err != nil {
			return err
		}
		fields["superseded"] = superseded
		return txGoals.Create(ctx, g)
	})
}

func (s *goalService) History(ctx context.Context, activityID string) ([]domain.Goal, error) {
	return s.goals.ListByActivity(ctx, activityID)
}

func (s *goalService) EffectiveOn(ctx context.Context, activityID string, date calendar.Date) (domain.Goal, error) {
	return s.goals.EffectiveFor(ctx, activityID, date)
}
