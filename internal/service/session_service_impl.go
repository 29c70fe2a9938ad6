package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/alexanderramin/stride/internal/logger"
	"github.com/alexanderramin/stride/internal/repository"
	"github.com/google/uuid"
)

type sessionService struct {
	sessions   repository.SessionRepo
	activities repository.ActivityRepo
	goals      repository.GoalRepo
	observer   UseCaseObserver
}

func NewSessionService(
	sessions repository.SessionRepo,
	activities repository.ActivityRepo,
	goals repository.GoalRepo,
	observers ...UseCaseObserver,
) SessionService {
	return &sessionService{
		sessions:   sessions,
		activities: activities,
		goals:      goals,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *sessionService) Log(ctx context.Context, session *domain.Session) (err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"activity": session.ActivityID,
		"date":     session.CompleteDate.String(),
	}
	defer func() { observe(ctx, s.observer, "log-session", startedAt, err, fields) }()

	if err = session.Validate(); err != nil {
		return err
	}
	activity, err := s.activities.GetByID(ctx, session.ActivityID)
	if err != nil {
		return fmt.Errorf("loading activity: %w", err)
	}
	if activity.Archived() {
		return fmt.Errorf("%w: %s", ErrActivityArchived, activity.Name)
	}
	if activity.SettledThrough(session.CompleteDate) {
		goal, err := s.goals.EffectiveFor(ctx, activity.ID, session.CompleteDate)
		if err != nil {
			return fmt.Errorf("fetching effective goal: %w", err)
		}
		if activity.SessionSettled(goal, session.CompleteDate) {
			// Recorded, but the streak outcome for that day is final.
			fields["settled"] = true
			logger.Warn("session logged on a settled day", "activity", activity.Name, "date", session.CompleteDate)
		}
	}

	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	session.CreatedAt = time.Now().UTC().Truncate(time.Second)
	return s.sessions.Create(ctx, session)
}

func (s *sessionService) List(ctx context.Context, activityID string, r calendar.Range) ([]*domain.Session, error) {
	return s.sessions.ListByActivity(ctx, activityID, r)
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}
