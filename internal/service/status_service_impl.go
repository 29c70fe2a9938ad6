package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/alexanderramin/stride/internal/evaluation"
	"github.com/alexanderramin/stride/internal/repository"
	"github.com/shopspring/decimal"
)

// TodayStatus is the per-activity picture for the current day.
type TodayStatus struct {
	Today      calendar.Date
	Activities []ActivityStatus
}

// ActivityStatus describes one activity as of today. Goal is nil when the
// activity has no goal yet; Status is empty in that case.
type ActivityStatus struct {
	Activity *domain.Activity
	Goal     domain.Goal
	Target   *domain.GoalTarget
	Window   calendar.Range
	Total    decimal.Decimal
	Status   domain.GoalStatus

	// NextActive is the next day with a target when today is a skip day.
	NextActive *calendar.Date
}

type statusService struct {
	activities repository.ActivityRepo
	goals      repository.GoalRepo
	sessions   repository.SessionRepo
	clock      calendar.Clock
	loc        *time.Location
}

func NewStatusService(
	activities repository.ActivityRepo,
	goals repository.GoalRepo,
	sessions repository.SessionRepo,
	clock calendar.Clock,
	loc *time.Location,
) StatusService {
	if loc == nil {
		loc = time.Local
	}
	return &statusService{
		activities: activities,
		goals:      goals,
		sessions:   sessions,
		clock:      clock,
		loc:        loc,
	}
}

func (s *statusService) Today(ctx context.Context) (*TodayStatus, error) {
	today := calendar.Today(s.clock, s.loc)

	activities, err := s.activities.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}

	out := &TodayStatus{Today: today, Activities: make([]ActivityStatus, 0, len(activities))}
	for _, a := range activities {
		view, err := s.activityStatus(ctx, a, today)
		if err != nil {
			return nil, err
		}
		out.Activities = append(out.Activities, view)
	}
	return out, nil
}

func (s *statusService) activityStatus(ctx context.Context, a *domain.Activity, today calendar.Date) (ActivityStatus, error) {
	view := ActivityStatus{Activity: a, Window: calendar.Day(today), Total: decimal.Zero}

	goal, err := s.goals.EffectiveFor(ctx, a.ID, today)
	if err != nil {
		return view, fmt.Errorf("fetching goal for %s: %w", a.Name, err)
	}
	if goal == nil {
		return view, nil
	}
	view.Goal = goal
	view.Window = goal.SessionWindowFor(today)
	if t, ok := goal.TargetFor(today); ok {
		view.Target = &t
	}

	view.Total, err = s.sessions.TotalInRange(ctx, a.ID, view.Window)
	if err != nil {
		return view, fmt.Errorf("summing sessions for %s: %w", a.Name, err)
	}
	view.Status, err = evaluation.EvaluateStatus(goal, view.Total, today, today)
	if err != nil {
		return view, err
	}
	if view.Status == domain.StatusSkip {
		if next, ok := domain.NextActiveDate(goal, today.AddDays(1)); ok {
			view.NextActive = &next
		}
	}
	return view, nil
}
