package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/alexanderramin/stride/internal/evaluation"
	"github.com/alexanderramin/stride/internal/logger"
	"github.com/alexanderramin/stride/internal/repository"
)

// SweepResult summarizes one EvaluateUpToToday call.
type SweepResult struct {
	// Skipped is set when another sweep was already running; nothing else
	// in the result is meaningful then.
	Skipped bool

	Today calendar.Date
	// From and To bound the dates this sweep was responsible for. From is
	// after To when everything was already settled.
	From, To calendar.Date

	DaysEvaluated      int
	ActivityUpdates    int
	StreaksIncremented int
	StreaksReset       int
}

type streakService struct {
	appState   repository.AppStateRepo
	activities repository.ActivityRepo
	goals      repository.GoalRepo
	sessions   repository.SessionRepo
	clock      calendar.Clock
	loc        *time.Location
	guard      SingleFlight
	observer   UseCaseObserver
}

func NewStreakService(
	appState repository.AppStateRepo,
	activities repository.ActivityRepo,
	goals repository.GoalRepo,
	sessions repository.SessionRepo,
	clock calendar.Clock,
	loc *time.Location,
	observers ...UseCaseObserver,
) StreakService {
	if loc == nil {
		loc = time.Local
	}
	return &streakService{
		appState:   appState,
		activities: activities,
		goals:      goals,
		sessions:   sessions,
		clock:      clock,
		loc:        loc,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *streakService) EvaluateUpToToday(ctx context.Context) (*SweepResult, error) {
	today := calendar.Today(s.clock, s.loc)
	result := &SweepResult{Today: today}

	ran, err := s.guard.ExecuteIfNotRunning(func() (err error) {
		startedAt := time.Now()
		defer func() {
			observe(ctx, s.observer, "evaluate-streaks", startedAt, err, map[string]any{
				"today":           today.String(),
				"days":            result.DaysEvaluated,
				"activity_writes": result.ActivityUpdates,
			})
		}()
		return s.sweep(ctx, today, result)
	})
	if !ran {
		logger.Debug("streak sweep already running", "today", today)
		result.Skipped = true
		return result, nil
	}
	return result, err
}

// sweep settles every date from the app watermark through yesterday.
// Progress is persisted per activity and per date, so an aborted sweep
// resumes where it stopped.
func (s *streakService) sweep(ctx context.Context, today calendar.Date, result *SweepResult) error {
	state, err := s.appState.FetchOrCreate(ctx, today)
	if err != nil {
		return fmt.Errorf("loading app state: %w", err)
	}

	result.From = state.NextPendingDate()
	result.To = today.AddDays(-1)

	for date := result.From; !date.After(result.To); date = date.AddDays(1) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.settleDate(ctx, date, today, result); err != nil {
			return err
		}
		if err := s.appState.UpdateLatestEvaluated(ctx, date); err != nil {
			return fmt.Errorf("advancing app watermark to %s: %w", date, err)
		}
		result.DaysEvaluated++
		logger.Debug("settled date", "date", date, "today", today)
	}
	return nil
}

func (s *streakService) settleDate(ctx context.Context, date, today calendar.Date, result *SweepResult) error {
	pending, err := s.activities.ListNeedingEvaluation(ctx, date)
	if err != nil {
		return fmt.Errorf("listing activities for %s: %w", date, err)
	}
	for _, a := range pending {
		if err := s.settleActivity(ctx, a, date, today, result); err != nil {
			return err
		}
	}
	return nil
}

func (s *streakService) settleActivity(ctx context.Context, a *domain.Activity, date, today calendar.Date, result *SweepResult) error {
	if wm := a.LastGoalSuccessCheckDate; wm != nil && date.DaysSince(*wm) != 1 {
		err := fmt.Errorf("%w: activity %q settled through %s, next date is %s", ErrWatermarkGap, a.Name, wm, date)
		logger.Error("streak invariant violated", "activity", a.ID, "err", err)
		return err
	}

	goal, err := s.goals.EffectiveFor(ctx, a.ID, date)
	if err != nil {
		return fmt.Errorf("fetching effective goal: %w", err)
	}
	if goal == nil {
		return s.advance(ctx, a, date, nil, result)
	}
	if _, ok := goal.TargetFor(date); !ok {
		return s.advance(ctx, a, date, nil, result)
	}
	if !goal.CanCloseOn(date, today) {
		return s.advance(ctx, a, date, nil, result)
	}

	total, err := s.sessions.TotalInRange(ctx, a.ID, goal.SessionWindowFor(date))
	if err != nil {
		return fmt.Errorf("summing sessions: %w", err)
	}
	status, err := evaluation.EvaluateStatus(goal, total, date, today)
	if err != nil {
		logger.Error("streak invariant violated", "activity", a.ID, "date", date, "err", err)
		return err
	}
	next, err := evaluation.NextStreak(a.CurrentStreakCount, status)
	if err != nil {
		err = fmt.Errorf("activity %q on %s: %w", a.Name, date, err)
		logger.Error("streak invariant violated", "activity", a.ID, "date", date, "err", err)
		return err
	}

	switch {
	case next > a.CurrentStreakCount:
		result.StreaksIncremented++
	case a.CurrentStreakCount > 0 && next == 0:
		result.StreaksReset++
	}
	logger.Debug("evaluated goal", "activity", a.Name, "date", date, "status", status, "total", total, "streak", next)
	return s.advance(ctx, a, date, &next, result)
}

// advance moves the activity's watermark to date, and its streak when
// streak is non-nil.
func (s *streakService) advance(ctx context.Context, a *domain.Activity, date calendar.Date, streak *int, result *SweepResult) error {
	if err := s.activities.UpdateProgress(ctx, a.ID, repository.ActivityProgress{
		Streak:    streak,
		Watermark: &date,
	}); err != nil {
		return fmt.Errorf("updating activity %s: %w", a.ID, err)
	}
	result.ActivityUpdates++
	return nil
}
