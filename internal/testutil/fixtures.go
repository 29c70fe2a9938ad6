package testutil

import (
	"time"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Date is shorthand for calendar.MustParse in table-heavy tests.
func Date(s string) calendar.Date {
	return calendar.MustParse(s)
}

// Activity options
type ActivityOption func(*domain.Activity)

func WithSessionUnit(u string) ActivityOption {
	return func(a *domain.Activity) {
		a.SessionUnit = u
	}
}

func WithStreak(n int) ActivityOption {
	return func(a *domain.Activity) {
		a.CurrentStreakCount = n
	}
}

func WithWatermark(d calendar.Date) ActivityOption {
	return func(a *domain.Activity) {
		a.LastGoalSuccessCheckDate = &d
	}
}

func WithArchived() ActivityOption {
	return func(a *domain.Activity) {
		now := time.Now().UTC().Truncate(time.Second)
		a.ArchivedAt = &now
	}
}

func NewTestActivity(name string, opts ...ActivityOption) *domain.Activity {
	now := time.Now().UTC().Truncate(time.Second)
	a := &domain.Activity{
		ID:          uuid.New().String(),
		Name:        name,
		SessionUnit: "minutes",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Session options
type SessionOption func(*domain.Session)

func WithNote(n string) SessionOption {
	return func(s *domain.Session) {
		s.Note = n
	}
}

func NewTestSession(activityID string, value float64, on calendar.Date, opts ...SessionOption) *domain.Session {
	s := &domain.Session{
		ID:           uuid.New().String(),
		ActivityID:   activityID,
		Value:        decimal.NewFromFloat(value),
		CompleteDate: on,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func goalBase(activityID string, effective calendar.Date) domain.GoalBase {
	return domain.GoalBase{
		ID:            uuid.New().String(),
		ActivityID:    activityID,
		EffectiveDate: effective,
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}
}

// NewDailyGoal is an EveryXDays goal with a one-day interval.
func NewDailyGoal(activityID string, effective calendar.Date, target domain.GoalTarget) *domain.EveryXDays {
	return NewEveryXDaysGoal(activityID, effective, 1, target)
}

func NewEveryXDaysGoal(activityID string, effective calendar.Date, interval int, target domain.GoalTarget) *domain.EveryXDays {
	return &domain.EveryXDays{
		GoalBase:     goalBase(activityID, effective),
		IntervalDays: interval,
		Target:       target,
	}
}

func NewDaysOfWeekGoal(activityID string, effective calendar.Date, weeksInterval int, targets map[calendar.Weekday]domain.GoalTarget) *domain.DaysOfWeek {
	g := &domain.DaysOfWeek{
		GoalBase:      goalBase(activityID, effective),
		WeeksInterval: weeksInterval,
	}
	for w, t := range targets {
		t := t
		g.SetTarget(w, &t)
	}
	return g
}

func NewWeeksPeriodGoal(activityID string, effective calendar.Date, target domain.GoalTarget) *domain.WeeksPeriod {
	return &domain.WeeksPeriod{
		GoalBase: goalBase(activityID, effective),
		Target:   target,
	}
}
