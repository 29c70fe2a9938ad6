package domain

import (
	"fmt"
	"time"

	"github.com/alexanderramin/stride/internal/calendar"
)

// GoalBase holds the fields shared by every goal version.
type GoalBase struct {
	ID            string
	ActivityID    string
	CreatedAt     time.Time
	EffectiveDate calendar.Date
}

func (b *GoalBase) Base() *GoalBase { return b }

// Goal is one historical version of an activity's goal. The set of
// implementations is closed: EveryXDays, DaysOfWeek and WeeksPeriod.
//
// TargetFor, CanCloseOn and SessionWindowFor require date to be on or after
// EffectiveDate.
type Goal interface {
	Base() *GoalBase
	Kind() GoalKind
	Validate() error

	// TargetFor returns the target that applies on date. ok is false on a
	// skip day, which never affects a streak.
	TargetFor(date calendar.Date) (target GoalTarget, ok bool)

	// CanCloseOn reports whether the streak decision for date is final as
	// of today.
	CanCloseOn(date, today calendar.Date) bool

	// SessionWindowFor returns the days whose sessions count toward the
	// decision on date.
	SessionWindowFor(date calendar.Date) calendar.Range

	isGoal()
}

// Closed reports whether the window feeding date's decision has ended as of
// today, i.e. no further session can change the total.
func Closed(g Goal, date, today calendar.Date) bool {
	return today.After(g.SessionWindowFor(date).End)
}

// EveryXDays is active on the effective date and every IntervalDays after it.
type EveryXDays struct {
	GoalBase
	IntervalDays int
	Target       GoalTarget
}

func (*EveryXDays) isGoal() {}
func (*EveryXDays) Kind() GoalKind { return GoalEveryXDays }

func (g *EveryXDays) Validate() error {
	if g.IntervalDays < 1 {
		return fmt.Errorf("%w: interval must be at least 1 day, got %d", ErrInvalidGoal, g.IntervalDays)
	}
	return g.Target.Validate()
}

func (g *EveryXDays) TargetFor(date calendar.Date) (GoalTarget, bool) {
	n := date.DaysSince(g.EffectiveDate)
	if n < 0 || n%g.IntervalDays != 0 {
		return GoalTarget{}, false
	}
	return g.Target, true
}

func (g *EveryXDays) CanCloseOn(date, today calendar.Date) bool {
	return date.Before(today)
}

func (g *EveryXDays) SessionWindowFor(date calendar.Date) calendar.Range {
	return calendar.Day(date)
}

// DaysOfWeek sets an optional target per weekday, repeating every
// WeeksInterval ISO weeks counted from the week of the effective date.
type DaysOfWeek struct {
	GoalBase
	WeeksInterval int
	PerWeekday    [7]*GoalTarget
}

func (*DaysOfWeek) isGoal() {}
func (*DaysOfWeek) Kind() GoalKind { return GoalDaysOfWeek }

// TargetOn returns the configured target for w, or nil.
func (g *DaysOfWeek) TargetOn(w calendar.Weekday) *GoalTarget {
	if !w.Valid() {
		return nil
	}
	return g.PerWeekday[w.Index()]
}

// SetTarget configures the target for w. A nil target clears the slot.
func (g *DaysOfWeek) SetTarget(w calendar.Weekday, t *GoalTarget) {
	g.PerWeekday[w.Index()] = t
}

func (g *DaysOfWeek) Validate() error {
	if g.WeeksInterval < 1 {
		return fmt.Errorf("%w: weeks interval must be at least 1, got %d", ErrInvalidGoal, g.WeeksInterval)
	}
	for _, w := range calendar.AllWeekdays {
		if t := g.TargetOn(w); t != nil {
			if err := t.Validate(); err != nil {
				return fmt.Errorf("%s: %w", w, err)
			}
		}
	}
	return nil
}

func (g *DaysOfWeek) TargetFor(date calendar.Date) (GoalTarget, bool) {
	if date.Before(g.EffectiveDate) {
		return GoalTarget{}, false
	}
	weeks := date.StartOfWeek(calendar.Monday).DaysSince(g.EffectiveDate.StartOfWeek(calendar.Monday)) / 7
	if weeks%g.WeeksInterval != 0 {
		return GoalTarget{}, false
	}
	t := g.TargetOn(date.Weekday())
	if t == nil {
		return GoalTarget{}, false
	}
	return *t, true
}

func (g *DaysOfWeek) CanCloseOn(date, today calendar.Date) bool {
	return date.Before(today)
}

func (g *DaysOfWeek) SessionWindowFor(date calendar.Date) calendar.Range {
	return calendar.Day(date)
}

// WeeksPeriod must reach Target over each 7-day period starting on the
// effective date, which has to fall on the configured week start.
type WeeksPeriod struct {
	GoalBase
	Target GoalTarget
}

func (*WeeksPeriod) isGoal() {}
func (*WeeksPeriod) Kind() GoalKind { return GoalWeeksPeriod }

func (g *WeeksPeriod) Validate() error {
	if start := calendar.WeekStart(); g.EffectiveDate.Weekday() != start {
		return fmt.Errorf("%w: weekly goal must start on a %s, %s is a %s",
			ErrInvalidGoal, start, g.EffectiveDate, g.EffectiveDate.Weekday())
	}
	return g.Target.Validate()
}

func (g *WeeksPeriod) TargetFor(calendar.Date) (GoalTarget, bool) {
	return g.Target, true
}

// CanCloseOn is true only for the last day of date's period, once today is
// past that day.
func (g *WeeksPeriod) CanCloseOn(date, today calendar.Date) bool {
	end := g.period(date).End
	return date.Equal(end) && today.After(end)
}

func (g *WeeksPeriod) SessionWindowFor(date calendar.Date) calendar.Range {
	return g.period(date)
}

func (g *WeeksPeriod) period(date calendar.Date) calendar.Range {
	n := date.DaysSince(g.EffectiveDate)
	offset := n - ((n%7)+7)%7
	start := g.EffectiveDate.AddDays(offset)
	return calendar.Range{Start: start, End: start.AddDays(6)}
}

// NextActiveDate returns the first date on or after from (and on or after
// the effective date) for which g defines a target. ok is false when no
// such date exists within a full cycle of the goal.
func NextActiveDate(g Goal, from calendar.Date) (calendar.Date, bool) {
	if from.Before(g.Base().EffectiveDate) {
		from = g.Base().EffectiveDate
	}
	switch v := g.(type) {
	case *EveryXDays:
		r := from.DaysSince(v.EffectiveDate) % v.IntervalDays
		if r == 0 {
			return from, true
		}
		return from.AddDays(v.IntervalDays - r), true
	case *DaysOfWeek:
		horizon := 7 * (v.WeeksInterval + 1)
		for i := 0; i < horizon; i++ {
			d := from.AddDays(i)
			if _, ok := v.TargetFor(d); ok {
				return d, true
			}
		}
		return calendar.Date{}, false
	case *WeeksPeriod:
		return from, true
	}
	return calendar.Date{}, false
}

// Describe renders a one-line human summary of a goal's schedule and target.
func Describe(g Goal) string {
	switch v := g.(type) {
	case *EveryXDays:
		if v.IntervalDays == 1 {
			return fmt.Sprintf("daily %s", v.Target)
		}
		return fmt.Sprintf("every %d days %s", v.IntervalDays, v.Target)
	case *DaysOfWeek:
		s := "weekly"
		if v.WeeksInterval > 1 {
			s = fmt.Sprintf("every %d weeks", v.WeeksInterval)
		}
		for _, w := range calendar.AllWeekdays {
			if t := v.TargetOn(w); t != nil {
				s += fmt.Sprintf(" %s %s", w.String()[:3], t)
			}
		}
		return s
	case *WeeksPeriod:
		return fmt.Sprintf("per week %s", v.Target)
	}
	return "unknown goal"
}
