package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/stride/internal/calendar"
)

type Activity struct {
	ID          string
	Name        string
	SessionUnit string

	// Owned by the streak engine.
	CurrentStreakCount       int
	LastGoalSuccessCheckDate *calendar.Date

	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (a *Activity) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidActivity)
	}
	if a.CurrentStreakCount < 0 {
		return fmt.Errorf("%w: streak %d is negative", ErrInvalidActivity, a.CurrentStreakCount)
	}
	return nil
}

// SettledThrough reports whether the activity's streak already accounts
// for date.
func (a *Activity) SettledThrough(date calendar.Date) bool {
	return a.LastGoalSuccessCheckDate != nil && !a.LastGoalSuccessCheckDate.Before(date)
}

// SessionSettled reports whether a session dated date can no longer change
// the streak. g is the goal effective on date, or nil when none is. Under a
// goal the whole window containing date must be settled, so a session early
// in an open weekly period still counts.
func (a *Activity) SessionSettled(g Goal, date calendar.Date) bool {
	if g == nil {
		return a.SettledThrough(date)
	}
	return a.SettledThrough(g.SessionWindowFor(date).End)
}

func (a *Activity) Archived() bool {
	return a.ArchivedAt != nil
}

// DisplayUnit returns the session unit or a generic fallback.
func (a *Activity) DisplayUnit() string {
	if a.SessionUnit != "" {
		return a.SessionUnit
	}
	return "units"
}
