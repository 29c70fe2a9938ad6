package calendar

import (
	"fmt"
	"time"
)

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns T. Used by tests and replays.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// ClockAt returns a FixedClock pinned to noon UTC of d.
func ClockAt(d Date) FixedClock {
	return FixedClock{T: d.Time().Add(12 * time.Hour)}
}

// Today returns the current calendar day as seen from loc.
func Today(c Clock, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return FromTime(c.Now().In(loc))
}

// LoadLocation resolves an IANA timezone name. Empty or "Local" means the
// system timezone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}
