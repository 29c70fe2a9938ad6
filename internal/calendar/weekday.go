package calendar

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// Weekday numbers days Sunday=1 through Saturday=7.
type Weekday int

const (
	Sunday Weekday = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// AllWeekdays lists the days in numeric order.
var AllWeekdays = []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayOf converts a time.Weekday (Sunday=0) to a Weekday.
func WeekdayOf(w time.Weekday) Weekday {
	return Weekday(int(w) + 1)
}

func (w Weekday) Valid() bool {
	return w >= Sunday && w <= Saturday
}

// Index returns the zero-based slot of w, for use with [7]T arrays.
func (w Weekday) Index() int {
	return int(w) - 1
}

func (w Weekday) TimeWeekday() time.Weekday {
	return time.Weekday(int(w) - 1)
}

func (w Weekday) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return w.TimeWeekday().String()
}

// ParseWeekday accepts full English names or three-letter abbreviations,
// case-insensitively.
func ParseWeekday(s string) (Weekday, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, w := range AllWeekdays {
		name := strings.ToLower(w.String())
		if needle == name || needle == name[:3] {
			return w, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// weekStart holds the process-wide first day of the week. Zero means the
// default (Monday).
var weekStart atomic.Int32

// WeekStart returns the configured first day of the week.
func WeekStart() Weekday {
	if v := weekStart.Load(); v != 0 {
		return Weekday(v)
	}
	return Monday
}

// SetWeekStart changes the process-wide first day of the week. It only
// affects week-period snapping, never day arithmetic.
func SetWeekStart(w Weekday) error {
	if !w.Valid() {
		return fmt.Errorf("invalid week start %d", int(w))
	}
	weekStart.Store(int32(w))
	return nil
}
