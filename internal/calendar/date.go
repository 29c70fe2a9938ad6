package calendar

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the canonical textual form of a Date.
const Layout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// ErrInvalidDate is returned when a string is not a valid YYYY-MM-DD day.
var ErrInvalidDate = errors.New("invalid calendar date")

// Date is a calendar day with no time-of-day or timezone component.
// It is stored as a day number relative to 1970-01-01 in the proleptic
// Gregorian calendar, so arithmetic never shifts across DST or offsets.
// The zero value is 1970-01-01; use *Date where a date may be absent.
type Date struct {
	day int64
}

// New returns the Date for the given year, month and day. Out-of-range
// values are normalized the same way time.Date normalizes them.
func New(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{day: floorDiv(t.Unix(), secondsPerDay)}
}

// FromTime returns the calendar day of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return New(y, m, d)
}

// Parse validates and parses a YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("%w %q: %v", ErrInvalidDate, s, err)
	}
	return FromTime(t), nil
}

// MustParse is like Parse but panics on malformed input. Intended for
// literals in tests and fixtures.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return time.Unix(d.day*secondsPerDay, 0).UTC()
}

func (d Date) String() string {
	return d.Time().Format(Layout)
}

func (d Date) AddDays(n int) Date {
	return Date{day: d.day + int64(n)}
}

func (d Date) AddWeeks(n int) Date {
	return d.AddDays(7 * n)
}

// DaysSince returns the signed number of days from other to d.
func (d Date) DaysSince(other Date) int {
	return int(d.day - other.day)
}

func (d Date) Weekday() Weekday {
	return WeekdayOf(d.Time().Weekday())
}

// Next returns the next occurrence of w strictly after d. When d already
// falls on w the result is one week later.
func (d Date) Next(w Weekday) Date {
	delta := (int(w) - int(d.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return d.AddDays(delta)
}

// StartOfWeek returns the most recent day on or before d that falls on start.
func (d Date) StartOfWeek(start Weekday) Date {
	back := (int(d.Weekday()) - int(start) + 7) % 7
	return d.AddDays(-back)
}

func (d Date) Before(other Date) bool { return d.day < other.day }
func (d Date) After(other Date) bool  { return d.day > other.day }
func (d Date) Equal(other Date) bool  { return d.day == other.day }

// Compare returns -1, 0 or +1.
func (d Date) Compare(other Date) int {
	switch {
	case d.day < other.day:
		return -1
	case d.day > other.day:
		return 1
	default:
		return 0
	}
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Ptr returns a pointer to a copy of d.
func (d Date) Ptr() *Date {
	return &d
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
