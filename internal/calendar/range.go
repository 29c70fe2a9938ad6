package calendar

import "fmt"

// Range is an inclusive span of days.
type Range struct {
	Start Date
	End   Date
}

// Day returns the single-day range [d, d].
func Day(d Date) Range {
	return Range{Start: d, End: d}
}

// NewRange returns [start, end], rejecting inverted bounds.
func NewRange(start, end Date) (Range, error) {
	if end.Before(start) {
		return Range{}, fmt.Errorf("range end %s is before start %s", end, start)
	}
	return Range{Start: start, End: end}, nil
}

func (r Range) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days returns the number of days covered.
func (r Range) Days() int {
	return r.End.DaysSince(r.Start) + 1
}

// Dates lists every day in the range in ascending order.
func (r Range) Dates() []Date {
	n := r.Days()
	if n <= 0 {
		return nil
	}
	out := make([]Date, 0, n)
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

func (r Range) String() string {
	if r.Start.Equal(r.End) {
		return r.Start.String()
	}
	return r.Start.String() + ".." + r.End.String()
}
