package calendar

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	cases := []string{"2025-01-01", "2024-02-29", "1969-12-31", "1970-01-01", "2099-12-31", "0001-01-01"}
	for _, s := range cases {
		d, err := Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, d.String())
	}
}

func TestParse_Malformed(t *testing.T) {
	cases := []string{"", "2025-1-1", "2025-02-30", "2023-02-29", "not-a-date", "2025-01-01T00:00:00Z", " 2025-01-01"}
	for _, s := range cases {
		_, err := Parse(s)
		require.Error(t, err, "should reject %q", s)
		assert.ErrorIs(t, err, ErrInvalidDate)
	}
}

func TestAddDays_CrossesMonthAndYear(t *testing.T) {
	d := MustParse("2024-12-30")
	assert.Equal(t, "2025-01-02", d.AddDays(3).String())
	assert.Equal(t, "2024-12-29", d.AddDays(-1).String())
	assert.Equal(t, "2024-03-01", MustParse("2024-02-28").AddDays(2).String())
	assert.Equal(t, "2025-01-13", MustParse("2025-01-06").AddWeeks(1).String())
}

func TestDaysSince_Signed(t *testing.T) {
	a := MustParse("2025-01-01")
	b := MustParse("2025-03-01")
	assert.Equal(t, 59, b.DaysSince(a))
	assert.Equal(t, -59, a.DaysSince(b))
	assert.Equal(t, 0, a.DaysSince(a))
}

func TestDaysSince_BeforeEpoch(t *testing.T) {
	a := MustParse("1969-12-31")
	b := MustParse("1970-01-01")
	assert.Equal(t, 1, b.DaysSince(a))
	assert.Equal(t, Wednesday, a.Weekday())
}

func TestWeekday_KnownDates(t *testing.T) {
	assert.Equal(t, Wednesday, MustParse("2025-01-01").Weekday())
	assert.Equal(t, Sunday, MustParse("2025-01-05").Weekday())
	assert.Equal(t, Monday, MustParse("2025-01-06").Weekday())
	assert.Equal(t, Saturday, MustParse("2025-01-11").Weekday())
}

func TestNext_StrictlyFuture(t *testing.T) {
	mon := MustParse("2025-01-06")
	assert.Equal(t, "2025-01-13", mon.Next(Monday).String(), "same weekday jumps a full week")
	assert.Equal(t, "2025-01-07", mon.Next(Tuesday).String())
	assert.Equal(t, "2025-01-12", mon.Next(Sunday).String())
}

func TestStartOfWeek(t *testing.T) {
	sun := MustParse("2025-01-12")
	assert.Equal(t, "2025-01-06", sun.StartOfWeek(Monday).String())
	assert.Equal(t, "2025-01-12", sun.StartOfWeek(Sunday).String())
	assert.Equal(t, "2025-01-06", MustParse("2025-01-06").StartOfWeek(Monday).String())
}

func TestCompare(t *testing.T) {
	a := MustParse("2025-01-01")
	b := MustParse("2025-01-02")
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a.AddDays(0)))
	assert.True(t, a.Equal(MustParse("2025-01-01")))
	assert.Equal(t, a, MustParse("2025-01-01"), "equal days compare equal with ==")
}

func TestFromTime_UsesLocationOfInstant(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	instant := time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-01-01", FromTime(instant).String())
	assert.Equal(t, "2025-01-02", FromTime(instant.In(tokyo)).String())
}

func TestTextMarshalling(t *testing.T) {
	d := MustParse("2025-07-04")
	b, err := d.MarshalText()
	require.NoError(t, err)
	var out Date
	require.NoError(t, out.UnmarshalText(b))
	assert.Equal(t, d, out)
	assert.Error(t, out.UnmarshalText([]byte("2025-13-01")))
}

// TestArithmetic_Invariants checks that AddDays and DaysSince agree with
// each other and with string round-trips over a wide random sample.
func TestArithmetic_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	base := MustParse("2000-01-01")
	for trial := 0; trial < 500; trial++ {
		n := rng.Intn(40000) - 20000
		d := base.AddDays(n)
		assert.Equal(t, n, d.DaysSince(base), "trial %d", trial)

		reparsed, err := Parse(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, reparsed, "trial %d: string round-trip must not shift the day", trial)

		wantWeekday := WeekdayOf(d.Time().Weekday())
		assert.Equal(t, wantWeekday, d.Weekday())
		assert.Equal(t, 7, d.Next(d.Weekday()).DaysSince(d))
	}
}
