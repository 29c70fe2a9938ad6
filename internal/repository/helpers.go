package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/shopspring/decimal"
)

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// parseNullableDate parses a stored calendar date. Unlike timestamps, a
// malformed date is an error: watermarks must never silently reset.
func parseNullableDate(s sql.NullString, column string) (*calendar.Date, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	d, err := calendar.Parse(s.String)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", column, err)
	}
	return &d, nil
}

// nullableDate converts a *calendar.Date to a storable value or SQL NULL.
func nullableDate(d *calendar.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// nullableTimeToString converts a *time.Time to a storable value or SQL NULL.
func nullableTimeToString(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(layout)
}

func parseDecimal(s, column string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s: %w", column, err)
	}
	return v, nil
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
