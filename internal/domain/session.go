package domain

import (
	"fmt"
	"time"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/shopspring/decimal"
)

// Session is an immutable record that Value units of an activity were
// logged and attributed to CompleteDate.
type Session struct {
	ID           string
	ActivityID   string
	Value        decimal.Decimal
	CompleteDate calendar.Date
	Note         string
	CreatedAt    time.Time
}

func (s *Session) Validate() error {
	if s.ActivityID == "" {
		return fmt.Errorf("%w: activity is required", ErrInvalidSession)
	}
	if s.Value.IsNegative() {
		return fmt.Errorf("%w: value %s is negative", ErrInvalidSession, s.Value)
	}
	return nil
}
