package domain

import "github.com/alexanderramin/stride/internal/calendar"

// AppState is the process-wide evaluation watermark. A single row exists.
type AppState struct {
	CreateDate calendar.Date

	// LatestEvaluatedDate is the last day through which every activity has
	// been settled. Nil until the first full day is swept.
	LatestEvaluatedDate *calendar.Date
}

// NextPendingDate is the first day a catch-up sweep has to evaluate.
func (s *AppState) NextPendingDate() calendar.Date {
	if s.LatestEvaluatedDate != nil {
		return s.LatestEvaluatedDate.AddDays(1)
	}
	return s.CreateDate
}
