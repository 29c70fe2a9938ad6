// Package evaluation turns a goal, a realized total and a pair of dates into
// a GoalStatus, and folds statuses into streak counts. It performs no I/O.
package evaluation

import (
	"fmt"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/shopspring/decimal"
)

// EvaluateStatus judges goal on evaluationDate given the total logged in
// goal.SessionWindowFor(evaluationDate), as seen from currentDate.
//
// A skip day yields StatusSkip. While the session window is still open as of
// currentDate the criteria table is applied in its "today" stance, so
// outcomes further sessions could change come back StatusIncomplete.
func EvaluateStatus(goal domain.Goal, total decimal.Decimal, evaluationDate, currentDate calendar.Date) (domain.GoalStatus, error) {
	if goal == nil {
		return "", fmt.Errorf("%w: no goal to evaluate", domain.ErrInvariantViolated)
	}
	effective := goal.Base().EffectiveDate
	if effective.After(currentDate) {
		return "", fmt.Errorf("%w: goal effective %s is after current date %s",
			domain.ErrInvariantViolated, effective, currentDate)
	}
	if evaluationDate.Before(effective) {
		return "", fmt.Errorf("%w: evaluation date %s precedes goal effective date %s",
			domain.ErrInvariantViolated, evaluationDate, effective)
	}

	target, ok := goal.TargetFor(evaluationDate)
	if !ok {
		return domain.StatusSkip, nil
	}
	past := domain.Closed(goal, evaluationDate, currentDate)
	return target.Evaluate(total, past), nil
}

// NextStreak folds a final status into the running streak. Only Success and
// Failure are final; anything else reaching this point is a bug upstream.
func NextStreak(current int, status domain.GoalStatus) (int, error) {
	switch status {
	case domain.StatusSuccess:
		return current + 1, nil
	case domain.StatusFailure:
		return 0, nil
	}
	return current, fmt.Errorf("%w: status %q cannot update a streak", domain.ErrInvariantViolated, status)
}
