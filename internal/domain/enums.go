package domain

import "fmt"

// GoalStatus is the outcome of evaluating a goal on one day or period.
type GoalStatus string

const (
	StatusSuccess    GoalStatus = "success"
	StatusFailure    GoalStatus = "failure"
	StatusIncomplete GoalStatus = "incomplete"
	StatusSkip       GoalStatus = "skip"
)

// Criteria says how a realized total is compared to a target value.
type Criteria string

const (
	CriteriaAtLeast  Criteria = "at_least"
	CriteriaExactly  Criteria = "exactly"
	CriteriaLessThan Criteria = "less_than"
)

// ValidCriteria is the canonical set of accepted criteria strings.
var ValidCriteria = map[Criteria]bool{
	CriteriaAtLeast: true, CriteriaExactly: true, CriteriaLessThan: true,
}

// ParseCriteria accepts the canonical names plus the hyphenated and
// symbolic spellings used on the command line.
func ParseCriteria(s string) (Criteria, error) {
	switch s {
	case "at_least", "at-least", ">=":
		return CriteriaAtLeast, nil
	case "exactly", "=", "==":
		return CriteriaExactly, nil
	case "less_than", "less-than", "<":
		return CriteriaLessThan, nil
	}
	return "", fmt.Errorf("%w: unknown criteria %q", ErrInvalidTarget, s)
}

// GoalKind discriminates the goal variants in storage and output.
type GoalKind string

const (
	GoalEveryXDays  GoalKind = "every_x_days"
	GoalDaysOfWeek  GoalKind = "days_of_week"
	GoalWeeksPeriod GoalKind = "weeks_period"
)

func ParseGoalKind(s string) (GoalKind, error) {
	switch s {
	case "every_x_days", "every-x-days", "interval":
		return GoalEveryXDays, nil
	case "days_of_week", "days-of-week", "weekdays":
		return GoalDaysOfWeek, nil
	case "weeks_period", "weeks-period", "weekly":
		return GoalWeeksPeriod, nil
	}
	return "", fmt.Errorf("%w: unknown goal kind %q", ErrInvalidGoal, s)
}
