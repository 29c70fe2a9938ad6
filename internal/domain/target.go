package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GoalTarget is the "how much, compared how" unit evaluated on a day or period.
type GoalTarget struct {
	Value    decimal.Decimal
	Criteria Criteria
}

// NewGoalTarget validates and returns a target. A zero value is only
// meaningful with Exactly: AtLeast 0 is vacuous and LessThan 0 can never
// be met.
func NewGoalTarget(value decimal.Decimal, criteria Criteria) (GoalTarget, error) {
	t := GoalTarget{Value: value, Criteria: criteria}
	if err := t.Validate(); err != nil {
		return GoalTarget{}, err
	}
	return t, nil
}

// MustTarget builds a target from a float and panics on invalid input.
// Intended for fixtures.
func MustTarget(value float64, criteria Criteria) GoalTarget {
	t, err := NewGoalTarget(decimal.NewFromFloat(value), criteria)
	if err != nil {
		panic(err)
	}
	return t
}

func (t GoalTarget) Validate() error {
	if !ValidCriteria[t.Criteria] {
		return fmt.Errorf("%w: unknown criteria %q", ErrInvalidTarget, t.Criteria)
	}
	if t.Value.IsNegative() {
		return fmt.Errorf("%w: value %s is negative", ErrInvalidTarget, t.Value)
	}
	if t.Value.IsZero() && t.Criteria != CriteriaExactly {
		return fmt.Errorf("%w: a zero target is only valid with %s", ErrInvalidTarget, CriteriaExactly)
	}
	return nil
}

// Evaluate compares a realized total with the target. past reports whether
// the day or period being judged is closed; while it is still open, results
// that more sessions could change come back Incomplete.
func (t GoalTarget) Evaluate(total decimal.Decimal, past bool) GoalStatus {
	return t.Criteria.Evaluate(total, t.Value, past)
}

// Evaluate applies the criteria table to total against goal.
func (c Criteria) Evaluate(total, goal decimal.Decimal, past bool) GoalStatus {
	switch c {
	case CriteriaAtLeast:
		if total.GreaterThanOrEqual(goal) {
			return StatusSuccess
		}
		return openOr(past, StatusFailure)
	case CriteriaExactly:
		switch total.Cmp(goal) {
		case 0:
			return StatusSuccess
		case 1:
			return StatusFailure
		default:
			return openOr(past, StatusFailure)
		}
	case CriteriaLessThan:
		if total.GreaterThanOrEqual(goal) {
			return StatusFailure
		}
		return openOr(past, StatusSuccess)
	}
	return StatusFailure
}

// openOr returns closed when the window is over and Incomplete otherwise.
func openOr(past bool, closed GoalStatus) GoalStatus {
	if past {
		return closed
	}
	return StatusIncomplete
}

func (t GoalTarget) String() string {
	var op string
	switch t.Criteria {
	case CriteriaAtLeast:
		op = "≥"
	case CriteriaExactly:
		op = "="
	case CriteriaLessThan:
		op = "<"
	default:
		op = "?"
	}
	return op + " " + t.Value.String()
}
