package domain

import "errors"

var (
	// ErrInvalidTarget indicates a GoalTarget that violates its construction rules.
	ErrInvalidTarget = errors.New("invalid goal target")

	// ErrInvalidGoal indicates a goal version whose variant invariants do not hold.
	ErrInvalidGoal = errors.New("invalid goal")

	// ErrInvalidSession indicates a session that cannot be recorded.
	ErrInvalidSession = errors.New("invalid session")

	// ErrInvalidActivity indicates an activity that cannot be stored.
	ErrInvalidActivity = errors.New("invalid activity")

	// ErrInvariantViolated marks states that only a bug or a rogue writer
	// can produce. It is never silently corrected.
	ErrInvariantViolated = errors.New("invariant violated")
)
