package service

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/stride/internal/domain"
)

var (
	// ErrWatermarkGap means an activity's watermark is not exactly one day
	// behind the date being evaluated. Something other than the sweep moved it.
	ErrWatermarkGap = fmt.Errorf("%w: watermark gap", domain.ErrInvariantViolated)

	// ErrSettledHistory rejects a goal change that would rewrite days whose
	// streak outcome is already recorded.
	ErrSettledHistory = errors.New("date is already settled")

	// ErrActivityExists rejects a duplicate activity name.
	ErrActivityExists = errors.New("activity already exists")

	// ErrActivityArchived rejects writes against an archived activity.
	ErrActivityArchived = errors.New("activity is archived")
)
