package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

// dateFlag is a pflag.Value holding an optional calendar date.
type dateFlag struct {
	date *calendar.Date
}

var _ pflag.Value = (*dateFlag)(nil)

func (f *dateFlag) String() string {
	if f.date == nil {
		return ""
	}
	return f.date.String()
}

func (f *dateFlag) Set(s string) error {
	d, err := calendar.Parse(s)
	if err != nil {
		return err
	}
	f.date = &d
	return nil
}

func (f *dateFlag) Type() string { return "date" }

// Or returns the parsed date, or fallback when the flag was not given.
func (f *dateFlag) Or(fallback calendar.Date) calendar.Date {
	if f.date == nil {
		return fallback
	}
	return *f.date
}

// criteriaFlag is a pflag.Value accepting any spelling ParseCriteria does.
type criteriaFlag struct {
	criteria domain.Criteria
}

var _ pflag.Value = (*criteriaFlag)(nil)

func (f *criteriaFlag) String() string { return string(f.criteria) }

func (f *criteriaFlag) Set(s string) error {
	c, err := domain.ParseCriteria(s)
	if err != nil {
		return err
	}
	f.criteria = c
	return nil
}

func (f *criteriaFlag) Type() string { return "criteria" }

// decimalFlag is a pflag.Value for exact quantities.
type decimalFlag struct {
	value decimal.Decimal
	set   bool
}

var _ pflag.Value = (*decimalFlag)(nil)

func (f *decimalFlag) String() string {
	if !f.set {
		return ""
	}
	return f.value.String()
}

func (f *decimalFlag) Set(s string) error {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	f.value, f.set = v, true
	return nil
}

func (f *decimalFlag) Type() string { return "number" }

// parseWeekdayTargets turns --on entries such as "mon=30" or
// "fri=2:less_than" into per-weekday targets. Entries without an explicit
// criteria use fallback.
func parseWeekdayTargets(entries map[string]string, fallback domain.Criteria) (map[calendar.Weekday]domain.GoalTarget, error) {
	out := make(map[calendar.Weekday]domain.GoalTarget, len(entries))
	for day, spec := range entries {
		w, err := calendar.ParseWeekday(day)
		if err != nil {
			return nil, err
		}
		valueStr, criteriaStr, hasCriteria := strings.Cut(spec, ":")
		criteria := fallback
		if hasCriteria {
			if criteria, err = domain.ParseCriteria(criteriaStr); err != nil {
				return nil, fmt.Errorf("%s: %w", w, err)
			}
		}
		value, err := decimal.NewFromString(strings.TrimSpace(valueStr))
		if err != nil {
			return nil, fmt.Errorf("%s: invalid number %q", w, valueStr)
		}
		target, err := domain.NewGoalTarget(value, criteria)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", w, err)
		}
		if _, dup := out[w]; dup {
			return nil, fmt.Errorf("%s given twice", w)
		}
		out[w] = target
	}
	return out, nil
}
