package importer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/shopspring/decimal"
)

// ActivityBundle is one converted activity with its goals ordered by
// effective date and its sessions in file order. IDs and timestamps are left
// for the caller to assign when persisting.
type ActivityBundle struct {
	Activity *domain.Activity
	Goals    []domain.Goal
	Sessions []*domain.Session
}

// Convert transforms a validated ImportSchema into domain objects ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) ([]*ActivityBundle, error) {
	bundles := make([]*ActivityBundle, 0, len(schema.Activities))

	for i := range schema.Activities {
		ai := &schema.Activities[i]
		b := &ActivityBundle{
			Activity: &domain.Activity{
				Name:        strings.TrimSpace(ai.Name),
				SessionUnit: strings.TrimSpace(ai.Unit),
			},
		}

		for j := range ai.Goals {
			g, err := buildGoal(&ai.Goals[j])
			if err != nil {
				return nil, fmt.Errorf("activity %q goal %d: %w", b.Activity.Name, j, err)
			}
			b.Goals = append(b.Goals, g)
		}
		sort.SliceStable(b.Goals, func(x, y int) bool {
			return b.Goals[x].Base().EffectiveDate.Before(b.Goals[y].Base().EffectiveDate)
		})

		for j := range ai.Sessions {
			si := &ai.Sessions[j]
			date, err := calendar.Parse(si.Date)
			if err != nil {
				return nil, fmt.Errorf("activity %q session %d: %w", b.Activity.Name, j, err)
			}
			value, err := decimal.NewFromString(si.Value)
			if err != nil {
				return nil, fmt.Errorf("activity %q session %d: invalid value %q", b.Activity.Name, j, si.Value)
			}
			b.Sessions = append(b.Sessions, &domain.Session{
				Value:        value,
				CompleteDate: date,
				Note:         strings.TrimSpace(si.Note),
			})
		}

		bundles = append(bundles, b)
	}

	return bundles, nil
}

// buildGoal turns one goal entry into a validated domain goal with no
// activity attached.
func buildGoal(gi *GoalImport) (domain.Goal, error) {
	from, err := calendar.Parse(gi.From)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}

	criteria := domain.CriteriaAtLeast
	if gi.Criteria != "" {
		if criteria, err = domain.ParseCriteria(gi.Criteria); err != nil {
			return nil, err
		}
	}

	kind := domain.GoalEveryXDays
	switch {
	case gi.Kind != "":
		if kind, err = domain.ParseGoalKind(gi.Kind); err != nil {
			return nil, err
		}
	case len(gi.On) > 0:
		kind = domain.GoalDaysOfWeek
	}

	base := domain.GoalBase{EffectiveDate: from}

	var g domain.Goal
	switch kind {
	case domain.GoalEveryXDays, domain.GoalWeeksPeriod:
		if gi.Target == "" {
			return nil, errors.New("target is required")
		}
		target, err := parseTarget(gi.Target, criteria)
		if err != nil {
			return nil, err
		}
		if kind == domain.GoalWeeksPeriod {
			g = &domain.WeeksPeriod{GoalBase: base, Target: target}
		} else {
			g = &domain.EveryXDays{GoalBase: base, IntervalDays: orOne(gi.Every), Target: target}
		}

	case domain.GoalDaysOfWeek:
		if len(gi.On) == 0 {
			return nil, errors.New("on is required for a days-of-week goal")
		}
		dow := &domain.DaysOfWeek{GoalBase: base, WeeksInterval: orOne(gi.Weeks)}
		seen := make(map[calendar.Weekday]bool, len(gi.On))
		for day, spec := range gi.On {
			w, err := calendar.ParseWeekday(day)
			if err != nil {
				return nil, err
			}
			if seen[w] {
				return nil, fmt.Errorf("%s given twice", w)
			}
			seen[w] = true

			valueStr, criteriaStr, ok := strings.Cut(spec, ":")
			dayCriteria := criteria
			if ok {
				if dayCriteria, err = domain.ParseCriteria(strings.TrimSpace(criteriaStr)); err != nil {
					return nil, fmt.Errorf("%s: %w", w, err)
				}
			}
			target, err := parseTarget(valueStr, dayCriteria)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", w, err)
			}
			dow.SetTarget(w, &target)
		}
		g = dow

	default:
		return nil, fmt.Errorf("unsupported goal kind %q", kind)
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func parseTarget(s string, criteria domain.Criteria) (domain.GoalTarget, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return domain.GoalTarget{}, fmt.Errorf("invalid number %q", s)
	}
	return domain.NewGoalTarget(value, criteria)
}

func orOne(n int) int {
	if n == 0 {
		return 1
	}
	return n
}
