package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/shopspring/decimal"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if len(schema.Activities) == 0 {
		errs = append(errs, fmt.Errorf("activities: at least one activity is required"))
	}

	names := make(map[string]bool)
	for i := range schema.Activities {
		a := &schema.Activities[i]
		path := fmt.Sprintf("activities[%d]", i)

		name := strings.TrimSpace(a.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", path))
		} else {
			key := strings.ToLower(name)
			if names[key] {
				errs = append(errs, fmt.Errorf("%s.name: duplicate activity %q", path, name))
			}
			names[key] = true
		}

		errs = append(errs, validateGoals(path, a.Goals)...)
		errs = append(errs, validateSessions(path, a.Sessions)...)
	}

	return errs
}

func validateGoals(path string, goals []GoalImport) []error {
	var errs []error

	effective := make(map[string]bool)
	for i := range goals {
		g := &goals[i]
		gp := fmt.Sprintf("%s.goals[%d]", path, i)

		if g.From == "" {
			errs = append(errs, fmt.Errorf("%s.from is required", gp))
			continue
		}
		if effective[g.From] {
			errs = append(errs, fmt.Errorf("%s.from: two goals take effect on %s", gp, g.From))
		}
		effective[g.From] = true

		// Building the goal runs every domain check.
		if _, err := buildGoal(g); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", gp, err))
		}
	}

	return errs
}

func validateSessions(path string, sessions []SessionImport) []error {
	var errs []error

	for i := range sessions {
		s := &sessions[i]
		sp := fmt.Sprintf("%s.sessions[%d]", path, i)

		if s.Date == "" {
			errs = append(errs, fmt.Errorf("%s.date is required", sp))
		} else if _, err := calendar.Parse(s.Date); err != nil {
			errs = append(errs, fmt.Errorf("%s.date: %w", sp, err))
		}

		if s.Value == "" {
			errs = append(errs, fmt.Errorf("%s.value is required", sp))
		} else if v, err := decimal.NewFromString(s.Value); err != nil {
			errs = append(errs, fmt.Errorf("%s.value: invalid number %q", sp, s.Value))
		} else if v.IsNegative() {
			errs = append(errs, fmt.Errorf("%s.value: %s is negative", sp, s.Value))
		}
	}

	return errs
}
