package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/cli/formatter"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/spf13/cobra"
)

func newGoalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goal",
		Aliases: []string{"goals", "g"},
		Short:   "Set and review activity goals",
	}

	cmd.AddCommand(
		newGoalSetCmd(app),
		newGoalHistoryCmd(app),
	)

	return cmd
}

// goalOptions collects the goal set flags.
type goalOptions struct {
	kind     string
	every    int
	weeks    int
	target   decimalFlag
	criteria criteriaFlag
	on       map[string]string
	from     dateFlag
}

// kindOf infers the goal kind when --kind is omitted.
func (o *goalOptions) kindOf() (domain.GoalKind, error) {
	if o.kind != "" {
		return domain.ParseGoalKind(o.kind)
	}
	if len(o.on) > 0 {
		return domain.GoalDaysOfWeek, nil
	}
	return domain.GoalEveryXDays, nil
}

// build assembles the goal for activityID. today picks the default
// effective date: today, or the next week start for weekly goals.
func (o *goalOptions) build(activityID string, today calendar.Date) (domain.Goal, error) {
	kind, err := o.kindOf()
	if err != nil {
		return nil, err
	}

	base := domain.GoalBase{ActivityID: activityID, EffectiveDate: o.from.Or(today)}

	switch kind {
	case domain.GoalEveryXDays, domain.GoalWeeksPeriod:
		if !o.target.set {
			return nil, errors.New("--target is required")
		}
		target, err := domain.NewGoalTarget(o.target.value, o.criteria.criteria)
		if err != nil {
			return nil, err
		}
		if kind == domain.GoalEveryXDays {
			return &domain.EveryXDays{GoalBase: base, IntervalDays: o.every, Target: target}, nil
		}
		if start := calendar.WeekStart(); o.from.date == nil && today.Weekday() != start {
			base.EffectiveDate = today.Next(start)
		}
		return &domain.WeeksPeriod{GoalBase: base, Target: target}, nil

	case domain.GoalDaysOfWeek:
		if len(o.on) == 0 {
			return nil, errors.New("--on is required for a days-of-week goal, e.g. --on mon=30 --on thu=45")
		}
		targets, err := parseWeekdayTargets(o.on, o.criteria.criteria)
		if err != nil {
			return nil, err
		}
		g := &domain.DaysOfWeek{GoalBase: base, WeeksInterval: o.weeks}
		for w, t := range targets {
			g.SetTarget(w, &t)
		}
		return g, nil
	}
	return nil, fmt.Errorf("unsupported goal kind %q", kind)
}

func newGoalSetCmd(app *App) *cobra.Command {
	opts := &goalOptions{criteria: criteriaFlag{criteria: domain.CriteriaAtLeast}}

	cmd := &cobra.Command{
		Use:   "set ACTIVITY",
		Short: "Set the goal of an activity from a date on",
		Long: `Set the goal of an activity from a date on. Earlier goal versions keep
applying to earlier days; versions starting on or after --from are replaced.

Examples:
  stride goal set Run --target 5                       daily, at least 5
  stride goal set Run --every 2 --target 30            every other day
  stride goal set Read --kind weekly --target 180      180 per week
  stride goal set Swim --on sun=30 --weeks 2           Sundays, every other week
  stride goal set Coffee --target 3 --criteria "<"     fewer than 3 a day`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := resolveActivity(ctx, app, args[0])
			if err != nil {
				return err
			}
			g, err := opts.build(a.ID, app.today())
			if err != nil {
				return err
			}
			if err := app.Goals.SetGoal(ctx, g); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s from %s.\n", a.Name, domain.Describe(g), g.Base().EffectiveDate)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.kind, "kind", "", "Goal kind: every-x-days, days-of-week or weekly (inferred when omitted)")
	f.IntVar(&opts.every, "every", 1, "Interval in days for an every-x-days goal")
	f.IntVar(&opts.weeks, "weeks", 1, "Repeat a days-of-week goal every N weeks")
	f.Var(&opts.target, "target", "Target value")
	f.Var(&opts.criteria, "criteria", "How the total compares: at_least, exactly or less_than")
	f.StringToStringVar(&opts.on, "on", nil, "Per-weekday target as day=value[:criteria], repeatable")
	f.Var(&opts.from, "from", "Effective date (YYYY-MM-DD, default today)")

	return cmd
}

func newGoalHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history ACTIVITY",
		Short: "Show every goal version of an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := resolveActivity(ctx, app, args[0])
			if err != nil {
				return err
			}
			goals, err := app.Goals.History(ctx, a.ID)
			if err != nil {
				return err
			}
			current, err := app.Goals.EffectiveOn(ctx, a.ID, app.today())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGoalHistory(a, goals, current))
			return nil
		},
	}
}
