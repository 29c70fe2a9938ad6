package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/stride/internal/domain"
	"github.com/alexanderramin/stride/internal/service"
	"github.com/shopspring/decimal"
)

const statusProgressBarWidth = 10

// FormatToday renders the per-activity view of the current day.
func FormatToday(st *service.TodayStatus) string {
	if len(st.Activities) == 0 {
		return RenderBox("Today", Dim("No activities yet. Add one with 'stride activity add'.")+"\n")
	}

	headers := []string{"ACTIVITY", "GOAL", "PROGRESS", "STATUS", "STREAK"}
	rows := make([][]string, 0, len(st.Activities))
	counts := map[domain.GoalStatus]int{}

	for _, a := range st.Activities {
		counts[a.Status]++
		unit := a.Activity.DisplayUnit()

		goal := Dim("--")
		progress := Dim(Quantity(a.Total, unit))
		if a.Goal != nil {
			goal = domain.Describe(a.Goal)
		}
		if a.Target != nil {
			progress = fmt.Sprintf("%s %s", RenderProgress(Ratio(a.Total, a.Target.Value), statusProgressBarWidth),
				Dim(fmt.Sprintf("%s / %s", a.Total, Quantity(a.Target.Value, unit))))
		}
		status := StatusIndicator(a.Status)
		if a.NextActive != nil {
			status += Dim(" next " + RelativeDay(*a.NextActive, st.Today))
		}

		rows = append(rows, []string{
			Bold(a.Activity.Name),
			goal,
			progress,
			status,
			StreakBadge(a.Activity.CurrentStreakCount),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s, %s, %s\n",
		render(StyleGreen, fmt.Sprintf("%d Done", counts[domain.StatusSuccess])),
		render(StyleYellow, fmt.Sprintf("%d In Progress", counts[domain.StatusIncomplete])),
		render(StyleRed, fmt.Sprintf("%d Missed", counts[domain.StatusFailure])),
	))

	return RenderBox("Today · "+HumanDate(st.Today), b.String())
}

// FormatSweep summarizes a catch-up run in one or two lines.
func FormatSweep(r *service.SweepResult) string {
	if r.Skipped {
		return Dim("Another evaluation is already running; nothing to do.") + "\n"
	}
	if r.DaysEvaluated == 0 {
		return Dim(fmt.Sprintf("Streaks are up to date through %s.", r.Today.AddDays(-1))) + "\n"
	}
	days := "day"
	if r.DaysEvaluated != 1 {
		days = "days"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Settled %d %s (%s to %s).\n", r.DaysEvaluated, days, r.From, r.To))
	if r.StreaksIncremented > 0 || r.StreaksReset > 0 {
		b.WriteString(fmt.Sprintf("%s, %s\n",
			render(StyleGreen, fmt.Sprintf("%d streak days earned", r.StreaksIncremented)),
			render(StyleRed, fmt.Sprintf("%d streaks broken", r.StreaksReset)),
		))
	}
	return b.String()
}

// FormatGoalHistory lists every goal version of an activity, marking the
// one in effect on today.
func FormatGoalHistory(activity *domain.Activity, goals []domain.Goal, current domain.Goal) string {
	if len(goals) == 0 {
		return Dim(fmt.Sprintf("%s has no goal yet.", activity.Name)) + "\n"
	}
	headers := []string{"FROM", "KIND", "GOAL", ""}
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		marker := ""
		if current != nil && g.Base().ID == current.Base().ID {
			marker = render(StyleGreen, glyph("● current", "* current"))
		}
		rows = append(rows, []string{
			g.Base().EffectiveDate.String(),
			Dim(strings.ReplaceAll(string(g.Kind()), "_", " ")),
			domain.Describe(g),
			marker,
		})
	}
	return Header(activity.Name+" goals") + "\n" + RenderTable(headers, rows)
}

// FormatActivities lists activities with their streaks.
func FormatActivities(activities []*domain.Activity) string {
	if len(activities) == 0 {
		return Dim("No activities.") + "\n"
	}
	headers := []string{"ID", "NAME", "UNIT", "STREAK", "SETTLED THROUGH"}
	rows := make([][]string, 0, len(activities))
	for _, a := range activities {
		name := Bold(a.Name)
		if a.Archived() {
			name = Dim(a.Name + " (archived)")
		}
		settled := Dim("--")
		if a.LastGoalSuccessCheckDate != nil {
			settled = a.LastGoalSuccessCheckDate.String()
		}
		rows = append(rows, []string{TruncID(a.ID), name, a.DisplayUnit(), StreakBadge(a.CurrentStreakCount), settled})
	}
	return RenderTable(headers, rows)
}

// FormatSessions lists sessions oldest first with a total line.
func FormatSessions(activity *domain.Activity, sessions []*domain.Session) string {
	if len(sessions) == 0 {
		return Dim("No sessions found.") + "\n"
	}
	headers := []string{"ID", "DATE", "VALUE", "NOTE"}
	rows := make([][]string, 0, len(sessions))
	total := decimal.Zero
	for _, s := range sessions {
		total = total.Add(s.Value)
		note := s.Note
		if len(note) > 40 {
			note = note[:37] + "..."
		}
		rows = append(rows, []string{TruncID(s.ID), s.CompleteDate.String(), Quantity(s.Value, activity.DisplayUnit()), Dim(note)})
	}
	return RenderTable(headers, rows, 2) + fmt.Sprintf("\nTotal: %s\n", Bold(Quantity(total, activity.DisplayUnit())))
}
