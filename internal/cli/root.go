package cli

import (
	"time"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Activities service.ActivityService
	Goals      service.GoalService
	Sessions   service.SessionService
	Streaks    service.StreakService
	Status     service.StatusService
	Import     service.ImportService

	Clock    calendar.Clock
	Location *time.Location
}

func (a *App) today() calendar.Date {
	clock := a.Clock
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return calendar.Today(clock, a.Location)
}

// skipSetup marks commands that run without a database.
const skipSetup = "stride/skip-setup"

// NewRootCmd creates the top-level "stride" command and registers all
// subcommands against the provided App. setup, when non-nil, runs before
// any command that needs storage and is expected to populate app.
func NewRootCmd(app *App, setup func() error) *cobra.Command {
	root := &cobra.Command{
		Use:           "stride",
		Short:         "Habit goals and streaks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if setup == nil {
				return nil
			}
			for c := cmd; c != nil; c = c.Parent() {
				if c.Annotations[skipSetup] == "true" {
					return nil
				}
			}
			return setup()
		},
	}

	root.AddCommand(
		newActivityCmd(app),
		newGoalCmd(app),
		newSessionCmd(app),
		newSweepCmd(app),
		newStatusCmd(app),
		newImportCmd(app),
		newDBCmd(),
	)

	return root
}
