package cli

import (
	"fmt"

	"github.com/alexanderramin/stride/internal/cli/formatter"
	"github.com/alexanderramin/stride/internal/logger"
	"github.com/spf13/cobra"
)

func newSweepCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Settle streaks for every past day not yet evaluated",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Streaks.EvaluateUpToToday(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSweep(res))
			return nil
		},
	}
}

func newStatusCmd(app *App) *cobra.Command {
	var noSweep bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show today's progress and current streaks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !noSweep {
				// Streaks shown below are only current once past days are settled.
				res, err := app.Streaks.EvaluateUpToToday(ctx)
				if err != nil {
					return fmt.Errorf("settling past days: %w", err)
				}
				if res.DaysEvaluated > 0 {
					logger.Info("settled days before status", "days", res.DaysEvaluated, "from", res.From, "to", res.To)
				}
			}

			st, err := app.Status.Today(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatToday(st))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSweep, "no-sweep", false, "Show stored streaks without settling past days first")

	return cmd
}
