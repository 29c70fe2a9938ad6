package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/cli/formatter"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"sessions", "s"},
		Short:   "Log and review sessions",
	}

	cmd.AddCommand(
		newSessionLogCmd(app),
		newSessionListCmd(app),
		newSessionRemoveCmd(app),
	)

	return cmd
}

func newSessionLogCmd(app *App) *cobra.Command {
	var note string
	var on dateFlag

	cmd := &cobra.Command{
		Use:   "log ACTIVITY VALUE",
		Short: "Log a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := resolveActivity(ctx, app, args[0])
			if err != nil {
				return err
			}
			var value decimalFlag
			if err := value.Set(args[1]); err != nil {
				return err
			}

			s := &domain.Session{
				ActivityID:   a.ID,
				Value:        value.value,
				CompleteDate: on.Or(app.today()),
				Note:         note,
			}
			if err := app.Sessions.Log(ctx, s); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s of %s on %s (%s)\n",
				formatter.Quantity(s.Value, a.DisplayUnit()), a.Name, s.CompleteDate, formatter.TruncID(s.ID))
			if a.SettledThrough(s.CompleteDate) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("That day is already settled; the streak is unchanged."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Session note")
	cmd.Flags().Var(&on, "date", "Day the session counts toward (YYYY-MM-DD, default today)")

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	var from, to dateFlag
	var days int

	cmd := &cobra.Command{
		Use:   "list ACTIVITY",
		Short: "List sessions of an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := resolveActivity(ctx, app, args[0])
			if err != nil {
				return err
			}
			if days < 1 {
				return errors.New("--days must be at least 1")
			}

			end := to.Or(app.today())
			r, err := calendar.NewRange(from.Or(end.AddDays(1-days)), end)
			if err != nil {
				return err
			}
			sessions, err := app.Sessions.List(ctx, a.ID, r)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessions(a, sessions))
			return nil
		},
	}

	cmd.Flags().Var(&from, "from", "First day (default: --days before --to)")
	cmd.Flags().Var(&to, "to", "Last day (default today)")
	cmd.Flags().IntVar(&days, "days", 7, "Number of days to show when --from is omitted")

	return cmd
}

func newSessionRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove SESSION_ID",
		Aliases: []string{"rm"},
		Short:   "Delete a session logged by mistake",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sessions.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed session %s\n", args[0])
			return nil
		},
	}
}
