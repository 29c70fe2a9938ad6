package cli

import (
	"fmt"

	"github.com/alexanderramin/stride/internal/cli/formatter"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/spf13/cobra"
)

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"activities", "a"},
		Short:   "Manage tracked activities",
	}

	cmd.AddCommand(
		newActivityAddCmd(app),
		newActivityListCmd(app),
		newActivityArchiveCmd(app),
	)

	return cmd
}

func newActivityAddCmd(app *App) *cobra.Command {
	var unit string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Start tracking an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := &domain.Activity{Name: args[0], SessionUnit: unit}
			if err := app.Activities.Create(cmd.Context(), a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s). Set a goal with 'stride goal set %q'.\n",
				a.Name, formatter.TruncID(a.ID), a.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&unit, "unit", "minutes", "Unit sessions are logged in")

	return cmd
}

func newActivityListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List activities and their streaks",
		RunE: func(cmd *cobra.Command, args []string) error {
			activities, err := app.Activities.List(cmd.Context(), all)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActivities(activities))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived activities")

	return cmd
}

func newActivityArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive ACTIVITY",
		Short: "Stop tracking an activity, keeping its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := resolveActivity(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Activities.Archive(cmd.Context(), a.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived %s.\n", a.Name)
			return nil
		},
	}
}
