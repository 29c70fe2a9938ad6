package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/stride/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import activities, goal history and sessions from a YAML or JSON file",
		Long: `Import activities, goal history and sessions from a YAML or JSON file.
Every activity in the file must be new. Past days are settled by the next
sweep.

Example file:
  activities:
    - name: Run
      unit: km
      goals:
        - from: 2025-01-01
          target: 5
      sessions:
        - date: 2025-01-01
          value: 5.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if dryRun {
				schema, err := importer.LoadImportSchema(args[0])
				if err != nil {
					return err
				}
				if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
					return validationError(errs)
				}
				goals, sessions := 0, 0
				for _, a := range schema.Activities {
					goals += len(a.Goals)
					sessions += len(a.Sessions)
				}
				fmt.Fprintf(out, "%s is valid: %d activities, %d goals, %d sessions.\n",
					args[0], len(schema.Activities), goals, sessions)
				return nil
			}

			res, err := app.Import.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Imported %d activities, %d goals, %d sessions.\n",
				res.Activities, res.Goals, res.Sessions)
			if res.SettledSessions > 0 {
				fmt.Fprintf(out, "%d sessions fall on days that are already settled and do not count toward streaks.\n",
					res.SettledSessions)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the file without writing anything")

	return cmd
}

func validationError(errs []error) error {
	lines := make([]string, 0, len(errs)+1)
	lines = append(lines, fmt.Sprintf("%d problems in import file:", len(errs)))
	for _, e := range errs {
		lines = append(lines, "  - "+e.Error())
	}
	return errors.New(strings.Join(lines, "\n"))
}
