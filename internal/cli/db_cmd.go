package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/stride/internal/db"
	"github.com/alexanderramin/stride/internal/keyring"
	"github.com/spf13/cobra"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "db",
		Short:       "Database connection settings",
		Annotations: map[string]string{skipSetup: "true"},
	}

	keyringCmd := &cobra.Command{
		Use:   "keyring",
		Short: "Keep the Postgres connection string in the OS keyring",
		Long: `Keep the Postgres connection string in the OS keyring. Then set
"database: keyring" in the config file (or STRIDE_DB=keyring) to use it.`,
	}
	keyringCmd.AddCommand(newKeyringSetCmd(), newKeyringDeleteCmd())
	cmd.AddCommand(keyringCmd)

	return cmd
}

func newKeyringSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set DSN",
		Short: "Store a Postgres connection string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if db.DialectFor(args[0]) != db.DialectPostgres {
				return errors.New("only Postgres connection strings belong in the keyring")
			}
			if err := keyring.SetConnectionString(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Connection string stored in the OS keyring.")
			return nil
		},
	}
}

func newKeyringDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Remove the stored connection string",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := keyring.DeleteConnectionString()
			if errors.Is(err, keyring.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "No connection string stored.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Connection string removed.")
			return nil
		},
	}
}
