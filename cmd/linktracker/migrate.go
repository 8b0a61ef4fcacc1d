package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-tracker/internal/config"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Long: `Applies the embedded goose migrations to the Postgres database in
DATABASE_DSN, or creates the tables in the SQLite file in SQLITE_PATH.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if opts.DatabaseDSN == "" && opts.SQLitePath == "" {
				return errNoPersistentStore
			}

			_, closeStore, err := openStorage(cmd.Context(), opts, zap.NewNop())
			if err != nil {
				return err
			}
			defer closeStore()

			fmt.Fprintln(cmd.OutOrStdout(), "Database migrations executed successfully.")
			return nil
		},
	}
}
