package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rsvp-backend/infrastructure/postgres"
)

func NewMigrateCommand(open BackendOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := open()
			if err != nil {
				return err
			}
			defer backend.Close()

			if err := postgres.Migrate(backend.DB); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
