package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the rsvpctl root command backed by the configured database.
func NewRootCommand() *cobra.Command {
	return newRootCommand(OpenBackend)
}

func newRootCommand(open BackendOpener) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "rsvpctl",
		Short: "Guest list operations",
		Long:  "Offline maintenance for the RSVP backend: schema migration, roster import and stats.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewMigrateCommand(open))
	cmd.AddCommand(NewImportCommand(opts, open))
	cmd.AddCommand(NewStatsCommand(opts, open))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
