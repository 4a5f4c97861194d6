package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rsvp-backend/domain/dto"
)

func NewStatsCommand(rootOpts *RootOptions, open BackendOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print roster statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := open()
			if err != nil {
				return err
			}
			defer backend.Close()

			stats, err := backend.Roster.Stats(cmd.Context(), cliAdmin)
			if err != nil {
				return err
			}

			text := fmt.Sprintf("total: %d\nadults: %d\nchildren: %d\npending: %d\nattending: %d\ndeclined: %d\nwaitlist: %d",
				stats.Total, stats.Adults, stats.Children, stats.Pending, stats.Attending, stats.Declined, stats.Waitlist)
			return writeOutput(cmd.OutOrStdout(), rootOpts.Format, dto.RosterStatsToResponse(stats), text)
		},
	}
}
