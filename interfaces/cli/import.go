package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"rsvp-backend/domain/dto"
	"rsvp-backend/domain/models"
	"rsvp-backend/domain/services"
)

type importOptions struct {
	guestType string
	waitlist  bool
}

// RosterEntry is one guest in a YAML roster file.
type RosterEntry struct {
	Name         string  `yaml:"name"`
	Email        *string `yaml:"email"`
	Phone        *string `yaml:"phone"`
	Type         string  `yaml:"type"`
	IsOnWaitlist *bool   `yaml:"isOnWaitlist"`
	FamilyHeadID *string `yaml:"familyHeadId"`
}

func NewImportCommand(rootOpts *RootOptions, open BackendOpener) *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import guests from a YAML roster or a list of names",
		Long: `Import guests into the roster.

Files ending in .yaml or .yml hold a list of guests with name, email, phone,
type, isOnWaitlist and familyHeadId ("self" makes the guest a family head).
Any other file is read as one name per line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			guestType := models.GuestType(opts.guestType)
			if !guestType.IsValid() {
				return fmt.Errorf("invalid --type %q: must be adult or child", opts.guestType)
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			backend, err := open()
			if err != nil {
				return err
			}
			defer backend.Close()

			var guests []models.Guest
			switch strings.ToLower(filepath.Ext(args[0])) {
			case ".yaml", ".yml":
				reqs, err := ParseRosterYAML(data, guestType, opts.waitlist)
				if err != nil {
					return err
				}
				guests, err = backend.Roster.BulkCreate(cmd.Context(), cliAdmin, reqs)
				if err != nil {
					return err
				}
			default:
				guests, err = backend.Roster.ImportNames(cmd.Context(), cliAdmin, string(data), guestType, opts.waitlist)
				if err != nil {
					return err
				}
			}

			return writeOutput(cmd.OutOrStdout(), rootOpts.Format, dto.GuestsToResponse(guests),
				fmt.Sprintf("imported %d guests", len(guests)))
		},
	}

	cmd.Flags().StringVar(&opts.guestType, "type", string(models.GuestTypeAdult), "default guest type (adult|child)")
	cmd.Flags().BoolVar(&opts.waitlist, "waitlist", false, "put imported guests on the waitlist by default")

	return cmd
}

// ParseRosterYAML converts a YAML roster into create requests. Entries without
// a type or waitlist flag take the given defaults.
func ParseRosterYAML(data []byte, defaultType models.GuestType, defaultWaitlist bool) ([]services.NewGuest, error) {
	var entries []RosterEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("invalid roster file: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: roster file has no guests", services.ErrValidation)
	}

	reqs := make([]services.NewGuest, len(entries))
	for i, e := range entries {
		head, err := dto.ParseFamilyHead(e.FamilyHeadID)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}

		guestType := defaultType
		if e.Type != "" {
			guestType = models.GuestType(e.Type)
		}
		waitlist := defaultWaitlist
		if e.IsOnWaitlist != nil {
			waitlist = *e.IsOnWaitlist
		}

		reqs[i] = services.NewGuest{
			Name:         e.Name,
			Email:        e.Email,
			Phone:        e.Phone,
			Type:         guestType,
			IsOnWaitlist: waitlist,
			FamilyHead:   head,
		}
	}
	return reqs, nil
}
