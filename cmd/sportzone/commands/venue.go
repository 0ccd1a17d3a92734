package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AlexG0311/sportzone/internal/catalog"
	"github.com/AlexG0311/sportzone/internal/printer"
	"github.com/AlexG0311/sportzone/internal/resolver"
	"github.com/AlexG0311/sportzone/internal/wizard"
	"github.com/AlexG0311/sportzone/pkg/sportzone"
)

func newVenueCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "venue",
		Aliases: []string{"venues"},
		Short:   "Browse and manage venues",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		newVenueListCmd(opts),
		newVenueShowCmd(opts),
		newVenueMineCmd(opts),
		newVenueCreateCmd(opts),
		newVenueEditCmd(opts),
		newVenueDeleteCmd(opts),
	)
	return cmd
}

func parseOutput(s string) (catalog.OutputFormat, error) {
	format, err := catalog.ParseOutputFormat(s)
	if err != nil {
		return "", alert("invalid output format", fmt.Sprintf("Unknown format: %s", s),
			[]string{"Valid formats: default, json, jsonl"})
	}
	return format, nil
}

func newVenueListCmd(opts *globalOptions) *cobra.Command {
	var search, output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List venues",
		Long: `List every venue, optionally narrowed by --search.

The search is a case-insensitive substring match over name, address and type.

Examples:
  sportzone venue list
  sportzone venue list --search cancha
  sportzone venue list --output json | jq '.[].nombre'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutput(output)
			if err != nil {
				return err
			}
			return withApp(cmd, opts, "list venues", func(ctx context.Context, a *app) error {
				return catalog.ListVenues(ctx, a.client, format, &catalog.Filter{Search: search}, cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by name, address or type")
	cmd.Flags().StringVarP(&output, "output", "o", "default", "Output format: default, json or jsonl")
	return cmd
}

func newVenueShowCmd(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id|name>",
		Short: "Show one venue with its images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutput(output)
			if err != nil {
				return err
			}
			return withApp(cmd, opts, "show venue", func(ctx context.Context, a *app) error {
				return catalog.ShowVenue(ctx, a.client, args[0], format, cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "default", "Output format: default or json")
	return cmd
}

func newVenueMineCmd(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List the venues you manage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutput(output)
			if err != nil {
				return err
			}
			return withApp(cmd, opts, "list your venues", func(ctx context.Context, a *app) error {
				user, err := a.holder.RequireUser()
				if err != nil {
					return err
				}
				venues, err := a.client.ListVenuesByOwner(ctx, user.ID)
				if err != nil {
					return err
				}
				return catalog.WriteVenues(cmd.OutOrStdout(), catalog.FilterVenues(venues, &catalog.Filter{}), format)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "default", "Output format: default, json or jsonl")
	return cmd
}

// ownedVenue resolves ref and checks that the session user manages it.
func ownedVenue(ctx context.Context, a *app, ref, verb string) (*sportzone.Venue, error) {
	user, err := a.holder.RequireUser()
	if err != nil {
		return nil, err
	}
	venue, err := resolver.ResolveVenue(ctx, a.client, ref)
	if err != nil {
		return nil, err
	}
	if venue.OwnerID != user.ID {
		return nil, fmt.Errorf("you can only %s venues you manage (%q is managed by user %d)", verb, venue.Name, venue.OwnerID)
	}
	return venue, nil
}

type venueEdits struct {
	name, description, address string
	price, capacity            string
	lat, lng                   float64
	image                      string
}

func newVenueEditCmd(opts *globalOptions) *cobra.Command {
	var edits venueEdits

	cmd := &cobra.Command{
		Use:   "edit <id|name>",
		Short: "Change the details of a venue you manage",
		Long: `Change the details of a venue you manage.

Only the flags you pass are changed. The result must satisfy the same rules
as a new venue: non-empty name, description and address, a location, and a
price and capacity greater than 0. --image uploads a new cover image.

Examples:
  sportzone venue edit 12 --price 60000
  sportzone venue edit "El Bosque" --lat 9.3047 --lng -75.3978 --image cover.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, "edit venue", func(ctx context.Context, a *app) error {
				venue, err := ownedVenue(ctx, a, args[0], "edit")
				if err != nil {
					return err
				}

				draft, err := applyEdits(cmd, venue, edits)
				if err != nil {
					return err
				}
				in, err := draft.Input()
				if err != nil {
					return err
				}
				in.ImageURL = venue.ImageURL

				var uploaded string
				if edits.image != "" {
					printer.Step("Uploading %s...\n", edits.image)
					asset, err := a.uploader.Upload(ctx, edits.image)
					if err != nil {
						return fmt.Errorf("failed to upload cover image: %w", err)
					}
					uploaded = asset.URL
					in.ImageURL = uploaded
				}

				updated, err := a.client.UpdateVenue(ctx, venue.ID, in)
				if err != nil {
					if uploaded != "" {
						if derr := a.uploader.Destroy(context.WithoutCancel(ctx), uploaded); derr != nil {
							a.logger.Warn("cover image left on media host", zap.String("url", uploaded), zap.Error(derr))
						}
					}
					return err
				}

				printer.Success("Updated venue #%d %s\n", updated.ID, in.Name)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&edits.name, "name", "", "Venue name")
	f.StringVar(&edits.description, "description", "", "Description")
	f.StringVar(&edits.address, "address", "", "Street address")
	f.StringVar(&edits.price, "price", "", "Price per hour")
	f.StringVar(&edits.capacity, "capacity", "", "Capacity")
	f.Float64Var(&edits.lat, "lat", 0, "Latitude")
	f.Float64Var(&edits.lng, "lng", 0, "Longitude")
	f.StringVar(&edits.image, "image", "", "Local image to upload as the new cover")
	return cmd
}

// applyEdits overlays the flags that were set onto a draft of venue and
// validates the result.
func applyEdits(cmd *cobra.Command, venue *sportzone.Venue, e venueEdits) (*wizard.Draft, error) {
	d := wizard.DraftFromVenue(venue)
	fields := []struct {
		flag  string
		field wizard.Field
		value string
	}{
		{"name", wizard.FieldName, e.name},
		{"description", wizard.FieldDescription, e.description},
		{"address", wizard.FieldAddress, e.address},
		{"price", wizard.FieldPrice, e.price},
		{"capacity", wizard.FieldCapacity, e.capacity},
	}
	for _, f := range fields {
		if cmd.Flags().Changed(f.flag) {
			if err := d.Set(f.field, f.value); err != nil {
				return nil, err
			}
		}
	}

	latSet, lngSet := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lng")
	if latSet != lngSet {
		return nil, fmt.Errorf("--lat and --lng must be given together")
	}
	if latSet {
		if err := d.SetLocation(e.lat, e.lng); err != nil {
			return nil, err
		}
	}

	if err := wizard.ValidateDetails(d); err != nil {
		return nil, err
	}
	return d, nil
}

func newVenueDeleteCmd(opts *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a venue you manage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, "delete venue", func(ctx context.Context, a *app) error {
				venue, err := ownedVenue(ctx, a, args[0], "delete")
				if err != nil {
					return err
				}

				if !yes {
					answer, err := newPrompter(cmd).ask(fmt.Sprintf("Delete venue #%d %q? [y/N]", venue.ID, venue.Name), "n")
					if err != nil {
						return err
					}
					if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
						printer.Info("Aborted\n")
						return nil
					}
				}

				if err := a.client.DeleteVenue(ctx, venue.ID); err != nil {
					return err
				}
				printer.Success("Deleted venue #%d %s\n", venue.ID, venue.Name)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
