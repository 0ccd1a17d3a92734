package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlexG0311/sportzone/internal/booking"
	"github.com/AlexG0311/sportzone/internal/catalog"
	"github.com/AlexG0311/sportzone/internal/printer"
)

func newReserveCmd(opts *globalOptions) *cobra.Command {
	var req booking.Request
	var yes bool

	cmd := &cobra.Command{
		Use:   "reserve <id|name>",
		Short: "Reserve a venue for a time slot",
		Long: `Reserve a venue for a time slot.

The slot must end after it starts and last at least 30 minutes. The
estimated cost is the venue's hourly price times the slot length; venues
without a price are estimated at $1,000 per hour.

Examples:
  sportzone reserve 12 --date 2025-10-29 --start 14:00 --end 15:30
  sportzone reserve "El Bosque" --date 2025-10-29 --start 18:00 --end 20:00 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.VenueRef = args[0]
			return withApp(cmd, opts, "reserve", func(ctx context.Context, a *app) error {
				svc := booking.NewService(a.client, a.holder, a.logger)

				plan, err := svc.Prepare(ctx, req)
				if err != nil {
					return err
				}

				price := catalog.FormatPrice(plan.Quote.Hourly) + "/h"
				if plan.Quote.Fallback {
					price += " (estimated)"
				}
				catalog.WriteFields(cmd.OutOrStdout(), [][2]string{
					{"Venue", fmt.Sprintf("#%d %s", plan.Venue.ID, plan.Venue.Name)},
					{"Date", plan.Slot.DateString()},
					{"Time", plan.Slot.StartString() + " - " + plan.Slot.EndString()},
					{"Price", price},
					{"Total", catalog.FormatPrice(plan.Quote.Total)},
				})

				if !yes {
					ok, err := confirm(newPrompter(cmd), "Confirm reservation?")
					if err != nil {
						return err
					}
					if !ok {
						printer.Info("Aborted\n")
						return nil
					}
				}

				res, err := svc.Confirm(ctx, plan)
				if err != nil {
					return err
				}
				if res.ID > 0 {
					printer.Success("Reservation #%d requested for %s\n", res.ID, plan.Venue.Name)
				} else {
					printer.Success("Reservation requested for %s\n", plan.Venue.Name)
				}
				printer.Hint("It stays pending until the venue manager confirms it.\n")
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&req.Date, "date", "d", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&req.End, "end", "", "End time (HH:MM)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newReservationsCmd(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "reservations",
		Short: "List your reservations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutput(output)
			if err != nil {
				return err
			}
			return withApp(cmd, opts, "list reservations", func(ctx context.Context, a *app) error {
				reservations, err := booking.NewService(a.client, a.holder, a.logger).Mine(ctx)
				if err != nil {
					return err
				}
				return catalog.WriteReservations(cmd.OutOrStdout(), reservations, format)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "default", "Output format: default, json or jsonl")
	return cmd
}
