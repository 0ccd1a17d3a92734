package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/AlexG0311/sportzone/internal/catalog"
	"github.com/AlexG0311/sportzone/internal/printer"
	"github.com/AlexG0311/sportzone/internal/reporting"
	"github.com/AlexG0311/sportzone/pkg/sportzone"
)

func (a *app) reporting() *reporting.Service {
	return reporting.NewService(a.client, a.uploader.InFolder(reporting.DefaultFolder), a.holder, a.logger)
}

func newReportCmd(opts *globalOptions) *cobra.Command {
	var req reporting.Request

	cmd := &cobra.Command{
		Use:   "report <id|name>",
		Short: "Report damage at a venue",
		Long: `Report damage or a problem at a venue, optionally with a photo.

Examples:
  sportzone report 12 --description "Broken goal net"
  sportzone report "El Bosque" --description "Lights out on the north side" --photo lights.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.VenueRef = args[0]
			return withApp(cmd, opts, "file report", func(ctx context.Context, a *app) error {
				if req.Photo != "" {
					printer.Step("Uploading %s...\n", req.Photo)
				}
				report, err := a.reporting().Report(ctx, req)
				if err != nil {
					return err
				}
				printer.Success("Report #%d filed\n", report.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&req.Description, "description", "d", "", "What is wrong")
	cmd.Flags().StringVar(&req.Photo, "photo", "", "Local photo to attach")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newReportsCmd(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "reports [id|name]",
		Short: "List damage reports",
		Long: `List damage reports.

With a venue argument, lists the reports filed against that venue. Without
one, lists the reports for every venue you manage, newest first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutput(output)
			if err != nil {
				return err
			}
			return withApp(cmd, opts, "list reports", func(ctx context.Context, a *app) error {
				svc := a.reporting()

				var list []sportzone.Report
				var err error
				if len(args) == 1 {
					list, err = svc.ForVenue(ctx, args[0])
				} else {
					list, err = svc.OwnerReports(ctx)
				}
				if err != nil {
					return err
				}
				return catalog.WriteReports(cmd.OutOrStdout(), list, format)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "default", "Output format: default, json or jsonl")
	return cmd
}
