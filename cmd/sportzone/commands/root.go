package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AlexG0311/sportzone/internal/config"
	"github.com/AlexG0311/sportzone/internal/printer"
)

var versionString = "dev"

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	verbose    bool
	profile    string
}

// NewRootCmd builds the full command tree. Each call returns an independent
// tree so tests can execute commands without shared flag state.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "sportzone",
		Short: "SportZone - browse, book and publish sports venues",
		Long: `SportZone is a command-line client for the SportZone venue platform.

Browse venues, reserve time slots, report damage, and publish your own venues
through a step-by-step wizard that uploads images and creates the venue in one
submission.`,
		Version: versionString,
		// Show help instead of silently succeeding without a subcommand
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
		SilenceErrors:      true,
		SilenceUsage:       true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "Path to sportzone.yml")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log API requests and cleanup details to stderr")
	root.PersistentFlags().StringVar(&opts.profile, "profile", "", "Session profile (overrides session.profile)")

	root.AddCommand(
		newInitCmd(),
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newWhoamiCmd(opts),
		newRegisterCmd(opts),
		newVenueCmd(opts),
		newReserveCmd(opts),
		newReservationsCmd(opts),
		newReportCmd(opts),
		newReportsCmd(opts),
		newMockAPICmd(opts),
	)
	return root
}

// Execute runs the CLI. Ctrl-C cancels the command context so in-flight
// requests stop and partial submissions are rolled back.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	var shown *shownError
	if err != nil && !errors.As(err, &shown) {
		// Flag and argument errors from Cobra, which runs with SilenceErrors
		return printer.Error(err.Error(), "", []string{"Run 'sportzone --help' for usage"})
	}
	return err
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	versionString = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}
