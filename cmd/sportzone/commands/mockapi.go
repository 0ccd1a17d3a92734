package commands

import (
	"github.com/spf13/cobra"

	"github.com/AlexG0311/sportzone/internal/logging"
	"github.com/AlexG0311/sportzone/internal/media"
	"github.com/AlexG0311/sportzone/internal/mockapi"
	"github.com/AlexG0311/sportzone/internal/printer"
	"github.com/AlexG0311/sportzone/pkg/sportzone"
)

// Demo account created by mock-api --seed.
const (
	demoEmail    = "demo@sportzone.test"
	demoPassword = "demo123"
)

func newMockAPICmd(opts *globalOptions) *cobra.Command {
	var addr string
	var seed bool

	cmd := &cobra.Command{
		Use:   "mock-api",
		Short: "Serve an in-memory SportZone backend for offline work",
		Long: `Serve an in-memory SportZone backend and media host.

Every backend route the CLI uses is available under /api, and image uploads
are accepted under /v1_1/<cloud>/image/upload. State is lost on exit.

Point the CLI at it with:
  SPORTZONE_API_BASE_URL=http://localhost:4000/api
  SPORTZONE_MEDIA_UPLOAD_PREFIX=http://localhost:4000
  SPORTZONE_MEDIA_API_KEY=mock SPORTZONE_MEDIA_API_SECRET=mock`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := "info"
			if opts.verbose {
				level = "debug"
			}
			logger, err := logging.New(level)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			srv := mockapi.New(
				mockapi.WithLogger(logger),
				mockapi.WithMediaAccount(media.DefaultCloudName, media.DefaultUploadPreset),
			)
			if seed {
				seedDemo(srv)
				printer.Info("Seeded demo account %s / %s\n", demoEmail, demoPassword)
			}

			printer.Success("Mock API on %s (Ctrl-C to stop)\n", addr)
			if err := srv.Run(cmd.Context(), addr); err != nil {
				return alert("mock API failed", err.Error(), []string{"Pick another address with --addr"})
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":4000", "Listen address")
	cmd.Flags().BoolVar(&seed, "seed", false, "Create a demo account and two venues")
	return cmd
}

func seedDemo(srv *mockapi.Server) {
	owner := srv.SeedUser(sportzone.User{Email: demoEmail, Name: "Demo", Phone: "3000000000", Role: sportzone.RoleUser}, demoPassword)
	srv.SeedVenue(sportzone.Venue{
		Name:        "Coliseo Las Delicias",
		Type:        sportzone.VenueTypePublic,
		Description: "Cancha cubierta multiuso",
		Address:     "Av. Mariscal Sucre, Sincelejo",
		Latitude:    9.3021,
		Longitude:   -75.3952,
		Price:       80000,
		Capacity:    2500,
		StatusID:    sportzone.VenueStatusAvailable,
		OwnerID:     owner.ID,
	})
	srv.SeedVenue(sportzone.Venue{
		Name:        "Cancha El Bosque",
		Type:        sportzone.VenueTypePublic,
		Description: "Cancha sintética de fútbol 5",
		Address:     "Barrio El Bosque, Sincelejo",
		Latitude:    9.3047,
		Longitude:   -75.3978,
		Price:       50000,
		Capacity:    20,
		StatusID:    sportzone.VenueStatusAvailable,
		OwnerID:     owner.ID,
	})
}
