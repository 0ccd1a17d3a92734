package reporting

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexG0311/sportzone/internal/media"
	"github.com/AlexG0311/sportzone/internal/mockapi"
	"github.com/AlexG0311/sportzone/internal/session"
	"github.com/AlexG0311/sportzone/pkg/sportzone"
)

type env struct {
	api     *mockapi.Server
	svc     *Service
	holder  *session.Holder
	user    sportzone.User
	tempDir string
}

func setup(t *testing.T) *env {
	t.Helper()
	api := mockapi.New()
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	client, err := sportzone.NewClient(srv.URL + "/api")
	require.NoError(t, err)

	up, err := media.NewCloudinaryUploader(media.CloudinaryConfig{
		CloudName:    media.DefaultCloudName,
		UploadPreset: media.DefaultUploadPreset,
		APIKey:       "key",
		APISecret:    "secret",
		UploadPrefix: srv.URL,
	})
	require.NoError(t, err)

	holder := session.NewHolder(nil)
	user := api.SeedUser(sportzone.User{Email: "ana@example.com", Name: "Ana"}, "secret1")
	require.NoError(t, holder.Set(context.Background(), &user))

	return &env{
		api:     api,
		svc:     NewService(client, up.InFolder(DefaultFolder), holder, nil),
		holder:  holder,
		user:    user,
		tempDir: t.TempDir(),
	}
}

func (e *env) photo(t *testing.T) string {
	p := filepath.Join(e.tempDir, "malla.jpg")
	require.NoError(t, os.WriteFile(p, []byte("\xff\xd8\xff\xe0malla"), 0644))
	return p
}

func TestReport_WithPhoto(t *testing.T) {
	e := setup(t)
	e.api.SeedVenue(sportzone.Venue{Name: "Cancha El Bosque"})

	r, err := e.svc.Report(context.Background(), Request{VenueRef: "bosque", Description: "Malla rota", Photo: e.photo(t)})
	require.NoError(t, err)
	assert.Contains(t, r.ImageURL, "/"+DefaultFolder+"/")
	assert.Equal(t, "Ana", r.User.Name)
	assert.Len(t, e.api.Assets(), 1)
}

func TestReport_Validation(t *testing.T) {
	e := setup(t)
	e.api.SeedVenue(sportzone.Venue{Name: "Cancha"})

	_, err := e.svc.Report(context.Background(), Request{VenueRef: "1", Description: "   "})
	assert.ErrorContains(t, err, "describe")

	require.NoError(t, e.holder.Clear(context.Background()))
	_, err = e.svc.Report(context.Background(), Request{VenueRef: "1", Description: "Luz dañada"})
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)
	assert.Empty(t, e.api.Reports())
}

func TestReport_FailureRemovesUploadedPhoto(t *testing.T) {
	e := setup(t)
	e.api.SeedVenue(sportzone.Venue{Name: "Cancha"})
	e.api.InjectFault(http.MethodPost, mockapi.RouteReports, http.StatusInternalServerError)

	_, err := e.svc.Report(context.Background(), Request{VenueRef: "1", Description: "Malla rota", Photo: e.photo(t)})
	require.Error(t, err)
	assert.Empty(t, e.api.Assets())
}

func TestOwnerReports_SkipsFailingVenues(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	mine := e.api.SeedVenue(sportzone.Venue{Name: "Coliseo", OwnerID: e.user.ID})
	other := e.api.SeedVenue(sportzone.Venue{Name: "Estadio", OwnerID: e.user.ID + 100})

	_, err := e.svc.Report(ctx, Request{VenueRef: "coliseo", Description: "Gradas sucias"})
	require.NoError(t, err)
	_, err = e.svc.Report(ctx, Request{VenueRef: "estadio", Description: "Sin luz"})
	require.NoError(t, err)

	reports, err := e.svc.OwnerReports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, mine.ID, reports[0].Venue.ID)

	forOther, err := e.svc.ForVenue(ctx, "estadio")
	require.NoError(t, err)
	require.Len(t, forOther, 1)
	assert.Equal(t, other.ID, forOther[0].Venue.ID)

	e.api.InjectFault(http.MethodGet, mockapi.RouteVenueReports, http.StatusInternalServerError)
	reports, err = e.svc.OwnerReports(ctx)
	require.NoError(t, err)
	assert.Empty(t, reports)
}
