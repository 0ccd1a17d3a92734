package wizard

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
	"github.com/AlexG0311/sportzone/pkg/sportzone"
)

type roundTrip struct {
	api      *mockapi.Server
	client   *sportzone.Client
	pipeline *Pipeline
	photos   []string
}

func newRoundTrip(t *testing.T, nPhotos int) *roundTrip {
	t.Helper()
	api := mockapi.New()
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	client, err := sportzone.NewClient(srv.URL + "/api")
	require.NoError(t, err)

	up, err := media.NewCloudinaryUploader(media.CloudinaryConfig{
		CloudName:    media.DefaultCloudName,
		UploadPreset: media.DefaultUploadPreset,
		Folder:       media.DefaultFolder,
		APIKey:       "key",
		APISecret:    "secret",
		UploadPrefix: srv.URL,
	})
	require.NoError(t, err)

	dir := t.TempDir()
	var photos []string
	for _, name := range []string{"frente.jpg", "cancha.jpg", "gradas.jpg"}[:nPhotos] {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("\xff\xd8\xff\xe0"+name), 0644))
		photos = append(photos, p)
	}

	return &roundTrip{api: api, client: client, pipeline: NewPipeline(client, up), photos: photos}
}

func (rt *roundTrip) fill(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.UpdateField(FieldName, "Coliseo Las Delicias"))
	require.NoError(t, c.UpdateField(FieldDescription, "Cancha cubierta"))
	require.NoError(t, c.UpdateField(FieldAddress, "Av. Mariscal Sucre"))
	require.NoError(t, c.SetLocation(9.3021, -75.3952))
	require.NoError(t, c.UpdateField(FieldPrice, "45000"))
	require.NoError(t, c.UpdateField(FieldCapacity, "2500"))
	for _, p := range rt.photos {
		require.NoError(t, c.AddImage(p))
	}
	require.NoError(t, RunToSummary(c))
}

func TestRoundTrip_CreatedVenueMatchesDraft(t *testing.T) {
	rt := newRoundTrip(t, 3)
	c := NewController(loggedIn(t), rt.pipeline)
	rt.fill(t, c)
	require.NoError(t, c.SetPrimaryImage(2))

	require.NoError(t, c.Advance(context.Background()))
	result := c.Result()
	require.NotNil(t, result)

	got, err := rt.client.GetVenue(context.Background(), result.Venue.ID)
	require.NoError(t, err)
	assert.Equal(t, "Coliseo Las Delicias", got.Name)
	assert.Equal(t, "Cancha cubierta", got.Description)
	assert.Equal(t, "Av. Mariscal Sucre", got.Address)
	assert.InDelta(t, 9.3021, got.Latitude.Float64(), 1e-9)
	assert.InDelta(t, -75.3952, got.Longitude.Float64(), 1e-9)
	assert.InDelta(t, 45000, got.Price.Float64(), 1e-9)
	assert.Equal(t, 2500, got.Capacity)
	assert.Equal(t, 4, got.OwnerID)

	require.Len(t, got.Images, 3)
	primaries := 0
	for _, img := range got.Images {
		if img.Order == 0 {
			primaries++
			assert.Equal(t, sportzone.PrimaryImageLabel, img.Description)
		}
	}
	assert.Equal(t, 1, primaries)
	assert.Contains(t, got.CoverURL(), "/"+media.DefaultFolder+"/")
	assert.Len(t, rt.api.Assets(), 3)
}

func TestRoundTrip_AttachFailureLeavesNothingBehind(t *testing.T) {
	rt := newRoundTrip(t, 2)
	rt.api.InjectFault(http.MethodPost, mockapi.RouteVenueImages, http.StatusInternalServerError)

	c := NewController(loggedIn(t), rt.pipeline)
	rt.fill(t, c)

	err := c.Advance(context.Background())
	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, StageAttachImages, subErr.Stage)
	assert.True(t, subErr.Clean())

	assert.Empty(t, rt.api.Venues())
	assert.Empty(t, rt.api.Assets())
	assert.Equal(t, StepSummary, c.Step())
	assert.Equal(t, "Coliseo Las Delicias", c.Draft().Name)
}

func TestRoundTrip_CreateVenueFailureDestroysMedia(t *testing.T) {
	rt := newRoundTrip(t, 2)
	rt.api.InjectFault(http.MethodPost, mockapi.RouteCreateVenue, http.StatusServiceUnavailable)

	c := NewController(loggedIn(t), rt.pipeline)
	rt.fill(t, c)

	var subErr *SubmissionError
	require.ErrorAs(t, c.Advance(context.Background()), &subErr)
	assert.Equal(t, StageCreateVenue, subErr.Stage)
	assert.Empty(t, rt.api.Assets())
}
