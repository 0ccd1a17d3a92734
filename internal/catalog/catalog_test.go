package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexG0311/sportzone/pkg/sportzone"
)

type fakeLister struct {
	venues []sportzone.Venue
	err    error
}

func (f *fakeLister) ListVenues(ctx context.Context) ([]sportzone.Venue, error) {
	return f.venues, f.err
}

func (f *fakeLister) GetVenue(ctx context.Context, id int) (*sportzone.Venue, error) {
	for _, v := range f.venues {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, &sportzone.APIError{Status: 404}
}

func venues() []sportzone.Venue {
	return []sportzone.Venue{
		{ID: 3, Name: "Estadio Arturo Cumplido", Type: "Público", Address: "Calle 38", Price: 120000, Capacity: 8000, OwnerID: 2},
		{ID: 1, Name: "Coliseo Las Delicias", Type: "Público", Address: "Av. Mariscal Sucre", Price: 50000, Capacity: 2500, OwnerID: 1},
		{ID: 2, Name: "Cancha El Bosque", Type: "Privado", Address: "Barrio El Bosque", Price: 0, Capacity: 20, OwnerID: 1},
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   []int
	}{
		{name: "nil filter keeps all sorted by id", filter: nil, want: []int{1, 2, 3}},
		{name: "name substring", filter: &Filter{Search: "COLISEO"}, want: []int{1}},
		{name: "address substring", filter: &Filter{Search: "bosque"}, want: []int{2}},
		{name: "type substring", filter: &Filter{Search: "públ"}, want: []int{1, 3}},
		{name: "owner", filter: &Filter{OwnerID: 1}, want: []int{1, 2}},
		{name: "owner and search", filter: &Filter{OwnerID: 1, Search: "privado"}, want: []int{2}},
		{name: "no match", filter: &Filter{Search: "piscina"}, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterVenues(venues(), tt.filter)
			ids := []int{}
			for _, v := range got {
				ids = append(ids, v.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestListVenues_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ListVenues(context.Background(), &fakeLister{venues: venues()}, OutputFormatDefault, nil, &buf))

	out := buf.String()
	assert.Contains(t, out, "PRICE/H")
	assert.Contains(t, out, "$50,000")
	assert.Contains(t, out, "$120,000")
	assert.Contains(t, out, "3 venues found")

	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(lines[2], "1 "), "rows ordered by id")
}

func TestListVenues_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ListVenues(context.Background(), &fakeLister{venues: venues()}, OutputFormatJSON, &Filter{Search: "zzz"}, &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestListVenues_JSONL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ListVenues(context.Background(), &fakeLister{venues: venues()}, OutputFormatJSONL, nil, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	var v sportzone.Venue
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &v))
	assert.Equal(t, 1, v.ID)
}

func TestListVenues_Errors(t *testing.T) {
	var buf bytes.Buffer
	err := ListVenues(context.Background(), &fakeLister{err: errors.New("timeout")}, OutputFormatDefault, nil, &buf)
	assert.ErrorContains(t, err, "failed to load venues")

	err = ListVenues(context.Background(), &fakeLister{}, OutputFormat("xml"), nil, &buf)
	assert.ErrorContains(t, err, "unknown output format")
}

func TestListVenues_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ListVenues(context.Background(), &fakeLister{}, OutputFormatDefault, nil, &buf))
	assert.Equal(t, "No venues found\n", buf.String())
}

func TestShowVenue(t *testing.T) {
	lister := &fakeLister{venues: []sportzone.Venue{{
		ID:        1,
		Name:      "Coliseo",
		Latitude:  9.3021,
		Longitude: -75.3952,
		Price:     50000,
		Images: []sportzone.VenueImage{
			{URL: "https://cdn/extra.jpg", Order: 2},
			{URL: "https://cdn/cover.jpg", Order: 0},
		},
	}}}

	var buf bytes.Buffer
	require.NoError(t, ShowVenue(context.Background(), lister, "coliseo", OutputFormatDefault, &buf))
	out := buf.String()
	assert.Contains(t, out, "Coliseo (#1)")
	assert.Contains(t, out, "9.302100, -75.395200")
	assert.Contains(t, out, "* https://cdn/cover.jpg")
	assert.Less(t, strings.Index(out, "cover.jpg"), strings.Index(out, "extra.jpg"))

	buf.Reset()
	require.NoError(t, ShowVenue(context.Background(), lister, "1", OutputFormatJSON, &buf))
	var v sportzone.Venue
	require.NoError(t, json.Unmarshal(buf.Bytes(), &v))
	assert.Equal(t, "Coliseo", v.Name)
}

func TestReservationTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReservations(&buf, []sportzone.Reservation{
		{ID: 1, Date: "2025-10-28", Start: "09:00", End: "10:00", VenueID: 4},
		{ID: 2, Date: "2025-10-29", Start: "14:00", End: "15:30", Venue: &sportzone.VenueSummary{Name: "Coliseo"}, Status: &sportzone.StatusRef{Name: "Pendiente"}},
	}, OutputFormatDefault))

	out := buf.String()
	assert.Contains(t, out, "14:00-15:30")
	assert.Contains(t, out, "Pendiente")
	assert.Contains(t, out, "#4")
	assert.Less(t, strings.Index(out, "2025-10-29"), strings.Index(out, "2025-10-28"), "newest first")
}

func TestReportTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReports(&buf, []sportzone.Report{{
		ID:          1,
		Description: "\nMalla rota en el arco norte\nsegunda línea",
		ImageURL:    "https://cdn/r.jpg",
		ReportedAt:  "2025-10-29T14:00:00Z",
		User:        &sportzone.UserSummary{Name: "Ana"},
		Venue:       &sportzone.VenueSummary{Name: "Cancha"},
	}}, OutputFormatDefault))

	out := buf.String()
	assert.Contains(t, out, "Malla rota en el arco norte")
	assert.NotContains(t, out, "segunda")
	assert.Contains(t, out, "2025-10-29")
	assert.Contains(t, out, "yes")

	buf.Reset()
	require.NoError(t, WriteReports(&buf, nil, OutputFormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "-", FormatPrice(0))
	assert.Equal(t, "$999", FormatPrice(999))
	assert.Equal(t, "$1,000", FormatPrice(1000))
	assert.Equal(t, "$1,234,567", FormatPrice(1234567))

	assert.Equal(t, "Públ...", truncate("Público grande", 7))
	assert.Equal(t, "ñ  ", pad("ñ", 3))

	f, err := ParseOutputFormat("")
	require.NoError(t, err)
	assert.Equal(t, OutputFormatDefault, f)
	_, err = ParseOutputFormat("yaml")
	assert.Error(t, err)
}
