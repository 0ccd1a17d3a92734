package sportzone

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest captures what the fake backend received.
type recordedRequest struct {
	Method    string
	Path      string
	Body      map[string]any
	RequestID string
}

func newTestServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request, rec recordedRequest)) (*Client, *[]recordedRequest) {
	t.Helper()

	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			RequestID: r.Header.Get(RequestIDHeader),
		}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &rec.Body)
		}
		requests = append(requests, rec)
		handler(w, r, rec)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL + "/api")
	require.NoError(t, err)
	return client, &requests
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewClient(t *testing.T) {
	t.Run("rejects empty base URL", func(t *testing.T) {
		_, err := NewClient("  ")
		assert.Error(t, err)
	})

	t.Run("rejects relative base URL", func(t *testing.T) {
		_, err := NewClient("api/escenario")
		assert.Error(t, err)
	})

	t.Run("trims trailing slash", func(t *testing.T) {
		c, err := NewClient("http://localhost:4000/api/")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:4000/api", c.BaseURL())
	})
}

func TestLogin(t *testing.T) {
	t.Run("returns user on success", func(t *testing.T) {
		client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request, rec recordedRequest) {
			writeJSON(w, http.StatusOK, User{ID: 4, Email: "ana@example.com", Name: "Ana"})
		})

		user, err := client.Login(context.Background(), Credentials{Email: "ana@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, 4, user.ID)
		assert.Equal(t, "Ana", user.DisplayName())

		require.Len(t, *reqs, 1)
		got := (*reqs)[0]
		assert.Equal(t, http.MethodPost, got.Method)
		assert.Equal(t, "/api/usuario/login", got.Path)
		assert.Equal(t, "secret1", got.Body["contrasena"])
		assert.NotEmpty(t, got.RequestID)
	})

	t.Run("maps any non-success status to invalid credentials", func(t *testing.T) {
		client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request, rec recordedRequest) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Credenciales inválidas"})
		})

		_, err := client.Login(context.Background(), Credentials{Email: "ana@example.com", Password: "wrong"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidCredentials))
	})

	t.Run("empty fields never reach the network", func(t *testing.T) {
		client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request, rec recordedRequest) {
			t.Fatal("unexpected request")
		})

		_, err := client.Login(context.Background(), Credentials{Email: "", Password: "x"})
		assert.Error(t, err)
		assert.Empty(t, *reqs)
	})
}

func TestRegister_NormalizesPayload(t *testing.T) {
	client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request, rec recordedRequest) {
		writeJSON(w, http.StatusCreated, User{ID: 9, Email: "ana@example.com"})
	})

	_, err := client.Register(context.Background(), Registration{
		Name:     " Ana ",
		Email:    "ANA@example.com",
		Password: "secret1",
		Confirm:  "secret1",
		Phone:    "3001234567",
	})
	require.NoError(t, err)

	require.Len(t, *reqs, 1)
	body := (*reqs)[0].Body
	assert.Equal(t, "/api/usuario/", (*reqs)[0].Path)
	assert.Equal(t, "Ana", body["nombre"])
	assert.Equal(t, "ana@example.com", body["email"])
	assert.EqualValues(t, RoleUser, body["rolId"])
	assert.NotContains(t, body, "Confirm")
}

func TestGetVenue(t *testing.T) {
	t.Run("decodes venue", func(t *testing.T) {
		client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request, rec recordedRequest) {
			assert.Equal(t, "/api/escenario/12", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"id":12,"nombre":"Estadio","precio":"1500.5","capacidad":100,"latitud":9.3,"longitud":-75.4}`)
		})

		v, err := client.GetVenue(context.Background(), 12)
		require.NoError(t, err)
		assert.Equal(t, "Estadio", v.Name)
		assert.InDelta(t, 1500.5, v.Price.Float64(), 1e-9)
	})

	t.Run("not found", func(t *testing.T) {
		client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request, rec recordedRequest) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Escenario no encontrado"})
		})

		_, err := client.GetVenue(context.Background(), 99)
		require.Error(t, err)
		assert.True(t, IsNotFound(err))

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "Escenario no encontrado", apiErr.Message)
	})
}

func TestCreateVenue(t *testing.T) {
	t.Run("sends scalar fields and returns server id", func(t *testing.T) {
		client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request, rec recordedRequest) {
			writeJSON(w, http.StatusCreated, map[string]any{"id": 31, "nombre": rec.Body["nombre"]})
		})

		v, err := client.CreateVenue(context.Background(), VenueInput{
			Name:        "Cancha",
			Type:        VenueTypePublic,
			Description: "Sintética",
			Address:     "Calle 1",
			Latitude:    9.3,
			Longitude:   -75.4,
			Price:       50000,
			Capacity:    20,
			StatusID:    VenueStatusAvailable,
			OwnerID:     4,
		})
		require.NoError(t, err)
		assert.Equal(t, 31, v.ID)

		body := (*reqs)[0].Body
		assert.Equal(t, http.MethodPost, (*reqs)[0].Method)
		assert.Equal(t, "/api/escenario/", (*reqs)[0].Path)
		assert.EqualValues(t, 50000, body["precio"])
		assert.EqualValues(t, 20, body["capacidad"])
		assert.EqualValues(t, 1, body["estadoId"])
		assert.EqualValues(t, 4, body["encargadoId"])
		assert.Equal(t, VenueTypePublic, body["tipo"])
	})

	t.Run("missing id in response is an error", func(t *testing.T) {
		client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request, rec recordedRequest) {
			writeJSON(w, http.StatusCreated, map[string]any{})
		})

		_, err := client.CreateVenue(context.Background(), VenueInput{
			Name: "a", Description: "b", Address: "c", Price: 1, Capacity: 1, OwnerID: 1,
		})
		assert.ErrorContains(t, err, "did not include an id")
	})
}

func TestDeleteVenue(t *testing.T) {
	var calls int32
	client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request, rec recordedRequest) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteVenue(context.Background(), 5))
	assert.Equal(t, http.MethodDelete, (*reqs)[0].Method)
	assert.Equal(t, "/api/escenario/5", (*reqs)[0].Path)
}

func TestCreateVenueImage_PostsToVenuePath(t *testing.T) {
	client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request, rec recordedRequest) {
		writeJSON(w, http.StatusCreated, VenueImage{ID: 1, URL: "https://cdn/a.jpg", Order: 0})
	})

	_, err := client.CreateVenueImage(context.Background(), VenueImageInput{
		VenueID:     8,
		URL:         "https://cdn/a.jpg",
		Description: PrimaryImageLabel,
		Order:       0,
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/escenario/8/imagen", (*reqs)[0].Path)
	assert.Equal(t, PrimaryImageLabel, (*reqs)[0].Body["descripcion"])
}

func TestCreateReservation(t *testing.T) {
	t.Run("defaults to pending status", func(t *testing.T) {
		client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request, rec recordedRequest) {
			writeJSON(w, http.StatusCreated, ReservationResult{Success: true, Data: &Reservation{ID: 2}})
		})

		res, err := client.CreateReservation(context.Background(), ReservationInput{
			Date: "2025-10-29", Start: "14:00", End: "15:30", VenueID: 3, UserID: 4,
		})
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, 2, res.Data.ID)
		assert.EqualValues(t, ReservationStatusPending, (*reqs)[0].Body["estadoId"])
		assert.Equal(t, "14:00", (*reqs)[0].Body["horaInicio"])
	})

	t.Run("unsuccessful envelope is returned to the caller", func(t *testing.T) {
		client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request, rec recordedRequest) {
			writeJSON(w, http.StatusOK, ReservationResult{Success: false, Message: "Horario ocupado"})
		})

		res, err := client.CreateReservation(context.Background(), ReservationInput{
			Date: "2025-10-29", Start: "14:00", End: "15:30", VenueID: 3, UserID: 4,
		})
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "Horario ocupado", res.Message)
	})
}

func TestListReportsByVenue(t *testing.T) {
	client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request, rec recordedRequest) {
		writeJSON(w, http.StatusOK, []Report{{
			ID:          1,
			Description: "Malla rota",
			User:        &UserSummary{ID: 2, Name: "Ana"},
			Venue:       &VenueSummary{ID: 6, Name: "Cancha"},
		}})
	})

	reports, err := client.ListReportsByVenue(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "Ana", reports[0].User.Name)
	assert.Equal(t, "/api/reportar/escenario/6", (*reqs)[0].Path)
}

func TestTransportErrorIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, err := NewClient(url)
	require.NoError(t, err)

	_, err = client.ListVenues(context.Background())
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "GET /escenario")
}
