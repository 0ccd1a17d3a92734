// Package mockapi is an in-memory stand-in for the SportZone backend and the
// media host's upload API. It backs `sportzone mock-api` for offline
// development and the end-to-end tests of the CLI flows.
package mockapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AlexG0311/sportzone/internal/media"
	"github.com/AlexG0311/sportzone/pkg/sportzone"
)

// Route patterns accepted by InjectFault.
const (
	RouteLogin            = "/api/usuario/login"
	RouteRegister         = "/api/usuario/"
	RouteVenues           = "/api/escenario"
	RouteCreateVenue      = "/api/escenario/"
	RouteVenue            = "/api/escenario/:id"
	RouteVenuesByOwner    = "/api/escenario/usuario/:id"
	RouteVenueImages      = "/api/escenario/:id/imagen"
	RouteReservations     = "/api/reserva"
	RouteUserReservations = "/api/reserva/usuario/:id"
	RouteReports          = "/api/reportar"
	RouteVenueReports     = "/api/reportar/escenario/:id"
	RouteMediaUpload      = "/v1_1/:cloud/:resource/upload"
	RouteMediaDestroy     = "/v1_1/:cloud/:resource/destroy"
)

type storedUser struct {
	sportzone.User
	password string
}

// Server holds the in-memory state and the gin router.
type Server struct {
	mu sync.Mutex

	engine *gin.Engine
	logger *zap.Logger

	cloudName    string
	uploadPreset string

	nextID       map[string]int
	users        map[int]*storedUser
	venues       map[int]*sportzone.Venue
	reservations []sportzone.Reservation
	reports      []sportzone.Report
	assets       map[string]string // public id -> delivery URL
	faults       map[string]int    // "METHOD route" -> status
}

// Option configures a Server.
type Option func(*Server)

// WithLogger logs every request at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMediaAccount sets the cloud name and unsigned preset the media routes accept.
func WithMediaAccount(cloudName, uploadPreset string) Option {
	return func(s *Server) {
		s.cloudName = cloudName
		s.uploadPreset = uploadPreset
	}
}

// New creates an empty server.
func New(opts ...Option) *Server {
	s := &Server{
		logger:       zap.NewNop(),
		cloudName:    media.DefaultCloudName,
		uploadPreset: media.DefaultUploadPreset,
		nextID:       make(map[string]int),
		users:        make(map[int]*storedUser),
		venues:       make(map[int]*sportzone.Venue),
		assets:       make(map[string]string),
		faults:       make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", sportzone.RequestIDHeader},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(s.requestLogger())
	r.Use(s.faultInjector())

	s.registerBackendRoutes(r)
	s.registerMediaRoutes(r)
	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("mock API listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("mock API failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("mock API forced to shutdown: %w", err)
	}
	s.logger.Info("mock API stopped")
	return nil
}

// InjectFault makes every request matching method and route answer with status
// until ClearFaults is called.
func (s *Server) InjectFault(method, route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[method+" "+route] = status
}

// ClearFaults removes every injected fault.
func (s *Server) ClearFaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = make(map[string]int)
}

func (s *Server) faultInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		status, ok := s.faults[c.Request.Method+" "+c.FullPath()]
		s.mu.Unlock()
		if ok {
			c.AbortWithStatusJSON(status, gin.H{"message": "injected failure"})
			return
		}
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetHeader(sportzone.RequestIDHeader)),
		)
	}
}

// allocID returns the next id for kind. Caller holds s.mu.
func (s *Server) allocID(kind string) int {
	s.nextID[kind]++
	return s.nextID[kind]
}

// SeedUser stores an account directly.
func (s *Server) SeedUser(u sportzone.User, password string) sportzone.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.allocID("user")
	}
	s.users[u.ID] = &storedUser{User: u, password: password}
	return u
}

// SeedVenue stores a venue directly, bypassing validation.
func (s *Server) SeedVenue(v sportzone.Venue) sportzone.Venue {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID == 0 {
		v.ID = s.allocID("venue")
	}
	stored := v
	stored.Images = append([]sportzone.VenueImage(nil), v.Images...)
	s.venues[v.ID] = &stored
	return v
}

// Venues returns a copy of every stored venue ordered by id.
func (s *Server) Venues() []sportzone.Venue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedVenues(func(*sportzone.Venue) bool { return true })
}

// Assets returns the public ids of every uploaded media asset, sorted.
func (s *Server) Assets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.assets))
	for id := range s.assets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reports returns a copy of every stored report.
func (s *Server) Reports() []sportzone.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sportzone.Report(nil), s.reports...)
}

// Reservations returns a copy of every stored reservation.
func (s *Server) Reservations() []sportzone.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sportzone.Reservation(nil), s.reservations...)
}

// sortedVenues returns copies of the venues matching keep. Caller holds s.mu.
func (s *Server) sortedVenues(keep func(*sportzone.Venue) bool) []sportzone.Venue {
	out := make([]sportzone.Venue, 0, len(s.venues))
	for _, v := range s.venues {
		if keep(v) {
			cp := *v
			cp.Images = append([]sportzone.VenueImage(nil), v.Images...)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
