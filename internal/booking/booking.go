// Package booking prices and places venue reservations for the logged-in user.
package booking

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/AlexG0311/sportzone/internal/resolver"
	"github.com/AlexG0311/sportzone/internal/session"
	"github.com/AlexG0311/sportzone/internal/timespec"
	"github.com/AlexG0311/sportzone/pkg/sportzone"
)

// FallbackHourlyPrice is charged when a venue has no usable price.
const FallbackHourlyPrice = 1000

// ErrRejected wraps a reservation the backend declined with success=false.
var ErrRejected = errors.New("reservation rejected")

// Quote is the price shown before confirming a reservation.
type Quote struct {
	Hourly   float64
	Hours    float64
	Total    float64
	Fallback bool // Hourly is FallbackHourlyPrice
}

// Estimate prices slot at hourly. A non-positive hourly price falls back to
// FallbackHourlyPrice.
func Estimate(hourly float64, slot timespec.Slot) Quote {
	q := Quote{Hourly: hourly, Hours: slot.Hours()}
	if hourly <= 0 {
		q.Hourly = FallbackHourlyPrice
		q.Fallback = true
	}
	q.Total = q.Hourly * q.Hours
	return q
}

// Backend is the part of the API client reservations need.
type Backend interface {
	resolver.VenueSource
	CreateReservation(ctx context.Context, in sportzone.ReservationInput) (*sportzone.ReservationResult, error)
	ListReservationsByUser(ctx context.Context, userID int) ([]sportzone.Reservation, error)
}

// Service places reservations on behalf of the session user.
type Service struct {
	backend Backend
	session *session.Holder
	logger  *zap.Logger
}

// NewService creates a reservation service.
func NewService(backend Backend, holder *session.Holder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, session: holder, logger: logger}
}

// Request is a reservation the user asked for.
type Request struct {
	VenueRef string
	Date     string
	Start    string
	End      string
}

// Plan is a validated request ready to be confirmed.
type Plan struct {
	Venue *sportzone.Venue
	Slot  timespec.Slot
	Quote Quote
	User  *sportzone.User
}

// Prepare validates req, resolves the venue and prices the slot without
// contacting the reservation endpoint.
func (s *Service) Prepare(ctx context.Context, req Request) (*Plan, error) {
	user, err := s.session.RequireUser()
	if err != nil {
		return nil, err
	}

	slot, err := timespec.ParseSlot(req.Date, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	venue, err := resolver.ResolveVenue(ctx, s.backend, req.VenueRef)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Venue: venue,
		Slot:  slot,
		Quote: Estimate(venue.Price.Float64(), slot),
		User:  user,
	}, nil
}

// Confirm submits plan. A success=false answer is returned as ErrRejected with
// the backend's message.
func (s *Service) Confirm(ctx context.Context, plan *Plan) (*sportzone.Reservation, error) {
	in := sportzone.ReservationInput{
		Date:     plan.Slot.DateString(),
		Start:    plan.Slot.StartString(),
		End:      plan.Slot.EndString(),
		VenueID:  plan.Venue.ID,
		UserID:   plan.User.ID,
		StatusID: sportzone.ReservationStatusPending,
	}

	result, err := s.backend.CreateReservation(ctx, in)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		msg := result.Message
		if msg == "" {
			msg = "the venue is not available for the selected time"
		}
		s.logger.Debug("reservation rejected", zap.Int("venue_id", in.VenueID), zap.String("message", msg))
		return nil, fmt.Errorf("%w: %s", ErrRejected, msg)
	}
	if result.Data == nil {
		return &sportzone.Reservation{VenueID: in.VenueID, UserID: in.UserID, Date: in.Date, Start: in.Start, End: in.End, StatusID: in.StatusID}, nil
	}
	return result.Data, nil
}

// Reserve prepares and confirms req in one call.
func (s *Service) Reserve(ctx context.Context, req Request) (*sportzone.Reservation, *Plan, error) {
	plan, err := s.Prepare(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	res, err := s.Confirm(ctx, plan)
	if err != nil {
		return nil, plan, err
	}
	return res, plan, nil
}

// Mine lists the session user's reservations.
func (s *Service) Mine(ctx context.Context) ([]sportzone.Reservation, error) {
	user, err := s.session.RequireUser()
	if err != nil {
		return nil, err
	}
	return s.backend.ListReservationsByUser(ctx, user.ID)
}
