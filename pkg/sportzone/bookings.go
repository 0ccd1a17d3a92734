package sportzone

import (
	"context"
	"fmt"
	"net/http"
)

// CreateReservation requests a reservation. The backend answers with a
// success envelope; a 2xx response with Success=false is returned as-is so the
// caller can surface Message.
func (c *Client) CreateReservation(ctx context.Context, in ReservationInput) (*ReservationResult, error) {
	if in.StatusID == 0 {
		in.StatusID = ReservationStatusPending
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid reservation: %w", err)
	}

	var result ReservationResult
	if err := c.do(ctx, http.MethodPost, "/reserva", in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListReservationsByUser returns the reservations made by userID.
func (c *Client) ListReservationsByUser(ctx context.Context, userID int) ([]Reservation, error) {
	var reservations []Reservation
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/reserva/usuario/%d", userID), nil, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// CreateReport files a damage report.
func (c *Client) CreateReport(ctx context.Context, in ReportInput) (*Report, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid report: %w", err)
	}

	var report Report
	if err := c.do(ctx, http.MethodPost, "/reportar", in, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// ListReportsByVenue returns the reports filed against venueID.
func (c *Client) ListReportsByVenue(ctx context.Context, venueID int) ([]Report, error) {
	var reports []Report
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/reportar/escenario/%d", venueID), nil, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}
