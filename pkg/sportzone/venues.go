package sportzone

import (
	"context"
	"fmt"
	"net/http"
)

// ListVenues returns every venue, including nested image records.
func (c *Client) ListVenues(ctx context.Context) ([]Venue, error) {
	var venues []Venue
	if err := c.do(ctx, http.MethodGet, "/escenario", nil, &venues); err != nil {
		return nil, err
	}
	return venues, nil
}

// GetVenue returns a single venue. Use IsNotFound to detect a missing id.
func (c *Client) GetVenue(ctx context.Context, id int) (*Venue, error) {
	var venue Venue
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/escenario/%d", id), nil, &venue); err != nil {
		return nil, err
	}
	return &venue, nil
}

// ListVenuesByOwner returns the venues managed by ownerID.
func (c *Client) ListVenuesByOwner(ctx context.Context, ownerID int) ([]Venue, error) {
	var venues []Venue
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/escenario/usuario/%d", ownerID), nil, &venues); err != nil {
		return nil, err
	}
	return venues, nil
}

// CreateVenue creates a venue and returns it with its server-assigned id.
func (c *Client) CreateVenue(ctx context.Context, in VenueInput) (*Venue, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid venue: %w", err)
	}

	var venue Venue
	if err := c.do(ctx, http.MethodPost, "/escenario/", in, &venue); err != nil {
		return nil, err
	}
	if venue.ID <= 0 {
		return nil, fmt.Errorf("create venue response did not include an id")
	}
	return &venue, nil
}

// UpdateVenue replaces the scalar fields of venue id.
func (c *Client) UpdateVenue(ctx context.Context, id int, in VenueInput) (*Venue, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid venue: %w", err)
	}

	var venue Venue
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/escenario/%d", id), in, &venue); err != nil {
		return nil, err
	}
	return &venue, nil
}

// DeleteVenue removes venue id.
func (c *Client) DeleteVenue(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/escenario/%d", id), nil, nil)
}

// CreateVenueImage attaches an uploaded media URL to a venue.
func (c *Client) CreateVenueImage(ctx context.Context, in VenueImageInput) (*VenueImage, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid venue image: %w", err)
	}

	var img VenueImage
	path := fmt.Sprintf("/escenario/%d/imagen", in.VenueID)
	if err := c.do(ctx, http.MethodPost, path, in, &img); err != nil {
		return nil, err
	}
	return &img, nil
}
