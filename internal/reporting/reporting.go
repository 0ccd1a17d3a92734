// Package reporting files damage reports against venues and gathers the
// reports received by a venue owner.
package reporting

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/AlexG0311/sportzone/internal/media"
	"github.com/AlexG0311/sportzone/internal/resolver"
	"github.com/AlexG0311/sportzone/internal/session"
	"github.com/AlexG0311/sportzone/pkg/sportzone"
)

// DefaultFolder is the media folder report photos are stored in.
const DefaultFolder = "reportes"

// Backend is the part of the API client reporting needs.
type Backend interface {
	resolver.VenueSource
	ListVenuesByOwner(ctx context.Context, ownerID int) ([]sportzone.Venue, error)
	CreateReport(ctx context.Context, in sportzone.ReportInput) (*sportzone.Report, error)
	ListReportsByVenue(ctx context.Context, venueID int) ([]sportzone.Report, error)
}

// Service files and lists reports.
type Service struct {
	backend  Backend
	uploader media.Uploader
	session  *session.Holder
	logger   *zap.Logger
}

// NewService creates a reporting service. uploader may be nil when photos are
// not supported.
func NewService(backend Backend, uploader media.Uploader, holder *session.Holder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, uploader: uploader, session: holder, logger: logger}
}

// Request is a report the user wants to file.
type Request struct {
	VenueRef    string
	Description string
	Photo       string // optional local path
}

// Report files req as the session user. The photo is uploaded first; if the
// report cannot be created the uploaded photo is deleted again.
func (s *Service) Report(ctx context.Context, req Request) (*sportzone.Report, error) {
	user, err := s.session.RequireUser()
	if err != nil {
		return nil, err
	}
	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		return nil, fmt.Errorf("please describe the problem")
	}

	venue, err := resolver.ResolveVenue(ctx, s.backend, req.VenueRef)
	if err != nil {
		return nil, err
	}

	var photoURL string
	if req.Photo != "" {
		if s.uploader == nil {
			return nil, fmt.Errorf("photo uploads are not configured")
		}
		asset, err := s.uploader.Upload(ctx, req.Photo)
		if err != nil {
			return nil, fmt.Errorf("failed to upload photo: %w", err)
		}
		photoURL = asset.URL
	}

	report, err := s.backend.CreateReport(ctx, sportzone.ReportInput{
		UserID:      user.ID,
		VenueID:     venue.ID,
		Description: desc,
		ImageURL:    photoURL,
	})
	if err != nil {
		if photoURL != "" {
			if derr := s.uploader.Destroy(context.WithoutCancel(ctx), photoURL); derr != nil {
				s.logger.Warn("report photo left on media host", zap.String("url", photoURL), zap.Error(derr))
			}
		}
		return nil, err
	}
	return report, nil
}

// ForVenue lists the reports filed against the venue named by ref.
func (s *Service) ForVenue(ctx context.Context, ref string) ([]sportzone.Report, error) {
	venue, err := resolver.ResolveVenue(ctx, s.backend, ref)
	if err != nil {
		return nil, err
	}
	return s.backend.ListReportsByVenue(ctx, venue.ID)
}

// OwnerReports collects the reports filed against every venue the session
// user manages, newest first. A venue whose reports cannot be fetched is
// skipped with a warning.
func (s *Service) OwnerReports(ctx context.Context) ([]sportzone.Report, error) {
	user, err := s.session.RequireUser()
	if err != nil {
		return nil, err
	}

	venues, err := s.backend.ListVenuesByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list your venues: %w", err)
	}

	var all []sportzone.Report
	for _, v := range venues {
		reports, err := s.backend.ListReportsByVenue(ctx, v.ID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Warn("skipping venue reports", zap.Int("venue_id", v.ID), zap.String("venue", v.Name), zap.Error(err))
			continue
		}
		for _, r := range reports {
			if r.Venue == nil {
				r.Venue = &sportzone.VenueSummary{ID: v.ID, Name: v.Name}
			}
			all = append(all, r)
		}
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].ReportedAt > all[j].ReportedAt })
	return all, nil
}
