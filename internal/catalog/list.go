// Package catalog lists and displays venues, reservations and reports.
package catalog

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/AlexG0311/sportzone/pkg/sportzone"
)

// OutputFormat specifies how listings are written.
type OutputFormat string

const (
	// OutputFormatDefault uses a table with truncated text columns
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSON writes a single indented JSON array
	OutputFormatJSON OutputFormat = "json"

	// OutputFormatJSONL writes one JSON object per line
	OutputFormatJSONL OutputFormat = "jsonl"
)

// ParseOutputFormat validates a --output value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case "", OutputFormatDefault:
		return OutputFormatDefault, nil
	case OutputFormatJSON, OutputFormatJSONL:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format: %s (must be default, json or jsonl)", s)
	}
}

// Filter narrows a venue listing. All set fields are ANDed together.
type Filter struct {
	Search  string // case-insensitive substring of name, address or type
	OwnerID int    // 0 = any owner
}

// Matches reports whether v passes the filter.
func (f *Filter) Matches(v *sportzone.Venue) bool {
	if f.OwnerID > 0 && v.OwnerID != f.OwnerID {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	for _, field := range []string{v.Name, v.Address, v.Type} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// VenueLister fetches venues.
type VenueLister interface {
	ListVenues(ctx context.Context) ([]sportzone.Venue, error)
}

// FilterVenues returns the venues matching filter, ordered by id.
func FilterVenues(venues []sportzone.Venue, filter *Filter) []sportzone.Venue {
	out := make([]sportzone.Venue, 0, len(venues))
	for i := range venues {
		if filter == nil || filter.Matches(&venues[i]) {
			out = append(out, venues[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListVenues fetches every venue, applies filter and writes the result to w.
func ListVenues(ctx context.Context, lister VenueLister, format OutputFormat, filter *Filter, w io.Writer) error {
	venues, err := lister.ListVenues(ctx)
	if err != nil {
		return fmt.Errorf("failed to load venues: %w", err)
	}
	return WriteVenues(w, FilterVenues(venues, filter), format)
}

// WriteVenues formats an already filtered listing.
func WriteVenues(w io.Writer, venues []sportzone.Venue, format OutputFormat) error {
	switch format {
	case OutputFormatDefault:
		FormatVenueTable(w, venues)
	case OutputFormatJSON:
		return FormatJSON(w, venues)
	case OutputFormatJSONL:
		return FormatJSONL(w, venues)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	return nil
}

// WriteReservations formats a reservation listing.
func WriteReservations(w io.Writer, reservations []sportzone.Reservation, format OutputFormat) error {
	if reservations == nil {
		reservations = []sportzone.Reservation{}
	}
	sort.SliceStable(reservations, func(i, j int) bool {
		if reservations[i].Date != reservations[j].Date {
			return reservations[i].Date > reservations[j].Date
		}
		return reservations[i].Start > reservations[j].Start
	})

	switch format {
	case OutputFormatDefault:
		FormatReservationTable(w, reservations)
	case OutputFormatJSON:
		return FormatJSON(w, reservations)
	case OutputFormatJSONL:
		return FormatJSONL(w, reservations)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	return nil
}

// WriteReports formats a report listing.
func WriteReports(w io.Writer, reports []sportzone.Report, format OutputFormat) error {
	if reports == nil {
		reports = []sportzone.Report{}
	}
	switch format {
	case OutputFormatDefault:
		FormatReportTable(w, reports)
	case OutputFormatJSON:
		return FormatJSON(w, reports)
	case OutputFormatJSONL:
		return FormatJSONL(w, reports)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	return nil
}
