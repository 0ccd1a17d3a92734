package resolver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/AlexG0311/sportzone/pkg/sportzone"
)

// MaxListedCandidates caps how many matches an ambiguity message lists.
const MaxListedCandidates = 10

// VenueSource is the part of the API client the resolver reads from.
type VenueSource interface {
	GetVenue(ctx context.Context, id int) (*sportzone.Venue, error)
	ListVenues(ctx context.Context) ([]sportzone.Venue, error)
}

// ResolveVenue turns a user-supplied reference into a venue.
//
// A numeric reference is looked up by id. Anything else is matched as a
// case-insensitive substring of venue names; an exact name match wins over
// substring matches.
func ResolveVenue(ctx context.Context, src VenueSource, ref string) (*sportzone.Venue, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("venue reference cannot be empty")
	}

	if id, err := strconv.Atoi(ref); err == nil {
		v, err := src.GetVenue(ctx, id)
		if err != nil {
			if sportzone.IsNotFound(err) {
				return nil, &NotFoundError{Ref: ref}
			}
			return nil, fmt.Errorf("failed to fetch venue %d: %w", id, err)
		}
		return v, nil
	}

	venues, err := src.ListVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search venues: %w", err)
	}

	needle := strings.ToLower(ref)
	var exact, partial []sportzone.Venue
	for _, v := range venues {
		name := strings.ToLower(v.Name)
		switch {
		case name == needle:
			exact = append(exact, v)
		case strings.Contains(name, needle):
			partial = append(partial, v)
		}
	}

	matches := exact
	if len(matches) == 0 {
		matches = partial
	}
	switch len(matches) {
	case 0:
		return nil, &NotFoundError{Ref: ref}
	case 1:
		return &matches[0], nil
	default:
		sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
		return nil, &AmbiguousError{Ref: ref, Matches: matches}
	}
}

// NotFoundError indicates no venue matched the reference.
type NotFoundError struct {
	Ref string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no venues found matching '%s'", e.Ref)
}

// AmbiguousError indicates several venues matched the reference.
type AmbiguousError struct {
	Ref     string
	Matches []sportzone.Venue
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous venue reference '%s' matches %d venues", e.Ref, len(e.Matches))
}

// FormatAmbiguousError lists the candidates (up to MaxListedCandidates, then
// "...and N more") with a hint to use the numeric id.
func FormatAmbiguousError(err *AmbiguousError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ambiguous venue reference '%s' matches %d venues:\n", err.Ref, len(err.Matches))

	shown := min(len(err.Matches), MaxListedCandidates)
	for _, v := range err.Matches[:shown] {
		fmt.Fprintf(&b, "  %d  %s\n", v.ID, v.Name)
	}
	if extra := len(err.Matches) - shown; extra > 0 {
		fmt.Fprintf(&b, "  ...and %d more\n", extra)
	}

	b.WriteString("\nUse the numeric id or a longer name to identify the venue.")
	return b.String()
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsAmbiguousError checks if an error is an AmbiguousError.
func IsAmbiguousError(err error) bool {
	var amb *AmbiguousError
	return errors.As(err, &amb)
}
