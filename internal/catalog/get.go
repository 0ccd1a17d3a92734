package catalog

import (
	"context"
	"io"

	"github.com/AlexG0311/sportzone/internal/resolver"
)

// ShowVenue resolves ref and writes the venue in the requested format.
// OutputFormatJSONL is treated like OutputFormatJSON.
func ShowVenue(ctx context.Context, src resolver.VenueSource, ref string, format OutputFormat, w io.Writer) error {
	venue, err := resolver.ResolveVenue(ctx, src, ref)
	if err != nil {
		return err
	}

	if format == OutputFormatJSON || format == OutputFormatJSONL {
		return FormatJSON(w, venue)
	}
	FormatVenueDetail(w, venue)
	return nil
}
