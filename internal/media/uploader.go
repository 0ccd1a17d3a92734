// Package media uploads images to the third-party media host and returns the
// permanent URL that is persisted in subsequent backend calls.
package media

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// ErrDestroyUnsupported is returned when the uploader has no API credentials
// and therefore cannot delete assets it uploaded with an unsigned preset.
var ErrDestroyUnsupported = errors.New("media host credentials not configured: cannot delete uploaded assets")

// Asset is an uploaded file.
type Asset struct {
	URL      string // permanent secure URL
	PublicID string
}

// Uploader uploads local files and deletes previously uploaded ones.
type Uploader interface {
	// Upload sends the local file at ref and returns the hosted asset.
	Upload(ctx context.Context, ref string) (*Asset, error)

	// Destroy deletes the asset behind a URL returned by Upload.
	Destroy(ctx context.Context, assetURL string) error
}

var versionSegment = regexp.MustCompile(`^v[0-9]+$`)

// PublicIDFromURL extracts the public id from a delivery URL such as
// https://res.cloudinary.com/demo/image/upload/v1712/escenarios/abc.jpg
// (yielding "escenarios/abc").
func PublicIDFromURL(assetURL string) (string, error) {
	u, err := url.Parse(assetURL)
	if err != nil {
		return "", fmt.Errorf("invalid asset URL: %w", err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	idx := -1
	for i, p := range parts {
		if p == "upload" {
			idx = i
			break
		}
	}
	if idx < 0 || idx == len(parts)-1 {
		return "", fmt.Errorf("invalid media URL format: %s", assetURL)
	}

	rest := parts[idx+1:]
	if len(rest) > 1 && versionSegment.MatchString(rest[0]) {
		rest = rest[1:]
	}

	joined := path.Join(rest...)
	return strings.TrimSuffix(joined, path.Ext(joined)), nil
}
