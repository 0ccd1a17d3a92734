package wizard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AlexG0311/sportzone/internal/media"
	"github.com/AlexG0311/sportzone/pkg/sportzone"
)

// DefaultUploadConcurrency bounds parallel uploads and image-record writes.
const DefaultUploadConcurrency = 4

const compensationTimeout = 30 * time.Second

// Stage names the part of a submission that failed.
type Stage string

const (
	StageUpload       Stage = "upload images"
	StageCreateVenue  Stage = "create venue"
	StageAttachImages Stage = "attach images"
)

// SubmissionError reports a failed submission and what was rolled back.
type SubmissionError struct {
	Stage Stage
	Err   error

	// VenueID is set when the venue was created before the failure.
	VenueID int
	// CompensationErrs lists rollback steps that themselves failed. Assets or
	// records named here were left behind.
	CompensationErrs []error
}

func (e *SubmissionError) Error() string {
	msg := fmt.Sprintf("failed to %s: %v", e.Stage, e.Err)
	if len(e.CompensationErrs) > 0 {
		msg += fmt.Sprintf(" (cleanup incomplete: %d step(s) failed)", len(e.CompensationErrs))
	}
	return msg
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// Clean reports whether every rollback step succeeded.
func (e *SubmissionError) Clean() bool { return len(e.CompensationErrs) == 0 }

// Submission is the outcome of a successful submit.
type Submission struct {
	Venue  *sportzone.Venue
	Images []sportzone.VenueImage
}

// VenueBackend is the subset of the API client the pipeline needs.
type VenueBackend interface {
	CreateVenue(ctx context.Context, in sportzone.VenueInput) (*sportzone.Venue, error)
	CreateVenueImage(ctx context.Context, in sportzone.VenueImageInput) (*sportzone.VenueImage, error)
	DeleteVenue(ctx context.Context, id int) error
}

// UploadedImage is a draft image after upload.
type UploadedImage struct {
	URL     string
	Primary bool
}

// Pipeline submits a draft: upload every image, create the venue, then attach
// one image record per uploaded URL. A failure rolls back what was created.
type Pipeline struct {
	backend     VenueBackend
	uploader    media.Uploader
	logger      *zap.Logger
	concurrency int
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithConcurrency bounds parallel uploads.
func WithConcurrency(n int) PipelineOption {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithPipelineLogger sets the logger used for rollback warnings.
func WithPipelineLogger(l *zap.Logger) PipelineOption {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPipeline creates a submission pipeline.
func NewPipeline(backend VenueBackend, uploader media.Uploader, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		backend:     backend,
		uploader:    uploader,
		logger:      zap.NewNop(),
		concurrency: DefaultUploadConcurrency,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit persists d. The draft is not modified.
func (p *Pipeline) Submit(ctx context.Context, d *Draft) (*Submission, error) {
	input, err := d.Input()
	if err != nil {
		return nil, fmt.Errorf("draft is not complete: %w", err)
	}
	if len(d.Images) == 0 {
		return nil, fmt.Errorf("draft is not complete: no images")
	}

	uploaded, err := p.uploadAll(ctx, d.Images)
	if err != nil {
		subErr := &SubmissionError{Stage: StageUpload, Err: err}
		subErr.CompensationErrs = p.destroyAssets(ctx, urlsOf(uploaded))
		return nil, subErr
	}

	urls := urlsOf(uploaded)

	venue, err := p.backend.CreateVenue(ctx, input)
	if err != nil {
		subErr := &SubmissionError{Stage: StageCreateVenue, Err: err}
		subErr.CompensationErrs = p.destroyAssets(ctx, urls)
		return nil, subErr
	}

	images, err := p.attachAll(ctx, BuildImageRecords(venue.ID, uploaded))
	if err != nil {
		subErr := &SubmissionError{Stage: StageAttachImages, Err: err, VenueID: venue.ID}
		subErr.CompensationErrs = p.rollbackVenue(ctx, venue.ID, urls)
		return nil, subErr
	}

	venue.Images = images
	return &Submission{Venue: venue, Images: images}, nil
}

// uploadAll uploads every image concurrently. On failure it returns the
// successfully uploaded URLs alongside the first error; on success the
// returned slice is in draft order.
func (p *Pipeline) uploadAll(ctx context.Context, images []DraftImage) ([]UploadedImage, error) {
	results := make([]*media.Asset, len(images))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, img := range images {
		g.Go(func() error {
			asset, err := p.uploader.Upload(gctx, img.Ref)
			if err != nil {
				return fmt.Errorf("image %d (%s): %w", i+1, img.Ref, err)
			}
			results[i] = asset
			return nil
		})
	}
	err := g.Wait()

	uploaded := make([]UploadedImage, 0, len(images))
	for i, asset := range results {
		if asset == nil {
			continue
		}
		uploaded = append(uploaded, UploadedImage{URL: asset.URL, Primary: images[i].Primary})
	}
	return uploaded, err
}

// BuildImageRecords labels and orders uploaded images for venueID. The primary
// image gets order 0; every other image gets its draft position plus one.
func BuildImageRecords(venueID int, uploaded []UploadedImage) []sportzone.VenueImageInput {
	records := make([]sportzone.VenueImageInput, len(uploaded))
	for i, img := range uploaded {
		rec := sportzone.VenueImageInput{
			VenueID:     venueID,
			URL:         img.URL,
			Description: sportzone.AdditionalImageLabel,
			Order:       i + 1,
		}
		if img.Primary {
			rec.Description = sportzone.PrimaryImageLabel
			rec.Order = 0
		}
		records[i] = rec
	}
	return records
}

func (p *Pipeline) attachAll(ctx context.Context, records []sportzone.VenueImageInput) ([]sportzone.VenueImage, error) {
	created := make([]sportzone.VenueImage, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, rec := range records {
		g.Go(func() error {
			img, err := p.backend.CreateVenueImage(gctx, rec)
			if err != nil {
				return fmt.Errorf("image record %d: %w", i+1, err)
			}
			created[i] = *img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(created, func(i, j int) bool { return created[i].Order < created[j].Order })
	return created, nil
}

// compensationContext survives cancellation of the submit context so a
// Ctrl-C during upload still rolls back.
func compensationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
}

func urlsOf(images []UploadedImage) []string {
	urls := make([]string, len(images))
	for i, img := range images {
		urls[i] = img.URL
	}
	return urls
}

// destroyAssets deletes uploaded media concurrently and returns every failure.
func (p *Pipeline) destroyAssets(ctx context.Context, urls []string) []error {
	if len(urls) == 0 {
		return nil
	}
	cctx, cancel := compensationContext(ctx)
	defer cancel()

	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)
	for _, u := range urls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.uploader.Destroy(cctx, u); err != nil {
				p.logger.Warn("uploaded image left on media host", zap.String("url", u), zap.Error(err))
				mu.Lock()
				errs = append(errs, fmt.Errorf("destroy %s: %w", u, err))
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return errs
}

// rollbackVenue deletes the created venue and its uploaded media.
func (p *Pipeline) rollbackVenue(ctx context.Context, venueID int, urls []string) []error {
	var errs []error

	cctx, cancel := compensationContext(ctx)
	if err := p.backend.DeleteVenue(cctx, venueID); err != nil {
		p.logger.Warn("partially created venue left on backend", zap.Int("venue_id", venueID), zap.Error(err))
		errs = append(errs, fmt.Errorf("delete venue %d: %w", venueID, err))
	}
	cancel()

	return append(errs, p.destroyAssets(ctx, urls)...)
}

// DescribeCleanup renders the rollback outcome of err for the user.
func DescribeCleanup(err error) string {
	var subErr *SubmissionError
	if !errors.As(err, &subErr) {
		return ""
	}
	if subErr.Clean() {
		return "no partial data was left behind"
	}
	lines := make([]string, 0, len(subErr.CompensationErrs))
	for _, e := range subErr.CompensationErrs {
		lines = append(lines, "  - "+e.Error())
	}
	return "cleanup incomplete:\n" + strings.Join(lines, "\n")
}
