// Package wizard drives the six-step venue creation flow: a draft is built up
// step by step, each step is validated before the next one is reachable, and
// the final step submits the draft through a Submitter.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/AlexG0311/sportzone/internal/session"
)

var (
	// ErrSubmitting is returned for any action attempted while a submission is in flight.
	ErrSubmitting = errors.New("a submission is already in progress")

	// ErrCompleted is returned once the draft has been submitted successfully.
	ErrCompleted = errors.New("the venue has already been created")
)

// ValidationError reports why the current step cannot be left.
type ValidationError struct {
	Step    Step
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Submitter persists a complete draft.
type Submitter interface {
	Submit(ctx context.Context, d *Draft) (*Submission, error)
}

// Controller owns the draft and the current step. All draft mutation goes
// through it.
type Controller struct {
	mu         sync.Mutex
	step       Step
	draft      *Draft
	submitting bool
	result     *Submission

	session   *session.Holder
	submitter Submitter
}

// NewController starts a wizard at the first step with an empty draft.
func NewController(holder *session.Holder, submitter Submitter) *Controller {
	return &Controller{
		step:      StepName,
		draft:     NewDraft(),
		session:   holder,
		submitter: submitter,
	}
}

// Step returns the current step.
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Progress returns the fraction of the wizard reached, step/6.
func (c *Controller) Progress() float64 {
	return float64(c.Step()) / float64(TotalSteps)
}

// Submitting reports whether a submission is in flight.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Draft returns a snapshot of the draft.
func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.draft.clone()
}

// Result returns the created venue after a successful submission.
func (c *Controller) Result() *Submission {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// mutate runs fn against the draft unless the wizard is busy or finished.
func (c *Controller) mutate(fn func(d *Draft) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.writableLocked(); err != nil {
		return err
	}
	return fn(c.draft)
}

func (c *Controller) writableLocked() error {
	if c.submitting {
		return ErrSubmitting
	}
	if c.result != nil {
		return ErrCompleted
	}
	return nil
}

// UpdateField sets a text field.
func (c *Controller) UpdateField(f Field, value string) error {
	return c.mutate(func(d *Draft) error { return d.set(f, value) })
}

// SetLocation records the venue coordinates.
func (c *Controller) SetLocation(lat, lng float64) error {
	return c.mutate(func(d *Draft) error { return d.SetLocation(lat, lng) })
}

// ClearLocation forgets the coordinates.
func (c *Controller) ClearLocation() error {
	return c.mutate(func(d *Draft) error {
		d.Location = nil
		return nil
	})
}

// AddImage appends a local image. The first image added is primary.
func (c *Controller) AddImage(ref string) error {
	return c.mutate(func(d *Draft) error { return d.addImage(ref) })
}

// SetPrimaryImage makes image i the only primary image.
func (c *Controller) SetPrimaryImage(i int) error {
	return c.mutate(func(d *Draft) error { return d.setPrimary(i) })
}

// RemoveImage drops image i.
func (c *Controller) RemoveImage(i int) error {
	return c.mutate(func(d *Draft) error { return d.removeImage(i) })
}

// Retreat moves to the previous step without validating. It does nothing on
// the first step.
func (c *Controller) Retreat() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.writableLocked(); err != nil {
		return err
	}
	if prev, ok := c.step.Prev(); ok {
		c.step = prev
	}
	return nil
}

// Advance validates the current step and moves forward. On the summary step it
// submits the draft; the wizard stays on the summary step if submission fails.
func (c *Controller) Advance(ctx context.Context) error {
	c.mu.Lock()
	if err := c.writableLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	if err := validateStep(c.step, c.draft); err != nil {
		c.mu.Unlock()
		return err
	}
	if next, ok := c.step.Next(); ok {
		c.step = next
		c.mu.Unlock()
		return nil
	}

	// Summary: every earlier step must still hold, since fields can be edited
	// from any step.
	for s := StepName; s < StepSummary; s++ {
		if err := validateStep(s, c.draft); err != nil {
			c.mu.Unlock()
			return err
		}
	}
	user, err := c.session.RequireUser()
	if err != nil {
		c.mu.Unlock()
		return &ValidationError{Step: StepSummary, Field: "owner", Message: "you must be logged in to create a venue", Err: err}
	}

	c.draft.normalizePrimary()
	draft := c.draft.clone()
	draft.OwnerID = user.ID
	c.submitting = true
	c.mu.Unlock()

	result, err := c.submitter.Submit(ctx, draft)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if err != nil {
		return err
	}
	c.result = result
	c.draft = NewDraft()
	return nil
}

func validateStep(s Step, d *Draft) error {
	fail := func(field, msg string) error {
		return &ValidationError{Step: s, Field: field, Message: msg}
	}

	switch s {
	case StepName:
		if strings.TrimSpace(d.Name) == "" {
			return fail(string(FieldName), "please enter the venue name")
		}
	case StepDescription:
		if strings.TrimSpace(d.Description) == "" {
			return fail(string(FieldDescription), "please enter a description")
		}
	case StepLocation:
		if strings.TrimSpace(d.Address) == "" {
			return fail(string(FieldAddress), "please enter the address")
		}
		if d.Location == nil {
			return fail("location", "please select a location on the map")
		}
	case StepPricing:
		if p, err := ParsePrice(d.Price); err != nil || p <= 0 {
			return fail(string(FieldPrice), "please enter a valid price greater than 0")
		}
		if n, err := ParseCapacity(d.Capacity); err != nil || n <= 0 {
			return fail(string(FieldCapacity), "please enter a valid capacity greater than 0")
		}
	case StepImages:
		if len(d.Images) == 0 {
			return fail("images", "please add at least one image")
		}
	case StepSummary:
	default:
		return fail("", "unknown step")
	}
	return nil
}
