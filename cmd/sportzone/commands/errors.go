package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/AlexG0311/sportzone/internal/booking"
	"github.com/AlexG0311/sportzone/internal/media"
	"github.com/AlexG0311/sportzone/internal/printer"
	"github.com/AlexG0311/sportzone/internal/resolver"
	"github.com/AlexG0311/sportzone/internal/session"
	"github.com/AlexG0311/sportzone/internal/wizard"
	"github.com/AlexG0311/sportzone/pkg/sportzone"
)

// shownError marks an error whose alert has already been printed.
type shownError struct {
	err error
}

func (e *shownError) Error() string { return e.err.Error() }
func (e *shownError) Unwrap() error { return e.err }

func alert(title, explanation string, suggestions []string) error {
	return &shownError{err: printer.Error(title, explanation, suggestions)}
}

func alertWithContext(title, explanation string, details map[string]string, suggestions []string) error {
	return &shownError{err: printer.ErrorWithContext(title, explanation, details, suggestions)}
}

// fail prints one alert for err that names the failed action and returns the
// error Cobra reports through the exit code.
func fail(action string, err error) error {
	var (
		validation *wizard.ValidationError
		submission *wizard.SubmissionError
		apiErr     *sportzone.APIError
		notFound   *resolver.NotFoundError
		ambiguous  *resolver.AmbiguousError
	)

	switch {
	case errors.As(err, &submission):
		ctx := map[string]string{
			"failed at": string(submission.Stage),
			"cleanup":   wizard.DescribeCleanup(err),
		}
		if submission.VenueID > 0 {
			ctx["venue id"] = strconv.Itoa(submission.VenueID)
		}
		suggestions := []string{"Check your connection and submit again; the draft was kept"}
		if !submission.Clean() {
			suggestions = append(suggestions, "Remove the leftovers listed above by hand ('sportzone venue delete <id>')")
		}
		return alertWithContext(action+" failed", submission.Err.Error(), ctx, suggestions)

	case errors.Is(err, context.Canceled):
		return alert(action+" cancelled", "The command was interrupted before it finished.", nil)

	case errors.As(err, &validation):
		ctx := map[string]string{"step": validation.Step.String()}
		if validation.Field != "" {
			ctx["field"] = validation.Field
		}
		if errors.Is(err, session.ErrNotAuthenticated) {
			return alertWithContext("login required", validation.Message, ctx,
				[]string{"Log in first:\n  sportzone login --email you@example.com"})
		}
		return alertWithContext("invalid "+strings.ToLower(validation.Step.String()), validation.Message, ctx, nil)

	case errors.Is(err, session.ErrNotAuthenticated):
		return alert("login required", fmt.Sprintf("You must be logged in to %s.", action),
			[]string{"Log in first:\n  sportzone login --email you@example.com"})

	case errors.Is(err, sportzone.ErrInvalidCredentials):
		return alert("invalid credentials", "The email or password is incorrect.",
			[]string{"Check the email and password and try again"})

	case errors.Is(err, booking.ErrRejected):
		return alert("reservation rejected", err.Error(),
			[]string{"Pick another time slot:\n  sportzone reserve <venue> --date YYYY-MM-DD --start HH:MM --end HH:MM"})

	case errors.Is(err, media.ErrDestroyUnsupported):
		return alert(action+" failed", err.Error(),
			[]string{"Set SPORTZONE_MEDIA_API_KEY and SPORTZONE_MEDIA_API_SECRET"})

	case errors.As(err, &ambiguous):
		return alert("ambiguous venue", resolver.FormatAmbiguousError(ambiguous),
			[]string{"Use the venue id or a longer part of the name"})

	case errors.As(err, &notFound):
		return alert("venue not found", err.Error(),
			[]string{"List venues:\n  sportzone venue list --search <text>"})

	case errors.As(err, &apiErr):
		explanation := apiErr.Message
		if explanation == "" {
			explanation = http.StatusText(apiErr.Status)
		}
		return alertWithContext(action+" failed", explanation,
			map[string]string{
				"request": apiErr.Method + " " + apiErr.Path,
				"status":  strconv.Itoa(apiErr.Status),
			}, nil)

	case isNetworkError(err):
		return alert("network error", fmt.Sprintf("Could not %s: %v", action, err),
			[]string{"Check your connection and the api.base_url setting", "Try again in a moment"})
	}

	return alert(action+" failed", err.Error(), nil)
}

func isNetworkError(err error) bool {
	var urlErr *url.Error
	var netErr net.Error
	return errors.As(err, &urlErr) || errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded)
}
