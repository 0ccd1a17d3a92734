// Package session holds the currently authenticated user.
//
// A Holder is created once per process and passed explicitly to every flow
// that attributes an action to a user. A Store optionally persists the user
// between CLI invocations.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/AlexG0311/sportzone/pkg/sportzone"
)

// ErrNotAuthenticated is returned when a flow needs a user and none is set.
var ErrNotAuthenticated = errors.New("not logged in")

// Holder is the process-wide session context. Readable by every flow,
// written only by login and logout.
type Holder struct {
	mu    sync.RWMutex
	user  *sportzone.User
	store Store
}

// NewHolder creates an empty holder backed by store. A nil store keeps the
// session in memory only.
func NewHolder(store Store) *Holder {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Holder{store: store}
}

// User returns a copy of the current user, or nil when logged out.
func (h *Holder) User() *sportzone.User {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.user == nil {
		return nil
	}
	u := *h.user
	return &u
}

// IsAuthenticated reports whether a user is set.
func (h *Holder) IsAuthenticated() bool {
	return h.User() != nil
}

// RequireUser returns the current user or ErrNotAuthenticated.
func (h *Holder) RequireUser() (*sportzone.User, error) {
	u := h.User()
	if u == nil || u.ID <= 0 {
		return nil, ErrNotAuthenticated
	}
	return u, nil
}

// Set stores user as the current session and persists it.
func (h *Holder) Set(ctx context.Context, user *sportzone.User) error {
	if user == nil || user.ID <= 0 {
		return fmt.Errorf("cannot start a session without a user id")
	}
	u := *user

	h.mu.Lock()
	h.user = &u
	h.mu.Unlock()

	if err := h.store.Save(ctx, &u); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Clear ends the session and removes it from the store.
func (h *Holder) Clear(ctx context.Context) error {
	h.mu.Lock()
	h.user = nil
	h.mu.Unlock()

	if err := h.store.Delete(ctx); err != nil {
		return fmt.Errorf("failed to clear persisted session: %w", err)
	}
	return nil
}

// Restore loads a previously persisted user. A missing session is not an error.
func (h *Holder) Restore(ctx context.Context) error {
	u, err := h.store.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return nil
		}
		return fmt.Errorf("failed to restore session: %w", err)
	}

	h.mu.Lock()
	h.user = u
	h.mu.Unlock()
	return nil
}
