package sportzone

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Login authenticates and returns the user record used to populate the session.
// Any non-success status is reported as ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, creds Credentials) (*User, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	var user User
	err := c.do(ctx, http.MethodPost, "/usuario/login", creds, &user)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, apiErr.Error())
		}
		return nil, err
	}
	if user.ID <= 0 {
		return nil, fmt.Errorf("login response did not include a user id")
	}
	return &user, nil
}

// Register creates an account. The registration is normalized and validated
// before any request is made.
func (c *Client) Register(ctx context.Context, reg Registration) (*User, error) {
	reg.Normalize()
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	var user User
	if err := c.do(ctx, http.MethodPost, "/usuario/", reg, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
