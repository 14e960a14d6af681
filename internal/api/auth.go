package api

import (
	"context"
	"net/http"
)

// Register creates a new account. It does not establish a session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register/", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a bearer token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPairResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp TokenPairResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login/", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the session server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout/", nil, nil, nil)
}

// CurrentUser fetches the authenticated account's profile.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/users/me/", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
