package api

import (
	"context"
	"net/http"
)

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login exchanges credentials for a bearer token and stores it in the
// fallback source so later calls outside a cookie-bearing request still
// authenticate.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}

	if err := c.tokens.SetToken(ctx, resp.Token); err != nil {
		c.log.WithError(err).Warn("failed to persist auth token")
	}
	return &resp, nil
}

// Logout tells the backend to invalidate the session and drops the stored
// token regardless of whether the backend call succeeded.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)

	if clearErr := c.tokens.ClearToken(ctx); clearErr != nil {
		c.log.WithError(clearErr).Warn("failed to clear stored auth token")
	}
	return err
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
