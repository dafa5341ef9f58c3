package api

import (
	"context"
	"net/http"

	"invoicectl/pkg/models"
)

// Login exchanges credentials for a token pair and persists it to the
// session, making the bearer visible to subsequent requests immediately.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var tok wireToken
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &tok); err != nil {
		return err
	}
	return c.session.SetTokens(tok.AccessToken, tok.RefreshToken)
}

// Register creates an account. It does not sign in; callers follow up with
// Login.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/auth/register", body, nil)
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var w wireUser
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &w); err != nil {
		return models.User{}, err
	}
	return fromWireUser(w), nil
}
