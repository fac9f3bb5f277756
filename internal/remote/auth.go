package remote

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Session is the token pair issued by the hosted auth service.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// SignInWithPassword performs the password grant against the hosted auth
// service. Credentials there are keyed by email, not username; the caller
// resolves username to email first.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "password").
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&session).
		Post("/auth/v1/token")
	if err != nil {
		return nil, fmt.Errorf("remote auth: %w", err)
	}
	if resp.IsError() {
		c.logger.Warn("remote auth rejected credentials",
			zap.String("email", email),
			zap.Int("status", resp.StatusCode()),
		)
		return nil, fmt.Errorf("remote auth: status %d", resp.StatusCode())
	}
	if session.AccessToken == "" {
		return nil, fmt.Errorf("remote auth: empty session")
	}
	return &session, nil
}

// SignUp registers credentials with the hosted auth service.
func (c *Client) SignUp(ctx context.Context, email, password string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		Post("/auth/v1/signup")
	if err != nil {
		return fmt.Errorf("remote signup: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("remote signup: status %d", resp.StatusCode())
	}
	return nil
}
