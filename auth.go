package studio

import "context"

// Login exchanges credentials for a session token. Bad credentials surface
// as an *APIError matching ErrUnauthorized; no token is issued.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.post(ctx, "/auth/login", nil, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account and returns its first session token. The
// chosen role is fixed for the lifetime of the account.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.post(ctx, "/auth/register", nil, reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
