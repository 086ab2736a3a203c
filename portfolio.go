package studio

import (
	"context"
	"fmt"
)

// ListPortfolios returns every portfolio visible to the caller. An empty
// slice is a valid result, not an error.
func (c *Client) ListPortfolios(ctx context.Context) ([]Portfolio, error) {
	var out []Portfolio
	if err := c.get(ctx, "/portfolios", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPortfolio retrieves one portfolio by id.
func (c *Client) GetPortfolio(ctx context.Context, id int64) (*Portfolio, error) {
	var out Portfolio
	if err := c.get(ctx, fmt.Sprintf("/portfolios/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePortfolio creates a portfolio owned by the calling student.
func (c *Client) CreatePortfolio(ctx context.Context, in PortfolioInput) (*Portfolio, error) {
	var out Portfolio
	if err := c.post(ctx, "/portfolios", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePortfolio replaces the mutable fields of a portfolio. Ownership is
// enforced server-side; the client's ownership check is a UX convenience.
func (c *Client) UpdatePortfolio(ctx context.Context, id int64, in PortfolioInput) (*Portfolio, error) {
	var out Portfolio
	if err := c.put(ctx, fmt.Sprintf("/portfolios/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePortfolio deletes a portfolio. The server cascades the delete to
// its projects, achievements, and feedback.
func (c *Client) DeletePortfolio(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/portfolios/%d", id))
}
