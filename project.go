package studio

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetProject retrieves one project by id.
func (c *Client) GetProject(ctx context.Context, id int64) (*Project, error) {
	var out Project
	if err := c.get(ctx, fmt.Sprintf("/projects/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProjectsByPortfolio returns the projects of one portfolio.
func (c *Client) ListProjectsByPortfolio(ctx context.Context, portfolioID int64) ([]Project, error) {
	var out []Project
	if err := c.get(ctx, fmt.Sprintf("/projects/portfolio/%d", portfolioID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProject adds a project to the given portfolio.
func (c *Client) CreateProject(ctx context.Context, portfolioID int64, in ProjectInput) (*Project, error) {
	query := url.Values{"portfolioId": []string{strconv.FormatInt(portfolioID, 10)}}
	var out Project
	if err := c.post(ctx, "/projects", query, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProject replaces the mutable fields of a project.
func (c *Client) UpdateProject(ctx context.Context, id int64, in ProjectInput) (*Project, error) {
	var out Project
	if err := c.put(ctx, fmt.Sprintf("/projects/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProject removes a project from its portfolio.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/projects/%d", id))
}
