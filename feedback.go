package studio

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetFeedback retrieves one feedback entry by id.
func (c *Client) GetFeedback(ctx context.Context, id int64) (*Feedback, error) {
	var out Feedback
	if err := c.get(ctx, fmt.Sprintf("/feedback/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFeedbackByPortfolio returns the feedback left on one portfolio.
func (c *Client) ListFeedbackByPortfolio(ctx context.Context, portfolioID int64) ([]Feedback, error) {
	var out []Feedback
	if err := c.get(ctx, fmt.Sprintf("/feedback/portfolio/%d", portfolioID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateFeedback leaves feedback on the given portfolio. Only teachers may
// create feedback; the server enforces the role.
func (c *Client) CreateFeedback(ctx context.Context, portfolioID int64, in FeedbackInput) (*Feedback, error) {
	query := url.Values{"portfolioId": []string{strconv.FormatInt(portfolioID, 10)}}
	var out Feedback
	if err := c.post(ctx, "/feedback", query, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateFeedback rewrites a feedback comment. Only the authoring teacher
// may update it.
func (c *Client) UpdateFeedback(ctx context.Context, id int64, in FeedbackInput) (*Feedback, error) {
	var out Feedback
	if err := c.put(ctx, fmt.Sprintf("/feedback/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFeedback removes a feedback entry. Only the authoring teacher may
// delete it.
func (c *Client) DeleteFeedback(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/feedback/%d", id))
}
