package studio

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetAchievement retrieves one achievement by id.
func (c *Client) GetAchievement(ctx context.Context, id int64) (*Achievement, error) {
	var out Achievement
	if err := c.get(ctx, fmt.Sprintf("/achievements/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAchievementsByPortfolio returns the achievements of one portfolio.
func (c *Client) ListAchievementsByPortfolio(ctx context.Context, portfolioID int64) ([]Achievement, error) {
	var out []Achievement
	if err := c.get(ctx, fmt.Sprintf("/achievements/portfolio/%d", portfolioID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAchievement adds an achievement to the given portfolio.
func (c *Client) CreateAchievement(ctx context.Context, portfolioID int64, in AchievementInput) (*Achievement, error) {
	query := url.Values{"portfolioId": []string{strconv.FormatInt(portfolioID, 10)}}
	var out Achievement
	if err := c.post(ctx, "/achievements", query, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAchievement replaces the mutable fields of an achievement.
func (c *Client) UpdateAchievement(ctx context.Context, id int64, in AchievementInput) (*Achievement, error) {
	var out Achievement
	if err := c.put(ctx, fmt.Sprintf("/achievements/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAchievement removes an achievement from its portfolio.
func (c *Client) DeleteAchievement(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/achievements/%d", id))
}
