package studio

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Profile returns the account of the calling identity.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out User
	if err := c.get(ctx, "/users/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Role returns the calling identity's role as the backend records it, which
// may be compared against the role decoded from the session token.
func (c *Client) Role(ctx context.Context) (Role, error) {
	profile, err := c.Profile(ctx)
	if err != nil {
		return "", err
	}
	return profile.Role, nil
}

// UpdateProfile updates the calling identity's own account fields.
func (c *Client) UpdateProfile(ctx context.Context, in ProfileInput) (*User, error) {
	var out User
	if err := c.put(ctx, "/users/profile", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTeachers returns every teacher account.
func (c *Client) ListTeachers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.get(ctx, "/users/teachers", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListStudents returns every student account.
func (c *Client) ListStudents(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.get(ctx, "/users/students", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser retrieves one account by id.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	var out User
	if err := c.get(ctx, fmt.Sprintf("/users/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStudentByUsername retrieves one student account by username.
func (c *Client) GetStudentByUsername(ctx context.Context, username string) (*User, error) {
	var out User
	if err := c.get(ctx, "/users/student/"+url.PathEscape(username), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchStudents asks the backend for students matching query. The teacher
// dashboard does not use this; its search is purely client-side over data
// already fetched.
func (c *Client) SearchStudents(ctx context.Context, query string) ([]User, error) {
	q := url.Values{"query": []string{query}}
	var out []User
	if err := c.do(ctx, http.MethodGet, "/users/search", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
