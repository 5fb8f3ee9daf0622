package backend

import (
	"context"
	"net/http"
	"net/url"

	"gorent/internal/models"
)

// LoginResult is what the backend hands back on a successful authentication:
// the profile plus the bearer token all later calls carry.
type LoginResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func (c *Client) Login(ctx context.Context, req *models.LoginRequest) (*LoginResult, error) {
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Register(ctx context.Context, req *models.RegisterRequest) (*LoginResult, error) {
	query := url.Values{"action": {"register"}}

	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth", query, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, user *models.User) (*models.User, error) {
	var updated models.User
	if err := c.do(ctx, http.MethodPut, "/auth", nil, user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
