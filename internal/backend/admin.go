package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"gorent/internal/models"
)

type usersPage struct {
	Users      []models.User     `json:"users"`
	Pagination models.Pagination `json:"pagination"`
}

func adminQuery(action string) url.Values {
	return url.Values{"action": {action}}
}

func (c *Client) AdminListUsers(ctx context.Context, page, limit int) ([]models.User, models.Pagination, error) {
	query := adminQuery("users")
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var result usersPage
	if err := c.do(ctx, http.MethodGet, "/admin", query, nil, &result); err != nil {
		return nil, models.Pagination{}, err
	}
	return result.Users, result.Pagination, nil
}

func (c *Client) AdminUpdateUser(ctx context.Context, id string, user *models.User) (*models.User, error) {
	query := adminQuery("users")
	query.Set("id", id)

	var updated models.User
	if err := c.do(ctx, http.MethodPut, "/admin", query, user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) AdminDeleteUser(ctx context.Context, id string) error {
	query := adminQuery("users")
	query.Set("id", id)
	return c.do(ctx, http.MethodDelete, "/admin", query, nil, nil)
}

func (c *Client) AdminStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/admin", adminQuery("stats"), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) AdminRevenueChart(ctx context.Context) ([]models.RevenuePoint, error) {
	var points []models.RevenuePoint
	if err := c.do(ctx, http.MethodGet, "/admin", adminQuery("revenue-chart"), nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (c *Client) AdminCarUtilization(ctx context.Context) ([]models.UtilizationPoint, error) {
	var points []models.UtilizationPoint
	if err := c.do(ctx, http.MethodGet, "/admin", adminQuery("car-utilization"), nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// AdminBulk applies one action to a selected set of records in one request.
func (c *Client) AdminBulk(ctx context.Context, req *models.BulkRequest) error {
	return c.do(ctx, http.MethodPost, "/admin", adminQuery("bulk"), req, nil)
}
