package backend

import (
	"context"
	"net/http"
	"net/url"

	"gorent/internal/models"
)

type reviewsPage struct {
	Reviews []models.Review `json:"reviews"`
}

func (c *Client) ListReviews(ctx context.Context, carID string) ([]models.Review, error) {
	query := url.Values{}
	if carID != "" {
		query.Set("car_id", carID)
	}

	var page reviewsPage
	if err := c.do(ctx, http.MethodGet, "/reviews", query, nil, &page); err != nil {
		return nil, err
	}
	return page.Reviews, nil
}

func (c *Client) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	var created models.Review
	if err := c.do(ctx, http.MethodPost, "/reviews", nil, review, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
