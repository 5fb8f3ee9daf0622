package backend

import (
	"context"
	"net/http"
	"net/url"

	"gorent/internal/models"
)

type paymentsPage struct {
	Payments []models.Payment `json:"payments"`
}

func (c *Client) ListPayments(ctx context.Context, bookingID string) ([]models.Payment, error) {
	query := url.Values{}
	if bookingID != "" {
		query.Set("booking_id", bookingID)
	}

	var page paymentsPage
	if err := c.do(ctx, http.MethodGet, "/payments", query, nil, &page); err != nil {
		return nil, err
	}
	return page.Payments, nil
}
