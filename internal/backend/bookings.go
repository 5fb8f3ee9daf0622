package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"gorent/internal/models"
)

type bookingsPage struct {
	Bookings   []models.Booking   `json:"bookings"`
	Pagination *models.Pagination `json:"pagination"`
}

type BookingListParams struct {
	Status string
	Page   int
	Limit  int
	// All lists every user's bookings; admin only.
	All bool
}

func (c *Client) ListBookings(ctx context.Context, params *BookingListParams) ([]models.Booking, *models.Pagination, error) {
	query := url.Values{}
	if params != nil {
		if params.Status != "" {
			query.Set("status", params.Status)
		}
		if params.Page > 0 {
			query.Set("page", strconv.Itoa(params.Page))
		}
		if params.Limit > 0 {
			query.Set("limit", strconv.Itoa(params.Limit))
		}
		if params.All {
			query.Set("scope", "all")
		}
	}

	var page bookingsPage
	if err := c.do(ctx, http.MethodGet, "/bookings", query, nil, &page); err != nil {
		return nil, nil, err
	}
	return page.Bookings, page.Pagination, nil
}

func (c *Client) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings/"+id, nil, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) CreateBooking(ctx context.Context, req *models.BookingRequest) (*models.Booking, error) {
	var booking models.Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", nil, req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBooking performs a named backend action (confirm, complete, ...) on a
// booking; the backend owns the status machine.
func (c *Client) UpdateBooking(ctx context.Context, id, action string, body interface{}) (*models.Booking, error) {
	query := url.Values{}
	if action != "" {
		query.Set("action", action)
	}

	var booking models.Booking
	if err := c.do(ctx, http.MethodPut, "/bookings/"+id, query, body, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) CancelBooking(ctx context.Context, id string) (*models.Booking, error) {
	return c.UpdateBooking(ctx, id, "cancel", nil)
}
