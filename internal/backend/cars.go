package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"gorent/internal/models"
)

type carsPage struct {
	Cars       []models.Car      `json:"cars"`
	Pagination models.Pagination `json:"pagination"`
}

func (c *Client) ListCars(ctx context.Context, params *models.CarSearchParams) ([]models.Car, models.Pagination, error) {
	query := url.Values{}
	if params != nil {
		if params.Search != "" {
			query.Set("search", params.Search)
		}
		if params.Category != "" {
			query.Set("category", params.Category)
		}
		if params.MinPrice > 0 {
			query.Set("min_price", strconv.FormatFloat(params.MinPrice, 'f', -1, 64))
		}
		if params.MaxPrice > 0 {
			query.Set("max_price", strconv.FormatFloat(params.MaxPrice, 'f', -1, 64))
		}
		if params.FuelType != "" {
			query.Set("fuel_type", params.FuelType)
		}
		if params.Status != "" {
			query.Set("status", params.Status)
		}
		if params.Page > 0 {
			query.Set("page", strconv.Itoa(params.Page))
		}
		if params.Limit > 0 {
			query.Set("limit", strconv.Itoa(params.Limit))
		}
	}

	var page carsPage
	if err := c.do(ctx, http.MethodGet, "/cars", query, nil, &page); err != nil {
		return nil, models.Pagination{}, err
	}
	return page.Cars, page.Pagination, nil
}

func (c *Client) GetCar(ctx context.Context, id string) (*models.Car, error) {
	var car models.Car
	if err := c.do(ctx, http.MethodGet, "/cars/"+id, nil, nil, &car); err != nil {
		return nil, err
	}
	return &car, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	query := url.Values{"action": {"categories"}}

	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/cars", query, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCar(ctx context.Context, car *models.Car) (*models.Car, error) {
	var created models.Car
	if err := c.do(ctx, http.MethodPost, "/cars", nil, car, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateCar(ctx context.Context, id string, car *models.Car) (*models.Car, error) {
	var updated models.Car
	if err := c.do(ctx, http.MethodPut, "/cars/"+id, nil, car, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteCar(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/cars/"+id, nil, nil, nil)
}
