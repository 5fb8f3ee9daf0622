package models

import "time"

type CarStatus string

const (
	CarStatusAvailable   CarStatus = "available"
	CarStatusRented      CarStatus = "rented"
	CarStatusMaintenance CarStatus = "maintenance"
)

type Car struct {
	ID           string    `json:"id"`
	Make         string    `json:"make" validate:"required"`
	Model        string    `json:"model" validate:"required"`
	Year         int       `json:"year" validate:"required"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name"`
	DailyRate    float64   `json:"daily_rate"`
	Status       CarStatus `json:"status"`
	FuelType     string    `json:"fuel_type"`
	Seats        int       `json:"seats"`
	Transmission string    `json:"transmission"`
	Features     []string  `json:"features"`
	ImageURL     string    `json:"image_url"`
	Rating       float64   `json:"rating"`
	CreatedAt    time.Time `json:"created_at"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CarSearchParams mirrors the query parameters the backend accepts on GET /cars.
type CarSearchParams struct {
	Search   string  `json:"search" form:"search"`
	Category string  `json:"category" form:"category"`
	MinPrice float64 `json:"min_price" form:"min_price"`
	MaxPrice float64 `json:"max_price" form:"max_price"`
	FuelType string  `json:"fuel_type" form:"fuel_type"`
	Status   string  `json:"status" form:"status"`
	Page     int     `json:"page" form:"page"`
	Limit    int     `json:"limit" form:"limit"`
}
