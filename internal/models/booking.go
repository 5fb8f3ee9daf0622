package models

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	CarID           string        `json:"car_id" validate:"required"`
	Car             *Car          `json:"car,omitempty"`
	StartDate       string        `json:"start_date" validate:"required"`
	EndDate         string        `json:"end_date" validate:"required"`
	Status          BookingStatus `json:"status"`
	TotalAmount     float64       `json:"total_amount"`
	PickupLocation  string        `json:"pickup_location"`
	DropoffLocation string        `json:"dropoff_location"`
	Notes           string        `json:"notes"`
	CreatedAt       time.Time     `json:"created_at"`
}

// BookingRequest is the payload accepted from the browser when creating a booking.
type BookingRequest struct {
	CarID           string `json:"car_id" validate:"required"`
	StartDate       string `json:"start_date" validate:"required"`
	EndDate         string `json:"end_date" validate:"required"`
	PickupLocation  string `json:"pickup_location" validate:"required"`
	DropoffLocation string `json:"dropoff_location"`
	Notes           string `json:"notes"`
}
