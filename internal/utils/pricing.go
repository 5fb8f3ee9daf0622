package utils

import (
	"fmt"
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd formatted string into a calendar date.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd: %w", err)
	}
	return t, nil
}

// RentalDays returns the number of chargeable days between pickup and return.
// The count is the calendar-day difference (2025-08-10 to 2025-08-15 is 5
// days); a same-day rental is charged as one day, matching the backend's
// minimum charge.
func RentalDays(pickup, dropoff time.Time) (int, error) {
	if dropoff.Before(pickup) {
		return 0, fmt.Errorf("return date must be on or after pickup date")
	}

	p := time.Date(pickup.Year(), pickup.Month(), pickup.Day(), 0, 0, 0, 0, time.UTC)
	d := time.Date(dropoff.Year(), dropoff.Month(), dropoff.Day(), 0, 0, 0, 0, time.UTC)

	days := int(d.Sub(p).Hours() / 24)
	if days < MinRentalDays {
		days = MinRentalDays
	}
	return days, nil
}

// RentalTotal computes the quoted total for a booking. The backend remains
// authoritative; this figure is only shown to the user before submission.
func RentalTotal(dailyRate float64, pickup, dropoff time.Time) (float64, error) {
	days, err := RentalDays(pickup, dropoff)
	if err != nil {
		return 0, err
	}

	total := dailyRate * float64(days)
	return math.Round(total*100) / 100, nil
}

// RentalQuote parses the date strings and returns (days, total) in one step.
func RentalQuote(dailyRate float64, startDate, endDate string) (int, float64, error) {
	pickup, err := ParseDate(startDate)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start date: %w", err)
	}

	dropoff, err := ParseDate(endDate)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid end date: %w", err)
	}

	days, err := RentalDays(pickup, dropoff)
	if err != nil {
		return 0, 0, err
	}

	total := math.Round(dailyRate*float64(days)*100) / 100
	return days, total, nil
}
