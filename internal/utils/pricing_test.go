package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		date, err := ParseDate("2025-08-10")
		assert.NoError(t, err)
		assert.Equal(t, 2025, date.Year())
		assert.Equal(t, time.August, date.Month())
		assert.Equal(t, 10, date.Day())
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := ParseDate("2025/08/10")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid date format")
	})

	t.Run("Invalid day", func(t *testing.T) {
		_, err := ParseDate("2025-02-30")
		assert.Error(t, err)
	})
}

func TestRentalDays(t *testing.T) {
	t.Run("Five day rental", func(t *testing.T) {
		pickup, _ := ParseDate("2025-08-10")
		dropoff, _ := ParseDate("2025-08-15")
		days, err := RentalDays(pickup, dropoff)
		assert.NoError(t, err)
		assert.Equal(t, 5, days)
	})

	t.Run("Same day counts as one", func(t *testing.T) {
		pickup, _ := ParseDate("2025-08-10")
		days, err := RentalDays(pickup, pickup)
		assert.NoError(t, err)
		assert.Equal(t, 1, days)
	})

	t.Run("Cross month boundary", func(t *testing.T) {
		pickup, _ := ParseDate("2025-01-25")
		dropoff, _ := ParseDate("2025-02-05")
		days, err := RentalDays(pickup, dropoff)
		assert.NoError(t, err)
		assert.Equal(t, 11, days)
	})

	t.Run("Leap year February", func(t *testing.T) {
		pickup, _ := ParseDate("2024-02-28")
		dropoff, _ := ParseDate("2024-03-01")
		days, err := RentalDays(pickup, dropoff)
		assert.NoError(t, err)
		assert.Equal(t, 2, days)
	})

	t.Run("Return before pickup", func(t *testing.T) {
		pickup, _ := ParseDate("2025-08-15")
		dropoff, _ := ParseDate("2025-08-10")
		_, err := RentalDays(pickup, dropoff)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "on or after pickup")
	})
}

func TestRentalTotal(t *testing.T) {
	t.Run("Daily rate times days", func(t *testing.T) {
		pickup, _ := ParseDate("2025-08-10")
		dropoff, _ := ParseDate("2025-08-15")
		total, err := RentalTotal(49.99, pickup, dropoff)
		assert.NoError(t, err)
		assert.Equal(t, 249.95, total)
	})

	t.Run("Rounded to cents", func(t *testing.T) {
		pickup, _ := ParseDate("2025-08-10")
		dropoff, _ := ParseDate("2025-08-13")
		total, err := RentalTotal(33.333, pickup, dropoff)
		assert.NoError(t, err)
		assert.Equal(t, 100.0, total)
	})
}

func TestRentalQuote(t *testing.T) {
	t.Run("Scenario from booking page", func(t *testing.T) {
		days, total, err := RentalQuote(40, "2025-08-10", "2025-08-15")
		assert.NoError(t, err)
		assert.Equal(t, 5, days)
		assert.Equal(t, 200.0, total)
	})

	t.Run("Invalid start date", func(t *testing.T) {
		_, _, err := RentalQuote(40, "not-a-date", "2025-08-15")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid start date")
	})

	t.Run("Inverted range", func(t *testing.T) {
		_, _, err := RentalQuote(40, "2025-08-15", "2025-08-10")
		assert.Error(t, err)
	})
}
