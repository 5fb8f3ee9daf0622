package models

// Pagination is the page descriptor the backend returns with every list. The
// frontend passes it through untouched; slicing happens upstream.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	TotalPages  int `json:"total_pages"`
}

type RevenuePoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type UtilizationPoint struct {
	CarID       string  `json:"car_id"`
	Label       string  `json:"label"`
	Utilization float64 `json:"utilization"`
}

type DashboardStats struct {
	TotalUsers     int     `json:"total_users"`
	TotalCars      int     `json:"total_cars"`
	ActiveBookings int     `json:"active_bookings"`
	MonthlyRevenue float64 `json:"monthly_revenue"`

	RevenueChart   []RevenuePoint     `json:"revenue_chart,omitempty"`
	CarUtilization []UtilizationPoint `json:"car_utilization,omitempty"`
}

// BulkRequest is an admin operation applied to a selected set of record ids.
type BulkRequest struct {
	Resource string   `json:"resource" validate:"required"`
	Action   string   `json:"action" validate:"required"`
	IDs      []string `json:"ids" validate:"required,min=1"`
}
