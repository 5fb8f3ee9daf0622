package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"gorent/internal/backend"
	"gorent/internal/middleware"
	"gorent/internal/models"
	"gorent/internal/utils"
	"gorent/internal/view/table"
)

func bookingColumns() []table.Column {
	return []table.Column{
		{Key: "id", Label: "ID", Type: table.TypeText, Sortable: true},
		{Key: "user_id", Label: "Customer", Type: table.TypeText, Sortable: true},
		{Key: "car", Label: "Car", Type: table.TypeText, Sortable: true},
		{Key: "status", Label: "Status", Type: table.TypeStatus, Filterable: true},
		{Key: "total_amount", Label: "Total", Type: table.TypeCurrency, Sortable: true},
		{Key: "start_date", Label: "Start", Type: table.TypeDate, Sortable: true},
		{Key: "end_date", Label: "End", Type: table.TypeDate, Sortable: true},
	}
}

func bookingRecord(b models.Booking) table.Record {
	car := ""
	if b.Car != nil {
		car = b.Car.Make + " " + b.Car.Model
	}
	return table.Record{
		"id":           b.ID,
		"user_id":      b.UserID,
		"car":          car,
		"status":       string(b.Status),
		"total_amount": b.TotalAmount,
		"start_date":   b.StartDate,
		"end_date":     b.EndDate,
	}
}

// BookingsView serves the admin bookings table pre-queried on the server:
// search, status filter, minimum-total filter, date range and sort are
// applied to the full booking set and the visible rows come back with the
// filter options derived from the unfiltered input.
func (h *AdminHandler) BookingsView(c *gin.Context) {
	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	bookings, _, err := h.client.ListBookings(ctx, &backend.BookingListParams{All: true, Limit: 100, Page: 1})
	if err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	records := make([]table.Record, len(bookings))
	for i, b := range bookings {
		records[i] = bookingRecord(b)
	}

	t := table.New(bookingColumns())
	t.SetRecords(records)

	if q := c.Query("q"); q != "" {
		t.SetSearch(q)
	}
	if status := c.Query("status"); status != "" {
		t.SetFilter("status", status)
	}
	if min := c.Query("min_total"); min != "" {
		t.SetAdvancedFilter("total_amount", min)
	}
	t.SetDateRange(c.Query("date_from"), c.Query("date_to"))

	if sortKey := c.Query("sort"); sortKey != "" {
		t.ToggleSort(sortKey)
		if cast.ToString(c.Query("order")) == string(table.SortDesc) {
			t.ToggleSort(sortKey)
		}
	}

	rows := t.Rows()
	cells := make([]map[string]string, len(rows))
	for i, r := range rows {
		rendered := make(map[string]string, len(t.Columns()))
		for _, col := range t.Columns() {
			rendered[col.Key] = t.CellValue(r, col)
		}
		cells[i] = rendered
	}

	utils.SuccessResponseWithMeta(c, "Bookings view", gin.H{
		"columns":        t.Columns(),
		"rows":           rows,
		"cells":          cells,
		"status_options": t.DistinctValues("status"),
		"state":          t.State().String(),
	}, &utils.Meta{Count: len(rows)})
}
