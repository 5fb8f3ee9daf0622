package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"gorent/internal/backend"
	"gorent/internal/middleware"
	"gorent/internal/models"
	"gorent/internal/notify"
	"gorent/internal/utils"
	"gorent/internal/view/form"
	"gorent/pkg/logger"
)

type BookingHandler struct {
	client *backend.Client
	queue  *notify.Queue
	log    *logger.Logger
}

func NewBookingHandler(client *backend.Client, queue *notify.Queue, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		client: client,
		queue:  queue,
		log:    log,
	}
}

// ListBookings returns the caller's bookings; admins may pass all=true to
// see everyone's.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	params := &backend.BookingListParams{
		Status: c.Query("status"),
		Page:   cast.ToInt(c.DefaultQuery("page", "1")),
		Limit:  cast.ToInt(c.DefaultQuery("limit", "0")),
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = utils.DefaultPageSize
	}

	if cast.ToBool(c.Query("all")) {
		role, _ := c.Get("user_role")
		if role != string(models.RoleAdmin) {
			utils.ForbiddenResponse(c)
			return
		}
		params.All = true
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	bookings, pagination, err := h.client.ListBookings(ctx, params)
	if err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Bookings retrieved", bookings, &utils.Meta{
		Pagination: pagination,
		Count:      len(bookings),
	})
}

// GetBooking returns one booking with its payment history attached.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.BadRequestResponse(c, "Booking ID is required")
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	booking, err := h.client.GetBooking(ctx, id)
	if err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	payments, err := h.client.ListPayments(ctx, id)
	if err != nil {
		// The booking itself loaded; payments degrade to empty with a log line.
		h.log.WithError(err).WithField("booking_id", id).Warn("Failed to load payments")
		payments = nil
	}

	utils.SuccessResponse(c, "Booking retrieved", gin.H{
		"booking":  booking,
		"payments": payments,
	})
}

// Quote prices a prospective rental without creating anything: whole
// calendar days between the dates, one day minimum.
func (h *BookingHandler) Quote(c *gin.Context) {
	rate := cast.ToFloat64(c.Query("daily_rate"))
	if rate <= 0 {
		utils.BadRequestResponse(c, "daily_rate must be a positive number")
		return
	}

	days, total, err := utils.RentalQuote(rate, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, "Quote calculated", gin.H{
		"days":       days,
		"daily_rate": rate,
		"total":      total,
	})
}

// BookingForm serves the declarative schema the booking modal renders:
// field types, required flags and date bounds, with past dates disallowed.
func (h *BookingHandler) BookingForm(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	f := form.New([]form.Element{
		form.F(form.Field{Name: "car_id", Label: "Car", Type: form.TypeText, Required: true, Default: c.Query("car_id")}),
		form.G(form.Group{Label: "Rental period", Fields: []form.Field{
			{Name: "start_date", Label: "Pickup date", Type: form.TypeDate, Required: true, MinDate: today},
			{Name: "end_date", Label: "Return date", Type: form.TypeDate, Required: true, MinDate: today},
		}}),
		form.F(form.Field{Name: "pickup_location", Label: "Pickup location", Type: form.TypeText, Required: true}),
		form.F(form.Field{Name: "dropoff_location", Label: "Dropoff location", Type: form.TypeText}),
		form.F(form.Field{Name: "notes", Label: "Notes", Type: form.TypeTextarea}),
	})

	utils.SuccessResponse(c, "Booking form", gin.H{"fields": f.Fields()})
}

// CreateBooking validates the dates locally, then hands off to the backend
// which owns availability and final pricing.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.ValidationErrors(err))
		return
	}

	if _, _, err := utils.RentalQuote(1, req.StartDate, req.EndDate); err != nil {
		utils.ValidationErrorResponse(c, map[string]string{"end_date": err.Error()})
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	booking, err := h.client.CreateBooking(ctx, &req)
	if err != nil {
		h.queue.Error("Could not create the booking", notify.ForSession(middleware.SessionID(c)))
		respondBackendError(c, h.log, err)
		return
	}

	h.log.LogUserAction(middleware.UserID(c), "booking_created", map[string]interface{}{"booking_id": booking.ID})
	h.queue.Success("Booking created", notify.ForSession(middleware.SessionID(c)))
	utils.CreatedResponse(c, "Booking created successfully", booking)
}

// CancelBooking cancels the caller's booking. The backend rejects cancels on
// non-pending bookings; we just relay its verdict.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.BadRequestResponse(c, "Booking ID is required")
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	booking, err := h.client.CancelBooking(ctx, id)
	if err != nil {
		h.queue.Error("Could not cancel the booking", notify.ForSession(middleware.SessionID(c)))
		respondBackendError(c, h.log, err)
		return
	}

	h.log.LogUserAction(middleware.UserID(c), "booking_cancelled", map[string]interface{}{"booking_id": id})
	h.queue.Success("Booking cancelled", notify.ForSession(middleware.SessionID(c)))
	utils.SuccessResponse(c, "Booking cancelled successfully", booking)
}

// UpdateBooking applies an admin action (confirm, complete) to a booking.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.BadRequestResponse(c, "Booking ID is required")
		return
	}

	var req struct {
		Action string `json:"action" validate:"required,oneof=confirm complete cancel"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.ValidationErrors(err))
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	booking, err := h.client.UpdateBooking(ctx, id, req.Action, nil)
	if err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	h.log.LogUserAction(middleware.UserID(c), "booking_"+req.Action, map[string]interface{}{"booking_id": id})
	utils.SuccessResponse(c, "Booking updated successfully", booking)
}

// ListPayments returns the payment history for one booking.
func (h *BookingHandler) ListPayments(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.BadRequestResponse(c, "Booking ID is required")
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	payments, err := h.client.ListPayments(ctx, id)
	if err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, "Payments retrieved", payments)
}
