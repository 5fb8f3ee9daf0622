package routes

import (
	"github.com/gin-gonic/gin"

	"gorent/internal/config"
	"gorent/internal/handlers"
	"gorent/internal/middleware"
	"gorent/internal/session"
)

// SetupBookingRoutes sets up the booking flow. Everything requires a session
// except the price quote, which the booking modal shows before login prompts.
func SetupBookingRoutes(r *gin.RouterGroup, h *handlers.BookingHandler, sessions session.Store, cfg *config.Config) {
	r.GET("/bookings/quote", h.Quote)
	r.GET("/bookings/form", h.BookingForm)

	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthRequired(sessions, cfg))
	{
		bookings.GET("", h.ListBookings)
		bookings.POST("", h.CreateBooking)
		bookings.GET("/:id", h.GetBooking)
		bookings.PUT("/:id", h.UpdateBooking)
		bookings.DELETE("/:id", h.CancelBooking)
		bookings.GET("/:id/payments", h.ListPayments)
	}
}
