package routes

import (
	"github.com/gin-gonic/gin"

	"gorent/internal/config"
	"gorent/internal/middleware"
	"gorent/internal/session"
)

// SetupAdminRoutes sets up the admin console API: dashboard data, fleet
// management, user management and bulk actions.
func SetupAdminRoutes(r *gin.RouterGroup, h *Handlers, sessions session.Store, cfg *config.Config) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(sessions, cfg), middleware.AdminRequired())
	{
		admin.GET("/stats", h.Admin.Stats)
		admin.GET("/revenue-chart", h.Admin.RevenueChart)
		admin.GET("/car-utilization", h.Admin.CarUtilization)

		admin.GET("/bookings/view", h.Admin.BookingsView)

		admin.GET("/users", h.Admin.ListUsers)
		admin.PUT("/users/:id", h.Admin.UpdateUser)
		admin.DELETE("/users/:id", h.Admin.DeleteUser)

		admin.POST("/cars", h.Cars.CreateCar)
		admin.PUT("/cars/:id", h.Cars.UpdateCar)
		admin.DELETE("/cars/:id", h.Cars.DeleteCar)

		admin.POST("/bulk", h.Admin.Bulk)
	}
}
