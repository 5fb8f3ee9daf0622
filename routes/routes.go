package routes

import (
	"github.com/gin-gonic/gin"

	"gorent/internal/config"
	"gorent/internal/handlers"
	"gorent/internal/middleware"
	"gorent/internal/session"
	"gorent/pkg/websocket"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Cars    *handlers.CarHandler
	Booking *handlers.BookingHandler
	Reviews *handlers.ReviewHandler
	Admin   *handlers.AdminHandler
	WS      *websocket.Handler
}

// Setup wires every route under /api/v1 plus the websocket endpoint.
func Setup(router *gin.Engine, h *Handlers, sessions session.Store, cfg *config.Config) {
	v1 := router.Group("/api/v1")

	SetupAuthRoutes(v1, h.Auth, sessions, cfg)
	SetupCarRoutes(v1, h.Cars, h.Reviews, sessions, cfg)
	SetupBookingRoutes(v1, h.Booking, sessions, cfg)
	SetupAdminRoutes(v1, h, sessions, cfg)

	v1.GET("/ws", middleware.AuthRequired(sessions, cfg), h.WS.HandleWebSocket)
}
