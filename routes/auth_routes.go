package routes

import (
	"github.com/gin-gonic/gin"

	"gorent/internal/config"
	"gorent/internal/handlers"
	"gorent/internal/middleware"
	"gorent/internal/session"
)

// SetupAuthRoutes sets up login, registration and profile routes.
func SetupAuthRoutes(r *gin.RouterGroup, h *handlers.AuthHandler, sessions session.Store, cfg *config.Config) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
	}

	me := r.Group("/auth")
	me.Use(middleware.AuthRequired(sessions, cfg))
	{
		me.POST("/logout", h.Logout)
		me.GET("/me", h.Me)
		me.GET("/profile", h.Profile)
		me.PUT("/profile", h.UpdateProfile)
	}
}
