package routes

import (
	"github.com/gin-gonic/gin"

	"gorent/internal/config"
	"gorent/internal/handlers"
	"gorent/internal/middleware"
	"gorent/internal/session"
)

// SetupCarRoutes sets up the public catalogue and review routes. Browsing
// works for guests; posting a review needs a session.
func SetupCarRoutes(r *gin.RouterGroup, cars *handlers.CarHandler, reviews *handlers.ReviewHandler, sessions session.Store, cfg *config.Config) {
	public := r.Group("/cars")
	public.Use(middleware.AuthOptional(sessions, cfg))
	{
		public.GET("", cars.ListCars)
		public.GET("/categories", cars.ListCategories)
		public.GET("/:id", cars.GetCar)
		public.GET("/:id/reviews", reviews.ListReviews)
	}

	protected := r.Group("/cars")
	protected.Use(middleware.AuthRequired(sessions, cfg))
	{
		protected.POST("/:id/reviews", reviews.CreateReview)
	}
}
