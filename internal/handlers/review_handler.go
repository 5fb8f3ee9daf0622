package handlers

import (
	"github.com/gin-gonic/gin"

	"gorent/internal/backend"
	"gorent/internal/middleware"
	"gorent/internal/models"
	"gorent/internal/notify"
	"gorent/internal/utils"
	"gorent/pkg/logger"
)

type ReviewHandler struct {
	client *backend.Client
	queue  *notify.Queue
	log    *logger.Logger
}

func NewReviewHandler(client *backend.Client, queue *notify.Queue, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		client: client,
		queue:  queue,
		log:    log,
	}
}

// ListReviews returns the reviews shown on a car's detail page.
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	carID := c.Param("id")
	if carID == "" {
		utils.BadRequestResponse(c, "Car ID is required")
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	reviews, err := h.client.ListReviews(ctx, carID)
	if err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, "Reviews retrieved", reviews)
}

// CreateReview posts a review for a car the caller has rented.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	carID := c.Param("id")
	if carID == "" {
		utils.BadRequestResponse(c, "Car ID is required")
		return
	}

	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	review.CarID = carID

	if err := utils.ValidateStruct(&review); err != nil {
		utils.ValidationErrorResponse(c, utils.ValidationErrors(err))
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	created, err := h.client.CreateReview(ctx, &review)
	if err != nil {
		h.queue.Error("Could not submit the review", notify.ForSession(middleware.SessionID(c)))
		respondBackendError(c, h.log, err)
		return
	}

	h.log.LogUserAction(middleware.UserID(c), "review_created", map[string]interface{}{"car_id": carID})
	h.queue.Success("Review submitted", notify.ForSession(middleware.SessionID(c)))
	utils.CreatedResponse(c, "Review created successfully", created)
}
