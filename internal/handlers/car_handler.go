package handlers

import (
	"github.com/gin-gonic/gin"

	"gorent/internal/backend"
	"gorent/internal/middleware"
	"gorent/internal/models"
	"gorent/internal/utils"
	"gorent/pkg/logger"
)

type CarHandler struct {
	client *backend.Client
	log    *logger.Logger
}

func NewCarHandler(client *backend.Client, log *logger.Logger) *CarHandler {
	return &CarHandler{
		client: client,
		log:    log,
	}
}

// ListCars serves the browse page: search, category, price-band, fuel and
// status filters are forwarded straight to the backend, which owns paging.
func (h *CarHandler) ListCars(c *gin.Context) {
	var params models.CarSearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.BadRequestResponse(c, "Invalid query parameters: "+err.Error())
		return
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = utils.DefaultPageSize
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	cars, pagination, err := h.client.ListCars(ctx, &params)
	if err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Cars retrieved", cars, &utils.Meta{
		Pagination: &pagination,
		Count:      len(cars),
	})
}

// GetCar serves the detail page for a single vehicle.
func (h *CarHandler) GetCar(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.BadRequestResponse(c, "Car ID is required")
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	car, err := h.client.GetCar(ctx, id)
	if err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, "Car retrieved", car)
}

// ListCategories backs the category filter dropdown.
func (h *CarHandler) ListCategories(c *gin.Context) {
	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	categories, err := h.client.ListCategories(ctx)
	if err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, "Categories retrieved", categories)
}

// CreateCar adds a vehicle to the fleet. Admin only, enforced by the route.
func (h *CarHandler) CreateCar(c *gin.Context) {
	var car models.Car
	if err := c.ShouldBindJSON(&car); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(&car); err != nil {
		utils.ValidationErrorResponse(c, utils.ValidationErrors(err))
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	created, err := h.client.CreateCar(ctx, &car)
	if err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	h.log.LogUserAction(middleware.UserID(c), "car_created", map[string]interface{}{"car_id": created.ID})
	utils.CreatedResponse(c, "Car created successfully", created)
}

// UpdateCar edits a fleet vehicle. Admin only.
func (h *CarHandler) UpdateCar(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.BadRequestResponse(c, "Car ID is required")
		return
	}

	var car models.Car
	if err := c.ShouldBindJSON(&car); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(&car); err != nil {
		utils.ValidationErrorResponse(c, utils.ValidationErrors(err))
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	updated, err := h.client.UpdateCar(ctx, id, &car)
	if err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	h.log.LogUserAction(middleware.UserID(c), "car_updated", map[string]interface{}{"car_id": id})
	utils.SuccessResponse(c, "Car updated successfully", updated)
}

// DeleteCar removes a fleet vehicle. Admin only.
func (h *CarHandler) DeleteCar(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.BadRequestResponse(c, "Car ID is required")
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	if err := h.client.DeleteCar(ctx, id); err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	h.log.LogUserAction(middleware.UserID(c), "car_deleted", map[string]interface{}{"car_id": id})
	utils.SuccessResponse(c, "Car deleted successfully", nil)
}
