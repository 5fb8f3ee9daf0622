package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"gorent/internal/backend"
	"gorent/internal/middleware"
	"gorent/internal/models"
	"gorent/internal/utils"
	"gorent/pkg/cache"
	"gorent/pkg/logger"
	"gorent/pkg/websocket"
)

type AdminHandler struct {
	client *backend.Client
	cache  *cache.RedisCache
	ws     *websocket.Handler
	log    *logger.Logger
}

// NewAdminHandler builds the admin console handler. cache may be nil when
// running without Redis; stats then always hit the backend live.
func NewAdminHandler(client *backend.Client, c *cache.RedisCache, ws *websocket.Handler, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		client: client,
		cache:  c,
		ws:     ws,
		log:    log,
	}
}

// Stats serves the dashboard cards. The cron refresher keeps a warm copy in
// Redis; a cold cache falls back to a live backend call.
func (h *AdminHandler) Stats(c *gin.Context) {
	if h.cache != nil {
		var stats models.DashboardStats
		if err := h.cache.Get(c.Request.Context(), utils.CacheStatsKey, &stats); err == nil {
			utils.SuccessResponse(c, "Dashboard stats retrieved", stats)
			return
		} else if !cache.IsMiss(err) {
			h.log.WithError(err).Warn("Stats cache read failed")
		}
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	stats, err := h.client.AdminStats(ctx)
	if err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, "Dashboard stats retrieved", stats)
}

// RevenueChart serves the monthly revenue series.
func (h *AdminHandler) RevenueChart(c *gin.Context) {
	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	points, err := h.client.AdminRevenueChart(ctx)
	if err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, "Revenue chart retrieved", points)
}

// CarUtilization serves the per-vehicle utilization series.
func (h *AdminHandler) CarUtilization(c *gin.Context) {
	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	points, err := h.client.AdminCarUtilization(ctx)
	if err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, "Car utilization retrieved", points)
}

// ListUsers backs the user management table.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page := cast.ToInt(c.DefaultQuery("page", "1"))
	limit := cast.ToInt(c.DefaultQuery("limit", "0"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = utils.DefaultPageSize
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	users, pagination, err := h.client.AdminListUsers(ctx, page, limit)
	if err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Users retrieved", users, &utils.Meta{
		Pagination: &pagination,
		Count:      len(users),
	})
}

// UpdateUser edits a user record (role, status, contact details).
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.BadRequestResponse(c, "User ID is required")
		return
	}

	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	updated, err := h.client.AdminUpdateUser(ctx, id, &user)
	if err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	h.log.LogUserAction(middleware.UserID(c), "admin_user_updated", map[string]interface{}{"target_user_id": id})
	utils.SuccessResponse(c, "User updated successfully", updated)
}

// DeleteUser removes a user account.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.BadRequestResponse(c, "User ID is required")
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	if err := h.client.AdminDeleteUser(ctx, id); err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	h.log.LogUserAction(middleware.UserID(c), "admin_user_deleted", map[string]interface{}{"target_user_id": id})
	utils.SuccessResponse(c, "User deleted successfully", nil)
}

// Bulk applies one action to a set of selected rows, then nudges every open
// admin console to refetch.
func (h *AdminHandler) Bulk(c *gin.Context) {
	var req models.BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.ValidationErrors(err))
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	if err := h.client.AdminBulk(ctx, &req); err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	h.log.LogUserAction(middleware.UserID(c), "admin_bulk_"+req.Action, map[string]interface{}{
		"resource": req.Resource,
		"count":    len(req.IDs),
	})

	if h.ws != nil {
		h.ws.NotifyAdmins("bulk_applied", map[string]interface{}{
			"resource": req.Resource,
			"action":   req.Action,
			"count":    len(req.IDs),
		})
	}

	utils.SuccessResponse(c, "Bulk action applied successfully", gin.H{"affected": len(req.IDs)})
}
