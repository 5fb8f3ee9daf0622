package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gorent/internal/backend"
	"gorent/internal/utils"
	"gorent/pkg/logger"
)

// respondBackendError translates a failed backend call into the HTTP answer
// the browser expects. Backend status codes pass through; everything else
// (transport, envelope, parse) becomes a retryable 502 so the page shows its
// blocking error state with a retry button instead of stale data.
func respondBackendError(c *gin.Context, log *logger.Logger, err error) {
	var be *backend.Error
	if !errors.As(err, &be) {
		log.WithError(err).Error("Unexpected backend failure")
		utils.InternalServerErrorResponse(c)
		return
	}

	switch be.Kind {
	case backend.KindStatus:
		switch be.StatusCode {
		case http.StatusUnauthorized:
			utils.UnauthorizedResponse(c)
		case http.StatusForbidden:
			utils.ForbiddenResponse(c)
		case http.StatusNotFound:
			utils.NotFoundResponse(c, be.Message)
		default:
			message := be.Message
			if message == "" {
				message = utils.ErrRequestFailed
			}
			utils.ErrorResponse(c, be.StatusCode, "BACKEND_ERROR", message)
		}

	case backend.KindEnvelope:
		message := be.Message
		if message == "" {
			message = utils.ErrRequestFailed
		}
		utils.ErrorResponse(c, http.StatusBadGateway, "BACKEND_REJECTED", message)

	default:
		log.WithError(err).Error("Backend call failed")
		message := utils.ErrBackendUnavailable
		if be.Kind == backend.KindParse {
			message = utils.ErrInvalidResponse
		}
		utils.PageLoadErrorResponse(c, http.StatusBadGateway, message)
	}
}
