package handlers

import (
	"github.com/gin-gonic/gin"

	"gorent/internal/backend"
	"gorent/internal/config"
	"gorent/internal/middleware"
	"gorent/internal/models"
	"gorent/internal/session"
	"gorent/internal/utils"
	"gorent/pkg/logger"
)

type AuthHandler struct {
	client   *backend.Client
	sessions session.Store
	cfg      *config.Config
	log      *logger.Logger
}

func NewAuthHandler(client *backend.Client, sessions session.Store, cfg *config.Config, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		client:   client,
		sessions: sessions,
		cfg:      cfg,
		log:      log,
	}
}

// Login authenticates against the rental backend, opens a session and sets
// the session cookie. The backend token never reaches the browser.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.ValidationErrors(err))
		return
	}

	result, err := h.client.Login(c.Request.Context(), &req)
	if err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	sess, err := h.sessions.Create(c.Request.Context(), result.User, result.Token)
	if err != nil {
		h.log.WithError(err).Error("Failed to create session")
		utils.InternalServerErrorResponse(c)
		return
	}

	h.setSessionCookie(c, sess.ID)
	h.log.LogUserAction(result.User.ID, "login", nil)

	utils.SuccessResponse(c, "Logged in successfully", result.User)
}

// Register creates an account on the backend and logs the new user straight in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.ValidationErrors(err))
		return
	}

	result, err := h.client.Register(c.Request.Context(), &req)
	if err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	sess, err := h.sessions.Create(c.Request.Context(), result.User, result.Token)
	if err != nil {
		h.log.WithError(err).Error("Failed to create session")
		utils.InternalServerErrorResponse(c)
		return
	}

	h.setSessionCookie(c, sess.ID)
	h.log.LogUserAction(result.User.ID, "register", nil)

	utils.CreatedResponse(c, "Account created successfully", result.User)
}

// Logout destroys the session and clears the cookie. Always succeeds from
// the browser's point of view.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID := middleware.SessionID(c); sessionID != "" {
		if err := h.sessions.Destroy(c.Request.Context(), sessionID); err != nil {
			h.log.WithError(err).WithSessionID(sessionID).Warn("Failed to destroy session")
		}
	}

	c.SetCookie(h.cfg.Session.CookieName, "", -1, "/", "", h.cfg.Session.Secure, true)
	utils.SuccessResponse(c, "Logged out successfully", nil)
}

// Me returns the current user from the session snapshot without a backend
// round trip.
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := h.currentSession(c)
	if !ok {
		return
	}
	utils.SuccessResponse(c, "Current user", sess.User)
}

// Profile fetches the live user record from the backend.
func (h *AuthHandler) Profile(c *gin.Context) {
	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))

	user, err := h.client.Profile(ctx)
	if err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, "Profile retrieved", user)
}

// UpdateProfile pushes the edit to the backend, then refreshes the stored
// session snapshot so subsequent pages see the new data.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req models.User
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if req.Email != "" && !utils.IsValidEmail(req.Email) {
		utils.ValidationErrorResponse(c, map[string]string{"email": "Invalid email address"})
		return
	}

	ctx := backend.WithToken(c.Request.Context(), middleware.BackendToken(c))
	user, err := h.client.UpdateProfile(ctx, &req)
	if err != nil {
		respondBackendError(c, h.log, err)
		return
	}

	if sess, ok := h.currentSession(c); ok {
		sess.User = *user
		if err := h.sessions.Refresh(c.Request.Context(), sess); err != nil {
			h.log.WithError(err).WithSessionID(sess.ID).Warn("Failed to refresh session snapshot")
		}
	}

	utils.SuccessResponse(c, "Profile updated successfully", user)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, sessionID string) {
	maxAge := int(h.cfg.Session.TTL.Seconds())
	c.SetCookie(h.cfg.Session.CookieName, sessionID, maxAge, "/", "", h.cfg.Session.Secure, true)
}

func (h *AuthHandler) currentSession(c *gin.Context) (*session.Session, bool) {
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		utils.UnauthorizedResponse(c)
		return nil, false
	}

	sess, err := h.sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		if err == session.ErrNotFound {
			utils.UnauthorizedResponse(c)
		} else {
			h.log.WithError(err).Error("Failed to load session")
			utils.InternalServerErrorResponse(c)
		}
		return nil, false
	}
	return sess, true
}
