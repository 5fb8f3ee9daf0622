package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"gorent/internal/config"
	"gorent/internal/models"
	"gorent/internal/session"
	"gorent/internal/utils"
)

// JWTClaims mirrors the token payload minted by the rental backend. Tokens
// are opaque to most of the app; claims are only read on the bearer-token
// fallback path when no session cookie is present.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthRequired resolves the session cookie against the session store and
// stashes the user, role, session id and backend token on the context. A
// Bearer header is accepted as a fallback for non-browser clients.
func AuthRequired(store session.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(cfg.Session.CookieName); err == nil && cookie != "" {
			sess, err := store.Get(c.Request.Context(), cookie)
			if err == nil {
				setIdentity(c, sess.ID, sess.User.ID, string(sess.User.Role), sess.Token)
				c.Next()
				return
			}
			if err != session.ErrNotFound {
				utils.InternalServerErrorResponse(c)
				c.Abort()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || tokenString == authHeader {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.Security.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*JWTClaims)
		if !ok || claims.UserID == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		setIdentity(c, "", claims.UserID, claims.Role, tokenString)
		c.Next()
	}
}

// AuthOptional is AuthRequired without the rejection: anonymous requests
// pass through with no identity set. Pages that render for guests (the car
// catalogue) use this so logged-in users still get their context.
func AuthOptional(store session.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(cfg.Session.CookieName); err == nil && cookie != "" {
			if sess, err := store.Get(c.Request.Context(), cookie); err == nil {
				setIdentity(c, sess.ID, sess.User.ID, string(sess.User.Role), sess.Token)
			}
		}
		c.Next()
	}
}

// AdminRequired runs after AuthRequired and gates the admin console.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		if roleStr, ok := role.(string); !ok || roleStr != string(models.RoleAdmin) {
			utils.ForbiddenResponse(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

func setIdentity(c *gin.Context, sessionID, userID, role, token string) {
	c.Set("session_id", sessionID)
	c.Set("user_id", userID)
	c.Set("user_role", role)
	c.Set("backend_token", token)
}

// SessionID returns the session id set by the auth middleware, or "".
func SessionID(c *gin.Context) string {
	if v, ok := c.Get("session_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// BackendToken returns the bearer token forwarded to the rental backend.
func BackendToken(c *gin.Context) string {
	if v, ok := c.Get("backend_token"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// UserID returns the authenticated user's id, or "".
func UserID(c *gin.Context) string {
	if v, ok := c.Get("user_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
