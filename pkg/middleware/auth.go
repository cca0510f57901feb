package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"rihla/pkg/utils"
)

const (
	OwnerIDKey = "owner_id"
	IsGuestKey = "is_guest"

	SessionHeader    = "X-Session-ID"
	guestPrefix      = "guest:"
	maxSessionIDSize = 128
)

// AuthMiddleware resolves the caller: a Bearer token identifies a user by its
// subject, an X-Session-ID header identifies a guest.
func AuthMiddleware(validator *utils.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			if validator == nil || !validator.Enabled() {
				utils.RespondError(c, http.StatusUnauthorized, "Token authentication is not configured")
				c.Abort()
				return
			}
			claims, err := validator.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
				c.Abort()
				return
			}
			c.Set(OwnerIDKey, claims.Subject)
			c.Set(IsGuestKey, false)
			c.Next()
			return
		}

		sessionID := strings.TrimSpace(c.GetHeader(SessionHeader))
		if sessionID == "" || len(sessionID) > maxSessionIDSize {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header or X-Session-ID required")
			c.Abort()
			return
		}

		c.Set(OwnerIDKey, guestPrefix+sessionID)
		c.Set(IsGuestKey, true)
		c.Next()
	}
}

// Owner returns the caller resolved by AuthMiddleware.
func Owner(c *gin.Context) (ownerID string, isGuest bool) {
	return c.GetString(OwnerIDKey), c.GetBool(IsGuestKey)
}
