package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"skincare-backend/internal/shared/server/respond"
)

const (
	userIDKey  = "userId"
	isGuestKey = "isGuest"

	GuestPrefix = "guest:"
)

// Auth resolves the caller from X-User-Id (set by the gateway after login)
// or X-Guest-Id and stores it in context. Paths under publicPrefixes skip
// the check.
func Auth(publicPrefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		path := c.Request.URL.Path
		for _, prefix := range publicPrefixes {
			if prefix != "" && strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		if userID := strings.TrimSpace(c.GetHeader("X-User-Id")); userID != "" {
			if strings.HasPrefix(userID, GuestPrefix) {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid user id", nil)
				return
			}
			c.Set(userIDKey, userID)
			c.Set(isGuestKey, false)
			c.Next()
			return
		}

		guestID := strings.TrimSpace(c.GetHeader("X-Guest-Id"))
		if guestID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}

		c.Set(userIDKey, GuestPrefix+guestID)
		c.Set(isGuestKey, true)
		c.Next()
	}
}

// UserIDFromContext fetches the caller ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(userIDKey)
}

// IsGuest reports whether the caller identified with X-Guest-Id.
func IsGuest(c *gin.Context) bool {
	if c == nil {
		return false
	}
	return c.GetBool(isGuestKey)
}
