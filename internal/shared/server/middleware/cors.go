package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORS sets CORS headers for allowed origins and answers preflight requests.
// A "*" entry allows any origin without credentials.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	origins := make(map[string]struct{})
	wildcard := false
	for _, o := range allowedOrigins {
		trimmed := strings.TrimSpace(o)
		switch trimmed {
		case "":
		case "*":
			wildcard = true
		default:
			origins[trimmed] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			h := c.Writer.Header()
			_, listed := origins[origin]
			switch {
			case listed:
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Vary", "Origin")
				h.Set("Access-Control-Allow-Credentials", "true")
			case wildcard:
				h.Set("Access-Control-Allow-Origin", "*")
			}
			if listed || wildcard {
				h.Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, X-Guest-Id, X-User-Id, X-Request-Id")
				h.Set("Access-Control-Expose-Headers", "X-Request-Id, Retry-After")
				h.Set("Access-Control-Max-Age", "600")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
