package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skincare-backend/internal/services/health"
	"skincare-backend/internal/shared/config"
	"skincare-backend/internal/shared/metrics"
	"skincare-backend/internal/shared/server/middleware"
	"skincare-backend/internal/shared/server/respond"
	localstore "skincare-backend/internal/shared/storage/object/local"
	"skincare-backend/internal/skinanalysis"
)

// RouterDeps are the handlers the router mounts.
type RouterDeps struct {
	Config       config.Config
	Health       *health.Service
	SkinAnalysis *skinanalysis.Handler
	// MediaDir, when set, is served under /media for the local image store.
	MediaDir    string
	RateLimiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth("/api/v1/health", "/metrics", localstore.MediaPath),
	)

	r.GET("/metrics", metrics.Handler())
	if deps.MediaDir != "" {
		r.Static(localstore.MediaPath, deps.MediaDir)
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})

	if deps.SkinAnalysis != nil {
		rule := middleware.PerMinute(deps.Config.AnalysisRatePerMinute, deps.Config.AnalysisBurst)
		deps.SkinAnalysis.RegisterRoutes(api, middleware.RateLimit("SKIN_ANALYSIS", rule, deps.RateLimiter))
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
