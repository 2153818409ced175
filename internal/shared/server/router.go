package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/services/health"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/config"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/metrics"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/server/middleware"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/server/respond"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/submissions"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/web"
)

// RouterDeps carries the handlers mounted by NewRouter.
type RouterDeps struct {
	Config      config.Config
	Health      *health.Service
	Submissions *submissions.Handler
	Web         *web.Handler
	// FilesDir is served at /files when images are kept on local disk.
	FilesDir string
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
	)

	var submitLimit []gin.HandlerFunc
	if deps.Config.SubmitRatePerMin > 0 {
		submitLimit = append(submitLimit, middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				middleware.SubmitRateLimitGroup: middleware.PerMinute(deps.Config.SubmitRatePerMin),
			},
			DefaultGroup: middleware.SubmitRateLimitGroup,
			Limiter:      middleware.NewRateLimiter(nil),
		}))
	}

	r.GET("/metrics", metrics.Handler())
	if deps.FilesDir != "" {
		r.Static("/files", deps.FilesDir)
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		payload, ok := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, payload)
	})
	if deps.Submissions != nil {
		deps.Submissions.RegisterRoutes(api, submitLimit...)
	}

	if deps.Web != nil {
		deps.Web.RegisterRoutes(r, submitLimit...)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})

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
