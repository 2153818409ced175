package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/telemetry"
)

// Keys handlers set on the gin context so the request log can carry them.
const (
	SubmissionIDKey     = "submissionId"
	StatusTransitionKey = "statusTransition"
	SessionIDKey        = "sessionId"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		telemetry.Info("request.complete", map[string]any{
			"request_id":        RequestIDFromContext(c),
			"method":            c.Request.Method,
			"path":              c.Request.URL.Path,
			"status":            c.Writer.Status(),
			"status_transition": c.GetString(StatusTransitionKey),
			"submission_id":     c.GetString(SubmissionIDKey),
			"session_id":        c.GetString(SessionIDKey),
			"duration_ms":       float64(latency.Microseconds()) / 1000.0,
			"client_ip":         c.ClientIP(),
			"user_agent":        c.Request.UserAgent(),
		})
	}
}
