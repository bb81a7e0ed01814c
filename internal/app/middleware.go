package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/garyellow/syllabus-assistant-go/internal/ctxutil"
	"github.com/garyellow/syllabus-assistant-go/internal/logger"
	"github.com/garyellow/syllabus-assistant-go/internal/metrics"
	"github.com/garyellow/syllabus-assistant-go/internal/ratelimit"
)

// requestIDHeaders are checked in order for an upstream request ID.
var requestIDHeaders = []string{"X-Request-Id", "X-Correlation-Id"}

// requestIDMiddleware propagates an upstream request ID or assigns a new
// one, stores it in the request context and echoes it in the response.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var requestID string
		for _, h := range requestIDHeaders {
			if requestID = c.GetHeader(h); requestID != "" {
				break
			}
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Request = c.Request.WithContext(ctxutil.WithRequestID(c.Request.Context(), requestID))
		c.Header("X-Request-Id", requestID)
		c.Next()
	}
}

// corsMiddleware allows any origin to call /api/ask.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Next()
	}
}

// rateLimitMiddleware rejects callers that exceed their per-IP budget.
// A nil limiter disables the check.
func rateLimitMiddleware(limiter *ratelimit.PerKey, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow(c.ClientIP()) {
			m.RecordRequest("none", "limited", 0)
			c.Header("Retry-After", "60")
			c.Data(http.StatusTooManyRequests, contentTypeText, []byte("Too many requests"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Content-Security-Policy", "default-src 'none'")
		c.Next()
	}
}

// loggingMiddleware logs HTTP requests with status-based log levels:
// 5xx=Error, 4xx=Warn, everything else Debug.
func loggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		ctx := c.Request.Context()
		entry := log.WithFields(map[string]any{
			"http_method": method,
			"http_path":   path,
			"http_status": status,
			"duration_ms": time.Since(start).Milliseconds(),
			"client_ip":   c.ClientIP(),
		})

		switch {
		case status >= 500:
			entry.ErrorContext(ctx, "HTTP request failed")
		case status >= 400 && status != 404:
			entry.WarnContext(ctx, "HTTP request rejected")
		default:
			entry.DebugContext(ctx, "HTTP request completed")
		}
	}
}
