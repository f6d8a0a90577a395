package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"adsdash/internal/infrastructure"
	"adsdash/pkg/logger"
	"adsdash/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RequestID tags every request with an identifier, honoring one supplied by
// the caller, and exposes it on the gin context, the request context and the
// response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}

		c.Header("X-Request-ID", id)
		c.Set("request_id", id)
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), logger.RequestIDKey, id))

		c.Next()
	}
}

// Identity lifts the session collaborator's headers onto the request
// context. Requests without the headers proceed anonymously.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			ctx := infrastructure.WithIdentity(c.Request.Context(), userID, c.GetHeader("X-User-Role"))
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

// Logger emits one structured access-log line per request.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.WithFields(map[string]any{
			"timestamp":  param.TimeStamp.Format(time.RFC3339),
			"status":     param.StatusCode,
			"latency":    param.Latency,
			"client_ip":  param.ClientIP,
			"method":     param.Method,
			"path":       param.Path,
			"user_agent": param.Request.UserAgent(),
			"error":      param.ErrorMessage,
		}).Info("HTTP Request")

		return ""
	})
}

// Recovery converts panics into logged 500 responses.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString("request_id")

		log.WithFields(map[string]any{
			"request_id": requestID,
			"error":      recovered,
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
		}).Error("Panic recovered")

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Internal server error",
			"request_id": requestID,
		})
	})
}

// Timeout bounds handler execution. The deadline also propagates through the
// request context, so downstream fetches abort with it.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		done := make(chan struct{})
		go func() {
			c.Next()
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			c.JSON(http.StatusRequestTimeout, gin.H{
				"error":      "Request timeout",
				"request_id": c.GetString("request_id"),
			})
			c.Abort()
		}
	}
}

// Metrics observes request counts and latency per method and route.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		m.RecordHTTPRequest(c.Request.Method, c.FullPath(), status, time.Since(start))
	}
}

// PrometheusHandler serves the default prometheus registry.
func PrometheusHandler() gin.HandlerFunc {
	handler := promhttp.Handler()

	return func(c *gin.Context) {
		handler.ServeHTTP(c.Writer, c.Request)
	}
}
