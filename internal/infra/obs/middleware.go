package obs

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// Middleware bundles the cross-cutting gin handlers every route passes
// through before reaching the application layer.
type Middleware struct {
	Logger *slog.Logger
}

// RequestID assigns a correlation id to each request. A caller-supplied
// header wins so retries and gateway hops keep one id end to end; the id
// is echoed back on the response and threaded through the context for
// downstream log lines.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), requestIDKey{}, id))
		c.Writer.Header().Set(requestIDHeader, id)
		c.Set("request_id", id)
		c.Next()
	}
}

// LoggerMiddleware emits one access line per request after the handler
// chain finishes. Server errors log at warn so they stand out without a
// second logging path.
func (m Middleware) LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if m.Logger == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		level := slog.LevelInfo
		if c.Writer.Status() >= 500 {
			level = slog.LevelWarn
		}
		m.Logger.Log(c.Request.Context(), level, "http",
			"method", c.Request.Method,
			"route", route,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString("request_id"),
		)
	}
}

// RequestIDFromContext returns the correlation id attached by RequestID,
// or the empty string outside of an HTTP request.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
