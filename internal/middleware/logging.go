package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/company-task-api/internal/logging"
)

const headerRequestID = "X-Request-ID"

// RequestLogger attaches a request-scoped logger to the request context and
// logs one line per request once the handlers are done.
func RequestLogger(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(headerRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Header(headerRequestID, rid)

		l := base.With(
			"method", c.Request.Method,
			"url", c.Request.URL.Path,
			"remote_ip", c.ClientIP(),
			"request_id", rid,
		)
		c.Request = c.Request.WithContext(logging.IntoContext(c.Request.Context(), l))

		start := time.Now()
		c.Next()
		dur := time.Since(start)
		status := c.Writer.Status()

		l = l.With("route", c.FullPath(), "status", status, "duration_ms", dur.Milliseconds())
		switch {
		case status >= 500:
			l.Error("request completed", "errors", c.Errors.String())
		case status >= 400:
			l.Warn("request completed")
		default:
			l.Info("request completed", "bytes", c.Writer.Size())
		}
	}
}
