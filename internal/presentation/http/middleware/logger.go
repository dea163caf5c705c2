package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/presentation/http/dto/response"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/logger"
)

// LoggerMiddleware assigns a request id, puts a request-scoped logger in
// the request context and writes one structured line per request.
func LoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.Default()
	}
	log = log.WithComponent("http")

	return func(c *gin.Context) {
		// Generate request ID if not present
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(response.RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		ctx = logger.WithLogger(ctx, log)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		fields := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"path", path,
		}

		switch {
		case len(c.Errors) > 0:
			log.Errorw("request failed", append(fields, "errors", c.Errors.String())...)
		case c.Writer.Status() >= 500:
			log.Errorw("request", fields...)
		case c.Writer.Status() >= 400:
			log.Warnw("request", fields...)
		default:
			log.Infow("request", fields...)
		}
	}
}
