package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/entity"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/repository"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/presentation/http/dto/response"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/logger"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyRequired rejects POSTs without an Idempotency-Key and replays
// the stored response when a till resubmits the same key. Only 2xx
// responses are stored so a failed attempt can be retried.
func IdempotencyRequired(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			response.BadRequest(c, "Idempotency-Key header is required for this request")
			c.Abort()
			return
		}

		userIDValue, exists := c.Get(ContextUserID)
		if !exists {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}
		userID, ok := userIDValue.(uuid.UUID)
		if !ok {
			response.Unauthorized(c, "Invalid user ID")
			c.Abort()
			return
		}

		existing, err := config.Repo.GetByKey(c.Request.Context(), idempotencyKey, userID)
		if err != nil {
			logger.Error(c.Request.Context(), "idempotency lookup failed", "error", err)
			response.ErrorWithCode(c, http.StatusInternalServerError, "Failed to check idempotency key")
			c.Abort()
			return
		}

		if existing != nil && !existing.IsExpired() {
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			ikey := &entity.IdempotencyKey{
				Key:          idempotencyKey,
				UserID:       userID,
				Endpoint:     c.Request.Method + " " + c.FullPath(),
				ResponseCode: c.Writer.Status(),
				ResponseBody: blw.body.String(),
				ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
			}
			if err := config.Repo.Create(c.Request.Context(), ikey); err != nil {
				logger.Warn(c.Request.Context(), "failed to store idempotency key", "error", err)
			}
		}
	}
}
