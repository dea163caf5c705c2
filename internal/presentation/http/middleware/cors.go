package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/config"
)

var defaultCORSHeaders = []string{
	"Accept",
	"Authorization",
	"Content-Type",
	"Origin",
	"X-Request-ID",
	IdempotencyKeyHeader,
}

// CORSMiddleware creates a CORS middleware with the provided configuration
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Request-ID", "X-Idempotency-Replayed"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	if len(corsConfig.AllowMethods) == 0 {
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(corsConfig.AllowHeaders) == 0 {
		corsConfig.AllowHeaders = defaultCORSHeaders
	} else if !contains(corsConfig.AllowHeaders, IdempotencyKeyHeader) {
		// Tills must be able to send Idempotency-Key cross-origin.
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, IdempotencyKeyHeader)
	}

	return cors.New(corsConfig)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
