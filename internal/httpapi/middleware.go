package httpapi

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/logger"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/ratelimit"
)

func CORS(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []any{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if uid := userID(c); uid != "" {
			fields = append(fields, "user_id", uid)
		}

		switch {
		case status >= 500:
			log.Error("http_request", fields...)
		case status >= 400:
			log.Warn("http_request", fields...)
		default:
			log.Info("http_request", fields...)
		}
	}
}

// RateLimit charges one event per request against the caller's user ID
// within bucket. Must run after RequireAuth.
func RateLimit(limiter ratelimit.Limiter, bucket string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := limiter.Allow(c.Request.Context(), bucket+":"+userID(c)); err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
