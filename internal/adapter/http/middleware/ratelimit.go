package middleware

import (
	"fmt"
	"strconv"
	"time"

	redisStore "trade-history-service/internal/adapter/storage/redis"
	"trade-history-service/pkg/apperror"
	"trade-history-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimiter creates a per-client fixed-window rate limit middleware. The
// API is read-only and unauthenticated, so the client IP is the identity.
func RateLimiter(store *redisStore.RateLimitStore, limit int64, window time.Duration, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:api", c.ClientIP())

		result, err := store.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			log.Warn().Err(err).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := result.ResetAt - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}
