package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/atelier-edu/atelier/internal/shared/logger"
	"github.com/atelier-edu/atelier/internal/shared/utils"
)

// RateLimiter enforces a fixed-window request budget in Redis, shared
// across all server instances. Requests are counted per principal once the
// auth middleware has run; unauthenticated requests fall back to the client
// IP so the preflight and probe paths are still bounded.
type RateLimiter struct {
	redisClient *redis.Client
	limit       int
	window      time.Duration
	logger      logger.Interface
}

func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration, log logger.Interface) *RateLimiter {
	return &RateLimiter{
		redisClient: redisClient,
		limit:       limit,
		window:      window,
		logger:      log,
	}
}

// Limit returns the enforcement middleware. Redis being unreachable fails
// open: claim traffic must not stall behind the limiter.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.bucketKey(c)
		ctx := c.Request.Context()

		count, err := rl.redisClient.Incr(ctx, key).Result()
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}

		if count == 1 {
			// First hit in this window owns setting the expiry.
			rl.redisClient.Expire(ctx, key, rl.window+time.Second)
		}

		if count > int64(rl.limit) {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) bucketKey(c *gin.Context) string {
	window := time.Now().Unix() / int64(rl.window.Seconds())
	if principalID, ok := GetPrincipalID(c); ok {
		return fmt.Sprintf("ratelimit:principal:%d:%d", principalID, window)
	}
	return fmt.Sprintf("ratelimit:ip:%s:%d", c.ClientIP(), window)
}
