package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ActionRateLimit limits economy actions per user (not per IP) using Redis.
// Requires the JWT middleware to have run first.
func ActionRateLimit(maxActions int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			// Redis not configured, fail-open
			c.Next()
			return
		}

		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID, ok := userIDVal.(int64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user"})
			return
		}

		key := "pixel_plaza:arl:" + strconv.FormatInt(userID, 10) + ":" + strconv.FormatInt(int64(window.Seconds()), 10)
		ctx := context.Background()

		val, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// on Redis error, fail-open
			c.Header("X-ActionRateLimit-Error", "redis-error")
			c.Next()
			return
		}
		if val == 1 {
			rdb.Expire(ctx, key, window)
		}

		remaining := int64(maxActions) - val
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-ActionRateLimit-Limit", strconv.Itoa(maxActions))
		c.Header("X-ActionRateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if val > int64(maxActions) {
			RLBlocked.WithLabelValues("action:" + c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "action rate limit exceeded",
				"retry_after": int(window.Seconds()),
			})
			return
		}

		c.Next()
	}
}
