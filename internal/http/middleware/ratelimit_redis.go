package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var rdb *redis.Client

// InitRedisRateLimiter connects the shared limiter client. With no address,
// or when the ping fails, the client stays nil and both Redis-backed
// limiters fail open: a throttling outage must not take the game down.
func InitRedisRateLimiter(addr, password string, db int) {
	if addr == "" {
		return
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return
	}
	rdb = client
}

// RedisRateLimit enforces a fixed window per client IP, counted with
// INCR/EXPIRE under pixel_plaza:rl:<window_seconds>:<ip>.
func RedisRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := "pixel_plaza:rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + c.ClientIP()
		ctx := c.Request.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// Fail open on Redis trouble, but leave a trace for dashboards.
			c.Header("X-RateLimit-Error", "redis-error")
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, window)
		}

		if count > int64(maxRequests) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		RLRequests.WithLabelValues(c.FullPath()).Inc()

		c.Next()
	}
}
