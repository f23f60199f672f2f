package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// visitorWindow tracks one IP's fixed window. The in-process limiter only
// guards the operator endpoints, so the map stays tiny and is never pruned.
type visitorWindow struct {
	start    time.Time
	requests int
}

var (
	visitorMu sync.Mutex
	visitors  = make(map[string]*visitorWindow)
)

// SimpleRateLimit blocks an IP that sends more than maxRequests per window.
// Unlike the Redis limiter it needs no external service, at the cost of
// per-instance counting.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		visitorMu.Lock()
		v, ok := visitors[ip]
		if !ok || now.Sub(v.start) > window {
			visitors[ip] = &visitorWindow{start: now, requests: 1}
			visitorMu.Unlock()
			c.Next()
			return
		}
		v.requests++
		count := v.requests
		visitorMu.Unlock()

		if count > maxRequests {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
