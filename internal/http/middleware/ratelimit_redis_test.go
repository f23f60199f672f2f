package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// Needs a live Redis; set REDIS_ADDR to run.
func TestRedisRateLimitBlocksWhenWindowFull(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			db = n
		}
	}
	InitRedisRateLimiter(addr, os.Getenv("REDIS_PASSWORD"), db)
	if rdb == nil {
		t.Fatalf("limiter did not connect to %s", addr)
	}

	// A window no real player would fill by hand: two mines, then a block.
	maxMines := 2
	window := 2 * time.Second

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/actions/mine", RedisRateLimit(maxMines, window), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	mine := func() int {
		t.Helper()
		res, err := http.Post(srv.URL+"/actions/mine", "application/json", nil)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		res.Body.Close()
		return res.StatusCode
	}

	for i := 0; i < maxMines; i++ {
		if code := mine(); code != http.StatusOK {
			t.Fatalf("mine %d: status = %d, want 200", i+1, code)
		}
	}
	if code := mine(); code != http.StatusTooManyRequests {
		t.Fatalf("over-limit mine: status = %d, want 429", code)
	}

	// After the window expires the same player mines again.
	time.Sleep(window + 100*time.Millisecond)
	if code := mine(); code != http.StatusOK {
		t.Fatalf("post-window mine: status = %d, want 200", code)
	}
}
