package middlewares

import (
	"net/http"
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit applies a per-IP token bucket. It is a pass-through unless
// RATE_LIMIT_ENABLED=true; the limiter ships disabled.
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	enabled := os.Getenv("RATE_LIMIT_ENABLED") == "true"

	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(rps, burst)
			limiters[ip] = limiter
		}
		return limiter
	}

	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}
		if !limiterFor(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
