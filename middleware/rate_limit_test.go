package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func rateLimitRouter(rps rate.Limit, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(rps, burst))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return r
}

func doPing(r *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitDisabledByDefault(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	r := rateLimitRouter(1, 1)

	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, doPing(r))
	}
}

func TestRateLimitEnabledBlocksBeyondBurst(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	r := rateLimitRouter(1, 2)

	assert.Equal(t, http.StatusOK, doPing(r))
	assert.Equal(t, http.StatusOK, doPing(r))
	assert.Equal(t, http.StatusTooManyRequests, doPing(r))
}

func TestRateLimitRequiresExactTrue(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "yes")
	r := rateLimitRouter(1, 1)

	assert.Equal(t, http.StatusOK, doPing(r))
	assert.Equal(t, http.StatusOK, doPing(r))
}
