package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/freddyb/standup/internal/middleware"
)

func TestRateLimiterThrottlesBursts(t *testing.T) {
	e := echo.New()
	e.POST("/api/v1/status/", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, middleware.RateLimiter())

	var throttled int
	for i := 0; i < 30; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/status/", nil)
		req.Header.Set(echo.HeaderXRealIP, "203.0.113.1")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if i == 0 {
			assert.Equal(t, http.StatusOK, rec.Code, "first request fits in the burst")
		}
		if rec.Code == http.StatusTooManyRequests {
			throttled++
		}
	}

	// Burst is 10, so an instant volley of 30 must hit the limiter.
	assert.GreaterOrEqual(t, throttled, 10)
}
