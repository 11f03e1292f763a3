package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/neonpress/neonpress/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLimitedRouter(t *testing.T, ratePerSec, burst int) *gin.Engine {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	r := gin.New()
	r.Use(middleware.NewRateLimiter(ctx, ratePerSec, burst).Handler())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func limitedRequest(r *gin.Engine, remoteAddr string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.RemoteAddr = remoteAddr
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	r := newLimitedRouter(t, 10, 5)

	if code := limitedRequest(r, "1.2.3.4:1234"); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestRateLimiter_BlocksExceedingBurst(t *testing.T) {
	r := newLimitedRouter(t, 1, 2)

	for i := range 3 {
		code := limitedRequest(r, "1.2.3.4:1234")
		if i < 2 && code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, code)
		}
		if i == 2 && code != http.StatusTooManyRequests {
			t.Fatalf("request %d: expected 429, got %d", i, code)
		}
	}
}

func TestRateLimiter_BucketsPerIP(t *testing.T) {
	r := newLimitedRouter(t, 1, 1)

	limitedRequest(r, "1.1.1.1:1000") // spends IP A's only token

	if code := limitedRequest(r, "2.2.2.2:1000"); code != http.StatusOK {
		t.Fatalf("different IP should not be rate limited, got %d", code)
	}
}

func TestRateLimiter_TokensRefillOverTime(t *testing.T) {
	// Rate high enough that any measurable elapsed time refills a token.
	r := newLimitedRouter(t, 1_000_000, 2)

	for range 2 {
		limitedRequest(r, "5.5.5.5:1000")
	}

	if code := limitedRequest(r, "5.5.5.5:1000"); code != http.StatusOK {
		t.Fatalf("expected tokens to refill, got %d", code)
	}
}
