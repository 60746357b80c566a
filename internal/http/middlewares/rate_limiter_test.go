package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestRateLimiter_PerClient(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }

	e := echo.New()
	e.Use(rateLimiter(3, time.Minute, 10*time.Minute, now))
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 3; i++ {
		if code := call("10.0.0.1"); code != http.StatusNoContent {
			t.Fatalf("request %d: expected 204, got %d", i+1, code)
		}
	}
	if code := call("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 once the burst is spent, got %d", code)
	}
	if code := call("10.0.0.2"); code != http.StatusNoContent {
		t.Fatalf("another client must not be limited, got %d", code)
	}

	clock = clock.Add(30 * time.Second)
	if code := call("10.0.0.1"); code != http.StatusNoContent {
		t.Fatalf("expected a token after refill, got %d", code)
	}
}
