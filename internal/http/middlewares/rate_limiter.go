package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter allows each client IP limit requests per window, refilled
// evenly, with a burst of limit. Clients idle for longer than idleTTL are
// forgotten.
func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	return rateLimiter(limit, window, 10*window, time.Now)
}

func rateLimiter(limit int, window, idleTTL time.Duration, now func() time.Time) echo.MiddlewareFunc {
	if limit <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	var (
		mu        sync.Mutex
		visitors  = make(map[string]*visitor)
		lastSweep = now()
		every     = rate.Every(window / time.Duration(limit))
	)

	get := func(key string, t time.Time) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		if t.Sub(lastSweep) > idleTTL {
			for k, v := range visitors {
				if t.Sub(v.lastSeen) > idleTTL {
					delete(visitors, k)
				}
			}
			lastSweep = t
		}

		v, ok := visitors[key]
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(every, limit)}
			visitors[key] = v
		}
		v.lastSeen = t
		return v.limiter
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			t := now()
			if !get(c.RealIP(), t).AllowN(t, 1) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
