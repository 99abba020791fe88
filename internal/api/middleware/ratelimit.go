package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/mcoot/gamevault/internal/api/apierr"
	"github.com/mcoot/gamevault/internal/dependencies/clock"
	"github.com/mcoot/gamevault/internal/middleware"
	"github.com/mcoot/gamevault/internal/ratelimit"
)

// RateLimit creates middleware that limits requests per client IP and
// reports the budget in RateLimit-* headers.
// If the limiter itself fails the request is let through.
func RateLimit(limiter ratelimit.Limiter, clk clock.Clock, errs *apierr.Writer, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := middleware.ClientIP(r)

			decision, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				logger.Error("rate limiter unavailable",
					slog.String("client_ip", ip),
					slog.String("error", err.Error()),
				)
				next.ServeHTTP(w, r)
				return
			}

			resetSeconds := secondsUntil(decision.Reset, clk.Now())
			w.Header().Set("RateLimit-Limit", strconv.Itoa(decision.Limit))
			w.Header().Set("RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			w.Header().Set("RateLimit-Reset", strconv.Itoa(resetSeconds))

			if !decision.Allowed {
				logger.Warn("rate limit exceeded",
					slog.String("client_ip", ip),
					slog.String("path", r.URL.Path),
				)
				w.Header().Set("Retry-After", strconv.Itoa(resetSeconds))
				errs.Write(w, r, apierr.NewRateLimitedError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func secondsUntil(t, now time.Time) int {
	s := int(math.Ceil(t.Sub(now).Seconds()))
	if s < 1 {
		return 1
	}
	return s
}
