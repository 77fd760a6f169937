package http

import (
	"math"
	"net"
	"net/http"
	"strconv"
)

// RateLimit rejects clients, keyed by remote IP, that exceed the limiter's
// budget. Mount middleware.RealIP ahead of it when running behind a proxy.
func RateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			d := limiter.Allow(ip)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))

			if !d.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(d.RetryAfter.Seconds()))))
				httpError(w, http.StatusTooManyRequests, "rate_limit_error", "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
