package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/Garridot/portfolio-email-center-api/internal/metrics"
	"github.com/Garridot/portfolio-email-center-api/internal/ratelimit"
)

// RateLimit gates requests through the multi-window limiter, keyed by the
// client network address. A counter store failure rejects the request: the
// gate fails closed rather than silently bypassing admission control.
func RateLimit(limiter *ratelimit.Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientAddr(r)

			dec, err := limiter.Allow(r.Context(), client)
			if err != nil {
				logger.Error("rate limit check failed", "remote_addr", client, "error", err)
				metrics.Requests.WithLabelValues(metrics.OutcomeStoreError).Inc()
				writeError(w, http.StatusServiceUnavailable, "Service temporarily unavailable.")
				return
			}

			if !dec.Allowed {
				logger.Warn("request rate limited", "remote_addr", client, "window", dec.Window.String())
				metrics.Requests.WithLabelValues(metrics.OutcomeRateLimited).Inc()
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(dec)))
				writeError(w, http.StatusTooManyRequests, fmt.Sprintf("Rate limit exceeded: %s", dec.Window))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientAddr derives the rate-limit key from the peer address. When the
// router's RealIP middleware is enabled, RemoteAddr already carries the
// proxy-resolved address.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func retryAfterSeconds(dec ratelimit.Decision) int {
	secs := int(math.Ceil(dec.RetryAfter.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
