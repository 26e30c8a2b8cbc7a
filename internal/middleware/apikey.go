package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/Garridot/portfolio-email-center-api/internal/metrics"
)

const apiKeyHeader = "x-api-key"

// APIKey rejects requests whose x-api-key header is absent or does not match
// the configured secret. It must run before rate limiting so that rejected
// requests are never charged against quota.
func APIKey(key string) func(http.Handler) http.Handler {
	secret := []byte(key)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(apiKeyHeader)
			if provided == "" || subtle.ConstantTimeCompare([]byte(provided), secret) != 1 {
				metrics.Requests.WithLabelValues(metrics.OutcomeUnauthorized).Inc()
				writeError(w, http.StatusUnauthorized, "Unauthorized access")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
