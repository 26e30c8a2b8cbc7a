// Package metrics exposes Prometheus counters for request outcomes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for Requests.
const (
	OutcomeSuccess         = "success"
	OutcomeUnauthorized    = "unauthorized"
	OutcomeRateLimited     = "rate_limited"
	OutcomeValidationError = "validation_error"
	OutcomeTransportError  = "transport_error"
	OutcomeStoreError      = "store_error"
)

var (
	// Requests counts send requests by terminal outcome.
	Requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_requests_total",
		Help: "Send requests partitioned by pipeline outcome.",
	}, []string{"outcome"})

	// EmailsSent counts messages accepted by the mail transport.
	EmailsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_emails_sent_total",
		Help: "Emails successfully handed off to the SMTP transport.",
	})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
