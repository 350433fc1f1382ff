// Package metrics holds the Prometheus collectors for outbound Inform Direct
// API traffic and the token lifecycle. Collectors register on the default
// registry; expose them with promhttp.Handler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Auth event names.
const (
	AuthEventAuthenticate   = "authenticate"
	AuthEventRefresh        = "refresh"
	AuthEventReauthenticate = "reauthenticate"
	AuthEventLogout         = "logout"
)

// Auth event outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// API call metrics.
var (
	// APICalls counts completed round trips by method, route and status.
	APICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "informdirect_api_requests_total",
			Help: "Total Inform Direct API requests by method, route, and status code",
		},
		[]string{"method", "route", "status"},
	)

	// APIDuration tracks round trip latency.
	APIDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "informdirect_api_request_duration_seconds",
			Help:    "Inform Direct API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// APIErrors counts failed round trips by error class.
	APIErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "informdirect_api_errors_total",
			Help: "Total Inform Direct API errors by route and error type",
		},
		[]string{"route", "error_type"},
	)
)

// Token lifecycle metrics.
var (
	// AuthEvents counts authenticate, refresh, fallback re-authenticate and
	// logout attempts by outcome.
	AuthEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "informdirect_auth_events_total",
			Help: "Token lifecycle events by event and outcome",
		},
		[]string{"event", "outcome"},
	)
)

// RecordAuthEvent increments AuthEvents for event, using OutcomeFailure when
// err is non-nil.
func RecordAuthEvent(event string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}

	AuthEvents.WithLabelValues(event, outcome).Inc()
}
