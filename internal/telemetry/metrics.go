package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequests counts handled HTTP requests by method, path pattern and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contacts",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)

	// LoginsTotal counts login attempts by outcome
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contacts",
			Name:      "logins_total",
			Help:      "Total number of login attempts",
		},
		[]string{"outcome"},
	)

	// RefreshesTotal counts session refresh attempts by outcome
	RefreshesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contacts",
			Name:      "session_refreshes_total",
			Help:      "Total number of session refresh attempts",
		},
		[]string{"outcome"},
	)

	// AuthFailures counts rejected bearer-token authentications
	AuthFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "contacts",
			Name:      "auth_failures_total",
			Help:      "Total number of rejected bearer-token authentications",
		},
	)
)

var registerOnce sync.Once

// Register registers all metrics with the default prometheus registry.
// Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequests,
			LoginsTotal,
			RefreshesTotal,
			AuthFailures,
		)
	})
}
