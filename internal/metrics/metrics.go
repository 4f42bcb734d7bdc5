package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "velora",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	bookingOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "velora",
			Name:      "booking_operations_total",
			Help:      "Booking store operations by type.",
		},
		[]string{"operation"},
	)

	canonicalFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "velora",
			Name:      "canonical_fallbacks_total",
			Help:      "Canonical resolutions that matched no rule group.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingOps, canonicalFallbacks)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncBookingOp increments the counter for a booking operation label.
func IncBookingOp(operation string) {
	bookingOps.WithLabelValues(operation).Inc()
}

// IncCanonicalFallback counts a path that fell through to self-canonical.
func IncCanonicalFallback() {
	canonicalFallbacks.Inc()
}
