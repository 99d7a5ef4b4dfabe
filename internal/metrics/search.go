package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search reconciliation Prometheus metrics.
var (
	SearchAPIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "doofinder",
			Name:      "search_api_requests_total",
			Help:      "Total number of hosted search API requests",
		},
		[]string{"engine", "status"},
	)

	SearchAPIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "doofinder",
			Name:      "search_api_request_duration_seconds",
			Help:      "Hosted search API request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"engine"},
	)

	ReconcileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "doofinder",
			Name:      "reconcile_total",
			Help:      "Reconciliation outcomes",
		},
		[]string{"outcome"}, // "reconciled" / "skipped" / "fallback"
	)

	BannerEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "doofinder",
			Name:      "banner_events_total",
			Help:      "Banner telemetry events",
		},
		[]string{"event", "status"}, // event: "impression" / "click"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchAPIRequestsTotal)
	prometheus.MustRegister(SearchAPIRequestDuration)
	prometheus.MustRegister(ReconcileTotal)
	prometheus.MustRegister(BannerEventsTotal)
	searchMetricsRegistered = true
}
