package rowstore

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var rowstoreRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "rowstore_requests_total",
		Help: "Total number of row-store requests",
	},
	[]string{"collection", "method", "outcome"},
)

func recordRequest(collection, method, outcome string) {
	rowstoreRequests.WithLabelValues(collection, method, outcome).Inc()
}
