package cache

import "github.com/prometheus/client_golang/prometheus"

var requests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sakina_cache_requests_total",
		Help: "Cache lookups by dataset and outcome (hit, miss, fetch_failed)",
	},
	[]string{"dataset", "result"},
)

func init() {
	prometheus.MustRegister(requests)
}
