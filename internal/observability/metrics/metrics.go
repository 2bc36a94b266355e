package metrics

import "github.com/prometheus/client_golang/prometheus"

// DashboardMetrics exposes counters/histograms for dashboard render flows.
type DashboardMetrics struct {
	fetchLatency   *prometheus.HistogramVec
	classification *prometheus.CounterVec
	cacheTotal     *prometheus.CounterVec
}

func NewDashboardMetrics(reg prometheus.Registerer) *DashboardMetrics {
	m := &DashboardMetrics{
		fetchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sparky",
			Subsystem: "dashboard",
			Name:      "fetch_latency_seconds",
			Help:      "Latency of data store fetches by source",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source", "status"}),
		classification: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sparky",
			Subsystem: "dashboard",
			Name:      "classified_conversations_total",
			Help:      "Conversations classified per render, by outcome",
		}, []string{"outcome"}),
		cacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sparky",
			Subsystem: "dashboard",
			Name:      "cache_requests_total",
			Help:      "Cache lookups in front of the data store",
		}, []string{"result"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.fetchLatency, m.classification, m.cacheTotal)
	return m
}

func (m *DashboardMetrics) ObserveFetch(source, status string, seconds float64) {
	if m == nil {
		return
	}
	m.fetchLatency.WithLabelValues(source, status).Observe(seconds)
}

func (m *DashboardMetrics) ObserveClassification(outcome string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.classification.WithLabelValues(outcome).Add(float64(count))
}

func (m *DashboardMetrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheTotal.WithLabelValues(result).Inc()
}
