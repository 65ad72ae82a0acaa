package x

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds every wordstem metric. It is not the default registry
	// so that tests and embedding programs stay isolated.
	Registry = prometheus.NewRegistry()

	// WordsStemmed counts stemmed words by language and transport.
	WordsStemmed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wordstem",
		Name:      "words_stemmed_total",
		Help:      "Number of words stemmed.",
	}, []string{"language", "transport"})

	// StemLatency observes the duration of a stem request.
	StemLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wordstem",
		Name:      "request_duration_seconds",
		Help:      "Duration of stem requests.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"transport"})

	// CacheLookups counts stem cache lookups by result.
	CacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wordstem",
		Name:      "cache_lookups_total",
		Help:      "Stem cache lookups, by hit or miss.",
	}, []string{"result"})

	// RequestErrors counts failed requests by transport.
	RequestErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wordstem",
		Name:      "request_errors_total",
		Help:      "Failed requests.",
	}, []string{"transport"})
)

func init() {
	Registry.MustRegister(WordsStemmed, StemLatency, CacheLookups, RequestErrors)
}

// MetricsHandler serves Registry in the Prometheus text format.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
