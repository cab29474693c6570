package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce       sync.Once
	httpRequestsTotal  *prometheus.CounterVec
	httpLatencySeconds *prometheus.HistogramVec
	contentMutations   *prometheus.CounterVec
	adminLoginsTotal   *prometheus.CounterVec
	cacheRequestsTotal *prometheus.CounterVec
	uploadRejected     *prometheus.CounterVec
	uploadLatency      prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors used by the service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cms_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cms_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		contentMutations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cms_content_mutations_total",
			Help: "Content mutations applied, by entity and action.",
		}, []string{"entity", "action"})

		adminLoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cms_admin_logins_total",
			Help: "Administrator login attempts by outcome.",
		}, []string{"outcome"})

		cacheRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cms_cache_requests_total",
			Help: "Read cache lookups by cache name and result.",
		}, []string{"cache", "result"})

		uploadRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cms_upload_rejected_total",
			Help: "Rejected image uploads by reason.",
		}, []string{"reason"})

		uploadLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cms_upload_latency_seconds",
			Help:    "Latency of image uploads including storage round-trip.",
			Buckets: prometheus.DefBuckets,
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			contentMutations,
			adminLoginsTotal,
			cacheRequestsTotal,
			uploadRejected,
			uploadLatency,
		)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// ContentMutations exposes the mutation counter.
func ContentMutations() *prometheus.CounterVec {
	RegisterMetrics()
	return contentMutations
}

// AdminLogins exposes the login outcome counter.
func AdminLogins() *prometheus.CounterVec {
	RegisterMetrics()
	return adminLoginsTotal
}

// CacheRequests exposes the cache lookup counter.
func CacheRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return cacheRequestsTotal
}

// UploadRejected exposes the upload rejection counter.
func UploadRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRejected
}

// UploadLatency exposes the upload latency histogram.
func UploadLatency() prometheus.Histogram {
	RegisterMetrics()
	return uploadLatency
}
