package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blueprint"

// Recorder holds the service's Prometheus collectors. A nil *Recorder is
// valid and records nothing.
type Recorder struct {
	classifications  prometheus.Counter
	validationErrors *prometheus.CounterVec
	aiCalls          *prometheus.CounterVec
	fallbacks        *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
	httpRequests     *prometheus.HistogramVec
}

// New registers collectors on reg, or the default registerer when nil.
// Tests should pass a fresh prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Recorder{
		classifications: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "quiz",
			Name:      "classifications_total",
			Help:      "Number of quiz submissions successfully classified",
		}),
		validationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "quiz",
			Name:      "validation_errors_total",
			Help:      "Rejected quiz submissions by validation kind",
		}, []string{"kind"}),
		aiCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ai",
			Name:      "calls_total",
			Help:      "AI completion calls by feature and outcome",
		}, []string{"feature", "outcome"}),
		fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ai",
			Name:      "fallbacks_total",
			Help:      "Responses served from canned fallback content",
		}, []string{"feature"}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Suggestion cache lookups by result",
		}, []string{"result"}),
		httpRequests: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method, route and status",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (r *Recorder) Classified() {
	if r == nil {
		return
	}
	r.classifications.Inc()
}

func (r *Recorder) ValidationFailed(kind string) {
	if r == nil {
		return
	}
	r.validationErrors.WithLabelValues(kind).Inc()
}

func (r *Recorder) AICall(feature string, err error) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.aiCalls.WithLabelValues(feature, outcome).Inc()
}

func (r *Recorder) Fallback(feature string) {
	if r == nil {
		return
	}
	r.fallbacks.WithLabelValues(feature).Inc()
}

func (r *Recorder) CacheLookup(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

func (r *Recorder) ObserveHTTP(method, route, status string, d time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, status).Observe(d.Seconds())
}
