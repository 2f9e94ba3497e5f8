package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	ExtractionsTotal   *prometheus.CounterVec
	FetchDuration      *prometheus.HistogramVec
	FetchErrorsTotal   *prometheus.CounterVec
	CacheLookupsTotal  *prometheus.CounterVec
	ChatRepliesTotal   *prometheus.CounterVec
	CompletionFailures *prometheus.CounterVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics registers every collector on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ExtractionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "salesbot_extractions_total",
			Help: "The total number of extraction requests by outcome",
		}, []string{"outcome"}), // cached, primary, secondary, default
		FetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "salesbot_fetch_duration_seconds",
			Help:    "Duration of page fetches",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 15},
		}, []string{"strategy"}),
		FetchErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "salesbot_fetch_errors_total",
			Help: "The total number of failed page fetches",
		}, []string{"strategy", "type"}), // e.g. 'timeout', 'status', 'redirects'
		CacheLookupsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "salesbot_cache_lookups_total",
			Help: "Facts cache lookups by result",
		}, []string{"result"}),
		ChatRepliesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "salesbot_chat_replies_total",
			Help: "Chat replies by intent and source",
		}, []string{"intent", "source"}), // source: llm, template
		CompletionFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "salesbot_completion_failures_total",
			Help: "Completion calls that fell back to the template reply",
		}, []string{"type"}),
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

func (m *Metrics) IncExtraction(outcome string) {
	if m == nil {
		return
	}
	m.ExtractionsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveFetch(strategy string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.FetchDuration.WithLabelValues(strategy).Observe(elapsed.Seconds())
}

func (m *Metrics) IncFetchError(strategy, errorType string) {
	if m == nil {
		return
	}
	m.FetchErrorsTotal.WithLabelValues(strategy, errorType).Inc()
}

func (m *Metrics) IncCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookupsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) IncChatReply(intent, source string) {
	if m == nil {
		return
	}
	m.ChatRepliesTotal.WithLabelValues(intent, source).Inc()
}

func (m *Metrics) IncCompletionFailure(errorType string) {
	if m == nil {
		return
	}
	m.CompletionFailures.WithLabelValues(errorType).Inc()
}
