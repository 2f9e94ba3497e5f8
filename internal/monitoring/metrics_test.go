package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, c.Write(&metric))
	return metric.GetCounter().GetValue()
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.IncExtraction("primary")
	m.IncExtraction("primary")
	m.IncCacheLookup(true)
	m.IncCacheLookup(false)
	m.IncChatReply("price", "template")
	m.IncFetchError("http", "timeout")
	m.IncCompletionFailure("status")
	m.ObserveFetch("http", 200*time.Millisecond)
	m.ObserveHTTPRequest("GET", "/extract", 200, time.Millisecond)

	assert.Equal(t, 2.0, counterValue(t, m.ExtractionsTotal.WithLabelValues("primary")))
	assert.Equal(t, 1.0, counterValue(t, m.CacheLookupsTotal.WithLabelValues("hit")))
	assert.Equal(t, 1.0, counterValue(t, m.CacheLookupsTotal.WithLabelValues("miss")))
	assert.Equal(t, 1.0, counterValue(t, m.ChatRepliesTotal.WithLabelValues("price", "template")))
	assert.Equal(t, 1.0, counterValue(t, m.FetchErrorsTotal.WithLabelValues("http", "timeout")))
	assert.Equal(t, 1.0, counterValue(t, m.CompletionFailures.WithLabelValues("status")))
	assert.Equal(t, 1.0, counterValue(t, m.HTTPRequestsTotal.WithLabelValues("GET", "/extract", "200")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncExtraction("default")
		m.IncCacheLookup(true)
		m.ObserveFetch("http", time.Second)
		m.ObserveHTTPRequest("GET", "/", 500, time.Second)
	})
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(prometheus.NewRegistry())
		NewMetrics(prometheus.NewRegistry())
	})
}
