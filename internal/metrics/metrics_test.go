package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.Classified()
	r.Classified()
	r.ValidationFailed("incomplete_submission")
	r.AICall("chat", nil)
	r.AICall("chat", errors.New("timeout"))
	r.Fallback("chat")
	r.CacheLookup(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.classifications))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.validationErrors.WithLabelValues("incomplete_submission")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.aiCalls.WithLabelValues("chat", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.fallbacks.WithLabelValues("chat")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheLookups.WithLabelValues("hit")))

	r.ObserveHTTP("GET", "/health", "200", 5*time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(r.httpRequests))
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	r.Classified()
	r.ValidationFailed("x")
	r.AICall("x", nil)
	r.Fallback("x")
	r.CacheLookup(false)
	r.ObserveHTTP("GET", "/", "200", time.Second)
}
