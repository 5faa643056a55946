package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordCodeIssued()
	c.RecordCodeIssued()
	c.RecordCodeVerified()
	c.RecordSwipe("like")
	c.RecordSwipe("like")
	c.RecordSwipe("pass")
	c.RecordMatchCreated()
	c.RecordMessageSent()

	assert.Equal(t, float64(2), testutil.ToFloat64(c.codesIssued))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.codesVerified))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.swipes.WithLabelValues("like")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.swipes.WithLabelValues("pass")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.matches))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.messages))
}

func TestNop_ImplementsRecorder(t *testing.T) {
	var r Recorder = Nop{}
	r.RecordCodeIssued()
	r.RecordSwipe("like")
	assert.NotNil(t, r)
}
