package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder is the interface services use to report domain events.
type Recorder interface {
	RecordCodeIssued()
	RecordCodeVerified()
	RecordSwipe(action string)
	RecordMatchCreated()
	RecordMessageSent()
}

// Collector implements Recorder on top of Prometheus counters.
type Collector struct {
	codesIssued   prometheus.Counter
	codesVerified prometheus.Counter
	swipes        *prometheus.CounterVec
	matches       prometheus.Counter
	messages      prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		codesIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swipeapi_otp_codes_issued_total",
			Help: "Total one-time codes issued.",
		}),
		codesVerified: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swipeapi_otp_codes_verified_total",
			Help: "Total one-time codes verified successfully.",
		}),
		swipes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "swipeapi_swipes_total",
			Help: "Total swipes recorded, by action.",
		}, []string{"action"}),
		matches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swipeapi_matches_created_total",
			Help: "Total matches created.",
		}),
		messages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swipeapi_messages_sent_total",
			Help: "Total chat messages sent.",
		}),
	}

	reg.MustRegister(
		c.codesIssued,
		c.codesVerified,
		c.swipes,
		c.matches,
		c.messages,
	)

	return c
}

func (c *Collector) RecordCodeIssued()   { c.codesIssued.Inc() }
func (c *Collector) RecordCodeVerified() { c.codesVerified.Inc() }

func (c *Collector) RecordSwipe(action string) {
	c.swipes.WithLabelValues(action).Inc()
}

func (c *Collector) RecordMatchCreated() { c.matches.Inc() }
func (c *Collector) RecordMessageSent()  { c.messages.Inc() }

// Nop is a Recorder that discards everything. Handy in tests and when
// metrics are disabled.
type Nop struct{}

func (Nop) RecordCodeIssued()   {}
func (Nop) RecordCodeVerified() {}
func (Nop) RecordSwipe(string)  {}
func (Nop) RecordMatchCreated() {}
func (Nop) RecordMessageSent()  {}
