package gateway

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder receives request outcomes. class is "ok", "transport" or an
// ErrorKind label.
type Recorder interface {
	ObserveRequest(method, class string, d time.Duration)
	SessionReset()
}

type nopRecorder struct{}

func (nopRecorder) ObserveRequest(string, string, time.Duration) {}
func (nopRecorder) SessionReset()                                {}

// Collector is the Prometheus Recorder.
type Collector struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	resets   prometheus.Counter
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lingo_gateway_requests_total",
			Help: "API requests by method and outcome class.",
		}, []string{"method", "class"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lingo_gateway_request_duration_seconds",
			Help:    "API request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lingo_gateway_session_resets_total",
			Help: "Sessions cleared after a 401 response.",
		}),
	}
	reg.MustRegister(c.requests, c.latency, c.resets)
	return c
}

func (c *Collector) ObserveRequest(method, class string, d time.Duration) {
	c.requests.WithLabelValues(method, class).Inc()
	c.latency.WithLabelValues(method).Observe(d.Seconds())
}

func (c *Collector) SessionReset() { c.resets.Inc() }

var _ Recorder = (*Collector)(nil)
