package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcomes.
const (
	OutcomeSuccess        = "success"
	OutcomeHTTPError      = "http_error"
	OutcomeTransportError = "transport_error"
	OutcomeParseError     = "parse_error"
)

// Submission results.
const (
	ResultInvalid   = "invalid"
	ResultSucceeded = "succeeded"
	ResultFailed    = "failed"
)

// Metrics holds the Prometheus collectors for alert fetches and submissions.
type Metrics struct {
	FetchRequests *prometheus.CounterVec // labels: outcome
	FetchDuration prometheus.Histogram
	Submissions   *prometheus.CounterVec // labels: result
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.FetchRequests, m.FetchDuration, m.Submissions)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// build as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "state_alerts",
			Name:      "fetch_requests_total",
			Help:      "Alert endpoint requests by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "state_alerts",
			Name:      "fetch_duration_seconds",
			Help:      "Alert endpoint request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "state_alerts",
			Name:      "submissions_total",
			Help:      "Controller submissions by result.",
		}, []string{"result"}),
	}
}

// ObserveFetch records one fetch. Safe on a nil receiver.
func (m *Metrics) ObserveFetch(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.FetchRequests.WithLabelValues(outcome).Inc()
	m.FetchDuration.Observe(d.Seconds())
}

// ObserveSubmission records one controller cycle. Safe on a nil receiver.
func (m *Metrics) ObserveSubmission(result string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(result).Inc()
}
