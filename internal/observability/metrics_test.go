package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/Zachdehooge/state-alerts/internal/config"
)

func TestObserveFetch_CountsByOutcome(t *testing.T) {
	m := NewMetricsForTesting()

	m.ObserveFetch(OutcomeSuccess, 10*time.Millisecond)
	m.ObserveFetch(OutcomeSuccess, 20*time.Millisecond)
	m.ObserveFetch(OutcomeHTTPError, time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.FetchRequests.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FetchRequests.WithLabelValues(OutcomeHTTPError)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.FetchDuration))
}

func TestObserveSubmission_CountsByResult(t *testing.T) {
	m := NewMetricsForTesting()

	m.ObserveSubmission(ResultInvalid)
	m.ObserveSubmission(ResultSucceeded)
	m.ObserveSubmission(ResultSucceeded)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Submissions.WithLabelValues(ResultInvalid)))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.Submissions.WithLabelValues(ResultSucceeded)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFetch(OutcomeSuccess, time.Second)
		m.ObserveSubmission(ResultFailed)
	})
}

func TestNewLogger_Format(t *testing.T) {
	logger := NewLogger(&config.Config{LogLevel: logrus.DebugLevel, LogFormat: config.LogFormatJSON})
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	logger = NewLogger(&config.Config{LogLevel: logrus.InfoLevel, LogFormat: config.LogFormatText})
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}
