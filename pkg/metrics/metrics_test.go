package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.Parsed("responsegen-critic", nil)
	m.Parsed("responsegen-critic", errors.New("bad"))
	m.Parsed("responsegen-critic", nil)
	m.TaskDone("finished")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.parses.WithLabelValues("responsegen-critic", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.parses.WithLabelValues("responsegen-critic", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tasks.WithLabelValues("finished")))

	again, err := New(reg)
	require.NoError(t, err)
	again.TaskDone("finished")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.tasks.WithLabelValues("finished")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Parsed("responsegen-solver", nil)
		m.TaskDone("failed")
	})
}
