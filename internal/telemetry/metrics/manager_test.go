package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()
	require.NotNil(t, m)

	m.CounterRegistrations.Inc()
	m.CounterLogins.With(prometheus.Labels{"result": "ok"}).Inc()
	m.CounterLogins.With(prometheus.Labels{"result": "invalid_credentials"}).Add(2)
	m.CounterWorkoutsAdded.Add(3)
	m.GaugeLifeSignal.Set(1)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterRegistrations))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CounterLogins.WithLabelValues("invalid_credentials")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.CounterWorkoutsAdded))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.GaugeLifeSignal))

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := map[string]*dto.MetricFamily{}
	for _, f := range families {
		byName[f.GetName()] = f
	}
	require.Contains(t, byName, "fittrack_test_server_logins")
	assert.Len(t, byName["fittrack_test_server_logins"].GetMetric(), 2)
	assert.Equal(t, dto.MetricType_GAUGE, byName["fittrack_test_server_life_signal"].GetType())
}

func TestSetupPrometheus(t *testing.T) {
	extra := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "extra_collector_total",
		Help: "extra",
	})
	reg := SetupPrometheus(extra, nil)
	require.NotNil(t, reg)
	extra.Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["extra_collector_total"])
	assert.True(t, names["go_goroutines"])
}
