package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SetupPrometheus creates a fresh registry with the build info, go runtime and
// process collectors, plus any extra collectors (e.g. the pgx pool one).
func SetupPrometheus(extraCollectors ...prometheus.Collector) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	for _, c := range extraCollectors {
		if c == nil {
			continue
		}
		promRegistry.MustRegister(c)
	}

	return promRegistry
}
