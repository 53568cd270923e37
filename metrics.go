package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// namespace of all exported metrics
const namespace = "memserve"

type metrics struct {
	Requests    *prometheus.CounterVec
	LoadedFiles prometheus.Gauge
	LoadedBytes prometheus.Gauge
}

func newMetrics() metrics {
	return metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Number of asset requests by outcome.",
		}, []string{"outcome"}),
		LoadedFiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "loaded_files",
			Help:      "Number of files held in memory.",
		}),
		LoadedBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "loaded_bytes",
			Help:      "Total size of files held in memory.",
		}),
	}
}

func newMetricsRegistry(m metrics) *prometheus.Registry {
	r := prometheus.NewRegistry()

	// register standard metrics
	r.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
			Namespace: namespace,
		}),
		collectors.NewGoCollector(),
		m.Requests,
		m.LoadedFiles,
		m.LoadedBytes,
	)
	return r
}
