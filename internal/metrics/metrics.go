package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Export outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

// Metrics holds the collectors of one process on a dedicated registry.
type Metrics struct {
	Registry *prometheus.Registry

	Exports        *prometheus.CounterVec
	ExportDuration *prometheus.HistogramVec
	LayoutWarnings *prometheus.CounterVec
	LogoFailures   *prometheus.CounterVec
}

// New registers the document metrics and the Go runtime collectors on a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Exports: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crmdocs_exports_total",
				Help: "Documents exported, by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		ExportDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "crmdocs_export_duration_seconds",
				Help:    "Time to load, lay out and serialize one document",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		LayoutWarnings: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crmdocs_layout_warnings_total",
				Help: "Layout fields that fell back to their default",
			},
			[]string{"kind"},
		),
		LogoFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crmdocs_logo_failures_total",
				Help: "Logos that could not be fetched or decoded",
			},
			[]string{"kind"},
		),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
