package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/csdlgen/pkg/annotation"
)

// Metrics groups the renderer collectors.
type Metrics struct {
	renders     *prometheus.CounterVec
	duration    prometheus.Histogram
	diagnostics *prometheus.CounterVec
	schemas     prometheus.Gauge
	saves       *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg when it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "csdlgen_renders_total",
				Help: "Total number of rendered documents",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "csdlgen_render_duration_seconds",
				Help:    "Duration of document renders",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
		),
		diagnostics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "csdlgen_diagnostics_total",
				Help: "Diagnostics reported while applying declarations",
			},
			[]string{"code", "severity"},
		),
		schemas: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "csdlgen_schemas",
				Help: "Number of Schema elements in the last rendered document",
			},
		),
		saves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "csdlgen_document_saves_total",
				Help: "Document store writes",
			},
			[]string{"outcome"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.renders, m.duration, m.diagnostics, m.schemas, m.saves)
	}
	return m
}

// Outcome label values.
const (
	OutcomeOK          = "ok"
	OutcomeDiagnostics = "diagnostics"
	OutcomeError       = "error"
)

// ObserveRender records one render.
func (m *Metrics) ObserveRender(elapsed time.Duration, schemas int, diags annotation.Diagnostics) {
	if m == nil {
		return
	}

	outcome := OutcomeOK
	if diags.HasErrors() {
		outcome = OutcomeDiagnostics
	}
	m.renders.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
	m.schemas.Set(float64(schemas))

	for _, d := range diags {
		m.diagnostics.WithLabelValues(string(d.Code), d.Severity.String()).Inc()
	}
}

// ObserveSave records one document store write.
func (m *Metrics) ObserveSave(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.saves.WithLabelValues(OutcomeError).Inc()
		return
	}
	m.saves.WithLabelValues(OutcomeOK).Inc()
}
