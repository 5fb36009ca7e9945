// internal/observability/metrics.go
// Metrics Prometheus untuk pipeline DCA, dataset, dan HTTP.

package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application collectors. Each instance owns its registry so
// tests can build as many as they like. A nil *Metrics records nothing.
type Metrics struct {
	reg *prometheus.Registry

	PipelineRuns     *prometheus.CounterVec // status: ok|not_found|unprocessable|bad_input|internal
	PipelineDuration prometheus.Histogram
	ZeroRateWarnings *prometheus.CounterVec // kind
	EstimatedD       prometheus.Histogram

	DatasetLoads    *prometheus.CounterVec // source, status
	DatasetRecords  prometheus.Gauge
	DatasetLoadedAt prometheus.Gauge

	HTTPRequests *prometheus.CounterVec // route, code
	Exports      *prometheus.CounterVec // compression
}

func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "dca"
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		PipelineRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Forecast pipeline runs by outcome",
		}, []string{"status"}),
		PipelineDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Forecast pipeline latency",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}),
		ZeroRateWarnings: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "warnings_total",
			Help:      "Data warnings raised while fitting D",
		}, []string{"kind"}),
		EstimatedD: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "estimated_decline_per_month",
			Help:      "Distribution of estimated decline constants",
			Buckets:   []float64{-0.05, 0, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5},
		}),
		DatasetLoads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "loads_total",
			Help:      "Dataset (re)loads by source and outcome",
		}, []string{"source", "status"}),
		DatasetRecords: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "records",
			Help:      "Production records in the active snapshot",
		}),
		DatasetLoadedAt: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "loaded_timestamp_seconds",
			Help:      "Unix time the active snapshot was loaded",
		}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		Exports: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "csv_total",
			Help:      "Projection CSV downloads by compression",
		}, []string{"compression"}),
	}
}

// Handler expose registry dalam format Prometheus.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

func (m *Metrics) ObservePipeline(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.PipelineRuns.WithLabelValues(status).Inc()
	m.PipelineDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveEstimate(d float64) {
	if m == nil {
		return
	}
	m.EstimatedD.Observe(d)
}

func (m *Metrics) ObserveWarning(kind string) {
	if m == nil {
		return
	}
	m.ZeroRateWarnings.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveDatasetLoad(source, status string, records int, at time.Time) {
	if m == nil {
		return
	}
	m.DatasetLoads.WithLabelValues(source, status).Inc()
	if status == "ok" {
		m.DatasetRecords.Set(float64(records))
		m.DatasetLoadedAt.Set(float64(at.Unix()))
	}
}

func (m *Metrics) ObserveHTTP(route string, code int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

func (m *Metrics) ObserveExport(compression string) {
	if m == nil {
		return
	}
	m.Exports.WithLabelValues(compression).Inc()
}
