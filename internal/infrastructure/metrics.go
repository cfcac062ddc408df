package infrastructure

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"gamrycli/internal/dataprocessing"
)

// Load outcome label values
const (
	StatusOK      = "ok"
	StatusAborted = "aborted"
	StatusError   = "error"
)

// LoadMetrics records DTA loads in a private Prometheus registry. It
// implements dataprocessing.Recorder and is safe for concurrent loads.
type LoadMetrics struct {
	registry     *prometheus.Registry
	filesLoaded  *prometheus.CounterVec
	curvesParsed prometheus.Counter
	rowsParsed   prometheus.Counter
	loadDuration prometheus.Histogram
}

var _ dataprocessing.Recorder = (*LoadMetrics)(nil)

// NewLoadMetrics creates the collectors and registers them
func NewLoadMetrics() *LoadMetrics {
	m := &LoadMetrics{
		registry: prometheus.NewRegistry(),
		filesLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamry_files_loaded_total",
			Help: "DTA files loaded, by experiment type and outcome.",
		}, []string{"experiment", "status"}),
		curvesParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamry_curves_parsed_total",
			Help: "Curve tables parsed across all loads.",
		}),
		rowsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamry_rows_parsed_total",
			Help: "Data rows parsed across all loads.",
		}),
		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gamry_load_duration_seconds",
			Help:    "Wall time of a single DTA load.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
	m.registry.MustRegister(m.filesLoaded, m.curvesParsed, m.rowsParsed, m.loadDuration)
	return m
}

// ObserveLoad records one finished load
func (m *LoadMetrics) ObserveLoad(s dataprocessing.LoadStats) {
	experiment := s.Experiment
	if experiment == "" {
		experiment = "unknown"
	}
	status := StatusOK
	switch {
	case s.Err != nil:
		status = StatusError
	case s.Aborted:
		status = StatusAborted
	}

	m.filesLoaded.WithLabelValues(experiment, status).Inc()
	m.curvesParsed.Add(float64(s.Curves))
	m.rowsParsed.Add(float64(s.Rows))
	m.loadDuration.Observe(s.Duration.Seconds())
}

// Registry exposes the underlying registry
func (m *LoadMetrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes the metrics in the node_exporter textfile format
func (m *LoadMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
