// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names recorded by the transcoder.
const (
	MetricRuns        = "zst_runs_total"
	MetricFailures    = "zst_failures_total"
	MetricInputBytes  = "zst_input_bytes_total"
	MetricOutputBytes = "zst_output_bytes_total"

	// MetricDuration is observed in seconds.
	MetricDuration = "zst_duration_seconds"

	// MetricLastSuccess holds the Unix time of the last successful run.
	MetricLastSuccess = "zst_last_success_timestamp_seconds"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
