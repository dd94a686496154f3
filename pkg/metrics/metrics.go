// Package metrics exports run results in the Prometheus text format so a
// node_exporter textfile collector can pick them up after a CI run.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/systemstart/mldeploy/pkg/report"
)

const namespace = "mldeploy"

// Recorder holds the metrics of one process on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	stepsTotal      *prometheus.CounterVec
	stepDuration    *prometheus.HistogramVec
	runStatus       *prometheus.GaugeVec
	runExitCode     *prometheus.GaugeVec
	runDuration     *prometheus.GaugeVec
	lastRunUnixTime *prometheus.GaugeVec
}

// New creates a Recorder with all collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		stepsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "step",
				Name:      "outcomes_total",
				Help:      "Number of step outcomes by catalog, step and status",
			},
			[]string{"catalog", "step", "status"},
		),

		stepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "step",
				Name:      "duration_seconds",
				Help:      "Duration of step invocations in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.5, 2, 13), // 500ms to ~34min
			},
			[]string{"catalog", "step"},
		),

		runStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "run",
				Name:      "status",
				Help:      "Whether the last run ended with the given status (1) or not (0)",
			},
			[]string{"catalog", "run_type", "status"},
		),

		runExitCode: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "run",
				Name:      "exit_code",
				Help:      "Process exit code of the last run",
			},
			[]string{"catalog", "run_type"},
		),

		runDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "run",
				Name:      "duration_seconds",
				Help:      "Wall-clock duration of the last run in seconds",
			},
			[]string{"catalog", "run_type"},
		),

		lastRunUnixTime: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "run",
				Name:      "last_timestamp_seconds",
				Help:      "Unix time the last run started",
			},
			[]string{"catalog", "run_type"},
		),
	}

	r.registry.MustRegister(
		r.stepsTotal,
		r.stepDuration,
		r.runStatus,
		r.runExitCode,
		r.runDuration,
		r.lastRunUnixTime,
	)
	return r
}

// ObserveReport records a finalized run report.
func (r *Recorder) ObserveReport(rep *report.RunReport) {
	for _, o := range rep.Outcomes() {
		r.stepsTotal.WithLabelValues(rep.Catalog, o.Name, string(o.Status)).Inc()
		r.stepDuration.WithLabelValues(rep.Catalog, o.Name).Observe(o.Duration.Seconds())
	}

	for _, status := range []report.RunStatus{report.RunCompleted, report.RunCompletedWithFailures, report.RunAborted} {
		value := 0.0
		if rep.Status == status {
			value = 1
		}
		r.runStatus.WithLabelValues(rep.Catalog, rep.RunType, string(status)).Set(value)
	}

	r.runExitCode.WithLabelValues(rep.Catalog, rep.RunType).Set(float64(rep.ExitCode()))
	r.runDuration.WithLabelValues(rep.Catalog, rep.RunType).Set(rep.Duration.Seconds())
	if !rep.StartedAt.IsZero() {
		r.lastRunUnixTime.WithLabelValues(rep.Catalog, rep.RunType).Set(float64(rep.StartedAt.Unix()))
	}
}

// WriteFile writes all metrics to path in the text exposition format.
// The file is written atomically so a collector never reads a partial file.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics file %s: %w", path, err)
	}
	return nil
}
