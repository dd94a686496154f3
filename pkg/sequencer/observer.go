package sequencer

import (
	"log/slog"
	"time"

	"github.com/systemstart/mldeploy/pkg/report"
	"github.com/systemstart/mldeploy/pkg/steps"
)

// Observer receives progress while a run is in flight.
type Observer interface {
	StepStarted(step steps.Step, total int)
	StepFinished(outcome report.StepOutcome, total int)
}

// SlogObserver reports progress through a structured logger.
type SlogObserver struct {
	Logger *slog.Logger
}

func (o SlogObserver) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o SlogObserver) StepStarted(step steps.Step, total int) {
	o.logger().Info("step starting",
		"step", step.Name,
		"index", step.Index,
		"total", total,
		"tolerant", step.Tolerant)
}

func (o SlogObserver) StepFinished(outcome report.StepOutcome, total int) {
	attrs := []any{
		"step", outcome.Name,
		"index", outcome.Index,
		"total", total,
		"status", outcome.Status,
		"duration", outcome.Duration.Round(time.Millisecond),
	}

	switch outcome.Status {
	case report.StepSucceeded:
		o.logger().Info("step succeeded", attrs...)
	case report.StepFailedTolerated:
		o.logger().Warn("step failed, continuing (resource may already exist)", append(attrs, "exitCode", outcome.ExitCode)...)
	default:
		o.logger().Error("step failed", append(attrs, "exitCode", outcome.ExitCode)...)
	}
}

type nopObserver struct{}

func (nopObserver) StepStarted(steps.Step, int)          {}
func (nopObserver) StepFinished(report.StepOutcome, int) {}
