// Package report holds the outcome of a run: one StepOutcome per attempted
// step plus the overall run status.
package report

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"
)

// StepStatus is the classified result of one step.
type StepStatus string

const (
	StepSucceeded       StepStatus = "succeeded"
	StepFailedTolerated StepStatus = "failed-tolerated"
	StepFailedFatal     StepStatus = "failed-fatal"
)

// RunStatus is the overall status of a run.
type RunStatus string

const (
	// RunCompleted means every step was attempted; tolerated failures allowed.
	RunCompleted RunStatus = "completed"
	// RunCompletedWithFailures means every step was attempted but fatal
	// failures were recorded because the run continued past them.
	RunCompletedWithFailures RunStatus = "completed-with-failures"
	// RunAborted means the run stopped early: before any step when
	// AbortedAfter is 0, otherwise after that step.
	RunAborted RunStatus = "aborted"
)

const (
	ExitOK             = 0
	ExitPrecondition   = 2
	ExitStepFailed     = 3
	ExitRunInterrupted = 4
)

// ErrFinalized is returned when appending to a finalized report.
var ErrFinalized = errors.New("report is finalized")

// StepOutcome is the recorded result of executing one step.
type StepOutcome struct {
	Index      int
	Name       string
	Status     StepStatus
	ExitCode   int
	Command    string // redacted command line
	Diagnostic string // redacted stdout/stderr or error text
	Duration   time.Duration
}

// RunReport is owned by a single writer while a run is in progress and
// read only after it has been finalized.
type RunReport struct {
	Catalog      string
	RunType      string
	Status       RunStatus
	AbortedAfter int
	AbortReason  string
	Interrupted  bool
	StartedAt    time.Time
	Duration     time.Duration

	outcomes  []StepOutcome
	outputs   map[string]string
	finalized bool
}

// New creates an empty, in-progress report.
func New(catalog, runType string, startedAt time.Time) *RunReport {
	return &RunReport{
		Catalog:   catalog,
		RunType:   runType,
		StartedAt: startedAt,
		outputs:   make(map[string]string),
	}
}

// NewAborted creates a finalized report for a run that stopped before its first step.
func NewAborted(catalog, runType, reason string, startedAt time.Time) *RunReport {
	r := New(catalog, runType, startedAt)
	r.finalize(RunAborted, 0, reason, 0)
	return r
}

// Append records a step outcome. Outcomes are never modified once recorded.
func (r *RunReport) Append(o StepOutcome) error {
	if r.finalized {
		return ErrFinalized
	}
	r.outcomes = append(r.outcomes, o)
	return nil
}

// SetOutput records a captured value for display. Secret values must be
// masked by the caller.
func (r *RunReport) SetOutput(name, value string) error {
	if r.finalized {
		return ErrFinalized
	}
	r.outputs[name] = value
	return nil
}

// Complete finalizes a run in which every step was attempted.
func (r *RunReport) Complete(d time.Duration) {
	status := RunCompleted
	if r.Summary().Fatal > 0 {
		status = RunCompletedWithFailures
	}
	r.finalize(status, 0, "", d)
}

// Abort finalizes a run that stopped after the step with index afterStep.
func (r *RunReport) Abort(afterStep int, reason string, d time.Duration) {
	r.finalize(RunAborted, afterStep, reason, d)
}

// Interrupt finalizes a run that was cancelled between steps.
func (r *RunReport) Interrupt(afterStep int, reason string, d time.Duration) {
	if !r.finalized {
		r.Interrupted = true
	}
	r.finalize(RunAborted, afterStep, reason, d)
}

func (r *RunReport) finalize(status RunStatus, afterStep int, reason string, d time.Duration) {
	if r.finalized {
		return
	}
	r.Status = status
	r.AbortedAfter = afterStep
	r.AbortReason = reason
	r.Duration = d
	r.finalized = true
}

// Finalized reports whether the run has ended.
func (r *RunReport) Finalized() bool {
	return r.finalized
}

// Outcomes returns a copy of the recorded outcomes in execution order.
func (r *RunReport) Outcomes() []StepOutcome {
	return slices.Clone(r.outcomes)
}

// Outputs returns a copy of the captured outputs.
func (r *RunReport) Outputs() map[string]string {
	return maps.Clone(r.outputs)
}

// StatusLine renders the overall status, e.g. "Aborted-after-step-4".
func (r *RunReport) StatusLine() string {
	switch r.Status {
	case RunCompleted:
		return "Completed"
	case RunCompletedWithFailures:
		return "Completed-with-failures"
	case RunAborted:
		if r.AbortedAfter == 0 {
			return "Aborted"
		}
		return fmt.Sprintf("Aborted-after-step-%d", r.AbortedAfter)
	default:
		return "In-progress"
	}
}

// ExitCode maps the run status to a process exit code.
func (r *RunReport) ExitCode() int {
	switch r.Status {
	case RunCompleted:
		return ExitOK
	case RunCompletedWithFailures:
		return ExitStepFailed
	case RunAborted:
		switch {
		case r.Interrupted:
			return ExitRunInterrupted
		case r.AbortedAfter == 0:
			return ExitPrecondition
		default:
			return ExitStepFailed
		}
	default:
		return ExitRunInterrupted
	}
}

// Summary counts outcomes by status.
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Tolerated int `json:"tolerated"`
	Fatal     int `json:"fatal"`
}

// Summary counts the recorded outcomes.
func (r *RunReport) Summary() Summary {
	s := Summary{Total: len(r.outcomes)}
	for _, o := range r.outcomes {
		switch o.Status {
		case StepSucceeded:
			s.Succeeded++
		case StepFailedTolerated:
			s.Tolerated++
		case StepFailedFatal:
			s.Fatal++
		}
	}
	return s
}
