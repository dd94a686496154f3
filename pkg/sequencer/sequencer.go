// Package sequencer executes a catalog's steps strictly in order and
// records one outcome per attempted step.
package sequencer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/systemstart/mldeploy/pkg/config"
	"github.com/systemstart/mldeploy/pkg/invoker"
	"github.com/systemstart/mldeploy/pkg/report"
	"github.com/systemstart/mldeploy/pkg/steps"
)

// DefaultMaxDiagnosticBytes bounds the diagnostic text kept per step.
const DefaultMaxDiagnosticBytes = 4096

// Options configure a Sequencer.
type Options struct {
	// ContinueOnError runs the remaining steps after a non-tolerant failure.
	// The failure is still recorded as fatal.
	ContinueOnError bool
	// Observer receives progress. Defaults to a no-op.
	Observer Observer
	// MaxDiagnosticBytes keeps the tail of longer output. Zero means
	// DefaultMaxDiagnosticBytes, negative means unlimited.
	MaxDiagnosticBytes int
	// Redactor masks secrets in commands and diagnostics. Secret captures
	// are added to it during the run.
	Redactor *invoker.Redactor
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Sequencer runs steps one at a time through an Invoker.
type Sequencer struct {
	invoker invoker.Invoker
	opts    Options
}

// New creates a Sequencer.
func New(inv invoker.Invoker, opts Options) *Sequencer {
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	if opts.MaxDiagnosticBytes == 0 {
		opts.MaxDiagnosticBytes = DefaultMaxDiagnosticBytes
	}
	if opts.Redactor == nil {
		opts.Redactor = invoker.NewRedactor()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Sequencer{invoker: inv, opts: opts}
}

// Run executes the steps in order against an already validated context and
// returns the finalized report. Cancellation of ctx is honored between steps.
func (s *Sequencer) Run(ctx context.Context, cfg config.Context, catalog, runType string, list []steps.Step) *report.RunReport {
	start := s.opts.Clock()
	rep := report.New(catalog, runType, start)

	for _, secret := range cfg.SecretValues() {
		s.opts.Redactor.Add(secret)
	}

	outputs := make(map[string]string)
	lastAttempted := 0

	for _, step := range list {
		if err := ctx.Err(); err != nil {
			rep.Interrupt(lastAttempted, fmt.Sprintf("run cancelled before step %d (%s): %v", step.Index, step.Name, err), s.since(start))
			return rep
		}

		outcome := s.runStep(ctx, cfg, step, len(list), outputs)
		lastAttempted = step.Index

		if err := rep.Append(outcome); err != nil {
			slog.Error("recording outcome", "step", step.Name, "error", err)
		}
		if step.Capture != "" && outcome.Status == report.StepSucceeded {
			if err := rep.SetOutput(step.Capture, s.displayCapture(step, outputs[step.Capture])); err != nil {
				slog.Error("recording output", "step", step.Name, "error", err)
			}
		}

		if err := ctx.Err(); err != nil {
			rep.Interrupt(step.Index, fmt.Sprintf("run cancelled during step %d (%s): %v", step.Index, step.Name, err), s.since(start))
			return rep
		}

		if outcome.Status == report.StepFailedFatal && !s.opts.ContinueOnError {
			rep.Abort(step.Index, fmt.Sprintf("step %d (%s) failed", step.Index, step.Name), s.since(start))
			return rep
		}
	}

	rep.Complete(s.since(start))
	return rep
}

func (s *Sequencer) runStep(ctx context.Context, cfg config.Context, step steps.Step, total int, outputs map[string]string) report.StepOutcome {
	s.opts.Observer.StepStarted(step, total)
	stepStart := s.opts.Clock()

	outcome := report.StepOutcome{
		Index: step.Index,
		Name:  step.Name,
	}

	op, err := step.Operation(steps.TemplateData(cfg, outputs))
	if err != nil {
		// Never tolerated: the command did not reach the platform.
		outcome.Status = report.StepFailedFatal
		outcome.ExitCode = -1
		outcome.Diagnostic = s.opts.Redactor.Redact(err.Error())
		outcome.Duration = s.since(stepStart)
		s.opts.Observer.StepFinished(outcome, total)
		return outcome
	}

	res := s.invoker.Invoke(ctx, op)

	outcome.Duration = s.since(stepStart)
	outcome.ExitCode = res.ExitCode
	outcome.Command = s.opts.Redactor.Redact(op.String())

	if res.Success && step.Capture != "" {
		value := strings.TrimSpace(res.Stdout)
		outputs[step.Capture] = value
		if step.Secret {
			s.opts.Redactor.Add(value)
		}
	}

	full := s.opts.Redactor.Redact(res.Output())
	slog.Debug("step output", "step", step.Name, "output", full)
	outcome.Diagnostic = truncateTail(full, s.opts.MaxDiagnosticBytes)
	outcome.Status = classify(res.Success, step.Tolerant)

	s.opts.Observer.StepFinished(outcome, total)
	return outcome
}

func (s *Sequencer) displayCapture(step steps.Step, value string) string {
	if step.Secret {
		return invoker.Preview(value)
	}
	return s.opts.Redactor.Redact(value)
}

func (s *Sequencer) since(t time.Time) time.Duration {
	return s.opts.Clock().Sub(t)
}

func classify(success, tolerant bool) report.StepStatus {
	switch {
	case success:
		return report.StepSucceeded
	case tolerant:
		return report.StepFailedTolerated
	default:
		return report.StepFailedFatal
	}
}

// truncateTail keeps the last max bytes of s, where errors usually are.
func truncateTail(s string, max int) string {
	if max < 0 || len(s) <= max {
		return s
	}
	cut := len(s) - max
	// Do not split a UTF-8 sequence.
	for cut < len(s) && s[cut]&0xC0 == 0x80 {
		cut++
	}
	return fmt.Sprintf("[%d bytes truncated]\n%s", cut, s[cut:])
}
