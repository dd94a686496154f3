package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/systemstart/mldeploy/pkg/metrics"
	"github.com/systemstart/mldeploy/pkg/processing"
	"github.com/systemstart/mldeploy/pkg/report"
	"github.com/systemstart/mldeploy/pkg/sequencer"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

// RunOptions configure the deploy and status commands.
type RunOptions struct {
	processing.Options

	// Output selects the report format written to stdout.
	Output string
	// ReportFile additionally writes the JSON report to a file.
	ReportFile string
	// MetricsFile writes Prometheus metrics in the textfile collector format.
	MetricsFile string
	Color       bool
	Verbose     bool
}

// Run executes a run, prints its report, and maps the outcome to an exit code.
func Run(ctx context.Context, opts RunOptions, stdout io.Writer) error {
	if opts.Output != OutputText && opts.Output != OutputJSON {
		return fmt.Errorf("unknown output format %q (want %s or %s)", opts.Output, OutputText, OutputJSON)
	}
	if opts.Observer == nil {
		opts.Observer = sequencer.SlogObserver{Logger: slog.Default()}
	}

	rep, runErr := processing.Run(ctx, opts.Options)

	if err := writeReport(stdout, rep, opts); err != nil {
		return err
	}
	if opts.ReportFile != "" {
		if err := writeReportFile(opts.ReportFile, rep); err != nil {
			return err
		}
		slog.Info("report written", "path", opts.ReportFile)
	}
	if opts.MetricsFile != "" {
		rec := metrics.New()
		rec.ObserveReport(rep)
		if err := rec.WriteFile(opts.MetricsFile); err != nil {
			return err
		}
		slog.Info("metrics written", "path", opts.MetricsFile)
	}

	if code := rep.ExitCode(); code != report.ExitOK {
		if runErr == nil {
			runErr = fmt.Errorf("%s run %s", opts.RunType, rep.StatusLine())
		}
		return &ExitError{Code: code, Err: runErr}
	}
	return nil
}

func writeReport(w io.Writer, rep *report.RunReport, opts RunOptions) error {
	if opts.Output == OutputJSON {
		return report.RenderJSON(w, rep)
	}
	return report.RenderText(w, rep, report.TextOptions{Color: opts.Color, Verbose: opts.Verbose})
}

func writeReportFile(path string, rep *report.RunReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}

	if err := report.RenderJSON(f, rep); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing report file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report file: %w", err)
	}
	return nil
}
