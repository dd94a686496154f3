package handlers

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/systemstart/mldeploy/pkg/processing"
	"github.com/systemstart/mldeploy/pkg/report"
)

// Check verifies the preconditions of a run without attempting any step.
func Check(opts processing.Options, w io.Writer) error {
	plan, err := processing.Check(opts)
	if err != nil {
		fmt.Fprintf(w, "Preconditions for %s are not met:\n", opts.RunType)
		for _, line := range errorLines(err) {
			fmt.Fprintf(w, "  - %s\n", line)
		}
		return &ExitError{Code: report.ExitPrecondition, Err: err}
	}

	source := "built-in"
	if plan.Catalog.FilePath != "" {
		source = plan.Catalog.FilePath
	}
	fmt.Fprintf(w, "Preconditions for %s are met (catalog %s, %d steps, %d values).\n",
		opts.RunType, source, len(plan.Steps), len(plan.Config.Names()))
	return nil
}

// errorLines flattens an errors.Join tree into one line per error.
func errorLines(err error) []string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var lines []string
		for _, e := range joined.Unwrap() {
			lines = append(lines, errorLines(e)...)
		}
		return lines
	}
	return strings.Split(err.Error(), "\n")
}
