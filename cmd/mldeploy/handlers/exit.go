// Package handlers implements the CLI commands. Commands parse flags and
// delegate here; handlers write user-facing output to the given writer and
// logs through slog.
package handlers

import "fmt"

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
