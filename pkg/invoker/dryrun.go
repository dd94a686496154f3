package invoker

import (
	"context"
	"log/slog"
)

// DryRun logs each operation instead of running it and always succeeds.
type DryRun struct {
	Logger   *slog.Logger
	Redactor *Redactor
}

func (d DryRun) Invoke(_ context.Context, op Operation) Result {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("dry run", "step", op.Description, "command", d.Redactor.Redact(op.String()))
	return Result{Success: true}
}
