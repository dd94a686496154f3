package invoker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// waitDelay bounds how long a killed command may keep its output pipes open.
const waitDelay = 2 * time.Second

// Shell runs operations as child processes without an intermediate shell.
type Shell struct {
	// Dir is the working directory for every command.
	Dir string
	// Env, when non-nil, replaces the inherited environment.
	Env []string
	// DefaultTimeout applies to operations without their own timeout. Zero means none.
	DefaultTimeout time.Duration
}

// NewShell creates a Shell running commands in dir.
func NewShell(dir string, defaultTimeout time.Duration) *Shell {
	return &Shell{Dir: dir, DefaultTimeout: defaultTimeout}
}

func (s *Shell) Invoke(ctx context.Context, op Operation) Result {
	timeout := op.Timeout
	if timeout == 0 {
		timeout = s.DefaultTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	// #nosec G204 - program and arguments come from the step catalog
	cmd := exec.CommandContext(ctx, op.Program, op.Args...)
	cmd.Dir = s.Dir
	cmd.WaitDelay = waitDelay
	if s.Env != nil {
		cmd.Env = s.Env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err == nil {
		res.Success = true
		return res
	}

	res.ExitCode = -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.Stderr = appendLine(res.Stderr, fmt.Sprintf("%s timed out after %v", op.Program, timeout))
	case ctx.Err() != nil:
		res.Stderr = appendLine(res.Stderr, fmt.Sprintf("%s cancelled: %v", op.Program, ctx.Err()))
	case exitErr == nil:
		res.Stderr = appendLine(res.Stderr, err.Error())
	}
	return res
}

func appendLine(s, line string) string {
	if s == "" || s[len(s)-1] == '\n' {
		return s + line
	}
	return s + "\n" + line
}
