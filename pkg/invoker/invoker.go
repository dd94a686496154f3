// Package invoker runs the external operation behind each provisioning step.
package invoker

import (
	"context"
	"strings"
	"time"
)

// Operation describes one external command.
type Operation struct {
	Program     string
	Args        []string
	Description string
	Timeout     time.Duration
}

// String renders the command line with arguments quoted where needed.
func (o Operation) String() string {
	parts := make([]string, 0, len(o.Args)+1)
	parts = append(parts, o.Program)
	for _, a := range o.Args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`|&;<>()*?[]{}~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Result is what an invocation reports back: whether it succeeded and what it printed.
type Result struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
}

// Output joins stdout and stderr into one diagnostic text.
func (r Result) Output() string {
	stdout := strings.TrimRight(r.Stdout, "\n")
	stderr := strings.TrimRight(r.Stderr, "\n")
	switch {
	case stdout == "":
		return stderr
	case stderr == "":
		return stdout
	default:
		return stdout + "\n" + stderr
	}
}

// Invoker runs an operation synchronously.
type Invoker interface {
	Invoke(ctx context.Context, op Operation) Result
}

// Func adapts a function to the Invoker interface.
type Func func(ctx context.Context, op Operation) Result

func (f Func) Invoke(ctx context.Context, op Operation) Result {
	return f(ctx, op)
}
