package invoker

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not in PATH")
	}
}

func TestShell_Success(t *testing.T) {
	skipWithoutShell(t)

	dir := t.TempDir()
	s := NewShell(dir, 0)

	res := s.Invoke(context.Background(), Operation{Program: "sh", Args: []string{"-c", "pwd; echo warn >&2"}})

	assert.True(t, res.Success)
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stdout, dir)
	assert.Equal(t, "warn\n", res.Stderr)
}

func TestShell_NonZeroExit(t *testing.T) {
	skipWithoutShell(t)

	res := NewShell("", 0).Invoke(context.Background(), Operation{
		Program: "sh",
		Args:    []string{"-c", "echo 'ResourceExists: compute cpu-cluster already exists' >&2; exit 3"},
	})

	assert.False(t, res.Success)
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, res.Output(), "already exists")
}

func TestShell_ProgramNotFound(t *testing.T) {
	res := NewShell("", 0).Invoke(context.Background(), Operation{Program: "definitely-not-a-real-binary-name"})

	assert.False(t, res.Success)
	assert.Equal(t, -1, res.ExitCode)
	assert.Contains(t, res.Stderr, "definitely-not-a-real-binary-name")
}

func TestShell_Timeout(t *testing.T) {
	skipWithoutShell(t)

	res := NewShell("", time.Minute).Invoke(context.Background(), Operation{
		Program: "sh",
		Args:    []string{"-c", "sleep 5"},
		Timeout: 50 * time.Millisecond,
	})

	assert.False(t, res.Success)
	assert.Contains(t, res.Stderr, "timed out after 50ms")
}

func TestShell_Env(t *testing.T) {
	skipWithoutShell(t)

	s := &Shell{Env: []string{"PATH=/usr/bin:/bin", "GREETING=hello"}}
	res := s.Invoke(context.Background(), Operation{Program: "sh", Args: []string{"-c", "echo $GREETING"}})

	assert.True(t, res.Success)
	assert.Equal(t, "hello\n", res.Stdout)
}
