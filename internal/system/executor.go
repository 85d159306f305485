// Package system provides abstractions for OS operations to enable testing.
package system

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Result holds the outcome of a locally executed command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	// Run executes a command and captures stdout and stderr separately.
	// A nonzero exit code is reported in Result, not as an error; the
	// returned error is reserved for failures to run the command at all.
	Run(ctx context.Context, name string, args ...string) (Result, error)

	// RunWithStdin executes a command with the given stdin.
	RunWithStdin(ctx context.Context, stdin string, name string, args ...string) (Result, error)
}

// Default instance using real OS operations.
var defaultExecutor CommandExecutor = &osExecutor{}

// DefaultExecutor returns the default CommandExecutor implementation.
func DefaultExecutor() CommandExecutor {
	return defaultExecutor
}

// SetDefaultExecutor sets the default CommandExecutor (useful for testing).
func SetDefaultExecutor(exec CommandExecutor) {
	defaultExecutor = exec
}

// ResetDefaults restores the default OS implementation.
func ResetDefaults() {
	defaultExecutor = &osExecutor{}
}

// osExecutor implements CommandExecutor using real OS operations.
type osExecutor struct{}

func (e *osExecutor) Run(ctx context.Context, name string, args ...string) (Result, error) {
	return e.RunWithStdin(ctx, "", name, args...)
}

func (e *osExecutor) RunWithStdin(ctx context.Context, stdin string, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stdin != "" {
		cmd.Stdin = bytes.NewBufferString(stdin)
	}

	err := cmd.Run()

	result := Result{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}

	return result, nil
}
