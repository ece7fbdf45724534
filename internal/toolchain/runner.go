package toolchain

import (
	"context"
	"errors"
	"os/exec"

	"github.com/quantmind-br/evp/internal/domain"
)

// Ensure ExecRunner implements domain.Runner
var _ domain.Runner = (*ExecRunner)(nil)

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes cmd and waits for it. A process that starts and exits non-zero
// is reported through the exit code only.
func (r *ExecRunner) Run(ctx context.Context, c domain.Command) (int, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ctx.Err() != nil {
			return exitErr.ExitCode(), ctx.Err()
		}
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
