package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors
var (
	// ErrCacheMiss indicates a cache miss
	ErrCacheMiss = errors.New("cache miss")

	// ErrToolNotFound indicates an external executable could not be located
	ErrToolNotFound = errors.New("tool not found")

	// ErrBinaryNotFound indicates the built main target binary is missing
	ErrBinaryNotFound = errors.New("built binary not found")

	// ErrPackageInstall indicates the package manager failed to install a package
	ErrPackageInstall = errors.New("package install failed")

	// ErrProjectExists indicates init would overwrite an existing project
	ErrProjectExists = errors.New("project already exists")
)

// ToolError represents a non-zero exit or launch failure of an external tool
type ToolError struct {
	Tool     string
	Args     []string
	ExitCode int
	Err      error
}

func (e *ToolError) Error() string {
	cmd := strings.TrimSpace(e.Tool + " " + strings.Join(e.Args, " "))
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", cmd, e.Err)
	}
	return fmt.Sprintf("%s: exit status %d", cmd, e.ExitCode)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// NewToolError creates a new ToolError
func NewToolError(tool string, args []string, exitCode int, err error) *ToolError {
	return &ToolError{
		Tool:     tool,
		Args:     args,
		ExitCode: exitCode,
		Err:      err,
	}
}

// IsRetryable checks if an error should be retried. A tool that ran and
// exited non-zero may succeed on a second attempt (network, lock contention);
// a tool that cannot be found will not.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, ErrToolNotFound) {
		return false
	}

	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return toolErr.ExitCode > 0
	}

	return false
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
