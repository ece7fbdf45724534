package domain

import (
	"context"
	"io"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Has checks if a key exists in cache
	Has(ctx context.Context, key string) bool
	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error
	// Close releases cache resources
	Close() error
}

// Tool is an external executable the build delegates to (git, cmake, vcpkg)
type Tool interface {
	// Name returns the executable name
	Name() string
	// Available reports whether the tool can be located
	Available() bool
	// Path resolves the tool's filesystem location
	Path() (string, error)
	// Exec runs the tool with args and reports its exit status
	Exec(ctx context.Context, args ...string) (int, error)
}

// Command describes one process invocation
type Command struct {
	// Dir is the working directory; empty means the current one
	Dir    string
	Name   string
	Args   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runner starts external processes
type Runner interface {
	// Run executes cmd and returns its exit code. The error is reserved for
	// failures to start or wait on the process.
	Run(ctx context.Context, cmd Command) (int, error)
}
