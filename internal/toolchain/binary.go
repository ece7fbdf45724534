package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/quantmind-br/evp/internal/domain"
)

// Ensure Binary implements domain.Tool
var _ domain.Tool = (*Binary)(nil)

// Binary is an executable located through the PATH or an explicit file
type Binary struct {
	name     string
	file     string
	runner   domain.Runner
	lookPath func(string) (string, error)
	dir      string
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

// BinaryOptions contains options for a Binary
type BinaryOptions struct {
	// File is looked up instead of the tool name when set
	File     string
	Runner   domain.Runner
	LookPath func(string) (string, error)
	Dir      string
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
}

// NewBinary creates a tool for the executable called name
func NewBinary(name string, opts BinaryOptions) *Binary {
	if opts.Runner == nil {
		opts.Runner = NewExecRunner()
	}
	if opts.LookPath == nil {
		opts.LookPath = exec.LookPath
	}
	if opts.File == "" {
		opts.File = name
	}
	return &Binary{
		name:     name,
		file:     opts.File,
		runner:   opts.Runner,
		lookPath: opts.LookPath,
		dir:      opts.Dir,
		stdin:    opts.Stdin,
		stdout:   opts.Stdout,
		stderr:   opts.Stderr,
	}
}

// NewGit creates the git tool
func NewGit(opts BinaryOptions) *Binary {
	return NewBinary("git", opts)
}

// Name returns the executable name
func (b *Binary) Name() string {
	return b.name
}

// Path resolves the executable location
func (b *Binary) Path() (string, error) {
	p, err := b.lookPath(b.file)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrToolNotFound, b.name)
	}
	return p, nil
}

// Available reports whether the executable can be located
func (b *Binary) Available() bool {
	_, err := b.Path()
	return err == nil
}

// Exec runs the executable with args
func (b *Binary) Exec(ctx context.Context, args ...string) (int, error) {
	p, err := b.Path()
	if err != nil {
		return -1, err
	}
	return b.runner.Run(ctx, domain.Command{
		Dir:    b.dir,
		Name:   p,
		Args:   args,
		Stdin:  b.stdin,
		Stdout: b.stdout,
		Stderr: b.stderr,
	})
}

// In returns a copy running in dir with both output streams sent to out
func (b *Binary) In(dir string, out io.Writer) *Binary {
	c := *b
	c.dir = dir
	c.stdout = out
	c.stderr = out
	return &c
}

// Run executes tool and turns a launch failure or non-zero exit into a
// *domain.ToolError. A tool that cannot be located yields ErrToolNotFound.
func Run(ctx context.Context, tool domain.Tool, args ...string) error {
	code, err := tool.Exec(ctx, args...)
	if err != nil {
		if errors.Is(err, domain.ErrToolNotFound) {
			return err
		}
		return domain.NewToolError(tool.Name(), args, code, err)
	}
	if code != 0 {
		return domain.NewToolError(tool.Name(), args, code, nil)
	}
	return nil
}
