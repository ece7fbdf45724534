package toolchain

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"

	"github.com/quantmind-br/evp/internal/domain"
)

// ToolchainRelPath is the CMake toolchain file inside a vcpkg root
const ToolchainRelPath = "scripts/buildsystems/vcpkg.cmake"

// Vcpkg is the vcpkg package manager rooted at a vcpkg checkout
type Vcpkg struct {
	*Binary
	root string
}

// VcpkgOptions contains options for Vcpkg
type VcpkgOptions struct {
	BinaryOptions
	// Root is the vcpkg checkout; when empty it is derived from the
	// location of a vcpkg executable on the PATH
	Root string
}

// NewVcpkg creates the vcpkg tool
func NewVcpkg(opts VcpkgOptions) *Vcpkg {
	if opts.LookPath == nil {
		opts.LookPath = exec.LookPath
	}

	root := opts.Root
	if root == "" {
		if p, err := opts.LookPath("vcpkg"); err == nil {
			root = filepath.Dir(p)
		}
	}
	if root != "" {
		opts.File = filepath.Join(root, "vcpkg")
	}

	return &Vcpkg{Binary: NewBinary("vcpkg", opts.BinaryOptions), root: root}
}

// Root returns the vcpkg checkout, empty when unknown
func (v *Vcpkg) Root() string {
	return v.root
}

// ToolchainFile returns the CMake toolchain file of the vcpkg checkout
func (v *Vcpkg) ToolchainFile() (string, error) {
	if v.root == "" {
		return "", fmt.Errorf("%w: vcpkg (set VCPKG_ROOT or tools.vcpkg_root)", domain.ErrToolNotFound)
	}
	return filepath.Join(v.root, filepath.FromSlash(ToolchainRelPath)), nil
}

// Install runs `vcpkg install <pkg>`
func (v *Vcpkg) Install(ctx context.Context, pkg string) error {
	if err := Run(ctx, v, "install", pkg); err != nil {
		return fmt.Errorf("%w %q: %w", domain.ErrPackageInstall, pkg, err)
	}
	return nil
}

// WithOutput returns a copy writing both output streams to out
func (v *Vcpkg) WithOutput(out io.Writer) *Vcpkg {
	return &Vcpkg{Binary: v.In(v.dir, out), root: v.root}
}
