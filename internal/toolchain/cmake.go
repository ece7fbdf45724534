package toolchain

import (
	"context"
	"io"
)

// CMake drives configure and build steps in a build directory
type CMake struct {
	*Binary
}

// NewCMake creates the cmake tool
func NewCMake(opts BinaryOptions) *CMake {
	return &CMake{Binary: NewBinary("cmake", opts)}
}

// Configure runs `cmake .` in buildDir, passing the toolchain file when set
func (c *CMake) Configure(ctx context.Context, buildDir, toolchainFile string, log io.Writer) error {
	args := []string{"."}
	if toolchainFile != "" {
		args = append(args, "-DCMAKE_TOOLCHAIN_FILE="+toolchainFile)
	}
	return Run(ctx, c.In(buildDir, log), args...)
}

// Build runs `cmake --build .` in buildDir
func (c *CMake) Build(ctx context.Context, buildDir string, log io.Writer) error {
	return Run(ctx, c.In(buildDir, log), "--build", ".")
}
