package config

import (
	"fmt"
	"path/filepath"
)

// Paths are the project locations a configuration resolves to
type Paths struct {
	Manifest  string
	BuildDir  string
	Generator string
	SourceDir string
	Log       string
}

// ResolvePaths anchors the configured locations at projectDir. Absolute
// settings are used as is.
func (c *Config) ResolvePaths(projectDir string) Paths {
	if projectDir == "" {
		projectDir = "."
	}
	anchor := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(projectDir, p)
	}
	return Paths{
		Manifest:  anchor(c.Manifest.File),
		BuildDir:  anchor(c.Build.Directory),
		Generator: anchor(c.GeneratorPath()),
		SourceDir: anchor(c.Build.SourceDir),
		Log:       anchor(c.LogPath()),
	}
}

// SourcePrefix is the source directory as seen from the build directory,
// slash separated and ending in "/"
func (p Paths) SourcePrefix() (string, error) {
	buildDir, err := filepath.Abs(p.BuildDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve build directory: %w", err)
	}
	srcDir, err := filepath.Abs(p.SourceDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve source directory: %w", err)
	}
	rel, err := filepath.Rel(buildDir, srcDir)
	if err != nil {
		return "", fmt.Errorf("source directory %s is not reachable from build directory %s: %w", srcDir, buildDir, err)
	}
	return filepath.ToSlash(rel) + "/", nil
}
