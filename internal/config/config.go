package config

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"
)

// Config represents the application configuration
type Config struct {
	Manifest ManifestConfig `mapstructure:"manifest" yaml:"manifest"`
	Build    BuildConfig    `mapstructure:"build" yaml:"build"`
	Packages PackagesConfig `mapstructure:"packages" yaml:"packages"`
	Tools    ToolsConfig    `mapstructure:"tools" yaml:"tools"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// ManifestConfig contains manifest location settings
type ManifestConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// BuildConfig contains build directory settings
type BuildConfig struct {
	Directory     string `mapstructure:"directory" yaml:"directory"`
	GeneratorFile string `mapstructure:"generator_file" yaml:"generator_file"`
	SourceDir     string `mapstructure:"source_dir" yaml:"source_dir"`
	LogFile       string `mapstructure:"log_file" yaml:"log_file"`
	CMakeMinimum  string `mapstructure:"cmake_minimum" yaml:"cmake_minimum"`
	// ProjectName names the emitted CMake project; empty uses the project
	// directory name
	ProjectName string `mapstructure:"project_name" yaml:"project_name"`
}

// PackagesConfig contains package manager settings
type PackagesConfig struct {
	CacheEnabled   bool          `mapstructure:"cache_enabled" yaml:"cache_enabled"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
	CacheDirectory string        `mapstructure:"cache_directory" yaml:"cache_directory"`
	MaxRetries     int           `mapstructure:"max_retries" yaml:"max_retries"`
}

// ToolsConfig contains external tool locations
type ToolsConfig struct {
	VcpkgRoot string `mapstructure:"vcpkg_root" yaml:"vcpkg_root"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Manifest.File == "" {
		c.Manifest.File = DefaultManifestFile
	}
	if c.Build.Directory == "" {
		c.Build.Directory = DefaultBuildDir
	}
	if c.Build.GeneratorFile == "" {
		c.Build.GeneratorFile = DefaultGeneratorFile
	}
	if path.Base(c.Build.GeneratorFile) != c.Build.GeneratorFile {
		return fmt.Errorf("invalid build.generator_file %q: must be a file name", c.Build.GeneratorFile)
	}
	if c.Build.SourceDir == "" {
		c.Build.SourceDir = DefaultSourceDir
	}
	if c.Build.LogFile == "" {
		c.Build.LogFile = DefaultLogFile
	}
	if c.Build.CMakeMinimum == "" {
		c.Build.CMakeMinimum = DefaultCMakeMinimum
	} else if _, err := ParseCMakeVersion(c.Build.CMakeMinimum); err != nil {
		return fmt.Errorf("invalid build.cmake_minimum: %w", err)
	}
	c.Build.ProjectName = strings.TrimSpace(c.Build.ProjectName)
	if c.Packages.CacheTTL < time.Minute {
		c.Packages.CacheTTL = DefaultCacheTTL
	}
	if c.Packages.MaxRetries < 0 {
		c.Packages.MaxRetries = DefaultMaxRetries
	}
	return nil
}

// ParseCMakeVersion splits a dotted CMake version such as "3.15" or
// "3.20.1" into its numeric components.
func ParseCMakeVersion(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty version string")
	}

	parts := strings.Split(s, ".")
	if len(parts) > 4 {
		return nil, fmt.Errorf("too many version components in %q", s)
	}

	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid version component %q: %w", p, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("negative version component in %q", s)
		}
		out = append(out, n)
	}
	return out, nil
}
