package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	// Manifest defaults
	DefaultManifestFile = "evp.yaml"

	// Build defaults
	DefaultBuildDir      = "build"
	DefaultGeneratorFile = "CMakeLists.txt"
	DefaultSourceDir     = "src"
	DefaultLogFile       = "log.txt"
	DefaultCMakeMinimum  = "3.15"

	// Package defaults
	DefaultCacheEnabled = true
	DefaultCacheTTL     = 7 * 24 * time.Hour
	DefaultMaxRetries   = 3

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// EnvVcpkgRoot is consulted when tools.vcpkg_root is unset
const EnvVcpkgRoot = "VCPKG_ROOT"

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".evp"
	}
	return filepath.Join(home, ".evp")
}

// CacheDir returns the cache directory path
func CacheDir() string {
	return filepath.Join(ConfigDir(), "cache")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Manifest: ManifestConfig{
			File: DefaultManifestFile,
		},
		Build: BuildConfig{
			Directory:     DefaultBuildDir,
			GeneratorFile: DefaultGeneratorFile,
			SourceDir:     DefaultSourceDir,
			LogFile:       DefaultLogFile,
			CMakeMinimum:  DefaultCMakeMinimum,
		},
		Packages: PackagesConfig{
			CacheEnabled:   DefaultCacheEnabled,
			CacheTTL:       DefaultCacheTTL,
			CacheDirectory: CacheDir(),
			MaxRetries:     DefaultMaxRetries,
		},
		Tools: ToolsConfig{
			VcpkgRoot: os.Getenv(EnvVcpkgRoot),
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// GeneratorPath returns the generator file path relative to the project root
func (c *Config) GeneratorPath() string {
	return filepath.Join(c.Build.Directory, c.Build.GeneratorFile)
}

// LogPath returns the build log path relative to the project root
func (c *Config) LogPath() string {
	return filepath.Join(c.Build.Directory, c.Build.LogFile)
}
