package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quantmind-br/evp/internal/config"
)

// ConfigValues holds form values that map to the Config struct.
// Numeric and duration fields are stored as strings for form editing.
type ConfigValues struct {
	ManifestFile string

	BuildDirectory string
	GeneratorFile  string
	SourceDir      string
	LogFile        string
	CMakeMinimum   string
	ProjectName    string

	CacheEnabled   bool
	CacheTTL       string
	CacheDirectory string
	MaxRetries     string

	VcpkgRoot string

	LogLevel  string
	LogFormat string
}

// FromConfig converts a Config to ConfigValues for form editing
func FromConfig(cfg *config.Config) *ConfigValues {
	return &ConfigValues{
		ManifestFile: cfg.Manifest.File,

		BuildDirectory: cfg.Build.Directory,
		GeneratorFile:  cfg.Build.GeneratorFile,
		SourceDir:      cfg.Build.SourceDir,
		LogFile:        cfg.Build.LogFile,
		CMakeMinimum:   cfg.Build.CMakeMinimum,
		ProjectName:    cfg.Build.ProjectName,

		CacheEnabled:   cfg.Packages.CacheEnabled,
		CacheTTL:       formatDuration(cfg.Packages.CacheTTL),
		CacheDirectory: cfg.Packages.CacheDirectory,
		MaxRetries:     strconv.Itoa(cfg.Packages.MaxRetries),

		VcpkgRoot: cfg.Tools.VcpkgRoot,

		LogLevel:  cfg.Logging.Level,
		LogFormat: cfg.Logging.Format,
	}
}

// ToConfig converts ConfigValues back to a validated Config
func (v *ConfigValues) ToConfig() (*config.Config, error) {
	cacheTTL, err := parseDurationOrDefault(v.CacheTTL, config.DefaultCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid cache_ttl: %w", err)
	}

	maxRetries, err := parseIntOrDefault(v.MaxRetries, config.DefaultMaxRetries)
	if err != nil {
		return nil, fmt.Errorf("invalid max_retries: %w", err)
	}

	cfg := &config.Config{
		Manifest: config.ManifestConfig{
			File: strings.TrimSpace(v.ManifestFile),
		},
		Build: config.BuildConfig{
			Directory:     strings.TrimSpace(v.BuildDirectory),
			GeneratorFile: strings.TrimSpace(v.GeneratorFile),
			SourceDir:     strings.TrimSpace(v.SourceDir),
			LogFile:       strings.TrimSpace(v.LogFile),
			CMakeMinimum:  strings.TrimSpace(v.CMakeMinimum),
			ProjectName:   strings.TrimSpace(v.ProjectName),
		},
		Packages: config.PackagesConfig{
			CacheEnabled:   v.CacheEnabled,
			CacheTTL:       cacheTTL,
			CacheDirectory: strings.TrimSpace(v.CacheDirectory),
			MaxRetries:     maxRetries,
		},
		Tools: config.ToolsConfig{
			VcpkgRoot: strings.TrimSpace(v.VcpkgRoot),
		},
		Logging: config.LoggingConfig{
			Level:  v.LogLevel,
			Format: v.LogFormat,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.String()
}

func parseDurationOrDefault(s string, defaultVal time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(s)
}

func parseIntOrDefault(s string, defaultVal int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}
