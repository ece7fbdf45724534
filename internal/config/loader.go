package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/quantmind-br/evp/internal/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load loads configuration from file, environment, and defaults
// Uses the global viper instance to access CLI flag bindings
func Load() (*Config, error) {
	cfg, _, err := load(viper.GetViper())
	return cfg, err
}

// LoadWithViper loads configuration and returns the viper instance
// This is useful for merging CLI flags later
func LoadWithViper() (*Config, *viper.Viper, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, *viper.Viper, error) {
	setDefaults(v)

	// Config file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())
	v.AddConfigPath(".")

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, nil, err
		}
	}

	// Environment variables (EVP_*)
	v.SetEnvPrefix("EVP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, err
	}

	if cfg.Tools.VcpkgRoot == "" {
		cfg.Tools.VcpkgRoot = os.Getenv(EnvVcpkgRoot)
	}

	// Validate and apply defaults for invalid values
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return &cfg, v, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	// Manifest defaults
	v.SetDefault("manifest.file", DefaultManifestFile)

	// Build defaults
	v.SetDefault("build.directory", DefaultBuildDir)
	v.SetDefault("build.generator_file", DefaultGeneratorFile)
	v.SetDefault("build.source_dir", DefaultSourceDir)
	v.SetDefault("build.log_file", DefaultLogFile)
	v.SetDefault("build.cmake_minimum", DefaultCMakeMinimum)
	v.SetDefault("build.project_name", "")

	// Package defaults
	v.SetDefault("packages.cache_enabled", DefaultCacheEnabled)
	v.SetDefault("packages.cache_ttl", DefaultCacheTTL)
	v.SetDefault("packages.cache_directory", CacheDir())
	v.SetDefault("packages.max_retries", DefaultMaxRetries)

	// Tool defaults
	v.SetDefault("tools.vcpkg_root", "")

	// Logging defaults
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}


// Save writes cfg as YAML to path, creating the parent directory
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := utils.EnsureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
