package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp switches into a fresh directory with an isolated home
func chdirTemp(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvVcpkgRoot, "")

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(originalWd) })
	return tmpDir
}

// TestConfig_Validate tests configuration validation
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		check   func(*testing.T, *Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			modify: func(c *Config) {},
		},
		{
			name: "empty build directory defaults to build",
			modify: func(c *Config) {
				c.Build.Directory = ""
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultBuildDir, c.Build.Directory)
			},
		},
		{
			name: "empty manifest file defaults to evp.yaml",
			modify: func(c *Config) {
				c.Manifest.File = ""
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultManifestFile, c.Manifest.File)
			},
		},
		{
			name: "cache TTL below minimum defaults to a week",
			modify: func(c *Config) {
				c.Packages.CacheTTL = 30 * time.Second
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultCacheTTL, c.Packages.CacheTTL)
			},
		},
		{
			name: "negative retries defaults to 3",
			modify: func(c *Config) {
				c.Packages.MaxRetries = -1
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultMaxRetries, c.Packages.MaxRetries)
			},
		},
		{
			name: "zero retries is kept",
			modify: func(c *Config) {
				c.Packages.MaxRetries = 0
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 0, c.Packages.MaxRetries)
			},
		},
		{
			name: "generator file with directory is rejected",
			modify: func(c *Config) {
				c.Build.GeneratorFile = "sub/CMakeLists.txt"
			},
			wantErr: true,
		},
		{
			name: "malformed cmake minimum is rejected",
			modify: func(c *Config) {
				c.Build.CMakeMinimum = "three"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

// TestParseCMakeVersion tests version parsing
func TestParseCMakeVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    []int
		wantErr bool
	}{
		{"3.15", []int{3, 15}, false},
		{"3.20.1", []int{3, 20, 1}, false},
		{" 3 ", []int{3}, false},
		{"", nil, true},
		{"3.x", nil, true},
		{"3.-1", nil, true},
		{"1.2.3.4.5", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCMakeVersion(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestDefault tests the default configuration
func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultManifestFile, cfg.Manifest.File)
	assert.Equal(t, DefaultBuildDir, cfg.Build.Directory)
	assert.Equal(t, DefaultGeneratorFile, cfg.Build.GeneratorFile)
	assert.Equal(t, DefaultSourceDir, cfg.Build.SourceDir)
	assert.Equal(t, DefaultLogFile, cfg.Build.LogFile)
	assert.Equal(t, DefaultCMakeMinimum, cfg.Build.CMakeMinimum)
	assert.True(t, cfg.Packages.CacheEnabled)
	assert.Equal(t, DefaultCacheTTL, cfg.Packages.CacheTTL)
	assert.Equal(t, CacheDir(), cfg.Packages.CacheDirectory)
	assert.Equal(t, DefaultMaxRetries, cfg.Packages.MaxRetries)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Logging.Format)
	assert.Empty(t, cfg.Build.ProjectName)
}

func TestValidate_TrimsProjectName(t *testing.T) {
	cfg := Default()
	cfg.Build.ProjectName = "  demo \n"

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "demo", cfg.Build.ProjectName)
}

// TestConfig_Paths tests derived build paths
func TestConfig_Paths(t *testing.T) {
	cfg := Default()

	assert.Equal(t, filepath.Join("build", "CMakeLists.txt"), cfg.GeneratorPath())
	assert.Equal(t, filepath.Join("build", "log.txt"), cfg.LogPath())
}

// TestConfigDir tests config directory resolution
func TestConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".evp"), ConfigDir())
	assert.Equal(t, filepath.Join(home, ".evp", "cache"), CacheDir())
	assert.Equal(t, filepath.Join(home, ".evp", "config.yaml"), ConfigFilePath())
}

// TestLoad_LoadWithMissingConfig tests loading with no config file
func TestLoad_LoadWithMissingConfig(t *testing.T) {
	chdirTemp(t)

	cfg, _, err := LoadWithViper()
	require.NoError(t, err)
	assert.Equal(t, DefaultManifestFile, cfg.Manifest.File)
	assert.Equal(t, DefaultBuildDir, cfg.Build.Directory)
}

// TestLoad_WithInvalidConfigFile tests loading with invalid config file
func TestLoad_WithInvalidConfigFile(t *testing.T) {
	tmpDir := chdirTemp(t)

	err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("invalid: yaml: content: ["), 0644)
	require.NoError(t, err)

	cfg, _, err := LoadWithViper()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

// TestLoad_WithValidConfigFile tests loading with valid config file
func TestLoad_WithValidConfigFile(t *testing.T) {
	tmpDir := chdirTemp(t)

	configContent := `
build:
  directory: "out"
  cmake_minimum: "3.20"
packages:
  cache_ttl: 2h
tools:
  vcpkg_root: /opt/vcpkg
logging:
  level: "debug"
`
	err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, _, err := LoadWithViper()
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.Build.Directory)
	assert.Equal(t, "3.20", cfg.Build.CMakeMinimum)
	assert.Equal(t, 2*time.Hour, cfg.Packages.CacheTTL)
	assert.Equal(t, "/opt/vcpkg", cfg.Tools.VcpkgRoot)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, DefaultGeneratorFile, cfg.Build.GeneratorFile)
}

// TestLoadWithEnvironmentVariable tests loading with environment variable
func TestLoadWithEnvironmentVariable(t *testing.T) {
	chdirTemp(t)
	t.Setenv("EVP_BUILD_DIRECTORY", "env-build")

	cfg, _, err := LoadWithViper()
	require.NoError(t, err)

	assert.Equal(t, "env-build", cfg.Build.Directory)
}

// TestLoad_VcpkgRootFromEnvironment tests the VCPKG_ROOT fallback
func TestLoad_VcpkgRootFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv(EnvVcpkgRoot, "/srv/vcpkg")

	cfg, _, err := LoadWithViper()
	require.NoError(t, err)

	assert.Equal(t, "/srv/vcpkg", cfg.Tools.VcpkgRoot)
}

// TestLoadWithViper tests LoadWithViper function
func TestLoadWithViper(t *testing.T) {
	chdirTemp(t)

	cfg, v, err := LoadWithViper()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	require.NotNil(t, v)
	assert.Equal(t, DefaultLogFile, v.GetString("build.log_file"))
}

func TestSave_RoundTrip(t *testing.T) {
	tmpDir := chdirTemp(t)

	cfg := Default()
	cfg.Build.Directory = "out"
	cfg.Packages.CacheTTL = 48 * time.Hour
	cfg.Packages.MaxRetries = 5
	cfg.Tools.VcpkgRoot = "/opt/vcpkg"

	require.NoError(t, Save(cfg, filepath.Join(tmpDir, "config.yaml")))

	loaded, _, err := LoadWithViper()
	require.NoError(t, err)
	assert.Equal(t, "out", loaded.Build.Directory)
	assert.Equal(t, 48*time.Hour, loaded.Packages.CacheTTL)
	assert.Equal(t, 5, loaded.Packages.MaxRetries)
	assert.Equal(t, "/opt/vcpkg", loaded.Tools.VcpkgRoot)
}

func TestSave_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, Save(Default(), path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
