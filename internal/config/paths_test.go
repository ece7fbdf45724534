package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaths(t *testing.T) {
	paths := Default().ResolvePaths("proj")

	assert.Equal(t, filepath.Join("proj", "evp.yaml"), paths.Manifest)
	assert.Equal(t, filepath.Join("proj", "build"), paths.BuildDir)
	assert.Equal(t, filepath.Join("proj", "build", "CMakeLists.txt"), paths.Generator)
	assert.Equal(t, filepath.Join("proj", "src"), paths.SourceDir)
	assert.Equal(t, filepath.Join("proj", "build", "log.txt"), paths.Log)
}

func TestResolvePaths_EmptyProjectDir(t *testing.T) {
	paths := Default().ResolvePaths("")
	assert.Equal(t, "evp.yaml", paths.Manifest)
}

func TestResolvePaths_AbsoluteBuildDir(t *testing.T) {
	abs, err := filepath.Abs(filepath.Join("elsewhere", "out"))
	require.NoError(t, err)

	cfg := Default()
	cfg.Build.Directory = abs
	paths := cfg.ResolvePaths("proj")

	assert.Equal(t, abs, paths.BuildDir)
	assert.Equal(t, filepath.Join(abs, "CMakeLists.txt"), paths.Generator)
}

func TestPaths_SourcePrefix(t *testing.T) {
	absProject, err := filepath.Abs("proj")
	require.NoError(t, err)

	tests := []struct {
		name     string
		buildDir string
		want     string
	}{
		{"default layout", "build", "../src/"},
		{"nested build dir", filepath.Join("out", "debug"), "../../src/"},
		{"absolute build dir", filepath.Join(absProject, "out", "debug"), "../../src/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Build.Directory = tt.buildDir

			got, err := cfg.ResolvePaths("proj").SourcePrefix()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
