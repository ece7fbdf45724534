package manifest

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	assert.NotNil(t, NewLoader(nil))
}

func TestLoader_Load_FileNotFound(t *testing.T) {
	loader := NewLoader(afero.NewMemMapFs())

	m, err := loader.Load("/nonexistent/path/evp.yaml")

	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoader_Load_ValidYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `
version: 0.1.0
mainTarget: app
targets:
  app:
    src:
      - main.cpp
dependPackages:
  fmt: {}
`
	require.NoError(t, afero.WriteFile(fs, "evp.yaml", []byte(content), 0644))

	m, err := NewLoader(fs).Load("evp.yaml")
	require.NoError(t, err)

	assert.Equal(t, "0.1.0", m.Version)
	assert.Equal(t, "app", m.MainTarget)
	assert.Equal(t, []string{"app"}, m.TargetNames())
	assert.Equal(t, []DependencyPackage{{Name: "fmt", Autolink: true}}, m.DependPackages)
}

func TestLoader_Load_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evp.yaml")
	require.NoError(t, afero.WriteFile(afero.NewOsFs(), path, []byte("targets:\n  app:\n    src: [main.cpp]\n"), 0644))

	m, err := NewLoader(nil).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "app", m.MainTarget)
}

func TestLoader_LoadFromBytes_InvalidYAML(t *testing.T) {
	_, err := NewLoader(nil).LoadFromBytes([]byte("targets: [unclosed"))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLoader_LoadFromBytes_Empty(t *testing.T) {
	_, err := NewLoader(nil).LoadFromBytes(nil)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, KeyTargets, schemaErr.Field)
	assert.ErrorIs(t, err, ErrMissingOrWrongType)
}

func TestLoader_LoadGraph(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `
targets:
  core:
    type: static_lib
    src: [core.cpp]
  app:
    src: [main.cpp]
    dependLibs: [cor]
`
	require.NoError(t, afero.WriteFile(fs, "evp.yaml", []byte(content), 0644))

	_, err := NewLoader(fs).LoadGraph("evp.yaml")
	assert.ErrorIs(t, err, ErrUnknownDependency)
}
