package git

import (
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewClient tests creating a new client
func TestNewClient(t *testing.T) {
	client := NewClient()
	assert.NotNil(t, client)
}

// TestRealClient_PlainInit tests initializing a repository
func TestRealClient_PlainInit(t *testing.T) {
	t.Run("creates repository in directory", func(t *testing.T) {
		client := NewClient()
		tmpDir := t.TempDir()

		repo, err := client.PlainInit(tmpDir, false)
		require.NoError(t, err)
		assert.NotNil(t, repo)
		assert.DirExists(t, filepath.Join(tmpDir, ".git"))
	})

	t.Run("fails on existing repository", func(t *testing.T) {
		client := NewClient()
		tmpDir := t.TempDir()

		_, err := client.PlainInit(tmpDir, false)
		require.NoError(t, err)

		_, err = client.PlainInit(tmpDir, false)
		assert.ErrorIs(t, err, git.ErrRepositoryAlreadyExists)
	})
}

// TestRealClient_IsRepository tests work tree detection
func TestRealClient_IsRepository(t *testing.T) {
	client := NewClient()
	tmpDir := t.TempDir()

	assert.False(t, client.IsRepository(tmpDir))

	_, err := client.PlainInit(tmpDir, false)
	require.NoError(t, err)

	assert.True(t, client.IsRepository(tmpDir))
	assert.True(t, client.IsRepository(filepath.Join(tmpDir, "src")))
}

// TestClientInterface ensures RealClient satisfies Client
func TestClientInterface(t *testing.T) {
	var _ Client = (*RealClient)(nil)
}
