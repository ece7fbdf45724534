package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidTargetName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"simple", "app", true},
		{"with underscore", "my_lib", true},
		{"with dash and dot", "core-utils.v2", true},
		{"with plus", "c++demo", true},
		{"empty", "", false},
		{"path separator", "bin/app", false},
		{"backslash", `bin\app`, false},
		{"space", "my app", false},
		{"leading dash", "-app", false},
		{"dot dot", "a..b", false},
		{"reserved", "con", false},
		{"too long", strings.Repeat("a", MaxTargetNameLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidTargetName(tt.input))
		})
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a", "b", "file.txt")

	require.NoError(t, EnsureDir(path))

	info, err := os.Stat(filepath.Join(tmpDir, "a", "b"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".evp"), ExpandPath("~/.evp"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
	assert.Equal(t, "relative", ExpandPath("relative"))
}
