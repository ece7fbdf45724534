package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValues_Changes(t *testing.T) {
	loaded := FromConfig(defaultConfig(t))

	t.Run("unchanged", func(t *testing.T) {
		same := *loaded
		assert.Empty(t, same.Changes(loaded))
	})

	t.Run("whitespace only", func(t *testing.T) {
		edited := *loaded
		edited.BuildDirectory = " " + loaded.BuildDirectory + " "
		assert.Empty(t, edited.Changes(loaded))
	})

	t.Run("menu order", func(t *testing.T) {
		edited := *loaded
		edited.LogFormat = "json"
		edited.BuildDirectory = "out"
		edited.CacheEnabled = false

		assert.Equal(t, []Change{
			{Section: "build", Label: "Build directory", From: "build", To: "out"},
			{Section: "packages", Label: "Install cache", From: "true", To: "false"},
			{Section: "logging", Label: "Format", From: "pretty", To: "json"},
		}, edited.Changes(loaded))
	})
}
