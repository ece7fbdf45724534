package app_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quantmind-br/evp/internal/app"
	"github.com/quantmind-br/evp/internal/config"
	"github.com/quantmind-br/evp/internal/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type watchEvent struct {
	res generator.Result
	err error
}

func TestProject_Watch(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "evp.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte("targets:\n  app:\n    src: [main.cpp]\n"), 0644))

	p, err := app.NewProject(app.ProjectOptions{
		Config: config.Default(),
		Dir:    dir,
		Deps:   &app.Dependencies{Packages: &fakePackages{}},
		Stderr: io.Discard,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan watchEvent, 8)
	done := make(chan error, 1)
	go func() {
		done <- p.Watch(ctx, func(res generator.Result, err error) {
			events <- watchEvent{res: res, err: err}
		})
	}()

	next := func() watchEvent {
		t.Helper()
		select {
		case ev := <-events:
			return ev
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for regeneration")
			return watchEvent{}
		}
	}

	first := next()
	require.NoError(t, first.err)
	assert.True(t, first.res.Changed)

	// give the watcher a moment to settle after the initial generate
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(manifestPath, []byte("targets:\n  app:\n    src: [main.cpp, util.cpp]\n"), 0644))

	second := next()
	require.NoError(t, second.err)
	assert.True(t, second.res.Changed)
	assert.NotEqual(t, first.res.Hash, second.res.Hash)

	data, err := os.ReadFile(second.res.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "../src/util.cpp")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
