package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/quantmind-br/evp/internal/generator"
)

// watchDebounce coalesces the burst of events an editor save produces
const watchDebounce = 100 * time.Millisecond

// Watch regenerates the generator file now and after every change to the
// manifest until ctx is done. onChange receives the outcome of each
// regeneration; regenerations run one at a time.
func (p *Project) Watch(ctx context.Context, onChange func(generator.Result, error)) error {
	target, err := filepath.Abs(p.ManifestPath())
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// editors often replace the file, so watch its directory
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	onChange(p.Generate())

	p.logger.Info().Str("manifest", target).Msg("Watching manifest for changes")

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if name, err := filepath.Abs(event.Name); err != nil || name != target {
				continue
			}
			pending = time.After(watchDebounce)

		case <-pending:
			pending = nil
			p.logger.Debug().Msg("Manifest changed, regenerating")
			onChange(p.Generate())

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.logger.Warn().Err(err).Msg("Watcher error")
		}
	}
}
