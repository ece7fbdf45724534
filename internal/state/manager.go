package state

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/quantmind-br/evp/internal/utils"
	"github.com/spf13/afero"
)

// StateFileName is the state file kept inside the build directory
const StateFileName = ".evp-state.json"

// Manager tracks whether the build directory must be re-configured
type Manager struct {
	fs       afero.Fs
	baseDir  string
	state    *BuildState
	mu       sync.RWMutex
	dirty    bool
	logger   *utils.Logger
	disabled bool
}

// ManagerOptions contains options for the state manager
type ManagerOptions struct {
	Fs       afero.Fs
	BaseDir  string
	Logger   *utils.Logger
	Disabled bool
}

// NewManager creates a state manager for the build directory in opts.BaseDir
func NewManager(opts ManagerOptions) *Manager {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	return &Manager{
		fs:       opts.Fs,
		baseDir:  opts.BaseDir,
		logger:   opts.Logger,
		disabled: opts.Disabled,
		state:    NewBuildState(),
	}
}

// Load reads the state file. On any error the manager keeps an empty state,
// which forces a re-configure.
func (m *Manager) Load(ctx context.Context) error {
	if m.disabled {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := afero.ReadFile(m.fs, m.statePath())
	if errors.Is(err, os.ErrNotExist) {
		return ErrStateNotFound
	}
	if err != nil {
		return err
	}

	var st BuildState
	if err := json.Unmarshal(data, &st); err != nil {
		return ErrStateCorrupted
	}

	if st.Version != StateVersion {
		if m.logger != nil {
			m.logger.Warn().
				Int("file_version", st.Version).
				Int("expected_version", StateVersion).
				Msg("State version mismatch, will re-configure")
		}
		return ErrVersionMismatch
	}

	m.state = &st
	return nil
}

// Save writes the state file if anything changed since the last save
func (m *Manager) Save(ctx context.Context) error {
	if m.disabled {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dirty {
		return nil
	}

	data, err := json.MarshalIndent(m.state, "", "  ")
	if err != nil {
		return err
	}

	path := m.statePath()
	if err := m.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := afero.WriteFile(m.fs, path, data, 0644); err != nil {
		return err
	}

	m.dirty = false
	if m.logger != nil {
		m.logger.Debug().Str("path", path).Msg("State saved")
	}
	return nil
}

// NeedsConfigure reports whether CMake must be re-run for a generator file
// with the given content hash and toolchain file
func (m *Manager) NeedsConfigure(contentHash, toolchain string) bool {
	if m.disabled {
		return true
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	g := m.state.Generator
	return g.ContentHash != contentHash || g.Toolchain != toolchain
}

// MarkConfigured records a successful configure
func (m *Manager) MarkConfigured(path, contentHash, toolchain string) {
	if m.disabled {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Generator = GeneratorState{
		Path:         path,
		ContentHash:  contentHash,
		Toolchain:    toolchain,
		ConfiguredAt: time.Now(),
	}
	m.dirty = true
}

// MarkBuilt records a successful build
func (m *Manager) MarkBuilt() {
	if m.disabled {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.LastBuild = time.Now()
	m.dirty = true
}

// Invalidate forgets the recorded configure so the next build re-runs it
func (m *Manager) Invalidate() {
	if m.disabled {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Generator = GeneratorState{}
	m.dirty = true
}

// Generator returns the recorded generator state
func (m *Manager) Generator() GeneratorState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Generator
}

// IsDisabled returns whether state tracking is disabled
func (m *Manager) IsDisabled() bool {
	return m.disabled
}

func (m *Manager) statePath() string {
	return filepath.Join(m.baseDir, StateFileName)
}
