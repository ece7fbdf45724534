package state

import "time"

// StateVersion is the schema version for state file migration
const StateVersion = 1

// BuildState is the persisted record of the last CMake configure in a build directory
type BuildState struct {
	Version   int            `json:"version"`
	Generator GeneratorState `json:"generator"`
	LastBuild time.Time      `json:"last_build,omitempty"`
}

// GeneratorState describes the generator file CMake was last configured with
type GeneratorState struct {
	Path         string    `json:"path,omitempty"`
	ContentHash  string    `json:"content_hash,omitempty"`
	Toolchain    string    `json:"toolchain,omitempty"`
	ConfiguredAt time.Time `json:"configured_at,omitempty"`
}

// NewBuildState creates an empty build state
func NewBuildState() *BuildState {
	return &BuildState{Version: StateVersion}
}

// IsConfigured reports whether a configure has been recorded
func (s *BuildState) IsConfigured() bool {
	return s.Generator.ContentHash != ""
}
