package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Loader reads manifest files and runs them through Parse
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a loader reading from fs. A nil fs means the OS filesystem.
func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{fs: fs}
}

// Load reads and parses the manifest at path
func (l *Loader) Load(path string) (*Manifest, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}
	return l.LoadFromBytes(data)
}

// LoadFromBytes parses a manifest from raw YAML
func (l *Loader) LoadFromBytes(data []byte) (*Manifest, error) {
	node, err := decodeNode(data)
	if err != nil {
		return nil, err
	}
	return Parse(node)
}

// LoadGraph loads the manifest at path and resolves its target graph
func (l *Loader) LoadGraph(path string) (*Graph, error) {
	m, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	return Resolve(m)
}

func decodeNode(data []byte) (*yaml.Node, error) {
	var node yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			// empty document; Parse reports the missing targets map
			return &yaml.Node{Kind: yaml.DocumentNode}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return &node, nil
}
